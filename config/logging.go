package config

type LoggingConfig struct {
	Name   string `json:"-"`
	Type   string
	Config any
}

var loggingFactories = map[string]func() any{
	"stdout": func() any { return &StdoutLogging{} },
	"file":   func() any { return &FileLogging{} },
}

func (g *LoggingConfig) UnmarshalJSON(data []byte) error {
	t, cfg, err := unmarshalTyped(data, "logging", loggingFactories)
	g.Type = t
	g.Config = cfg
	return err
}

type BaseLogging struct {
	Level string

	NegateSubsystems bool
	Subsystems       []string
}

type StdoutLogging struct {
	BaseLogging
}

type FileLogging struct {
	BaseLogging

	Filename string
	Size     int
	Count    int
	Compress bool
}
