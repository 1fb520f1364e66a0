package config

type DeviceConfig struct {
	Name   string `json:"-"`
	Type   string
	Config any
}

var deviceFactories = map[string]func() any{
	"television": func() any { return &TelevisionConfig{} },
	"stereo":     func() any { return &StereoConfig{} },
}

func (d *DeviceConfig) UnmarshalJSON(data []byte) error {
	t, cfg, err := unmarshalTyped(data, "device", deviceFactories)
	d.Type = t
	d.Config = cfg
	return err
}

type Range struct {
	Min int
	Max int
}

type TelevisionConfig struct {
	Channels *Range
	Volume   *Range

	InitialChannel *int
	InitialVolume  *int
}

type StereoConfig struct {
	Volume *Range

	InitialVolume *int
}
