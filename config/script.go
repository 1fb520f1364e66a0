package config

import (
	"encoding/json"
	"fmt"
	"github.com/shimmeringbee/remote/command"
	"gopkg.in/yaml.v3"
)

// ScriptConfig is an ordered list of commands to run against one device in a
// single remote control session.
type ScriptConfig struct {
	Name     string `json:"-" yaml:"-"`
	Device   string
	Commands []command.Command
}

func (s *ScriptConfig) validate() error {
	if s.Device == "" {
		return fmt.Errorf("script has no device")
	}

	return nil
}

func ParseScriptJSON(data []byte) (ScriptConfig, error) {
	var s ScriptConfig

	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse script json: %w", err)
	}

	return s, s.validate()
}

type yamlScript struct {
	Device   string        `yaml:"device"`
	Commands []yamlCommand `yaml:"commands"`
}

type yamlCommand struct {
	Operation string         `yaml:"operation"`
	Args      []any          `yaml:"args"`
	Named     map[string]any `yaml:"named"`
}

func ParseScriptYAML(data []byte) (ScriptConfig, error) {
	var ys yamlScript

	if err := yaml.Unmarshal(data, &ys); err != nil {
		return ScriptConfig{}, fmt.Errorf("failed to parse script yaml: %w", err)
	}

	s := ScriptConfig{Device: ys.Device}

	for i, yc := range ys.Commands {
		if yc.Operation == "" {
			return ScriptConfig{}, fmt.Errorf("script command %d has no operation", i)
		}

		c := command.New(yc.Operation, yc.Args...)
		for k, v := range yc.Named {
			c = c.With(k, v)
		}

		s.Commands = append(s.Commands, c)
	}

	return s, s.validate()
}
