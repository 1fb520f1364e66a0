package config

import (
	"encoding/json"
	"fmt"
	"github.com/tidwall/gjson"
)

// unmarshalTyped decodes the common {"Type": ..., "Config": {...}} layout,
// picking the Config target from factories by Type.
func unmarshalTyped(data []byte, kind string, factories map[string]func() any) (string, any, error) {
	if !gjson.ValidBytes(data) {
		return "", nil, fmt.Errorf("invalid %s configuration json", kind)
	}

	result := gjson.GetBytes(data, "Type")
	if !result.Exists() {
		return "", nil, fmt.Errorf("failed to find %s type information", kind)
	}

	t := result.String()

	factory, found := factories[t]
	if !found {
		return t, nil, fmt.Errorf("unknown %s configuration type: %s", kind, t)
	}

	cfg := factory()

	if result := gjson.GetBytes(data, "Config"); result.Exists() {
		if err := json.Unmarshal([]byte(result.Raw), cfg); err != nil {
			return t, nil, fmt.Errorf("failed to parse %s configuration: %w", kind, err)
		}
	} else {
		return t, nil, fmt.Errorf("unable to find Config stanza: %s", t)
	}

	return t, cfg, nil
}
