package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// loadJSONConfigurations parses every .json file in dir, in file name order.
// The file name without extension is handed to construct as the config name.
func loadJSONConfigurations[T any](dir string, kind string, construct func(name string) T) ([]T, error) {
	if err := os.MkdirAll(dir, DefaultDirectoryPermissions); err != nil {
		return nil, fmt.Errorf("failed to ensure %s configuration directory exists: %w", kind, err)
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory listing for %s configurations: %w", kind, err)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name() < files[j].Name()
	})

	var retCfgs []T

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}

		fullPath := filepath.Join(dir, file.Name())
		data, err := os.ReadFile(fullPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s configuration file '%s': %w", kind, fullPath, err)
		}

		cfg := construct(configName(file.Name()))

		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s configuration file '%s': %w", kind, fullPath, err)
		}

		retCfgs = append(retCfgs, cfg)
	}

	return retCfgs, nil
}

func configName(fileName string) string {
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}
