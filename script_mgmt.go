package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/logwrap/impl/nest"
	"github.com/shimmeringbee/remote/config"
	"github.com/shimmeringbee/remote/events"
	"github.com/shimmeringbee/remote/remote"
	"github.com/shimmeringbee/remote/state"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const ErrUnknownDevice = ScriptError("script refers to unknown device")

type ScriptError string

func (e ScriptError) Error() string {
	return string(e)
}

type ScriptResult struct {
	Name    string
	Device  string
	Session string
	Err     error
}

func loadScriptFile(path string) (config.ScriptConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return config.ScriptConfig{}, fmt.Errorf("failed to read script file '%s': %w", path, err)
	}

	var s config.ScriptConfig

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		s, err = config.ParseScriptJSON(data)
	case ".yaml", ".yml":
		s, err = config.ParseScriptYAML(data)
	default:
		return s, fmt.Errorf("unsupported script file extension '%s'", path)
	}

	if err != nil {
		return s, fmt.Errorf("failed to parse script file '%s': %w", path, err)
	}

	s.Name = configName(filepath.Base(path))
	return s, nil
}

func loadScripts(dir string) ([]config.ScriptConfig, error) {
	if err := os.MkdirAll(dir, DefaultDirectoryPermissions); err != nil {
		return nil, fmt.Errorf("failed to ensure script directory exists: %w", err)
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory listing for scripts: %w", err)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name() < files[j].Name()
	})

	var scripts []config.ScriptConfig

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		switch strings.ToLower(filepath.Ext(file.Name())) {
		case ".json", ".yaml", ".yml":
		default:
			continue
		}

		s, err := loadScriptFile(filepath.Join(dir, file.Name()))
		if err != nil {
			return nil, err
		}

		scripts = append(scripts, s)
	}

	return scripts, nil
}

// runScripts runs each script in its own session, continuing past failures.
func runScripts(ctx context.Context, scripts []config.ScriptConfig, devices state.DeviceMapper, l logwrap.Logger, p events.Publisher) []ScriptResult {
	results := make([]ScriptResult, 0, len(scripts))

	for _, s := range scripts {
		results = append(results, runScript(ctx, s, devices, l, p))
	}

	return results
}

func runScript(ctx context.Context, s config.ScriptConfig, devices state.DeviceMapper, l logwrap.Logger, p events.Publisher) ScriptResult {
	result := ScriptResult{Name: s.Name, Device: s.Device}

	wl := logwrap.New(nest.Wrap(l))
	wl.AddOptionsToLogger(logwrap.Source("script"), logwrap.Datum("script", s.Name), logwrap.Datum("device", s.Device))

	d, found := devices.Device(s.Device)
	if !found {
		result.Err = fmt.Errorf("%w: %s", ErrUnknownDevice, s.Device)
		wl.LogError(ctx, "Script refers to unknown device.", logwrap.Err(result.Err))
		return result
	}

	rc := remote.New(d, remote.WithLogger(wl), remote.WithPublisher(p))

	wl.LogInfo(ctx, "Running script.", logwrap.Datum("commands", len(s.Commands)))

	result.Err = rc.Session(ctx, func(ctx context.Context, rc *remote.RemoteControl) error {
		return rc.Operate(ctx, s.Commands...)
	})
	result.Session = rc.SessionID().String()

	var opErr *remote.OperateError

	switch {
	case result.Err == nil:
		wl.LogInfo(ctx, "Script completed.", logwrap.Datum("session", result.Session))
	case errors.As(result.Err, &opErr):
		wl.LogError(ctx, "Script failed.", logwrap.Err(result.Err), logwrap.Datum("session", result.Session), logwrap.Datum("index", opErr.Index), logwrap.Datum("command", opErr.Command.String()))
	default:
		wl.LogError(ctx, "Script failed.", logwrap.Err(result.Err), logwrap.Datum("session", result.Session))
	}

	return result
}
