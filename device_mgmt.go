package main

import (
	"context"
	"fmt"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/remote/capabilities"
	"github.com/shimmeringbee/remote/command"
	"github.com/shimmeringbee/remote/config"
	"github.com/shimmeringbee/remote/device"
	"github.com/shimmeringbee/remote/events"
	"github.com/shimmeringbee/remote/state"
)

func loadDeviceConfigurations(dir string) ([]config.DeviceConfig, error) {
	return loadJSONConfigurations(dir, "device", func(name string) config.DeviceConfig {
		return config.DeviceConfig{Name: name}
	})
}

func startDevices(ctx context.Context, cfgs []config.DeviceConfig, registry *state.DeviceRegistry, l logwrap.Logger, p events.Publisher) error {
	for _, cfg := range cfgs {
		d, err := startDevice(cfg, l, p)
		if err != nil {
			return fmt.Errorf("failed to start device '%s': %w", cfg.Name, err)
		}

		if err := registry.Add(cfg.Name, d); err != nil {
			return fmt.Errorf("failed to register device '%s': %w", cfg.Name, err)
		}

		l.LogInfo(ctx, "Device ready.", logwrap.Datum("device", cfg.Name), logwrap.Datum("type", cfg.Type), logwrap.Datum("operations", command.Default.Supported(d)))
	}

	return nil
}

func startDevice(cfg config.DeviceConfig, l logwrap.Logger, p events.Publisher) (capabilities.Power, error) {
	opts := []device.Option{device.WithName(cfg.Name), device.WithLogger(l), device.WithPublisher(p)}

	switch dCfg := cfg.Config.(type) {
	case *config.TelevisionConfig:
		if dCfg.Channels != nil {
			opts = append(opts, device.WithChannelRange(capabilities.Range(*dCfg.Channels)))
		}

		if dCfg.Volume != nil {
			opts = append(opts, device.WithVolumeRange(capabilities.Range(*dCfg.Volume)))
		}

		if dCfg.InitialChannel != nil {
			opts = append(opts, device.WithInitialChannel(*dCfg.InitialChannel))
		}

		if dCfg.InitialVolume != nil {
			opts = append(opts, device.WithInitialVolume(*dCfg.InitialVolume))
		}

		tv, err := device.NewTelevision(opts...)
		if err != nil {
			return nil, err
		}

		return tv, nil
	case *config.StereoConfig:
		if dCfg.Volume != nil {
			opts = append(opts, device.WithVolumeRange(capabilities.Range(*dCfg.Volume)))
		}

		if dCfg.InitialVolume != nil {
			opts = append(opts, device.WithInitialVolume(*dCfg.InitialVolume))
		}

		st, err := device.NewStereo(opts...)
		if err != nil {
			return nil, err
		}

		return st, nil
	default:
		return nil, fmt.Errorf("unknown device type loaded: %s", cfg.Type)
	}
}
