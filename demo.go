package main

import (
	"context"
	"fmt"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/remote/command"
	"github.com/shimmeringbee/remote/device"
	"github.com/shimmeringbee/remote/events"
	"github.com/shimmeringbee/remote/remote"
)

// runDemonstration drives a television and a stereo through a remote control,
// then uses the television directly inside its own power scope.
func runDemonstration(ctx context.Context, l logwrap.Logger, p events.Publisher) error {
	tv, err := device.NewTelevision(device.WithName("TV"), device.WithLogger(l), device.WithPublisher(p))
	if err != nil {
		return err
	}

	stereo, err := device.NewStereo(device.WithName("Stereo"), device.WithLogger(l), device.WithPublisher(p))
	if err != nil {
		return err
	}

	tvCommands := []command.Command{
		command.New(command.SelectChannel).With("channel", 5),
		command.New(command.AdjustVolume).With("volume", 20),
	}

	stereoCommands := []command.Command{
		command.New(command.AdjustVolume, 20),
	}

	if err := remote.New(tv, remote.WithLogger(l), remote.WithPublisher(p)).Session(ctx, func(ctx context.Context, rc *remote.RemoteControl) error {
		return rc.Operate(ctx, tvCommands...)
	}); err != nil {
		return fmt.Errorf("television demonstration failed: %w", err)
	}

	if err := remote.New(stereo, remote.WithLogger(l), remote.WithPublisher(p)).Session(ctx, func(ctx context.Context, rc *remote.RemoteControl) error {
		return rc.Operate(ctx, stereoCommands...)
	}); err != nil {
		return fmt.Errorf("stereo demonstration failed: %w", err)
	}

	if err := remote.WithPower(ctx, tv, func(ctx context.Context, tv *device.Television) error {
		return tv.SelectChannel(ctx, 4)
	}); err != nil {
		return fmt.Errorf("direct television demonstration failed: %w", err)
	}

	return nil
}
