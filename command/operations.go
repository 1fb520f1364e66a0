package command

import (
	"context"
	"github.com/shimmeringbee/remote/capabilities"
)

const (
	Activate      = "activate"
	Deactivate    = "deactivate"
	SelectChannel = "select_channel"
	AdjustVolume  = "adjust_volume"
)

var ActivateOperation = Bind(Activate, capabilities.PowerFlag, nil,
	func(ctx context.Context, c capabilities.Power, _ Arguments) error {
		return c.Activate(ctx)
	}).WithAliases("turn_on")

var DeactivateOperation = Bind(Deactivate, capabilities.PowerFlag, nil,
	func(ctx context.Context, c capabilities.Power, _ Arguments) error {
		return c.Deactivate(ctx)
	}).WithAliases("turn_off")

var SelectChannelOperation = Bind(SelectChannel, capabilities.ChannelSelectFlag, []Parameter{{Name: "channel", Aliases: []string{"number"}}},
	func(ctx context.Context, c capabilities.ChannelSelect, args Arguments) error {
		channel, err := args.Int("channel")
		if err != nil {
			return err
		}

		return c.SelectChannel(ctx, channel)
	}).WithAliases("change_channel")

var AdjustVolumeOperation = Bind(AdjustVolume, capabilities.VolumeAdjustFlag, []Parameter{{Name: "level", Aliases: []string{"volume"}}},
	func(ctx context.Context, c capabilities.VolumeAdjust, args Arguments) error {
		level, err := args.Int("level")
		if err != nil {
			return err
		}

		return c.AdjustVolume(ctx, level)
	})

// Default knows the operations of every capability in this module.
var Default = NewDispatcher(ActivateOperation, DeactivateOperation, SelectChannelOperation, AdjustVolumeOperation)
