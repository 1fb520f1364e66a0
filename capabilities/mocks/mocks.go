package mocks

import (
	"context"
	"github.com/shimmeringbee/remote/capabilities"
	"github.com/stretchr/testify/mock"
)

var _ capabilities.Power = (*Power)(nil)

type Power struct {
	mock.Mock
}

func (m *Power) Activate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *Power) Deactivate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ capabilities.VolumeAdjust = (*VolumeAdjust)(nil)

type VolumeAdjust struct {
	Power
}

func (m *VolumeAdjust) AdjustVolume(ctx context.Context, level int) error {
	args := m.Called(ctx, level)
	return args.Error(0)
}

var _ capabilities.ChannelSelect = (*ChannelSelect)(nil)

type ChannelSelect struct {
	Power
}

func (m *ChannelSelect) SelectChannel(ctx context.Context, channel int) error {
	args := m.Called(ctx, channel)
	return args.Error(0)
}

var _ capabilities.ChannelSelect = (*ChannelAndVolume)(nil)
var _ capabilities.VolumeAdjust = (*ChannelAndVolume)(nil)

type ChannelAndVolume struct {
	Power
}

func (m *ChannelAndVolume) SelectChannel(ctx context.Context, channel int) error {
	args := m.Called(ctx, channel)
	return args.Error(0)
}

func (m *ChannelAndVolume) AdjustVolume(ctx context.Context, level int) error {
	args := m.Called(ctx, level)
	return args.Error(0)
}
