package device

import (
	"context"
	"fmt"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/remote/capabilities"
)

const TelevisionKind = "television"

var _ capabilities.ChannelSelect = (*Television)(nil)
var _ capabilities.VolumeAdjust = (*Television)(nil)

type Television struct {
	Base

	channels capabilities.Range
	volumes  capabilities.Range

	channel int
	volume  int
}

func NewTelevision(opts ...Option) (*Television, error) {
	s, err := resolveSettings(TelevisionKind, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to construct television: %w", err)
	}

	tv := &Television{
		channels: s.channels,
		volumes:  s.volumes,
		channel:  s.channels.Min,
		volume:   s.volumes.Min,
	}

	if s.initialChannel != nil {
		tv.channel = *s.initialChannel
	}

	if s.initialVolume != nil {
		tv.volume = *s.initialVolume
	}

	tv.setup(TelevisionKind, s)

	return tv, nil
}

func (t *Television) SelectChannel(ctx context.Context, channel int) error {
	t.lock.Lock()
	if err := t.requirePower("select channel"); err != nil {
		t.lock.Unlock()
		return err
	}

	if !t.channels.Contains(channel) {
		t.lock.Unlock()
		return fmt.Errorf("%w: channel %d outside %s", capabilities.ErrInvalidArgument, channel, t.channels)
	}

	t.channel = channel
	t.lock.Unlock()

	t.logger.LogInfo(ctx, fmt.Sprintf("%s channel changed to %d.", t.name, channel), logwrap.Datum("channel", channel))
	t.publisher.Publish(ChannelChanged{Device: t.identifier, Name: t.name, Channel: channel})

	return nil
}

func (t *Television) AdjustVolume(ctx context.Context, level int) error {
	t.lock.Lock()
	if err := t.requirePower("adjust volume"); err != nil {
		t.lock.Unlock()
		return err
	}

	if !t.volumes.Contains(level) {
		t.lock.Unlock()
		return fmt.Errorf("%w: volume %d outside %s", capabilities.ErrInvalidArgument, level, t.volumes)
	}

	t.volume = level
	t.lock.Unlock()

	t.logger.LogInfo(ctx, fmt.Sprintf("%s volume adjusted to %d.", t.name, level), logwrap.Datum("volume", level))
	t.publisher.Publish(VolumeChanged{Device: t.identifier, Name: t.name, Level: level})

	return nil
}

func (t *Television) Channel() int {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.channel
}

func (t *Television) Volume() int {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.volume
}
