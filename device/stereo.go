package device

import (
	"context"
	"fmt"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/remote/capabilities"
)

const StereoKind = "stereo"

var _ capabilities.VolumeAdjust = (*Stereo)(nil)

// Stereo only adjusts volume, it deliberately has no channel operation.
type Stereo struct {
	Base

	volumes capabilities.Range
	volume  int
}

func NewStereo(opts ...Option) (*Stereo, error) {
	s, err := resolveSettings(StereoKind, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to construct stereo: %w", err)
	}

	if s.initialChannel != nil || s.channelsSet {
		return nil, fmt.Errorf("failed to construct stereo: stereo has no channels")
	}

	st := &Stereo{
		volumes: s.volumes,
		volume:  s.volumes.Min,
	}

	if s.initialVolume != nil {
		st.volume = *s.initialVolume
	}

	st.setup(StereoKind, s)

	return st, nil
}

func (s *Stereo) AdjustVolume(ctx context.Context, level int) error {
	s.lock.Lock()
	if err := s.requirePower("adjust volume"); err != nil {
		s.lock.Unlock()
		return err
	}

	if !s.volumes.Contains(level) {
		s.lock.Unlock()
		return fmt.Errorf("%w: volume %d outside %s", capabilities.ErrInvalidArgument, level, s.volumes)
	}

	s.volume = level
	s.lock.Unlock()

	s.logger.LogInfo(ctx, fmt.Sprintf("%s volume adjusted to %d.", s.name, level), logwrap.Datum("volume", level))
	s.publisher.Publish(VolumeChanged{Device: s.identifier, Name: s.name, Level: level})

	return nil
}

func (s *Stereo) Volume() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.volume
}
