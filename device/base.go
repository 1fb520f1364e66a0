package device

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/logwrap/impl/discard"
	"github.com/shimmeringbee/logwrap/impl/nest"
	"github.com/shimmeringbee/remote/capabilities"
	"github.com/shimmeringbee/remote/events"
	"strings"
	"sync"
)

type PowerState uint8

const (
	Off PowerState = 0
	On  PowerState = 1
)

func (p PowerState) String() string {
	switch p {
	case On:
		return "On"
	case Off:
		return "Off"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(p))
	}
}

// Base carries the identity and power state shared by every device. Concrete
// devices embed it and take its lock before touching their own settings.
type Base struct {
	identifier uuid.UUID
	name       string
	kind       string

	lock  sync.Mutex
	power PowerState

	logger    logwrap.Logger
	publisher events.Publisher
}

type settings struct {
	name      string
	logger    logwrap.Logger
	publisher events.Publisher

	channels       capabilities.Range
	channelsSet    bool
	volumes        capabilities.Range
	initialChannel *int
	initialVolume  *int
}

type Option func(*settings)

func WithName(name string) Option {
	return func(s *settings) {
		s.name = name
	}
}

func WithLogger(l logwrap.Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}

func WithPublisher(p events.Publisher) Option {
	return func(s *settings) {
		s.publisher = p
	}
}

func WithChannelRange(r capabilities.Range) Option {
	return func(s *settings) {
		s.channels = r
		s.channelsSet = true
	}
}

func WithVolumeRange(r capabilities.Range) Option {
	return func(s *settings) {
		s.volumes = r
	}
}

func WithInitialChannel(channel int) Option {
	return func(s *settings) {
		s.initialChannel = &channel
	}
}

func WithInitialVolume(level int) Option {
	return func(s *settings) {
		s.initialVolume = &level
	}
}

var DefaultChannelRange = capabilities.Range{Min: 1, Max: 99}
var DefaultVolumeRange = capabilities.Range{Min: 0, Max: 100}

func resolveSettings(kind string, opts []Option) (settings, error) {
	s := settings{
		name:      kind,
		logger:    logwrap.New(discard.Discard()),
		publisher: events.NullPublisher,
		channels:  DefaultChannelRange,
		volumes:   DefaultVolumeRange,
	}

	for _, opt := range opts {
		opt(&s)
	}

	if !s.channels.Valid() {
		return s, fmt.Errorf("invalid channel range %s", s.channels)
	}

	if !s.volumes.Valid() {
		return s, fmt.Errorf("invalid volume range %s", s.volumes)
	}

	if s.initialChannel != nil && !s.channels.Contains(*s.initialChannel) {
		return s, fmt.Errorf("initial channel %d outside %s", *s.initialChannel, s.channels)
	}

	if s.initialVolume != nil && !s.volumes.Contains(*s.initialVolume) {
		return s, fmt.Errorf("initial volume %d outside %s", *s.initialVolume, s.volumes)
	}

	return s, nil
}

func (b *Base) setup(kind string, s settings) {
	b.identifier = uuid.New()
	b.name = s.name
	b.kind = kind
	b.publisher = s.publisher

	b.logger = logwrap.New(nest.Wrap(s.logger))
	b.logger.AddOptionsToLogger(logwrap.Source("device"), logwrap.Datum("device", s.name), logwrap.Datum("kind", kind))
}

func (b *Base) Identifier() uuid.UUID {
	return b.identifier
}

func (b *Base) Name() string {
	return b.name
}

func (b *Base) Kind() string {
	return b.kind
}

func (b *Base) PowerState() PowerState {
	b.lock.Lock()
	defer b.lock.Unlock()

	return b.power
}

func (b *Base) Activate(ctx context.Context) error {
	return b.setPower(ctx, On)
}

func (b *Base) Deactivate(ctx context.Context) error {
	return b.setPower(ctx, Off)
}

func (b *Base) setPower(ctx context.Context, ps PowerState) error {
	b.lock.Lock()
	if b.power == ps {
		b.lock.Unlock()
		return nil
	}
	b.power = ps
	b.lock.Unlock()

	b.logger.LogInfo(ctx, fmt.Sprintf("%s turned %s.", b.name, strings.ToLower(ps.String())), logwrap.Datum("power", ps.String()))
	b.publisher.Publish(PowerChanged{Device: b.identifier, Name: b.name, State: ps})

	return nil
}

// requirePower must be called with lock held.
func (b *Base) requirePower(operation string) error {
	if b.power != On {
		return fmt.Errorf("%w: %s: %s is off", capabilities.ErrDeviceNotPowered, operation, b.name)
	}

	return nil
}
