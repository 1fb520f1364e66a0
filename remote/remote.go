package remote

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/logwrap/impl/discard"
	"github.com/shimmeringbee/logwrap/impl/nest"
	"github.com/shimmeringbee/remote/capabilities"
	"github.com/shimmeringbee/remote/command"
	"github.com/shimmeringbee/remote/events"
	"sync"
)

type State uint8

const (
	Created  State = 0
	Active   State = 1
	Inactive State = 2
)

func (s State) String() string {
	switch s {
	case Created:
		return "Created"
	case Active:
		return "Active"
	case Inactive:
		return "Inactive"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(s))
	}
}

type SessionError string

func (e SessionError) Error() string {
	return string(e)
}

const (
	ErrSessionActive   = SessionError("remote control session already active")
	ErrSessionInactive = SessionError("remote control session not active")
)

// OperateError reports which command in an Operate call failed. Commands
// before Index have already been applied.
type OperateError struct {
	Index   int
	Command command.Command
	Err     error
}

func (e *OperateError) Error() string {
	return fmt.Sprintf("command %d %s failed: %v", e.Index, e.Command, e.Err)
}

func (e *OperateError) Unwrap() error {
	return e.Err
}

type SessionStarted struct {
	Session uuid.UUID
}

type SessionEnded struct {
	Session uuid.UUID
	Err     error
}

// RemoteControl owns one device and applies commands to it while a session
// is active. The device must not be driven by anything else during a session.
type RemoteControl struct {
	device     capabilities.Power
	dispatcher *command.Dispatcher
	logger     logwrap.Logger
	publisher  events.Publisher

	lock    sync.Mutex
	state   State
	session uuid.UUID
}

type Option func(*RemoteControl)

func WithDispatcher(d *command.Dispatcher) Option {
	return func(r *RemoteControl) {
		r.dispatcher = d
	}
}

func WithLogger(l logwrap.Logger) Option {
	return func(r *RemoteControl) {
		r.logger = l
	}
}

func WithPublisher(p events.Publisher) Option {
	return func(r *RemoteControl) {
		r.publisher = p
	}
}

func New(device capabilities.Power, opts ...Option) *RemoteControl {
	r := &RemoteControl{
		device:     device,
		dispatcher: command.Default,
		logger:     logwrap.New(discard.Discard()),
		publisher:  events.NullPublisher,
		state:      Created,
	}

	for _, opt := range opts {
		opt(r)
	}

	wl := logwrap.New(nest.Wrap(r.logger))
	wl.AddOptionsToLogger(logwrap.Source("remote"))
	r.logger = wl

	return r
}

func (r *RemoteControl) Device() capabilities.Power {
	return r.device
}

func (r *RemoteControl) State() State {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.state
}

// SessionID returns the identifier of the current or most recent session.
func (r *RemoteControl) SessionID() uuid.UUID {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.session
}

// Enter activates the device and starts a session. If activation fails the
// device is deactivated again and the session ends immediately.
func (r *RemoteControl) Enter(ctx context.Context) error {
	r.lock.Lock()
	if r.state == Active {
		r.lock.Unlock()
		return ErrSessionActive
	}

	r.session = uuid.New()
	r.state = Active
	session := r.session
	r.lock.Unlock()

	r.logger.LogInfo(ctx, "Remote control session starting.", logwrap.Datum("session", session.String()))

	if err := r.device.Activate(ctx); err != nil {
		err = fmt.Errorf("failed to activate device: %w", err)
		r.logger.LogError(ctx, "Remote control session failed to start.", logwrap.Err(err), logwrap.Datum("session", session.String()))

		r.lock.Lock()
		r.state = Inactive
		r.lock.Unlock()

		if deactivateErr := r.device.Deactivate(ctx); deactivateErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to deactivate device: %w", deactivateErr))
		}

		return err
	}

	r.publisher.Publish(SessionStarted{Session: session})

	return nil
}

// Exit deactivates the device and ends the session. It is safe to call on a
// session which is not active, the device is deactivated regardless.
func (r *RemoteControl) Exit(ctx context.Context) error {
	r.lock.Lock()
	wasActive := r.state == Active
	r.state = Inactive
	session := r.session
	r.lock.Unlock()

	err := r.device.Deactivate(ctx)
	if err != nil {
		err = fmt.Errorf("failed to deactivate device: %w", err)
		r.logger.LogError(ctx, "Remote control session failed to deactivate device.", logwrap.Err(err), logwrap.Datum("session", session.String()))
	}

	if wasActive {
		r.logger.LogInfo(ctx, "Remote control session ended.", logwrap.Datum("session", session.String()))
		r.publisher.Publish(SessionEnded{Session: session, Err: err})
	}

	return err
}

// Session runs fn inside an active session. The device is deactivated on every
// exit path; fn's error comes first, joined with any deactivation error.
func (r *RemoteControl) Session(ctx context.Context, fn func(context.Context, *RemoteControl) error) (err error) {
	if err := r.Enter(ctx); err != nil {
		return err
	}

	defer func() {
		if exitErr := r.Exit(ctx); exitErr != nil {
			err = errors.Join(err, exitErr)
		}
	}()

	return fn(ctx, r)
}

// Operate executes commands against the device strictly in order. The first
// failure stops execution, earlier commands are not rolled back.
func (r *RemoteControl) Operate(ctx context.Context, commands ...command.Command) error {
	if r.State() != Active {
		return ErrSessionInactive
	}

	for i, c := range commands {
		r.logger.LogDebug(ctx, "Executing command.", logwrap.Datum("index", i), logwrap.Datum("command", c.String()))

		if err := r.dispatcher.Execute(ctx, r.device, c); err != nil {
			r.logger.LogWarn(ctx, "Command failed, aborting remaining commands.", logwrap.Err(err), logwrap.Datum("index", i), logwrap.Datum("command", c.String()), logwrap.Datum("remaining", len(commands)-i-1))
			return &OperateError{Index: i, Command: c, Err: err}
		}
	}

	return nil
}

// WithPower powers the device for the duration of fn, deactivating it on
// every exit path.
func WithPower[P capabilities.Power](ctx context.Context, device P, fn func(context.Context, P) error) (err error) {
	if err := device.Activate(ctx); err != nil {
		return errors.Join(fmt.Errorf("failed to activate device: %w", err), device.Deactivate(ctx))
	}

	defer func() {
		if deactivateErr := device.Deactivate(ctx); deactivateErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to deactivate device: %w", deactivateErr))
		}
	}()

	return fn(ctx, device)
}
