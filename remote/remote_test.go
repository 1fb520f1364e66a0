package remote

import (
	"context"
	"errors"
	"github.com/shimmeringbee/remote/capabilities"
	"github.com/shimmeringbee/remote/capabilities/mocks"
	"github.com/shimmeringbee/remote/command"
	"github.com/shimmeringbee/remote/device"
	"github.com/shimmeringbee/remote/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestRemoteControl_Session(t *testing.T) {
	t.Run("television scenario selects channel and volume then powers off", func(t *testing.T) {
		r := &events.Recorder{}
		tv, err := device.NewTelevision(device.WithPublisher(r))
		require.NoError(t, err)

		rc := New(tv)
		assert.Equal(t, Created, rc.State())

		err = rc.Session(context.Background(), func(ctx context.Context, rc *RemoteControl) error {
			assert.Equal(t, Active, rc.State())
			assert.Equal(t, device.On, tv.PowerState())

			return rc.Operate(ctx,
				command.New(command.SelectChannel).With("channel", 5),
				command.New(command.AdjustVolume).With("volume", 20),
			)
		})
		assert.NoError(t, err)

		assert.Equal(t, Inactive, rc.State())
		assert.Equal(t, device.Off, tv.PowerState())
		assert.Equal(t, 5, tv.Channel())
		assert.Equal(t, 20, tv.Volume())

		assert.Equal(t, []events.Event{
			device.PowerChanged{Device: tv.Identifier(), Name: tv.Name(), State: device.On},
			device.ChannelChanged{Device: tv.Identifier(), Name: tv.Name(), Channel: 5},
			device.VolumeChanged{Device: tv.Identifier(), Name: tv.Name(), Level: 20},
			device.PowerChanged{Device: tv.Identifier(), Name: tv.Name(), State: device.Off},
		}, r.Events())
	})

	t.Run("stereo scenario adjusts volume and remains deactivated", func(t *testing.T) {
		st, _ := device.NewStereo()

		err := New(st).Session(context.Background(), func(ctx context.Context, rc *RemoteControl) error {
			return rc.Operate(ctx, command.New(command.AdjustVolume, 20))
		})
		assert.NoError(t, err)

		assert.Equal(t, 20, st.Volume())
		assert.Equal(t, device.Off, st.PowerState())

		err = New(st).Session(context.Background(), func(ctx context.Context, rc *RemoteControl) error {
			return rc.Operate(ctx, command.New(command.SelectChannel, 4))
		})
		assert.True(t, errors.Is(err, capabilities.ErrUnsupportedOperation))
	})

	t.Run("failing command aborts the rest but still deactivates without rollback", func(t *testing.T) {
		st, _ := device.NewStereo()

		err := New(st).Session(context.Background(), func(ctx context.Context, rc *RemoteControl) error {
			return rc.Operate(ctx,
				command.New(command.AdjustVolume, 20),
				command.New(command.SelectChannel, 4),
				command.New(command.AdjustVolume, 30),
			)
		})

		assert.True(t, errors.Is(err, capabilities.ErrUnsupportedOperation))

		var opErr *OperateError
		require.True(t, errors.As(err, &opErr))
		assert.Equal(t, 1, opErr.Index)
		assert.Equal(t, command.SelectChannel, opErr.Command.Operation())

		assert.Equal(t, device.Off, st.PowerState())
		assert.Equal(t, 20, st.Volume())
	})

	t.Run("commands are executed in the order given", func(t *testing.T) {
		r := &events.Recorder{}
		tv, _ := device.NewTelevision(device.WithPublisher(r))

		err := New(tv).Session(context.Background(), func(ctx context.Context, rc *RemoteControl) error {
			return rc.Operate(ctx,
				command.New(command.AdjustVolume, 10),
				command.New(command.SelectChannel, 3),
				command.New(command.AdjustVolume, 11),
				command.New(command.SelectChannel, 2),
			)
		})
		require.NoError(t, err)

		var changes []events.Event
		for _, e := range r.Events() {
			if _, isPower := e.(device.PowerChanged); !isPower {
				changes = append(changes, e)
			}
		}

		assert.Equal(t, []events.Event{
			device.VolumeChanged{Device: tv.Identifier(), Name: tv.Name(), Level: 10},
			device.ChannelChanged{Device: tv.Identifier(), Name: tv.Name(), Channel: 3},
			device.VolumeChanged{Device: tv.Identifier(), Name: tv.Name(), Level: 11},
			device.ChannelChanged{Device: tv.Identifier(), Name: tv.Name(), Channel: 2},
		}, changes)
	})

	t.Run("a panic inside the session still deactivates the device", func(t *testing.T) {
		tv, _ := device.NewTelevision()

		assert.Panics(t, func() {
			_ = New(tv).Session(context.Background(), func(ctx context.Context, rc *RemoteControl) error {
				panic("boom")
			})
		})

		assert.Equal(t, device.Off, tv.PowerState())
	})

	t.Run("deactivation errors are joined after the original error", func(t *testing.T) {
		fnErr := errors.New("fn failed")
		deactivateErr := errors.New("deactivate failed")

		mockCapability := &mocks.VolumeAdjust{}
		defer mockCapability.AssertExpectations(t)
		mockCapability.On("Activate", mock.Anything).Return(nil)
		mockCapability.On("Deactivate", mock.Anything).Return(deactivateErr)

		err := New(mockCapability).Session(context.Background(), func(ctx context.Context, rc *RemoteControl) error {
			return fnErr
		})

		assert.True(t, errors.Is(err, fnErr))
		assert.True(t, errors.Is(err, deactivateErr))
	})

	t.Run("activation failure deactivates and skips the session body", func(t *testing.T) {
		activateErr := errors.New("activate failed")

		mockCapability := &mocks.Power{}
		defer mockCapability.AssertExpectations(t)
		mockCapability.On("Activate", mock.Anything).Return(activateErr)
		mockCapability.On("Deactivate", mock.Anything).Return(nil)

		rc := New(mockCapability)
		called := false

		err := rc.Session(context.Background(), func(ctx context.Context, rc *RemoteControl) error {
			called = true
			return nil
		})

		assert.True(t, errors.Is(err, activateErr))
		assert.False(t, called)
		assert.Equal(t, Inactive, rc.State())
	})

	t.Run("activation failure publishes no session events", func(t *testing.T) {
		mockCapability := &mocks.Power{}
		defer mockCapability.AssertExpectations(t)
		mockCapability.On("Activate", mock.Anything).Return(errors.New("activate failed"))
		mockCapability.On("Deactivate", mock.Anything).Return(nil)

		r := &events.Recorder{}
		rc := New(mockCapability, WithPublisher(r))

		assert.Error(t, rc.Enter(context.Background()))
		assert.Empty(t, r.Events())
		assert.Equal(t, Inactive, rc.State())
	})

	t.Run("activation and deactivation failures are both reported", func(t *testing.T) {
		activateErr := errors.New("activate failed")
		deactivateErr := errors.New("deactivate failed")

		mockCapability := &mocks.Power{}
		defer mockCapability.AssertExpectations(t)
		mockCapability.On("Activate", mock.Anything).Return(activateErr)
		mockCapability.On("Deactivate", mock.Anything).Return(deactivateErr)

		err := New(mockCapability).Enter(context.Background())

		assert.True(t, errors.Is(err, activateErr))
		assert.True(t, errors.Is(err, deactivateErr))
	})

	t.Run("publishes session start and end with the session id", func(t *testing.T) {
		r := &events.Recorder{}
		st, _ := device.NewStereo()
		rc := New(st, WithPublisher(r))

		require.NoError(t, rc.Session(context.Background(), func(ctx context.Context, rc *RemoteControl) error {
			return nil
		}))

		assert.Equal(t, []events.Event{
			SessionStarted{Session: rc.SessionID()},
			SessionEnded{Session: rc.SessionID()},
		}, r.Events())
	})

	t.Run("a remote control can run consecutive sessions with new ids", func(t *testing.T) {
		st, _ := device.NewStereo()
		rc := New(st)

		require.NoError(t, rc.Session(context.Background(), func(context.Context, *RemoteControl) error { return nil }))
		first := rc.SessionID()

		require.NoError(t, rc.Session(context.Background(), func(context.Context, *RemoteControl) error { return nil }))
		assert.NotEqual(t, first, rc.SessionID())
	})
}

func TestRemoteControl_Enter(t *testing.T) {
	t.Run("entering an active session fails", func(t *testing.T) {
		st, _ := device.NewStereo()
		rc := New(st)

		require.NoError(t, rc.Enter(context.Background()))
		assert.ErrorIs(t, rc.Enter(context.Background()), ErrSessionActive)
		require.NoError(t, rc.Exit(context.Background()))
	})

	t.Run("exit is safe when the device was also deactivated by the caller", func(t *testing.T) {
		st, _ := device.NewStereo()
		rc := New(st)

		require.NoError(t, rc.Enter(context.Background()))
		require.NoError(t, st.Deactivate(context.Background()))

		assert.NoError(t, rc.Exit(context.Background()))
		assert.NoError(t, rc.Exit(context.Background()))
		assert.Equal(t, device.Off, st.PowerState())
	})
}

func TestRemoteControl_Operate(t *testing.T) {
	t.Run("fails before a session is entered", func(t *testing.T) {
		st, _ := device.NewStereo()

		err := New(st).Operate(context.Background(), command.New(command.AdjustVolume, 20))
		assert.ErrorIs(t, err, ErrSessionInactive)
		assert.Equal(t, 0, st.Volume())
	})

	t.Run("fails after a session has ended", func(t *testing.T) {
		st, _ := device.NewStereo()
		rc := New(st)

		require.NoError(t, rc.Session(context.Background(), func(context.Context, *RemoteControl) error { return nil }))

		assert.ErrorIs(t, rc.Operate(context.Background()), ErrSessionInactive)
	})

	t.Run("uses the provided dispatcher", func(t *testing.T) {
		st, _ := device.NewStereo()
		rc := New(st, WithDispatcher(command.NewDispatcher(command.ActivateOperation, command.DeactivateOperation)))

		err := rc.Session(context.Background(), func(ctx context.Context, rc *RemoteControl) error {
			return rc.Operate(ctx, command.New(command.AdjustVolume, 20))
		})

		assert.ErrorIs(t, err, capabilities.ErrUnsupportedOperation)
	})

	t.Run("invalid arguments are reported with the failing index", func(t *testing.T) {
		tv, _ := device.NewTelevision()

		err := New(tv).Session(context.Background(), func(ctx context.Context, rc *RemoteControl) error {
			return rc.Operate(ctx, command.New(command.SelectChannel, 5), command.New(command.AdjustVolume, 500))
		})

		var opErr *OperateError
		require.ErrorAs(t, err, &opErr)
		assert.Equal(t, 1, opErr.Index)
		assert.ErrorIs(t, err, capabilities.ErrInvalidArgument)
		assert.Equal(t, 5, tv.Channel())
	})
}

func TestWithPower(t *testing.T) {
	t.Run("powers a device for the scope with typed access", func(t *testing.T) {
		tv, _ := device.NewTelevision()

		err := WithPower(context.Background(), tv, func(ctx context.Context, tv *device.Television) error {
			assert.Equal(t, device.On, tv.PowerState())
			return tv.SelectChannel(ctx, 4)
		})
		assert.NoError(t, err)

		assert.Equal(t, 4, tv.Channel())
		assert.Equal(t, device.Off, tv.PowerState())
	})

	t.Run("deactivates when the scope fails", func(t *testing.T) {
		tv, _ := device.NewTelevision()

		err := WithPower(context.Background(), tv, func(ctx context.Context, tv *device.Television) error {
			return tv.SelectChannel(ctx, 0)
		})
		assert.ErrorIs(t, err, capabilities.ErrInvalidArgument)
		assert.Equal(t, device.Off, tv.PowerState())
	})

	t.Run("a volume only reference exposes no channel operation", func(t *testing.T) {
		st, _ := device.NewStereo()

		var va capabilities.VolumeAdjust = st
		err := WithPower(context.Background(), va, func(ctx context.Context, va capabilities.VolumeAdjust) error {
			return va.AdjustVolume(ctx, 12)
		})
		assert.NoError(t, err)
		assert.Equal(t, 12, st.Volume())
	})
}

func TestState_String(t *testing.T) {
	t.Run("renders each state", func(t *testing.T) {
		assert.Equal(t, "Created", Created.String())
		assert.Equal(t, "Active", Active.String())
		assert.Equal(t, "Inactive", Inactive.String())
		assert.Equal(t, "Unknown(9)", State(9).String())
	})
}
