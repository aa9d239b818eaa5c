package app

import (
	"context"
	"errors"
	"sync"

	"log/slog"

	"mindlink/internal/bus"
	"mindlink/internal/config"
	"mindlink/internal/headset"
	"mindlink/internal/state"
)

// Session owns one headset connection: the device client handle, the two
// republished current-value containers, and the session event log. It is
// constructed explicitly by whoever runs the app; there are no package
// singletons.
type Session struct {
	logger    *slog.Logger
	bus       bus.MessageBus
	client    headset.Client
	cloud     config.CloudConfig
	preflight func() error

	// StreamingState and BluetoothPhase always hold the most recent value
	// emitted by the device client and can be read synchronously.
	StreamingState *state.Value[headset.StreamingState]
	BluetoothPhase *state.Value[headset.BluetoothPhase]

	Events *EventLog

	startOnce sync.Once
	cancels   []func()
}

// SessionDeps are the collaborators a Session needs.
type SessionDeps struct {
	Logger *slog.Logger
	Bus    bus.MessageBus
	Client headset.Client
	Cloud  config.CloudConfig
	Events *EventLog
	// Preflight optionally checks the local Bluetooth adapter before a
	// connect attempt. Its failure is degraded, never fatal.
	Preflight func() error
}

func NewSession(deps SessionDeps) *Session {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default().With("component", "session")
	}
	events := deps.Events
	if events == nil {
		events = NewEventLog(logger, deps.Bus, nil)
	}

	return &Session{
		logger:    logger,
		bus:       deps.Bus,
		client:    deps.Client,
		cloud:     deps.Cloud,
		preflight: deps.Preflight,
		StreamingState: state.NewValue(headset.StreamingState{
			ActiveTransport: headset.TransportBluetooth,
		}),
		BluetoothPhase: state.NewValue(headset.PhaseDisconnected),
		Events:         events,
	}
}

// Client exposes the underlying device client for stream consumers.
func (s *Session) Client() headset.Client {
	return s.client
}

// Start subscribes once to the client's streaming-state and Bluetooth
// phase sources and mirrors every emission into the containers and onto
// the bus. No filtering, no transformation.
func (s *Session) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		states, cancelStates := s.client.StreamingStates()
		phases, cancelPhases := s.client.BluetoothPhases()
		s.cancels = append(s.cancels, cancelStates, cancelPhases)

		go mirror(ctx, states, func(v headset.StreamingState) {
			s.StreamingState.Store(v)
			if s.bus != nil {
				s.bus.Publish(TopicStreamingState, v)
			}
		})
		go mirror(ctx, phases, func(v headset.BluetoothPhase) {
			s.BluetoothPhase.Store(v)
			if s.bus != nil {
				s.bus.Publish(TopicBluetoothPhase, v)
			}
		})
	})
}

// Stop releases the mirror subscriptions. The client itself is torn down
// by DisconnectAll.
func (s *Session) Stop() {
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
}

func mirror[T any](ctx context.Context, in <-chan T, apply func(T)) {
	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-in:
			if !ok {
				return
			}
			apply(v)
		}
	}
}

// firstValue performs a one-shot read: subscribe, take the first value,
// cancel. Streams deliver their current value first, so this never waits
// for a new emission.
func firstValue[T any](ctx context.Context, subscribe func() (<-chan T, func())) (T, error) {
	ch, cancel := subscribe()
	defer cancel()

	select {
	case v, ok := <-ch:
		if !ok {
			var zero T

			return zero, errors.New("stream closed")
		}

		return v, nil
	case <-ctx.Done():
		var zero T

		return zero, ctx.Err()
	}
}
