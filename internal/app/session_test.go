package app

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"mindlink/internal/bus"
	"mindlink/internal/config"
	"mindlink/internal/headset"
	"mindlink/internal/headset/sim"
)

func TestSessionMirrorsStreamingStateIntoContainer(t *testing.T) {
	h := sim.New(sim.Config{})
	defer func() { _ = h.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := newTestSession(t, h, config.CloudConfig{})
	s.Start(ctx)
	defer s.Stop()

	if _, err := s.Connect(ctx); err != nil {
		t.Fatalf("connect: %v", err)
	}

	waitFor(t, func() bool {
		st := s.StreamingState.Load()

		return st.Connected && st.ActiveTransport == headset.TransportBluetooth
	})
	waitFor(t, func() bool {
		return s.BluetoothPhase.Load() == headset.PhaseConnected
	})
}

func TestSessionContainerTracksEveryLaterEmission(t *testing.T) {
	h := sim.New(sim.Config{})
	defer func() { _ = h.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := newTestSession(t, h, config.CloudConfig{})
	s.Start(ctx)
	defer s.Stop()

	if _, err := s.Connect(ctx); err != nil {
		t.Fatalf("connect: %v", err)
	}
	waitFor(t, func() bool { return s.StreamingState.Load().Connected })

	h.DropBluetooth()
	waitFor(t, func() bool {
		st := s.StreamingState.Load()

		return st.Connected && st.ActiveTransport == headset.TransportWifi
	})

	h.RestoreBluetooth()
	waitFor(t, func() bool {
		return s.StreamingState.Load().ActiveTransport == headset.TransportBluetooth
	})
}

func TestSessionRepublishesOnBus(t *testing.T) {
	h := sim.New(sim.Config{})
	defer func() { _ = h.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := bus.New(slog.Default())
	defer b.Close()
	sub := b.Subscribe(TopicStreamingState)
	defer b.Unsubscribe(sub, TopicStreamingState)

	s := NewSession(SessionDeps{Client: h, Bus: b})
	s.Start(ctx)
	defer s.Stop()

	if _, err := s.Connect(ctx); err != nil {
		t.Fatalf("connect: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case raw := <-sub:
			st, ok := raw.(headset.StreamingState)
			if ok && st.Connected {
				return
			}
		case <-deadline:
			t.Fatal("no connected streaming state republished on bus")
		}
	}
}

func TestSessionStartIsIdempotent(t *testing.T) {
	h := sim.New(sim.Config{})
	defer func() { _ = h.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := newTestSession(t, h, config.CloudConfig{})
	s.Start(ctx)
	s.Start(ctx)
	defer s.Stop()

	if got := len(s.cancels); got != 2 {
		t.Fatalf("expected exactly two mirror subscriptions, got %d", got)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
