package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	mlapp "mindlink/internal/app"
	"mindlink/internal/headset"
	"mindlink/internal/headset/sim"
)

func TestPresentationListenersLogPhaseAndTransportChanges(t *testing.T) {
	test.NewApp()

	h := sim.New(sim.Config{})
	defer func() { _ = h.Close() }()

	session := mlapp.NewSession(mlapp.SessionDeps{Client: h})
	dep := Dependencies{Session: session}
	view := buildMainView(dep)

	controller := newStreamingController(
		h.DeviceInfo,
		func() (<-chan headset.BandPower, func()) {
			return h.BandPowerStream(headset.MetricPowerByBand)
		},
		func(transport headset.Transport) {
			session.Events.Info("Transport changed: " + transport.DisplayName())
		},
		nil, nil, nil, nil,
	)
	defer controller.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	session.Start(ctx)
	defer session.Stop()

	stop := bindPresentationListeners(dep, view, controller)
	defer stop()

	if _, err := session.Connect(ctx); err != nil {
		t.Fatalf("connect: %v", err)
	}
	waitForCondition(t, func() bool {
		return hasEventMessage(session.Events, "Bluetooth phase: connected")
	})

	h.DropBluetooth()
	waitForCondition(t, func() bool {
		return hasEventMessage(session.Events, "Transport changed: WiFi")
	})
}

func TestPresentationListenersStopPreventsFurtherLogLines(t *testing.T) {
	test.NewApp()

	h := sim.New(sim.Config{})
	defer func() { _ = h.Close() }()

	session := mlapp.NewSession(mlapp.SessionDeps{Client: h})
	dep := Dependencies{Session: session}
	view := buildMainView(dep)
	controller := newStreamingController(nil, nil, nil, nil, nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	session.Start(ctx)
	defer session.Stop()

	stop := bindPresentationListeners(dep, view, controller)
	stop()
	stop()

	if _, err := session.Connect(ctx); err != nil {
		t.Fatalf("connect: %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	if hasEventMessage(session.Events, "Bluetooth phase") {
		t.Fatal("expected no phase log lines after stop")
	}
}

func TestPresentationListenersNilSessionReturnsNoopStop(t *testing.T) {
	stop := bindPresentationListeners(Dependencies{}, nil, nil)
	stop()
	stop()
}

func hasEventMessage(events *mlapp.EventLog, substr string) bool {
	for _, entry := range events.Recent() {
		if strings.Contains(entry.Message, substr) {
			return true
		}
	}

	return false
}

func waitForCondition(t *testing.T, cond func() bool) {
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
