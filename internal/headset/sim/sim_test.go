package sim

import (
	"context"
	"errors"
	"testing"

	"mindlink/internal/headset"
)

func TestConnectBluetoothPublishesConnectedState(t *testing.T) {
	h := New(Config{})
	defer func() { _ = h.Close() }()

	if err := h.ConnectBluetooth(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}

	states, cancel := h.StreamingStates()
	defer cancel()
	st := <-states
	if !st.Connected {
		t.Fatal("expected connected streaming state")
	}
	if st.ActiveTransport != headset.TransportBluetooth {
		t.Fatalf("expected bluetooth transport, got %q", st.ActiveTransport)
	}

	phases, cancelPhases := h.BluetoothPhases()
	defer cancelPhases()
	if phase := <-phases; phase != headset.PhaseConnected {
		t.Fatalf("expected connected phase, got %q", phase)
	}
}

func TestConnectBluetoothIsIdempotent(t *testing.T) {
	h := New(Config{})
	defer func() { _ = h.Close() }()

	if err := h.ConnectBluetooth(context.Background()); err != nil {
		t.Fatalf("first connect: %v", err)
	}
	if err := h.ConnectBluetooth(context.Background()); err != nil {
		t.Fatalf("second connect: %v", err)
	}
}

func TestConnectBluetoothForcedFailureLeavesPhaseDisconnected(t *testing.T) {
	wantErr := errors.New("radio unavailable")
	h := New(Config{ConnectErr: wantErr})
	defer func() { _ = h.Close() }()

	if err := h.ConnectBluetooth(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("expected forced connect error, got %v", err)
	}

	phases, cancel := h.BluetoothPhases()
	defer cancel()
	if phase := <-phases; phase != headset.PhaseDisconnected {
		t.Fatalf("expected disconnected phase, got %q", phase)
	}
}

func TestDropBluetoothFallsBackToWifiWhenFallbackConfigured(t *testing.T) {
	h := New(Config{Options: headset.DefaultOptions()})
	defer func() { _ = h.Close() }()

	if err := h.ConnectBluetooth(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	h.DropBluetooth()

	st := load(h)
	if !st.Connected {
		t.Fatal("expected session to stay connected over fallback link")
	}
	if st.ActiveTransport != headset.TransportWifi {
		t.Fatalf("expected wifi transport after drop, got %q", st.ActiveTransport)
	}

	h.RestoreBluetooth()
	if st := load(h); st.ActiveTransport != headset.TransportBluetooth {
		t.Fatalf("expected bluetooth transport after restore, got %q", st.ActiveTransport)
	}
}

func TestDropBluetoothDisconnectsWithoutFallback(t *testing.T) {
	h := New(Config{Options: headset.Options{
		AutoSelectDevice:       true,
		BluetoothManualConnect: true,
		Mode:                   headset.StreamingWifiOnly,
	}})
	defer func() { _ = h.Close() }()

	if err := h.ConnectBluetooth(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	h.DropBluetooth()

	if st := load(h); st.Connected {
		t.Fatal("expected disconnected state without fallback mode")
	}
}

func TestLoginValidatesConfiguredAccounts(t *testing.T) {
	h := New(Config{Accounts: map[string]string{"user@example.com": "hunter2"}})
	defer func() { _ = h.Close() }()
	ctx := context.Background()

	if err := h.Login(ctx, headset.Credentials{Email: "user@example.com", Password: "wrong"}); err == nil {
		t.Fatal("expected login failure for wrong password")
	}
	if err := h.Login(ctx, headset.Credentials{Email: "user@example.com", Password: "hunter2"}); err != nil {
		t.Fatalf("login: %v", err)
	}

	auth, cancel := h.AuthStates()
	defer cancel()
	got := <-auth
	if !got.LoggedIn || got.UserID != "user@example.com" {
		t.Fatalf("unexpected auth state after login: %+v", got)
	}
}

func TestSelectDeviceAppliesChooser(t *testing.T) {
	h := New(Config{Devices: []headset.Device{
		{DeviceID: "a", Nickname: "first"},
		{DeviceID: "b", Nickname: "second"},
	}})
	defer func() { _ = h.Close() }()

	chosen, err := h.SelectDevice(context.Background(), func(devices []headset.Device) headset.Device {
		return devices[1]
	})
	if err != nil {
		t.Fatalf("select device: %v", err)
	}
	if chosen.DeviceID != "b" {
		t.Fatalf("expected device b, got %q", chosen.DeviceID)
	}
	if got := h.SelectedDevice(); got.DeviceID != "b" {
		t.Fatalf("expected selected device b, got %q", got.DeviceID)
	}
}

func TestDeviceInfoRequiresActiveLink(t *testing.T) {
	h := New(Config{})
	defer func() { _ = h.Close() }()
	ctx := context.Background()

	if _, err := h.DeviceInfo(ctx); err == nil {
		t.Fatal("expected device info to fail without a link")
	}

	if err := h.ConnectBluetooth(ctx); err != nil {
		t.Fatalf("connect: %v", err)
	}
	info, err := h.DeviceInfo(ctx)
	if err != nil {
		t.Fatalf("device info: %v", err)
	}
	if info.DeviceID == "" || info.Channels <= 0 {
		t.Fatalf("unexpected default device info: %+v", info)
	}
}

func TestCloseIsIdempotentAndDisconnects(t *testing.T) {
	h := New(Config{})
	if err := h.ConnectBluetooth(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}

	if err := h.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if st := load(h); st.Connected {
		t.Fatal("expected disconnected state after close")
	}
	if err := h.ConnectBluetooth(context.Background()); err == nil {
		t.Fatal("expected connect to fail after close")
	}
}

func load(h *Headset) headset.StreamingState {
	states, cancel := h.StreamingStates()
	defer cancel()

	return <-states
}
