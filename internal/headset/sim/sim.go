// Package sim implements a simulated headset client so the demo binaries
// and tests run without hardware. It stands in for the vendor SDK behind
// headset.Client; it is not a model of real vendor behavior.
package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"mindlink/internal/headset"
	"mindlink/internal/state"
)

const (
	defaultStatusInterval = 2 * time.Second
	defaultMetricInterval = 250 * time.Millisecond
)

// Config customizes the simulated headset. The zero value is usable.
type Config struct {
	Options headset.Options
	Info    headset.DeviceInfo
	Devices []headset.Device

	// Accounts maps email to password. A nil map accepts any non-empty
	// credential pair.
	Accounts map[string]string
	// LoggedInUser pre-authenticates the session when non-empty.
	LoggedInUser string

	// Forced failures for demos and tests.
	ConnectErr    error
	DisconnectErr error
	CloseErr      error
	InfoErr       error
	SelectErr     error

	StatusInterval time.Duration
	MetricInterval time.Duration
}

// Headset is a simulated headset.Client.
type Headset struct {
	cfg Config

	streaming *state.Value[headset.StreamingState]
	phase     *state.Value[headset.BluetoothPhase]
	status    *state.Value[headset.DeviceStatus]
	bandPower *state.Value[headset.BandPower]
	auth      *state.Value[headset.AuthState]

	mu       sync.Mutex
	closed   bool
	emitStop chan struct{}
	selected headset.Device
	battery  int
}

// New builds a simulated headset. Construction never fails; missing config
// fields fall back to demo defaults.
func New(cfg Config) *Headset {
	if cfg.Options == (headset.Options{}) {
		cfg.Options = headset.DefaultOptions()
	}
	if cfg.Info.DeviceID == "" {
		cfg.Info = headset.DeviceInfo{
			DeviceID:        "sim-0001",
			DeviceNickname:  "lab headset",
			Model:           "sim",
			ModelName:       "Simulated Crown",
			ModelVersion:    "3",
			FirmwareVersion: "1.4.2",
			APIVersion:      "2.0",
			ChannelNames:    []string{"CP3", "C3", "F5", "PO3", "PO4", "F6", "C4", "CP4"},
			Channels:        8,
			SamplingRate:    256,
		}
	}
	if len(cfg.Devices) == 0 {
		cfg.Devices = []headset.Device{{
			DeviceID:  cfg.Info.DeviceID,
			Nickname:  cfg.Info.DeviceNickname,
			ModelName: cfg.Info.ModelName,
		}}
	}
	if cfg.StatusInterval <= 0 {
		cfg.StatusInterval = defaultStatusInterval
	}
	if cfg.MetricInterval <= 0 {
		cfg.MetricInterval = defaultMetricInterval
	}

	h := &Headset{
		cfg: cfg,
		streaming: state.NewValue(headset.StreamingState{
			Connected:       false,
			ActiveTransport: headset.TransportBluetooth,
			Mode:            cfg.Options.Mode,
		}),
		phase:     state.NewValue(headset.PhaseDisconnected),
		status:    state.NewValue(headset.DeviceStatus{State: "offline"}),
		bandPower: state.NewValue(headset.BandPower{Label: headset.MetricPowerByBand}),
		auth:      state.NewValue(headset.AuthState{}),
		battery:   92,
	}
	if user := strings.TrimSpace(cfg.LoggedInUser); user != "" {
		h.auth.Store(headset.AuthState{LoggedIn: true, UserID: user})
	}

	return h
}

func (h *Headset) StreamingStates() (<-chan headset.StreamingState, func()) {
	return h.streaming.Watch()
}

func (h *Headset) BluetoothPhases() (<-chan headset.BluetoothPhase, func()) {
	return h.phase.Watch()
}

func (h *Headset) DeviceStatuses() (<-chan headset.DeviceStatus, func()) {
	return h.status.Watch()
}

func (h *Headset) BandPowerStream(metric string) (<-chan headset.BandPower, func()) {
	// Only powerByBand is simulated; other metric keys share the stream.
	_ = metric

	return h.bandPower.Watch()
}

func (h *Headset) AuthStates() (<-chan headset.AuthState, func()) {
	return h.auth.Watch()
}

func (h *Headset) ConnectBluetooth(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return errors.New("client is closed")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	current := h.streaming.Load()
	if current.Connected && current.ActiveTransport == headset.TransportBluetooth {
		return nil
	}

	h.phase.Store(headset.PhaseConnecting)
	if h.cfg.ConnectErr != nil {
		h.phase.Store(headset.PhaseDisconnected)

		return h.cfg.ConnectErr
	}

	h.phase.Store(headset.PhaseConnected)
	h.streaming.Store(headset.StreamingState{
		Connected:       true,
		ActiveTransport: headset.TransportBluetooth,
		Mode:            h.cfg.Options.Mode,
	})
	h.startEmittersLocked()

	return nil
}

func (h *Headset) DisconnectBluetooth(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if h.cfg.DisconnectErr != nil {
		return h.cfg.DisconnectErr
	}

	h.stopEmittersLocked()
	h.phase.Store(headset.PhaseDisconnected)
	h.streaming.Store(headset.StreamingState{
		Connected:       false,
		ActiveTransport: headset.TransportBluetooth,
		Mode:            h.cfg.Options.Mode,
	})
	h.status.Store(headset.DeviceStatus{State: "offline"})

	return nil
}

// DropBluetooth simulates sudden Bluetooth link loss. With a WiFi fallback
// mode configured the session stays connected over WiFi; otherwise the
// session disconnects.
func (h *Headset) DropBluetooth() {
	h.mu.Lock()
	defer h.mu.Unlock()

	current := h.streaming.Load()
	if !current.Connected || current.ActiveTransport != headset.TransportBluetooth {
		return
	}

	h.phase.Store(headset.PhaseReconnecting)
	h.phase.Store(headset.PhaseDisconnected)

	if h.cfg.Options.Mode == headset.StreamingBluetoothWithWifiFallback {
		h.streaming.Store(headset.StreamingState{
			Connected:       true,
			ActiveTransport: headset.TransportWifi,
			Mode:            h.cfg.Options.Mode,
		})

		return
	}

	h.stopEmittersLocked()
	h.streaming.Store(headset.StreamingState{
		Connected:       false,
		ActiveTransport: headset.TransportBluetooth,
		Mode:            h.cfg.Options.Mode,
	})
}

// RestoreBluetooth simulates the Bluetooth link coming back after a drop.
func (h *Headset) RestoreBluetooth() {
	h.mu.Lock()
	defer h.mu.Unlock()

	current := h.streaming.Load()
	if !current.Connected {
		return
	}

	h.phase.Store(headset.PhaseConnected)
	h.streaming.Store(headset.StreamingState{
		Connected:       true,
		ActiveTransport: headset.TransportBluetooth,
		Mode:            h.cfg.Options.Mode,
	})
}

func (h *Headset) DeviceInfo(ctx context.Context) (headset.DeviceInfo, error) {
	if err := ctx.Err(); err != nil {
		return headset.DeviceInfo{}, err
	}
	if h.cfg.InfoErr != nil {
		return headset.DeviceInfo{}, h.cfg.InfoErr
	}
	if !h.streaming.Load().Connected {
		return headset.DeviceInfo{}, errors.New("no active link")
	}

	return h.cfg.Info, nil
}

func (h *Headset) Login(ctx context.Context, creds headset.Credentials) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	email := strings.TrimSpace(creds.Email)
	password := creds.Password
	if email == "" || password == "" {
		return errors.New("email and password are required")
	}
	if h.cfg.Accounts != nil {
		want, ok := h.cfg.Accounts[email]
		if !ok || want != password {
			return fmt.Errorf("invalid credentials for %s", email)
		}
	}

	h.auth.Store(headset.AuthState{LoggedIn: true, UserID: email})

	return nil
}

func (h *Headset) SelectDevice(ctx context.Context, choose func([]headset.Device) headset.Device) (headset.Device, error) {
	if err := ctx.Err(); err != nil {
		return headset.Device{}, err
	}
	if h.cfg.SelectErr != nil {
		return headset.Device{}, h.cfg.SelectErr
	}
	if choose == nil {
		return headset.Device{}, errors.New("device chooser is required")
	}

	devices := make([]headset.Device, len(h.cfg.Devices))
	copy(devices, h.cfg.Devices)
	chosen := choose(devices)
	if chosen.DeviceID == "" {
		return headset.Device{}, errors.New("chooser selected no device")
	}

	h.mu.Lock()
	h.selected = chosen
	h.mu.Unlock()

	return chosen, nil
}

// SelectedDevice reports the device picked by the last SelectDevice call.
func (h *Headset) SelectedDevice() headset.Device {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.selected
}

func (h *Headset) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true
	h.stopEmittersLocked()
	h.phase.Store(headset.PhaseDisconnected)
	h.streaming.Store(headset.StreamingState{
		Connected:       false,
		ActiveTransport: headset.TransportBluetooth,
		Mode:            h.cfg.Options.Mode,
	})

	return h.cfg.CloseErr
}

func (h *Headset) startEmittersLocked() {
	if h.emitStop != nil {
		return
	}
	stop := make(chan struct{})
	h.emitStop = stop
	go h.runEmitters(stop)
}

func (h *Headset) stopEmittersLocked() {
	if h.emitStop == nil {
		return
	}
	close(h.emitStop)
	h.emitStop = nil
}

func (h *Headset) runEmitters(stop <-chan struct{}) {
	statusTicker := time.NewTicker(h.cfg.StatusInterval)
	metricTicker := time.NewTicker(h.cfg.MetricInterval)
	defer statusTicker.Stop()
	defer metricTicker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-statusTicker.C:
			h.status.Store(h.nextStatus())
		case <-metricTicker.C:
			h.bandPower.Store(h.nextBandPower())
		}
	}
}

func (h *Headset) nextStatus() headset.DeviceStatus {
	h.mu.Lock()
	if h.battery > 1 && rand.IntN(10) == 0 {
		h.battery--
	}
	battery := h.battery
	h.mu.Unlock()

	status := headset.DeviceStatus{
		Battery:       battery,
		Charging:      false,
		State:         "online",
		SleepMode:     false,
		ClaimedBy:     h.auth.Load().UserID,
		LastHeartbeat: time.Now(),
	}
	if h.streaming.Load().ActiveTransport == headset.TransportWifi {
		status.SSID = "lab-wifi"
	}

	return status
}

func (h *Headset) nextBandPower() headset.BandPower {
	channels := h.cfg.Info.Channels
	if channels <= 0 {
		channels = 8
	}

	data := make(map[string][]float64, len(headset.Bands()))
	for _, band := range headset.Bands() {
		values := make([]float64, channels)
		for i := range values {
			values[i] = rand.Float64()
		}
		data[band] = values
	}

	return headset.BandPower{
		Label: headset.MetricPowerByBand,
		Data:  data,
		At:    time.Now(),
	}
}
