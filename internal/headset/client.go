// Package headset defines the boundary to the vendor device client. The
// client owns Bluetooth/WiFi negotiation, link failover, timeouts, and the
// cloud protocol; this package only describes the surface the rest of the
// app consumes.
package headset

import "context"

// MetricPowerByBand is the metric key for the band-power stream.
const MetricPowerByBand = "powerByBand"

// Client is the vendor device client surface.
//
// Stream methods return a receive channel plus a cancel func that releases
// the subscription. Every stream delivers its current value immediately on
// subscribe and each later emission afterwards, so a one-shot read is
// "receive once, then cancel".
type Client interface {
	StreamingStates() (<-chan StreamingState, func())
	BluetoothPhases() (<-chan BluetoothPhase, func())
	DeviceStatuses() (<-chan DeviceStatus, func())
	BandPowerStream(metric string) (<-chan BandPower, func())
	AuthStates() (<-chan AuthState, func())

	// DeviceInfo performs one protocol round trip. The link cannot
	// multiplex it with connection setup, so never call it while a
	// connect is in flight.
	DeviceInfo(ctx context.Context) (DeviceInfo, error)

	Login(ctx context.Context, creds Credentials) error
	SelectDevice(ctx context.Context, choose func([]Device) Device) (Device, error)

	ConnectBluetooth(ctx context.Context) error
	DisconnectBluetooth(ctx context.Context) error

	// Close tears down the whole session regardless of link state.
	Close() error
}

// Options configure client construction. Construction always succeeds;
// invalid combinations degrade to the defaults below.
type Options struct {
	// AutoSelectDevice lets the client pick the account's device without
	// an explicit SelectDevice call.
	AutoSelectDevice bool
	// BluetoothManualConnect disables implicit connection attempts so
	// call sites control connection timing explicitly.
	BluetoothManualConnect bool
	// Mode is the transport preference with fallback behavior.
	Mode StreamingMode
}

// DefaultOptions returns the demo configuration: automatic device
// selection, manual Bluetooth connect, Bluetooth preferred with WiFi
// fallback on link loss.
func DefaultOptions() Options {
	return Options{
		AutoSelectDevice:       true,
		BluetoothManualConnect: true,
		Mode:                   StreamingBluetoothWithWifiFallback,
	}
}
