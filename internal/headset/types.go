package headset

import "time"

// Transport identifies which link currently carries the streaming session.
type Transport string

const (
	TransportBluetooth Transport = "bluetooth"
	TransportWifi      Transport = "wifi"
)

// DisplayName returns the transport name formatted for user-facing text.
func (t Transport) DisplayName() string {
	switch t {
	case TransportBluetooth:
		return "Bluetooth"
	case TransportWifi:
		return "WiFi"
	default:
		return string(t)
	}
}

// StreamingMode is the configured transport preference, including the
// fallback behavior applied by the device client when the preferred link
// drops.
type StreamingMode string

const (
	StreamingWifiOnly                  StreamingMode = "wifi-only"
	StreamingBluetoothWithWifiFallback StreamingMode = "bluetooth-with-wifi-fallback"
	StreamingWifiWithBluetoothFallback StreamingMode = "wifi-with-bluetooth-fallback"
)

// StreamingState is the aggregate link state reported by the device client.
type StreamingState struct {
	Connected       bool
	ActiveTransport Transport
	Mode            StreamingMode
}

// BluetoothPhase is the raw Bluetooth link lifecycle phase.
type BluetoothPhase string

const (
	PhaseDisconnected BluetoothPhase = "disconnected"
	PhaseScanning     BluetoothPhase = "scanning"
	PhaseConnecting   BluetoothPhase = "connecting"
	PhaseConnected    BluetoothPhase = "connected"
	PhaseReconnecting BluetoothPhase = "reconnecting"
)

// DeviceInfo is the headset identity snapshot. Fetching it costs a full
// protocol round trip, so call sites fetch it once per link activation.
type DeviceInfo struct {
	DeviceID        string
	DeviceNickname  string
	Model           string
	ModelName       string
	ModelVersion    string
	FirmwareVersion string
	APIVersion      string
	ChannelNames    []string
	Channels        int
	SamplingRate    int
}

// DeviceStatus is the periodic headset health snapshot.
type DeviceStatus struct {
	Battery       int
	Charging      bool
	State         string
	SleepMode     bool
	SSID          string
	ClaimedBy     string
	LastHeartbeat time.Time
}

// Frequency bands reported by the band-power metric.
const (
	BandAlpha = "alpha"
	BandBeta  = "beta"
	BandDelta = "delta"
	BandGamma = "gamma"
	BandTheta = "theta"
)

// Bands lists the band-power frequency bands in display order.
func Bands() []string {
	return []string{BandAlpha, BandBeta, BandDelta, BandGamma, BandTheta}
}

// BandPower is one computed signal-power readout grouped by frequency band.
// Data holds one value per channel for each band.
type BandPower struct {
	Label string
	Data  map[string][]float64
	At    time.Time
}

// AuthState reports the current cloud authentication state.
type AuthState struct {
	LoggedIn bool
	UserID   string
}

// Device is one claimable headset in the user's cloud account.
type Device struct {
	DeviceID  string
	Nickname  string
	ModelName string
}

// Credentials are cloud account credentials.
type Credentials struct {
	Email    string
	Password string
}
