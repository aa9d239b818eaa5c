package app

// Bus topics republished by the session runtime.
const (
	TopicStreamingState = "headset.streaming_state"
	TopicBluetoothPhase = "headset.bluetooth_phase"
	TopicLogEntry       = "session.log"
)
