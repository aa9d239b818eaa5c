// Package bluetoothutil checks the local Bluetooth adapter before the
// device client attempts a connection. The check is best-effort: a failure
// is surfaced as a warning, never as a fatal connect error, because the
// device client may still reach the headset over the fallback link.
package bluetoothutil

import (
	"fmt"
	"runtime"
	"strings"

	"tinygo.org/x/bluetooth"
)

// Preflight verifies that the default Bluetooth adapter can be enabled.
func Preflight() error {
	return enableAdapter(bluetooth.DefaultAdapter)
}

func enableAdapter(adapter *bluetooth.Adapter) error {
	if adapter == nil {
		return fmt.Errorf("no default bluetooth adapter")
	}
	if err := adapter.Enable(); err != nil {
		if isBenignEnableError(err) {
			return nil
		}

		return fmt.Errorf("enable bluetooth adapter: %w", err)
	}

	return nil
}

func isBenignEnableError(err error) bool {
	if err == nil || runtime.GOOS != "windows" {
		return false
	}

	// tinygo.org/x/bluetooth on Windows surfaces RoInitialize(S_FALSE=1) as
	// "Incorrect function.", even though this means COM is already initialized.
	msg := strings.TrimSpace(strings.ToLower(err.Error()))

	return msg == "incorrect function" || msg == "incorrect function."
}
