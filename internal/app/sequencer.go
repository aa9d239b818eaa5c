package app

import (
	"context"
	"fmt"

	"mindlink/internal/headset"
)

// StepError records a degraded (non-fatal) sub-step failure.
type StepError struct {
	Step string
	Err  error
}

func (e StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

// Report lists the degraded sub-steps of a connect or disconnect call.
// Callers must check it explicitly; a nil error with a non-empty report
// means the session is usable but a secondary feature failed.
type Report struct {
	Degraded []StepError
}

func (r Report) Ok() bool {
	return len(r.Degraded) == 0
}

func (r *Report) add(step string, err error) {
	r.Degraded = append(r.Degraded, StepError{Step: step, Err: err})
}

// Connect initiates the Bluetooth link, then runs the best-effort cloud
// login/device-selection sequence. Only the Bluetooth connect failure is
// fatal and returned; every other sub-step failure degrades into the
// report and the event log.
//
// Extended device info is deliberately never fetched here: the link cannot
// multiplex a second protocol operation during connection setup, so the
// presentation layer fetches it after it observes the connected state.
func (s *Session) Connect(ctx context.Context) (Report, error) {
	var report Report

	if s.preflight != nil {
		if err := s.preflight(); err != nil {
			s.Events.Warn(fmt.Sprintf("Bluetooth adapter check failed: %v", err))
			report.add("adapter preflight", err)
		}
	}

	if err := s.client.ConnectBluetooth(ctx); err != nil {
		s.Events.Error(fmt.Sprintf("Bluetooth connect failed: %v", err))

		return report, fmt.Errorf("connect bluetooth: %w", err)
	}

	// One-shot read purely for the log line; no lasting subscription.
	if st, err := firstValue(ctx, s.client.StreamingStates); err == nil {
		s.Events.Info(fmt.Sprintf(
			"Streaming connected=%t transport=%s mode=%s",
			st.Connected, st.ActiveTransport, st.Mode,
		))
	}

	report.Degraded = append(report.Degraded, s.cloudLogin(ctx)...)

	return report, nil
}

// DisconnectAll tears down the Bluetooth link and then the overall
// session. Both steps are independently best-effort: a failure in one is
// logged and reported but never prevents or masks the other, and neither
// is fatal to the caller.
func (s *Session) DisconnectAll(ctx context.Context) Report {
	var report Report

	if err := s.client.DisconnectBluetooth(ctx); err != nil {
		s.Events.Warn(fmt.Sprintf("Bluetooth disconnect failed: %v", err))
		report.add("bluetooth disconnect", err)
	}

	if err := s.client.Close(); err != nil {
		s.Events.Warn(fmt.Sprintf("Session close failed: %v", err))
		report.add("session close", err)
	} else {
		s.Events.Info("Session closed")
	}

	return report
}

// deviceChooser selects the device matching deviceID, falling back to the
// first available device when the id is empty or matches nothing.
func deviceChooser(deviceID string) func([]headset.Device) headset.Device {
	return func(devices []headset.Device) headset.Device {
		if len(devices) == 0 {
			return headset.Device{}
		}
		if deviceID != "" {
			for _, d := range devices {
				if d.DeviceID == deviceID {
					return d
				}
			}
		}

		return devices[0]
	}
}
