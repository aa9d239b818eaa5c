package app

import (
	"context"
	"fmt"

	"mindlink/internal/headset"
)

// cloudLogin runs the optional cloud authentication and device-selection
// sequence. Cloud features are strictly additive: missing credentials skip
// the whole sequence silently, and every failure degrades to a warning.
func (s *Session) cloudLogin(ctx context.Context) []StepError {
	if !s.cloud.Configured() {
		s.logger.Info("cloud login skipped: credentials not configured")

		return nil
	}

	var degraded []StepError

	auth, err := firstValue(ctx, s.client.AuthStates)
	if err != nil {
		s.logger.Warn("read auth state", "error", err)
		degraded = append(degraded, StepError{Step: "auth state", Err: err})
	}

	switch {
	case auth.LoggedIn:
		s.logger.Info("cloud login skipped: already authenticated", "user", auth.UserID)
	default:
		if err := s.client.Login(ctx, headset.Credentials{
			Email:    s.cloud.Email,
			Password: s.cloud.Password,
		}); err != nil {
			// Login failure does not abort device selection.
			s.Events.Warn(fmt.Sprintf("Cloud login failed: %v", err))
			degraded = append(degraded, StepError{Step: "cloud login", Err: err})
		} else {
			s.Events.Info("Cloud login succeeded")
		}
	}

	device, err := s.client.SelectDevice(ctx, deviceChooser(s.cloud.DeviceID))
	if err != nil {
		s.Events.Warn(fmt.Sprintf("Device selection failed: %v", err))
		degraded = append(degraded, StepError{Step: "device selection", Err: err})

		return degraded
	}
	s.Events.Info(fmt.Sprintf("Selected device %s (%s)", deviceDisplayName(device), device.DeviceID))

	return degraded
}

func deviceDisplayName(device headset.Device) string {
	if device.Nickname != "" {
		return device.Nickname
	}
	if device.ModelName != "" {
		return device.ModelName
	}

	return device.DeviceID
}
