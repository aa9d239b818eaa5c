package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"mindlink/internal/headset"
)

// deviceInfoCard shows the headset identity snapshot. It stays on its
// placeholder text until the first device info fetch succeeds.
type deviceInfoCard struct {
	label *widget.Label
}

func newDeviceInfoCard() *deviceInfoCard {
	label := widget.NewLabel("No device info yet")
	label.Wrapping = fyne.TextWrapWord

	return &deviceInfoCard{label: label}
}

func (c *deviceInfoCard) Widget() fyne.CanvasObject {
	return c.label
}

func (c *deviceInfoCard) Update(info headset.DeviceInfo) {
	c.label.SetText(formatDeviceInfo(info))
}

func formatDeviceInfo(info headset.DeviceInfo) string {
	name := strings.TrimSpace(info.DeviceNickname)
	if name == "" {
		name = info.DeviceID
	}

	lines := []string{
		fmt.Sprintf("Device: %s", name),
		fmt.Sprintf("Model: %s (%s)", info.ModelName, info.ModelVersion),
		fmt.Sprintf("Firmware: %s", info.FirmwareVersion),
		fmt.Sprintf("Channels: %d @ %d Hz", info.Channels, info.SamplingRate),
	}

	return strings.Join(lines, "\n")
}
