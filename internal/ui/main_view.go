package ui

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	mlapp "mindlink/internal/app"
	"mindlink/internal/headset"
)

type mainView struct {
	content fyne.CanvasObject

	statusHeader  *widget.Label
	statusDetail  *widget.Label
	connectBtn    *widget.Button
	disconnectBtn *widget.Button

	deviceCard *deviceInfoCard
	bandView   *bandPowerView
	logPanel   *logPanel

	lastState headset.StreamingState
	lastPhase headset.BluetoothPhase
}

func buildMainView(dep Dependencies) *mainView {
	view := &mainView{
		statusHeader: widget.NewLabel(""),
		statusDetail: widget.NewLabel(""),
		deviceCard:   newDeviceInfoCard(),
		bandView:     newBandPowerView(),
	}
	view.statusHeader.TextStyle = fyne.TextStyle{Bold: true}

	var initial []mlapp.LogEntry
	if dep.Session != nil {
		initial = dep.Session.Events.Recent()
	}
	view.logPanel = newLogPanel(initial)

	view.connectBtn = widget.NewButton("Connect", func() {
		view.connectBtn.Disable()
		go func() {
			if dep.OnConnect == nil {
				return
			}
			if _, err := dep.OnConnect(context.Background()); err != nil {
				appLogger.Error("connect sequence failed", "error", err)
			}
			fyne.Do(func() {
				view.refreshButtons()
			})
		}()
	})
	view.disconnectBtn = widget.NewButton("Disconnect", func() {
		view.disconnectBtn.Disable()
		go func() {
			if dep.OnDisconnect == nil {
				return
			}
			dep.OnDisconnect(context.Background())
			fyne.Do(func() {
				view.refreshButtons()
			})
		}()
	})

	if dep.Session != nil {
		view.lastState = dep.Session.StreamingState.Load()
		view.lastPhase = dep.Session.BluetoothPhase.Load()
	}
	view.applyHeader()
	view.refreshButtons()

	controls := container.NewHBox(view.connectBtn, view.disconnectBtn)
	header := container.NewVBox(view.statusHeader, view.statusDetail, controls)
	cards := container.NewVBox(
		widget.NewCard("Device", "", view.deviceCard.Widget()),
		widget.NewCard("Band power", "", view.bandView.Widget()),
	)
	logCard := widget.NewCard("Session log", "", view.logPanel.Widget())

	split := container.NewHSplit(cards, logCard)
	split.SetOffset(0.4)
	view.content = container.NewBorder(header, nil, nil, nil, split)

	return view
}

// ApplyStreamingState updates the header and button enablement. Must run
// on the UI goroutine.
func (v *mainView) ApplyStreamingState(st headset.StreamingState) {
	v.lastState = st
	v.applyHeader()
	v.refreshButtons()
}

// ApplyBluetoothPhase updates the header and button enablement. Must run
// on the UI goroutine.
func (v *mainView) ApplyBluetoothPhase(phase headset.BluetoothPhase) {
	v.lastPhase = phase
	v.applyHeader()
	v.refreshButtons()
}

// ApplyDeviceStatus updates the status detail line. Must run on the UI
// goroutine.
func (v *mainView) ApplyDeviceStatus(status headset.DeviceStatus) {
	v.statusDetail.SetText(formatDeviceStatus(status))
}

func (v *mainView) applyHeader() {
	v.statusHeader.SetText(formatStreamingHeader(v.lastState, v.lastPhase))
}

// Connect is disabled while the headset already streams over Bluetooth.
// Disconnect is disabled while nothing streams and the Bluetooth link is
// fully down.
func (v *mainView) refreshButtons() {
	streamingBluetooth := v.lastState.Connected && v.lastState.ActiveTransport == headset.TransportBluetooth
	idle := !v.lastState.Connected && v.lastPhase == headset.PhaseDisconnected

	if streamingBluetooth {
		v.connectBtn.Disable()
	} else {
		v.connectBtn.Enable()
	}
	if idle {
		v.disconnectBtn.Disable()
	} else {
		v.disconnectBtn.Enable()
	}
}

func formatStreamingHeader(st headset.StreamingState, phase headset.BluetoothPhase) string {
	if !st.Connected {
		return fmt.Sprintf("Not streaming (bluetooth: %s)", phase)
	}

	return fmt.Sprintf("Streaming over %s (bluetooth: %s)", st.ActiveTransport.DisplayName(), phase)
}

func formatDeviceStatus(status headset.DeviceStatus) string {
	text := fmt.Sprintf("Battery %d%%", status.Battery)
	if status.Charging {
		text += " (charging)"
	}
	if status.SSID != "" {
		text += ", wifi " + status.SSID
	}
	if status.State != "" {
		text += ", " + status.State
	}

	return text
}
