package ui

import (
	"fmt"

	"fyne.io/fyne/v2"

	"mindlink/internal/headset"
)

func runWithApp(dep Dependencies, fyApp fyne.App) error {
	if dep.Session == nil {
		return fmt.Errorf("ui: session dependency is required")
	}

	appLogger.Info("starting UI runtime")

	window := fyApp.NewWindow("mindlink")
	window.Resize(fyne.NewSize(900, 640))

	view := buildMainView(dep)

	client := dep.Session.Client()
	events := dep.Session.Events
	controller := newStreamingController(
		client.DeviceInfo,
		func() (<-chan headset.BandPower, func()) {
			return client.BandPowerStream(headset.MetricPowerByBand)
		},
		func(transport headset.Transport) {
			events.Info(fmt.Sprintf("Transport changed: %s", transport.DisplayName()))
		},
		func(info headset.DeviceInfo) {
			fyne.Do(func() {
				view.deviceCard.Update(info)
			})
		},
		func(err error) {
			events.Warn(err.Error())
		},
		func(reading headset.BandPower) {
			fyne.Do(func() {
				view.bandView.Update(reading)
			})
		},
		func() {
			fyne.Do(func() {
				view.bandView.Clear()
			})
		},
	)

	stopNotifications := startNotificationService(dep, fyApp)
	stopListeners := bindPresentationListeners(dep, view, controller)
	// Start checks only after listeners are attached so the first snapshot
	// is not missed.
	if dep.OnStartUpdateChecker != nil {
		dep.OnStartUpdateChecker()
	}

	window.SetContent(view.content)

	runtime := newUIRuntime(fyApp, window, stopListeners, controller.Stop, stopNotifications, dep.OnQuit)
	runtime.BindCloseIntercept()
	configureSystemTray(fyApp, window, runtime.Quit)

	runtime.Run()

	return nil
}
