package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"

	mlapp "mindlink/internal/app"
)

func configureSystemTray(fyApp fyne.App, window fyne.Window, quit func()) {
	desk, ok := fyApp.(desktop.App)
	if !ok {
		return
	}

	desk.SetSystemTrayIcon(theme.ComputerIcon())
	desk.SetSystemTrayMenu(fyne.NewMenu(mlapp.Name,
		fyne.NewMenuItem("Show", func() {
			appLogger.Debug("system tray show action invoked")
			window.Show()
			window.RequestFocus()
		}),
		fyne.NewMenuItem("Quit", func() {
			appLogger.Debug("system tray quit action invoked")
			quit()
		}),
	))
}
