package ui

import (
	"sync"

	"fyne.io/fyne/v2"
)

type uiRuntime struct {
	fyApp  fyne.App
	window fyne.Window

	stopListeners     func()
	stopController    func()
	stopNotifications func()
	onQuit            func()

	shutdownOnce sync.Once
}

func newUIRuntime(fyApp fyne.App, window fyne.Window, stopListeners, stopController, stopNotifications, onQuit func()) *uiRuntime {
	return &uiRuntime{
		fyApp:             fyApp,
		window:            window,
		stopListeners:     stopListeners,
		stopController:    stopController,
		stopNotifications: stopNotifications,
		onQuit:            onQuit,
	}
}

func (r *uiRuntime) BindCloseIntercept() {
	if r.window == nil {
		return
	}
	r.window.SetCloseIntercept(func() {
		appLogger.Debug("main window close intercepted: hiding to tray")
		r.window.Hide()
	})
}

func (r *uiRuntime) Quit() {
	r.shutdownOnce.Do(func() {
		appLogger.Info("quitting UI runtime")
		r.stop()
		if r.fyApp != nil {
			r.fyApp.Quit()
		}
	})
}

func (r *uiRuntime) Run() {
	if r.window != nil {
		r.window.Show()
	}
	if r.fyApp != nil {
		r.fyApp.Run()
	}
	appLogger.Info("UI runtime stopped")
	r.shutdownOnce.Do(func() {
		r.stop()
	})
}

func (r *uiRuntime) stop() {
	if r.stopListeners != nil {
		r.stopListeners()
	}
	if r.stopController != nil {
		r.stopController()
	}
	if r.stopNotifications != nil {
		r.stopNotifications()
	}
	if r.onQuit != nil {
		r.onQuit()
	}
}
