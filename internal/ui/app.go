package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	mlapp "mindlink/internal/app"
)

var appLogger = slog.Default().With("component", "ui")

var newFyneApp = func() fyne.App {
	return fyneapp.NewWithID(mlapp.Name)
}

// Run starts the dashboard window and blocks until the user quits.
func Run(dep Dependencies) error {
	return runWithApp(dep, newFyneApp())
}
