package ui

import (
	"context"

	mlapp "mindlink/internal/app"
	"mindlink/internal/bus"
)

// Dependencies are everything the UI runtime needs from the outside. The
// UI never constructs sessions or clients itself.
type Dependencies struct {
	Session *mlapp.Session
	Bus     bus.MessageBus

	UpdateSnapshots      <-chan mlapp.UpdateSnapshot
	OnStartUpdateChecker func()

	OnConnect    func(ctx context.Context) (mlapp.Report, error)
	OnDisconnect func(ctx context.Context) mlapp.Report
	OnQuit       func()
}
