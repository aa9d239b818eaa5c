package ui

import (
	"context"

	"fyne.io/fyne/v2"

	mlapp "mindlink/internal/app"
)

func startNotificationService(dep Dependencies, fyApp fyne.App) func() {
	if dep.Bus == nil {
		appLogger.Debug("skipping notification service: message bus is nil")

		return func() {}
	}

	ctx, stop := context.WithCancel(context.Background())
	service := mlapp.NewNotificationService(dep.Bus, NewFyneNotificationSender(fyApp), nil)
	service.Start(ctx)

	return stop
}
