package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"mindlink/internal/app"
	"mindlink/internal/bluetoothutil"
	"mindlink/internal/bus"
	"mindlink/internal/config"
	"mindlink/internal/headset/sim"
	"mindlink/internal/journal"
	"mindlink/internal/logging"
	"mindlink/internal/ui"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("run gui", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	paths, err := app.ResolvePaths()
	if err != nil {
		return err
	}
	cfg, err := config.Load(paths.ConfigFile)
	if err != nil {
		return err
	}

	logMgr := logging.NewManager()
	if err := logMgr.Configure(cfg.Logging, paths.LogFile); err != nil {
		return err
	}
	defer func() {
		if closeErr := logMgr.Close(); closeErr != nil {
			slog.Warn("close log manager", "error", closeErr)
		}
	}()
	logger := logMgr.Logger("gui")
	logger.Info("starting mindlink", "version", app.BuildVersion())

	messageBus := bus.New(logMgr.Logger("bus"))
	defer messageBus.Close()

	var recorder app.Recorder
	if cfg.Journal.Enabled {
		db, err := journal.Open(ctx, paths.JournalFile)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				logger.Warn("close journal db", "error", closeErr)
			}
		}()

		writer := journal.NewWriterQueue(logMgr.Logger("journal"), 256)
		writer.Start(ctx)
		recorder = journal.NewRecorder(journal.NewEventRepo(db), writer)
	}

	events := app.NewEventLog(logMgr.Logger("events"), messageBus, recorder)

	client := sim.New(sim.Config{Options: cfg.Connection.Options()})

	var preflight func() error
	if cfg.Connection.AdapterPreflight {
		preflight = bluetoothutil.Preflight
	}

	session := app.NewSession(app.SessionDeps{
		Logger:    logMgr.Logger("session"),
		Bus:       messageBus,
		Client:    client,
		Cloud:     cfg.Cloud,
		Events:    events,
		Preflight: preflight,
	})
	session.Start(ctx)

	var checkerEndpoint string
	if cfg.Updates.Enabled {
		checkerEndpoint = cfg.Updates.Endpoint
	}
	checker := app.NewUpdateChecker(app.UpdateCheckerConfig{
		CurrentVersion: app.BuildVersion(),
		Endpoint:       checkerEndpoint,
		Logger:         logMgr.Logger("updates"),
	})

	var quitOnce sync.Once
	quit := func() {
		quitOnce.Do(func() {
			stop()
			session.Stop()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if report := session.DisconnectAll(shutdownCtx); !report.Ok() {
				logger.Warn("shutdown teardown degraded", "steps", len(report.Degraded))
			}
		})
	}
	defer quit()

	return ui.Run(ui.Dependencies{
		Session:         session,
		Bus:             messageBus,
		UpdateSnapshots: checker.Snapshots(),
		OnStartUpdateChecker: func() {
			checker.Start(ctx)
		},
		OnConnect:    session.Connect,
		OnDisconnect: session.DisconnectAll,
		OnQuit:       quit,
	})
}
