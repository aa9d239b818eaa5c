package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mindlink/internal/app"
	"mindlink/internal/bluetoothutil"
	"mindlink/internal/bus"
	"mindlink/internal/config"
	"mindlink/internal/headset"
	"mindlink/internal/headset/sim"
	"mindlink/internal/logging"
	"mindlink/internal/notifications"
)

const teardownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("run monitor", "error", err)
		os.Exit(1)
	}
}

type monitorOptions struct {
	ListenFor   time.Duration
	NoNotify    bool
	NoPreflight bool
}

func parseMonitorOptions(args []string) (monitorOptions, error) {
	var opts monitorOptions
	fs := flag.NewFlagSet("monitor", flag.ContinueOnError)
	fs.DurationVar(&opts.ListenFor, "listen-for", 0, "listen duration, e.g. 30s (default: until interrupt)")
	fs.BoolVar(&opts.NoNotify, "no-notify", false, "disable desktop notifications")
	fs.BoolVar(&opts.NoPreflight, "no-preflight", false, "skip the bluetooth adapter check")
	if err := fs.Parse(args); err != nil {
		return monitorOptions{}, err
	}
	if fs.NArg() > 0 {
		return monitorOptions{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return opts, nil
}

func run() error {
	opts, err := parseMonitorOptions(os.Args[1:])
	if err != nil {
		return err
	}

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
	cfg.Logging.LogToFile = false
	if err := logMgr.Configure(cfg.Logging, paths.LogFile); err != nil {
		return err
	}
	defer func() {
		if closeErr := logMgr.Close(); closeErr != nil {
			slog.Warn("close log manager", "error", closeErr)
		}
	}()
	logger := logMgr.Logger("monitor")
	logger.Info("starting mindlink monitor", "version", app.BuildVersion())

	messageBus := bus.New(logMgr.Logger("bus"))
	defer messageBus.Close()

	client := sim.New(sim.Config{Options: cfg.Connection.Options()})

	var preflight func() error
	if cfg.Connection.AdapterPreflight && !opts.NoPreflight {
		preflight = bluetoothutil.Preflight
	}

	session := app.NewSession(app.SessionDeps{
		Logger:    logMgr.Logger("session"),
		Bus:       messageBus,
		Client:    client,
		Cloud:     cfg.Cloud,
		Preflight: preflight,
	})
	session.Start(ctx)

	if !opts.NoNotify {
		service := app.NewNotificationService(
			messageBus,
			notifications.NewBeeepSender(logMgr.Logger("notifications")),
			logMgr.Logger("notifications"),
		)
		service.Start(ctx)
	}

	watch(ctx, messageBus, logger)

	report, err := session.Connect(ctx)
	if err != nil {
		return fmt.Errorf("connect headset: %w", err)
	}
	for _, step := range report.Degraded {
		logger.Warn("connect step degraded", "step", step.Step, "error", step.Err)
	}

	if opts.ListenFor > 0 {
		logger.Info("listen mode", "duration", opts.ListenFor)
		select {
		case <-ctx.Done():
		case <-time.After(opts.ListenFor):
		}
	} else {
		logger.Info("listening until interrupt")
		<-ctx.Done()
	}

	teardownCtx, cancel := context.WithTimeout(context.Background(), teardownTimeout)
	defer cancel()
	session.Stop()
	if report := session.DisconnectAll(teardownCtx); !report.Ok() {
		for _, step := range report.Degraded {
			logger.Warn("teardown step degraded", "step", step.Step, "error", step.Err)
		}
	}

	return nil
}

func watch(ctx context.Context, b bus.MessageBus, logger *slog.Logger) {
	stateSub := b.Subscribe(app.TopicStreamingState)
	phaseSub := b.Subscribe(app.TopicBluetoothPhase)
	logSub := b.Subscribe(app.TopicLogEntry)

	go func() {
		for {
			select {
			case <-ctx.Done():
				b.Unsubscribe(stateSub, app.TopicStreamingState)
				b.Unsubscribe(phaseSub, app.TopicBluetoothPhase)
				b.Unsubscribe(logSub, app.TopicLogEntry)

				return
			case raw := <-stateSub:
				if st, ok := raw.(headset.StreamingState); ok {
					logger.Info("streaming", "connected", st.Connected, "transport", st.ActiveTransport, "mode", st.Mode)
				}
			case raw := <-phaseSub:
				if phase, ok := raw.(headset.BluetoothPhase); ok {
					logger.Info("bluetooth", "phase", phase)
				}
			case raw := <-logSub:
				if entry, ok := raw.(app.LogEntry); ok {
					logger.Info("session-log", "severity", entry.Severity, "message", entry.Message)
				}
			}
		}
	}()
}
