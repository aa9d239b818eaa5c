package ui

import (
	"context"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"

	mlapp "mindlink/internal/app"
	"mindlink/internal/headset"
)

// bindPresentationListeners attaches every UI-facing listener: the two
// container watches, the device status stream, the live log feed, and the
// update snapshot channel. The returned stop func releases all of them
// together.
func bindPresentationListeners(dep Dependencies, view *mainView, controller *streamingController) func() {
	if dep.Session == nil {
		appLogger.Debug("skipping presentation listeners: session is nil")

		return func() {}
	}

	done := make(chan struct{})
	var stopOnce sync.Once
	var cancels []func()

	states, cancelStates := dep.Session.StreamingState.Watch()
	cancels = append(cancels, cancelStates)
	go func() {
		for {
			select {
			case <-done:
				return
			case st, ok := <-states:
				if !ok {
					return
				}
				controller.HandleStreamingState(context.Background(), st)
				fyne.Do(func() {
					view.ApplyStreamingState(st)
				})
			}
		}
	}()

	phases, cancelPhases := dep.Session.BluetoothPhase.Watch()
	cancels = append(cancels, cancelPhases)
	go func() {
		var prev headset.BluetoothPhase
		seeded := false
		for {
			select {
			case <-done:
				return
			case phase, ok := <-phases:
				if !ok {
					return
				}
				if seeded && phase != prev {
					dep.Session.Events.Info(fmt.Sprintf("Bluetooth phase: %s", phase))
				}
				prev = phase
				seeded = true
				fyne.Do(func() {
					view.ApplyBluetoothPhase(phase)
				})
			}
		}
	}()

	throttle := newStatusThrottle(deviceStatusLogInterval, nil)
	statuses, cancelStatuses := dep.Session.Client().DeviceStatuses()
	cancels = append(cancels, cancelStatuses)
	go func() {
		for {
			select {
			case <-done:
				return
			case status, ok := <-statuses:
				if !ok {
					return
				}
				if throttle.Allow() {
					dep.Session.Events.Info(formatDeviceStatus(status))
				}
				fyne.Do(func() {
					view.ApplyDeviceStatus(status)
				})
			}
		}
	}()

	if dep.Bus != nil {
		logSub := dep.Bus.Subscribe(mlapp.TopicLogEntry)
		cancels = append(cancels, func() {
			dep.Bus.Unsubscribe(logSub, mlapp.TopicLogEntry)
		})
		go func() {
			for {
				select {
				case <-done:
					return
				case raw, ok := <-logSub:
					if !ok {
						return
					}
					entry, ok := raw.(mlapp.LogEntry)
					if !ok {
						continue
					}
					fyne.Do(func() {
						view.logPanel.Prepend(entry)
					})
				}
			}
		}()
	}

	if dep.UpdateSnapshots != nil {
		go func() {
			for {
				select {
				case <-done:
					return
				case snapshot, ok := <-dep.UpdateSnapshots:
					if !ok {
						return
					}
					if snapshot.UpdateAvailable {
						dep.Session.Events.Info(fmt.Sprintf(
							"Update available: %s (current %s)",
							snapshot.Latest.Version, snapshot.CurrentVersion,
						))
					}
				}
			}
		}()
	}

	return func() {
		stopOnce.Do(func() {
			appLogger.Debug("stopping presentation listeners")
			close(done)
			for _, cancel := range cancels {
				cancel()
			}
		})
	}
}
