package ui

import (
	"context"
	"fmt"
	"sync"

	"mindlink/internal/headset"
)

// streamingController reacts to streaming-state transitions. It owns two
// guards tied to the "streaming over Bluetooth" predicate (connected and
// active transport is Bluetooth):
//
//   - the device info fetch runs at most once per Bluetooth activation and
//     re-arms when the predicate goes false;
//   - the band-power subscription is open exactly while the predicate
//     holds, and closing it clears the last readout.
//
// Callbacks run on the caller's goroutine except onBandPower, which runs
// on the metrics forwarding goroutine.
type streamingController struct {
	fetchInfo   func(ctx context.Context) (headset.DeviceInfo, error)
	openMetrics func() (<-chan headset.BandPower, func())

	onTransportChanged func(headset.Transport)
	onDeviceInfo       func(headset.DeviceInfo)
	onInfoError        func(error)
	onBandPower        func(headset.BandPower)
	onMetricsCleared   func()

	mu          sync.Mutex
	last        headset.StreamingState
	hasLast     bool
	infoFetched bool
	stopMetrics func()
}

func newStreamingController(
	fetchInfo func(ctx context.Context) (headset.DeviceInfo, error),
	openMetrics func() (<-chan headset.BandPower, func()),
	onTransportChanged func(headset.Transport),
	onDeviceInfo func(headset.DeviceInfo),
	onInfoError func(error),
	onBandPower func(headset.BandPower),
	onMetricsCleared func(),
) *streamingController {
	return &streamingController{
		fetchInfo:          fetchInfo,
		openMetrics:        openMetrics,
		onTransportChanged: onTransportChanged,
		onDeviceInfo:       onDeviceInfo,
		onInfoError:        onInfoError,
		onBandPower:        onBandPower,
		onMetricsCleared:   onMetricsCleared,
	}
}

// HandleStreamingState processes one emission. The first observed value is
// the seed and never reports a transport change.
func (c *streamingController) HandleStreamingState(ctx context.Context, st headset.StreamingState) {
	c.mu.Lock()
	prev := c.last
	had := c.hasLast
	c.last = st
	c.hasLast = true

	active := st.Connected && st.ActiveTransport == headset.TransportBluetooth

	fetch := active && !c.infoFetched
	if fetch {
		c.infoFetched = true
	}
	if !active {
		c.infoFetched = false
	}

	var open bool
	var stop func()
	if active && c.stopMetrics == nil {
		open = true
	}
	if !active && c.stopMetrics != nil {
		stop = c.stopMetrics
		c.stopMetrics = nil
	}
	c.mu.Unlock()

	if had && prev.ActiveTransport != st.ActiveTransport && c.onTransportChanged != nil {
		c.onTransportChanged(st.ActiveTransport)
	}

	if stop != nil {
		stop()
		if c.onMetricsCleared != nil {
			c.onMetricsCleared()
		}
	}
	if open {
		c.startMetrics()
	}

	if fetch && c.fetchInfo != nil {
		info, err := c.fetchInfo(ctx)
		if err != nil {
			if c.onInfoError != nil {
				c.onInfoError(fmt.Errorf("fetch device info: %w", err))
			}

			return
		}
		if c.onDeviceInfo != nil {
			c.onDeviceInfo(info)
		}
	}
}

// Stop closes the metrics subscription if one is open.
func (c *streamingController) Stop() {
	c.mu.Lock()
	stop := c.stopMetrics
	c.stopMetrics = nil
	c.mu.Unlock()

	if stop != nil {
		stop()
		if c.onMetricsCleared != nil {
			c.onMetricsCleared()
		}
	}
}

func (c *streamingController) startMetrics() {
	if c.openMetrics == nil {
		return
	}

	ch, cancel := c.openMetrics()
	done := make(chan struct{})
	var stopOnce sync.Once

	c.mu.Lock()
	c.stopMetrics = func() {
		stopOnce.Do(func() {
			close(done)
			cancel()
		})
	}
	c.mu.Unlock()

	go func() {
		for {
			select {
			case <-done:
				return
			case reading, ok := <-ch:
				if !ok {
					return
				}
				select {
				case <-done:
					return
				default:
				}
				if c.onBandPower != nil {
					c.onBandPower(reading)
				}
			}
		}
	}()
}
