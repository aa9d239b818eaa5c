package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"mindlink/internal/bus"
	"mindlink/internal/headset"
	"mindlink/internal/notifications"
)

// NotificationService turns streaming-state transitions into desktop
// notifications. The seed value observed on subscribe never notifies;
// only genuine transitions do.
type NotificationService struct {
	bus    bus.MessageBus
	sender notifications.Sender
	logger *slog.Logger

	mu      sync.Mutex
	last    headset.StreamingState
	lastSet bool
}

func NewNotificationService(b bus.MessageBus, sender notifications.Sender, logger *slog.Logger) *NotificationService {
	if logger == nil {
		logger = slog.Default().With("component", "notifications")
	}

	return &NotificationService{
		bus:    b,
		sender: sender,
		logger: logger,
	}
}

func (s *NotificationService) Start(ctx context.Context) {
	if s == nil || s.bus == nil || s.sender == nil {
		return
	}

	sub := s.bus.Subscribe(TopicStreamingState)

	go func() {
		defer s.bus.Unsubscribe(sub, TopicStreamingState)

		for {
			select {
			case <-ctx.Done():
				return
			case raw, ok := <-sub:
				if !ok {
					return
				}
				st, ok := raw.(headset.StreamingState)
				if !ok {
					continue
				}
				s.handle(st)
			}
		}
	}()
}

func (s *NotificationService) handle(st headset.StreamingState) {
	s.mu.Lock()
	prev := s.last
	had := s.lastSet
	s.last = st
	s.lastSet = true
	s.mu.Unlock()

	if !had || prev == st {
		return
	}

	switch {
	case st.Connected && !prev.Connected:
		s.send(notifications.Payload{
			Title:   "Headset connected",
			Content: fmt.Sprintf("Streaming over %s", st.ActiveTransport.DisplayName()),
		})
	case !st.Connected && prev.Connected:
		s.send(notifications.Payload{
			Title:   "Headset disconnected",
			Content: "Streaming stopped",
		})
	case st.ActiveTransport != prev.ActiveTransport:
		s.send(notifications.Payload{
			Title:   "Transport changed",
			Content: fmt.Sprintf("Now streaming over %s", st.ActiveTransport.DisplayName()),
		})
	}
}

func (s *NotificationService) send(payload notifications.Payload) {
	s.logger.Debug("sending notification", "title", payload.Title)
	s.sender.Send(payload)
}
