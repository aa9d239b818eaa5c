package app

import (
	"testing"

	"mindlink/internal/headset"
	"mindlink/internal/notifications"
)

type captureSender struct {
	sent []notifications.Payload
}

func (s *captureSender) Send(payload notifications.Payload) {
	s.sent = append(s.sent, payload)
}

func TestNotificationServiceIgnoresSeedValue(t *testing.T) {
	sender := &captureSender{}
	svc := NewNotificationService(nil, sender, nil)

	svc.handle(headset.StreamingState{Connected: false, ActiveTransport: headset.TransportBluetooth})
	if len(sender.sent) != 0 {
		t.Fatalf("seed value must not notify, got %+v", sender.sent)
	}
}

func TestNotificationServiceNotifiesOnConnectAndDisconnect(t *testing.T) {
	sender := &captureSender{}
	svc := NewNotificationService(nil, sender, nil)

	svc.handle(headset.StreamingState{Connected: false, ActiveTransport: headset.TransportBluetooth})
	svc.handle(headset.StreamingState{Connected: true, ActiveTransport: headset.TransportBluetooth})
	svc.handle(headset.StreamingState{Connected: false, ActiveTransport: headset.TransportBluetooth})

	if len(sender.sent) != 2 {
		t.Fatalf("expected two notifications, got %d", len(sender.sent))
	}
	if sender.sent[0].Title != "Headset connected" {
		t.Fatalf("expected connect notification, got %+v", sender.sent[0])
	}
	if sender.sent[1].Title != "Headset disconnected" {
		t.Fatalf("expected disconnect notification, got %+v", sender.sent[1])
	}
}

func TestNotificationServiceNotifiesOnTransportChange(t *testing.T) {
	sender := &captureSender{}
	svc := NewNotificationService(nil, sender, nil)

	svc.handle(headset.StreamingState{Connected: true, ActiveTransport: headset.TransportBluetooth})
	svc.handle(headset.StreamingState{Connected: true, ActiveTransport: headset.TransportWifi})

	if len(sender.sent) != 1 {
		t.Fatalf("expected one notification, got %d", len(sender.sent))
	}
	if sender.sent[0].Title != "Transport changed" {
		t.Fatalf("expected transport change notification, got %+v", sender.sent[0])
	}
	if sender.sent[0].Content != "Now streaming over WiFi" {
		t.Fatalf("unexpected content %q", sender.sent[0].Content)
	}
}

func TestNotificationServiceDeduplicatesIdenticalStates(t *testing.T) {
	sender := &captureSender{}
	svc := NewNotificationService(nil, sender, nil)

	st := headset.StreamingState{Connected: true, ActiveTransport: headset.TransportBluetooth}
	svc.handle(st)
	svc.handle(st)
	svc.handle(st)

	if len(sender.sent) != 0 {
		t.Fatalf("identical states must not notify, got %+v", sender.sent)
	}
}
