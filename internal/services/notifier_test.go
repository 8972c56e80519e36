package services

import (
	"testing"
)

func TestHub_FanOutPerUser(t *testing.T) {
	hub := NewHub()

	tab1 := hub.Subscribe(1, "tab-1")
	tab2 := hub.Subscribe(1, "tab-2")
	other := hub.Subscribe(2, "tab-1")

	hub.Notify(1, Event{Name: EventRequestAccepted})

	for name, ch := range map[string]<-chan Event{"tab-1": tab1, "tab-2": tab2} {
		select {
		case ev := <-ch:
			if ev.Name != EventRequestAccepted {
				t.Errorf("%s: event = %q, expected %q", name, ev.Name, EventRequestAccepted)
			}
		default:
			t.Errorf("%s: expected an event", name)
		}
	}

	select {
	case ev := <-other:
		t.Errorf("user 2 received user 1's event: %+v", ev)
	default:
	}
}

func TestHub_NotifyWithoutSubscribersIsDropped(t *testing.T) {
	hub := NewHub()
	// Must not panic or block
	hub.Notify(42, Event{Name: EventTaskAssigned})
}

func TestHub_Unsubscribe(t *testing.T) {
	hub := NewHub()

	ch := hub.Subscribe(1, "tab-1")
	hub.Subscribe(1, "tab-2")

	if got := hub.ClientCount(); got != 2 {
		t.Errorf("ClientCount = %d, expected 2", got)
	}

	hub.Unsubscribe(1, "tab-1")

	if got := hub.ClientCount(); got != 1 {
		t.Errorf("ClientCount after unsubscribe = %d, expected 1", got)
	}

	// Channel is closed
	if _, ok := <-ch; ok {
		t.Error("expected closed channel after unsubscribe")
	}

	// Unknown ids are a no-op
	hub.Unsubscribe(1, "tab-1")
	hub.Unsubscribe(99, "nope")
}

func TestHub_SlowClientDoesNotBlock(t *testing.T) {
	hub := NewHub()
	hub.Subscribe(1, "slow")

	// Overflow the buffer; Notify must never block
	for i := 0; i < 200; i++ {
		hub.Notify(1, Event{Name: EventTaskAssigned})
	}
}

func TestSyncNotifier_DeliversToHub(t *testing.T) {
	hub := NewHub()
	ch := hub.Subscribe(7, "tab")

	n := NewSyncNotifier(hub)
	n.Notify(7, NewKickedEvent(nil, "backend developer"))

	select {
	case ev := <-ch:
		if ev.Name != EventKickedFromProject {
			t.Errorf("event = %q, expected %q", ev.Name, EventKickedFromProject)
		}
		payload, ok := ev.Payload.(KickedPayload)
		if !ok {
			t.Fatalf("payload type = %T, expected KickedPayload", ev.Payload)
		}
		if payload.Role != "backend developer" {
			t.Errorf("payload role = %q, expected %q", payload.Role, "backend developer")
		}
	default:
		t.Fatal("expected an event")
	}
}
