package shared

import (
	"errors"
	"testing"
)

func TestNewNotificationWrapsEvent(t *testing.T) {
	event := newStubEvent("test.event")

	n, err := NewNotification(event)
	if err != nil {
		t.Fatalf("NewNotification failed: %v", err)
	}

	if n.Event() != event {
		t.Error("Event() should return the wrapped event")
	}
	if n.WrappedEvent() != DomainEvent(event) {
		t.Error("WrappedEvent() should return the same event")
	}

	t.Log("✓ Notification wrapping tests passed")
}

func TestNewNotificationRejectsNilEvent(t *testing.T) {
	var event *stubEvent

	_, err := NewNotification(event)
	if err == nil {
		t.Fatal("nil event should be rejected")
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected validation error, got %v", err)
	}

	t.Log("✓ Nil event rejection tests passed")
}
