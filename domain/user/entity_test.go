package user

import (
	"testing"
	"time"
)

func TestNewUserRecordsCreatedEvent(t *testing.T) {
	u, err := NewUser("Alice", "alice@example.com")
	if err != nil {
		t.Fatalf("NewUser failed: %v", err)
	}

	if u.ID() == "" {
		t.Error("new user must have an ID")
	}
	if !u.IsActive() {
		t.Error("new user should be active")
	}
	if !u.IsNew() {
		t.Error("unsaved user should report IsNew")
	}

	events := u.RecordedEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 recorded event, got %d", len(events))
	}
	created, ok := events[0].(*UserCreatedEvent)
	if !ok {
		t.Fatalf("expected UserCreatedEvent, got %T", events[0])
	}
	if created.UserID() != u.ID() || created.Email() != "alice@example.com" {
		t.Error("event should carry the aggregate state")
	}

	t.Log("✓ User creation tests passed")
}

func TestNewUserValidation(t *testing.T) {
	if _, err := NewUser("", "alice@example.com"); err == nil {
		t.Error("empty name should be rejected")
	}
	if _, err := NewUser("Alice", "not-an-email"); err == nil {
		t.Error("invalid email should be rejected")
	}

	t.Log("✓ User validation tests passed")
}

func TestActivateDeactivateIdempotent(t *testing.T) {
	u, _ := NewUser("Alice", "alice@example.com")
	u.PullEvents() // drop creation event

	u.Deactivate()
	u.Deactivate() // second call is a no-op

	events := u.PullEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 deactivation event, got %d", len(events))
	}
	if _, ok := events[0].(*UserDeactivatedEvent); !ok {
		t.Fatalf("expected UserDeactivatedEvent, got %T", events[0])
	}

	u.Activate()
	u.Activate()

	events = u.PullEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 activation event, got %d", len(events))
	}

	t.Log("✓ Activate/deactivate idempotency tests passed")
}

func TestPullEventsDrains(t *testing.T) {
	u, _ := NewUser("Alice", "alice@example.com")

	if got := len(u.PullEvents()); got != 1 {
		t.Fatalf("expected 1 event, got %d", got)
	}
	if got := len(u.PullEvents()); got != 0 {
		t.Errorf("second pull should be empty, got %d", got)
	}

	// RecordedEvents does not drain
	u.Deactivate()
	if got := len(u.RecordedEvents()); got != 1 {
		t.Fatalf("expected 1 recorded event, got %d", got)
	}
	if got := len(u.RecordedEvents()); got != 1 {
		t.Errorf("RecordedEvents must not drain, got %d", got)
	}

	t.Log("✓ Event draining tests passed")
}

func TestUserIdentityEquality(t *testing.T) {
	a, _ := NewUser("Alice", "alice@example.com")
	b, _ := NewUser("Alice", "alice2@example.com")

	if a.Equals(b) {
		t.Error("different aggregates should not be equal")
	}
	if !a.Equals(a) {
		t.Error("aggregate should equal itself")
	}

	rebuilt := RebuildFromDTO(ReconstructionDTO{
		ID:        a.ID(),
		Name:      "Renamed",
		Email:     "other@example.com",
		IsActive:  false,
		Version:   7,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
	if !a.Equals(rebuilt) {
		t.Error("same ID should be equal regardless of attribute differences")
	}
	if a.HashCode() != rebuilt.HashCode() {
		t.Error("equal aggregates must produce equal hash codes")
	}

	t.Log("✓ Identity equality tests passed")
}

func TestRebuildFromDTO(t *testing.T) {
	createdAt := time.Now().Add(-time.Hour)
	u := RebuildFromDTO(ReconstructionDTO{
		ID:        "user-1",
		Name:      "Alice",
		Email:     "alice@example.com",
		IsActive:  true,
		Version:   3,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	})

	if u.Version() != 3 {
		t.Errorf("expected version 3, got %d", u.Version())
	}
	if u.IsNew() {
		t.Error("rebuilt user should not report IsNew")
	}
	if len(u.RecordedEvents()) != 0 {
		t.Error("rebuilding must not record events")
	}

	t.Log("✓ Reconstruction tests passed")
}

func TestUpdateName(t *testing.T) {
	u, _ := NewUser("Alice", "alice@example.com")

	if err := u.UpdateName("Alicia"); err != nil {
		t.Fatalf("UpdateName failed: %v", err)
	}
	if u.Name() != "Alicia" {
		t.Errorf("expected Alicia, got %s", u.Name())
	}
	if err := u.UpdateName(""); err == nil {
		t.Error("empty name should be rejected")
	}

	t.Log("✓ Update name tests passed")
}
