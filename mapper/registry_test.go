package mapper

import (
	"context"
	"errors"
	"testing"
	"time"

	"dddkit/domain/shared"
)

type orderPlacedEvent struct {
	orderID    string
	occurredOn time.Time
}

func (e *orderPlacedEvent) EventName() string      { return "order.placed" }
func (e *orderPlacedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *orderPlacedEvent) GetAggregateID() string { return e.orderID }

type orderPlacedNotification struct {
	shared.Notification[*orderPlacedEvent]

	paymentToken string
}

func newOrderPlacedNotification(orderID, token string) *orderPlacedNotification {
	base, _ := shared.NewNotification(&orderPlacedEvent{orderID: orderID, occurredOn: time.Now()})
	return &orderPlacedNotification{Notification: base, paymentToken: token}
}

type orderShippedNotification struct {
	shared.Notification[*orderPlacedEvent]
}

type orderExportedEvent struct {
	OrderID string
	Token   string
	At      time.Time
}

func (e orderExportedEvent) EventName() string     { return "order.exported" }
func (e orderExportedEvent) OccurredOn() time.Time { return e.At }

// orderPlacedMapper implements both mapping capabilities for the same
// notification and counts instantiations to observe transient lifetime.
type orderPlacedMapper struct {
	serial int
}

var mapperInstances int

func newOrderPlacedMapper() *orderPlacedMapper {
	mapperInstances++
	return &orderPlacedMapper{serial: mapperInstances}
}

func (m *orderPlacedMapper) Map(ctx context.Context, n *orderPlacedNotification) ([]shared.IntegrationEvent, error) {
	return []shared.IntegrationEvent{
		orderExportedEvent{
			OrderID: n.Event().GetAggregateID(),
			Token:   n.paymentToken,
			At:      n.Event().OccurredOn(),
		},
	}, nil
}

func (m *orderPlacedMapper) MapAny(ctx context.Context, n *orderPlacedNotification) ([]any, error) {
	return []any{map[string]any{"order_id": n.Event().GetAggregateID()}}, nil
}

type replacementMapper struct{}

func (m *replacementMapper) Map(ctx context.Context, n *orderPlacedNotification) ([]shared.IntegrationEvent, error) {
	return nil, nil
}

func TestAddModulesRequiresAtLeastOne(t *testing.T) {
	registry := NewRegistry()

	err := registry.AddModules()
	if err == nil {
		t.Fatal("zero modules should be a configuration error")
	}
	if !errors.Is(err, ErrNoModules) {
		t.Errorf("expected ErrNoModules, got %v", err)
	}

	t.Log("✓ Zero module rejection tests passed")
}

func TestAddModulesRegistersBothCapabilities(t *testing.T) {
	registry := NewRegistry()

	err := registry.AddModules(Module{
		Name:       "orders",
		Candidates: []any{func() *orderPlacedMapper { return newOrderPlacedMapper() }},
	})
	if err != nil {
		t.Fatalf("AddModules failed: %v", err)
	}

	// One candidate implementing both capabilities yields two registrations
	if registry.Len() != 2 {
		t.Fatalf("expected 2 registrations, got %d", registry.Len())
	}

	t.Log("✓ Dual capability registration tests passed")
}

func TestDispatchTypedMapper(t *testing.T) {
	registry := NewRegistry()
	_ = registry.AddModules(Module{
		Name:       "orders",
		Candidates: []any{func() *orderPlacedMapper { return newOrderPlacedMapper() }},
	})

	n := newOrderPlacedNotification("order-1", "tok-123")
	events, err := registry.Dispatch(context.Background(), n)
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 integration event, got %d", len(events))
	}

	exported, ok := events[0].(orderExportedEvent)
	if !ok {
		t.Fatalf("expected orderExportedEvent, got %T", events[0])
	}
	if exported.OrderID != "order-1" || exported.Token != "tok-123" {
		t.Error("mapped event should carry notification context")
	}

	payloads, err := registry.DispatchFlexible(context.Background(), n)
	if err != nil {
		t.Fatalf("DispatchFlexible failed: %v", err)
	}
	if len(payloads) != 1 {
		t.Fatalf("expected 1 payload, got %d", len(payloads))
	}

	t.Log("✓ Typed dispatch tests passed")
}

func TestDispatchUnregisteredNotification(t *testing.T) {
	registry := NewRegistry()
	_ = registry.AddModules(Module{
		Name:       "orders",
		Candidates: []any{func() *orderPlacedMapper { return newOrderPlacedMapper() }},
	})

	other := &orderShippedNotification{}
	events, err := registry.Dispatch(context.Background(), other)
	if err != nil {
		t.Fatalf("unregistered notification should not error: %v", err)
	}
	if events != nil {
		t.Error("unregistered notification should yield no events")
	}

	t.Log("✓ Unregistered notification tests passed")
}

func TestDispatchNilNotification(t *testing.T) {
	registry := NewRegistry()

	if _, err := registry.Dispatch(context.Background(), nil); err == nil {
		t.Error("nil notification should be rejected")
	}
	if _, err := registry.DispatchFlexible(context.Background(), nil); err == nil {
		t.Error("nil notification should be rejected")
	}

	t.Log("✓ Nil notification tests passed")
}

func TestResolveReturnsFreshInstances(t *testing.T) {
	registry := NewRegistry()
	_ = registry.AddModules(Module{
		Name:       "orders",
		Candidates: []any{func() *orderPlacedMapper { return newOrderPlacedMapper() }},
	})

	first, ok := ResolveTyped[*orderPlacedNotification](registry)
	if !ok {
		t.Fatal("typed mapper should resolve")
	}
	second, ok := ResolveTyped[*orderPlacedNotification](registry)
	if !ok {
		t.Fatal("typed mapper should resolve")
	}

	if first.(*orderPlacedMapper).serial == second.(*orderPlacedMapper).serial {
		t.Error("each resolution must produce a fresh instance")
	}

	flexible, ok := ResolveFlexible[*orderPlacedNotification](registry)
	if !ok {
		t.Fatal("flexible mapper should resolve")
	}
	if flexible == nil {
		t.Fatal("resolved flexible mapper should not be nil")
	}

	t.Log("✓ Transient lifetime tests passed")
}

func TestLastRegistrationWins(t *testing.T) {
	registry := NewRegistry()
	_ = registry.AddModules(
		Module{
			Name:       "orders",
			Candidates: []any{func() *orderPlacedMapper { return newOrderPlacedMapper() }},
		},
		Module{
			Name:       "orders-v2",
			Candidates: []any{func() *replacementMapper { return &replacementMapper{} }},
		},
	)

	events, err := registry.Dispatch(context.Background(), newOrderPlacedNotification("order-1", "tok"))
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if events != nil {
		t.Error("replacement mapper should have overridden the first registration")
	}

	t.Log("✓ Last-write-wins tests passed")
}

func TestAddModulesSkipsInvalidCandidates(t *testing.T) {
	registry := NewRegistry()

	err := registry.AddModules(Module{
		Name: "mixed",
		Candidates: []any{
			nil,                        // nil candidate
			"not a function",           // not a func
			func(x int) *orderPlacedMapper { return nil }, // wrong arity
			func() (x, y *orderPlacedMapper) { return },   // two returns
			func() EventMapper[*orderPlacedNotification] { return nil }, // interface product
			struct{}{}, // not a func at all
			func() *orderPlacedMapper { return newOrderPlacedMapper() },
		},
	})
	if err != nil {
		t.Fatalf("AddModules failed: %v", err)
	}

	// Only the last candidate is a valid factory: typed + flexible entries
	if registry.Len() != 2 {
		t.Fatalf("expected 2 registrations, got %d", registry.Len())
	}

	t.Log("✓ Invalid candidate skipping tests passed")
}

func TestRegisterTypedDirect(t *testing.T) {
	registry := NewRegistry()

	RegisterTyped(registry, func() EventMapper[*orderPlacedNotification] {
		return newOrderPlacedMapper()
	})

	events, err := registry.Dispatch(context.Background(), newOrderPlacedNotification("order-9", "tok-9"))
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	t.Log("✓ Direct typed registration tests passed")
}

func TestEntriesDescribeRegistrations(t *testing.T) {
	registry := NewRegistry()
	_ = registry.AddModules(Module{
		Name:       "orders",
		Candidates: []any{func() *orderPlacedMapper { return newOrderPlacedMapper() }},
	})

	entries := registry.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	kinds := map[string]bool{}
	for _, e := range entries {
		kinds[e.Kind] = true
		if e.Notification == "" || e.Implementation == "" {
			t.Error("entry descriptions should not be empty")
		}
	}
	if !kinds["typed"] || !kinds["flexible"] {
		t.Error("expected one typed and one flexible entry")
	}

	t.Log("✓ Entry description tests passed")
}
