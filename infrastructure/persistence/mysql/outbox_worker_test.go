package mysql

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"dddkit/config"
	"dddkit/infrastructure/persistence/mysql/po"

	"golang.org/x/time/rate"
)

// fakeOutboxStore is an in-memory outboxStore for worker tests.
type fakeOutboxStore struct {
	events map[string]*po.OutboxEventPO

	processingErr error
	maxRetries    int
}

func newFakeOutboxStore(events ...*po.OutboxEventPO) *fakeOutboxStore {
	store := &fakeOutboxStore{events: make(map[string]*po.OutboxEventPO)}
	for _, event := range events {
		store.events[event.ID] = event
	}
	return store
}

func (s *fakeOutboxStore) GetPendingEvents(ctx context.Context, limit int) ([]*po.OutboxEventPO, error) {
	pending := make([]*po.OutboxEventPO, 0)
	for _, event := range s.events {
		if event.Status == string(po.EventStatusPending) && len(pending) < limit {
			pending = append(pending, event)
		}
	}
	return pending, nil
}

func (s *fakeOutboxStore) MarkEventProcessing(ctx context.Context, eventID string) error {
	if s.processingErr != nil {
		return s.processingErr
	}
	s.events[eventID].Status = string(po.EventStatusProcessing)
	return nil
}

func (s *fakeOutboxStore) MarkEventPublished(ctx context.Context, eventID string) error {
	s.events[eventID].Status = string(po.EventStatusPublished)
	return nil
}

func (s *fakeOutboxStore) MarkEventFailed(ctx context.Context, eventID string, publishErr error, maxRetries int) error {
	event := s.events[eventID]
	event.RetryCount++
	event.LastError = publishErr.Error()
	s.maxRetries = maxRetries
	if event.RetryCount >= maxRetries {
		event.Status = string(po.EventStatusFailed)
	} else {
		event.Status = string(po.EventStatusPending)
	}
	return nil
}

type fakePublisher struct {
	published []string
	failWith  error
}

func (p *fakePublisher) Publish(ctx context.Context, eventType, payload string) error {
	if p.failWith != nil {
		return p.failWith
	}
	p.published = append(p.published, eventType)
	return nil
}

func newWorkerForTest(store outboxStore, publisher OutboxPublisher) *OutboxWorker {
	return &OutboxWorker{
		store:        store,
		publisher:    publisher,
		limiter:      rate.NewLimiter(rate.Inf, 1),
		pollInterval: time.Millisecond,
		batchSize:    10,
		maxRetries:   3,
	}
}

func pendingEvent(id string) *po.OutboxEventPO {
	return &po.OutboxEventPO{
		ID:         id,
		EventType:  "user.registered",
		Payload:    `{"user_id":"` + id + `"}`,
		Status:     string(po.EventStatusPending),
		OccurredAt: time.Now(),
	}
}

func TestNewOutboxWorkerValidation(t *testing.T) {
	cfg := config.WorkerConfig{
		Enabled:      true,
		PollInterval: time.Second,
		BatchSize:    10,
		MaxRetries:   3,
		PublishRate:  100,
		PublishBurst: 200,
	}

	if _, err := NewOutboxWorker(nil, &LoggingOutboxPublisher{}, cfg); err == nil {
		t.Error("nil repository should be rejected")
	}

	bad := cfg
	bad.BatchSize = 0
	if _, err := NewOutboxWorker(&OutboxRepository{}, &LoggingOutboxPublisher{}, bad); err == nil {
		t.Error("zero batch size should be rejected")
	}

	bad = cfg
	bad.PublishRate = 0
	if _, err := NewOutboxWorker(&OutboxRepository{}, &LoggingOutboxPublisher{}, bad); err == nil {
		t.Error("zero publish rate should be rejected")
	}

	t.Log("✓ Worker construction validation tests passed")
}

func TestProcessBatchPublishesPendingEvents(t *testing.T) {
	store := newFakeOutboxStore(pendingEvent("evt-1"), pendingEvent("evt-2"))
	publisher := &fakePublisher{}
	worker := newWorkerForTest(store, publisher)

	if err := worker.processBatch(context.Background()); err != nil {
		t.Fatalf("processBatch failed: %v", err)
	}

	if len(publisher.published) != 2 {
		t.Errorf("expected 2 published events, got %d", len(publisher.published))
	}
	for id, event := range store.events {
		if event.Status != string(po.EventStatusPublished) {
			t.Errorf("event %s: expected PUBLISHED, got %s", id, event.Status)
		}
	}

	t.Log("✓ Batch publishing tests passed")
}

func TestProcessBatchEmptyOutbox(t *testing.T) {
	worker := newWorkerForTest(newFakeOutboxStore(), &fakePublisher{})

	if err := worker.processBatch(context.Background()); err != nil {
		t.Fatalf("empty outbox should not error: %v", err)
	}

	t.Log("✓ Empty outbox tests passed")
}

func TestProcessBatchPublishFailure(t *testing.T) {
	store := newFakeOutboxStore(pendingEvent("evt-1"))
	publisher := &fakePublisher{failWith: errors.New("broker down")}
	worker := newWorkerForTest(store, publisher)

	if err := worker.processBatch(context.Background()); err != nil {
		t.Fatalf("publish failure is handled per event, got batch error: %v", err)
	}

	event := store.events["evt-1"]
	if event.RetryCount != 1 {
		t.Errorf("expected retry count 1, got %d", event.RetryCount)
	}
	if event.LastError != "broker down" {
		t.Errorf("expected failure reason recorded, got %q", event.LastError)
	}
	if event.Status != string(po.EventStatusPending) {
		t.Errorf("event should return to PENDING for retry, got %s", event.Status)
	}
	if store.maxRetries != worker.maxRetries {
		t.Error("worker should pass its retry budget to the store")
	}

	t.Log("✓ Publish failure tests passed")
}

func TestProcessBatchFailsPermanentlyAfterRetries(t *testing.T) {
	store := newFakeOutboxStore(pendingEvent("evt-1"))
	publisher := &fakePublisher{failWith: errors.New("broker down")}
	worker := newWorkerForTest(store, publisher)

	for i := 0; i < worker.maxRetries; i++ {
		if err := worker.processBatch(context.Background()); err != nil {
			t.Fatalf("processBatch failed: %v", err)
		}
	}

	event := store.events["evt-1"]
	if event.Status != string(po.EventStatusFailed) {
		t.Errorf("expected FAILED after exhausting retries, got %s", event.Status)
	}
	if event.RetryCount != worker.maxRetries {
		t.Errorf("expected %d retries, got %d", worker.maxRetries, event.RetryCount)
	}

	t.Log("✓ Permanent failure tests passed")
}

func TestProcessBatchSkipsContendedEvents(t *testing.T) {
	store := newFakeOutboxStore(pendingEvent("evt-1"))
	store.processingErr = fmt.Errorf("event evt-1 already taken")
	publisher := &fakePublisher{}
	worker := newWorkerForTest(store, publisher)

	if err := worker.processBatch(context.Background()); err != nil {
		t.Fatalf("contention is skipped per event, got batch error: %v", err)
	}
	if len(publisher.published) != 0 {
		t.Error("contended event must not be published by this worker")
	}

	t.Log("✓ Contention skip tests passed")
}

func TestRunStopsOnContextCancel(t *testing.T) {
	worker := newWorkerForTest(newFakeOutboxStore(), &fakePublisher{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancellation")
	}

	t.Log("✓ Worker shutdown tests passed")
}
