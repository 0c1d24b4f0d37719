package po

import (
	"encoding/json"
	"fmt"
	"time"

	"dddkit/domain/shared"

	"github.com/google/uuid"
)

// OutboxEventPO Outbox event persistence object
// Stores integration events produced by the mapping layer. Rows are written
// in the same transaction as the business change and published by the
// dispatcher worker afterwards.
type OutboxEventPO struct {
	ID         string    `gorm:"primaryKey;size:64"`
	EventType  string    `gorm:"size:100;index;not null"`          // e.g. "user.registered"
	Payload    string    `gorm:"type:json;not null"`               // JSON serialized integration event
	Status     string    `gorm:"size:20;default:PENDING;not null"` // PENDING, PROCESSING, PUBLISHED, FAILED
	RetryCount int       `gorm:"default:0;not null"`
	LastError  string    `gorm:"size:500"`
	OccurredAt time.Time `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (OutboxEventPO) TableName() string {
	return "outbox_events"
}

// EventStatus Outbox event status enum
type EventStatus string

const (
	EventStatusPending    EventStatus = "PENDING"
	EventStatusProcessing EventStatus = "PROCESSING"
	EventStatusPublished  EventStatus = "PUBLISHED"
	EventStatusFailed     EventStatus = "FAILED"
)

// FromIntegrationEvent Convert an integration event to an outbox row.
// Integration events are plain serializable contracts, so the event value
// itself is the payload.
func FromIntegrationEvent(event shared.IntegrationEvent) (*OutboxEventPO, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize integration event %s: %w", event.EventName(), err)
	}

	now := time.Now()
	return &OutboxEventPO{
		ID:         uuid.New().String(),
		EventType:  event.EventName(),
		Payload:    string(payload),
		Status:     string(EventStatusPending),
		RetryCount: 0,
		OccurredAt: event.OccurredOn(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// ToEventData Extract event data from outbox PO (for debugging/testing)
func (po *OutboxEventPO) ToEventData() (map[string]interface{}, error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(po.Payload), &data); err != nil {
		return nil, err
	}
	return data, nil
}
