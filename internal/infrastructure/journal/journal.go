package journal

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/example/ecofinds/internal/infrastructure/kafka"
	"github.com/google/uuid"
)

// Event is a recorded domain event. The journal is an audit trail: the state
// containers remain the source of truth and are never rebuilt from it.
type Event struct {
	ID            string          `json:"id"`
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	EventType     string          `json:"event_type"`
	Data          json.RawMessage `json:"data"`
	Timestamp     time.Time       `json:"timestamp"`
	Version       int             `json:"version"`
}

// Journal records domain events in memory and optionally publishes them.
type Journal struct {
	mu       sync.RWMutex
	events   map[string][]Event // aggregateID -> events
	producer *kafka.Producer
}

// New creates a journal. A nil producer keeps events local.
func New(producer *kafka.Producer) *Journal {
	return &Journal{
		events:   make(map[string][]Event),
		producer: producer,
	}
}

// Append records an event and publishes it when a producer is configured.
func (j *Journal) Append(ctx context.Context, aggregateID, aggregateType, eventType string, data any) (*Event, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	j.mu.Lock()
	version := len(j.events[aggregateID]) + 1
	event := Event{
		ID:            uuid.New().String(),
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Data:          jsonData,
		Timestamp:     time.Now(),
		Version:       version,
	}
	j.events[aggregateID] = append(j.events[aggregateID], event)
	j.mu.Unlock()

	if j.producer != nil {
		if err := j.producer.Publish(ctx, aggregateID, event); err != nil {
			return nil, err
		}
	}

	return &event, nil
}

// Events returns all events for an aggregate.
func (j *Journal) Events(aggregateID string) []Event {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.events[aggregateID]
}

// AllEvents returns every recorded event.
func (j *Journal) AllEvents() []Event {
	j.mu.RLock()
	defer j.mu.RUnlock()

	var all []Event
	for _, events := range j.events {
		all = append(all, events...)
	}
	return all
}
