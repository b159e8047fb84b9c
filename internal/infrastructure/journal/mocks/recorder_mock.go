package mocks

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/example/ecofinds/internal/infrastructure/journal"
	"github.com/google/uuid"
)

// MockRecorder is an in-memory journal.Recorder for tests.
type MockRecorder struct {
	mu     sync.RWMutex
	events map[string][]journal.Event

	// For tracking calls in tests
	AppendCalls []AppendCall
	AppendErr   error
}

// AppendCall records parameters passed to Append
type AppendCall struct {
	AggregateID   string
	AggregateType string
	EventType     string
	Data          any
}

// NewMockRecorder creates a new MockRecorder
func NewMockRecorder() *MockRecorder {
	return &MockRecorder{
		events:      make(map[string][]journal.Event),
		AppendCalls: make([]AppendCall, 0),
	}
}

// Append stores an event in memory
func (m *MockRecorder) Append(ctx context.Context, aggregateID, aggregateType, eventType string, data any) (*journal.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.AppendCalls = append(m.AppendCalls, AppendCall{
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Data:          data,
	})

	if m.AppendErr != nil {
		return nil, m.AppendErr
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	version := len(m.events[aggregateID]) + 1
	event := journal.Event{
		ID:            uuid.New().String(),
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Data:          jsonData,
		Timestamp:     time.Now(),
		Version:       version,
	}

	m.events[aggregateID] = append(m.events[aggregateID], event)
	return &event, nil
}

// Events returns events for an aggregate
func (m *MockRecorder) Events(aggregateID string) []journal.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.events[aggregateID]
}

// AllEvents returns all events
func (m *MockRecorder) AllEvents() []journal.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var all []journal.Event
	for _, events := range m.events {
		all = append(all, events...)
	}
	return all
}

// Reset clears all events and recorded calls
func (m *MockRecorder) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = make(map[string][]journal.Event)
	m.AppendCalls = make([]AppendCall, 0)
	m.AppendErr = nil
}
