package journal

import "context"

// Recorder is the interface the domain stores append audit events through.
type Recorder interface {
	Append(ctx context.Context, aggregateID, aggregateType, eventType string, data any) (*Event, error)
	Events(aggregateID string) []Event
	AllEvents() []Event
}
