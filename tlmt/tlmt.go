// Package tlmt defines the anonymous usage telemetry seam.
// Set DISABLE_TELEMETRY=1 to opt out; the no-op backend is then used.
package tlmt

import "context"

// Event is one telemetry datapoint
type Event struct {
	Name  string
	Props map[string]any
}

// NewEvent creates an Event
func NewEvent(name string, props map[string]any) Event {
	return Event{Name: name, Props: props}
}

// Telemetry sends events to a backend
type Telemetry interface {
	Send(ctx context.Context, event Event) error
	Close() error
}
