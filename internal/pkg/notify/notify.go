// internal/pkg/notify/notify.go
package notify

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Kind classifies a notification event
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Event is a one-way notification for the presentation layer
type Event struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Sink consumes notification events. No acknowledgement is expected.
type Sink interface {
	Notify(event Event)
}

// Func adapts a function to the Sink interface
type Func func(Event)

// Notify calls f
func (f Func) Notify(event Event) { f(event) }

// Discard is a Sink that drops every event
var Discard Sink = Func(func(Event) {})

// LogSink writes notification events to a logrus entry
type LogSink struct {
	logger *logrus.Entry
}

// NewLogSink creates a log-backed sink
func NewLogSink(logger *logrus.Entry) *LogSink {
	return &LogSink{logger: logger}
}

// Notify logs the event at a level matching its kind
func (s *LogSink) Notify(event Event) {
	entry := s.logger.WithField("kind", event.Kind)
	switch event.Kind {
	case KindError:
		entry.Warn(event.Message)
	default:
		entry.Info(event.Message)
	}
}

// Buffer collects events until they are drained. The HTTP layer drains it
// into response payloads so the UI shell can show toasts.
type Buffer struct {
	mu     sync.Mutex
	events []Event
}

// NewBuffer creates an empty buffer
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Notify appends the event to the buffer
func (b *Buffer) Notify(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

// Drain returns all buffered events and clears the buffer
func (b *Buffer) Drain() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	events := b.events
	b.events = nil
	return events
}

// Multi fans an event out to several sinks
func Multi(sinks ...Sink) Sink {
	return Func(func(event Event) {
		for _, s := range sinks {
			s.Notify(event)
		}
	})
}
