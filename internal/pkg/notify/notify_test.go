// internal/pkg/notify/notify_test.go
package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferDrain(t *testing.T) {
	b := NewBuffer()
	b.Notify(Event{Kind: KindSuccess, Message: "one"})
	b.Notify(Event{Kind: KindError, Message: "two"})

	events := b.Drain()
	assert.Len(t, events, 2)
	assert.Equal(t, "one", events[0].Message)

	assert.Empty(t, b.Drain())
}

func TestMultiFansOut(t *testing.T) {
	var first, second []Event
	sink := Multi(
		Func(func(e Event) { first = append(first, e) }),
		Func(func(e Event) { second = append(second, e) }),
	)

	sink.Notify(Event{Kind: KindInfo, Message: "hello"})

	assert.Len(t, first, 1)
	assert.Len(t, second, 1)
}

func TestDiscardDoesNotPanic(t *testing.T) {
	Discard.Notify(Event{Kind: KindInfo, Message: "ignored"})
}
