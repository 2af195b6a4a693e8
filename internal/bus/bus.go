// Package bus is the in-process event fan-out between features: state
// mutations publish, surfaces subscribe. Delivery is best-effort; a slow
// subscriber drops events rather than blocking a publisher.
package bus

import (
	"encoding/json"
	"sync"
)

// Event is anything published on the bus.
type Event any

// LabStateChanged announces that a simulation lab's parameters were
// persisted, so mirrored views of the same lab can re-render.
type LabStateChanged struct {
	VisualID string
	State    json.RawMessage
}

// NotificationLevel grades a toast.
type NotificationLevel string

const (
	NotifyInfo    NotificationLevel = "INFO"
	NotifySuccess NotificationLevel = "SUCCESS"
	NotifyWarning NotificationLevel = "WARNING"
)

// Notification is a transient user-facing toast.
type Notification struct {
	Level   NotificationLevel
	Message string
}

const subscriberBuffer = 16

// Bus fans events out to all current subscribers.
type Bus struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{subs: map[int]chan Event{}}
}

// Subscribe registers a listener. The returned cancel func must be
// called to release the subscription; the channel is closed by it.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan Event, subscriberBuffer)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber without blocking.
// Subscribers with full buffers miss the event.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
