package bus

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	b := New()
	ch1, cancel1 := b.Subscribe()
	ch2, cancel2 := b.Subscribe()
	defer cancel1()
	defer cancel2()

	ev := LabStateChanged{VisualID: "wave_lab", State: json.RawMessage(`{"frequency":5}`)}
	b.Publish(ev)

	got1 := <-ch1
	got2 := <-ch2
	assert.Equal(t, ev, got1)
	assert.Equal(t, ev, got2)
}

func TestCancelStopsDelivery(t *testing.T) {
	b := New()
	ch, cancel := b.Subscribe()
	cancel()

	// Publishing after cancel must not panic and must not deliver.
	b.Publish(Notification{Level: NotifyInfo, Message: "ping"})

	_, open := <-ch
	assert.False(t, open, "canceled subscription channel must be closed")
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	b := New()
	ch, cancel := b.Subscribe()
	defer cancel()

	// Overfill the buffer; Publish must never block.
	for i := 0; i < subscriberBuffer+10; i++ {
		b.Publish(Notification{Level: NotifyInfo, Message: "tick"})
	}

	delivered := 0
	for {
		select {
		case <-ch:
			delivered++
			continue
		default:
		}
		break
	}
	require.Equal(t, subscriberBuffer, delivered)
}

func TestCancelIsIdempotent(t *testing.T) {
	b := New()
	_, cancel := b.Subscribe()
	cancel()
	cancel()
}
