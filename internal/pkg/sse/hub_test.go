package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesTopicSubscribers(t *testing.T) {
	h := NewHub()

	a, cleanupA := h.Subscribe("attendance")
	defer cleanupA()
	b, cleanupB := h.Subscribe("attendance")
	defer cleanupB()
	other, cleanupOther := h.Subscribe("other")
	defer cleanupOther()

	h.Publish("attendance", Event{Event: "attendance.marked", Data: "x"})

	for _, ch := range []chan Event{a, b} {
		select {
		case got := <-ch:
			assert.Equal(t, "attendance", got.Topic)
			assert.Equal(t, "attendance.marked", got.Event)
		default:
			t.Fatal("subscriber did not receive event")
		}
	}

	select {
	case got := <-other:
		t.Fatalf("unexpected event on other topic: %+v", got)
	default:
	}
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	h := NewHub()
	ch, cleanup := h.Subscribe("attendance")
	defer cleanup()

	for i := 0; i < cap(ch)+10; i++ {
		h.Publish("attendance", Event{Event: "tick", Data: i})
	}
	assert.Len(t, ch, cap(ch))
}

func TestHub_Cleanup(t *testing.T) {
	h := NewHub()
	ch, cleanup := h.Subscribe("attendance")
	_, cleanup2 := h.Subscribe("other")
	defer cleanup2()

	assert.Equal(t, 1, h.SubscriberCount("attendance"))
	assert.Equal(t, 2, h.TotalSubscribers())

	cleanup()
	cleanup()

	_, open := <-ch
	require.False(t, open)
	assert.Equal(t, 0, h.SubscriberCount("attendance"))
	assert.Equal(t, 1, h.TotalSubscribers())

	// Publishing after cleanup must not panic on the closed channel.
	h.Publish("attendance", Event{Event: "late"})
}

func TestHub_CloseEndsSubscriptions(t *testing.T) {
	h := NewHub()
	a, cleanupA := h.Subscribe("attendance")
	b, cleanupB := h.Subscribe("other")

	h.Close()
	assert.Equal(t, 0, h.TotalSubscribers())

	for _, ch := range []chan Event{a, b} {
		_, ok := <-ch
		assert.False(t, ok)
	}

	// Cleanup after Close must not close the channel twice.
	cleanupA()
	cleanupB()
	h.Publish("attendance", Event{Event: "late"})

	late, cleanup := h.Subscribe("attendance")
	defer cleanup()
	_, ok := <-late
	assert.False(t, ok)
	assert.Equal(t, 0, h.SubscriberCount("attendance"))
}
