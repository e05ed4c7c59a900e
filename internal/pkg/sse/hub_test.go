package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesOnlyTopicSubscribers(t *testing.T) {
	h := NewHub()
	employees, stopEmployees := h.Subscribe(TopicEmployees)
	theme, stopTheme := h.Subscribe(TopicTheme)
	defer stopTheme()

	h.Publish(TopicEmployees, Event{Event: "snapshot", Data: 1})

	select {
	case ev := <-employees:
		assert.Equal(t, TopicEmployees, ev.Topic)
		assert.Equal(t, 1, ev.Data)
	default:
		t.Fatal("expected an event")
	}
	assert.Len(t, theme, 0)

	assert.Equal(t, 2, h.TotalSubscribers())
	stopEmployees()
	stopEmployees()
	assert.Equal(t, 0, h.SubscriberCount(TopicEmployees))

	_, open := <-employees
	assert.False(t, open)
}

func TestHub_PublishDoesNotBlockOnFullSubscriber(t *testing.T) {
	h := NewHub()
	ch, stop := h.Subscribe(TopicDashboard)
	defer stop()

	for i := 0; i < 25; i++ {
		h.Publish(TopicDashboard, Event{Event: "snapshot", Data: i})
	}
	require.Len(t, ch, cap(ch))
}

func TestNotify_NilPublisher(t *testing.T) {
	assert.NotPanics(t, func() { Notify(nil, TopicTheme, true) })

	h := NewHub()
	ch, stop := h.Subscribe(TopicTheme)
	defer stop()
	Notify(h, TopicTheme, true)
	ev := <-ch
	assert.Equal(t, "snapshot", ev.Event)
}
