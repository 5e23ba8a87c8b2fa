package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"notes-backend/internal/model"
)

func TestEventService_PublishToAllSubscribers(t *testing.T) {
	events := NewEventService()
	a := events.Subscribe()
	b := events.Subscribe()
	assert.Equal(t, 2, events.SubscriberCount())

	ev := model.NoteEvent{Type: model.EventCreated, Note: model.Note{ID: "1"}}
	events.Publish(ev)

	assert.Equal(t, ev, <-a)
	assert.Equal(t, ev, <-b)
}

func TestEventService_DropsWhenBufferFull(t *testing.T) {
	events := NewEventService()
	ch := events.Subscribe()

	for range subscriberBuffer + 5 {
		events.Publish(model.NoteEvent{Type: model.EventUpdated})
	}
	assert.Len(t, ch, subscriberBuffer)
}

func TestEventService_Unsubscribe(t *testing.T) {
	events := NewEventService()
	ch := events.Subscribe()

	events.Unsubscribe(ch)
	events.Unsubscribe(ch) // повторный вызов не паникует

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, events.SubscriberCount())

	// Публикация без подписчиков
	events.Publish(model.NoteEvent{Type: model.EventDeleted})
}
