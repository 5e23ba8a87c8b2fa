package notes

import (
	"sync"

	"notes-backend/internal/model"
)

// subscriberBuffer размер буфера канала подписчика
const subscriberBuffer = 16

// EventService управляет подписчиками на события изменения заметок
type EventService struct {
	subscribers map[chan model.NoteEvent]struct{}
	mu          sync.RWMutex
}

// NewEventService создает новый экземпляр EventService
func NewEventService() *EventService {
	return &EventService{
		subscribers: make(map[chan model.NoteEvent]struct{}),
	}
}

// Subscribe добавляет нового подписчика и возвращает канал для получения событий
func (s *EventService) Subscribe() chan model.NoteEvent {
	ch := make(chan model.NoteEvent, subscriberBuffer)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe удаляет подписчика и закрывает его канал. Повторный вызов безопасен.
func (s *EventService) Unsubscribe(ch chan model.NoteEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subscribers[ch]; ok {
		close(ch)
		delete(s.subscribers, ch)
	}
}

// Publish отправляет событие всем подписчикам.
// Если канал подписчика переполнен, событие для него пропускается.
func (s *EventService) Publish(event model.NoteEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount возвращает количество активных подписчиков
func (s *EventService) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}
