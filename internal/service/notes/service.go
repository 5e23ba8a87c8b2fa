package notes

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"notes-backend/internal/model"
	"notes-backend/internal/repository"
	svc "notes-backend/internal/service"
)

var _ svc.NoteService = (*service)(nil)

type service struct {
	noteRepository repository.NoteRepository
	events         *EventService
	log            zerolog.Logger
	now            func() time.Time
}

// NewNoteService создает новый экземпляр сервиса для работы с заметками
func NewNoteService(noteRepository repository.NoteRepository, events *EventService, log zerolog.Logger) svc.NoteService {
	if events == nil {
		events = NewEventService()
	}
	return &service{
		noteRepository: noteRepository,
		events:         events,
		log:            log.With().Str("component", "note_service").Logger(),
		now:            time.Now,
	}
}

// Create создает новую заметку с указанными title, content и tags
func (s *service) Create(ctx context.Context, title, content string, tags []string) (model.Note, error) {
	input := model.NoteInput{Title: title, Content: content, Tags: tags}.Trimmed()

	// ID и временные метки назначает репозиторий, там же валидация
	note, err := s.noteRepository.Create(ctx, input)
	if err != nil {
		return model.Note{}, err
	}

	s.publish(model.EventCreated, note)
	s.log.Info().Str("note_id", note.ID).Msg("note created")
	return note, nil
}

// Get возвращает заметку по её ID
func (s *service) Get(ctx context.Context, id string) (model.Note, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Note{}, model.Invalid("id", "cannot be empty")
	}

	return s.noteRepository.GetByID(ctx, id)
}

// List возвращает список всех заметок
func (s *service) List(ctx context.Context) ([]model.Note, error) {
	notes, err := s.noteRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	return notes, nil
}

// Update полностью заменяет title, content и tags заметки с указанным ID
func (s *service) Update(ctx context.Context, id, title, content string, tags []string) (model.Note, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Note{}, model.Invalid("id", "cannot be empty")
	}

	input := model.NoteInput{Title: title, Content: content, Tags: tags}.Trimmed()
	note, err := s.noteRepository.Update(ctx, id, input)
	if err != nil {
		return model.Note{}, err
	}

	s.publish(model.EventUpdated, note)
	s.log.Info().Str("note_id", note.ID).Msg("note updated")
	return note, nil
}

// Delete удаляет заметку по ID
func (s *service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Invalid("id", "cannot be empty")
	}

	if err := s.noteRepository.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(model.EventDeleted, model.Note{ID: id})
	s.log.Info().Str("note_id", id).Msg("note deleted")
	return nil
}

// Subscribe подписывает на события изменения заметок
func (s *service) Subscribe() (<-chan model.NoteEvent, func()) {
	ch := s.events.Subscribe()
	return ch, func() { s.events.Unsubscribe(ch) }
}

func (s *service) publish(eventType model.EventType, note model.Note) {
	s.events.Publish(model.NoteEvent{
		Type: eventType,
		Note: note.Clone(),
		At:   s.now().UTC(),
	})
}
