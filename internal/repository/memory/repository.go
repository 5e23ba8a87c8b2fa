package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"notes-backend/internal/identity"
	"notes-backend/internal/model"
	"notes-backend/internal/repository"
)

var _ repository.NoteRepository = (*repo)(nil)

// repo in-memory хранилище заметок на основе map.
// Данные не переживают перезапуск процесса.
//
// Все изменения (map, порядок и генератор ID) выполняются под одной
// блокировкой mu, чтение идет под RLock.
type repo struct {
	mu    sync.RWMutex
	notes map[string]model.Note
	order []string // ID в порядке создания

	ids identity.Generator
	now func() time.Time
}

// Option настройка in-memory репозитория
type Option func(*repo)

// WithIDGenerator задает генератор идентификаторов (по умолчанию последовательность с 1)
func WithIDGenerator(gen identity.Generator) Option {
	return func(r *repo) {
		r.ids = gen
	}
}

// WithClock задает источник времени (для тестов)
func WithClock(now func() time.Time) Option {
	return func(r *repo) {
		r.now = now
	}
}

// NewRepository создает новый экземпляр in-memory репозитория на основе map
func NewRepository(opts ...Option) repository.NoteRepository {
	r := &repo{
		notes: make(map[string]model.Note),
		ids:   identity.NewSequence(1),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create создает новую заметку и возвращает созданную заметку с ID
func (r *repo) Create(ctx context.Context, input model.NoteInput) (model.Note, error) {
	if err := input.Validate(); err != nil {
		return model.Note{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.ids.Next()
	if err != nil {
		return model.Note{}, fmt.Errorf("generate id: %w", err)
	}
	// Генератор не должен выдавать живой ID, но проверяем, чтобы не перетереть заметку
	if _, exists := r.notes[id]; exists {
		return model.Note{}, fmt.Errorf("generated id %q collides with existing note", id)
	}

	note := model.NewNote(id, input, r.now())
	r.notes[id] = note
	r.order = append(r.order, id)

	return note.Clone(), nil
}

// GetByID возвращает заметку по её ID
func (r *repo) GetByID(ctx context.Context, id string) (model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, exists := r.notes[id]
	if !exists {
		return model.Note{}, model.NotFound(id)
	}

	return note.Clone(), nil
}

// List возвращает список всех заметок в порядке создания
func (r *repo) List(ctx context.Context) ([]model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	notes := make([]model.Note, 0, len(r.order))
	for _, id := range r.order {
		notes = append(notes, r.notes[id].Clone())
	}

	return notes, nil
}

// Update обновляет существующую заметку и возвращает обновленную заметку
func (r *repo) Update(ctx context.Context, id string, input model.NoteInput) (model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Проверяем существование заметки
	existing, exists := r.notes[id]
	if !exists {
		return model.Note{}, model.NotFound(id)
	}

	if err := input.Validate(); err != nil {
		return model.Note{}, err
	}

	updated := existing.Replace(input, r.now())
	r.notes[id] = updated

	return updated.Clone(), nil
}

// Delete удаляет заметку по ID
func (r *repo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Проверяем существование заметки
	if _, exists := r.notes[id]; !exists {
		return model.NotFound(id)
	}

	delete(r.notes, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}

	return nil
}
