//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=../mocks/mock_repository.go -package=mocks
package repository

import (
	"context"

	"notes-backend/internal/model"
)

// NoteRepository интерфейс для работы с заметками в хранилище.
//
// Реализации возвращают только ошибки model.ErrNotFound и model.ErrValidation
// (через errors.Is), а сбои самого хранилища оборачивают через %w.
// После любой ошибки состояние хранилища не меняется.
type NoteRepository interface {
	// Create назначает ID и временные метки, сохраняет и возвращает новую заметку
	Create(ctx context.Context, input model.NoteInput) (model.Note, error)

	// GetByID возвращает заметку по её ID
	GetByID(ctx context.Context, id string) (model.Note, error)

	// List возвращает все заметки в порядке создания
	List(ctx context.Context) ([]model.Note, error)

	// Update заменяет title, content и tags существующей заметки и обновляет UpdatedAt
	Update(ctx context.Context, id string, input model.NoteInput) (model.Note, error)

	// Delete удаляет заметку по ID
	Delete(ctx context.Context, id string) error
}
