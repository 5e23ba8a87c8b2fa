//go:generate go run go.uber.org/mock/mockgen -source=service.go -destination=../mocks/mock_service.go -package=mocks
package service

import (
	"context"

	"notes-backend/internal/model"
)

// NoteService интерфейс для бизнес-логики работы с заметками
type NoteService interface {
	// Create создает новую заметку с указанными title, content и tags
	Create(ctx context.Context, title, content string, tags []string) (model.Note, error)

	// Get возвращает заметку по её ID
	Get(ctx context.Context, id string) (model.Note, error)

	// List возвращает список всех заметок
	List(ctx context.Context) ([]model.Note, error)

	// Update полностью заменяет title, content и tags заметки с указанным ID
	Update(ctx context.Context, id, title, content string, tags []string) (model.Note, error)

	// Delete удаляет заметку по ID
	Delete(ctx context.Context, id string) error

	// Subscribe подписывает на события изменения заметок.
	// Возвращенную функцию нужно вызвать для отписки, после нее канал закрыт.
	Subscribe() (<-chan model.NoteEvent, func())
}
