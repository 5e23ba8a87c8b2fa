package converter

import (
	"github.com/samber/lo"

	"notes-backend/internal/model"
	notesv1 "notes-backend/pkg/api/notes/v1"
)

// ApiToModel конвертирует транспортную Note в domain модель
func ApiToModel(apiNote *notesv1.Note) model.Note {
	if apiNote == nil {
		return model.Note{}
	}

	return model.Note{
		ID:        apiNote.Id,
		Title:     apiNote.Title,
		Content:   apiNote.Content,
		Tags:      cloneTags(apiNote.Tags),
		CreatedAt: apiNote.CreatedAt.UTC(),
		UpdatedAt: apiNote.UpdatedAt.UTC(),
	}
}

// ModelToApi конвертирует domain модель Note в транспортную
func ModelToApi(note model.Note) *notesv1.Note {
	return &notesv1.Note{
		Id:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		Tags:      cloneTags(note.Tags),
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

// ModelsToApis конвертирует слайс domain моделей.
// Пустой список остается пустым слайсом, чтобы в JSON был [], а не null.
func ModelsToApis(notes []model.Note) []*notesv1.Note {
	return lo.Map(notes, func(note model.Note, _ int) *notesv1.Note {
		return ModelToApi(note)
	})
}

// ApisToModels обратная конвертация списка
func ApisToModels(notes []*notesv1.Note) []model.Note {
	return lo.Map(notes, func(note *notesv1.Note, _ int) model.Note {
		return ApiToModel(note)
	})
}

// EventToApi конвертирует событие изменения заметки
func EventToApi(ev model.NoteEvent) *notesv1.NoteEvent {
	return &notesv1.NoteEvent{
		Type: string(ev.Type),
		Note: ModelToApi(ev.Note),
		At:   ev.At,
	}
}

func cloneTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	return append([]string(nil), tags...)
}
