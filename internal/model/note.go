package model

import (
	"slices"
	"strings"
	"time"
)

// Note представляет заметку (доменная модель)
type Note struct {
	ID        string    // Идентификатор заметки, назначается хранилищем
	Title     string    // Заголовок заметки
	Content   string    // Содержание заметки
	Tags      []string  // Теги заметки (опционально)
	CreatedAt time.Time // Дата создания
	UpdatedAt time.Time // Дата последнего обновления
}

// NoteInput данные для создания и полной замены заметки
type NoteInput struct {
	Title   string   `json:"title" validate:"notblank,max=200"`
	Content string   `json:"content"`
	Tags    []string `json:"tags" validate:"omitempty,max=20,dive,notblank,max=64"`
}

// NewNote собирает новую заметку из входных данных.
// CreatedAt и UpdatedAt совпадают.
func NewNote(id string, in NoteInput, now time.Time) Note {
	now = now.UTC()
	return Note{
		ID:        id,
		Title:     in.Title,
		Content:   in.Content,
		Tags:      cloneTags(in.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Replace возвращает копию заметки с замененными title, content и tags.
// ID и CreatedAt не меняются, UpdatedAt строго больше предыдущего значения.
func (n Note) Replace(in NoteInput, now time.Time) Note {
	now = now.UTC()
	if !now.After(n.UpdatedAt) {
		now = n.UpdatedAt.Add(time.Nanosecond)
	}

	updated := n.Clone()
	updated.Title = in.Title
	updated.Content = in.Content
	updated.Tags = cloneTags(in.Tags)
	updated.UpdatedAt = now
	return updated
}

// Clone возвращает глубокую копию заметки
func (n Note) Clone() Note {
	n.Tags = cloneTags(n.Tags)
	return n
}

// IsEmpty проверяет, пуста ли заметка
func (n *Note) IsEmpty() bool {
	return n.ID == "" && n.Title == "" && n.Content == ""
}

// Trimmed возвращает копию входных данных без пробелов по краям
func (in NoteInput) Trimmed() NoteInput {
	out := NoteInput{
		Title:   strings.TrimSpace(in.Title),
		Content: strings.TrimSpace(in.Content),
	}
	for _, tag := range in.Tags {
		out.Tags = append(out.Tags, strings.TrimSpace(tag))
	}
	return out
}

func cloneTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	return slices.Clone(tags)
}
