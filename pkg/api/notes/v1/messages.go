// Package notesv1 описывает транспортный контракт сервиса notes.v1.NotesService:
// сообщения, JSON кодек для gRPC, дескриптор сервиса и типизированный клиент.
package notesv1

import "time"

// Note заметка в транспортном представлении
type Note struct {
	Id        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (x *Note) GetId() string {
	if x == nil {
		return ""
	}
	return x.Id
}

func (x *Note) GetTitle() string {
	if x == nil {
		return ""
	}
	return x.Title
}

type CreateNoteRequest struct {
	Title   string   `json:"title" validate:"notblank,max=200"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty" validate:"omitempty,max=20,dive,notblank,max=64"`
}

func (x *CreateNoteRequest) GetTitle() string {
	if x == nil {
		return ""
	}
	return x.Title
}

func (x *CreateNoteRequest) GetContent() string {
	if x == nil {
		return ""
	}
	return x.Content
}

func (x *CreateNoteRequest) GetTags() []string {
	if x == nil {
		return nil
	}
	return x.Tags
}

type CreateNoteResponse struct {
	Note *Note `json:"note"`
}

type GetNoteRequest struct {
	Id string `json:"id" validate:"notblank"`
}

func (x *GetNoteRequest) GetId() string {
	if x == nil {
		return ""
	}
	return x.Id
}

type GetNoteResponse struct {
	Note *Note `json:"note"`
}

type ListNotesRequest struct{}

type ListNotesResponse struct {
	Notes []*Note `json:"notes"`
}

type UpdateNoteRequest struct {
	Id      string   `json:"id" validate:"notblank"`
	Title   string   `json:"title" validate:"notblank,max=200"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty" validate:"omitempty,max=20,dive,notblank,max=64"`
}

func (x *UpdateNoteRequest) GetId() string {
	if x == nil {
		return ""
	}
	return x.Id
}

func (x *UpdateNoteRequest) GetTitle() string {
	if x == nil {
		return ""
	}
	return x.Title
}

func (x *UpdateNoteRequest) GetContent() string {
	if x == nil {
		return ""
	}
	return x.Content
}

func (x *UpdateNoteRequest) GetTags() []string {
	if x == nil {
		return nil
	}
	return x.Tags
}

type UpdateNoteResponse struct {
	Note *Note `json:"note"`
}

type DeleteNoteRequest struct {
	Id string `json:"id" validate:"notblank"`
}

func (x *DeleteNoteRequest) GetId() string {
	if x == nil {
		return ""
	}
	return x.Id
}

type DeleteNoteResponse struct{}

type SubscribeToEventsRequest struct{}

// NoteEvent событие изменения заметки: created, updated или deleted
type NoteEvent struct {
	Type string    `json:"type"`
	Note *Note     `json:"note"`
	At   time.Time `json:"at"`
}
