package model

import "time"

// EventType тип события изменения заметки
type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// NoteEvent событие изменения заметки.
// Для EventDeleted в Note заполнен только ID.
type NoteEvent struct {
	Type EventType
	Note Note
	At   time.Time
}
