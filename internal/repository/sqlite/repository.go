// Package sqlite хранит заметки в файле SQLite (драйвер modernc.org/sqlite, без cgo).
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"notes-backend/internal/identity"
	"notes-backend/internal/model"
	"notes-backend/internal/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS notes (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT    NOT NULL UNIQUE,
	title      TEXT    NOT NULL,
	content    TEXT    NOT NULL,
	tags       TEXT    NOT NULL DEFAULT '[]',
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS id_sequence (
	name  TEXT PRIMARY KEY,
	value INTEGER NOT NULL
);
INSERT OR IGNORE INTO id_sequence (name, value) VALUES ('notes', 0);`

const selectColumns = "id, title, content, tags, created_at, updated_at"

var _ repository.NoteRepository = (*Repository)(nil)

// Repository хранилище заметок на SQLite.
// Числовые ID берутся из таблицы id_sequence в той же транзакции, что и вставка,
// поэтому удаленные ID не выдаются повторно и после перезапуска.
type Repository struct {
	mu  sync.Mutex // сериализует изменения
	db  *sql.DB
	ids identity.Generator // nil: ID из id_sequence
	now func() time.Time
	log zerolog.Logger
}

// Option настройка sqlite репозитория
type Option func(*Repository)

// WithIDGenerator задает генератор ID вместо таблицы id_sequence
func WithIDGenerator(gen identity.Generator) Option {
	return func(r *Repository) {
		r.ids = gen
	}
}

// WithClock задает источник времени
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// Open открывает (или создает) базу по пути path и применяет схему
func Open(ctx context.Context, path string, log zerolog.Logger, opts ...Option) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	// Одно соединение: ":memory:" живет в рамках соединения, а запись в SQLite и так последовательная
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	r := &Repository{
		db:  db,
		now: time.Now,
		log: log.With().Str("component", "sqlite_repository").Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Close закрывает базу
func (r *Repository) Close() error {
	return r.db.Close()
}

// Create создает новую заметку и возвращает созданную заметку с ID
func (r *Repository) Create(ctx context.Context, input model.NoteInput) (model.Note, error) {
	if err := input.Validate(); err != nil {
		return model.Note{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var note model.Note
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		id, err := r.nextID(ctx, tx)
		if err != nil {
			return err
		}

		note = model.NewNote(id, input, r.now())
		tags, err := encodeTags(note.Tags)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO notes (id, title, content, tags, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			note.ID, note.Title, note.Content, tags, note.CreatedAt.UnixNano(), note.UpdatedAt.UnixNano(),
		)
		return err
	})
	if err != nil {
		return model.Note{}, fmt.Errorf("create note: %w", err)
	}

	r.log.Debug().Str("note_id", note.ID).Msg("note created")
	return note, nil
}

// GetByID возвращает заметку по её ID
func (r *Repository) GetByID(ctx context.Context, id string) (model.Note, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+selectColumns+" FROM notes WHERE id = ?", id)
	note, err := scanNote(row)
	if err != nil {
		return model.Note{}, mapError(err, id)
	}
	return note, nil
}

// List возвращает список всех заметок в порядке создания
func (r *Repository) List(ctx context.Context) ([]model.Note, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+selectColumns+" FROM notes ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]model.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("list notes: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// Update обновляет существующую заметку и возвращает обновленную заметку
func (r *Repository) Update(ctx context.Context, id string, input model.NoteInput) (model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var updated model.Note
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, "SELECT "+selectColumns+" FROM notes WHERE id = ?", id)
		existing, err := scanNote(row)
		if err != nil {
			return err
		}
		if err := input.Validate(); err != nil {
			return err
		}

		updated = existing.Replace(input, r.now())
		tags, err := encodeTags(updated.Tags)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			"UPDATE notes SET title = ?, content = ?, tags = ?, updated_at = ? WHERE id = ?",
			updated.Title, updated.Content, tags, updated.UpdatedAt.UnixNano(), id,
		)
		return err
	})
	if err != nil {
		return model.Note{}, mapError(err, id)
	}

	r.log.Debug().Str("note_id", id).Msg("note updated")
	return updated, nil
}

// Delete удаляет заметку по ID
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return mapError(err, id)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return mapError(err, id)
	}
	if affected == 0 {
		return model.NotFound(id)
	}

	r.log.Debug().Str("note_id", id).Msg("note deleted")
	return nil
}

func (r *Repository) nextID(ctx context.Context, tx *sql.Tx) (string, error) {
	if r.ids != nil {
		return r.ids.Next()
	}

	if _, err := tx.ExecContext(ctx, "UPDATE id_sequence SET value = value + 1 WHERE name = 'notes'"); err != nil {
		return "", fmt.Errorf("advance id sequence: %w", err)
	}
	var value uint64
	if err := tx.QueryRowContext(ctx, "SELECT value FROM id_sequence WHERE name = 'notes'").Scan(&value); err != nil {
		return "", fmt.Errorf("read id sequence: %w", err)
	}
	return strconv.FormatUint(value, 10), nil
}

// inTx выполняет fn в транзакции, откатывая её при ошибке
func (r *Repository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(s scanner) (model.Note, error) {
	var (
		note                 model.Note
		tags                 string
		createdAt, updatedAt int64
	)
	if err := s.Scan(&note.ID, &note.Title, &note.Content, &tags, &createdAt, &updatedAt); err != nil {
		return model.Note{}, err
	}
	if err := json.Unmarshal([]byte(tags), &note.Tags); err != nil {
		return model.Note{}, fmt.Errorf("decode tags of note %q: %w", note.ID, err)
	}
	if len(note.Tags) == 0 {
		note.Tags = nil
	}
	note.CreatedAt = time.Unix(0, createdAt).UTC()
	note.UpdatedAt = time.Unix(0, updatedAt).UTC()
	return note, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(data), nil
}

// mapError переводит ошибки database/sql в доменные
func mapError(err error, id string) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return model.NotFound(id)
	case errors.Is(err, model.ErrValidation):
		return err
	default:
		return fmt.Errorf("sqlite note %q: %w", id, err)
	}
}
