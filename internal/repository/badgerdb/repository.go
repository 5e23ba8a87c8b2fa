// Package badgerdb хранит заметки во встраиваемой key-value базе BadgerDB.
package badgerdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"notes-backend/internal/identity"
	"notes-backend/internal/model"
	"notes-backend/internal/repository"
)

const (
	notePrefix = "note:"
	// sequenceKey ключ счетчика порядка создания, он же источник числовых ID
	sequenceKey = "seq:notes"
	// sequenceBandwidth сколько номеров арендуется за одно обращение к диску.
	// Неиспользованные номера теряются при перезапуске, но не выдаются повторно.
	sequenceBandwidth = 100
)

var _ repository.NoteRepository = (*Repository)(nil)

// Repository хранилище заметок на BadgerDB.
//
// Ключ "note:{id}" хранит JSON запись. Seq из badger.Sequence задает порядок
// создания и переживает перезапуск процесса.
type Repository struct {
	mu  sync.Mutex // сериализует изменения: проверка существования -> запись
	db  *badger.DB
	seq *badger.Sequence
	ids identity.Generator // nil: ID равен номеру последовательности
	now func() time.Time
	log zerolog.Logger
}

// Option настройка badger репозитория
type Option func(*Repository)

// WithIDGenerator задает генератор ID вместо номеров последовательности
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

type record struct {
	Seq       uint64    `json:"seq"`
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OpenDB открывает базу в каталоге path. Пустой path открывает базу в памяти.
func OpenDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).WithLoggingLevel(badger.WARNING)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger.Open: %w", err)
	}
	return db, nil
}

// NewRepository создает репозиторий поверх открытой базы.
// Базу закрывает вызывающий, последовательность освобождает Close.
func NewRepository(db *badger.DB, log zerolog.Logger, opts ...Option) (*Repository, error) {
	seq, err := db.GetSequence([]byte(sequenceKey), sequenceBandwidth)
	if err != nil {
		return nil, fmt.Errorf("db.GetSequence: %w", err)
	}

	r := &Repository{
		db:  db,
		seq: seq,
		now: time.Now,
		log: log.With().Str("component", "badger_repository").Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Close освобождает арендованные номера последовательности
func (r *Repository) Close() error {
	if err := r.seq.Release(); err != nil {
		return fmt.Errorf("seq.Release: %w", err)
	}
	return nil
}

// Create создает новую заметку и возвращает созданную заметку с ID
func (r *Repository) Create(ctx context.Context, input model.NoteInput) (model.Note, error) {
	if err := input.Validate(); err != nil {
		return model.Note{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	n, err := r.seq.Next()
	if err != nil {
		return model.Note{}, fmt.Errorf("seq.Next: %w", err)
	}
	// Sequence начинается с 0, ID начинаются с 1
	order := n + 1

	id := strconv.FormatUint(order, 10)
	if r.ids != nil {
		if id, err = r.ids.Next(); err != nil {
			return model.Note{}, fmt.Errorf("generate id: %w", err)
		}
	}

	note := model.NewNote(id, input, r.now())
	err = r.db.Update(func(txn *badger.Txn) error {
		key := noteKey(id)
		if _, err := txn.Get(key); err == nil {
			return fmt.Errorf("generated id %q collides with existing note", id)
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return putRecord(txn, toRecord(order, note))
	})
	if err != nil {
		return model.Note{}, fmt.Errorf("create note: %w", err)
	}

	r.log.Debug().Str("note_id", id).Msg("note created")
	return note, nil
}

// GetByID возвращает заметку по её ID
func (r *Repository) GetByID(ctx context.Context, id string) (model.Note, error) {
	var rec record
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		rec, err = getRecord(txn, id)
		return err
	})
	if err != nil {
		return model.Note{}, mapError(err, id)
	}
	return rec.toNote(), nil
}

// List возвращает список всех заметок в порядке создания
func (r *Repository) List(ctx context.Context) ([]model.Note, error) {
	var records []record
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(notePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec record
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	// Ключи отсортированы по ID, а не по времени создания
	slices.SortFunc(records, func(a, b record) int {
		switch {
		case a.Seq < b.Seq:
			return -1
		case a.Seq > b.Seq:
			return 1
		default:
			return 0
		}
	})

	notes := make([]model.Note, 0, len(records))
	for _, rec := range records {
		notes = append(notes, rec.toNote())
	}
	return notes, nil
}

// Update обновляет существующую заметку и возвращает обновленную заметку
func (r *Repository) Update(ctx context.Context, id string, input model.NoteInput) (model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var updated model.Note
	err := r.db.Update(func(txn *badger.Txn) error {
		rec, err := getRecord(txn, id)
		if err != nil {
			return err
		}
		if err := input.Validate(); err != nil {
			return err
		}

		updated = rec.toNote().Replace(input, r.now())
		return putRecord(txn, toRecord(rec.Seq, updated))
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

	err := r.db.Update(func(txn *badger.Txn) error {
		key := noteKey(id)
		if _, err := txn.Get(key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if err != nil {
		return mapError(err, id)
	}

	r.log.Debug().Str("note_id", id).Msg("note deleted")
	return nil
}

func noteKey(id string) []byte {
	return []byte(notePrefix + id)
}

func getRecord(txn *badger.Txn, id string) (record, error) {
	item, err := txn.Get(noteKey(id))
	if err != nil {
		return record{}, err
	}

	var rec record
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &rec)
	})
	if err != nil {
		return record{}, fmt.Errorf("decode note %q: %w", id, err)
	}
	return rec, nil
}

func putRecord(txn *badger.Txn, rec record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode note %q: %w", rec.ID, err)
	}
	return txn.Set(noteKey(rec.ID), data)
}

// mapError переводит ошибки badger в доменные
func mapError(err error, id string) error {
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		return model.NotFound(id)
	case errors.Is(err, model.ErrValidation):
		return err
	default:
		return fmt.Errorf("badger note %q: %w", id, err)
	}
}

func toRecord(seq uint64, n model.Note) record {
	return record{
		Seq:       seq,
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Tags:      n.Tags,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (rec record) toNote() model.Note {
	n := model.Note{
		ID:        rec.ID,
		Title:     rec.Title,
		Content:   rec.Content,
		Tags:      rec.Tags,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	return n.Clone()
}
