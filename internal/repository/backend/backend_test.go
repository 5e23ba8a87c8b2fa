package backend

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-backend/internal/config"
	"notes-backend/internal/model"
)

func TestOpen_Backends(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.ConfigStorage
	}{
		{name: "nil config", cfg: nil},
		{name: "memory", cfg: &config.ConfigStorage{Backend: Memory}},
		{name: "memory uuid", cfg: &config.ConfigStorage{Backend: Memory, IDStrategy: "uuid"}},
		{name: "badger in memory", cfg: &config.ConfigStorage{Backend: Badger}},
		{name: "badger on disk", cfg: &config.ConfigStorage{Backend: Badger, Path: t.TempDir()}},
		{name: "sqlite in memory", cfg: &config.ConfigStorage{Backend: SQLite}},
		{name: "sqlite on disk", cfg: &config.ConfigStorage{Backend: SQLite, Path: filepath.Join(t.TempDir(), "notes.db")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo, closeFn, err := Open(ctx, tt.cfg, zerolog.Nop())
			require.NoError(t, err)
			defer func() { assert.NoError(t, closeFn()) }()

			created, err := repo.Create(ctx, model.NoteInput{Title: "hello"})
			require.NoError(t, err)

			fetched, err := repo.GetByID(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, created, fetched)
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, _, err := Open(context.Background(), &config.ConfigStorage{Backend: "postgres"}, zerolog.Nop())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownBackend))
}

func TestOpen_UnknownIDStrategy(t *testing.T) {
	for _, b := range []string{Memory, Badger, SQLite} {
		_, _, err := Open(context.Background(), &config.ConfigStorage{Backend: b, IDStrategy: "snowflake"}, zerolog.Nop())
		assert.Error(t, err, b)
	}
}
