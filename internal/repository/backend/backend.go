// Package backend выбирает реализацию NoteRepository по конфигурации.
package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"notes-backend/internal/config"
	"notes-backend/internal/identity"
	"notes-backend/internal/repository"
	"notes-backend/internal/repository/badgerdb"
	"notes-backend/internal/repository/memory"
	"notes-backend/internal/repository/sqlite"
)

const (
	Memory = "memory"
	Badger = "badger"
	SQLite = "sqlite"
)

// ErrUnknownBackend неизвестное значение storage.backend
var ErrUnknownBackend = errors.New("unknown storage backend")

// CloseFunc освобождает ресурсы хранилища
type CloseFunc func() error

// Open создает репозиторий, выбранный в cfg. Вызывается один раз при старте процесса.
func Open(ctx context.Context, cfg *config.ConfigStorage, log zerolog.Logger) (repository.NoteRepository, CloseFunc, error) {
	if cfg == nil {
		cfg = &config.ConfigStorage{}
	}

	switch cfg.Backend {
	case "", Memory:
		gen, err := identity.New(cfg.IDStrategy)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("backend", Memory).Str("id_strategy", strategyName(cfg)).
			Msg("Initialized in-memory repository (map-based), data is lost on restart")
		return memory.NewRepository(memory.WithIDGenerator(gen)), func() error { return nil }, nil

	case Badger:
		return openBadger(cfg, log)

	case SQLite:
		return openSQLite(ctx, cfg, log)

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

func openBadger(cfg *config.ConfigStorage, log zerolog.Logger) (repository.NoteRepository, CloseFunc, error) {
	var opts []badgerdb.Option
	switch cfg.IDStrategy {
	case "", identity.StrategySequence:
		// Номера берутся из badger.Sequence
	case identity.StrategyUUID:
		opts = append(opts, badgerdb.WithIDGenerator(identity.NewUUID()))
	default:
		return nil, nil, fmt.Errorf("unknown id strategy %q", cfg.IDStrategy)
	}

	db, err := badgerdb.OpenDB(cfg.Path)
	if err != nil {
		return nil, nil, err
	}
	repo, err := badgerdb.NewRepository(db, log, opts...)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	closeFn := func() error {
		return errors.Join(repo.Close(), db.Close())
	}
	log.Info().Str("backend", Badger).Str("path", cfg.Path).Str("id_strategy", strategyName(cfg)).
		Msg("Initialized badger repository")
	return repo, closeFn, nil
}

func openSQLite(ctx context.Context, cfg *config.ConfigStorage, log zerolog.Logger) (repository.NoteRepository, CloseFunc, error) {
	var opts []sqlite.Option
	switch cfg.IDStrategy {
	case "", identity.StrategySequence:
	case identity.StrategyUUID:
		opts = append(opts, sqlite.WithIDGenerator(identity.NewUUID()))
	default:
		return nil, nil, fmt.Errorf("unknown id strategy %q", cfg.IDStrategy)
	}

	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}
	repo, err := sqlite.Open(ctx, path, log, opts...)
	if err != nil {
		return nil, nil, err
	}

	log.Info().Str("backend", SQLite).Str("path", path).Str("id_strategy", strategyName(cfg)).
		Msg("Initialized sqlite repository")
	return repo, repo.Close, nil
}

func strategyName(cfg *config.ConfigStorage) string {
	if cfg.IDStrategy == "" {
		return identity.StrategySequence
	}
	return cfg.IDStrategy
}
