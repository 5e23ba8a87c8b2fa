// Package logger создает zerolog логгер из конфигурации.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"notes-backend/internal/config"
)

// New создает логгер с временными метками. w == nil означает os.Stdout.
// Неизвестный уровень логирования трактуется как info.
func New(cfg *config.ConfigLogger, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stdout
	}

	level := zerolog.InfoLevel
	format := "json"
	if cfg != nil {
		level = ParseLevel(cfg.Level)
		format = strings.ToLower(cfg.Format)
	}

	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// ParseLevel разбирает уровень логирования, по умолчанию info
func ParseLevel(level string) zerolog.Level {
	if level == "" {
		return zerolog.InfoLevel
	}
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return parsed
}
