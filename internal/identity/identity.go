// Package identity генерирует идентификаторы заметок.
package identity

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

const (
	// StrategySequence числовые идентификаторы по возрастанию (1, 2, 3...)
	StrategySequence = "sequence"
	// StrategyUUID случайные UUID v4
	StrategyUUID = "uuid"
)

// Generator выдает уникальные идентификаторы.
// Выданный идентификатор не выдается повторно за время жизни генератора,
// даже если заметка с ним была удалена.
type Generator interface {
	Next() (string, error)
}

// Sequence монотонно возрастающий счетчик
type Sequence struct {
	last atomic.Uint64
}

// NewSequence создает счетчик, первый идентификатор которого равен start
func NewSequence(start uint64) *Sequence {
	s := &Sequence{}
	if start > 0 {
		s.last.Store(start - 1)
	}
	return s
}

// Next возвращает следующий идентификатор
func (s *Sequence) Next() (string, error) {
	return strconv.FormatUint(s.last.Add(1), 10), nil
}

// UUID генератор случайных идентификаторов
type UUID struct{}

// NewUUID создает генератор UUID
func NewUUID() UUID {
	return UUID{}
}

// Next возвращает новый UUID
func (UUID) Next() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("uuid.NewRandom: %w", err)
	}
	return id.String(), nil
}

// New создает генератор для стратегии из конфигурации
func New(strategy string) (Generator, error) {
	switch strategy {
	case "", StrategySequence:
		return NewSequence(1), nil
	case StrategyUUID:
		return NewUUID(), nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", strategy)
	}
}
