package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound возвращается, когда заметка не найдена
	ErrNotFound = errors.New("note not found")
	// ErrValidation возвращается, когда входные данные не прошли валидацию
	ErrValidation = errors.New("validation failed")
)

// NotFoundError ошибка отсутствия заметки с конкретным ID
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("note %q not found", e.ID)
}

// Is позволяет сравнивать ошибку с ErrNotFound через errors.Is
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound создает ошибку отсутствия заметки
func NotFound(id string) error {
	return &NotFoundError{ID: id}
}

// ValidationError ошибка валидации конкретного поля
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

// Is позволяет сравнивать ошибку с ErrValidation через errors.Is
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid создает ошибку валидации поля
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
