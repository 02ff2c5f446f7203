package domain

import (
	"errors"
	"fmt"
)

// Ошибки разбора записей.
var (
	// ErrMissingField — в JSON отсутствует обязательный ключ.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidPayload — payload не является JSON объектом нужной формы.
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrInvalidRequest — payload запроса не прошёл валидацию.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrClassNotFound — класс с заданным именем отсутствует в коллекции.
	ErrClassNotFound = errors.New("class not found")
)

// FieldError — ошибка, привязанная к конкретной записи и ключу.
type FieldError struct {
	Record string // тип записи: "classification_system", "class", ...
	Field  string // имя ключа JSON
	Err    error  // базовая ошибка
}

// Error реализует интерфейс error.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Record, e.Field, e.Err)
}

// Unwrap возвращает базовую ошибку.
func (e *FieldError) Unwrap() error {
	return e.Err
}
