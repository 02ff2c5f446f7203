package mockws

import "errors"

// Ошибки хранилища.
var (
	// ErrNotFound — ресурс отсутствует.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists — ресурс с таким именем уже есть.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalid — данные запроса некорректны.
	ErrInvalid = errors.New("invalid data")
)
