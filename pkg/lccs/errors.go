package lccs

import (
	"errors"

	"github.com/shaiso/lccs/pkg/domain"
	"github.com/shaiso/lccs/pkg/transport"
)

// Классы ошибок фасада.
var (
	// ErrNotFound — ресурс не удалось получить у сервера.
	ErrNotFound = errors.New("not found")

	// ErrInsertFailed — сервер отклонил создание ресурса.
	ErrInsertFailed = errors.New("could not insert")

	// ErrDeleteFailed — сервер отклонил удаление ресурса.
	ErrDeleteFailed = errors.New("could not delete")

	// ErrInvalidInput — параметры операции некорректны (запрос не отправлялся).
	ErrInvalidInput = errors.New("invalid input")
)

// Error — ошибка операции фасада с идентификатором ресурса.
type Error struct {
	Op       string // операция: "get classification system", "delete style", ...
	Resource string // идентификатор ресурса
	Kind     error  // ErrNotFound, ErrInsertFailed, ErrDeleteFailed или ErrInvalidInput
	Err      error  // исходная ошибка (транспорт, разбор, валидация)
}

// Error реализует интерфейс error.
func (e *Error) Error() string {
	msg := e.Op
	if e.Resource != "" {
		msg += " " + e.Resource
	}
	msg += ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap возвращает класс ошибки и причину. 404 от сервера и
// отсутствующий класс дополнительно совпадают с ErrNotFound.
func (e *Error) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Kind != ErrNotFound && (errors.Is(e.Err, transport.ErrNotFound) || errors.Is(e.Err, domain.ErrClassNotFound)) {
		errs = append(errs, ErrNotFound)
	}
	return errs
}

func notFound(op, resource string, err error) error {
	return &Error{Op: op, Resource: resource, Kind: ErrNotFound, Err: err}
}

func insertFailed(op, resource string, err error) error {
	return &Error{Op: op, Resource: resource, Kind: ErrInsertFailed, Err: err}
}

func deleteFailed(op, resource string, err error) error {
	return &Error{Op: op, Resource: resource, Kind: ErrDeleteFailed, Err: err}
}

func invalidInput(op, resource string, err error) error {
	return &Error{Op: op, Resource: resource, Kind: ErrInvalidInput, Err: err}
}
