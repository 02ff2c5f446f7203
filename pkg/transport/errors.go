package transport

import (
	"errors"
	"fmt"
	"net/http"
)

// Классы ошибок транспорта.
var (
	// ErrRequest — запрос не дошёл до сервера (DNS, TLS, сеть, отмена контекста).
	ErrRequest = errors.New("request error")

	// ErrResponse — сервер ответил, но ответ нельзя принять.
	ErrResponse = errors.New("response error")

	// ErrNotFound — сервер ответил 404.
	ErrNotFound = errors.New("resource not found")

	// ErrUnexpectedContentType — Content-Type ответа не JSON и не файл.
	ErrUnexpectedContentType = errors.New("unexpected content type")

	// ErrInvalidJSON — тело ответа не является валидным JSON.
	ErrInvalidJSON = errors.New("invalid JSON response")

	// ErrResponseTooLarge — тело ответа больше допустимого размера.
	ErrResponseTooLarge = errors.New("response body too large")

	// ErrBadStatus — неуспешный HTTP статус.
	ErrBadStatus = errors.New("unexpected status code")
)

// RequestError — ошибка отправки запроса.
type RequestError struct {
	Method string
	URL    string
	Err    error
}

// Error реализует интерфейс error.
func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap возвращает ErrRequest и исходную ошибку.
func (e *RequestError) Unwrap() []error {
	return []error{ErrRequest, e.Err}
}

// ResponseError — ошибка обработки ответа сервера.
type ResponseError struct {
	Method     string
	URL        string
	StatusCode int
	Message    string // сообщение сервера, если удалось извлечь
	Err        error  // ErrBadStatus, ErrUnexpectedContentType, ErrInvalidJSON или ErrResponseTooLarge
}

// Error реализует интерфейс error.
func (e *ResponseError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Err != nil && e.Err != ErrBadStatus {
		msg += ": " + e.Err.Error()
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap возвращает ErrResponse, причину и ErrNotFound для 404.
func (e *ResponseError) Unwrap() []error {
	errs := []error{ErrResponse}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.StatusCode == http.StatusNotFound {
		errs = append(errs, ErrNotFound)
	}
	return errs
}
