package mockws

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// ErrorResponse — тело ответа с ошибкой в формате LCCS-WS.
type ErrorResponse struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

// MessageResponse — ответ со статусом операции.
type MessageResponse struct {
	Message string `json:"message"`
}

// JSON отправляет JSON ответ.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(data)
}

// Success отправляет 200 с данными.
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created отправляет 201 с данными.
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// Message отправляет 201 с сообщением о результате.
func Message(w http.ResponseWriter, format string, args ...any) {
	Created(w, MessageResponse{Message: fmt.Sprintf(format, args...)})
}

// NoContent отправляет ответ без тела (204).
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// File отправляет бинарный файл с Content-Disposition.
func File(w http.ResponseWriter, name string, content []byte) {
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", name))
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}

// Error отправляет ответ с ошибкой.
func Error(w http.ResponseWriter, status int, description string) {
	JSON(w, status, ErrorResponse{Code: status, Description: description})
}

// BadRequest отправляет ошибку 400.
func BadRequest(w http.ResponseWriter, description string) {
	Error(w, http.StatusBadRequest, description)
}

// NotFound отправляет ошибку 404.
func NotFound(w http.ResponseWriter, description string) {
	Error(w, http.StatusNotFound, description)
}

// Unauthorized отправляет ошибку 401.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "missing or invalid access token")
}

// InternalError отправляет ошибку 500.
func InternalError(w http.ResponseWriter, logger *slog.Logger, err error) {
	logger.Error("internal error", "error", err)
	Error(w, http.StatusInternalServerError, "internal server error")
}

// HandleStoreError преобразует ошибку хранилища в HTTP ответ.
// Возвращает true, если ответ отправлен.
func HandleStoreError(w http.ResponseWriter, logger *slog.Logger, err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, ErrNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, ErrAlreadyExists):
		Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalid):
		BadRequest(w, err.Error())
	default:
		InternalError(w, logger, err)
	}
	return true
}
