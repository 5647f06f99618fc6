package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/salafuz/admin-panel/internal/validation"
	"github.com/salafuz/admin-panel/pkg/api"
)

// responder содержит общие для handlers методы отправки ответов
type responder struct {
	logger *slog.Logger
}

// sendJSON отправляет JSON ответ
func (h responder) sendJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func (h responder) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}

// sendValidation отправляет 422 с ошибками по полям.
// Ошибки не из validation уходят как 400.
func (h responder) sendValidation(w http.ResponseWriter, err error) {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	resp := api.ErrorResponse{
		Error:   http.StatusText(http.StatusUnprocessableEntity),
		Message: "validation failed",
		Errors:  verr.Fields,
	}
	h.sendJSON(w, resp, http.StatusUnprocessableEntity)
}

// fieldError создает ошибку валидации для одного поля
func fieldError(field, msg string) error {
	return &validation.Error{Fields: map[string]string{field: msg}}
}

// parseID разбирает положительный числовой id из пути
func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
