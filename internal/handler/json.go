package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fleetops-dev/plan-manager/backend/internal/domain"
	"github.com/go-playground/validator/v10"
)

func (h *Handler) logInternalServerError(r *http.Request, err error) {
	slog.Error("internal server error", "method", r.Method, "path", r.URL.Path, "error", err)
}

func (h *Handler) readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logInternalServerError(r, err)
	}
}

type Response struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    any                 `json:"data"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func (h *Handler) successResponse(w http.ResponseWriter, r *http.Request, status int, msg string, data any) {
	h.writeJSON(w, r, status, Response{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.writeJSON(w, r, status, Response{
		Success: false,
		Message: msg,
		Data:    nil,
	})
}

func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logInternalServerError(r, err)
	h.writeJSON(w, r, http.StatusInternalServerError, Response{
		Success: false,
		Message: err.Error(),
		Data:    nil,
	})
}

func (h *Handler) validationFailed(w http.ResponseWriter, r *http.Request, fields map[string][]string) {
	h.writeJSON(w, r, http.StatusUnprocessableEntity, Response{
		Success: false,
		Message: "Validation failed",
		Data:    nil,
		Errors:  fields,
	})
}

// badRequest handles malformed payloads and validator failures. Validator
// errors become a 422 with a field -> messages map.
func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	validationErrors := validator.ValidationErrors{}
	if ok := errors.As(err, &validationErrors); !ok {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	fields := map[string][]string{}
	for _, fieldError := range validationErrors {
		field := strings.ToLower(fieldError.Field()[:1]) + fieldError.Field()[1:]
		fields[field] = append(fields[field], fieldError.Translate(h.translator))
	}
	h.validationFailed(w, r, fields)
}

// serviceError translates the engine's typed failures. conflictStatus lets
// each operation choose between 403 (immutability) and 400 (business rule).
func (h *Handler) serviceError(w http.ResponseWriter, r *http.Request, err error, conflictStatus int) {
	var vErr *domain.ValidationError
	var cErr *domain.ConflictError
	var nfErr *domain.NotFoundError

	switch {
	case errors.As(err, &vErr):
		h.validationFailed(w, r, vErr.Fields)
	case errors.As(err, &cErr):
		h.errorResponse(w, r, conflictStatus, cErr.Message)
	case errors.As(err, &nfErr):
		h.errorResponse(w, r, http.StatusNotFound, nfErr.Error())
	default:
		h.internalServerError(w, r, err)
	}
}
