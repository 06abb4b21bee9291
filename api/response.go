package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/garnizeh/trainhub/internal/training"
)

// Every operation answers with the same envelope: {"success":true,"data":...}
// on success, {"success":false,"error":"..."} on failure. Errors never cross
// the boundary untyped; writeError maps the taxonomy to a status code.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

func writeFailure(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: false, Error: msg}); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

func writeError(w http.ResponseWriter, err error) {
	var (
		validationErr *training.ValidationError
		notFoundErr   *training.NotFoundError
		conflictErr   *training.ConflictError
		assignErr     *training.AssignmentError
		storeErr      *training.StoreError
	)

	switch {
	case errors.As(err, &validationErr):
		writeFailure(w, http.StatusBadRequest, validationErr.Msg)
	case errors.As(err, &notFoundErr):
		writeFailure(w, http.StatusNotFound, notFoundErr.Msg)
	case errors.As(err, &conflictErr):
		writeFailure(w, http.StatusConflict, conflictErr.Msg)
	case errors.As(err, &assignErr):
		logger.Error("assignment failed", slog.Any("err", err))
		writeFailure(w, http.StatusInternalServerError, assignErr.Msg)
	case errors.As(err, &storeErr):
		logger.Error("store failure", slog.Any("err", err))
		writeFailure(w, http.StatusInternalServerError, "storage failure")
	default:
		logger.Error("unexpected failure", slog.Any("err", err))
		writeFailure(w, http.StatusInternalServerError, "internal error")
	}
}
