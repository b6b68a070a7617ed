package respond

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"paycalc/internal/service/imports"
	"paycalc/internal/storage"
)

// MaxBodyBytes caps request bodies read by ReadBody.
const MaxBodyBytes = 1 << 20

type Status struct {
	Status string `json:"status"`
}

// StorageError maps storage sentinels to 404 and 409 and anything else to 500.
func StorageError(log *slog.Logger, w http.ResponseWriter, op string, err error, msg string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		log.With(slog.String("op", op), slog.String("error", err.Error())).Warn("not found")
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, storage.ErrAlreadyExists):
		log.With(slog.String("op", op), slog.String("error", err.Error())).Warn("already exists")
		http.Error(w, "Already exists", http.StatusConflict)
	default:
		log.With(slog.String("op", op), slog.String("error", err.Error())).Error(msg)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// Invalid writes a failed validation result with 422.
func Invalid(w http.ResponseWriter, r *http.Request, res imports.ValidationResult) {
	render.Status(r, http.StatusUnprocessableEntity)
	render.JSON(w, r, res)
}

func ReadBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
}

func Created(w http.ResponseWriter, r *http.Request, v any) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, v)
}
