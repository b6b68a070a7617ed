package admin

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"paycalc/http-server/respond"
	"paycalc/internal/service/imports"
	"paycalc/internal/storage"
)

type ImportStorage interface {
	ReplaceSuppliers(ctx context.Context, suppliers []storage.Supplier) error
	ReplaceEmployees(ctx context.Context, employees []storage.Employee) error
}

type ResetStorage interface {
	ResetAll(ctx context.Context, defaults storage.Settings) error
}

type ImportResponse struct {
	imports.ValidationResult
	Imported int `json:"imported"`
}

// ImportSuppliers replaces every supplier with the uploaded document. An
// invalid document leaves storage untouched and answers 422 with the errors.
func ImportSuppliers(log *slog.Logger, st ImportStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.ImportSuppliers"

		raw, err := respond.ReadBody(w, r)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}

		suppliers, res := imports.ParseSuppliers(raw)
		if !res.Valid {
			log.With(slog.String("op", op), slog.Int("errors", len(res.Errors))).Warn("rejected suppliers import")
			respond.Invalid(w, r, res)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		if err := st.ReplaceSuppliers(ctx, suppliers); err != nil {
			respond.StorageError(log, w, op, err, "failed to import suppliers")
			return
		}

		log.With(slog.String("op", op), slog.Int("count", len(suppliers))).Info("suppliers imported")
		render.JSON(w, r, ImportResponse{ValidationResult: res, Imported: len(suppliers)})
	}
}

func ImportEmployees(log *slog.Logger, st ImportStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.ImportEmployees"

		raw, err := respond.ReadBody(w, r)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}

		employees, res := imports.ParseEmployees(raw)
		if !res.Valid {
			log.With(slog.String("op", op), slog.Int("errors", len(res.Errors))).Warn("rejected employees import")
			respond.Invalid(w, r, res)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		if err := st.ReplaceEmployees(ctx, employees); err != nil {
			respond.StorageError(log, w, op, err, "failed to import employees")
			return
		}

		log.With(slog.String("op", op), slog.Int("count", len(employees))).Info("employees imported")
		render.JSON(w, r, ImportResponse{ValidationResult: res, Imported: len(employees)})
	}
}

// Reset wipes all data and restores defaults as the settings.
func Reset(log *slog.Logger, st ResetStorage, defaults storage.Settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.Reset"

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		if err := st.ResetAll(ctx, defaults); err != nil {
			respond.StorageError(log, w, op, err, "failed to reset data")
			return
		}

		log.With(slog.String("op", op)).Warn("all data reset")
		w.WriteHeader(http.StatusNoContent)
	}
}
