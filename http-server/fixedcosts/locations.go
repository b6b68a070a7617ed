package fixedcosts

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"paycalc/http-server/respond"
	"paycalc/internal/service/imports"
	"paycalc/internal/storage"
)

type LocationStorage interface {
	GetLocations(ctx context.Context) ([]storage.Location, error)
	ReplaceLocations(ctx context.Context, locations []storage.Location) error
	CreateLocation(ctx context.Context, l storage.Location) error
	DeleteLocation(ctx context.Context, id string) error
}

func GetLocations(log *slog.Logger, st LocationStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.fixedcosts.GetLocations"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		locations, err := st.GetLocations(ctx)
		if err != nil {
			respond.StorageError(log, w, op, err, "failed to fetch locations")
			return
		}
		if locations == nil {
			locations = []storage.Location{}
		}

		render.JSON(w, r, locations)
	}
}

func ReplaceLocations(log *slog.Logger, st LocationStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.fixedcosts.ReplaceLocations"

		raw, err := respond.ReadBody(w, r)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}

		locations, res := imports.ParseLocations(raw)
		if !res.Valid {
			respond.Invalid(w, r, res)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := st.ReplaceLocations(ctx, locations); err != nil {
			respond.StorageError(log, w, op, err, "failed to replace locations")
			return
		}

		render.JSON(w, r, locations)
	}
}

func CreateLocation(log *slog.Logger, st LocationStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.fixedcosts.CreateLocation"

		raw, err := respond.ReadBody(w, r)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}

		location, res := imports.ParseLocation(raw, uuid.NewString)
		if !res.Valid {
			respond.Invalid(w, r, res)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := st.CreateLocation(ctx, location); err != nil {
			respond.StorageError(log, w, op, err, "failed to create location")
			return
		}

		respond.Created(w, r, location)
	}
}

func DeleteLocation(log *slog.Logger, st LocationStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.fixedcosts.DeleteLocation"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := st.DeleteLocation(ctx, chi.URLParam(r, "id")); err != nil {
			respond.StorageError(log, w, op, err, "failed to delete location")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
