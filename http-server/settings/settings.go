package settings

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

type SettingsStorage interface {
	GetSettings(ctx context.Context) (storage.Settings, error)
	SaveSettings(ctx context.Context, st storage.Settings) error
}

func GetSettings(log *slog.Logger, st SettingsStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.settings.GetSettings"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		settings, err := st.GetSettings(ctx)
		if err != nil {
			respond.StorageError(log, w, op, err, "failed to fetch settings")
			return
		}

		render.JSON(w, r, settings)
	}
}

// SaveSettings stores the posted settings. Omitted fields take their defaults.
func SaveSettings(log *slog.Logger, st SettingsStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.settings.SaveSettings"

		raw, err := respond.ReadBody(w, r)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}

		settings, res := imports.ParseSettings(raw)
		if !res.Valid {
			respond.Invalid(w, r, res)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := st.SaveSettings(ctx, settings); err != nil {
			respond.StorageError(log, w, op, err, "failed to save settings")
			return
		}

		render.JSON(w, r, settings)
	}
}
