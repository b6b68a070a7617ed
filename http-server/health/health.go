package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"paycalc/http-server/respond"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

func Healthz(log *slog.Logger, db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.health.Healthz"

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("storage unreachable")
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, respond.Status{Status: "unavailable"})
			return
		}

		render.JSON(w, r, respond.Status{Status: "ok"})
	}
}
