package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"paycalc/http-server/respond"
	"paycalc/internal/service/imports"
	"paycalc/internal/service/payroll"
)

type SummaryProvider interface {
	MonthlySummary(ctx context.Context) (payroll.MonthlySummary, error)
	WhatIf(ctx context.Context, multiplierPercent float64) (payroll.WhatIf, error)
}

func GetSummary(log *slog.Logger, svc SummaryProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.summary.GetSummary"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		summary, err := svc.MonthlySummary(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to compute monthly summary")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, summary)
	}
}

// GetWhatIf scales the month's sales by ?multiplier= percent. A missing
// multiplier reads as 100.
func GetWhatIf(log *slog.Logger, svc SummaryProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.summary.GetWhatIf"

		multiplier := 100.0
		if raw := r.URL.Query().Get("multiplier"); raw != "" {
			m, err := strconv.ParseFloat(raw, 64)
			if err != nil || math.IsNaN(m) || m < payroll.MinMultiplierPercent || m > payroll.MaxMultiplierPercent {
				log.With(slog.String("op", op), slog.String("multiplier", raw)).Warn("invalid multiplier")
				http.Error(w, fmt.Sprintf("'multiplier' must be a number between %d and %d",
					payroll.MinMultiplierPercent, payroll.MaxMultiplierPercent), http.StatusBadRequest)
				return
			}
			multiplier = m
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		whatIf, err := svc.WhatIf(ctx, multiplier)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to compute what-if scenario")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, whatIf)
	}
}

type PreviewRequest struct {
	Employee json.RawMessage `json:"employee"`
	Sales    float64         `json:"sales"`
	Hours    float64         `json:"hours"`
}

// PreviewCommission evaluates a posted employee's scheme against one day of
// sales without touching storage.
func PreviewCommission(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.summary.PreviewCommission"

		var req PreviewRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Warn("failed to decode request")
			http.Error(w, "Invalid JSON format", http.StatusBadRequest)
			return
		}

		if req.Sales < 0 || req.Hours < 0 {
			http.Error(w, "'sales' and 'hours' must be non-negative", http.StatusBadRequest)
			return
		}

		employee, res := imports.ParseEmployee(req.Employee, func() string { return "preview" })
		if !res.Valid {
			respond.Invalid(w, r, res)
			return
		}

		render.JSON(w, r, payroll.PreviewCommission(employee, req.Sales, req.Hours))
	}
}
