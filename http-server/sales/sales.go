package sales

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"paycalc/http-server/respond"
	"paycalc/internal/service/imports"
	"paycalc/internal/storage"
)

type SalesStorage interface {
	GetSalesEntries(ctx context.Context) ([]storage.SalesEntry, error)
	ReplaceSalesEntries(ctx context.Context, entries []storage.SalesEntry) error
	SaveSalesEntry(ctx context.Context, e storage.SalesEntry) error
	DeleteSalesEntry(ctx context.Context, employeeID string) error
	ClearSales(ctx context.Context) error
	GetProductSales(ctx context.Context) ([]storage.ProductSale, error)
	ReplaceProductSales(ctx context.Context, sales []storage.ProductSale) error
}

func GetSales(log *slog.Logger, st SalesStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.sales.GetSales"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		entries, err := st.GetSalesEntries(ctx)
		if err != nil {
			respond.StorageError(log, w, op, err, "failed to fetch sales")
			return
		}
		if entries == nil {
			entries = []storage.SalesEntry{}
		}

		render.JSON(w, r, entries)
	}
}

func ReplaceSales(log *slog.Logger, st SalesStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.sales.ReplaceSales"

		raw, err := respond.ReadBody(w, r)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}

		entries, res := imports.ParseSalesEntries(raw)
		if !res.Valid {
			respond.Invalid(w, r, res)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := st.ReplaceSalesEntries(ctx, entries); err != nil {
			respond.StorageError(log, w, op, err, "failed to replace sales")
			return
		}

		render.JSON(w, r, entries)
	}
}

// ClearSales drops every sales entry and the business-wide product sales.
func ClearSales(log *slog.Logger, st SalesStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.sales.ClearSales"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := st.ClearSales(ctx); err != nil {
			respond.StorageError(log, w, op, err, "failed to clear sales")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// SaveEntry creates or overwrites the sales entry of the employee in the path.
func SaveEntry(log *slog.Logger, st SalesStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.sales.SaveEntry"

		raw, err := respond.ReadBody(w, r)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}

		entry, res := imports.ParseSalesEntry(raw, chi.URLParam(r, "employeeID"))
		if !res.Valid {
			respond.Invalid(w, r, res)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := st.SaveSalesEntry(ctx, entry); err != nil {
			respond.StorageError(log, w, op, err, "failed to save sales entry")
			return
		}

		render.JSON(w, r, entry)
	}
}

func DeleteEntry(log *slog.Logger, st SalesStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.sales.DeleteEntry"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := st.DeleteSalesEntry(ctx, chi.URLParam(r, "employeeID")); err != nil {
			respond.StorageError(log, w, op, err, "failed to delete sales entry")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func GetProductSales(log *slog.Logger, st SalesStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.sales.GetProductSales"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		sales, err := st.GetProductSales(ctx)
		if err != nil {
			respond.StorageError(log, w, op, err, "failed to fetch product sales")
			return
		}
		if sales == nil {
			sales = []storage.ProductSale{}
		}

		render.JSON(w, r, sales)
	}
}

func ReplaceProductSales(log *slog.Logger, st SalesStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.sales.ReplaceProductSales"

		raw, err := respond.ReadBody(w, r)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}

		sales, res := imports.ParseProductSales(raw)
		if !res.Valid {
			respond.Invalid(w, r, res)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := st.ReplaceProductSales(ctx, sales); err != nil {
			respond.StorageError(log, w, op, err, "failed to replace product sales")
			return
		}

		render.JSON(w, r, sales)
	}
}
