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

type ExpenseStorage interface {
	GetExpenses(ctx context.Context) ([]storage.Expense, error)
	ReplaceExpenses(ctx context.Context, expenses []storage.Expense) error
	CreateExpense(ctx context.Context, e storage.Expense) error
	DeleteExpense(ctx context.Context, id string) error
}

func GetExpenses(log *slog.Logger, st ExpenseStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.fixedcosts.GetExpenses"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		expenses, err := st.GetExpenses(ctx)
		if err != nil {
			respond.StorageError(log, w, op, err, "failed to fetch expenses")
			return
		}
		if expenses == nil {
			expenses = []storage.Expense{}
		}

		render.JSON(w, r, expenses)
	}
}

func ReplaceExpenses(log *slog.Logger, st ExpenseStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.fixedcosts.ReplaceExpenses"

		raw, err := respond.ReadBody(w, r)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}

		expenses, res := imports.ParseExpenses(raw)
		if !res.Valid {
			respond.Invalid(w, r, res)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := st.ReplaceExpenses(ctx, expenses); err != nil {
			respond.StorageError(log, w, op, err, "failed to replace expenses")
			return
		}

		render.JSON(w, r, expenses)
	}
}

func CreateExpense(log *slog.Logger, st ExpenseStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.fixedcosts.CreateExpense"

		raw, err := respond.ReadBody(w, r)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}

		expense, res := imports.ParseExpense(raw, uuid.NewString)
		if !res.Valid {
			respond.Invalid(w, r, res)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := st.CreateExpense(ctx, expense); err != nil {
			respond.StorageError(log, w, op, err, "failed to create expense")
			return
		}

		respond.Created(w, r, expense)
	}
}

func DeleteExpense(log *slog.Logger, st ExpenseStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.fixedcosts.DeleteExpense"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := st.DeleteExpense(ctx, chi.URLParam(r, "id")); err != nil {
			respond.StorageError(log, w, op, err, "failed to delete expense")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
