package employees

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

type EmployeeStorage interface {
	GetEmployees(ctx context.Context) ([]storage.Employee, error)
	ReplaceEmployees(ctx context.Context, employees []storage.Employee) error
	CreateEmployee(ctx context.Context, e storage.Employee) error
	UpdateEmployee(ctx context.Context, e storage.Employee) error
	DeleteEmployee(ctx context.Context, id string) error
}

func GetEmployees(log *slog.Logger, st EmployeeStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.employees.GetEmployees"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		employees, err := st.GetEmployees(ctx)
		if err != nil {
			respond.StorageError(log, w, op, err, "failed to fetch employees")
			return
		}
		if employees == nil {
			employees = []storage.Employee{}
		}

		render.JSON(w, r, employees)
	}
}

// ReplaceEmployees swaps the whole list for an {"employees": [...]} document.
func ReplaceEmployees(log *slog.Logger, st EmployeeStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.employees.ReplaceEmployees"

		raw, err := respond.ReadBody(w, r)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}

		employees, res := imports.ParseEmployees(raw)
		if !res.Valid {
			respond.Invalid(w, r, res)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := st.ReplaceEmployees(ctx, employees); err != nil {
			respond.StorageError(log, w, op, err, "failed to replace employees")
			return
		}

		render.JSON(w, r, employees)
	}
}

func CreateEmployee(log *slog.Logger, st EmployeeStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.employees.CreateEmployee"

		raw, err := respond.ReadBody(w, r)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}

		employee, res := imports.ParseEmployee(raw, uuid.NewString)
		if !res.Valid {
			respond.Invalid(w, r, res)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := st.CreateEmployee(ctx, employee); err != nil {
			respond.StorageError(log, w, op, err, "failed to create employee")
			return
		}

		log.With(slog.String("op", op), slog.String("id", employee.ID)).Info("employee created")
		respond.Created(w, r, employee)
	}
}

// UpdateEmployee replaces the employee named in the path. An id in the body is
// ignored.
func UpdateEmployee(log *slog.Logger, st EmployeeStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.employees.UpdateEmployee"

		id := chi.URLParam(r, "id")

		raw, err := respond.ReadBody(w, r)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}

		employee, res := imports.ParseEmployee(raw, func() string { return id })
		if !res.Valid {
			respond.Invalid(w, r, res)
			return
		}
		employee.ID = id

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := st.UpdateEmployee(ctx, employee); err != nil {
			respond.StorageError(log, w, op, err, "failed to update employee")
			return
		}

		render.JSON(w, r, employee)
	}
}

// DeleteEmployee removes the employee together with their sales entry.
func DeleteEmployee(log *slog.Logger, st EmployeeStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.employees.DeleteEmployee"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := st.DeleteEmployee(ctx, chi.URLParam(r, "id")); err != nil {
			respond.StorageError(log, w, op, err, "failed to delete employee")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
