package suppliers

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

type SupplierStorage interface {
	GetSuppliers(ctx context.Context) ([]storage.Supplier, error)
	ReplaceSuppliers(ctx context.Context, suppliers []storage.Supplier) error
	CreateSupplier(ctx context.Context, supplier storage.Supplier) error
	DeleteSupplier(ctx context.Context, id string) error
	AddProduct(ctx context.Context, supplierID string, product storage.Product) error
	DeleteProduct(ctx context.Context, supplierID, productID string) error
}

func GetSuppliers(log *slog.Logger, st SupplierStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.suppliers.GetSuppliers"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		suppliers, err := st.GetSuppliers(ctx)
		if err != nil {
			respond.StorageError(log, w, op, err, "failed to fetch suppliers")
			return
		}
		if suppliers == nil {
			suppliers = []storage.Supplier{}
		}

		render.JSON(w, r, suppliers)
	}
}

// ReplaceSuppliers swaps the whole list for a {"suppliers": [...]} document.
func ReplaceSuppliers(log *slog.Logger, st SupplierStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.suppliers.ReplaceSuppliers"

		raw, err := respond.ReadBody(w, r)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}

		suppliers, res := imports.ParseSuppliers(raw)
		if !res.Valid {
			respond.Invalid(w, r, res)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := st.ReplaceSuppliers(ctx, suppliers); err != nil {
			respond.StorageError(log, w, op, err, "failed to replace suppliers")
			return
		}

		render.JSON(w, r, suppliers)
	}
}

func CreateSupplier(log *slog.Logger, st SupplierStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.suppliers.CreateSupplier"

		raw, err := respond.ReadBody(w, r)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}

		supplier, res := imports.ParseSupplier(raw, uuid.NewString)
		if !res.Valid {
			respond.Invalid(w, r, res)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := st.CreateSupplier(ctx, supplier); err != nil {
			respond.StorageError(log, w, op, err, "failed to create supplier")
			return
		}

		log.With(slog.String("op", op), slog.String("id", supplier.ID)).Info("supplier created")
		respond.Created(w, r, supplier)
	}
}

func DeleteSupplier(log *slog.Logger, st SupplierStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.suppliers.DeleteSupplier"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := st.DeleteSupplier(ctx, chi.URLParam(r, "id")); err != nil {
			respond.StorageError(log, w, op, err, "failed to delete supplier")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func AddProduct(log *slog.Logger, st SupplierStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.suppliers.AddProduct"

		raw, err := respond.ReadBody(w, r)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}

		product, res := imports.ParseProduct(raw, uuid.NewString)
		if !res.Valid {
			respond.Invalid(w, r, res)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := st.AddProduct(ctx, chi.URLParam(r, "id"), product); err != nil {
			respond.StorageError(log, w, op, err, "failed to add product")
			return
		}

		respond.Created(w, r, product)
	}
}

func DeleteProduct(log *slog.Logger, st SupplierStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.suppliers.DeleteProduct"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := st.DeleteProduct(ctx, chi.URLParam(r, "id"), chi.URLParam(r, "productID")); err != nil {
			respond.StorageError(log, w, op, err, "failed to delete product")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
