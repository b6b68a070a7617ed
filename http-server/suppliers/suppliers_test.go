package suppliers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"paycalc/internal/service/imports"
	"paycalc/internal/storage"
)

type MockSupplierStorage struct {
	mock.Mock
}

func (m *MockSupplierStorage) GetSuppliers(ctx context.Context) ([]storage.Supplier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Supplier), args.Error(1)
}

func (m *MockSupplierStorage) ReplaceSuppliers(ctx context.Context, suppliers []storage.Supplier) error {
	return m.Called(ctx, suppliers).Error(0)
}

func (m *MockSupplierStorage) CreateSupplier(ctx context.Context, supplier storage.Supplier) error {
	return m.Called(ctx, supplier).Error(0)
}

func (m *MockSupplierStorage) DeleteSupplier(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSupplierStorage) AddProduct(ctx context.Context, supplierID string, product storage.Product) error {
	return m.Called(ctx, supplierID, product).Error(0)
}

func (m *MockSupplierStorage) DeleteProduct(ctx context.Context, supplierID, productID string) error {
	return m.Called(ctx, supplierID, productID).Error(0)
}

func newRouter(st SupplierStorage) http.Handler {
	log := slog.Default()
	r := chi.NewRouter()
	r.Get("/api/suppliers", GetSuppliers(log, st))
	r.Put("/api/suppliers", ReplaceSuppliers(log, st))
	r.Post("/api/suppliers", CreateSupplier(log, st))
	r.Delete("/api/suppliers/{id}", DeleteSupplier(log, st))
	r.Post("/api/suppliers/{id}/products", AddProduct(log, st))
	r.Delete("/api/suppliers/{id}/products/{productID}", DeleteProduct(log, st))
	return r
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestGetSuppliers_Success(t *testing.T) {
	mockStorage := new(MockSupplierStorage)
	mockStorage.On("GetSuppliers", mock.Anything).Return([]storage.Supplier{
		{ID: "s1", Name: "Bean Co", Products: []storage.Product{{ID: "p1", Name: "Beans", CostPerUnit: 2}}},
	}, nil)

	rr := serve(newRouter(mockStorage), http.MethodGet, "/api/suppliers", "")

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp []storage.Supplier
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Bean Co", resp[0].Name)
	mockStorage.AssertExpectations(t)
}

func TestGetSuppliers_EmptyIsArray(t *testing.T) {
	mockStorage := new(MockSupplierStorage)
	mockStorage.On("GetSuppliers", mock.Anything).Return(nil, nil)

	rr := serve(newRouter(mockStorage), http.MethodGet, "/api/suppliers", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestGetSuppliers_StorageError(t *testing.T) {
	mockStorage := new(MockSupplierStorage)
	mockStorage.On("GetSuppliers", mock.Anything).Return(nil, errors.New("db down"))

	rr := serve(newRouter(mockStorage), http.MethodGet, "/api/suppliers", "")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestReplaceSuppliers_Valid(t *testing.T) {
	mockStorage := new(MockSupplierStorage)
	mockStorage.On("ReplaceSuppliers", mock.Anything, []storage.Supplier{
		{ID: "s1", Name: "Bean Co", Products: []storage.Product{{ID: "p1", Name: "Beans", CostPerUnit: 2}}},
	}).Return(nil)

	body := `{"suppliers":[{"id":"s1","name":"Bean Co","products":[{"id":"p1","name":"Beans","costPerUnit":2}]}]}`
	rr := serve(newRouter(mockStorage), http.MethodPut, "/api/suppliers", body)

	assert.Equal(t, http.StatusOK, rr.Code)
	mockStorage.AssertExpectations(t)
}

func TestReplaceSuppliers_Invalid(t *testing.T) {
	mockStorage := new(MockSupplierStorage)

	rr := serve(newRouter(mockStorage), http.MethodPut, "/api/suppliers", `{"suppliers":[{"id":"s1","products":[]}]}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var resp imports.ValidationResult
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))
	assert.Equal(t, []string{"Supplier[0]: missing or invalid 'name'"}, resp.Errors)
	mockStorage.AssertNotCalled(t, "ReplaceSuppliers", mock.Anything, mock.Anything)
}

func TestCreateSupplier_GeneratesIDs(t *testing.T) {
	mockStorage := new(MockSupplierStorage)
	mockStorage.On("CreateSupplier", mock.Anything, mock.MatchedBy(func(s storage.Supplier) bool {
		return s.ID != "" && s.Name == "Bean Co" && len(s.Products) == 1 && s.Products[0].ID != ""
	})).Return(nil)

	body := `{"name":"Bean Co","products":[{"name":"Beans","costPerUnit":2}]}`
	rr := serve(newRouter(mockStorage), http.MethodPost, "/api/suppliers", body)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp storage.Supplier
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))
	assert.NotEmpty(t, resp.ID)
	mockStorage.AssertExpectations(t)
}

func TestCreateSupplier_Conflict(t *testing.T) {
	mockStorage := new(MockSupplierStorage)
	mockStorage.On("CreateSupplier", mock.Anything, mock.Anything).
		Return(fmt.Errorf("supplier s1: %w", storage.ErrAlreadyExists))

	rr := serve(newRouter(mockStorage), http.MethodPost, "/api/suppliers", `{"id":"s1","name":"Bean Co"}`)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestDeleteSupplier(t *testing.T) {
	mockStorage := new(MockSupplierStorage)
	mockStorage.On("DeleteSupplier", mock.Anything, "s1").Return(nil)
	mockStorage.On("DeleteSupplier", mock.Anything, "nope").Return(fmt.Errorf("nope: %w", storage.ErrNotFound))

	h := newRouter(mockStorage)

	assert.Equal(t, http.StatusNoContent, serve(h, http.MethodDelete, "/api/suppliers/s1", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(h, http.MethodDelete, "/api/suppliers/nope", "").Code)
	mockStorage.AssertExpectations(t)
}

func TestAddProduct(t *testing.T) {
	mockStorage := new(MockSupplierStorage)
	mockStorage.On("AddProduct", mock.Anything, "s1", storage.Product{ID: "p2", Name: "Cups", CostPerUnit: 0.5}).Return(nil)

	rr := serve(newRouter(mockStorage), http.MethodPost, "/api/suppliers/s1/products", `{"id":"p2","name":"Cups","costPerUnit":0.5}`)

	assert.Equal(t, http.StatusCreated, rr.Code)
	mockStorage.AssertExpectations(t)
}

func TestAddProduct_Invalid(t *testing.T) {
	mockStorage := new(MockSupplierStorage)

	rr := serve(newRouter(mockStorage), http.MethodPost, "/api/suppliers/s1/products", `{"name":"Cups","costPerUnit":"cheap"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "'costPerUnit' must be a non-negative number")
	mockStorage.AssertNotCalled(t, "AddProduct", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteProduct(t *testing.T) {
	mockStorage := new(MockSupplierStorage)
	mockStorage.On("DeleteProduct", mock.Anything, "s1", "p1").Return(nil)

	rr := serve(newRouter(mockStorage), http.MethodDelete, "/api/suppliers/s1/products/p1", "")

	assert.Equal(t, http.StatusNoContent, rr.Code)
	mockStorage.AssertExpectations(t)
}
