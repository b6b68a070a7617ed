package sales

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

	"paycalc/internal/storage"
)

type MockSalesStorage struct {
	mock.Mock
}

func (m *MockSalesStorage) GetSalesEntries(ctx context.Context) ([]storage.SalesEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.SalesEntry), args.Error(1)
}

func (m *MockSalesStorage) ReplaceSalesEntries(ctx context.Context, entries []storage.SalesEntry) error {
	return m.Called(ctx, entries).Error(0)
}

func (m *MockSalesStorage) SaveSalesEntry(ctx context.Context, e storage.SalesEntry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockSalesStorage) DeleteSalesEntry(ctx context.Context, employeeID string) error {
	return m.Called(ctx, employeeID).Error(0)
}

func (m *MockSalesStorage) ClearSales(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockSalesStorage) GetProductSales(ctx context.Context) ([]storage.ProductSale, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.ProductSale), args.Error(1)
}

func (m *MockSalesStorage) ReplaceProductSales(ctx context.Context, sales []storage.ProductSale) error {
	return m.Called(ctx, sales).Error(0)
}

func newRouter(st SalesStorage) http.Handler {
	log := slog.Default()
	r := chi.NewRouter()
	r.Get("/api/sales", GetSales(log, st))
	r.Put("/api/sales", ReplaceSales(log, st))
	r.Delete("/api/sales", ClearSales(log, st))
	r.Put("/api/sales/{employeeID}", SaveEntry(log, st))
	r.Delete("/api/sales/{employeeID}", DeleteEntry(log, st))
	r.Get("/api/product-sales", GetProductSales(log, st))
	r.Put("/api/product-sales", ReplaceProductSales(log, st))
	return r
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestGetSales(t *testing.T) {
	mockStorage := new(MockSalesStorage)
	mockStorage.On("GetSalesEntries", mock.Anything).Return([]storage.SalesEntry{
		{EmployeeID: "e1", DailySales: []float64{100, 250}},
	}, nil)

	rr := serve(newRouter(mockStorage), http.MethodGet, "/api/sales", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"employeeId":"e1","dailySales":[100,250]}]`, rr.Body.String())
	mockStorage.AssertExpectations(t)
}

func TestGetSales_StorageError(t *testing.T) {
	mockStorage := new(MockSalesStorage)
	mockStorage.On("GetSalesEntries", mock.Anything).Return(nil, errors.New("db down"))

	rr := serve(newRouter(mockStorage), http.MethodGet, "/api/sales", "")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestReplaceSales_MigratesMonthlyTotals(t *testing.T) {
	mockStorage := new(MockSalesStorage)
	mockStorage.On("ReplaceSalesEntries", mock.Anything, []storage.SalesEntry{
		{EmployeeID: "e1", DailySales: []float64{1200}, DailyHours: []float64{40}},
	}).Return(nil)

	rr := serve(newRouter(mockStorage), http.MethodPut, "/api/sales", `{"sales":[{"employeeId":"e1","totalSalesDollars":1200,"hoursWorked":40}]}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	mockStorage.AssertExpectations(t)
}

func TestReplaceSales_DuplicateEmployee(t *testing.T) {
	mockStorage := new(MockSalesStorage)

	rr := serve(newRouter(mockStorage), http.MethodPut, "/api/sales", `{"sales":[{"employeeId":"e1","dailySales":[1]},{"employeeId":"e1","dailySales":[2]}]}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "Sales[1]: duplicate employeeId 'e1'")
	mockStorage.AssertNotCalled(t, "ReplaceSalesEntries", mock.Anything, mock.Anything)
}

func TestReplaceSales_StorageConflict(t *testing.T) {
	mockStorage := new(MockSalesStorage)
	mockStorage.On("ReplaceSalesEntries", mock.Anything, mock.Anything).
		Return(fmt.Errorf("sales entry e1: %w", storage.ErrAlreadyExists))

	rr := serve(newRouter(mockStorage), http.MethodPut, "/api/sales", `{"sales":[{"employeeId":"e1","dailySales":[1]}]}`)

	assert.Equal(t, http.StatusConflict, rr.Code)
	mockStorage.AssertExpectations(t)
}

func TestReplaceSales_Invalid(t *testing.T) {
	mockStorage := new(MockSalesStorage)

	rr := serve(newRouter(mockStorage), http.MethodPut, "/api/sales", `{"sales":[{"employeeId":"","dailySales":[5]}]}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	mockStorage.AssertNotCalled(t, "ReplaceSalesEntries", mock.Anything, mock.Anything)
}

func TestClearSales(t *testing.T) {
	mockStorage := new(MockSalesStorage)
	mockStorage.On("ClearSales", mock.Anything).Return(nil)

	rr := serve(newRouter(mockStorage), http.MethodDelete, "/api/sales", "")

	assert.Equal(t, http.StatusNoContent, rr.Code)
	mockStorage.AssertExpectations(t)
}

func TestSaveEntry_UsesPathEmployee(t *testing.T) {
	mockStorage := new(MockSalesStorage)
	mockStorage.On("SaveSalesEntry", mock.Anything, storage.SalesEntry{EmployeeID: "e2", DailySales: []float64{300}}).Return(nil)

	rr := serve(newRouter(mockStorage), http.MethodPut, "/api/sales/e2", `{"dailySales":[300]}`)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp storage.SalesEntry
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))
	assert.Equal(t, "e2", resp.EmployeeID)
	mockStorage.AssertExpectations(t)
}

func TestDeleteEntry_NotFound(t *testing.T) {
	mockStorage := new(MockSalesStorage)
	mockStorage.On("DeleteSalesEntry", mock.Anything, "e9").Return(fmt.Errorf("sales of e9: %w", storage.ErrNotFound))

	rr := serve(newRouter(mockStorage), http.MethodDelete, "/api/sales/e9", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	mockStorage.AssertExpectations(t)
}

func TestProductSales(t *testing.T) {
	mockStorage := new(MockSalesStorage)
	mockStorage.On("GetProductSales", mock.Anything).Return(nil, nil)
	mockStorage.On("ReplaceProductSales", mock.Anything, []storage.ProductSale{{ProductID: "p1", QuantitySold: 40}}).Return(nil)

	h := newRouter(mockStorage)

	rr := serve(h, http.MethodGet, "/api/product-sales", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = serve(h, http.MethodPut, "/api/product-sales", `{"productSales":[{"productId":"p1","quantitySold":40}]}`)
	assert.Equal(t, http.StatusOK, rr.Code)

	mockStorage.AssertExpectations(t)
}
