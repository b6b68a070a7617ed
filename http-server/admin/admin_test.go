package admin

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"paycalc/internal/service/imports"
	"paycalc/internal/storage"
)

type MockAdminStorage struct {
	mock.Mock
}

func (m *MockAdminStorage) ReplaceSuppliers(ctx context.Context, suppliers []storage.Supplier) error {
	return m.Called(ctx, suppliers).Error(0)
}

func (m *MockAdminStorage) ReplaceEmployees(ctx context.Context, employees []storage.Employee) error {
	return m.Called(ctx, employees).Error(0)
}

func (m *MockAdminStorage) ResetAll(ctx context.Context, defaults storage.Settings) error {
	return m.Called(ctx, defaults).Error(0)
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/admin/import", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestImportSuppliers_Valid(t *testing.T) {
	mockStorage := new(MockAdminStorage)
	mockStorage.On("ReplaceSuppliers", mock.Anything, mock.MatchedBy(func(s []storage.Supplier) bool {
		return len(s) == 2 && s[0].ID == "s1" && s[1].ID == "s2"
	})).Return(nil)

	body := `{"suppliers":[
		{"id":"s1","name":"Bean Co","products":[{"id":"p1","name":"Beans","costPerUnit":2}]},
		{"id":"s2","name":"Cup Co","products":[]}
	]}`
	rr := post(ImportSuppliers(slog.Default(), mockStorage), body)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"valid":true,"errors":[],"imported":2}`, rr.Body.String())
	mockStorage.AssertExpectations(t)
}

func TestImportSuppliers_Invalid(t *testing.T) {
	mockStorage := new(MockAdminStorage)

	body := `{"suppliers":[
		{"id":"s1","name":"Bean Co","products":[{"id":"p1","name":"Beans","costPerUnit":2}]},
		{"id":"s1","name":"Cup Co","products":[{"id":"p1","name":"Cups","costPerUnit":1}]}
	]}`
	rr := post(ImportSuppliers(slog.Default(), mockStorage), body)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var resp imports.ValidationResult
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))
	assert.False(t, resp.Valid)
	assert.Equal(t, []string{
		"Supplier[1]: duplicate id 's1'",
		"Supplier[1].products[0]: duplicate product id 'p1'",
	}, resp.Errors)
	mockStorage.AssertNotCalled(t, "ReplaceSuppliers", mock.Anything, mock.Anything)
}

func TestImportSuppliers_InvalidJSON(t *testing.T) {
	mockStorage := new(MockAdminStorage)

	rr := post(ImportSuppliers(slog.Default(), mockStorage), `{"suppliers":`)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.JSONEq(t, `{"valid":false,"errors":["Invalid JSON format"]}`, rr.Body.String())
}

func TestImportEmployees(t *testing.T) {
	mockStorage := new(MockAdminStorage)
	mockStorage.On("ReplaceEmployees", mock.Anything, []storage.Employee{
		{ID: "e1", Name: "Alice", Scheme: storage.FlatScheme{Rate: 0.1}},
	}).Return(nil)

	rr := post(ImportEmployees(slog.Default(), mockStorage), `{"employees":[{"id":"e1","name":"Alice","commissionType":"flat","flatRate":0.1}]}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"valid":true,"errors":[],"imported":1}`, rr.Body.String())
	mockStorage.AssertExpectations(t)
}

func TestImportEmployees_StorageError(t *testing.T) {
	mockStorage := new(MockAdminStorage)
	mockStorage.On("ReplaceEmployees", mock.Anything, mock.Anything).Return(errors.New("db down"))

	rr := post(ImportEmployees(slog.Default(), mockStorage), `{"employees":[]}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestReset(t *testing.T) {
	mockStorage := new(MockAdminStorage)
	mockStorage.On("ResetAll", mock.Anything, storage.Settings{CurrencySymbol: "€"}).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/reset", nil)
	rr := httptest.NewRecorder()
	Reset(slog.Default(), mockStorage, storage.Settings{CurrencySymbol: "€"}).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	mockStorage.AssertExpectations(t)
}
