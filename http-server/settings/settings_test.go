package settings

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"paycalc/internal/storage"
)

type MockSettingsStorage struct {
	mock.Mock
}

func (m *MockSettingsStorage) GetSettings(ctx context.Context) (storage.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(storage.Settings), args.Error(1)
}

func (m *MockSettingsStorage) SaveSettings(ctx context.Context, st storage.Settings) error {
	return m.Called(ctx, st).Error(0)
}

func TestGetSettings(t *testing.T) {
	mockStorage := new(MockSettingsStorage)
	mockStorage.On("GetSettings", mock.Anything).Return(storage.Settings{CurrencySymbol: "€", DarkMode: true}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	rr := httptest.NewRecorder()
	GetSettings(slog.Default(), mockStorage).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"currencySymbol":"€","darkMode":true}`, rr.Body.String())
	mockStorage.AssertExpectations(t)
}

func TestGetSettings_Error(t *testing.T) {
	mockStorage := new(MockSettingsStorage)
	mockStorage.On("GetSettings", mock.Anything).Return(storage.Settings{}, errors.New("db down"))

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	rr := httptest.NewRecorder()
	GetSettings(slog.Default(), mockStorage).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestSaveSettings(t *testing.T) {
	mockStorage := new(MockSettingsStorage)
	mockStorage.On("SaveSettings", mock.Anything, storage.Settings{CurrencySymbol: "£", DarkMode: false}).Return(nil)

	req := httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(`{"currencySymbol":"£"}`))
	rr := httptest.NewRecorder()
	SaveSettings(slog.Default(), mockStorage).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	mockStorage.AssertExpectations(t)
}

func TestSaveSettings_Invalid(t *testing.T) {
	mockStorage := new(MockSettingsStorage)

	req := httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(`{"currencySymbol":"dollars"}`))
	rr := httptest.NewRecorder()
	SaveSettings(slog.Default(), mockStorage).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	mockStorage.AssertNotCalled(t, "SaveSettings", mock.Anything, mock.Anything)
}
