package summary

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
	"paycalc/internal/service/payroll"
)

type MockSummaryProvider struct {
	mock.Mock
}

func (m *MockSummaryProvider) MonthlySummary(ctx context.Context) (payroll.MonthlySummary, error) {
	args := m.Called(ctx)
	return args.Get(0).(payroll.MonthlySummary), args.Error(1)
}

func (m *MockSummaryProvider) WhatIf(ctx context.Context, multiplierPercent float64) (payroll.WhatIf, error) {
	args := m.Called(ctx, multiplierPercent)
	return args.Get(0).(payroll.WhatIf), args.Error(1)
}

func TestGetSummary_Success(t *testing.T) {
	mockSvc := new(MockSummaryProvider)
	mockSvc.On("MonthlySummary", mock.Anything).
		Return(payroll.MonthlySummary{TotalRevenue: 8000, GrossProfit: 5175}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	rr := httptest.NewRecorder()
	GetSummary(slog.Default(), mockSvc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp payroll.MonthlySummary
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))
	assert.Equal(t, 8000.0, resp.TotalRevenue)
	assert.Equal(t, 5175.0, resp.GrossProfit)

	mockSvc.AssertExpectations(t)
}

func TestGetSummary_Error(t *testing.T) {
	mockSvc := new(MockSummaryProvider)
	mockSvc.On("MonthlySummary", mock.Anything).Return(payroll.MonthlySummary{}, errors.New("db down"))

	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	rr := httptest.NewRecorder()
	GetSummary(slog.Default(), mockSvc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	mockSvc.AssertExpectations(t)
}

func TestGetWhatIf_Multiplier(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  float64
	}{
		{name: "default", query: "", want: 100},
		{name: "explicit", query: "?multiplier=150", want: 150},
		{name: "zero", query: "?multiplier=0", want: 0},
		{name: "upper bound", query: "?multiplier=300", want: 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockSummaryProvider)
			mockSvc.On("WhatIf", mock.Anything, tt.want).
				Return(payroll.WhatIf{MultiplierPercent: tt.want}, nil)

			req := httptest.NewRequest(http.MethodGet, "/api/summary/what-if"+tt.query, nil)
			rr := httptest.NewRecorder()
			GetWhatIf(slog.Default(), mockSvc).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)

			var resp payroll.WhatIf
			require.NoError(t, render.DecodeJSON(rr.Body, &resp))
			assert.Equal(t, tt.want, resp.MultiplierPercent)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestGetWhatIf_InvalidMultiplier(t *testing.T) {
	for _, q := range []string{"abc", "-1", "300.5", "NaN"} {
		t.Run(q, func(t *testing.T) {
			mockSvc := new(MockSummaryProvider)

			req := httptest.NewRequest(http.MethodGet, "/api/summary/what-if?multiplier="+q, nil)
			rr := httptest.NewRecorder()
			GetWhatIf(slog.Default(), mockSvc).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), "between 0 and 300")
			mockSvc.AssertNotCalled(t, "WhatIf", mock.Anything, mock.Anything)
		})
	}
}

func TestPreviewCommission_Flat(t *testing.T) {
	body := `{"employee":{"name":"Alice","commissionType":"flat","flatRate":0.1},"sales":1000}`
	req := httptest.NewRequest(http.MethodPost, "/api/commission/preview", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	PreviewCommission(slog.Default()).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp payroll.CommissionResult
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))
	assert.Equal(t, "Alice", resp.EmployeeName)
	assert.InDelta(t, 100, resp.CommissionAmount, 1e-9)
	assert.Len(t, resp.Breakdown, 1)
}

func TestPreviewCommission_Hourly(t *testing.T) {
	body := `{"employee":{"id":"e1","name":"Bob","commissionType":"hourly","hourlyRate":20},"sales":500,"hours":8}`
	req := httptest.NewRequest(http.MethodPost, "/api/commission/preview", strings.NewReader(body))
	rr := httptest.NewRecorder()
	PreviewCommission(slog.Default()).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp payroll.CommissionResult
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))
	assert.Equal(t, "e1", resp.EmployeeID)
	assert.InDelta(t, 160, resp.CommissionAmount, 1e-9)
}

func TestPreviewCommission_InvalidEmployee(t *testing.T) {
	body := `{"employee":{"name":"Alice","commissionType":"bonus"},"sales":1000}`
	req := httptest.NewRequest(http.MethodPost, "/api/commission/preview", strings.NewReader(body))
	rr := httptest.NewRecorder()
	PreviewCommission(slog.Default()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var resp imports.ValidationResult
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))
	assert.False(t, resp.Valid)
	assert.Equal(t, []string{"Employee: 'commissionType' must be 'flat', 'tiered', or 'hourly'"}, resp.Errors)
}

func TestPreviewCommission_BadRequest(t *testing.T) {
	for name, body := range map[string]string{
		"syntax":         `{`,
		"negative sales": `{"employee":{"name":"A","commissionType":"flat","flatRate":0.1},"sales":-5}`,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/commission/preview", strings.NewReader(body))
			rr := httptest.NewRecorder()
			PreviewCommission(slog.Default()).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}
