package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"paycalc/internal/service/export"
	"paycalc/internal/service/imports"
)

type Exporter interface {
	Config(ctx context.Context) (export.Config, error)
	ResultsCSV(ctx context.Context) ([]byte, error)
	ReportXLSX(ctx context.Context) ([]byte, error)
}

// ExportConfig downloads suppliers and employees as one document.
func ExportConfig(log *slog.Logger, exp Exporter) http.HandlerFunc {
	return exportJSON(log, exp, "handlers.report.ExportConfig", "paycalc-config.json", func(c export.Config) any {
		return c
	})
}

// ExportSuppliers downloads a document the suppliers import accepts.
func ExportSuppliers(log *slog.Logger, exp Exporter) http.HandlerFunc {
	return exportJSON(log, exp, "handlers.report.ExportSuppliers", "paycalc-suppliers.json", func(c export.Config) any {
		return imports.SuppliersDocument{Suppliers: c.Suppliers}
	})
}

// ExportEmployees downloads a document the employees import accepts.
func ExportEmployees(log *slog.Logger, exp Exporter) http.HandlerFunc {
	return exportJSON(log, exp, "handlers.report.ExportEmployees", "paycalc-employees.json", func(c export.Config) any {
		return imports.EmployeesDocument{Employees: c.Employees}
	})
}

func exportJSON(log *slog.Logger, exp Exporter, op, fileName string, doc func(export.Config) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		cfg, err := exp.Config(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to export config")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		body, err := json.MarshalIndent(doc(cfg), "", "  ")
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to encode export")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Write(body)
	}
}

func ExportResultsCSV(log *slog.Logger, exp Exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.ExportResultsCSV"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		csvBytes, err := exp.ResultsCSV(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to export results")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		fileName := fmt.Sprintf("paycalc-results-%s.csv", time.Now().Format("2006-01-02"))

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Write(csvBytes)
	}
}

func ExportReportXLSX(log *slog.Logger, exp Exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.ExportReportXLSX"

		// building a workbook takes longer than a JSON answer
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		excelBytes, err := exp.ReportXLSX(ctx)
		if err != nil {
			log.Error("failed to generate excel", "op", op, "err", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		fileName := fmt.Sprintf("paycalc-report-%s.xlsx", time.Now().Format("2006-01-02_150405"))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Write(excelBytes)
	}
}
