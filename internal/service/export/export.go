package export

import (
	"context"
	"fmt"

	"paycalc/internal/service/payroll"
	"paycalc/internal/storage"
)

type ExportStorage interface {
	payroll.PayrollStorage
	GetSettings(ctx context.Context) (storage.Settings, error)
}

// Config is the exported configuration document. Its suppliers and employees
// documents are accepted back by the import endpoints.
type Config struct {
	Suppliers []storage.Supplier `json:"suppliers"`
	Employees []storage.Employee `json:"employees"`
}

// Report is everything a results export renders.
type Report struct {
	Summary        payroll.MonthlySummary
	Locations      []storage.Location
	Expenses       []storage.Expense
	CurrencySymbol string
}

type Service struct {
	storage ExportStorage
	payroll *payroll.Service
}

func NewService(storage ExportStorage) *Service {
	return &Service{storage: storage, payroll: payroll.NewService(storage)}
}

func (s *Service) Config(ctx context.Context) (Config, error) {
	const op = "service.export.Config"

	in, err := s.payroll.LoadInput(ctx)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}

	return Config{
		Suppliers: nonNil(in.Suppliers),
		Employees: nonNil(in.Employees),
	}, nil
}

func (s *Service) Report(ctx context.Context) (Report, error) {
	const op = "service.export.Report"

	in, err := s.payroll.LoadInput(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", op, err)
	}

	settings, err := s.storage.GetSettings(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("%s: settings: %w", op, err)
	}

	return Report{
		Summary:        payroll.ComputeMonthlySummary(in),
		Locations:      in.Locations,
		Expenses:       in.Expenses,
		CurrencySymbol: settings.CurrencySymbol,
	}, nil
}

func (s *Service) ResultsCSV(ctx context.Context) ([]byte, error) {
	report, err := s.Report(ctx)
	if err != nil {
		return nil, err
	}
	return WriteResultsCSV(report)
}

func (s *Service) ReportXLSX(ctx context.Context) ([]byte, error) {
	report, err := s.Report(ctx)
	if err != nil {
		return nil, err
	}
	return WriteReportXLSX(report)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
