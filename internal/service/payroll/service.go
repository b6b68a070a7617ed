package payroll

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"paycalc/internal/storage"
)

type PayrollStorage interface {
	GetSuppliers(ctx context.Context) ([]storage.Supplier, error)
	GetEmployees(ctx context.Context) ([]storage.Employee, error)
	GetSalesEntries(ctx context.Context) ([]storage.SalesEntry, error)
	GetProductSales(ctx context.Context) ([]storage.ProductSale, error)
	GetLocations(ctx context.Context) ([]storage.Location, error)
	GetExpenses(ctx context.Context) ([]storage.Expense, error)
}

type Service struct {
	storage PayrollStorage
}

func NewService(storage PayrollStorage) *Service {
	return &Service{storage: storage}
}

// LoadInput reads every collection the summary needs in parallel.
func (s *Service) LoadInput(ctx context.Context) (SummaryInput, error) {
	const op = "service.payroll.LoadInput"

	var in SummaryInput

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		in.Suppliers, err = s.storage.GetSuppliers(gCtx)
		if err != nil {
			return fmt.Errorf("suppliers: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		in.Employees, err = s.storage.GetEmployees(gCtx)
		if err != nil {
			return fmt.Errorf("employees: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		in.Sales, err = s.storage.GetSalesEntries(gCtx)
		if err != nil {
			return fmt.Errorf("sales: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		in.ProductSales, err = s.storage.GetProductSales(gCtx)
		if err != nil {
			return fmt.Errorf("product sales: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		in.Locations, err = s.storage.GetLocations(gCtx)
		if err != nil {
			return fmt.Errorf("locations: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		in.Expenses, err = s.storage.GetExpenses(gCtx)
		if err != nil {
			return fmt.Errorf("expenses: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return SummaryInput{}, fmt.Errorf("%s: %w", op, err)
	}

	return in, nil
}

func (s *Service) MonthlySummary(ctx context.Context) (MonthlySummary, error) {
	in, err := s.LoadInput(ctx)
	if err != nil {
		return MonthlySummary{}, err
	}
	return ComputeMonthlySummary(in), nil
}

func (s *Service) WhatIf(ctx context.Context, multiplierPercent float64) (WhatIf, error) {
	in, err := s.LoadInput(ctx)
	if err != nil {
		return WhatIf{}, err
	}
	return ComputeWhatIf(in, multiplierPercent), nil
}
