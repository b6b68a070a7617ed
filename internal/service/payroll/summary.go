package payroll

import "paycalc/internal/storage"

// SummaryInput is a month of source data. When ProductSales is empty the
// supplier quantities are summed from each sales entry's own product sales.
type SummaryInput struct {
	Suppliers    []storage.Supplier
	Employees    []storage.Employee
	Sales        []storage.SalesEntry
	ProductSales []storage.ProductSale
	Locations    []storage.Location
	Expenses     []storage.Expense
}

type MonthlySummary struct {
	TotalRevenue        float64            `json:"totalRevenue"`
	TotalSupplierCost   float64            `json:"totalSupplierCost"`
	TotalCommissions    float64            `json:"totalCommissions"`
	TotalLocationCosts  float64            `json:"totalLocationCosts"`
	TotalExpenses       float64            `json:"totalExpenses"`
	GrossProfit         float64            `json:"grossProfit"`
	ProfitMarginPercent float64            `json:"profitMarginPercent"`
	SupplierBreakdown   []SupplierPayment  `json:"supplierBreakdown"`
	EmployeeBreakdown   []CommissionResult `json:"employeeBreakdown"`
}

// ComputeMonthlySummary rolls supplier payments, commissions and fixed costs
// into one summary. Every employee is listed, with zero sales when no entry
// exists for them.
func ComputeMonthlySummary(in SummaryInput) MonthlySummary {
	var quantities map[string]float64
	if len(in.ProductSales) > 0 {
		quantities = QuantitiesFromProductSales(in.ProductSales)
	} else {
		quantities = QuantitiesFromSalesEntries(in.Sales)
	}

	summary := MonthlySummary{
		SupplierBreakdown: make([]SupplierPayment, 0, len(in.Suppliers)),
		EmployeeBreakdown: make([]CommissionResult, 0, len(in.Employees)),
	}

	for _, supplier := range in.Suppliers {
		payment := ComputeSupplierPayment(supplier, quantities)
		summary.TotalSupplierCost += payment.Total
		summary.SupplierBreakdown = append(summary.SupplierBreakdown, payment)
	}

	entries := entriesByEmployee(in.Sales)
	for _, employee := range in.Employees {
		entry := entries[employee.ID]
		result := ComputeCommission(employee, SalesInput{
			DailySales: entry.DailySales,
			DailyHours: entry.DailyHours,
		})
		summary.TotalRevenue += result.TotalSales
		summary.TotalCommissions += result.CommissionAmount
		summary.EmployeeBreakdown = append(summary.EmployeeBreakdown, result)
	}

	for _, l := range in.Locations {
		summary.TotalLocationCosts += l.MonthlyRent
	}
	for _, e := range in.Expenses {
		summary.TotalExpenses += e.Amount
	}

	summary.GrossProfit = summary.TotalRevenue -
		summary.TotalSupplierCost -
		summary.TotalCommissions -
		summary.TotalLocationCosts -
		summary.TotalExpenses

	if summary.TotalRevenue > 0 {
		summary.ProfitMarginPercent = summary.GrossProfit / summary.TotalRevenue * 100
	}

	return summary
}

// entriesByEmployee keeps the first entry seen for each employee.
func entriesByEmployee(sales []storage.SalesEntry) map[string]storage.SalesEntry {
	entries := make(map[string]storage.SalesEntry, len(sales))
	for _, s := range sales {
		if _, exists := entries[s.EmployeeID]; exists {
			continue
		}
		entries[s.EmployeeID] = s
	}
	return entries
}
