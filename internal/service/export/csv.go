package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// WriteResultsCSV renders the month as Type,Name,Amount,Details rows: one per
// commission, supplier, location and expense, a blank line, then the totals.
func WriteResultsCSV(r Report) ([]byte, error) {
	const op = "service.export.WriteResultsCSV"

	money := func(v float64) string { return FormatCurrency(v, r.CurrencySymbol) }
	s := r.Summary

	records := [][]string{{"Type", "Name", "Amount", "Details"}}

	for _, e := range s.EmployeeBreakdown {
		records = append(records, []string{"Commission", e.EmployeeName, money(e.CommissionAmount), "Sales: " + money(e.TotalSales)})
	}

	for _, sp := range s.SupplierBreakdown {
		var sold []string
		for _, l := range sp.Lines {
			if l.QuantitySold > 0 {
				sold = append(sold, fmt.Sprintf("%s: %s units", l.ProductName, strconv.FormatFloat(l.QuantitySold, 'f', -1, 64)))
			}
		}
		records = append(records, []string{"Supplier Cost", sp.SupplierName, money(sp.Total), strings.Join(sold, "; ")})
	}

	for _, l := range r.Locations {
		records = append(records, []string{"Location Rent", l.Name, money(l.MonthlyRent), ""})
	}
	for _, e := range r.Expenses {
		records = append(records, []string{"Expense", e.Name, money(e.Amount), ""})
	}

	records = append(records,
		[]string{""},
		[]string{"Total Revenue", "", money(s.TotalRevenue), ""},
		[]string{"Total Supplier Costs", "", money(s.TotalSupplierCost), ""},
		[]string{"Total Commissions", "", money(s.TotalCommissions), ""},
		[]string{"Total Location Costs", "", money(s.TotalLocationCosts), ""},
		[]string{"Total Expenses", "", money(s.TotalExpenses), ""},
		[]string{"Gross Profit", "", money(s.GrossProfit), ""},
	)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}
