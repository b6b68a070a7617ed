package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary   = "Summary"
	SheetEmployees = "Employees"
	SheetBreakdown = "Commission Breakdown"
	SheetSuppliers = "Suppliers"
	SheetFixed     = "Fixed Costs"
)

// numFmt ids from the built-in excel table
const (
	numFmtMoney   = 4  // #,##0.00
	numFmtPercent = 10 // 0.00%
)

type workbook struct {
	f       *excelize.File
	header  int
	money   int
	percent int
}

// WriteReportXLSX renders the month into a workbook with one sheet per view.
func WriteReportXLSX(r Report) ([]byte, error) {
	const op = "service.export.WriteReportXLSX"

	f := excelize.NewFile()
	defer f.Close()

	wb, err := newWorkbook(f)
	if err != nil {
		return nil, fmt.Errorf("%s: styles: %w", op, err)
	}

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for _, name := range []string{SheetEmployees, SheetBreakdown, SheetSuppliers, SheetFixed} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("%s: sheet %s: %w", op, name, err)
		}
	}

	wb.summary(r)
	wb.employees(r)
	wb.breakdown(r)
	wb.suppliers(r)
	wb.fixedCosts(r)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

func newWorkbook(f *excelize.File) (*workbook, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: numFmtMoney})
	if err != nil {
		return nil, err
	}
	percent, err := f.NewStyle(&excelize.Style{NumFmt: numFmtPercent})
	if err != nil {
		return nil, err
	}
	return &workbook{f: f, header: header, money: money, percent: percent}, nil
}

func (wb *workbook) headers(sheet string, names ...string) {
	for i, name := range names {
		wb.f.SetCellValue(sheet, cellName(i+1, 1), name)
	}
	wb.f.SetCellStyle(sheet, "A1", cellName(len(names), 1), wb.header)
	wb.f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	wb.f.SetColWidth(sheet, "A", columnName(len(names)), 18)
}

func (wb *workbook) row(sheet string, rowNum int, values ...any) {
	for i, v := range values {
		wb.f.SetCellValue(sheet, cellName(i+1, rowNum), v)
	}
}

func (wb *workbook) moneyColumns(sheet string, lastRow int, cols ...int) {
	if lastRow < 2 {
		return
	}
	for _, c := range cols {
		wb.f.SetCellStyle(sheet, cellName(c, 2), cellName(c, lastRow), wb.money)
	}
}

func (wb *workbook) summary(r Report) {
	s := r.Summary
	wb.headers(SheetSummary, "Metric", "Value")

	rows := []struct {
		name  string
		value float64
	}{
		{"Total Revenue", s.TotalRevenue},
		{"Total Supplier Costs", s.TotalSupplierCost},
		{"Total Commissions", s.TotalCommissions},
		{"Total Location Costs", s.TotalLocationCosts},
		{"Total Expenses", s.TotalExpenses},
		{"Gross Profit", s.GrossProfit},
	}
	for i, row := range rows {
		wb.row(SheetSummary, i+2, row.name, row.value)
	}
	wb.moneyColumns(SheetSummary, len(rows)+1, 2)

	marginRow := len(rows) + 2
	wb.row(SheetSummary, marginRow, "Profit Margin", s.ProfitMarginPercent/100)
	wb.f.SetCellStyle(SheetSummary, cellName(2, marginRow), cellName(2, marginRow), wb.percent)

	wb.row(SheetSummary, marginRow+1, "Currency Symbol", r.CurrencySymbol)
}

func (wb *workbook) employees(r Report) {
	wb.headers(SheetEmployees, "Employee ID", "Employee", "Commission Type", "Tiered Mode", "Total Sales", "Hours Worked", "Commission")

	for i, e := range r.Summary.EmployeeBreakdown {
		wb.row(SheetEmployees, i+2, e.EmployeeID, e.EmployeeName, string(e.CommissionType), string(e.TieredMode),
			e.TotalSales, e.HoursWorked, e.CommissionAmount)
	}
	wb.moneyColumns(SheetEmployees, len(r.Summary.EmployeeBreakdown)+1, 5, 7)
}

func (wb *workbook) breakdown(r Report) {
	wb.headers(SheetBreakdown, "Employee ID", "Employee", "Range Start", "Range End", "Rate", "Amount")

	rowNum := 2
	for _, e := range r.Summary.EmployeeBreakdown {
		for _, b := range e.Breakdown {
			wb.row(SheetBreakdown, rowNum, e.EmployeeID, e.EmployeeName, b.RangeStart, b.RangeEnd, b.Rate, b.Amount)
			rowNum++
		}
	}
	wb.moneyColumns(SheetBreakdown, rowNum-1, 6)
}

func (wb *workbook) suppliers(r Report) {
	wb.headers(SheetSuppliers, "Supplier ID", "Supplier", "Product ID", "Product", "Quantity Sold", "Cost Per Unit", "Line Total")

	rowNum := 2
	for _, sp := range r.Summary.SupplierBreakdown {
		for _, l := range sp.Lines {
			wb.row(SheetSuppliers, rowNum, sp.SupplierID, sp.SupplierName, l.ProductID, l.ProductName, l.QuantitySold, l.CostPerUnit, l.LineTotal)
			rowNum++
		}
		wb.row(SheetSuppliers, rowNum, sp.SupplierID, sp.SupplierName, "", "Total", nil, nil, sp.Total)
		rowNum++
	}
	wb.moneyColumns(SheetSuppliers, rowNum-1, 6, 7)
}

func (wb *workbook) fixedCosts(r Report) {
	wb.headers(SheetFixed, "Type", "ID", "Name", "Amount")

	rowNum := 2
	for _, l := range r.Locations {
		wb.row(SheetFixed, rowNum, "Location Rent", l.ID, l.Name, l.MonthlyRent)
		rowNum++
	}
	for _, e := range r.Expenses {
		wb.row(SheetFixed, rowNum, "Expense", e.ID, e.Name, e.Amount)
		rowNum++
	}
	wb.moneyColumns(SheetFixed, rowNum-1, 4)
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func columnName(col int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return name
}
