package storage

import "encoding/json"

// SalesEntry holds one employee's month of sales as a daily series.
// DailyHours is only meaningful for hourly employees. ProductSales is the
// per-employee product breakdown used when no business-wide list is stored.
type SalesEntry struct {
	EmployeeID   string        `json:"employeeId"`
	DailySales   []float64     `json:"dailySales"`
	DailyHours   []float64     `json:"dailyHours,omitempty"`
	ProductSales []ProductSale `json:"productSales,omitempty"`
}

type salesEntryJSON struct {
	EmployeeID        string        `json:"employeeId"`
	DailySales        []float64     `json:"dailySales"`
	DailyHours        []float64     `json:"dailyHours"`
	ProductSales      []ProductSale `json:"productSales"`
	TotalSalesDollars *float64      `json:"totalSalesDollars"`
	HoursWorked       *float64      `json:"hoursWorked"`
}

// UnmarshalJSON also accepts the older monthly-total layout
// {employeeId, totalSalesDollars, hoursWorked?, productSales}, which is read
// as a single day worked.
func (e *SalesEntry) UnmarshalJSON(data []byte) error {
	var in salesEntryJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	out := SalesEntry{
		EmployeeID:   in.EmployeeID,
		DailySales:   in.DailySales,
		DailyHours:   in.DailyHours,
		ProductSales: in.ProductSales,
	}

	if out.DailySales == nil && in.TotalSalesDollars != nil {
		out.DailySales = []float64{*in.TotalSalesDollars}
	}
	if out.DailyHours == nil && in.HoursWorked != nil {
		out.DailyHours = []float64{*in.HoursWorked}
	}

	*e = out
	return nil
}
