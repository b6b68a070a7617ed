package payroll

import (
	"math"

	"paycalc/internal/storage"
)

const (
	MinMultiplierPercent = 0
	MaxMultiplierPercent = 300
)

type WhatIf struct {
	MultiplierPercent float64        `json:"multiplierPercent"`
	Base              MonthlySummary `json:"base"`
	Scenario          MonthlySummary `json:"scenario"`
	ProfitDelta       float64        `json:"profitDelta"`
}

// ComputeWhatIf compares the actual month against the same month with sales
// scaled by multiplierPercent.
func ComputeWhatIf(in SummaryInput, multiplierPercent float64) WhatIf {
	base := ComputeMonthlySummary(in)
	scenario := ComputeMonthlySummary(ScaleSales(in, multiplierPercent))

	return WhatIf{
		MultiplierPercent: multiplierPercent,
		Base:              base,
		Scenario:          scenario,
		ProfitDelta:       scenario.GrossProfit - base.GrossProfit,
	}
}

// ScaleSales returns a copy of in with every daily sales amount multiplied by
// multiplierPercent/100 and every product quantity scaled and rounded to whole
// units. Hours are kept as they are. in is not modified.
func ScaleSales(in SummaryInput, multiplierPercent float64) SummaryInput {
	factor := multiplierPercent / 100
	out := in

	out.Sales = make([]storage.SalesEntry, len(in.Sales))
	for i, entry := range in.Sales {
		scaled := storage.SalesEntry{
			EmployeeID:   entry.EmployeeID,
			DailyHours:   entry.DailyHours,
			ProductSales: scaleProductSales(entry.ProductSales, factor),
		}
		if entry.DailySales != nil {
			scaled.DailySales = make([]float64, len(entry.DailySales))
			for d, v := range entry.DailySales {
				scaled.DailySales[d] = v * factor
			}
		}
		out.Sales[i] = scaled
	}

	out.ProductSales = scaleProductSales(in.ProductSales, factor)

	return out
}

func scaleProductSales(sales []storage.ProductSale, factor float64) []storage.ProductSale {
	if sales == nil {
		return nil
	}
	scaled := make([]storage.ProductSale, len(sales))
	for i, ps := range sales {
		scaled[i] = storage.ProductSale{
			ProductID:    ps.ProductID,
			QuantitySold: math.Round(ps.QuantitySold * factor),
		}
	}
	return scaled
}
