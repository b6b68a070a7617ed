package payroll

import (
	"cmp"
	"slices"

	"paycalc/internal/storage"
)

type TierBreakdown struct {
	RangeStart float64 `json:"rangeStart"`
	RangeEnd   float64 `json:"rangeEnd"`
	Rate       float64 `json:"rate"`
	Amount     float64 `json:"amount"`
}

type CommissionResult struct {
	EmployeeID       string                 `json:"employeeId"`
	EmployeeName     string                 `json:"employeeName"`
	TotalSales       float64                `json:"totalSales"`
	HoursWorked      float64                `json:"hoursWorked"`
	CommissionAmount float64                `json:"commissionAmount"`
	CommissionType   storage.CommissionType `json:"commissionType"`
	TieredMode       storage.TieredMode     `json:"tieredMode,omitempty"`
	Breakdown        []TierBreakdown        `json:"breakdown"`
}

// SalesInput is one employee's month: sales and hours per day worked.
type SalesInput struct {
	DailySales []float64
	DailyHours []float64
}

// ComputeCommission computes an employee's commission for the month.
//
// Sales-based schemes are evaluated per day: every day with positive sales is
// bracketed from zero on its own, and the day results are summed. Breakdown
// entries of different days that share a rate are merged into one entry whose
// range is extended by the merged span. Hourly schemes pay the summed hours.
func ComputeCommission(employee storage.Employee, sales SalesInput) CommissionResult {
	result := CommissionResult{
		EmployeeID:     employee.ID,
		EmployeeName:   employee.Name,
		TotalSales:     sum(sales.DailySales),
		HoursWorked:    sum(sales.DailyHours),
		CommissionType: employee.CommissionType(),
		Breakdown:      []TierBreakdown{},
	}

	if tiered, ok := employee.Scheme.(storage.TieredScheme); ok {
		result.TieredMode = tiered.Mode
	}

	if hourly, ok := employee.Scheme.(storage.HourlyScheme); ok {
		result.CommissionAmount, result.Breakdown = HourlyCommission(result.HoursWorked, hourly.Rate)
		return result
	}

	for _, daySales := range sales.DailySales {
		if daySales <= 0 {
			continue
		}

		amount, breakdown := dayCommission(employee.Scheme, daySales)
		result.CommissionAmount += amount
		result.Breakdown = mergeByRate(result.Breakdown, breakdown)
	}

	return result
}

// PreviewCommission evaluates the scheme for a single day of sales.
func PreviewCommission(employee storage.Employee, sales, hours float64) CommissionResult {
	return ComputeCommission(employee, SalesInput{
		DailySales: []float64{sales},
		DailyHours: []float64{hours},
	})
}

func dayCommission(scheme storage.Scheme, daySales float64) (float64, []TierBreakdown) {
	switch s := scheme.(type) {
	case storage.FlatScheme:
		return FlatCommission(daySales, s.Rate)
	case storage.TieredScheme:
		if s.Mode == storage.TieredFlat {
			return TieredFlatCommission(daySales, s.Tiers)
		}
		return TieredMarginalCommission(daySales, s.Tiers)
	default:
		return 0, nil
	}
}

func mergeByRate(into []TierBreakdown, add []TierBreakdown) []TierBreakdown {
	for _, tier := range add {
		i := slices.IndexFunc(into, func(b TierBreakdown) bool { return b.Rate == tier.Rate })
		if i < 0 {
			into = append(into, tier)
			continue
		}
		into[i].RangeEnd += tier.RangeEnd - tier.RangeStart
		into[i].Amount += tier.Amount
	}
	return into
}

func FlatCommission(totalSales, rate float64) (float64, []TierBreakdown) {
	amount := totalSales * rate
	return amount, []TierBreakdown{{RangeStart: 0, RangeEnd: totalSales, Rate: rate, Amount: amount}}
}

// TieredFlatCommission applies the rate of the highest tier reached to the whole
// amount. Below every threshold the lowest tier's rate still applies.
func TieredFlatCommission(totalSales float64, tiers []storage.CommissionTier) (float64, []TierBreakdown) {
	if len(tiers) == 0 {
		return 0, []TierBreakdown{}
	}

	sorted := sortedTiers(tiers)

	rate := sorted[0].Rate
	for _, tier := range sorted {
		if totalSales >= tier.Threshold {
			rate = tier.Rate
		}
	}

	return FlatCommission(totalSales, rate)
}

// TieredMarginalCommission taxes each slice of sales at its own bracket's rate.
// A tier contributes only when sales exceed its threshold.
func TieredMarginalCommission(totalSales float64, tiers []storage.CommissionTier) (float64, []TierBreakdown) {
	breakdown := []TierBreakdown{}
	if len(tiers) == 0 {
		return 0, breakdown
	}

	sorted := sortedTiers(tiers)
	total := 0.0

	for i, tier := range sorted {
		rangeStart := tier.Threshold
		if totalSales <= rangeStart {
			break
		}

		rangeEnd := totalSales
		if i+1 < len(sorted) {
			rangeEnd = min(totalSales, sorted[i+1].Threshold)
		}

		amount := (rangeEnd - rangeStart) * tier.Rate
		breakdown = append(breakdown, TierBreakdown{
			RangeStart: rangeStart,
			RangeEnd:   rangeEnd,
			Rate:       tier.Rate,
			Amount:     amount,
		})
		total += amount
	}

	return total, breakdown
}

// HourlyCommission has no brackets; the single entry spans the hours worked.
func HourlyCommission(hours, rate float64) (float64, []TierBreakdown) {
	amount := hours * rate
	if hours <= 0 {
		return amount, []TierBreakdown{}
	}
	return amount, []TierBreakdown{{RangeStart: 0, RangeEnd: hours, Rate: rate, Amount: amount}}
}

func sortedTiers(tiers []storage.CommissionTier) []storage.CommissionTier {
	sorted := slices.Clone(tiers)
	slices.SortStableFunc(sorted, func(a, b storage.CommissionTier) int {
		return cmp.Compare(a.Threshold, b.Threshold)
	})
	return sorted
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
