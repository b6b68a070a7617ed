package payroll

import "paycalc/internal/storage"

type PaymentLine struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	QuantitySold float64 `json:"quantitySold"`
	CostPerUnit  float64 `json:"costPerUnit"`
	LineTotal    float64 `json:"lineTotal"`
}

type SupplierPayment struct {
	SupplierID   string        `json:"supplierId"`
	SupplierName string        `json:"supplierName"`
	Lines        []PaymentLine `json:"lines"`
	Total        float64       `json:"total"`
}

// ComputeSupplierPayment prices every product of the supplier, in the supplier's
// order, against the quantities sold. Products missing from quantities are
// kept with a zero quantity.
func ComputeSupplierPayment(supplier storage.Supplier, quantities map[string]float64) SupplierPayment {
	lines := make([]PaymentLine, 0, len(supplier.Products))
	total := 0.0

	for _, p := range supplier.Products {
		qty := quantities[p.ID]
		line := PaymentLine{
			ProductID:    p.ID,
			ProductName:  p.Name,
			QuantitySold: qty,
			CostPerUnit:  p.CostPerUnit,
			LineTotal:    qty * p.CostPerUnit,
		}
		total += line.LineTotal
		lines = append(lines, line)
	}

	return SupplierPayment{
		SupplierID:   supplier.ID,
		SupplierName: supplier.Name,
		Lines:        lines,
		Total:        total,
	}
}

// QuantitiesFromProductSales builds the product quantity lookup for a
// business-wide list. A product listed twice keeps its last quantity.
func QuantitiesFromProductSales(sales []storage.ProductSale) map[string]float64 {
	quantities := make(map[string]float64, len(sales))
	for _, ps := range sales {
		quantities[ps.ProductID] = ps.QuantitySold
	}
	return quantities
}

// QuantitiesFromSalesEntries sums the per-employee product sales by product id.
func QuantitiesFromSalesEntries(entries []storage.SalesEntry) map[string]float64 {
	quantities := make(map[string]float64)
	for _, e := range entries {
		for _, ps := range e.ProductSales {
			quantities[ps.ProductID] += ps.QuantitySold
		}
	}
	return quantities
}
