package storage

type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	CostPerUnit float64 `json:"costPerUnit"`
}

type Supplier struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Products []Product `json:"products"`
}

// ProductSale is the quantity of one product sold during the month.
type ProductSale struct {
	ProductID    string  `json:"productId"`
	QuantitySold float64 `json:"quantitySold"`
}
