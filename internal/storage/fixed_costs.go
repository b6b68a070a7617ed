package storage

type Location struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	MonthlyRent float64 `json:"monthlyRent"`
}

type Expense struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}
