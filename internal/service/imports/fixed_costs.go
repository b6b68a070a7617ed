package imports

import (
	"encoding/json"
	"fmt"

	"paycalc/internal/storage"
)

func ParseLocations(raw []byte) ([]storage.Location, ValidationResult) {
	return parseList(raw, "locations", "Location", validateLocation)
}

func ParseLocation(raw []byte, newID func() string) (storage.Location, ValidationResult) {
	return parseOne(raw, "Location", validateLocation, func(l *storage.Location) {
		if l.ID == "" {
			l.ID = newID()
		}
	})
}

func ParseExpenses(raw []byte) ([]storage.Expense, ValidationResult) {
	return parseList(raw, "expenses", "Expense", validateExpense)
}

func ParseExpense(raw []byte, newID func() string) (storage.Expense, ValidationResult) {
	return parseOne(raw, "Expense", validateExpense, func(e *storage.Expense) {
		if e.ID == "" {
			e.ID = newID()
		}
	})
}

func validateLocation(prefix string, l storage.Location) []string {
	return validateFixedCost(prefix, l.ID, l.Name, "monthlyRent", l.MonthlyRent)
}

func validateExpense(prefix string, e storage.Expense) []string {
	return validateFixedCost(prefix, e.ID, e.Name, "amount", e.Amount)
}

func validateFixedCost(prefix, id, name, amountField string, amount float64) []string {
	var errs []string
	if id == "" {
		errs = append(errs, prefix+": missing or invalid 'id'")
	}
	if name == "" {
		errs = append(errs, prefix+": missing or invalid 'name'")
	}
	if amount < 0 {
		errs = append(errs, fmt.Sprintf("%s: '%s' must be a non-negative number", prefix, amountField))
	}
	return errs
}

// parseList decodes {key: [...]} and runs validate on every element.
func parseList[T any](raw []byte, key, prefix string, validate func(string, T) []string) ([]T, ValidationResult) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, invalid(invalidJSON)
	}

	var list []T
	if rawList, ok := doc[key]; !ok || json.Unmarshal(rawList, &list) != nil || list == nil {
		return nil, invalid(fmt.Sprintf("Missing '%s' array", key))
	}

	var errs []string
	for i, v := range list {
		errs = append(errs, validate(fmt.Sprintf("%s[%d]", prefix, i), v)...)
	}

	res := result(errs)
	if !res.Valid {
		return nil, res
	}
	return list, res
}

func parseOne[T any](raw []byte, prefix string, validate func(string, T) []string, fill func(*T)) (T, ValidationResult) {
	var v, zero T
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, invalid(invalidJSON)
	}
	fill(&v)

	res := result(validate(prefix, v))
	if !res.Valid {
		return zero, res
	}
	return v, res
}
