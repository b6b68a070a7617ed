package imports

import (
	"encoding/json"
	"errors"
	"fmt"

	"paycalc/internal/storage"
)

type SalesDocument struct {
	Sales []storage.SalesEntry `json:"sales"`
}

type ProductSalesDocument struct {
	ProductSales []storage.ProductSale `json:"productSales"`
}

// ParseSalesEntries decodes a {"sales": [...]} document. Entries in the older
// monthly-total layout are accepted. Each employee may appear once.
func ParseSalesEntries(raw []byte) ([]storage.SalesEntry, ValidationResult) {
	var doc struct {
		Sales *[]json.RawMessage `json:"sales"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, invalid(invalidJSON)
	}
	if doc.Sales == nil {
		return nil, invalid("Missing 'sales' array")
	}

	var errs []string
	entries := make([]storage.SalesEntry, 0, len(*doc.Sales))
	seen := make(map[string]bool)

	for i, item := range *doc.Sales {
		prefix := fmt.Sprintf("Sales[%d]", i)

		e, decodeErrs := decodeSalesEntry(prefix, item)
		if decodeErrs != nil {
			errs = append(errs, decodeErrs...)
			continue
		}

		errs = append(errs, validateSalesEntry(prefix, e)...)
		if e.EmployeeID != "" {
			if seen[e.EmployeeID] {
				errs = append(errs, fmt.Sprintf("%s: duplicate employeeId '%s'", prefix, e.EmployeeID))
			}
			seen[e.EmployeeID] = true
		}
		entries = append(entries, e)
	}

	res := result(errs)
	if !res.Valid {
		return nil, res
	}
	return entries, res
}

// ParseSalesEntry decodes one entry and binds it to employeeID.
func ParseSalesEntry(raw []byte, employeeID string) (storage.SalesEntry, ValidationResult) {
	e, errs := decodeSalesEntry("Sales", raw)
	if errs != nil {
		return storage.SalesEntry{}, result(errs)
	}
	e.EmployeeID = employeeID

	res := result(validateSalesEntry("Sales", e))
	if !res.Valid {
		return storage.SalesEntry{}, res
	}
	return e, res
}

// decodeSalesEntry reports a value of the wrong JSON type against the field
// holding it. Malformed JSON yields invalidJSON.
func decodeSalesEntry(prefix string, raw []byte) (storage.SalesEntry, []string) {
	var e storage.SalesEntry
	err := json.Unmarshal(raw, &e)
	if err == nil {
		return e, nil
	}

	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return storage.SalesEntry{}, []string{invalidJSON}
	}
	if typeErr.Field == "" {
		return storage.SalesEntry{}, []string{prefix + ": must be an object"}
	}
	return storage.SalesEntry{}, []string{fmt.Sprintf("%s.%s: invalid %s value", prefix, typeErr.Field, typeErr.Value)}
}

func ParseProductSales(raw []byte) ([]storage.ProductSale, ValidationResult) {
	var doc struct {
		ProductSales *[]storage.ProductSale `json:"productSales"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, invalid(invalidJSON)
	}
	if doc.ProductSales == nil {
		return nil, invalid("Missing 'productSales' array")
	}

	var errs []string
	for i, ps := range *doc.ProductSales {
		errs = append(errs, validateProductSale(fmt.Sprintf("ProductSales[%d]", i), ps)...)
	}

	res := result(errs)
	if !res.Valid {
		return nil, res
	}
	return nonNil(*doc.ProductSales), res
}

func validateSalesEntry(prefix string, e storage.SalesEntry) []string {
	var errs []string

	if e.EmployeeID == "" {
		errs = append(errs, prefix+": missing or invalid 'employeeId'")
	}
	for d, v := range e.DailySales {
		if v < 0 {
			errs = append(errs, fmt.Sprintf("%s.dailySales[%d]: must be a non-negative number", prefix, d))
		}
	}
	for d, v := range e.DailyHours {
		if v < 0 {
			errs = append(errs, fmt.Sprintf("%s.dailyHours[%d]: must be a non-negative number", prefix, d))
		}
	}
	for j, ps := range e.ProductSales {
		errs = append(errs, validateProductSale(fmt.Sprintf("%s.productSales[%d]", prefix, j), ps)...)
	}

	return errs
}

func validateProductSale(prefix string, ps storage.ProductSale) []string {
	var errs []string
	if ps.ProductID == "" {
		errs = append(errs, prefix+": missing or invalid 'productId'")
	}
	if ps.QuantitySold < 0 {
		errs = append(errs, prefix+": 'quantitySold' must be a non-negative number")
	}
	return errs
}
