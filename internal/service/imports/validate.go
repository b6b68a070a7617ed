package imports

import (
	"fmt"

	"paycalc/internal/storage"
)

type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func invalid(msg string) ValidationResult {
	return ValidationResult{Valid: false, Errors: []string{msg}}
}

func result(errs []string) ValidationResult {
	if errs == nil {
		errs = []string{}
	}
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// ValidateSuppliers checks a decoded {"suppliers": [...]} document. Every
// problem found is reported; validation does not stop at the first one.
// Product ids must be unique across all suppliers of the document.
func ValidateSuppliers(data any) ValidationResult {
	list, res, ok := rootArray(data, "suppliers")
	if !ok {
		return res
	}

	var errs []string
	seenSuppliers := make(map[string]bool)
	seenProducts := make(map[string]bool)

	for i, item := range list {
		errs = append(errs, validateSupplier(fmt.Sprintf("Supplier[%d]", i), asObject(item), seenSuppliers, seenProducts)...)
	}

	return result(errs)
}

// ValidateEmployees checks a decoded {"employees": [...]} document. Only the
// fields of the declared commission type are checked.
func ValidateEmployees(data any) ValidationResult {
	list, res, ok := rootArray(data, "employees")
	if !ok {
		return res
	}

	var errs []string
	seen := make(map[string]bool)

	for i, item := range list {
		errs = append(errs, validateEmployee(fmt.Sprintf("Employee[%d]", i), asObject(item), seen)...)
	}

	return result(errs)
}

func validateSupplier(prefix string, supplier map[string]any, seenSuppliers, seenProducts map[string]bool) []string {
	var errs []string

	if id, ok := nonEmptyString(supplier["id"]); !ok {
		errs = append(errs, prefix+": missing or invalid 'id'")
	} else if seenSuppliers[id] {
		errs = append(errs, fmt.Sprintf("%s: duplicate id '%s'", prefix, id))
	} else {
		seenSuppliers[id] = true
	}

	if _, ok := nonEmptyString(supplier["name"]); !ok {
		errs = append(errs, prefix+": missing or invalid 'name'")
	}

	products, ok := supplier["products"].([]any)
	if !ok {
		return append(errs, prefix+": missing 'products' array")
	}

	for j, p := range products {
		errs = append(errs, validateProduct(fmt.Sprintf("%s.products[%d]", prefix, j), asObject(p), seenProducts)...)
	}

	return errs
}

func validateProduct(prefix string, product map[string]any, seen map[string]bool) []string {
	var errs []string

	if id, ok := nonEmptyString(product["id"]); !ok {
		errs = append(errs, prefix+": missing or invalid 'id'")
	} else if seen[id] {
		errs = append(errs, fmt.Sprintf("%s: duplicate product id '%s'", prefix, id))
	} else {
		seen[id] = true
	}

	if _, ok := nonEmptyString(product["name"]); !ok {
		errs = append(errs, prefix+": missing or invalid 'name'")
	}

	if cost, ok := number(product["costPerUnit"]); !ok || cost < 0 {
		errs = append(errs, prefix+": 'costPerUnit' must be a non-negative number")
	}

	return errs
}

func validateEmployee(prefix string, emp map[string]any, seen map[string]bool) []string {
	var errs []string

	if id, ok := nonEmptyString(emp["id"]); !ok {
		errs = append(errs, prefix+": missing or invalid 'id'")
	} else if seen[id] {
		errs = append(errs, fmt.Sprintf("%s: duplicate id '%s'", prefix, id))
	} else {
		seen[id] = true
	}

	if _, ok := nonEmptyString(emp["name"]); !ok {
		errs = append(errs, prefix+": missing or invalid 'name'")
	}

	commissionType, _ := emp["commissionType"].(string)

	switch storage.CommissionType(commissionType) {
	case storage.CommissionFlat:
		if rate, ok := number(emp["flatRate"]); !ok || rate < 0 {
			errs = append(errs, prefix+": 'flatRate' must be a non-negative number")
		} else if rate > 1 {
			errs = append(errs, prefix+": 'flatRate' must be between 0 and 1")
		}
	case storage.CommissionHourly:
		if rate, ok := number(emp["hourlyRate"]); !ok || rate < 0 {
			errs = append(errs, prefix+": 'hourlyRate' must be a non-negative number")
		}
	case storage.CommissionTiered:
		errs = append(errs, validateTiers(prefix, emp)...)
	default:
		errs = append(errs, prefix+": 'commissionType' must be 'flat', 'tiered', or 'hourly'")
	}

	return errs
}

func validateTiers(prefix string, emp map[string]any) []string {
	var errs []string

	mode, _ := emp["tieredMode"].(string)
	if storage.TieredMode(mode) != storage.TieredFlat && storage.TieredMode(mode) != storage.TieredMarginal {
		errs = append(errs, prefix+": 'tieredMode' must be 'flat' or 'marginal'")
	}

	tiers, ok := emp["tiers"].([]any)
	if !ok || len(tiers) == 0 {
		return append(errs, prefix+": 'tiers' must be a non-empty array")
	}

	prevThreshold := -1.0
	for j, t := range tiers {
		tier := asObject(t)
		tPrefix := fmt.Sprintf("%s.tiers[%d]", prefix, j)

		if threshold, ok := number(tier["threshold"]); !ok || threshold < 0 {
			errs = append(errs, tPrefix+": 'threshold' must be a non-negative number")
		} else {
			if threshold <= prevThreshold {
				errs = append(errs, tPrefix+": thresholds must be strictly ascending")
			}
			prevThreshold = threshold
		}

		if rate, ok := number(tier["rate"]); !ok || rate < 0 {
			errs = append(errs, tPrefix+": 'rate' must be a non-negative number")
		} else if rate > 1 {
			errs = append(errs, tPrefix+": 'rate' must be between 0 and 1")
		}
	}

	return errs
}

func rootArray(data any, key string) ([]any, ValidationResult, bool) {
	var obj map[string]any
	switch v := data.(type) {
	case map[string]any:
		obj = v
	case []any:
	default:
		return nil, invalid("Data must be a JSON object"), false
	}

	list, ok := obj[key].([]any)
	if !ok {
		return nil, invalid(fmt.Sprintf("Missing '%s' array", key)), false
	}
	return list, ValidationResult{}, true
}

// asObject treats anything that is not an object as one without fields.
func asObject(v any) map[string]any {
	obj, _ := v.(map[string]any)
	return obj
}

func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok && s != ""
}

func number(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}
