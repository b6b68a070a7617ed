package imports

import (
	"encoding/json"

	"paycalc/internal/storage"
)

// ParseSupplier decodes and validates a single supplier. A missing supplier or
// product id is filled from newID, and a missing product list is read as empty.
func ParseSupplier(raw []byte, newID func() string) (storage.Supplier, ValidationResult) {
	obj, res := decodeObject(raw)
	if !res.Valid {
		return storage.Supplier{}, res
	}

	fillID(obj, newID)
	if _, ok := obj["products"]; !ok {
		obj["products"] = []any{}
	}
	if products, ok := obj["products"].([]any); ok {
		for _, p := range products {
			if product, ok := p.(map[string]any); ok {
				fillID(product, newID)
			}
		}
	}

	res = result(validateSupplier("Supplier", obj, map[string]bool{}, map[string]bool{}))
	if !res.Valid {
		return storage.Supplier{}, res
	}

	var supplier storage.Supplier
	if err := remarshal(obj, &supplier); err != nil {
		return storage.Supplier{}, invalid(err.Error())
	}
	supplier.Products = nonNil(supplier.Products)
	return supplier, res
}

// ParseProduct decodes and validates a single product, filling a missing id
// from newID.
func ParseProduct(raw []byte, newID func() string) (storage.Product, ValidationResult) {
	obj, res := decodeObject(raw)
	if !res.Valid {
		return storage.Product{}, res
	}

	fillID(obj, newID)

	res = result(validateProduct("Product", obj, map[string]bool{}))
	if !res.Valid {
		return storage.Product{}, res
	}

	var product storage.Product
	if err := remarshal(obj, &product); err != nil {
		return storage.Product{}, invalid(err.Error())
	}
	return product, res
}

// ParseEmployee decodes and validates a single employee, filling a missing id
// from newID.
func ParseEmployee(raw []byte, newID func() string) (storage.Employee, ValidationResult) {
	obj, res := decodeObject(raw)
	if !res.Valid {
		return storage.Employee{}, res
	}

	fillID(obj, newID)

	res = result(validateEmployee("Employee", obj, map[string]bool{}))
	if !res.Valid {
		return storage.Employee{}, res
	}

	var emp storage.Employee
	if err := remarshal(obj, &emp); err != nil {
		return storage.Employee{}, invalid(err.Error())
	}
	return emp, res
}

func decodeObject(raw []byte) (map[string]any, ValidationResult) {
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, invalid(invalidJSON)
	}

	obj, ok := generic.(map[string]any)
	if !ok {
		return nil, invalid("Data must be a JSON object")
	}
	return obj, result(nil)
}

// fillID sets obj["id"] when it is absent, null or empty. Any other non-string
// id is left for validation to report.
func fillID(obj map[string]any, newID func() string) {
	if v := obj["id"]; v != nil {
		if id, ok := v.(string); !ok || id != "" {
			return
		}
	}
	obj["id"] = newID()
}

func remarshal(obj map[string]any, into any) error {
	raw, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, into)
}
