package imports

import (
	"encoding/json"

	"paycalc/internal/storage"
)

const invalidJSON = "Invalid JSON format"

type SuppliersDocument struct {
	Suppliers []storage.Supplier `json:"suppliers"`
}

type EmployeesDocument struct {
	Employees []storage.Employee `json:"employees"`
}

// ParseSuppliers decodes and validates a suppliers document. The suppliers are
// returned only when the document is valid.
func ParseSuppliers(raw []byte) ([]storage.Supplier, ValidationResult) {
	var doc SuppliersDocument
	res := parse(raw, ValidateSuppliers, &doc)
	if !res.Valid {
		return nil, res
	}
	return nonNil(doc.Suppliers), res
}

// ParseEmployees decodes and validates an employees document. The employees
// are returned only when the document is valid.
func ParseEmployees(raw []byte) ([]storage.Employee, ValidationResult) {
	var doc EmployeesDocument
	res := parse(raw, ValidateEmployees, &doc)
	if !res.Valid {
		return nil, res
	}
	return nonNil(doc.Employees), res
}

func parse(raw []byte, validate func(any) ValidationResult, into any) ValidationResult {
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return invalid(invalidJSON)
	}

	res := validate(generic)
	if !res.Valid {
		return res
	}

	if err := json.Unmarshal(raw, into); err != nil {
		return invalid(err.Error())
	}
	return res
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
