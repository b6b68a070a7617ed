package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"paycalc/internal/storage"
)

// employeeRow is the column layout of an employee: one nullable column per
// scheme field, tiers stored as a json array.
type employeeRow struct {
	id             string
	name           string
	commissionType string
	flatRate       sql.NullFloat64
	tieredMode     sql.NullString
	tiers          sql.NullString
	hourlyRate     sql.NullFloat64
}

func toEmployeeRow(e storage.Employee) (employeeRow, error) {
	row := employeeRow{id: e.ID, name: e.Name, commissionType: string(e.CommissionType())}

	switch sc := e.Scheme.(type) {
	case storage.FlatScheme:
		row.flatRate = sql.NullFloat64{Float64: sc.Rate, Valid: true}
	case storage.TieredScheme:
		tiers := sc.Tiers
		if tiers == nil {
			tiers = []storage.CommissionTier{}
		}
		raw, err := json.Marshal(tiers)
		if err != nil {
			return employeeRow{}, fmt.Errorf("encode tiers: %w", err)
		}
		row.tieredMode = sql.NullString{String: string(sc.Mode), Valid: true}
		row.tiers = sql.NullString{String: string(raw), Valid: true}
	case storage.HourlyScheme:
		row.hourlyRate = sql.NullFloat64{Float64: sc.Rate, Valid: true}
	default:
		return employeeRow{}, fmt.Errorf("employee %s: no commission scheme", e.ID)
	}

	return row, nil
}

func (r employeeRow) employee() (storage.Employee, error) {
	var tiers []storage.CommissionTier
	if r.tiers.Valid {
		if err := json.Unmarshal([]byte(r.tiers.String), &tiers); err != nil {
			return storage.Employee{}, fmt.Errorf("decode tiers of %s: %w", r.id, err)
		}
	}

	var flatRate, hourlyRate *float64
	if r.flatRate.Valid {
		flatRate = &r.flatRate.Float64
	}
	if r.hourlyRate.Valid {
		hourlyRate = &r.hourlyRate.Float64
	}

	scheme, err := storage.SchemeFromFields(
		storage.CommissionType(r.commissionType),
		flatRate,
		storage.TieredMode(r.tieredMode.String),
		tiers,
		hourlyRate,
	)
	if err != nil {
		return storage.Employee{}, fmt.Errorf("employee %s: %w", r.id, err)
	}

	return storage.Employee{ID: r.id, Name: r.name, Scheme: scheme}, nil
}

func (s *Storage) GetEmployees(ctx context.Context) ([]storage.Employee, error) {
	const op = "storage.sqlstore.GetEmployees"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, commission_type, flat_rate, tiered_mode, tiers, hourly_rate
		FROM employees
		ORDER BY sort_order`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var employees []storage.Employee
	for rows.Next() {
		var r employeeRow
		if err := rows.Scan(&r.id, &r.name, &r.commissionType, &r.flatRate, &r.tieredMode, &r.tiers, &r.hourlyRate); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		e, err := r.employee()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return employees, nil
}

const insertEmployee = `
	INSERT INTO employees (id, name, commission_type, flat_rate, tiered_mode, tiers, hourly_rate, sort_order)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

func (s *Storage) ReplaceEmployees(ctx context.Context, employees []storage.Employee) error {
	return s.withTx(ctx, "storage.sqlstore.ReplaceEmployees", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM employees`); err != nil {
			return fmt.Errorf("clear employees: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, insertEmployee)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, e := range employees {
			r, err := toEmployeeRow(e)
			if err != nil {
				return err
			}
			if _, err := stmt.ExecContext(ctx, r.id, r.name, r.commissionType, r.flatRate, r.tieredMode, r.tiers, r.hourlyRate, i); err != nil {
				return insertErr("employee", e.ID, err)
			}
		}

		return nil
	})
}

func (s *Storage) CreateEmployee(ctx context.Context, e storage.Employee) error {
	return s.withTx(ctx, "storage.sqlstore.CreateEmployee", func(tx *sql.Tx) error {
		r, err := toEmployeeRow(e)
		if err != nil {
			return err
		}

		next, err := nextSortOrder(ctx, tx, "employees")
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, insertEmployee, r.id, r.name, r.commissionType, r.flatRate, r.tieredMode, r.tiers, r.hourlyRate, next); err != nil {
			return insertErr("employee", e.ID, err)
		}
		return nil
	})
}

// UpdateEmployee replaces the name and scheme of an existing employee. Fields
// of the previous scheme are cleared.
func (s *Storage) UpdateEmployee(ctx context.Context, e storage.Employee) error {
	return s.withTx(ctx, "storage.sqlstore.UpdateEmployee", func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, `SELECT COUNT(*) FROM employees WHERE id = ?`, e.ID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("employee %s: %w", e.ID, storage.ErrNotFound)
		}

		r, err := toEmployeeRow(e)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE employees
			SET name = ?, commission_type = ?, flat_rate = ?, tiered_mode = ?, tiers = ?, hourly_rate = ?
			WHERE id = ?`,
			r.name, r.commissionType, r.flatRate, r.tieredMode, r.tiers, r.hourlyRate, r.id)
		return err
	})
}

// DeleteEmployee removes the employee together with their sales entry.
func (s *Storage) DeleteEmployee(ctx context.Context, id string) error {
	return s.withTx(ctx, "storage.sqlstore.DeleteEmployee", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
		if err != nil {
			return err
		}
		if err := deleted(res); err != nil {
			return fmt.Errorf("employee %s: %w", id, err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM sales_entries WHERE employee_id = ?`, id); err != nil {
			return fmt.Errorf("delete sales of %s: %w", id, err)
		}
		return nil
	})
}
