package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"paycalc/internal/storage"
)

type salesRow struct {
	employeeID   string
	dailySales   string
	dailyHours   sql.NullString
	productSales sql.NullString
}

func toSalesRow(e storage.SalesEntry) (salesRow, error) {
	daily := e.DailySales
	if daily == nil {
		daily = []float64{}
	}

	r := salesRow{employeeID: e.EmployeeID}

	raw, err := json.Marshal(daily)
	if err != nil {
		return salesRow{}, fmt.Errorf("encode daily sales: %w", err)
	}
	r.dailySales = string(raw)

	if r.dailyHours, err = nullJSON(e.DailyHours); err != nil {
		return salesRow{}, fmt.Errorf("encode daily hours: %w", err)
	}
	if r.productSales, err = nullJSON(e.ProductSales); err != nil {
		return salesRow{}, fmt.Errorf("encode product sales: %w", err)
	}

	return r, nil
}

func nullJSON[T any](v []T) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}

func (r salesRow) entry() (storage.SalesEntry, error) {
	e := storage.SalesEntry{EmployeeID: r.employeeID}

	if err := json.Unmarshal([]byte(r.dailySales), &e.DailySales); err != nil {
		return e, fmt.Errorf("decode daily sales of %s: %w", r.employeeID, err)
	}
	if r.dailyHours.Valid {
		if err := json.Unmarshal([]byte(r.dailyHours.String), &e.DailyHours); err != nil {
			return e, fmt.Errorf("decode daily hours of %s: %w", r.employeeID, err)
		}
	}
	if r.productSales.Valid {
		if err := json.Unmarshal([]byte(r.productSales.String), &e.ProductSales); err != nil {
			return e, fmt.Errorf("decode product sales of %s: %w", r.employeeID, err)
		}
	}

	return e, nil
}

func (s *Storage) GetSalesEntries(ctx context.Context) ([]storage.SalesEntry, error) {
	const op = "storage.sqlstore.GetSalesEntries"

	rows, err := s.db.QueryContext(ctx, `
		SELECT employee_id, daily_sales, daily_hours, product_sales
		FROM sales_entries
		ORDER BY sort_order`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var entries []storage.SalesEntry
	for rows.Next() {
		var r salesRow
		if err := rows.Scan(&r.employeeID, &r.dailySales, &r.dailyHours, &r.productSales); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		e, err := r.entry()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return entries, nil
}

// ReplaceSalesEntries swaps all entries. A second entry for the same employee
// is rejected with storage.ErrAlreadyExists.
func (s *Storage) ReplaceSalesEntries(ctx context.Context, entries []storage.SalesEntry) error {
	return s.withTx(ctx, "storage.sqlstore.ReplaceSalesEntries", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM sales_entries`); err != nil {
			return fmt.Errorf("clear sales: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO sales_entries (employee_id, daily_sales, daily_hours, product_sales, sort_order)
			VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, e := range entries {
			r, err := toSalesRow(e)
			if err != nil {
				return err
			}
			if _, err := stmt.ExecContext(ctx, r.employeeID, r.dailySales, r.dailyHours, r.productSales, i); err != nil {
				return insertErr("sales entry", e.EmployeeID, err)
			}
		}

		return nil
	})
}

// SaveSalesEntry inserts or overwrites the entry of e.EmployeeID. An
// overwritten entry keeps its position.
func (s *Storage) SaveSalesEntry(ctx context.Context, e storage.SalesEntry) error {
	return s.withTx(ctx, "storage.sqlstore.SaveSalesEntry", func(tx *sql.Tx) error {
		r, err := toSalesRow(e)
		if err != nil {
			return err
		}

		found, err := exists(ctx, tx, `SELECT COUNT(*) FROM sales_entries WHERE employee_id = ?`, e.EmployeeID)
		if err != nil {
			return err
		}

		if found {
			_, err = tx.ExecContext(ctx, `
				UPDATE sales_entries SET daily_sales = ?, daily_hours = ?, product_sales = ?
				WHERE employee_id = ?`,
				r.dailySales, r.dailyHours, r.productSales, r.employeeID)
			return err
		}

		next, err := nextSortOrder(ctx, tx, "sales_entries")
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO sales_entries (employee_id, daily_sales, daily_hours, product_sales, sort_order)
			VALUES (?, ?, ?, ?, ?)`,
			r.employeeID, r.dailySales, r.dailyHours, r.productSales, next)
		return err
	})
}

func (s *Storage) DeleteSalesEntry(ctx context.Context, employeeID string) error {
	const op = "storage.sqlstore.DeleteSalesEntry"

	res, err := s.db.ExecContext(ctx, `DELETE FROM sales_entries WHERE employee_id = ?`, employeeID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := deleted(res); err != nil {
		return fmt.Errorf("%s: sales of %s: %w", op, employeeID, err)
	}
	return nil
}

// ClearSales drops every sales entry and the business-wide product sales.
func (s *Storage) ClearSales(ctx context.Context) error {
	return s.withTx(ctx, "storage.sqlstore.ClearSales", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM sales_entries`); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM product_sales`)
		return err
	})
}

func (s *Storage) GetProductSales(ctx context.Context) ([]storage.ProductSale, error) {
	const op = "storage.sqlstore.GetProductSales"

	rows, err := s.db.QueryContext(ctx, `SELECT product_id, quantity_sold FROM product_sales ORDER BY sort_order`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var sales []storage.ProductSale
	for rows.Next() {
		var ps storage.ProductSale
		if err := rows.Scan(&ps.ProductID, &ps.QuantitySold); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		sales = append(sales, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sales, nil
}

func (s *Storage) ReplaceProductSales(ctx context.Context, sales []storage.ProductSale) error {
	return s.withTx(ctx, "storage.sqlstore.ReplaceProductSales", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM product_sales`); err != nil {
			return fmt.Errorf("clear product sales: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `INSERT INTO product_sales (sort_order, product_id, quantity_sold) VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, ps := range sales {
			if _, err := stmt.ExecContext(ctx, i, ps.ProductID, ps.QuantitySold); err != nil {
				return fmt.Errorf("insert product sale %s: %w", ps.ProductID, err)
			}
		}

		return nil
	})
}
