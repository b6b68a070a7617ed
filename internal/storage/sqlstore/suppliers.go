package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"paycalc/internal/storage"
)

func (s *Storage) GetSuppliers(ctx context.Context) ([]storage.Supplier, error) {
	const op = "storage.sqlstore.GetSuppliers"

	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM suppliers ORDER BY sort_order`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var suppliers []storage.Supplier
	index := make(map[string]int)

	for rows.Next() {
		sp := storage.Supplier{Products: []storage.Product{}}
		if err := rows.Scan(&sp.ID, &sp.Name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("%s: scan supplier: %w", op, err)
		}
		index[sp.ID] = len(suppliers)
		suppliers = append(suppliers, sp)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rows.Close()

	if len(suppliers) == 0 {
		return nil, nil
	}

	rows, err = s.db.QueryContext(ctx, `SELECT id, supplier_id, name, cost_per_unit FROM products ORDER BY supplier_id, sort_order`)
	if err != nil {
		return nil, fmt.Errorf("%s: products: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			p          storage.Product
			supplierID string
		)
		if err := rows.Scan(&p.ID, &supplierID, &p.Name, &p.CostPerUnit); err != nil {
			return nil, fmt.Errorf("%s: scan product: %w", op, err)
		}
		if i, ok := index[supplierID]; ok {
			suppliers[i].Products = append(suppliers[i].Products, p)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: products: %w", op, err)
	}

	return suppliers, nil
}

// ReplaceSuppliers swaps the whole supplier list, products included.
func (s *Storage) ReplaceSuppliers(ctx context.Context, suppliers []storage.Supplier) error {
	return s.withTx(ctx, "storage.sqlstore.ReplaceSuppliers", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
			return fmt.Errorf("clear products: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM suppliers`); err != nil {
			return fmt.Errorf("clear suppliers: %w", err)
		}

		supplierStmt, err := tx.PrepareContext(ctx, `INSERT INTO suppliers (id, name, sort_order) VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer supplierStmt.Close()

		productStmt, err := tx.PrepareContext(ctx, `INSERT INTO products (id, supplier_id, name, cost_per_unit, sort_order) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer productStmt.Close()

		for i, sp := range suppliers {
			if _, err := supplierStmt.ExecContext(ctx, sp.ID, sp.Name, i); err != nil {
				return insertErr("supplier", sp.ID, err)
			}
			for j, p := range sp.Products {
				if _, err := productStmt.ExecContext(ctx, p.ID, sp.ID, p.Name, p.CostPerUnit, j); err != nil {
					return insertErr("product", p.ID, err)
				}
			}
		}

		return nil
	})
}

func (s *Storage) CreateSupplier(ctx context.Context, sp storage.Supplier) error {
	return s.withTx(ctx, "storage.sqlstore.CreateSupplier", func(tx *sql.Tx) error {
		next, err := nextSortOrder(ctx, tx, "suppliers")
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `INSERT INTO suppliers (id, name, sort_order) VALUES (?, ?, ?)`, sp.ID, sp.Name, next); err != nil {
			return insertErr("supplier", sp.ID, err)
		}

		for j, p := range sp.Products {
			_, err := tx.ExecContext(ctx, `INSERT INTO products (id, supplier_id, name, cost_per_unit, sort_order) VALUES (?, ?, ?, ?, ?)`,
				p.ID, sp.ID, p.Name, p.CostPerUnit, j)
			if err != nil {
				return insertErr("product", p.ID, err)
			}
		}

		return nil
	})
}

func (s *Storage) DeleteSupplier(ctx context.Context, id string) error {
	return s.withTx(ctx, "storage.sqlstore.DeleteSupplier", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM products WHERE supplier_id = ?`, id); err != nil {
			return fmt.Errorf("delete products: %w", err)
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM suppliers WHERE id = ?`, id)
		if err != nil {
			return err
		}
		if err := deleted(res); err != nil {
			return fmt.Errorf("supplier %s: %w", id, err)
		}
		return nil
	})
}

// AddProduct appends a product to the end of the supplier's list.
func (s *Storage) AddProduct(ctx context.Context, supplierID string, p storage.Product) error {
	return s.withTx(ctx, "storage.sqlstore.AddProduct", func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, `SELECT COUNT(*) FROM suppliers WHERE id = ?`, supplierID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("supplier %s: %w", supplierID, storage.ErrNotFound)
		}

		var next int
		err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(sort_order), -1) + 1 FROM products WHERE supplier_id = ?`, supplierID).Scan(&next)
		if err != nil {
			return fmt.Errorf("next product position: %w", err)
		}

		_, err = tx.ExecContext(ctx, `INSERT INTO products (id, supplier_id, name, cost_per_unit, sort_order) VALUES (?, ?, ?, ?, ?)`,
			p.ID, supplierID, p.Name, p.CostPerUnit, next)
		if err != nil {
			return insertErr("product", p.ID, err)
		}
		return nil
	})
}

func (s *Storage) DeleteProduct(ctx context.Context, supplierID, productID string) error {
	const op = "storage.sqlstore.DeleteProduct"

	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ? AND supplier_id = ?`, productID, supplierID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := deleted(res); err != nil {
		return fmt.Errorf("%s: product %s of supplier %s: %w", op, productID, supplierID, err)
	}
	return nil
}

func insertErr(kind, id string, err error) error {
	if isDuplicate(err) {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrAlreadyExists)
	}
	return fmt.Errorf("insert %s %s: %w", kind, id, err)
}
