package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"paycalc/internal/storage"
)

// Locations and expenses share one layout: id, name, amount, sort_order.
// fixedCostTable names the amount column of each.
type fixedCostTable struct {
	name   string
	amount string
}

var (
	locationsTable = fixedCostTable{name: "locations", amount: "monthly_rent"}
	expensesTable  = fixedCostTable{name: "expenses", amount: "amount"}
)

type fixedCost struct {
	id     string
	name   string
	amount float64
}

func (s *Storage) listFixedCosts(ctx context.Context, t fixedCostTable) ([]fixedCost, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT id, name, %s FROM %s ORDER BY sort_order`, t.amount, t.name))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var costs []fixedCost
	for rows.Next() {
		var c fixedCost
		if err := rows.Scan(&c.id, &c.name, &c.amount); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.name, err)
		}
		costs = append(costs, c)
	}
	return costs, rows.Err()
}

func (s *Storage) replaceFixedCosts(ctx context.Context, op string, t fixedCostTable, costs []fixedCost) error {
	return s.withTx(ctx, op, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t.name); err != nil {
			return fmt.Errorf("clear %s: %w", t.name, err)
		}

		stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %s (id, name, %s, sort_order) VALUES (?, ?, ?, ?)`, t.name, t.amount))
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, c := range costs {
			if _, err := stmt.ExecContext(ctx, c.id, c.name, c.amount, i); err != nil {
				return insertErr(t.name, c.id, err)
			}
		}
		return nil
	})
}

func (s *Storage) createFixedCost(ctx context.Context, op string, t fixedCostTable, c fixedCost) error {
	return s.withTx(ctx, op, func(tx *sql.Tx) error {
		next, err := nextSortOrder(ctx, tx, t.name)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, fmt.Sprintf(`INSERT INTO %s (id, name, %s, sort_order) VALUES (?, ?, ?, ?)`, t.name, t.amount),
			c.id, c.name, c.amount, next)
		if err != nil {
			return insertErr(t.name, c.id, err)
		}
		return nil
	})
}

func (s *Storage) deleteFixedCost(ctx context.Context, op string, t fixedCostTable, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM `+t.name+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := deleted(res); err != nil {
		return fmt.Errorf("%s: %s: %w", op, id, err)
	}
	return nil
}

func (s *Storage) GetLocations(ctx context.Context) ([]storage.Location, error) {
	costs, err := s.listFixedCosts(ctx, locationsTable)
	if err != nil {
		return nil, fmt.Errorf("storage.sqlstore.GetLocations: %w", err)
	}

	var locations []storage.Location
	for _, c := range costs {
		locations = append(locations, storage.Location{ID: c.id, Name: c.name, MonthlyRent: c.amount})
	}
	return locations, nil
}

func (s *Storage) ReplaceLocations(ctx context.Context, locations []storage.Location) error {
	costs := make([]fixedCost, 0, len(locations))
	for _, l := range locations {
		costs = append(costs, fixedCost{id: l.ID, name: l.Name, amount: l.MonthlyRent})
	}
	return s.replaceFixedCosts(ctx, "storage.sqlstore.ReplaceLocations", locationsTable, costs)
}

func (s *Storage) CreateLocation(ctx context.Context, l storage.Location) error {
	return s.createFixedCost(ctx, "storage.sqlstore.CreateLocation", locationsTable, fixedCost{id: l.ID, name: l.Name, amount: l.MonthlyRent})
}

func (s *Storage) DeleteLocation(ctx context.Context, id string) error {
	return s.deleteFixedCost(ctx, "storage.sqlstore.DeleteLocation", locationsTable, id)
}

func (s *Storage) GetExpenses(ctx context.Context) ([]storage.Expense, error) {
	costs, err := s.listFixedCosts(ctx, expensesTable)
	if err != nil {
		return nil, fmt.Errorf("storage.sqlstore.GetExpenses: %w", err)
	}

	var expenses []storage.Expense
	for _, c := range costs {
		expenses = append(expenses, storage.Expense{ID: c.id, Name: c.name, Amount: c.amount})
	}
	return expenses, nil
}

func (s *Storage) ReplaceExpenses(ctx context.Context, expenses []storage.Expense) error {
	costs := make([]fixedCost, 0, len(expenses))
	for _, e := range expenses {
		costs = append(costs, fixedCost{id: e.ID, name: e.Name, amount: e.Amount})
	}
	return s.replaceFixedCosts(ctx, "storage.sqlstore.ReplaceExpenses", expensesTable, costs)
}

func (s *Storage) CreateExpense(ctx context.Context, e storage.Expense) error {
	return s.createFixedCost(ctx, "storage.sqlstore.CreateExpense", expensesTable, fixedCost{id: e.ID, name: e.Name, amount: e.Amount})
}

func (s *Storage) DeleteExpense(ctx context.Context, id string) error {
	return s.deleteFixedCost(ctx, "storage.sqlstore.DeleteExpense", expensesTable, id)
}
