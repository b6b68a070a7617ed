package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"paycalc/internal/storage"
)

const settingsID = 1

func (s *Storage) GetSettings(ctx context.Context) (storage.Settings, error) {
	const op = "storage.sqlstore.GetSettings"

	var st storage.Settings
	err := s.db.QueryRowContext(ctx, `SELECT currency_symbol, dark_mode FROM settings WHERE id = ?`, settingsID).
		Scan(&st.CurrencySymbol, &st.DarkMode)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.DefaultSettings(), nil
	}
	if err != nil {
		return storage.Settings{}, fmt.Errorf("%s: %w", op, err)
	}

	return st, nil
}

func (s *Storage) SaveSettings(ctx context.Context, st storage.Settings) error {
	return s.withTx(ctx, "storage.sqlstore.SaveSettings", func(tx *sql.Tx) error {
		return saveSettings(ctx, tx, st)
	})
}

func saveSettings(ctx context.Context, tx *sql.Tx, st storage.Settings) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM settings WHERE id = ?`, settingsID); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `INSERT INTO settings (id, currency_symbol, dark_mode) VALUES (?, ?, ?)`,
		settingsID, st.CurrencySymbol, st.DarkMode)
	return err
}

// ResetAll empties every collection and stores defaults as the settings.
func (s *Storage) ResetAll(ctx context.Context, defaults storage.Settings) error {
	return s.withTx(ctx, "storage.sqlstore.ResetAll", func(tx *sql.Tx) error {
		for _, table := range []string{"products", "suppliers", "sales_entries", "product_sales", "employees", "locations", "expenses"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return saveSettings(ctx, tx, defaults)
	})
}
