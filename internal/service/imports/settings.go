package imports

import (
	"encoding/json"
	"unicode/utf8"

	"paycalc/internal/storage"
)

const maxCurrencySymbolLen = 3

func ParseSettings(raw []byte) (storage.Settings, ValidationResult) {
	st := storage.DefaultSettings()
	if err := json.Unmarshal(raw, &st); err != nil {
		return storage.Settings{}, invalid(invalidJSON)
	}

	if st.CurrencySymbol == "" || utf8.RuneCountInString(st.CurrencySymbol) > maxCurrencySymbolLen {
		return storage.Settings{}, invalid("'currencySymbol' must be 1 to 3 characters")
	}
	return st, result(nil)
}
