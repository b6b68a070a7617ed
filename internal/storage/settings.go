package storage

const DefaultCurrencySymbol = "$"

type Settings struct {
	CurrencySymbol string `json:"currencySymbol"`
	DarkMode       bool   `json:"darkMode"`
}

func DefaultSettings() Settings {
	return Settings{CurrencySymbol: DefaultCurrencySymbol}
}
