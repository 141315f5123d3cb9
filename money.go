package pefolio

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatUSD returns the display form of a USD amount, like "$1,234.50".
func FormatUSD(v decimal.Decimal) string {
	cur := money.GetCurrency(money.USD)
	// go-money works on integer minor units.
	minor := v.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, money.USD).Display()
}

// KnownCurrency reports whether code is an ISO 4217 currency code.
func KnownCurrency(code string) bool {
	return money.GetCurrency(code) != nil
}
