package pefolio

import (
	"strings"

	"github.com/etnz/pefolio/date"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used for deals without a currency.
const DefaultCurrency = "USD"

var amountReplacer = strings.NewReplacer("$", "", ",", "")

// ParseAmount reads a monetary cell like "$1,234.50". It never fails: a value
// that cannot be read is zero, and defaulted is true so that callers can tell
// it apart from a source that said zero.
func ParseAmount(s string) (amount decimal.Decimal, defaulted bool) {
	s = strings.TrimSpace(amountReplacer.Replace(s))
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, true
	}
	return v, false
}

// NormalizeName returns the join key of a deal name, "" when missing.
func NormalizeName(s string) string {
	if isMissing(s) {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeCurrency returns the currency code of a cell, USD when missing.
func NormalizeCurrency(s string) string {
	if isMissing(s) {
		return DefaultCurrency
	}
	return strings.ToUpper(strings.TrimSpace(s))
}

// ParseEventDate reads the date of an event from the first ten characters of
// the cell. ok is false when the cell cannot be read, in which case the event
// must be dropped.
func ParseEventDate(s string) (on date.Date, ok bool) {
	on, err := date.ParsePrefix(s)
	if err != nil {
		return date.Date{}, false
	}
	return on, true
}
