package pefolio

import (
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Rates is the immutable table of exchange rates to USD of a run.
type Rates struct {
	rates map[string]decimal.Decimal
}

// NewRates returns the rate table for the given USD multipliers keyed by
// currency code.
func NewRates(rates map[string]float64) Rates {
	r := Rates{rates: make(map[string]decimal.Decimal, len(rates))}
	for code, rate := range rates {
		r.rates[strings.ToUpper(strings.TrimSpace(code))] = decimal.NewFromFloat(rate)
	}
	return r
}

// Rate returns the multiplier converting an amount in currency into USD.
// Currencies absent from the table convert at 1.
func (r Rates) Rate(currency string) decimal.Decimal {
	if rate, ok := r.Lookup(currency); ok {
		return rate
	}
	return decimal.NewFromInt(1)
}

// Lookup returns the rate of currency and whether the table has one.
func (r Rates) Lookup(currency string) (decimal.Decimal, bool) {
	rate, ok := r.rates[strings.ToUpper(strings.TrimSpace(currency))]
	return rate, ok
}

// Currencies returns the sorted currency codes of the table.
func (r Rates) Currencies() []string {
	return slices.Sorted(maps.Keys(r.rates))
}

// ConvertDeals returns a copy of deals with their rate and USD commitment set.
func (r Rates) ConvertDeals(deals []Deal) []Deal {
	out := make([]Deal, len(deals))
	for i, d := range deals {
		d.FXRate = r.Rate(d.Currency)
		d.CommitmentUSD = d.Commitment.Mul(d.FXRate)
		out[i] = d
	}
	return out
}

// ConvertEvents returns a copy of events with their rate and USD amount set.
func (r Rates) ConvertEvents(events []Event) []Event {
	out := make([]Event, len(events))
	for i, e := range events {
		e.FXRate = r.Rate(e.Currency)
		e.AmountUSD = e.Amount.Mul(e.FXRate)
		out[i] = e
	}
	return out
}

// Unpriced returns the sorted currencies used by deals that have no rate in
// the table.
func (r Rates) Unpriced(deals []Deal) []string {
	var missing []string
	for _, d := range deals {
		if _, ok := r.Lookup(d.Currency); !ok && !slices.Contains(missing, d.Currency) {
			missing = append(missing, d.Currency)
		}
	}
	slices.Sort(missing)
	return missing
}
