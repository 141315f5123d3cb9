package pefolio

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Deal is a row of the assets sheet once cleaned.
//
// FXRate and CommitmentUSD are zero until the deal has been converted by
// Rates.ConvertDeals.
type Deal struct {
	Name           string
	Currency       string
	Commitment     decimal.Decimal
	ManagementFees string
	AssetClass     string
	Geography      string
	Underlying     string
	Tags           string

	FXRate        decimal.Decimal
	CommitmentUSD decimal.Decimal
}

// Diagnostics counts the rows and cells the cleaning had to drop or default.
type Diagnostics struct {
	DroppedDeals       int      // assets rows without a deal name
	DroppedEvents      int      // events without a readable date or a deal name
	DefaultedAmounts   int      // non-empty amounts that could not be read and were set to zero
	DuplicateEvents    int      // events removed because identical to another one
	UnpricedCurrencies []string // deal currencies absent from the rate table
}

// Add returns the sum of both diagnostics.
func (d Diagnostics) Add(o Diagnostics) Diagnostics {
	d.DroppedDeals += o.DroppedDeals
	d.DroppedEvents += o.DroppedEvents
	d.DefaultedAmounts += o.DefaultedAmounts
	d.DuplicateEvents += o.DuplicateEvents
	d.UnpricedCurrencies = append(slices.Clone(d.UnpricedCurrencies), o.UnpricedCurrencies...)
	return d
}

// NormalizeDeals cleans the rows of the assets sheet. Deal names are expected
// to be forward-filled already. Rows whose deal name is still empty are dropped.
func NormalizeDeals(s Sheet) ([]Deal, Diagnostics) {
	var diag Diagnostics
	deals := make([]Deal, 0, len(s.Records))
	for _, r := range s.Records {
		name := NormalizeName(r[ColDealName])
		if name == "" {
			diag.DroppedDeals++
			continue
		}
		commitment, defaulted := ParseAmount(r[ColCommitment])
		if defaulted && !isMissing(r[ColCommitment]) {
			diag.DefaultedAmounts++
		}
		deals = append(deals, Deal{
			Name:           name,
			Currency:       NormalizeCurrency(r[ColCurrency]),
			Commitment:     commitment,
			ManagementFees: strings.TrimSpace(r[ColManagementFees]),
			AssetClass:     strings.TrimSpace(r[ColAssetClass]),
			Geography:      strings.TrimSpace(r[ColGeography]),
			Underlying:     strings.TrimSpace(r[ColUnderlying]),
			Tags:           strings.TrimSpace(r[ColTags]),
		})
	}
	return deals, diag
}

// CurrencyMap returns the currency of each deal. When a deal spans several
// rows the first currency wins.
func CurrencyMap(deals []Deal) map[string]string {
	m := make(map[string]string, len(deals))
	for _, d := range deals {
		if _, ok := m[d.Name]; !ok {
			m[d.Name] = d.Currency
		}
	}
	return m
}
