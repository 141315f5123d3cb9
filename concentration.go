package pefolio

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/shopspring/decimal"
)

// Unknown labels a concentration bucket whose classification is missing.
const Unknown = "Unknown"

// Exposure is the calculated commitment held in one
// Asset Class / Geography / Vintage bucket.
type Exposure struct {
	AssetClass string
	Geography  string
	Vintage    string
	Commitment decimal.Decimal
}

// Concentration breaks the calculated commitment down by asset class, then
// geography, then vintage. Like the metadata table it counts every asset row;
// rows of deals without events contribute 0.
func Concentration(deals []Deal, aggs []Aggregate) []Exposure {
	byDeal := make(map[string]Aggregate, len(aggs))
	for _, a := range aggs {
		byDeal[a.Deal] = a
	}
	type key struct{ class, geo, vintage string }
	sums := make(map[key]decimal.Decimal)
	for _, d := range deals {
		k := key{orUnknown(d.AssetClass), orUnknown(d.Geography), Unknown}
		var commitment decimal.Decimal
		if a, ok := byDeal[d.Name]; ok {
			commitment = a.CalculatedCommitment
			if y, ok := a.Vintage(); ok {
				k.vintage = strconv.Itoa(y)
			}
		}
		sums[k] = sums[k].Add(commitment)
	}

	out := make([]Exposure, 0, len(sums))
	for k, v := range sums {
		out = append(out, Exposure{AssetClass: k.class, Geography: k.geo, Vintage: k.vintage, Commitment: v})
	}
	slices.SortFunc(out, func(a, b Exposure) int {
		return cmp.Or(
			cmp.Compare(a.AssetClass, b.AssetClass),
			cmp.Compare(a.Geography, b.Geography),
			cmp.Compare(a.Vintage, b.Vintage),
		)
	})
	return out
}

func orUnknown(s string) string {
	if isMissing(s) {
		return Unknown
	}
	return s
}
