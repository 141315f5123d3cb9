package pefolio

import "github.com/shopspring/decimal"

// RunConfig holds the parameters of a consolidation. It is built once and
// passed to Run; nothing reads the configuration from elsewhere.
type RunConfig struct {
	Rates     Rates
	Tolerance decimal.Decimal
}

// NewRunConfig returns a RunConfig for the rate table and tolerance.
func NewRunConfig(rates map[string]float64, tolerance float64) RunConfig {
	return RunConfig{Rates: NewRates(rates), Tolerance: decimal.NewFromFloat(tolerance)}
}

// Result holds every table produced by a run.
type Result struct {
	Deals       []Deal // converted to USD
	Events      []Event
	Aggregates  []Aggregate
	Audit       Audit
	Diagnostics Diagnostics

	Metadata      Table
	Measures      Table
	Concentration []Exposure
}

// Run consolidates the sheets. Each step builds new tables from the previous
// ones; the sheets are not modified.
func Run(cfg RunConfig, sheets Sheets) *Result {
	deals, dealDiag := NormalizeDeals(sheets.Assets)
	files, filesDiag := NormalizeEvents(sheets.Files, "")
	nav, navDiag := NormalizeEvents(sheets.NAV, FundLevel)
	unified, unifyDiag := Unify(files, nav, CurrencyMap(deals))

	deals = cfg.Rates.ConvertDeals(deals)
	events := cfg.Rates.ConvertEvents(unified)
	aggs := AggregateEvents(events)

	diag := dealDiag.Add(filesDiag).Add(navDiag).Add(unifyDiag)
	diag.UnpricedCurrencies = cfg.Rates.Unpriced(deals)

	return &Result{
		Deals:       deals,
		Events:      events,
		Aggregates:  aggs,
		Audit:       Reconcile(deals, aggs, cfg.Tolerance),
		Diagnostics: diag,
		Metadata:    MetadataTable(deals, aggs),
		Measures:    MeasuresTable(events),

		Concentration: Concentration(deals, aggs),
	}
}
