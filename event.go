package pefolio

import (
	"cmp"
	"slices"
	"strings"

	"github.com/etnz/pefolio/date"
	"github.com/shopspring/decimal"
)

// Measure is the canonical type of an event.
type Measure string

// Canonical measures. Labels outside this list are kept verbatim.
const (
	CapitalCall           Measure = "Capital Call"
	Commitment            Measure = "Commitment"
	EstimatedNAV          Measure = "Estimated NAV"
	ChargebackCapitalCall Measure = "Chargeback Capital Call"
)

// FundLevel is the investor of events that are not attributed to an investor.
const FundLevel = "Fund Level"

var measureAliases = map[string]Measure{
	"Provided NAV":  EstimatedNAV,
	"Chargeback CC": ChargebackCapitalCall,
}

// AliasMeasure substitutes the known aliases of a label. Any other label,
// surrounding spaces included, is returned as is.
func AliasMeasure(label string) Measure {
	if m, ok := measureAliases[label]; ok {
		return m
	}
	return Measure(label)
}

// CanonicalMeasure returns the canonical measure of a label: aliases are
// substituted first, then any label starting with "commit" (in any case)
// becomes Commitment.
func CanonicalMeasure(label string) Measure {
	return commitPrefix(AliasMeasure(label))
}

func commitPrefix(m Measure) Measure {
	if strings.HasPrefix(strings.ToLower(string(m)), "commit") {
		return Commitment
	}
	return m
}

// Event is a transaction or valuation of a deal, read from the files or the
// NAV sheet.
//
// Currency, FXRate and AmountUSD are inherited from the deal: Currency is set
// by Unify and the two others by Rates.ConvertEvents.
type Event struct {
	Deal     string
	Date     date.Date
	Investor string
	Measure  Measure
	Amount   decimal.Decimal

	Currency  string
	FXRate    decimal.Decimal
	AmountUSD decimal.Decimal
}

// NormalizeEvents cleans the rows of an event sheet. Rows without a readable
// date or without a deal name are dropped: deal names are only forward-filled
// in the assets sheet. When the sheet has no investor column every event is
// attributed to fallbackInvestor. Measure labels are kept verbatim.
func NormalizeEvents(s Sheet, fallbackInvestor string) ([]Event, Diagnostics) {
	var diag Diagnostics
	hasInvestor := s.Has(ColInvestor)
	events := make([]Event, 0, len(s.Records))
	for _, r := range s.Records {
		on, ok := ParseEventDate(r[ColDate])
		name := NormalizeName(r[ColDealName])
		if !ok || name == "" {
			diag.DroppedEvents++
			continue
		}
		amount, defaulted := ParseAmount(r[ColAmount])
		if defaulted && !isMissing(r[ColAmount]) {
			diag.DefaultedAmounts++
		}
		investor := fallbackInvestor
		if hasInvestor {
			investor = strings.TrimSpace(r[ColInvestor])
		}
		events = append(events, Event{
			Deal:     name,
			Date:     on,
			Investor: investor,
			Measure:  Measure(r[ColMeasure]),
			Amount:   amount,
		})
	}
	return events, diag
}

// eventKey identifies an event for deduplication.
type eventKey struct {
	deal     string
	on       date.Date
	investor string
	measure  Measure
	amount   string
}

func keyOf(e Event) eventKey {
	return eventKey{e.Deal, e.Date, e.Investor, e.Measure, e.Amount.String()}
}

// Unify merges the events of the files and NAV sheets into a single stream:
// measure aliases are substituted, identical events collapse into one, the
// currency of each event is resolved from currencies (by deal name, empty for
// unknown deals) and the commit prefix rule is applied. The result is sorted
// by deal then date.
func Unify(files, nav []Event, currencies map[string]string) ([]Event, Diagnostics) {
	var diag Diagnostics
	seen := make(map[eventKey]bool, len(files)+len(nav))
	unified := make([]Event, 0, len(files)+len(nav))
	for _, e := range slices.Concat(files, nav) {
		e.Measure = AliasMeasure(string(e.Measure))
		k := keyOf(e)
		if seen[k] {
			diag.DuplicateEvents++
			continue
		}
		seen[k] = true
		e.Currency = currencies[e.Deal]
		e.Measure = commitPrefix(e.Measure)
		unified = append(unified, e)
	}
	slices.SortStableFunc(unified, func(a, b Event) int {
		return cmp.Or(strings.Compare(a.Deal, b.Deal), a.Date.Compare(b.Date))
	})
	return unified, diag
}
