package pefolio

import (
	"github.com/etnz/pefolio/date"
	"github.com/shopspring/decimal"
)

// Aggregate is the summary of the events of a deal.
type Aggregate struct {
	Deal                 string
	CapitalCalls         decimal.Decimal // sum of the USD capital calls
	CalculatedCommitment decimal.Decimal // sum of the USD commitments
	FirstCall            date.Date       // earliest capital call, zero if none

	// NAV growth between the earliest and the latest estimated NAV.
	NAVGrowth    decimal.Decimal
	HasNAVGrowth bool
}

// Vintage returns the year of the first capital call.
func (a Aggregate) Vintage() (year int, ok bool) {
	if a.FirstCall.IsZero() {
		return 0, false
	}
	return a.FirstCall.Year(), true
}

// CommitmentDate returns the date of the first capital call as MM/DD/YYYY.
func (a Aggregate) CommitmentDate() (string, bool) {
	if a.FirstCall.IsZero() {
		return "", false
	}
	return a.FirstCall.Format(date.USFormat), true
}

// AggregateEvents rolls up converted events per deal. There is one aggregate
// per distinct deal of events, in the order deals first appear. Sums over no
// event are zero.
func AggregateEvents(events []Event) []Aggregate {
	index := make(map[string]int)
	var aggs []Aggregate
	navs := make(map[string]*date.History) // fund NAV per day, summed over investors

	for _, e := range events {
		i, ok := index[e.Deal]
		if !ok {
			i = len(aggs)
			index[e.Deal] = i
			aggs = append(aggs, Aggregate{Deal: e.Deal})
		}
		a := &aggs[i]
		switch e.Measure {
		case CapitalCall:
			a.CapitalCalls = a.CapitalCalls.Add(e.AmountUSD)
			if a.FirstCall.IsZero() || e.Date.Before(a.FirstCall) {
				a.FirstCall = e.Date
			}
		case Commitment:
			a.CalculatedCommitment = a.CalculatedCommitment.Add(e.AmountUSD)
		case EstimatedNAV:
			if navs[e.Deal] == nil {
				navs[e.Deal] = new(date.History)
			}
			navs[e.Deal].AppendAdd(e.Date, e.AmountUSD)
		}
	}

	for i := range aggs {
		aggs[i].NAVGrowth, aggs[i].HasNAVGrowth = navGrowth(navs[aggs[i].Deal])
	}
	return aggs
}

// navGrowth returns (last-first)/first over the NAV history.
func navGrowth(h *date.History) (decimal.Decimal, bool) {
	if h == nil || h.Len() < 2 {
		return decimal.Zero, false
	}
	_, first := h.First()
	_, last := h.Latest()
	if first.IsZero() {
		return decimal.Zero, false
	}
	return last.Sub(first).Div(first), true
}
