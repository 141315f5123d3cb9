package pefolio

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultTolerance is the largest delta, in USD, between a reported and a
// calculated commitment that is not a mismatch.
const DefaultTolerance = 10.0

// AuditStatus is the outcome of a reconciliation.
type AuditStatus string

const (
	AuditOK       AuditStatus = "ok"
	AuditMismatch AuditStatus = "mismatch"
)

// AuditRecord compares the reported and calculated commitments of a deal.
//
// A deal without any event has no calculated commitment: NoEvents is set,
// Calculated is zero and Delta is the reported commitment.
type AuditRecord struct {
	Deal       string
	Reported   decimal.Decimal
	Calculated decimal.Decimal
	NoEvents   bool
	Delta      decimal.Decimal
}

// Audit is the result of a reconciliation, records sorted by descending delta.
type Audit struct {
	Records   []AuditRecord
	Tolerance decimal.Decimal
	Status    AuditStatus
}

// Exceeds reports whether the record's delta is above the tolerance.
func (a Audit) Exceeds(r AuditRecord) bool { return r.Delta.GreaterThan(a.Tolerance) }

// Mismatches returns the records whose delta is above the tolerance, largest first.
func (a Audit) Mismatches() []AuditRecord {
	var out []AuditRecord
	for _, r := range a.Records {
		if a.Exceeds(r) {
			out = append(out, r)
		}
	}
	return out
}

// Reconcile compares, for each deal, the USD commitment reported in the assets
// sheet with the one calculated from the events. Deals spanning several asset
// rows are compared on the sum of their rows. The audit is informational: it
// never fails.
func Reconcile(deals []Deal, aggs []Aggregate, tolerance decimal.Decimal) Audit {
	calculated := make(map[string]decimal.Decimal, len(aggs))
	for _, a := range aggs {
		calculated[a.Deal] = a.CalculatedCommitment
	}

	index := make(map[string]int)
	var records []AuditRecord
	for _, d := range deals {
		i, ok := index[d.Name]
		if !ok {
			i = len(records)
			index[d.Name] = i
			c, found := calculated[d.Name]
			records = append(records, AuditRecord{Deal: d.Name, Calculated: c, NoEvents: !found})
		}
		records[i].Reported = records[i].Reported.Add(d.CommitmentUSD)
	}

	audit := Audit{Tolerance: tolerance, Status: AuditOK}
	for i := range records {
		records[i].Delta = records[i].Reported.Sub(records[i].Calculated).Abs()
		if records[i].Delta.GreaterThan(tolerance) {
			audit.Status = AuditMismatch
		}
	}
	slices.SortStableFunc(records, func(a, b AuditRecord) int {
		return cmp.Or(b.Delta.Cmp(a.Delta), strings.Compare(a.Deal, b.Deal))
	})
	audit.Records = records
	return audit
}
