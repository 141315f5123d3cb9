package renderer

import (
	"strings"

	"github.com/etnz/pefolio"
	"github.com/shopspring/decimal"
)

// Audit is the view of a run used by the audit templates. Amounts are
// already formatted.
type Audit struct {
	RunID      string
	Date       string
	Status     string
	Tolerance  string
	Mismatches int

	MetadataRows int
	MeasureRows  int

	Records       []AuditRow
	Diagnostics   Diagnostics
	Concentration []ExposureRow
}

// AuditRow is one line of the reconciliation table.
type AuditRow struct {
	Deal       string
	Reported   string
	Calculated string
	Delta      string
	Flag       string
}

// Diagnostics lists what the run dropped or defaulted.
type Diagnostics struct {
	DroppedDeals       int
	DroppedEvents      int
	DuplicateEvents    int
	DefaultedAmounts   int
	UnpricedCurrencies string
}

// Empty reports whether there is nothing to report.
func (d Diagnostics) Empty() bool { return d == Diagnostics{} }

// ExposureRow is one bucket of the concentration breakdown.
type ExposureRow struct {
	AssetClass string
	Geography  string
	Vintage    string
	Commitment string
	Share      string
}

// NewAudit builds the report view of a run. date is printed as is.
func NewAudit(runID, date string, r *pefolio.Result) *Audit {
	a := &Audit{
		RunID:        runID,
		Date:         date,
		Status:       string(r.Audit.Status),
		Tolerance:    pefolio.FormatUSD(r.Audit.Tolerance),
		Mismatches:   len(r.Audit.Mismatches()),
		MetadataRows: len(r.Metadata.Rows),
		MeasureRows:  len(r.Measures.Rows),
		Diagnostics: Diagnostics{
			DroppedDeals:       r.Diagnostics.DroppedDeals,
			DroppedEvents:      r.Diagnostics.DroppedEvents,
			DuplicateEvents:    r.Diagnostics.DuplicateEvents,
			DefaultedAmounts:   r.Diagnostics.DefaultedAmounts,
			UnpricedCurrencies: strings.Join(r.Diagnostics.UnpricedCurrencies, ", "),
		},
	}

	for _, rec := range r.Audit.Records {
		row := AuditRow{
			Deal:       cell(rec.Deal),
			Reported:   pefolio.FormatUSD(rec.Reported),
			Calculated: pefolio.FormatUSD(rec.Calculated),
			Delta:      pefolio.FormatUSD(rec.Delta),
		}
		var flags []string
		if r.Audit.Exceeds(rec) {
			flags = append(flags, "mismatch")
		}
		if rec.NoEvents {
			row.Calculated = "n/a"
			flags = append(flags, "no events")
		}
		row.Flag = strings.Join(flags, ", ")
		a.Records = append(a.Records, row)
	}

	total := decimal.Zero
	for _, e := range r.Concentration {
		total = total.Add(e.Commitment)
	}
	for _, e := range r.Concentration {
		share := "-"
		if !total.IsZero() {
			share = e.Commitment.Div(total).Shift(2).StringFixed(1) + "%"
		}
		a.Concentration = append(a.Concentration, ExposureRow{
			AssetClass: cell(e.AssetClass),
			Geography:  cell(e.Geography),
			Vintage:    e.Vintage,
			Commitment: pefolio.FormatUSD(e.Commitment),
			Share:      share,
		})
	}
	return a
}

// cell escapes the pipes that would break a markdown table.
func cell(s string) string { return strings.ReplaceAll(s, "|", `\|`) }
