package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/pefolio"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleResult() *pefolio.Result {
	return &pefolio.Result{
		Audit: pefolio.Audit{
			Tolerance: dec("10"),
			Status:    pefolio.AuditMismatch,
			Records: []pefolio.AuditRecord{
				{Deal: "BETA", Reported: dec("50"), NoEvents: true, Delta: dec("50")},
				{Deal: "ALPHA", Reported: dec("300"), Calculated: dec("300"), Delta: dec("0")},
			},
		},
		Diagnostics: pefolio.Diagnostics{DroppedEvents: 1},
		Metadata:    pefolio.Table{Rows: make([][]string, 2)},
		Measures:    pefolio.Table{Rows: make([][]string, 3)},
		Concentration: []pefolio.Exposure{
			{AssetClass: "Buyout", Geography: "US", Vintage: "2020", Commitment: dec("300")},
			{AssetClass: "Venture", Geography: "EU", Vintage: pefolio.Unknown, Commitment: dec("0")},
		},
	}
}

const sampleReport = "# Commitment Audit\n" +
	"\n" +
	"Run `run-1` on 2025-01-31: **mismatch**, 1 of 2 deals beyond the $10.00 tolerance.\n" +
	"\n" +
	"Wrote 2 metadata rows and 3 measures.\n" +
	"\n" +
	"## Reconciliation\n" +
	"\n" +
	"| Deal | Reported | Calculated | Delta | Flag |\n" +
	"|:---|---:|---:|---:|:---|\n" +
	"| BETA | $50.00 | n/a | $50.00 | mismatch, no events |\n" +
	"| ALPHA | $300.00 | $300.00 | $0.00 |  |\n" +
	"\n" +
	"## Diagnostics\n" +
	"\n" +
	"- 1 event rows without a date or deal dropped\n" +
	"\n" +
	"## Concentration\n" +
	"\n" +
	"| Asset Class | Geography | Vintage | Commitment | Share |\n" +
	"|:---|:---|:---|---:|---:|\n" +
	"| Buyout | US | 2020 | $300.00 | 100.0% |\n" +
	"| Venture | EU | Unknown | $0.00 | 0.0% |\n" +
	"\n"

func TestRenderAudit(t *testing.T) {
	got, err := RenderAudit(NewAudit("run-1", "2025-01-31", sampleResult()))
	if err != nil {
		t.Fatalf("RenderAudit() unexpected error: %v", err)
	}
	if diff := cmp.Diff(sampleReport, got); diff != "" {
		t.Errorf("RenderAudit() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderAudit_Clean(t *testing.T) {
	r := &pefolio.Result{
		Audit: pefolio.Audit{
			Tolerance: dec("10"),
			Status:    pefolio.AuditOK,
			Records:   []pefolio.AuditRecord{{Deal: "A|B", Reported: dec("5"), Calculated: dec("0"), Delta: dec("5")}},
		},
	}
	got, err := RenderAudit(NewAudit("run-2", "2025-01-31", r))
	if err != nil {
		t.Fatalf("RenderAudit() unexpected error: %v", err)
	}
	for _, absent := range []string{"## Diagnostics", "## Concentration", "mismatch"} {
		if strings.Contains(got, absent) {
			t.Errorf("RenderAudit() contains %q, want it omitted:\n%s", absent, got)
		}
	}
	if !strings.Contains(got, `| A\|B | $5.00 | $0.00 | $5.00 |  |`) {
		t.Errorf("RenderAudit() does not escape the deal name:\n%s", got)
	}
}

func TestNewAudit_Share(t *testing.T) {
	r := &pefolio.Result{Concentration: []pefolio.Exposure{
		{AssetClass: "Buyout", Commitment: dec("1")},
		{AssetClass: "Venture", Commitment: dec("2")},
	}}
	var got []string
	for _, e := range NewAudit("", "", r).Concentration {
		got = append(got, e.Share)
	}
	if diff := cmp.Diff([]string{"33.3%", "66.7%"}, got); diff != "" {
		t.Errorf("shares mismatch (-want +got):\n%s", diff)
	}
}

func TestHTML(t *testing.T) {
	got, err := HTML(sampleReport)
	if err != nil {
		t.Fatalf("HTML() unexpected error: %v", err)
	}
	for _, want := range []string{"<h1>Commitment Audit</h1>", "<table>", ">BETA</td>"} {
		if !strings.Contains(string(got), want) {
			t.Errorf("HTML() does not contain %q", want)
		}
	}
}

func TestTerminal(t *testing.T) {
	got, err := Terminal(sampleReport, "notty", 100)
	if err != nil {
		t.Fatalf("Terminal() unexpected error: %v", err)
	}
	if !strings.Contains(got, "ALPHA") {
		t.Errorf("Terminal() output does not contain the deals:\n%s", got)
	}
}

func TestRenderNarratives(t *testing.T) {
	n := &Narratives{
		Date:  "2025-01-31",
		Model: "gemini-2.5-flash",
		Deals: []NarrativeRow{
			{Deal: "ALPHA", Stage: "Harvesting", Text: "Mature buyout ahead of plan."},
			{Deal: "BETA", Stage: "Maturing", Error: "rate limited"},
		},
	}
	want := "# Deal Assessments\n" +
		"\n" +
		"Written by `gemini-2.5-flash` on 2025-01-31.\n" +
		"\n" +
		"## ALPHA\n" +
		"\n" +
		"_Harvesting phase_\n" +
		"\n" +
		"Mature buyout ahead of plan.\n" +
		"\n" +
		"## BETA\n" +
		"\n" +
		"_Maturing phase_\n" +
		"\n" +
		"> no assessment: rate limited\n"
	got, err := RenderNarratives(n)
	if err != nil {
		t.Fatalf("RenderNarratives() unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RenderNarratives() mismatch (-want +got):\n%s", diff)
	}
}
