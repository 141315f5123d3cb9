package pefolio

import (
	"testing"
	"time"

	"github.com/etnz/pefolio/date"
	"github.com/google/go-cmp/cmp"
)

func TestCanonicalMeasure(t *testing.T) {
	testCases := []struct {
		label string
		want  Measure
	}{
		{"Provided NAV", EstimatedNAV},
		{"Chargeback CC", ChargebackCapitalCall},
		{"Commitment - Drawn", Commitment},
		{"COMMITTED capital", Commitment},
		{"Commitment", Commitment},
		{"Capital Call", CapitalCall},
		{"Distribution", "Distribution"},
		{"Estimated NAV", EstimatedNAV},
	}
	for _, tc := range testCases {
		if got := CanonicalMeasure(tc.label); got != tc.want {
			t.Errorf("CanonicalMeasure(%q) = %q, want %q", tc.label, got, tc.want)
		}
	}
}

func TestNormalizeEvents(t *testing.T) {
	s := NewSheet(FilesSheet, [][]string{
		filesHeader,
		{" alpha ", "2020-01-15 00:00:00", "Inv A", "Capital Call", "$1,000"},
		{"alpha", "not a date", "Inv A", "Capital Call", "5"},
		{"", "2020-01-15", "Inv A", "Capital Call", "5"},
		{"beta", "2021-02-01", "Inv B", "Distribution", "oops"},
	})

	events, diag := NormalizeEvents(s, FundLevel)

	want := []Event{
		{Deal: "ALPHA", Date: date.New(2020, time.January, 15), Investor: "Inv A", Measure: CapitalCall, Amount: dec("1000")},
		{Deal: "BETA", Date: date.New(2021, time.February, 1), Investor: "Inv B", Measure: "Distribution", Amount: dec("0")},
	}
	if diff := cmp.Diff(want, events, cmpOpts); diff != "" {
		t.Errorf("NormalizeEvents() mismatch (-want +got):\n%s", diff)
	}
	if diag.DroppedEvents != 2 || diag.DefaultedAmounts != 1 {
		t.Errorf("NormalizeEvents() diagnostics = %+v, want 2 dropped and 1 defaulted", diag)
	}
}

func TestNormalizeEvents_DropsMissingDealName(t *testing.T) {
	s := NewSheet(FilesSheet, [][]string{
		filesHeader,
		{"alpha", "2020-01-15", "Inv A", "Capital Call", "100"},
		{"", "2020-02-15", "Inv A", "Capital Call", "5"},
		{"nan", "2020-03-15", "Inv A", "Capital Call", "5"},
	})
	events, diag := NormalizeEvents(s, "")
	if len(events) != 1 || events[0].Deal != "ALPHA" {
		t.Errorf("NormalizeEvents() = %+v, want only the ALPHA event", events)
	}
	if diag.DroppedEvents != 2 {
		t.Errorf("NormalizeEvents() dropped = %d, want 2", diag.DroppedEvents)
	}
}

func TestNormalizeEvents_VerbatimMeasure(t *testing.T) {
	s := NewSheet(FilesSheet, [][]string{
		filesHeader,
		{"alpha", "2020-01-15", "Inv A", " Distribution ", "10"},
		{"alpha", "2020-01-16", "Inv A", "Provided NAV", "20"},
	})
	events, _ := NormalizeEvents(s, "")
	unified, _ := Unify(events, nil, nil)
	got := []Measure{unified[0].Measure, unified[1].Measure}
	want := []Measure{" Distribution ", EstimatedNAV}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("measures mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeEvents_FundLevel(t *testing.T) {
	s := NewSheet(NAVSheet, [][]string{
		navHeader,
		{"alpha", "2020-12-31", "Provided NAV", "900"},
	})
	events, _ := NormalizeEvents(s, FundLevel)
	if len(events) != 1 || events[0].Investor != FundLevel {
		t.Fatalf("NormalizeEvents() = %+v, want one event at %q", events, FundLevel)
	}
}

func TestUnify(t *testing.T) {
	on := date.New(2020, time.January, 15)
	files := []Event{
		{Deal: "BETA", Date: on, Investor: "Inv B", Measure: "Capital Call", Amount: dec("10")},
		{Deal: "ALPHA", Date: on, Investor: "Inv A", Measure: "Chargeback CC", Amount: dec("5")},
		{Deal: "ALPHA", Date: on, Investor: "Inv A", Measure: "Chargeback CC", Amount: dec("5.00")},
		{Deal: "ALPHA", Date: on.Add(-30), Investor: "Inv A", Measure: "commitment (initial)", Amount: dec("300")},
	}
	nav := []Event{
		{Deal: "ALPHA", Date: on.Add(10), Investor: FundLevel, Measure: "Provided NAV", Amount: dec("290")},
		{Deal: "GAMMA", Date: on, Investor: FundLevel, Measure: "Estimated NAV", Amount: dec("1")},
	}
	currencies := map[string]string{"ALPHA": "EUR", "BETA": "USD"}

	got, diag := Unify(files, nav, currencies)

	want := []Event{
		{Deal: "ALPHA", Date: on.Add(-30), Investor: "Inv A", Measure: Commitment, Amount: dec("300"), Currency: "EUR"},
		{Deal: "ALPHA", Date: on, Investor: "Inv A", Measure: ChargebackCapitalCall, Amount: dec("5"), Currency: "EUR"},
		{Deal: "ALPHA", Date: on.Add(10), Investor: FundLevel, Measure: EstimatedNAV, Amount: dec("290"), Currency: "EUR"},
		{Deal: "BETA", Date: on, Investor: "Inv B", Measure: CapitalCall, Amount: dec("10"), Currency: "USD"},
		{Deal: "GAMMA", Date: on, Investor: FundLevel, Measure: EstimatedNAV, Amount: dec("1"), Currency: ""},
	}
	if diff := cmp.Diff(want, got, cmpOpts); diff != "" {
		t.Errorf("Unify() mismatch (-want +got):\n%s", diff)
	}
	if diag.DuplicateEvents != 1 {
		t.Errorf("Unify() duplicates = %d, want 1", diag.DuplicateEvents)
	}
	if files[1].Measure != "Chargeback CC" {
		t.Errorf("Unify() modified its input")
	}
}
