package pefolio

import (
	"strconv"

	"github.com/etnz/pefolio/date"
)

// Table is a named output table with string cells. Empty cells stand for
// missing values.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Names of the output tables.
const (
	MetadataName = "metadata"
	MeasuresName = "measures"
)

// MetadataColumns is the header of the metadata table, in order.
var MetadataColumns = []string{
	"Deal Name", "Management Fees", "Commitment Date", "Vintage", "currency",
	"Geography", "Asset Class", "Underlying", "PE Tags", "Commitment", "Capital Calls",
}

// MeasuresColumns is the header of the measures table, in order.
var MeasuresColumns = []string{"Deal Name", "Date", "Investor", "Measure", "Amount"}

// MetadataTable returns one row per deal row of the assets sheet, joined with
// the aggregate of the deal. Commitment is the calculated commitment and is
// empty for a deal without events; Capital Calls is then 0.
func MetadataTable(deals []Deal, aggs []Aggregate) Table {
	byDeal := make(map[string]Aggregate, len(aggs))
	for _, a := range aggs {
		byDeal[a.Deal] = a
	}
	t := Table{Name: MetadataName, Header: MetadataColumns}
	for _, d := range deals {
		var commitmentDate, vintage, commitment string
		capitalCalls := "0"
		if a, ok := byDeal[d.Name]; ok {
			commitmentDate, _ = a.CommitmentDate()
			if y, ok := a.Vintage(); ok {
				vintage = strconv.Itoa(y)
			}
			commitment = a.CalculatedCommitment.String()
			capitalCalls = a.CapitalCalls.String()
		}
		t.Rows = append(t.Rows, []string{
			d.Name, d.ManagementFees, commitmentDate, vintage, d.Currency,
			d.Geography, d.AssetClass, d.Underlying, d.Tags, commitment, capitalCalls,
		})
	}
	return t
}

// MeasuresTable returns one row per event with its USD amount.
func MeasuresTable(events []Event) Table {
	t := Table{Name: MeasuresName, Header: MeasuresColumns}
	for _, e := range events {
		t.Rows = append(t.Rows, []string{
			e.Deal, e.Date.Format(date.DateFormat), e.Investor, string(e.Measure), e.AmountUSD.String(),
		})
	}
	return t
}
