package pefolio

import (
	"github.com/etnz/pefolio/date"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

// cmpOpts compares decimals by value and dates by day.
var cmpOpts = cmp.Options{
	cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b date.Date) bool { return a == b }),
}

// dec is a helper for test to create decimals from const.
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fakeWorkbook serves sheets from memory, unknown sheets are missing.
type fakeWorkbook map[string][][]string

func (w fakeWorkbook) Rows(sheet string) ([][]string, error) { return w[sheet], nil }

var (
	assetsHeader = []string{"Deal Nam", "Currency", "Venture D Commitment", "Managem", "Asset Clas", "Geography", "Underlying", "PE Tags"}
	filesHeader  = []string{"Deal Nam", "Date", "Investor", "Type", "Value"}
	navHeader    = []string{"Deal Nam", "Date", "Type", "Value"}
)
