package pefolio

import (
	"fmt"
	"maps"
	"strings"
)

// Names of the sheets read from the source workbook.
const (
	AssetsSheet = "Assets Data"
	FilesSheet  = "Files Data"
	NAVSheet    = "NAV Data"
)

// Normalized column names used by the pipeline.
const (
	ColDealName       = "deal_name"
	ColCurrency       = "currency"
	ColCommitment     = "commitment"
	ColManagementFees = "management_fees"
	ColAssetClass     = "asset_class"
	ColGeography      = "geography"
	ColUnderlying     = "underlying"
	ColTags           = "tags"
	ColDate           = "date"
	ColInvestor       = "investor"
	ColMeasure        = "measure"
	ColAmount         = "amount"
)

// columnAliases maps the truncated or business headers found in the source
// workbook to their normalized name.
var columnAliases = map[string]string{
	"deal_nam":             ColDealName,
	"managem":              ColManagementFees,
	"asset_clas":           ColAssetClass,
	"type":                 ColMeasure,
	"value":                ColAmount,
	"venture_d_commitment": ColCommitment,
	"pe_tags":              ColTags,
}

// ColumnName returns the normalized (snake_case, aliased) name of a raw header.
func ColumnName(raw string) string {
	c := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), " ", "_")
	if alias, ok := columnAliases[c]; ok {
		return alias
	}
	return c
}

// Record is a row of a sheet, keyed by normalized column name.
type Record map[string]string

// Sheet is a table read from the workbook, with normalized column names and
// rows in source order.
type Sheet struct {
	Name    string
	Columns []string
	Records []Record
}

// Has reports whether the sheet carries the column.
func (s Sheet) Has(column string) bool {
	for _, c := range s.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// NewSheet builds a Sheet from raw cell rows, the first row being the header.
// Columns with an empty header are ignored, and so are rows without any
// non-blank cell. Missing trailing cells read as "".
func NewSheet(name string, rows [][]string) Sheet {
	s := Sheet{Name: name}
	if len(rows) == 0 {
		return s
	}
	header := make([]string, len(rows[0]))
	for i, raw := range rows[0] {
		header[i] = ColumnName(raw)
		if header[i] != "" {
			s.Columns = append(s.Columns, header[i])
		}
	}
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		r := make(Record, len(s.Columns))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(row) {
				r[col] = row[i]
			} else {
				r[col] = ""
			}
		}
		s.Records = append(s.Records, r)
	}
	return s
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// isMissing reports whether a cell holds no value, including the textual
// placeholders left by spreadsheet exports.
func isMissing(v string) bool {
	switch strings.TrimSpace(v) {
	case "", "nan", "None":
		return true
	}
	return false
}

// ForwardFill returns a copy of records where a missing value in column is
// replaced by the last value seen in an earlier row. It models merged cells
// and must run on rows in their source order. Rows before the first value
// keep an empty value.
func ForwardFill(records []Record, column string) []Record {
	out := make([]Record, 0, len(records))
	last := ""
	for _, r := range records {
		c := maps.Clone(r)
		if v := c[column]; isMissing(v) {
			c[column] = last
		} else {
			last = v
		}
		out = append(out, c)
	}
	return out
}

// Sheets holds the three sheets of the source workbook.
type Sheets struct {
	Assets Sheet
	Files  Sheet
	NAV    Sheet
}

// Workbook is the source of raw sheet rows.
// Rows returns nil rows and no error for a sheet that does not exist.
type Workbook interface {
	Rows(sheet string) ([][]string, error)
}

// LoadSheets reads the three sheets from wb and normalizes their columns.
// Missing sheets are empty. Deal names of the assets sheet are forward-filled.
func LoadSheets(wb Workbook) (Sheets, error) {
	var sheets Sheets
	for _, target := range []struct {
		name  string
		sheet *Sheet
	}{
		{AssetsSheet, &sheets.Assets},
		{FilesSheet, &sheets.Files},
		{NAVSheet, &sheets.NAV},
	} {
		rows, err := wb.Rows(target.name)
		if err != nil {
			return Sheets{}, fmt.Errorf("cannot read sheet %q: %w", target.name, err)
		}
		*target.sheet = NewSheet(target.name, rows)
	}
	sheets.Assets.Records = ForwardFill(sheets.Assets.Records, ColDealName)
	return sheets, nil
}
