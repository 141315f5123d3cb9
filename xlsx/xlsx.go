// Package xlsx reads the source workbook and writes the output tables as a
// workbook, using excelize.
package xlsx

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/etnz/pefolio"
	"github.com/xuri/excelize/v2"
)

// Workbook is an opened source workbook. It implements pefolio.Workbook.
type Workbook struct {
	mu sync.Mutex
	f  *excelize.File

	date1904   bool
	dateStyles map[int]bool // style id to whether it formats a date
}

var _ pefolio.Workbook = (*Workbook)(nil)

// Open opens the workbook at path. A missing file is reported with an error
// wrapping fs.ErrNotExist.
func Open(path string) (*Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("cannot open workbook: %w", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read workbook %q: %w", path, err)
	}
	return newWorkbook(f), nil
}

// OpenReader reads a workbook from r.
func OpenReader(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read workbook: %w", err)
	}
	return newWorkbook(f), nil
}

func newWorkbook(f *excelize.File) *Workbook {
	w := &Workbook{f: f, dateStyles: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		w.date1904 = *props.Date1904
	}
	return w
}

// Close releases the workbook.
func (w *Workbook) Close() error { return w.f.Close() }

// SheetNames returns the names of the sheets in workbook order.
func (w *Workbook) SheetNames() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.f.GetSheetList()
}

// Rows returns the stored cell values of a sheet, not their display text:
// numbers keep their full precision and date cells read as
// "2006-01-02 15:04:05". The sheet name is matched ignoring case and
// surrounding spaces. A missing sheet has no rows.
func (w *Workbook) Rows(sheet string) ([][]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	name, ok := w.find(sheet)
	if !ok {
		return nil, nil
	}
	rows, err := w.f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("cannot read rows of sheet %q: %w", name, err)
	}
	for i, row := range rows {
		for j, v := range row {
			if v == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, err
			}
			if row[j], err = w.dateValue(name, cell, v); err != nil {
				return nil, err
			}
		}
	}
	return rows, nil
}

// dateValue returns the ISO form of a date cell, v unchanged for any other cell.
func (w *Workbook) dateValue(sheet, cell, v string) (string, error) {
	styleID, err := w.f.GetCellStyle(sheet, cell)
	if err != nil {
		return "", fmt.Errorf("cannot read style of %s!%s: %w", sheet, cell, err)
	}
	isDate, err := w.isDateStyle(styleID)
	if err != nil || !isDate {
		return v, err
	}
	serial, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return v, nil // text typed in a date formatted cell
	}
	t, err := excelize.ExcelDateToTime(serial, w.date1904)
	if err != nil {
		return v, nil
	}
	return t.Format(timeLayout), nil
}

// timeLayout is how dates and times are read from date cells.
const timeLayout = "2006-01-02 15:04:05"

func (w *Workbook) isDateStyle(styleID int) (bool, error) {
	if styleID == 0 {
		return false, nil
	}
	if isDate, ok := w.dateStyles[styleID]; ok {
		return isDate, nil
	}
	style, err := w.f.GetStyle(styleID)
	if err != nil {
		return false, fmt.Errorf("cannot read style %d: %w", styleID, err)
	}
	isDate := dateNumFmts[style.NumFmt]
	if !isDate && style.CustomNumFmt != nil {
		isDate = isDateFormat(*style.CustomNumFmt)
	}
	w.dateStyles[styleID] = isDate
	return isDate, nil
}

// dateNumFmts are the built-in number formats showing a date.
var dateNumFmts = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// isDateFormat reports whether a number format code shows a day or a year.
// Quoted text, escaped characters and bracketed sections like [Red] or
// [$-409] are not part of the pattern.
func isDateFormat(code string) bool {
	quoted, bracket := false, false
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case c == '"':
			quoted = !quoted
		case quoted:
		case c == '[':
			bracket = true
		case c == ']':
			bracket = false
		case bracket:
		case c == '\\' || c == '_' || c == '*':
			i++ // the next character is literal, or padding
		case c == 'y' || c == 'Y' || c == 'd' || c == 'D':
			return true
		}
	}
	return false
}

func (w *Workbook) find(sheet string) (string, bool) {
	want := strings.ToLower(strings.TrimSpace(sheet))
	for _, name := range w.f.GetSheetList() {
		if strings.ToLower(strings.TrimSpace(name)) == want {
			return name, true
		}
	}
	return "", false
}

// numericColumns are written as numbers rather than text.
var numericColumns = map[string]bool{
	"Vintage":       true,
	"Commitment":    true,
	"Capital Calls": true,
	"Amount":        true,
}

// WriteTables writes the tables as the sheets of a new workbook, in order.
func WriteTables(out io.Writer, tables ...pefolio.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	first := f.GetSheetName(0)
	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName(first, t.Name); err != nil {
				return fmt.Errorf("cannot name sheet %q: %w", t.Name, err)
			}
		} else if _, err := f.NewSheet(t.Name); err != nil {
			return fmt.Errorf("cannot create sheet %q: %w", t.Name, err)
		}
		if err := writeTable(f, t); err != nil {
			return err
		}
	}
	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("cannot write workbook: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, t pefolio.Table) error {
	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(t.Name, "A1", &header); err != nil {
		return fmt.Errorf("cannot write header of %q: %w", t.Name, err)
	}
	for i, row := range t.Rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = cellValue(t.Header[j], v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(t.Name, cell, &cells); err != nil {
			return fmt.Errorf("cannot write row %d of %q: %w", i+1, t.Name, err)
		}
	}
	return nil
}

// cellValue returns v as a number for numeric columns, or as text.
func cellValue(column, v string) any {
	if !numericColumns[column] || v == "" {
		return v
	}
	if n, err := strconv.ParseFloat(v, 64); err == nil {
		return n
	}
	return v
}
