// Package sink encodes the output tables and stores them in their
// destinations: a local directory and optionally an S3 bucket.
package sink

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/pefolio"
	"github.com/etnz/pefolio/xlsx"
	"golang.org/x/sync/errgroup"
)

// Content types of the output files.
const (
	ContentTypeCSV      = "text/csv"
	ContentTypeXLSX     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeMarkdown = "text/markdown"
	ContentTypeHTML     = "text/html"
)

// WorkbookName is the file name of the xlsx output.
const WorkbookName = "portfolio.xlsx"

// File is an encoded output.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Destination stores output files.
type Destination interface {
	Put(ctx context.Context, name string, data []byte, contentType string) error
}

// Encode encodes the tables in format: "csv" gives one file per table named
// after it, "xlsx" a single workbook with one sheet per table.
func Encode(format string, tables ...pefolio.Table) ([]File, error) {
	switch format {
	case "csv":
		files := make([]File, 0, len(tables))
		for _, t := range tables {
			data, err := encodeCSV(t)
			if err != nil {
				return nil, err
			}
			files = append(files, File{Name: t.Name + ".csv", ContentType: ContentTypeCSV, Data: data})
		}
		return files, nil
	case "xlsx":
		var buf bytes.Buffer
		if err := xlsx.WriteTables(&buf, tables...); err != nil {
			return nil, err
		}
		return []File{{Name: WorkbookName, ContentType: ContentTypeXLSX, Data: buf.Bytes()}}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

func encodeCSV(t pefolio.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Header); err != nil {
		return nil, fmt.Errorf("cannot write header of %q: %w", t.Name, err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, fmt.Errorf("cannot write rows of %q: %w", t.Name, err)
	}
	return buf.Bytes(), nil
}

// Write stores every file in every destination. Destinations are written
// concurrently; the first error is returned.
func Write(ctx context.Context, files []File, dests ...Destination) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, d := range dests {
		for _, f := range files {
			g.Go(func() error {
				return d.Put(ctx, f.Name, f.Data, f.ContentType)
			})
		}
	}
	return g.Wait()
}

// Dir is a local directory destination.
type Dir string

// Put writes data in the directory, creating it if needed.
func (d Dir) Put(_ context.Context, name string, data []byte, _ string) error {
	if err := os.MkdirAll(string(d), 0755); err != nil {
		return fmt.Errorf("cannot create output directory %q: %w", string(d), err)
	}
	path := filepath.Join(string(d), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("cannot write %q: %w", path, err)
	}
	return nil
}
