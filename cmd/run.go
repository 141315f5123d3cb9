package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"

	"github.com/etnz/pefolio/config"
	"github.com/etnz/pefolio/date"
	"github.com/etnz/pefolio/metrics"
	"github.com/etnz/pefolio/renderer"
	"github.com/etnz/pefolio/sink"
	"github.com/google/subcommands"
	"github.com/google/uuid"
)

// Names of the audit report files.
const (
	AuditMarkdown = "audit.md"
	AuditHTML     = "audit.html"
)

// runCmd consolidates the workbook and writes the output tables.
type runCmd struct {
	sourceFlags
	out    string
	format string
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "consolidate the workbook into the metadata and measures tables" }
func (*runCmd) Usage() string {
	return `pec run [-data <workbook>] [-out <dir>] [-format csv|xlsx]

  Consolidate the Assets, Files and NAV sheets of the workbook into the
  metadata and measures tables, audit the commitments and write the
  tables with the audit report to the output directory, and to S3 when
  a bucket is configured.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	c.sourceFlags.SetFlags(f)
	f.StringVar(&c.out, "out", "", "Output directory. Overrides output_dir.")
	f.StringVar(&c.format, "format", "", "Output format (csv, xlsx). Overrides format.")
}

func (c *runCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := c.loadConfig()
	if err == nil {
		cfg, err = c.override(cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return execute(ctx, func(ctx context.Context) error { return c.run(ctx, cfg) })
}

func (c *runCmd) override(cfg config.Config) (config.Config, error) {
	if c.out != "" {
		cfg.OutputDir = c.out
	}
	if c.format != "" {
		cfg.Format = c.format
	}
	return cfg, cfg.Validate()
}

func (c *runCmd) run(ctx context.Context, cfg config.Config) error {
	runID := uuid.NewString()
	logger := slog.With("run", runID)

	res, err := consolidate(cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("source workbook %q not found: %w", cfg.DataPath, err)
	}
	if err != nil {
		return err
	}
	logAudit(logger, res.Audit)

	files, err := sink.Encode(cfg.Format, res.Metadata, res.Measures)
	if err != nil {
		return err
	}
	report, err := renderer.RenderAudit(renderer.NewAudit(runID, date.Today().String(), res))
	if err != nil {
		return err
	}
	html, err := renderer.HTML(report)
	if err != nil {
		return err
	}
	files = append(files,
		sink.File{Name: AuditMarkdown, ContentType: sink.ContentTypeMarkdown, Data: []byte(report)},
		sink.File{Name: AuditHTML, ContentType: sink.ContentTypeHTML, Data: html},
	)

	dests := []sink.Destination{sink.Dir(cfg.OutputDir)}
	if cfg.S3.Enabled() {
		s3, err := sink.NewS3(ctx, cfg.S3, path.Join(cfg.S3.Prefix, runID))
		if err != nil {
			return err
		}
		dests = append(dests, s3)
		logger.Info("uploading to S3", "bucket", cfg.S3.Bucket, "prefix", s3.Key(""))
	}
	if err := sink.Write(ctx, files, dests...); err != nil {
		return err
	}

	if cfg.MetricsFile != "" {
		m := metrics.NewRun()
		m.Observe(res)
		if err := m.WriteFile(cfg.MetricsFile); err != nil {
			logger.Warn("cannot write metrics", "error", err)
		}
	}

	logger.Info("done",
		"metadata", len(res.Metadata.Rows),
		"measures", len(res.Measures.Rows),
		"status", res.Audit.Status,
		"output", cfg.OutputDir,
	)
	fmt.Printf("Done. Wrote metadata (%d deals) and measures (%d records) to %s\n", len(res.Metadata.Rows), len(res.Measures.Rows), cfg.OutputDir)
	return nil
}
