// Package cmd implements the pec command line application.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/etnz/pefolio"
	"github.com/etnz/pefolio/config"
	"github.com/etnz/pefolio/renderer"
	"github.com/etnz/pefolio/xlsx"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&runCmd{}, "consolidation")
	c.Register(&auditCmd{}, "consolidation")
	c.Register(&describeCmd{}, "consolidation")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the configuration file (json, toml or yaml). Defaults to "+config.DefaultFile+" when present.")
var envFile = flag.String("env-file", ".env", "Path to a .env file loaded before reading the PEC_* variables")
var logLevel = flag.String("log-level", "", "Overrides the configured log level (debug, info, warn, error)")

// sourceFlags are the flags shared by the commands reading the workbook.
type sourceFlags struct {
	data string
}

func (s *sourceFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&s.data, "data", "", "Path to the source workbook. Overrides data_path.")
}

// loadConfig loads the configuration, applies the command line overrides
// and installs the logger.
func (s *sourceFlags) loadConfig() (config.Config, error) {
	cfg, err := config.Load(*configFile, *envFile)
	if err != nil {
		return config.Config{}, err
	}
	if s.data != "" {
		cfg.DataPath = s.data
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	slog.SetDefault(newLogger(os.Stderr, cfg.LogLevel))
	return cfg, nil
}

// consolidate reads the source workbook and runs the pipeline on it.
func consolidate(cfg config.Config) (*pefolio.Result, error) {
	wb, err := xlsx.Open(cfg.DataPath)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	slog.Info("loading workbook", "path", cfg.DataPath, "sheets", wb.SheetNames())
	sheets, err := pefolio.LoadSheets(wb)
	if err != nil {
		return nil, err
	}
	slog.Debug("sheets loaded", "assets", len(sheets.Assets.Records), "files", len(sheets.Files.Records), "nav", len(sheets.NAV.Records))

	res := pefolio.Run(pefolio.NewRunConfig(cfg.FXRates, cfg.Tolerance), sheets)
	logDiagnostics(slog.Default(), res)
	return res, nil
}

// execute runs a command body, reporting its error on stderr.
func execute(ctx context.Context, body func(context.Context) error) subcommands.ExitStatus {
	if err := body(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// terminalWidth is the word wrap used for markdown printed on stdout.
const terminalWidth = 100

func printMarkdown(md string) {
	out, err := renderer.Terminal(md, "", terminalWidth)
	if err != nil {
		slog.Warn("cannot render markdown", "error", err)
		out = md
	}
	fmt.Print(out)
}
