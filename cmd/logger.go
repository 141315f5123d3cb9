package cmd

import (
	"io"
	"log/slog"
	"strings"

	"github.com/etnz/pefolio"
)

// newLogger returns a text logger writing to w at the given level.
func newLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLogLevel(level)}))
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// logAudit logs the discrepancies of a run at warn level, or a single info
// line when there are none.
func logAudit(logger *slog.Logger, a pefolio.Audit) {
	mismatches := a.Mismatches()
	if len(mismatches) == 0 {
		logger.Info("Audit OK", "deals", len(a.Records), "tolerance", a.Tolerance.String())
		return
	}
	logger.Warn("commitment mismatch found", "deals", len(mismatches), "tolerance", a.Tolerance.String())
	for _, r := range mismatches {
		attrs := []any{
			"deal", r.Deal,
			"reported", r.Reported.String(),
			"delta", r.Delta.String(),
		}
		if r.NoEvents {
			attrs = append(attrs, "calculated", "none")
		} else {
			attrs = append(attrs, "calculated", r.Calculated.String())
		}
		logger.Warn("mismatch", attrs...)
	}
}

// logDiagnostics reports what the normalization dropped, and the currencies
// converted at 1.0.
func logDiagnostics(logger *slog.Logger, res *pefolio.Result) {
	d := res.Diagnostics
	if d.DroppedDeals > 0 {
		logger.Warn("asset rows without a deal name dropped", "rows", d.DroppedDeals)
	}
	if d.DroppedEvents > 0 {
		logger.Warn("event rows without a date or deal dropped", "rows", d.DroppedEvents)
	}
	if d.DefaultedAmounts > 0 {
		logger.Warn("unreadable amounts counted as 0", "cells", d.DefaultedAmounts)
	}
	logger.Debug("duplicate events removed", "events", d.DuplicateEvents)
	for _, c := range d.UnpricedCurrencies {
		if pefolio.KnownCurrency(c) {
			logger.Warn("no FX rate, converting at 1.0", "currency", c)
		} else {
			logger.Warn("unknown currency code, converting at 1.0", "currency", c)
		}
	}
}
