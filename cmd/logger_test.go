package cmd

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/etnz/pefolio"
	"github.com/shopspring/decimal"
)

func TestParseLogLevel(t *testing.T) {
	testCases := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}
	for _, tc := range testCases {
		if got := parseLogLevel(tc.input); got != tc.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestLogAudit(t *testing.T) {
	audit := pefolio.Audit{
		Tolerance: decimal.NewFromInt(10),
		Status:    pefolio.AuditMismatch,
		Records: []pefolio.AuditRecord{
			{Deal: "BETA", Reported: decimal.NewFromInt(50), NoEvents: true, Delta: decimal.NewFromInt(50)},
			{Deal: "ALPHA", Reported: decimal.NewFromInt(300), Calculated: decimal.NewFromInt(300)},
		},
	}
	var buf bytes.Buffer
	logAudit(newLogger(&buf, "info"), audit)

	got := buf.String()
	if !strings.Contains(got, "level=WARN") || !strings.Contains(got, "deal=BETA") || !strings.Contains(got, "calculated=none") {
		t.Errorf("logAudit() did not warn about BETA:\n%s", got)
	}
	if strings.Contains(got, "deal=ALPHA") {
		t.Errorf("logAudit() reported a deal within tolerance:\n%s", got)
	}

	buf.Reset()
	logAudit(newLogger(&buf, "info"), pefolio.Audit{Tolerance: decimal.NewFromInt(10), Status: pefolio.AuditOK})
	if !strings.Contains(buf.String(), "Audit OK") {
		t.Errorf("logAudit() = %q, want Audit OK", buf.String())
	}
}
