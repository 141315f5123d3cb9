package pefolio

import (
	"testing"
	"time"

	"github.com/etnz/pefolio/date"
)

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		input         string
		want          string
		wantDefaulted bool
	}{
		{input: "$1,234.50", want: "1234.50"},
		{input: "  1,000 ", want: "1000"},
		{input: "0", want: "0"},
		{input: "-25", want: "-25"},
		{input: "$ 12", want: "12"},
		{input: "nan", want: "0", wantDefaulted: true},
		{input: "", want: "0", wantDefaulted: true},
		{input: "n/a", want: "0", wantDefaulted: true},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, defaulted := ParseAmount(tc.input)
			if !got.Equal(dec(tc.want)) {
				t.Errorf("ParseAmount(%q) = %v, want %v", tc.input, got, tc.want)
			}
			if defaulted != tc.wantDefaulted {
				t.Errorf("ParseAmount(%q) defaulted = %v, want %v", tc.input, defaulted, tc.wantDefaulted)
			}
		})
	}
}

func TestNormalizeName(t *testing.T) {
	testCases := []struct{ input, want string }{
		{"  Alpha Fund ", "ALPHA FUND"},
		{"nan", ""},
		{"None", ""},
		{"", ""},
	}
	for _, tc := range testCases {
		if got := NormalizeName(tc.input); got != tc.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestNormalizeCurrency(t *testing.T) {
	testCases := []struct{ input, want string }{
		{" eur ", "EUR"},
		{"USD", "USD"},
		{"", "USD"},
		{"nan", "USD"},
	}
	for _, tc := range testCases {
		if got := NormalizeCurrency(tc.input); got != tc.want {
			t.Errorf("NormalizeCurrency(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestParseEventDate(t *testing.T) {
	on, ok := ParseEventDate("2021-03-04 00:00:00")
	if !ok || on != date.New(2021, time.March, 4) {
		t.Errorf("ParseEventDate() = %v, %v, want 2021-03-04, true", on, ok)
	}
	if _, ok := ParseEventDate("pending"); ok {
		t.Errorf("ParseEventDate(%q) ok = true, want false", "pending")
	}
}
