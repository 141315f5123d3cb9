package date

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAppendAdd(t *testing.T) {
	h := new(History)
	d1, d2 := New(2025, 07, 01), New(2024, 07, 01)

	// Appending in reverse order, and twice on d1.
	if h.Len() != 0 {
		t.Errorf("History.Len() = %v want 0", h.Len())
	}
	h.AppendAdd(d1, decimal.NewFromInt(10))
	h.AppendAdd(d2, decimal.NewFromInt(5))
	h.AppendAdd(d1, decimal.NewFromInt(-3))

	if h.Len() != 2 {
		t.Errorf("History.Len() = %v want 2", h.Len())
	}
	if day, v := h.First(); day != d2 || !v.Equal(decimal.NewFromInt(5)) {
		t.Errorf("First() = %v, %v want %v, 5", day, v, d2)
	}
	if day, v := h.Latest(); day != d1 || !v.Equal(decimal.NewFromInt(7)) {
		t.Errorf("Latest() = %v, %v want %v, 7", day, v, d1)
	}

	var days []Date
	for day := range h.Values() {
		days = append(days, day)
	}
	if len(days) != 2 || days[0] != d2 || days[1] != d1 {
		t.Errorf("Values() days = %v want [%v %v]", days, d2, d1)
	}
}

func TestHistory_Empty(t *testing.T) {
	var h History
	if day, v := h.Latest(); !day.IsZero() || !v.IsZero() {
		t.Errorf("Latest() = %v, %v want zero values", day, v)
	}
}
