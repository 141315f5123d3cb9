package date

import (
	"iter"
	"slices"

	"github.com/shopspring/decimal"
)

// History stores a chronological series of amounts, one per day.
// Days are unique and always sorted.
type History struct {
	days   []Date
	values []decimal.Decimal
}

// Len returns the number of days in the history.
func (h *History) Len() int { return len(h.days) }

// First returns the earliest day and its amount, or zero values when empty.
func (h *History) First() (Date, decimal.Decimal) {
	if len(h.days) == 0 {
		return Date{}, decimal.Zero
	}
	return h.days[0], h.values[0]
}

// Latest returns the latest day and its amount, or zero values when empty.
func (h *History) Latest() (Date, decimal.Decimal) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, decimal.Zero
	}
	return h.days[last], h.values[last]
}

// AppendAdd adds q to the amount of day on.
func (h *History) AppendAdd(on Date, q decimal.Decimal) *History {
	i, found := slices.BinarySearchFunc(h.days, on, Date.Compare)
	if found {
		h.values[i] = h.values[i].Add(q)
		return h
	}
	h.days = slices.Insert(h.days, i, on)
	h.values = slices.Insert(h.values, i, q)
	return h
}

// Values returns an iterator over all day/amount pairs in chronological order.
func (h *History) Values() iter.Seq2[Date, decimal.Decimal] {
	return func(yield func(Date, decimal.Decimal) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}
