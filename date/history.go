package date

import (
	"iter"
	"slices"
)

// History stores a series of values, each associated with a unique date.
//
// Points can be added in any order; the series is sorted chronologically
// the first time it is read.
type History[T int64 | float64] struct {
	days   []Date
	values []T
	index  map[Date]int
	sorted bool
}

// Len returns the number of items in the history.
func (h *History[T]) Len() int { return len(h.days) }

// AppendAdd adds q to the value at a date, creating it if needed.
func (h *History[T]) AppendAdd(on Date, q T) *History[T] {
	if i, ok := h.lookup(on); ok {
		h.values[i] += q
		return h
	}
	h.insert(on, q)
	return h
}

func (h *History[T]) lookup(on Date) (int, bool) {
	if h.index == nil {
		return 0, false
	}
	i, ok := h.index[on]
	return i, ok
}

func (h *History[T]) insert(on Date, q T) {
	if h.index == nil {
		h.index = make(map[Date]int)
	}
	if n := len(h.days); n > 0 && !h.days[n-1].Before(on) {
		h.sorted = false
	}
	h.index[on] = len(h.days)
	h.days, h.values = append(h.days, on), append(h.values, q)
}

// sort sorts the history in chronological order and rebuilds the index.
func (h *History[T]) sort() {
	if h.sorted {
		return
	}
	order := make([]int, len(h.days))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int { return h.days[a].Compare(h.days[b]) })

	days := make([]Date, len(order))
	values := make([]T, len(order))
	for i, j := range order {
		days[i], values[i] = h.days[j], h.values[j]
		h.index[days[i]] = i
	}
	h.days, h.values = days, values
	h.sorted = true
}

// Values returns an iterator over all date/value pairs in the history, in chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	h.sort()
	return func(yield func(Date, T) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}
