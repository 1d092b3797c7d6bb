package models

import (
	"fmt"
	"sort"
	"time"
)

// Series is an ordered sequence of (timestamp, value) pairs for one symbol,
// stored as parallel slices. A series is value-like: calculations never
// mutate it, they work on a sorted copy when needed.
type Series struct {
	Dates  []time.Time
	Values []float64
}

func (s Series) Len() int {
	return len(s.Values)
}

// Latest returns the last value in the series. Callers must ensure the
// series is non-empty and sorted.
func (s Series) Latest() float64 {
	return s.Values[len(s.Values)-1]
}

// Validate checks that the parallel slices line up.
func (s Series) Validate() error {
	if len(s.Dates) != len(s.Values) {
		return fmt.Errorf("series has %d dates but %d values", len(s.Dates), len(s.Values))
	}
	return nil
}

func (s Series) isSorted() bool {
	for i := 1; i < len(s.Dates); i++ {
		if s.Dates[i].Before(s.Dates[i-1]) {
			return false
		}
	}
	return true
}

// Sorted returns the series in chronological order. The receiver is left
// untouched; a copy is only made when the input is out of order.
func (s Series) Sorted() Series {
	if s.isSorted() {
		return s
	}

	idx := make([]int, len(s.Dates))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return s.Dates[idx[a]].Before(s.Dates[idx[b]])
	})

	res := Series{
		Dates:  make([]time.Time, len(s.Dates)),
		Values: make([]float64, len(s.Values)),
	}
	for i, j := range idx {
		res.Dates[i] = s.Dates[j]
		res.Values[i] = s.Values[j]
	}
	return res
}

// PctChange derives the period-over-period fractional return series.
// The undefined first value is dropped, so the result is one shorter than
// the source and its dates start at the second observation.
func (s Series) PctChange() Series {
	if s.Len() < 2 {
		return Series{}
	}

	res := Series{
		Dates:  make([]time.Time, s.Len()-1),
		Values: make([]float64, s.Len()-1),
	}
	for i := 1; i < s.Len(); i++ {
		res.Dates[i-1] = s.Dates[i]
		res.Values[i-1] = s.Values[i]/s.Values[i-1] - 1
	}
	return res
}
