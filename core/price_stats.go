package core

import (
	"github.com/guregu/null/v6"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	m "github.com/gahoccode/VNQuantStockAnalyzer/models"
)

// CalculatePriceStatistics derives descriptive statistics from raw close
// prices, independent of the return/risk pipeline. The raw series must be
// non-empty; calling with an empty series is a caller error and panics.
// When an adjusted series is supplied its latest value is reported too.
func CalculatePriceStatistics(raw m.Series, adjusted *m.Series) m.PriceStatistics {
	stats := m.PriceStatistics{
		Latest:  raw.Latest(),
		Highest: floats.Max(raw.Values),
		Lowest:  floats.Min(raw.Values),
		Average: stat.Mean(raw.Values, nil),
	}

	if adjusted != nil && adjusted.Len() > 0 {
		stats.LatestAdjusted = null.FloatFrom(adjusted.Latest())
	}

	return stats
}
