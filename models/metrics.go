package models

import (
	"time"

	"github.com/guregu/null/v6"
)

// ReturnMetrics are the summary return statistics for one symbol, in
// percentage units. Weekly and Monthly are null when the series is too
// short for their lookback; the rest are always set once a record exists.
type ReturnMetrics struct {
	DailyAvg float64    `json:"dailyAvg"`
	Weekly   null.Float `json:"weekly"`
	Monthly  null.Float `json:"monthly"`
	Total    float64    `json:"total"`
}

// RiskMetrics are annualized risk statistics for one symbol, in
// percentage units. MaxDrawdown is zero or negative.
type RiskMetrics struct {
	Volatility        float64 `json:"volatility"`
	DownsideDeviation float64 `json:"downsideDeviation"`
	MaxDrawdown       float64 `json:"maxDrawdown"`
}

// PriceStatistics are descriptive statistics over raw close prices.
// LatestAdjusted is only set when an adjusted series was supplied.
type PriceStatistics struct {
	Latest         float64    `json:"latestPrice"`
	Highest        float64    `json:"highestPrice"`
	Lowest         float64    `json:"lowestPrice"`
	Average        float64    `json:"averagePrice"`
	LatestAdjusted null.Float `json:"latestAdjustedPrice"`
}

// SymbolStatistics is the curated per-symbol summary: the four headline
// fields merged from the return and risk calculators.
type SymbolStatistics struct {
	Symbol      string  `json:"symbol"`
	DailyReturn float64 `json:"dailyReturn"`
	TotalReturn float64 `json:"totalReturn"`
	Volatility  float64 `json:"volatility"`
	MaxDrawdown float64 `json:"maxDrawdown"`
}

// PortfolioPerformance holds portfolio-level metrics plus the cumulative
// indexed value series (base 100) for charting. Dates and Values are
// parallel and aligned to the portfolio return index.
type PortfolioPerformance struct {
	DailyAvgReturn float64 `json:"dailyAvgReturn"`
	TotalReturn    float64 `json:"totalReturn"`
	Volatility     float64 `json:"volatilityAnnual"`
	SharpeRatio    float64 `json:"sharpeRatio"`

	Dates  []time.Time `json:"dates"`
	Values []float64   `json:"values"`
}
