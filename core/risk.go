package core

import (
	"math"

	"gonum.org/v1/gonum/stat"

	ex "github.com/gahoccode/VNQuantStockAnalyzer/extensions"
	m "github.com/gahoccode/VNQuantStockAnalyzer/models"
)

// CalculateRiskMetrics derives annualized volatility, downside deviation
// and maximum drawdown from an adjusted-price series. Returns nil when
// fewer than 2 observations exist.
func CalculateRiskMetrics(prices m.Series) *m.RiskMetrics {
	if prices.Len() < 2 {
		return nil
	}

	prices = prices.Sorted()
	daily := prices.PctChange().Values

	annualize := math.Sqrt(TradingDaysPerYear)
	volatility := stat.StdDev(daily, nil) * 100 * annualize

	// Zero is a valid risk reading here: no losing days means no downside.
	downside := ex.FilterMultiple(daily, func(r float64) bool { return r < 0 })
	downsideDeviation := 0.0
	if len(downside) > 0 {
		downsideDeviation = stat.StdDev(downside, nil) * 100 * annualize
	}

	return &m.RiskMetrics{
		Volatility:        volatility,
		DownsideDeviation: downsideDeviation,
		MaxDrawdown:       maxDrawdown(daily),
	}
}

// maxDrawdown walks the cumulative compounded return series, tracks its
// running peak and returns the most negative percentage decline from that
// peak. A flat or rising series yields 0.
func maxDrawdown(daily []float64) float64 {
	cumulative := 1.0
	peak := math.Inf(-1)
	res := 0.0

	for _, r := range daily {
		cumulative *= 1 + r
		if cumulative > peak {
			peak = cumulative
		}

		drawdown := (cumulative/peak - 1) * 100
		if drawdown < res {
			res = drawdown
		}
	}

	return res
}
