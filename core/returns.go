package core

import (
	"github.com/guregu/null/v6"
	"gonum.org/v1/gonum/stat"

	m "github.com/gahoccode/VNQuantStockAnalyzer/models"
)

const (
	// TradingDaysPerYear is the annualization convention for daily series.
	TradingDaysPerYear = 252

	weeklyLookback  = 5
	monthlyLookback = 21
)

// CalculateReturns derives summary return statistics from an adjusted-price
// series. All performance math must run on adjusted prices; the caller owns
// that guarantee. Returns nil when fewer than 2 observations exist.
//
// Weekly and Monthly use fixed 5- and 21-observation lookbacks and stay
// null when the series is shorter than the lookback; DailyAvg and Total are
// always set. All values are percentages.
func CalculateReturns(prices m.Series) *m.ReturnMetrics {
	n := prices.Len()
	if n < 2 {
		return nil
	}

	prices = prices.Sorted()
	daily := prices.PctChange()

	res := &m.ReturnMetrics{
		DailyAvg: stat.Mean(daily.Values, nil) * 100,
		Total:    (prices.Values[n-1]/prices.Values[0] - 1) * 100,
	}

	if n >= weeklyLookback {
		res.Weekly = null.FloatFrom((prices.Values[n-1]/prices.Values[n-weeklyLookback] - 1) * 100)
	}
	if n >= monthlyLookback {
		res.Monthly = null.FloatFrom((prices.Values[n-1]/prices.Values[n-monthlyLookback] - 1) * 100)
	}

	return res
}
