package core

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	ex "github.com/gahoccode/VNQuantStockAnalyzer/extensions"
	m "github.com/gahoccode/VNQuantStockAnalyzer/models"
)

// PortfolioPerformance combines the symbols' daily returns into a single
// weighted portfolio return series and derives its metrics plus the
// base-100 cumulative value series for charting.
//
// Weights default to equal when nil, otherwise they are rescaled by their
// sum; a non-positive total is a caller error. Symbols whose adjusted
// series cannot be resolved are excluded; (nil, nil) is returned when no
// symbols remain (or none were given).
//
// The portfolio series runs over the first resolved symbol's return index
// with positional alignment, so callers must supply series sharing a
// common trading-date index.
func (a *Analyzer) PortfolioPerformance(ctx context.Context, ds *m.Dataset, symbols []string, style m.TableStyle, weights map[string]float64) (*m.PortfolioPerformance, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	weights, err := normalizeWeights(symbols, weights)
	if err != nil {
		return nil, err
	}

	// Resolution per symbol is independent until the weighted sum, so the
	// lookups run concurrently. Results land in per-index slots to keep the
	// first-symbol index selection deterministic.
	resolved := make([]*m.Series, len(symbols))
	g, gctx := errgroup.WithContext(ctx)
	for i, symbol := range symbols {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			_, adjusted, err := a.resolver.ResolveColumns(ds, symbol, style)
			if err != nil || adjusted == nil {
				a.log.Debug().Str("symbol", symbol).Err(err).Msg("no adjusted series, excluding symbol from portfolio")
				return nil
			}
			resolved[i] = adjusted
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	type component struct {
		weight  float64
		returns m.Series
	}
	var components []component
	for i, symbol := range symbols {
		if resolved[i] == nil {
			continue
		}
		components = append(components, component{
			weight:  weights[symbol],
			returns: resolved[i].Sorted().PctChange(),
		})
	}
	if len(components) == 0 {
		return nil, nil
	}

	index := components[0].returns
	portfolio := make([]float64, index.Len())
	for _, c := range components {
		for j := 0; j < len(portfolio) && j < c.returns.Len(); j++ {
			portfolio[j] += c.returns.Values[j] * c.weight
		}
	}

	avgDaily := stat.Mean(portfolio, nil) * 100
	volatility := stat.StdDev(portfolio, nil) * 100 * math.Sqrt(TradingDaysPerYear)

	totalReturn := 1.0
	values := make([]float64, len(portfolio))
	for j, r := range portfolio {
		totalReturn *= 1 + r
		values[j] = totalReturn * 100
	}

	sharpe := 0.0
	if volatility > 0 {
		sharpe = (avgDaily * TradingDaysPerYear) / volatility
	}

	return &m.PortfolioPerformance{
		DailyAvgReturn: avgDaily,
		TotalReturn:    (totalReturn - 1) * 100,
		Volatility:     volatility,
		SharpeRatio:    sharpe,
		Dates:          index.Dates,
		Values:         values,
	}, nil
}

// normalizeWeights rescales the supplied weights to sum to 1, or assigns
// equal weights when none are given. The caller's map is never mutated.
func normalizeWeights(symbols []string, weights map[string]float64) (map[string]float64, error) {
	res := make(map[string]float64, len(symbols))

	if weights == nil {
		for _, symbol := range symbols {
			res[symbol] = 1.0 / float64(len(symbols))
		}
		return res, nil
	}

	raw := make([]float64, 0, len(weights))
	for _, w := range weights {
		raw = append(raw, w)
	}
	total := ex.Sum(raw)
	if total <= 0 {
		return nil, fmt.Errorf("total portfolio weight must be positive, got %f", total)
	}

	for symbol, w := range weights {
		res[symbol] = w / total
	}
	return res, nil
}
