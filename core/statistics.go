package core

import (
	"fmt"

	"github.com/rs/zerolog"

	m "github.com/gahoccode/VNQuantStockAnalyzer/models"
)

// Analyzer orchestrates the calculators over a dataset. It holds no state
// beyond its collaborators, so one instance is safe for concurrent use.
type Analyzer struct {
	resolver m.ColumnResolver
	log      zerolog.Logger
}

func NewAnalyzer(resolver m.ColumnResolver, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		resolver: resolver,
		log:      log.With().Str("component", "analyzer").Logger(),
	}
}

// SymbolStatistics resolves a symbol's price columns and merges the four
// headline fields from the return and risk calculators. Returns (nil, nil)
// when the symbol has no adjusted series or fewer than 2 points. Lookup
// failures are logged and propagated, not masked.
func (a *Analyzer) SymbolStatistics(ds *m.Dataset, symbol string, style m.TableStyle) (*m.SymbolStatistics, error) {
	_, adjusted, err := a.resolver.ResolveColumns(ds, symbol, style)
	if err != nil {
		a.log.Error().Str("symbol", symbol).Err(err).Msg("failed to resolve price columns")
		return nil, fmt.Errorf("resolving price columns for %s: %w", symbol, err)
	}

	if adjusted == nil || adjusted.Len() < 2 {
		return nil, nil
	}

	returns := CalculateReturns(*adjusted)
	risk := CalculateRiskMetrics(*adjusted)

	// Weekly, monthly and downside deviation stay internal at this level.
	return &m.SymbolStatistics{
		Symbol:      symbol,
		DailyReturn: returns.DailyAvg,
		TotalReturn: returns.Total,
		Volatility:  risk.Volatility,
		MaxDrawdown: risk.MaxDrawdown,
	}, nil
}
