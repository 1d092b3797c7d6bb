package repos

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/jackc/pgx/v5"

	m "github.com/gahoccode/VNQuantStockAnalyzer/models"
)

func (pg *Postgres) GetEODBars(ctx context.Context, symbol string) ([]*m.EODBar, error) {
	query := `
		SELECT
			symbol,
			"timestamp",
			"open",
			high,
			low,
			"close",
			adjusted_close,
			volume
		FROM eod_bars
		WHERE symbol = @symbol
		ORDER BY "timestamp" ASC`

	args := pgx.NamedArgs{
		"symbol": symbol,
	}

	res, err := Query[m.EODBar](ctx, pg, query, args)
	if err != nil {
		return nil, fmt.Errorf("unable to query bars by symbol (%s): %w", symbol, err)
	}
	return res, nil
}

func (pg *Postgres) InsertEODBars(ctx context.Context, bars []*m.EODBar) (int64, error) {
	columns := []string{
		"symbol", "timestamp", "open", "high", "low",
		"close", "adjusted_close", "volume",
	}

	entries := make([][]any, len(bars))
	for i, bar := range bars {
		entries[i] = []any{
			bar.Symbol, bar.Timestamp, bar.Open, bar.High, bar.Low,
			bar.Close, bar.AdjustedClose, bar.Volume,
		}
	}

	return pg.db.CopyFrom(ctx, pgx.Identifier{"eod_bars"}, columns, pgx.CopyFromRows(entries))
}

func (pg *Postgres) DeleteEODBars(ctx context.Context, symbol string) error {
	args := pgx.NamedArgs{"symbol": symbol}
	if _, err := pg.db.Exec(ctx, "DELETE FROM eod_bars WHERE symbol = @symbol", args); err != nil {
		return fmt.Errorf("unable to delete bars for symbol (%s): %w", symbol, err)
	}
	return nil
}

// BuildDataset assembles an in-memory dataset from the stored bars of the
// given symbols, with columns named per the table style. Symbols with no
// stored bars simply contribute no columns; the caller decides whether the
// resulting dataset is still usable.
func (pg *Postgres) BuildDataset(ctx context.Context, symbols []string, style m.TableStyle) (*m.Dataset, error) {
	bars := make(map[string][]*m.EODBar, len(symbols))
	for _, symbol := range symbols {
		rows, err := pg.GetEODBars(ctx, symbol)
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 {
			bars[symbol] = rows
		}
	}

	return buildDatasetFromBars(bars, style), nil
}

// buildDatasetFromBars merges per-symbol bars over the union of their
// trading dates. Dates a symbol did not trade are stored as NaN so the
// shared index stays rectangular; a bar with a null adjusted close leaves
// a NaN gap in the adjusted column the same way.
func buildDatasetFromBars(bars map[string][]*m.EODBar, style m.TableStyle) *m.Dataset {
	seen := make(map[time.Time]bool)
	var dates []time.Time
	for _, rows := range bars {
		for _, bar := range rows {
			if !seen[bar.Timestamp] {
				seen[bar.Timestamp] = true
				dates = append(dates, bar.Timestamp)
			}
		}
	}
	slices.SortFunc(dates, func(a, b time.Time) int { return a.Compare(b) })

	position := make(map[time.Time]int, len(dates))
	for i, d := range dates {
		position[d] = i
	}

	ds := &m.Dataset{
		Dates:   dates,
		Columns: make(map[string][]float64, 2*len(bars)),
	}

	for symbol, rows := range bars {
		closeCol := nanColumn(len(dates))
		adjustedCol := nanColumn(len(dates))
		hasAdjusted := false

		for _, bar := range rows {
			i := position[bar.Timestamp]
			closeCol[i] = bar.Close
			if bar.AdjustedClose.Valid {
				adjustedCol[i] = bar.AdjustedClose.Float64
				hasAdjusted = true
			}
		}

		ds.Columns[style.CloseColumn(symbol)] = closeCol
		if hasAdjusted {
			ds.Columns[style.AdjustedColumn(symbol)] = adjustedCol
		}
	}

	return ds
}

func nanColumn(n int) []float64 {
	col := make([]float64, n)
	for i := range col {
		col[i] = math.NaN()
	}
	return col
}
