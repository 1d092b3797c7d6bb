package models

import (
	"fmt"
	"math"
	"time"
)

// TableStyle describes how a symbol's price columns are named in a dataset.
type TableStyle uint8

const (
	StylePrefix TableStyle = iota
	StyleSuffix
)

const (
	closeField    = "close"
	adjustedField = "adjust"
)

func (ts TableStyle) Name() string {
	switch ts {
	case StylePrefix:
		return "prefix"
	case StyleSuffix:
		return "suffix"
	default:
		return ""
	}
}

func ParseTableStyle(s string) (TableStyle, error) {
	switch s {
	case "prefix", "":
		return StylePrefix, nil
	case "suffix":
		return StyleSuffix, nil
	default:
		return 0, fmt.Errorf("unknown table style %q", s)
	}
}

// ColumnName builds the dataset column name for a symbol and field,
// e.g. "VNM_close" (prefix) or "close_VNM" (suffix).
func (ts TableStyle) ColumnName(symbol, field string) string {
	if ts == StyleSuffix {
		return field + "_" + symbol
	}
	return symbol + "_" + field
}

// CloseColumn names the raw close column for a symbol.
func (ts TableStyle) CloseColumn(symbol string) string {
	return ts.ColumnName(symbol, closeField)
}

// AdjustedColumn names the adjusted close column for a symbol.
func (ts TableStyle) AdjustedColumn(symbol string) string {
	return ts.ColumnName(symbol, adjustedField)
}

// Dataset is an in-memory table of price history: one shared date index and
// one float column per (symbol, field) pair. Gaps are stored as NaN so
// symbols with divergent trading calendars can share the index.
type Dataset struct {
	Dates   []time.Time
	Columns map[string][]float64
}

// Column extracts a named column as a Series, skipping NaN gaps. The second
// return is false when the column does not exist.
func (ds *Dataset) Column(name string) (Series, bool) {
	col, ok := ds.Columns[name]
	if !ok {
		return Series{}, false
	}

	res := Series{
		Dates:  make([]time.Time, 0, len(col)),
		Values: make([]float64, 0, len(col)),
	}
	for i, v := range col {
		if math.IsNaN(v) {
			continue
		}
		res.Dates = append(res.Dates, ds.Dates[i])
		res.Values = append(res.Values, v)
	}
	return res, true
}

// ColumnResolver locates a symbol's close and adjusted-close series in a
// dataset. Implementations return the raw series, the adjusted series or
// nil when the symbol has no adjusted data, and an error only for lookups
// that failed outright (e.g. the symbol is not in the dataset at all).
type ColumnResolver interface {
	ResolveColumns(ds *Dataset, symbol string, style TableStyle) (raw Series, adjusted *Series, err error)
}

// DatasetResolver is the default ColumnResolver over an in-memory Dataset.
type DatasetResolver struct{}

func (DatasetResolver) ResolveColumns(ds *Dataset, symbol string, style TableStyle) (Series, *Series, error) {
	if ds == nil {
		return Series{}, nil, fmt.Errorf("dataset is nil")
	}

	raw, ok := ds.Column(style.CloseColumn(symbol))
	if !ok {
		return Series{}, nil, fmt.Errorf("no close column for symbol %s (style %s)", symbol, style.Name())
	}

	adjusted, ok := ds.Column(style.AdjustedColumn(symbol))
	if !ok || adjusted.Len() == 0 {
		return raw, nil, nil
	}
	return raw, &adjusted, nil
}
