package core

import (
	"context"

	"github.com/rs/zerolog"

	m "github.com/gahoccode/VNQuantStockAnalyzer/models"
)

// PriceStore provides the stored price history behind the HTTP surface.
// *repos.Postgres satisfies it; tests substitute an in-memory stub.
type PriceStore interface {
	Ping(ctx context.Context) error
	BuildDataset(ctx context.Context, symbols []string, style m.TableStyle) (*m.Dataset, error)
}

type ServiceContext struct {
	Context  context.Context
	Store    PriceStore
	Resolver m.ColumnResolver
	Analyzer *Analyzer
	Log      zerolog.Logger
}
