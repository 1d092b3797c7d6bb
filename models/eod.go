package models

import (
	"time"

	"github.com/guregu/null/v6"
)

// EODBar is one end-of-day price row as stored in postgres. AdjustedClose
// is nullable: some sources only backfill adjustments later, and a null
// adjusted close must keep the symbol out of performance math.
type EODBar struct {
	Symbol        string     `db:"symbol"`
	Timestamp     time.Time  `db:"timestamp"`
	Open          null.Float `db:"open"`
	High          null.Float `db:"high"`
	Low           null.Float `db:"low"`
	Close         float64    `db:"close"`
	AdjustedClose null.Float `db:"adjusted_close"`
	Volume        null.Float `db:"volume"`
}
