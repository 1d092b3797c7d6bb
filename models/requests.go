package models

// PortfolioRequest is the payload for a portfolio performance run: the
// symbols to combine, optional raw weights (rescaled to sum to 1), and the
// table style of the underlying dataset.
type PortfolioRequest struct {
	Symbols []string           `json:"symbols"`
	Weights map[string]float64 `json:"weights,omitempty"`
	Style   string             `json:"style,omitempty"`
}
