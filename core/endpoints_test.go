package core

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/gahoccode/VNQuantStockAnalyzer/models"
)

// stubStore serves one fixed dataset regardless of the requested symbols.
type stubStore struct {
	ds      *m.Dataset
	pingErr error
}

func (s stubStore) Ping(context.Context) error { return s.pingErr }

func (s stubStore) BuildDataset(context.Context, []string, m.TableStyle) (*m.Dataset, error) {
	return s.ds, nil
}

func testServer(t *testing.T, store PriceStore) http.Handler {
	t.Helper()
	resolver := m.DatasetResolver{}
	sc := ServiceContext{
		Context:  context.Background(),
		Store:    store,
		Resolver: resolver,
		Analyzer: NewAnalyzer(resolver, zerolog.Nop()),
		Log:      zerolog.Nop(),
	}
	return GetHttpServer(sc).Handler
}

func fixtureDataset() *m.Dataset {
	dates := make([]time.Time, 5)
	for i := range dates {
		dates[i] = time.Date(2024, time.March, 1+i, 0, 0, 0, 0, time.UTC)
	}
	return &m.Dataset{
		Dates: dates,
		Columns: map[string][]float64{
			"VNM_close":  {200, 204, 202, 210, 216},
			"VNM_adjust": {100, 102, 101, 105, 108},
			"FPT_close":  {80, 81, 82, 83, 84},
		},
	}
}

func TestPingEndpoint(t *testing.T) {
	handler := testServer(t, stubStore{ds: fixtureDataset()})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"pong"}`, rec.Body.String())
}

func TestSymbolStatisticsEndpoint(t *testing.T) {
	handler := testServer(t, stubStore{ds: fixtureDataset()})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/statistics/VNM", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var res m.SymbolStatistics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "VNM", res.Symbol)
	assert.InDelta(t, 8.0, res.TotalReturn, 1e-9)
	assert.Less(t, res.MaxDrawdown, 0.0)
	assert.Greater(t, res.Volatility, 0.0)
}

func TestSymbolStatisticsEndpointNoAdjusted(t *testing.T) {
	handler := testServer(t, stubStore{ds: fixtureDataset()})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/statistics/FPT", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSymbolStatisticsEndpointBadStyle(t *testing.T) {
	handler := testServer(t, stubStore{ds: fixtureDataset()})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/statistics/VNM?style=diagonal", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPriceStatisticsEndpoint(t *testing.T) {
	handler := testServer(t, stubStore{ds: fixtureDataset()})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/prices/VNM", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var res m.PriceStatistics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 216.0, res.Latest)
	assert.Equal(t, 216.0, res.Highest)
	assert.Equal(t, 200.0, res.Lowest)
	assert.True(t, res.LatestAdjusted.Valid)
	assert.Equal(t, 108.0, res.LatestAdjusted.Float64)
}

func TestPortfolioEndpoint(t *testing.T) {
	handler := testServer(t, stubStore{ds: fixtureDataset()})

	body, _ := json.Marshal(m.PortfolioRequest{Symbols: []string{"VNM"}})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/portfolio", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)

	var res m.PortfolioPerformance
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Len(t, res.Values, 4)
	assert.InDelta(t, 8.0, res.Values[len(res.Values)-1]-100, 1e-9)
}

func TestPortfolioEndpointNoSymbols(t *testing.T) {
	handler := testServer(t, stubStore{ds: fixtureDataset()})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/portfolio", bytes.NewBufferString(`{"symbols":[]}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPortfolioEndpointDegenerateWeights(t *testing.T) {
	handler := testServer(t, stubStore{ds: fixtureDataset()})

	body, _ := json.Marshal(m.PortfolioRequest{
		Symbols: []string{"VNM"},
		Weights: map[string]float64{"VNM": 0},
	})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/portfolio", bytes.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPortfolioEndpointNoAdjustedHistory(t *testing.T) {
	handler := testServer(t, stubStore{ds: fixtureDataset()})

	body, _ := json.Marshal(m.PortfolioRequest{Symbols: []string{"FPT"}})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/portfolio", bytes.NewReader(body)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPingEndpointStoreDown(t *testing.T) {
	handler := testServer(t, stubStore{ds: fixtureDataset(), pingErr: context.DeadlineExceeded})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
