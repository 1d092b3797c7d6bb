package core

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	m "github.com/gahoccode/VNQuantStockAnalyzer/models"
)

const (
	DefaultAddr = ":8080"
)

func GetHttpServer(sc ServiceContext) *http.Server {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) { ping(w, r, sc) })
	router.Get("/api/prices/{symbol}", func(w http.ResponseWriter, r *http.Request) { priceStatistics(w, r, sc) })
	router.Get("/api/statistics/{symbol}", func(w http.ResponseWriter, r *http.Request) { symbolStatistics(w, r, sc) })
	router.Post("/api/portfolio", func(w http.ResponseWriter, r *http.Request) { portfolioPerformance(w, r, sc) })

	server := &http.Server{
		Addr:           DefaultAddr,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return server
}

func ping(w http.ResponseWriter, r *http.Request, sc ServiceContext) {
	if err := sc.Store.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "price store unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "pong"})
}

func symbolStatistics(w http.ResponseWriter, r *http.Request, sc ServiceContext) {
	symbol := chi.URLParam(r, "symbol")
	style, err := m.ParseTableStyle(r.URL.Query().Get("style"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ds, err := sc.Store.BuildDataset(r.Context(), []string{symbol}, style)
	if err != nil {
		sc.Log.Error().Str("symbol", symbol).Err(err).Msg("failed to build dataset")
		writeError(w, http.StatusInternalServerError, "failed to load price history")
		return
	}

	stats, err := sc.Analyzer.SymbolStatistics(ds, symbol, style)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if stats == nil {
		writeError(w, http.StatusNotFound, "insufficient adjusted price history for "+symbol)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func priceStatistics(w http.ResponseWriter, r *http.Request, sc ServiceContext) {
	symbol := chi.URLParam(r, "symbol")
	style, err := m.ParseTableStyle(r.URL.Query().Get("style"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ds, err := sc.Store.BuildDataset(r.Context(), []string{symbol}, style)
	if err != nil {
		sc.Log.Error().Str("symbol", symbol).Err(err).Msg("failed to build dataset")
		writeError(w, http.StatusInternalServerError, "failed to load price history")
		return
	}

	raw, adjusted, err := sc.Resolver.ResolveColumns(ds, symbol, style)
	if err != nil || raw.Len() == 0 {
		writeError(w, http.StatusNotFound, "no price history for "+symbol)
		return
	}

	writeJSON(w, http.StatusOK, CalculatePriceStatistics(raw, adjusted))
}

func portfolioPerformance(w http.ResponseWriter, r *http.Request, sc ServiceContext) {
	var req m.PortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	style, err := m.ParseTableStyle(req.Style)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Symbols) == 0 {
		writeError(w, http.StatusBadRequest, "at least one symbol is required")
		return
	}

	ds, err := sc.Store.BuildDataset(r.Context(), req.Symbols, style)
	if err != nil {
		sc.Log.Error().Strs("symbols", req.Symbols).Err(err).Msg("failed to build dataset")
		writeError(w, http.StatusInternalServerError, "failed to load price history")
		return
	}

	performance, err := sc.Analyzer.PortfolioPerformance(r.Context(), ds, req.Symbols, style, req.Weights)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if performance == nil {
		writeError(w, http.StatusNotFound, "no symbols with adjusted price history")
		return
	}

	writeJSON(w, http.StatusOK, performance)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
