package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	c "github.com/gahoccode/VNQuantStockAnalyzer/core"
	m "github.com/gahoccode/VNQuantStockAnalyzer/models"
	r "github.com/gahoccode/VNQuantStockAnalyzer/repos"
)

func main() {
	// initialize context and signal handler, listen for interrupt and term signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// load in environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg(".env not loaded")
	}

	if level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && level != zerolog.NoLevel {
		log = log.Level(level)
	}

	// get postgres connection for the stored price history
	postgresConnection, err := r.GetPostgresConnection(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer postgresConnection.Close()

	resolver := m.DatasetResolver{}
	sc := c.ServiceContext{
		Context:  ctx,
		Store:    postgresConnection,
		Resolver: resolver,
		Analyzer: c.NewAnalyzer(resolver, log),
		Log:      log,
	}

	// get http server, makes all of the endpoints and routes
	s := c.GetHttpServer(sc)
	if addr := os.Getenv("LISTEN_ADDR"); addr != "" {
		s.Addr = addr
	}

	// start http server in goroutine
	go func() {
		log.Info().Str("addr", s.Addr).Msg("starting stock analyzer server")
		if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// wait here until the context is closed (ie, ctrl+C)
	<-ctx.Done()
	log.Info().Msg("received shutdown signal, shutting down gracefully")

	// this gives the server 10 seconds to shutdown gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("server stopped")
}
