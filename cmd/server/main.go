/*
main.go - Application entry point

STARTUP SEQUENCE:
  1. Parse command-line flags (see config/config.go)
  2. Build the logger
  3. Open the SQLite storage slot and load the ledger
  4. Start the overdue monitor
  5. Serve HTTP with graceful shutdown

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the monitor and close the database

EXAMPLES:
  ./server -db="./data/loans.db" -tz="America/Sao_Paulo"
  ./server -db=":memory:" -log-level=debug
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/warp/loan-ledger/api"
	"github.com/warp/loan-ledger/config"
	"github.com/warp/loan-ledger/loans"
	"github.com/warp/loan-ledger/logger"
	"github.com/warp/loan-ledger/store/sqlite"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2)
	}

	var log zerolog.Logger
	if cfg.LogJSON {
		log = logger.NewWithWriter(os.Stdout)
	} else {
		log = logger.New()
	}
	log = logger.WithLevel(log, cfg.LogLevel)

	store, err := sqlite.New(cfg.DBPath, cfg.Slot)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer store.Close()
	store.SetLocation(cfg.Location)

	ledger, err := loans.Open(context.Background(), store,
		loans.WithClock(loans.SystemClock(cfg.Location)),
		loans.WithLogger(log.With().Str("component", "ledger").Logger()),
	)
	if err != nil {
		log.Fatal().Err(err).Str("slot", cfg.Slot).Msg("failed to load ledger")
	}

	monitor := api.NewOverdueMonitor(ledger, log.With().Str("component", "monitor").Logger())
	monitor.CheckInterval = cfg.MonitorInterval
	monitor.Start()
	defer monitor.Stop()

	handler := api.NewHandler(ledger, log)
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      api.NewRouter(handler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Str("db", cfg.DBPath).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
