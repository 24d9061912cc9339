package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cromos/ballpark/internal/auth"
	"github.com/cromos/ballpark/internal/calculator"
	"github.com/cromos/ballpark/internal/config"
	"github.com/cromos/ballpark/internal/excel"
	httphandler "github.com/cromos/ballpark/internal/http"
	"github.com/cromos/ballpark/internal/http/middleware"
	"github.com/cromos/ballpark/internal/logger"
	"github.com/cromos/ballpark/internal/pdf"
	"github.com/cromos/ballpark/internal/rates"
	"github.com/cromos/ballpark/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment, cfg.LogLevel)

	table, err := loadRateCard(cfg.Rates.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Rates.Path).Msg("failed to load rate card")
	}
	log.Info().Str("version", table.Version()).Str("currency", table.Currency()).Msg("rate card loaded")

	estimateService, err := service.NewEstimateService(
		calculator.New(table),
		excel.NewGenerator(),
		pdf.NewGenerator(),
		cfg.Estimates.CacheSize,
		log,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init estimate service")
	}

	var limiter *middleware.ClientLimiter
	if cfg.RateLimit.RPS > 0 {
		limiter, err = middleware.NewClientLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to init rate limiter")
		}
	}

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	if !tokenParser.Enabled() {
		log.Warn().Msg("JWT_ACCESS_SECRET is empty, estimate routes are public")
	}

	handler := httphandler.NewHandler(estimateService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, limiter, cfg, log)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", server.Addr).Msg("starting ballpark service")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}

func loadRateCard(path string) (*rates.Table, error) {
	if path == "" {
		return rates.Default()
	}
	return rates.LoadFile(path)
}
