package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"courier-rates/internal/core/config"
	"courier-rates/internal/core/logger"
	"courier-rates/internal/core/server"
	pincodeadapter "courier-rates/internal/features/pincodes/adapters"
	pincodehandler "courier-rates/internal/features/pincodes/handler"
	pincodeservice "courier-rates/internal/features/pincodes/service"
	rateadapter "courier-rates/internal/features/rates/adapters"
	ratehandler "courier-rates/internal/features/rates/handler"
	rateservice "courier-rates/internal/features/rates/service"

	"go.uber.org/zap"
)

// @title Courier Rates API
// @version 1.0
// @description Shipping-rate engine: pincode lookup, zone classification and rate quotes.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithFile(cfg.Environment, cfg.LogLevel, logger.FileOptions{Path: cfg.LogFile}); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
		zap.String("rate_store", cfg.Rates.Store),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Pincode directory, loaded lazily on first lookup
	directory := pincodeservice.NewDirectory(
		pincodeadapter.NewSource(cfg.Pincodes.Dataset),
		cfg.Pincodes.PickupStateList(),
	)
	go func() {
		if err := directory.Warm(ctx); err != nil {
			l.Warn("Pincode dataset warm-up failed, will retry on first lookup", zap.Error(err))
		}
	}()

	// Rate store
	repo, closeRepo, err := rateadapter.OpenRepository(ctx, cfg)
	if err != nil {
		l.Fatal("Failed to open rate store", zap.Error(err))
	}
	defer closeRepo()

	if cfg.Rates.SeedDefaults {
		n, err := repo.Upsert(ctx, rateadapter.DefaultGrid())
		if err != nil {
			l.Fatal("Failed to seed default rates", zap.Error(err))
		}
		l.Info("Default rates seeded", zap.Int("rows", n))
	}

	// Rate engine
	resolver := rateservice.NewResolver(repo, cfg.Rates.BulkConcurrency)
	quoteSvc := rateservice.NewQuoteService(directory, resolver)

	srv := server.New(cfg)

	// Register Routes
	pincodehandler.NewPincodeHandler(directory).Register(srv.App)
	ratehandler.NewRateHandler(quoteSvc).Register(srv.App)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			l.Error("Server failed", zap.Error(err))
		}
	case <-ctx.Done():
		if err := srv.Shutdown(10 * time.Second); err != nil {
			l.Error("Graceful shutdown failed", zap.Error(err))
		}
	}
}
