package main

import (
	"fmt"
	"log"

	"github.com/pricelens/backend/config"
	httpDelivery "github.com/pricelens/backend/internal/delivery/http"
	"github.com/pricelens/backend/internal/infrastructure/memstore"
	"github.com/pricelens/backend/internal/infrastructure/stores"
	"github.com/pricelens/backend/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("starting pricelens backend",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	// Infrastructure: static store catalog plus in-memory repositories
	priceStore := memstore.NewPriceStore()
	variantStore := memstore.NewVariantStore()
	historyStore := memstore.NewHistoryStore()
	preferenceStore := memstore.NewPreferenceStore()

	// Usecase layer
	resolver := usecase.NewStoreResolver(stores.Catalog(), logger)
	ledger := usecase.NewPriceLedger(priceStore, logger)
	variants := usecase.NewVariantEngine(variantStore, preferenceStore, ledger, cfg.Inference.PriceTolerance, logger)
	deals := usecase.NewDealService(priceStore, historyStore, resolver, cfg.Deals.MinSavingsPercent, cfg.Deals.MaxResults, logger)
	ingest := usecase.NewIngestService(resolver, ledger, variants, historyStore, logger)

	logger.Info("core services initialized",
		zap.Int("stores_in_catalog", len(resolver.AllStores())),
		zap.Float64("price_tolerance", cfg.Inference.PriceTolerance),
		zap.Float64("min_savings_percent", cfg.Deals.MinSavingsPercent),
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(resolver, ledger, deals, ingest, preferenceStore, logger)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("server listening", zap.String("addr", addr))

	if err := router.Run(addr); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
