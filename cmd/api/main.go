package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/averson/marketpay/internal/accountmapping"
	mappingStore "github.com/averson/marketpay/internal/accountmapping/store"
	"github.com/averson/marketpay/internal/config"
	"github.com/averson/marketpay/internal/database"
	marketpayHttp "github.com/averson/marketpay/internal/http"
	reconcileHandler "github.com/averson/marketpay/internal/http/reconcile"
	transferHandler "github.com/averson/marketpay/internal/http/transfer"
	"github.com/averson/marketpay/internal/marketplace"
	"github.com/averson/marketpay/internal/processor"
	"github.com/averson/marketpay/internal/reconcile"
	"github.com/averson/marketpay/internal/transfer"
	transferStore "github.com/averson/marketpay/internal/transfer/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		transfers         = transferStore.New(db)
		mappings          = mappingStore.New(db)
		marketplaceClient = marketplace.NewClient(cfg.Marketplace.BaseURL, cfg.Marketplace.APIKey)
		processorClient   = processor.NewHTTPClient(cfg.Processor.BaseURL, cfg.Processor.APIKey)
	)

	var (
		factory          = transfer.NewFactory(transfers, mappings, processorClient)
		reconcileService = reconcile.NewService(marketplaceClient, factory, transfers)
		mappingService   = accountmapping.NewService(mappings, marketplaceClient, cfg.Onboarding.BaseURL)
	)

	var (
		transfersH = transferHandler.NewHandler(transfers)
		reconcileH = reconcileHandler.NewHandler(reconcileService, mappingService)
	)

	router := marketpayHttp.New(transfersH, reconcileH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
