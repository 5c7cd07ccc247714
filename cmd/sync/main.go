package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"companycrm/internal/company"
	"companycrm/internal/config"
	"companycrm/internal/database"
	"companycrm/internal/logger"
	"companycrm/internal/services"
	"companycrm/internal/sheets"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Sync error: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.SyncEnabled() {
		return errors.New("GOOGLE_SHEET_ID is not set; nothing to sync")
	}

	source, err := sheets.NewClient(ctx, cfg.GoogleCredentialsPath, cfg.GoogleSheetID, cfg.WorksheetName)
	if err != nil {
		return err
	}

	dbManager, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	companies := services.NewCompanyService(dbManager.DB(), company.NewAssembler(logger.Diagnostics()))
	result, err := services.NewSyncService(source, companies).Sync(ctx)
	if err != nil {
		return err
	}

	logger.Get().Infof("Sync complete: %d received, %d upserted, %d skipped, %d invalid JSON fields",
		result.Received, result.Upserted, result.Skipped, result.InvalidJSON)
	return nil
}
