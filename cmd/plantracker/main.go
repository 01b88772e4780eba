package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/noah-isme/careplan-api/internal/cli"
	"github.com/noah-isme/careplan-api/internal/models"
	"github.com/noah-isme/careplan-api/internal/repository"
	"github.com/noah-isme/careplan-api/pkg/config"
	"github.com/noah-isme/careplan-api/pkg/database"
	"github.com/noah-isme/careplan-api/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logr.Sync() //nolint:errcheck

	app := &cli.App{
		Plans:       &databaseSource{cfg: cfg.Database, logger: logr},
		PageSize:    cfg.History.DefaultPageSize,
		RecentLimit: cfg.Dashboard.RecentLimit,
	}

	return cli.NewRootCmd(app).ExecuteContext(context.Background())
}

// databaseSource connects only when a command actually needs the database.
type databaseSource struct {
	cfg    config.DatabaseConfig
	logger *zap.Logger
}

func (s *databaseSource) List(ctx context.Context) ([]models.Plan, error) {
	db, err := database.NewPostgres(ctx, s.cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	plans, err := repository.NewPlanRepository(db).List(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("plans loaded", zap.Int("count", len(plans)))
	return plans, nil
}
