package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/histcollect/histcollect/internal/config"
	"github.com/histcollect/histcollect/internal/handler"
	"github.com/histcollect/histcollect/internal/middleware"
	"github.com/histcollect/histcollect/internal/pkg/database"
	"github.com/histcollect/histcollect/internal/pkg/security"
	pgrepo "github.com/histcollect/histcollect/internal/repository/postgres"
	"github.com/histcollect/histcollect/internal/serializer"
	"github.com/histcollect/histcollect/internal/service"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger

	Postgres *database.PostgresDB

	HDCAManager *service.HDCAManager

	AuthMiddleware *middleware.AuthMiddleware
	Handlers       *Handlers
}

// Handlers holds all HTTP handlers
type Handlers struct {
	Health *handler.HealthHandler
	Docs   *handler.DocsHandler
	HDCA   *handler.HDCAHandler
}

// initDependencies wires the database, repositories, managers, serializers
// and handlers
func initDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	pg, err := database.NewPostgres(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	deps.Postgres = pg

	if cfg.Postgres.AutoMigrate {
		if err := pgrepo.EnsureSchema(ctx, pg); err != nil {
			deps.Close()
			return nil, err
		}
	}

	ids, err := security.NewIDEncoder(cfg.Security.IDSecret)
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to initialize id encoder: %w", err)
	}

	hdcaSerializer, err := serializer.NewHDCASerializer(ids)
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to build HDCA serializer: %w", err)
	}

	deps.HDCAManager = service.NewHDCAManager(pgrepo.NewHDCARepository(pg), logger)
	deps.AuthMiddleware = middleware.NewAuthMiddleware(cfg.JWT)

	docs, err := handler.NewDocsHandler()
	if err != nil {
		deps.Close()
		return nil, err
	}

	deps.Handlers = &Handlers{
		Health: handler.NewHealthHandler(map[string]handler.Pinger{"postgres": pg}, appVersion),
		Docs:   docs,
		HDCA:   handler.NewHDCAHandler(deps.HDCAManager, hdcaSerializer, ids, logger),
	}

	logger.Info("dependencies initialized",
		zap.Strings("hdca_views", hdcaSerializer.Views()),
		zap.Bool("auto_migrate", cfg.Postgres.AutoMigrate),
	)

	return deps, nil
}

// Close releases all held connections
func (d *Dependencies) Close() {
	if d.Postgres != nil {
		d.Postgres.Close()
	}
}
