package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/histcollect/histcollect/internal/pkg/database"
	"github.com/histcollect/histcollect/internal/pkg/logger"
)

//go:embed schema.sql
var schema string

// EnsureSchema creates any missing tables and indexes
func EnsureSchema(ctx context.Context, db *database.PostgresDB) error {
	if _, err := db.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	logger.Info("database schema is up to date")
	return nil
}
