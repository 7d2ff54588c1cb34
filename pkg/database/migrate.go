package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"movie-catalog/pkg/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// newMigrator builds a goose provider over the embedded migrations.
func newMigrator(db *sql.DB) (*goose.Provider, error) {
	sources, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open migrations: %w", err)
	}
	return goose.NewProvider(goose.DialectPostgres, db, sources)
}

// Migrate applies every embedded migration goose has not recorded yet. It
// opens its own database/sql handle since goose does not speak pgxpool.
func Migrate(ctx context.Context, config utils.DatabaseConfig, log *zap.Logger) error {
	db, err := sql.Open("pgx", ConnString(config))
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	provider, err := newMigrator(db)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	for _, res := range results {
		log.Info("Migration applied",
			zap.String("source", res.Source.Path),
			zap.Int64("version", res.Source.Version),
			zap.Duration("duration", res.Duration))
	}
	if len(results) == 0 {
		log.Info("Schema up to date")
	}

	return nil
}
