package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/deppfellow/block-explorer/internal/config"
	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

// The SQL files ship inside the binary, so a container needs no migrations
// directory on disk.
//
//go:embed migrations/*.sql
var migrations embed.FS

// Migrate brings the explorer schema to the latest embedded version.
//
// Steps:
//   - open one plain connection (the pool is not built yet at this point)
//   - load the embedded files into a tern migrator
//   - apply everything above the version recorded in schema_version
//   - log whether anything changed
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	// A single connection is enough for a one-off run and keeps the pool's
	// tracers out of the migration logs.
	conn, err := pgx.Connect(ctx, DSN(cfg.Database))
	if err != nil {
		return fmt.Errorf("connecting for migrations: %w", err)
	}
	defer conn.Close(ctx)

	// tern records the applied version in schema_version.
	m, err := tern.NewMigrator(ctx, conn, "schema_version")
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	// tern wants an fs.FS rooted at the directory holding the files, not the
	// embed root.
	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	// Files are ordered by their numeric prefix (001_, 002_, ...).
	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	// Read the version before migrating so the log can report the jump.
	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	// Equal versions mean nothing was applied.
	if from == int32(len(m.Migrations)) {
		logger.Info().Msgf("database schema up to date, version %d", len(m.Migrations))
	} else {
		logger.Info().Msgf("migrated database schema, from %d to %d", from, len(m.Migrations))
	}
	return nil
}
