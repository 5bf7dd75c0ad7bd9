package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/voiceofchrist/churchsite/internal/db"
)

//go:embed sql/*.sql
var embedded embed.FS

// Files returns the SQL migrations compiled into the binary
func Files() fs.FS {
	sub, err := fs.Sub(embedded, "sql")
	if err != nil {
		// the embed pattern guarantees the directory exists
		panic(err)
	}
	return sub
}

// Migrator manages database migrations
type Migrator struct {
	db     *pgxpool.Pool
	files  fs.FS
	logger zerolog.Logger
}

// NewMigrator creates a migrator over the embedded migrations
func NewMigrator(db *pgxpool.Pool, logger zerolog.Logger) *Migrator {
	return NewMigratorFS(db, Files(), logger)
}

// NewMigratorFS creates a migrator reading *.sql files from the root of files
func NewMigratorFS(db *pgxpool.Pool, files fs.FS, logger zerolog.Logger) *Migrator {
	return &Migrator{
		db:     db,
		files:  files,
		logger: logger,
	}
}

// Migration is one SQL file
type Migration struct {
	Version string
	Name    string
}

// versionOf extracts the version prefix ("001_init.sql" => "001")
func versionOf(filename string) string {
	return strings.Split(path.Base(filename), "_")[0]
}

// List returns the migrations in files, in execution order
func List(files fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	migrations := make([]Migration, 0, len(names))
	seen := map[string]string{}
	for _, name := range names {
		version := versionOf(name)
		if prev, ok := seen[version]; ok {
			return nil, fmt.Errorf("migrations %s and %s share version %s", prev, name, version)
		}
		seen[version] = name
		migrations = append(migrations, Migration{Version: version, Name: name})
	}
	return migrations, nil
}

// ensureMigrationTableExists creates the migration tracking table if it doesn't exist
func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	_, err := m.db.Exec(ctx, createTableSQL)
	if err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

// isMigrationApplied checks if a specific migration has already been applied
func (m *Migrator) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1);`
	err := m.db.QueryRow(ctx, query, version).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return exists, nil
}

// recordMigration marks a migration as applied inside the migration transaction
func recordMigration(ctx context.Context, tx pgx.Tx, version string) error {
	_, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version, applied_at) VALUES ($1, $2)`,
		version, time.Now())
	if err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}
	return nil
}

// apply executes one migration file unless it was already applied
func (m *Migrator) apply(ctx context.Context, mig Migration) error {
	applied, err := m.isMigrationApplied(ctx, mig.Version)
	if err != nil {
		return err
	}
	if applied {
		m.logger.Debug().Str("migration", mig.Name).Msg("Migration already applied, skipping")
		return nil
	}

	content, err := fs.ReadFile(m.files, mig.Name)
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}

	err = db.WithTransaction(ctx, m.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("error occurred during SQL migration %s: %w", mig.Name, err)
		}
		return recordMigration(ctx, tx, mig.Version)
	})
	if err != nil {
		return err
	}

	m.logger.Info().Str("migration", mig.Name).Msg("Migration applied")
	return nil
}

// Migrate applies every pending migration in version order
func (m *Migrator) Migrate(ctx context.Context) error {
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return err
	}

	migrations, err := List(m.files)
	if err != nil {
		return err
	}
	for _, mig := range migrations {
		if err := m.apply(ctx, mig); err != nil {
			return err
		}
	}
	return nil
}
