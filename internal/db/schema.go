package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete schema for fresh installs. It reflects the state
// after every entry in migrations has run.
//
// Tests load it through GetSchemaSQL so repositories are always exercised
// against the same tables the CLI creates. When adding a table or column,
// append a migration and update SchemaSQL in the same change.
const SchemaSQL = `
-- Cached query results for cache-and-network reads
CREATE TABLE IF NOT EXISTS query_cache (
	key TEXT PRIMARY KEY,
	operation TEXT NOT NULL,
	data TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_query_cache_operation ON query_cache(operation);

-- Submission log (one row per finished submit)
CREATE TABLE IF NOT EXISTS submissions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	actor_id TEXT NOT NULL,
	slug TEXT NOT NULL,
	form TEXT,
	kind TEXT NOT NULL,
	created INTEGER NOT NULL DEFAULT 0,
	outcome TEXT NOT NULL CHECK(outcome IN ('succeeded', 'failed')),
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_submissions_created_at ON submissions(created_at);
`

// GetSchemaSQL returns the authoritative schema.
func GetSchemaSQL() string {
	return SchemaSQL
}

// migration upgrades an existing database by one version.
type migration struct {
	Version int
	Name    string
	Up      func(tx *sql.Tx) error
}

var migrations = []migration{
	{
		Version: 1,
		Name:    "create_query_cache",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS query_cache (
					key TEXT PRIMARY KEY,
					operation TEXT NOT NULL,
					data TEXT NOT NULL,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`)
			return err
		},
	},
	{
		Version: 2,
		Name:    "create_submissions",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS submissions (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					actor_id TEXT NOT NULL,
					slug TEXT NOT NULL,
					form TEXT,
					kind TEXT NOT NULL,
					created INTEGER NOT NULL DEFAULT 0,
					outcome TEXT NOT NULL CHECK(outcome IN ('succeeded', 'failed')),
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`)
			return err
		},
	},
	{
		Version: 3,
		Name:    "add_indexes",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE INDEX IF NOT EXISTS idx_query_cache_operation ON query_cache(operation);
				CREATE INDEX IF NOT EXISTS idx_submissions_created_at ON submissions(created_at);`)
			return err
		},
	},
}

// LatestVersion is the schema version SchemaSQL corresponds to.
func LatestVersion() int {
	return migrations[len(migrations)-1].Version
}

// InitSchema creates the schema on a fresh database and runs pending
// migrations on an existing one.
func InitSchema(conn *sql.DB) error {
	if _, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	current, err := CurrentVersion(conn)
	if err != nil {
		return err
	}

	if current == 0 {
		if _, err := conn.Exec(SchemaSQL); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
		if _, err := conn.Exec("INSERT INTO schema_version (version) VALUES (?)", LatestVersion()); err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}
		return nil
	}

	return runMigrations(conn, current)
}

// CurrentVersion returns the highest applied schema version, or 0.
func CurrentVersion(conn *sql.DB) (int, error) {
	var version int
	if err := conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	return version, nil
}

func runMigrations(conn *sql.DB, current int) error {
	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		tx, err := conn.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", m.Version, err)
		}

		if err := m.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}
	}
	return nil
}
