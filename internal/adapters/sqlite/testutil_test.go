// Package sqlite_test contains integration tests for SQLite repositories.
//
// Every test database is created from db.GetSchemaSQL() so repositories are
// exercised against the same tables the CLI creates. Do not hardcode CREATE
// TABLE statements in test files; use setupTestDB and the seed helpers.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/formbuilder/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedSubmission inserts a submission row and returns its ID.
func seedSubmission(t *testing.T, db *sql.DB, actorID, slug, outcome string) int64 {
	t.Helper()
	if actorID == "" {
		actorID = "alice"
	}
	if slug == "" {
		slug = "color"
	}
	if outcome == "" {
		outcome = "succeeded"
	}
	result, err := db.Exec(
		"INSERT INTO submissions (actor_id, slug, form, kind, created, outcome) VALUES (?, ?, 'form-1', 'TextQuestion', 1, ?)",
		actorID, slug, outcome,
	)
	if err != nil {
		t.Fatalf("failed to seed submission: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}
