package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/formbuilder/internal/ports/secondary"
)

// DefaultSubmissionLimit caps List when no limit is given.
const DefaultSubmissionLimit = 50

// SubmissionRepository implements secondary.SubmissionLog with SQLite.
type SubmissionRepository struct {
	db *sql.DB
}

// NewSubmissionRepository creates a new SQLite submission log.
func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Append persists a finished submission and sets its ID.
func (r *SubmissionRepository) Append(ctx context.Context, record *secondary.SubmissionRecord) error {
	var form sql.NullString
	if record.Form != "" {
		form = sql.NullString{String: record.Form, Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		"INSERT INTO submissions (actor_id, slug, form, kind, created, outcome) VALUES (?, ?, ?, ?, ?, ?)",
		record.ActorID, record.Slug, form, record.Kind, record.Created, record.Outcome,
	)
	if err != nil {
		return fmt.Errorf("failed to record submission: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get submission id: %w", err)
	}
	record.ID = id

	return nil
}

// List retrieves submissions matching the given filters, newest first.
func (r *SubmissionRepository) List(ctx context.Context, filters secondary.SubmissionFilters) ([]*secondary.SubmissionRecord, error) {
	query := "SELECT id, actor_id, slug, form, kind, created, outcome, created_at FROM submissions WHERE 1=1"
	args := []any{}

	if filters.ActorID != "" {
		query += " AND actor_id = ?"
		args = append(args, filters.ActorID)
	}

	if filters.Slug != "" {
		query += " AND slug = ?"
		args = append(args, filters.Slug)
	}

	if filters.Outcome != "" {
		query += " AND outcome = ?"
		args = append(args, filters.Outcome)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = DefaultSubmissionLimit
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var records []*secondary.SubmissionRecord
	for rows.Next() {
		var (
			form      sql.NullString
			createdAt time.Time
		)

		record := &secondary.SubmissionRecord{}
		err := rows.Scan(&record.ID, &record.ActorID, &record.Slug, &form, &record.Kind, &record.Created, &record.Outcome, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}

		record.Form = form.String
		record.CreatedAt = createdAt.Format(time.RFC3339)
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate submissions: %w", err)
	}

	return records, nil
}

// Ensure SubmissionRepository implements the interface
var _ secondary.SubmissionLog = (*SubmissionRepository)(nil)
