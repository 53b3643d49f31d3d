package secondary

import (
	"context"
	"encoding/json"
)

// QueryCache defines the secondary port for cached query results.
type QueryCache interface {
	// Get returns the cached result for key and whether it was found.
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)

	// Put stores the result for key, replacing any previous entry.
	Put(ctx context.Context, key, operation string, data json.RawMessage) error

	// Clear removes every cached entry and returns how many were removed.
	Clear(ctx context.Context) (int64, error)
}

// SubmissionLog defines the secondary port for the submission audit trail.
type SubmissionLog interface {
	// Append records a finished submission.
	Append(ctx context.Context, record *SubmissionRecord) error

	// List returns the most recent submissions matching filters, newest first.
	List(ctx context.Context, filters SubmissionFilters) ([]*SubmissionRecord, error)
}

// SubmissionFilters contains filter options for querying submissions.
type SubmissionFilters struct {
	ActorID string
	Slug    string
	Outcome string
	Limit   int
}

// Submission outcomes.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
)

// SubmissionRecord represents a submission as stored in persistence.
type SubmissionRecord struct {
	ID        int64
	ActorID   string
	Slug      string
	Form      string
	Kind      string
	Created   bool // true when the question was new and attached to Form
	Outcome   string
	CreatedAt string
}
