package primary

import "context"

// LogService defines the primary port for the submission log.
type LogService interface {
	// ListSubmissions retrieves submissions matching the given filters, newest first.
	ListSubmissions(ctx context.Context, filters SubmissionFilters) ([]*Submission, error)
}

// CacheService defines the primary port for the local query cache.
type CacheService interface {
	// ClearCache removes every cached query result and returns how many were removed.
	ClearCache(ctx context.Context) (int64, error)
}

// Submission represents a finished submit at the port boundary.
type Submission struct {
	ID        int64
	ActorID   string
	Slug      string
	Form      string
	Kind      string
	Created   bool
	Outcome   string // 'succeeded' or 'failed'
	CreatedAt string
}

// SubmissionFilters contains filter options for querying submissions.
type SubmissionFilters struct {
	ActorID string
	Slug    string
	Outcome string
	Limit   int
}
