package app

import (
	"context"
	"fmt"

	"github.com/example/formbuilder/internal/ports/primary"
	"github.com/example/formbuilder/internal/ports/secondary"
)

// LogServiceImpl implements the LogService interface.
type LogServiceImpl struct {
	submissions secondary.SubmissionLog
}

// NewLogService creates a new LogService with injected dependencies.
func NewLogService(submissions secondary.SubmissionLog) *LogServiceImpl {
	return &LogServiceImpl{
		submissions: submissions,
	}
}

// ListSubmissions retrieves submissions matching the given filters.
func (s *LogServiceImpl) ListSubmissions(ctx context.Context, filters primary.SubmissionFilters) ([]*primary.Submission, error) {
	if filters.Outcome != "" && filters.Outcome != secondary.OutcomeSucceeded && filters.Outcome != secondary.OutcomeFailed {
		return nil, fmt.Errorf("invalid outcome %q: must be %s or %s", filters.Outcome, secondary.OutcomeSucceeded, secondary.OutcomeFailed)
	}

	records, err := s.submissions.List(ctx, secondary.SubmissionFilters{
		ActorID: filters.ActorID,
		Slug:    filters.Slug,
		Outcome: filters.Outcome,
		Limit:   filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	out := make([]*primary.Submission, len(records))
	for i, r := range records {
		out[i] = s.recordToSubmission(r)
	}
	return out, nil
}

// Helper methods

func (s *LogServiceImpl) recordToSubmission(r *secondary.SubmissionRecord) *primary.Submission {
	return &primary.Submission{
		ID:        r.ID,
		ActorID:   r.ActorID,
		Slug:      r.Slug,
		Form:      r.Form,
		Kind:      r.Kind,
		Created:   r.Created,
		Outcome:   r.Outcome,
		CreatedAt: r.CreatedAt,
	}
}

// Ensure LogServiceImpl implements the interface
var _ primary.LogService = (*LogServiceImpl)(nil)

// CacheServiceImpl implements the CacheService interface.
type CacheServiceImpl struct {
	cache secondary.QueryCache
}

// NewCacheService creates a new CacheService with injected dependencies.
func NewCacheService(cache secondary.QueryCache) *CacheServiceImpl {
	return &CacheServiceImpl{cache: cache}
}

// ClearCache removes every cached query result.
func (s *CacheServiceImpl) ClearCache(ctx context.Context) (int64, error) {
	n, err := s.cache.Clear(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear cache: %w", err)
	}
	return n, nil
}

// Ensure CacheServiceImpl implements the interface
var _ primary.CacheService = (*CacheServiceImpl)(nil)
