package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/example/formbuilder/internal/ports/primary"
	"github.com/example/formbuilder/internal/ports/secondary"
)

// mockQueryCache implements secondary.QueryCache for testing.
type mockQueryCache struct {
	entries  int64
	clearErr error
}

func (m *mockQueryCache) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	return nil, false, nil
}

func (m *mockQueryCache) Put(ctx context.Context, key, operation string, data json.RawMessage) error {
	m.entries++
	return nil
}

func (m *mockQueryCache) Clear(ctx context.Context) (int64, error) {
	if m.clearErr != nil {
		return 0, m.clearErr
	}
	n := m.entries
	m.entries = 0
	return n, nil
}

func seededLog() *mockSubmissionLog {
	return &mockSubmissionLog{records: []*secondary.SubmissionRecord{
		{ID: 1, ActorID: "alice", Slug: "color", Form: "form-1", Kind: "RadioQuestion", Created: true, Outcome: secondary.OutcomeSucceeded},
		{ID: 2, ActorID: "bob", Slug: "size", Kind: "TextQuestion", Outcome: secondary.OutcomeFailed},
		{ID: 3, ActorID: "alice", Slug: "color", Kind: "RadioQuestion", Outcome: secondary.OutcomeSucceeded},
	}}
}

func TestListSubmissions(t *testing.T) {
	service := NewLogService(seededLog())
	ctx := context.Background()

	all, err := service.ListSubmissions(ctx, primary.SubmissionFilters{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 submissions, got %d", len(all))
	}
	if all[0].ID != 3 {
		t.Errorf("expected newest first, got ID %d", all[0].ID)
	}

	first := all[2]
	if first.ActorID != "alice" || first.Form != "form-1" || !first.Created || first.Outcome != secondary.OutcomeSucceeded {
		t.Errorf("unexpected submission %+v", first)
	}
}

func TestListSubmissions_Filters(t *testing.T) {
	service := NewLogService(seededLog())
	ctx := context.Background()

	tests := []struct {
		name    string
		filters primary.SubmissionFilters
		want    int
	}{
		{"by actor", primary.SubmissionFilters{ActorID: "alice"}, 2},
		{"by slug", primary.SubmissionFilters{Slug: "size"}, 1},
		{"by outcome", primary.SubmissionFilters{Outcome: secondary.OutcomeFailed}, 1},
		{"limit", primary.SubmissionFilters{Limit: 2}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.ListSubmissions(ctx, tt.filters)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("expected %d submissions, got %d", tt.want, len(got))
			}
		})
	}
}

func TestListSubmissions_InvalidOutcome(t *testing.T) {
	service := NewLogService(seededLog())

	if _, err := service.ListSubmissions(context.Background(), primary.SubmissionFilters{Outcome: "pending"}); err == nil {
		t.Error("expected error for invalid outcome")
	}
}

func TestListSubmissions_RepositoryError(t *testing.T) {
	log := seededLog()
	log.listErr = errors.New("disk I/O error")
	service := NewLogService(log)

	if _, err := service.ListSubmissions(context.Background(), primary.SubmissionFilters{}); !errors.Is(err, log.listErr) {
		t.Errorf("expected wrapped repository error, got %v", err)
	}
}

func TestClearCache(t *testing.T) {
	cache := &mockQueryCache{entries: 4}
	service := NewCacheService(cache)

	n, err := service.ClearCache(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if n != 4 {
		t.Errorf("expected 4 cleared entries, got %d", n)
	}

	cache.clearErr = errors.New("readonly database")
	if _, err := service.ClearCache(context.Background()); err == nil {
		t.Error("expected error")
	}
}
