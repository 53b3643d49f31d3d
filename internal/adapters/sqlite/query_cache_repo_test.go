package sqlite_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/example/formbuilder/internal/adapters/sqlite"
)

func TestQueryCacheRepository_GetMiss(t *testing.T) {
	repo := sqlite.NewQueryCacheRepository(setupTestDB(t))

	data, ok, err := repo.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok || data != nil {
		t.Errorf("expected a miss, got %s", data)
	}
}

func TestQueryCacheRepository_PutAndGet(t *testing.T) {
	repo := sqlite.NewQueryCacheRepository(setupTestDB(t))
	ctx := context.Background()

	payload := json.RawMessage(`[{"node":{"slug":"color"}}]`)
	if err := repo.Put(ctx, "k1", "FormEditorQuestion", payload); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	data, ok, err := repo.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || string(data) != string(payload) {
		t.Errorf("expected %s, got %s (ok=%v)", payload, data, ok)
	}
}

func TestQueryCacheRepository_PutReplaces(t *testing.T) {
	repo := sqlite.NewQueryCacheRepository(setupTestDB(t))
	ctx := context.Background()

	_ = repo.Put(ctx, "k1", "FormEditorQuestion", json.RawMessage(`[]`))
	if err := repo.Put(ctx, "k1", "FormEditorQuestion", json.RawMessage(`[1]`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	data, _, _ := repo.Get(ctx, "k1")
	if string(data) != `[1]` {
		t.Errorf("expected replaced entry, got %s", data)
	}
}

func TestQueryCacheRepository_Clear(t *testing.T) {
	repo := sqlite.NewQueryCacheRepository(setupTestDB(t))
	ctx := context.Background()

	_ = repo.Put(ctx, "k1", "FormEditorQuestion", json.RawMessage(`[]`))
	_ = repo.Put(ctx, "k2", "CheckQuestionSlug", json.RawMessage(`[]`))

	n, err := repo.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 cleared entries, got %d", n)
	}

	if _, ok, _ := repo.Get(ctx, "k1"); ok {
		t.Error("expected cache to be empty")
	}
}
