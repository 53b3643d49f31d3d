package app

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/example/formbuilder/internal/core/question"
	"github.com/example/formbuilder/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// executorCall is a single recorded call on mockExecutor.
type executorCall struct {
	method string // "watch", "query" or "mutate"
	req    secondary.Request
	policy secondary.FetchPolicy
}

// mockExecutor implements secondary.Executor for testing.
type mockExecutor struct {
	mu    sync.Mutex
	calls []executorCall

	watchFn  func(ctx context.Context, req secondary.Request, policy secondary.FetchPolicy) iter.Seq2[secondary.WatchResult, error]
	queryFn  func(ctx context.Context, req secondary.Request) (json.RawMessage, error)
	mutateFn func(ctx context.Context, req secondary.Request) (json.RawMessage, error)
}

func (m *mockExecutor) record(call executorCall) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockExecutor) WatchQuery(ctx context.Context, req secondary.Request, policy secondary.FetchPolicy) iter.Seq2[secondary.WatchResult, error] {
	m.record(executorCall{method: "watch", req: req, policy: policy})
	if m.watchFn != nil {
		return m.watchFn(ctx, req, policy)
	}
	return func(yield func(secondary.WatchResult, error) bool) {
		yield(secondary.WatchResult{Data: json.RawMessage(`[]`)}, nil)
	}
}

func (m *mockExecutor) Query(ctx context.Context, req secondary.Request) (json.RawMessage, error) {
	m.record(executorCall{method: "query", req: req})
	if m.queryFn != nil {
		return m.queryFn(ctx, req)
	}
	return json.RawMessage(`[]`), nil
}

func (m *mockExecutor) Mutate(ctx context.Context, req secondary.Request) (json.RawMessage, error) {
	m.record(executorCall{method: "mutate", req: req})
	if m.mutateFn != nil {
		return m.mutateFn(ctx, req)
	}
	return defaultMutate(req)
}

// defaultMutate echoes a saved question built from the mutation input.
func defaultMutate(req secondary.Request) (json.RawMessage, error) {
	if !strings.HasPrefix(req.Name, "save") || !strings.HasSuffix(req.Name, "Question") {
		return json.RawMessage(`{}`), nil
	}
	input := req.Variables["input"].(question.Input)
	node := map[string]any{
		"slug":        input["slug"],
		"label":       input["label"],
		"description": input["description"],
		"isRequired":  input["isRequired"],
		"isHidden":    input["isHidden"],
		"__typename":  strings.TrimPrefix(req.Name, "save"),
	}
	return json.Marshal(node)
}

// requests returns the recorded requests of method with the given name.
func (m *mockExecutor) requests(method, name string) []secondary.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []secondary.Request
	for _, c := range m.calls {
		if c.method == method && c.req.Name == name {
			out = append(out, c.req)
		}
	}
	return out
}

func (m *mockExecutor) count(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c.method == method {
			n++
		}
	}
	return n
}

func (m *mockExecutor) mutationNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, c := range m.calls {
		if c.method == "mutate" {
			out = append(out, c.req.Name)
		}
	}
	return out
}

// mockNotifier implements secondary.Notifier for testing.
type mockNotifier struct {
	mu        sync.Mutex
	successes []string
	dangers   []string
}

func (m *mockNotifier) Success(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.successes = append(m.successes, message)
}

func (m *mockNotifier) Danger(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dangers = append(m.dangers, message)
}

func (m *mockNotifier) counts() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.successes), len(m.dangers)
}

// mockTranslator implements secondary.Translator by echoing keys.
type mockTranslator struct{}

func (mockTranslator) T(key string) string { return "t:" + key }

// mockSlugifier implements secondary.Slugifier for testing.
type mockSlugifier struct{}

func (mockSlugifier) Slugify(text string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(text)), " ", "-")
}

// mockTokens implements secondary.TokenGenerator with a counter.
type mockTokens struct {
	n atomic.Int64
}

func (m *mockTokens) NewToken() string {
	return fmt.Sprintf("token-%d", m.n.Add(1))
}

// mockSubmissionLog implements secondary.SubmissionLog for testing.
type mockSubmissionLog struct {
	mu        sync.Mutex
	records   []*secondary.SubmissionRecord
	appendErr error
	listErr   error
}

func (m *mockSubmissionLog) Append(ctx context.Context, record *secondary.SubmissionRecord) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return nil
}

func (m *mockSubmissionLog) List(ctx context.Context, filters secondary.SubmissionFilters) ([]*secondary.SubmissionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*secondary.SubmissionRecord
	for i := len(m.records) - 1; i >= 0; i-- {
		r := m.records[i]
		if filters.ActorID != "" && r.ActorID != filters.ActorID {
			continue
		}
		if filters.Slug != "" && r.Slug != filters.Slug {
			continue
		}
		if filters.Outcome != "" && r.Outcome != filters.Outcome {
			continue
		}
		out = append(out, r)
	}
	if filters.Limit > 0 && len(out) > filters.Limit {
		out = out[:filters.Limit]
	}
	return out, m.listErr
}

// ============================================================================
// Test Helper
// ============================================================================

type editorFixture struct {
	editor      *QuestionEditorServiceImpl
	executor    *mockExecutor
	notifier    *mockNotifier
	submissions *mockSubmissionLog
}

func newTestEditor(t *testing.T, debounce time.Duration) *editorFixture {
	t.Helper()
	f := &editorFixture{
		executor:    &mockExecutor{},
		notifier:    &mockNotifier{},
		submissions: &mockSubmissionLog{},
	}
	f.editor = NewQuestionEditorService(
		f.executor,
		f.notifier,
		mockTranslator{},
		mockSlugifier{},
		&mockTokens{},
		f.submissions,
		zaptest.NewLogger(t),
		EditorConfig{SlugDebounce: debounce},
	)
	return f
}

// staticWatch yields each payload in turn, the first one flagged as cached
// when cached is true.
func staticWatch(cached bool, payloads ...string) func(context.Context, secondary.Request, secondary.FetchPolicy) iter.Seq2[secondary.WatchResult, error] {
	return func(ctx context.Context, req secondary.Request, policy secondary.FetchPolicy) iter.Seq2[secondary.WatchResult, error] {
		return func(yield func(secondary.WatchResult, error) bool) {
			for i, p := range payloads {
				if !yield(secondary.WatchResult{Data: json.RawMessage(p), FromCache: cached && i == 0}, nil) {
					return
				}
			}
		}
	}
}

func intPtr(v int) *int { return &v }
