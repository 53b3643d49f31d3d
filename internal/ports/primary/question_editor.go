package primary

import (
	"context"

	"github.com/example/formbuilder/internal/core/question"
	"github.com/example/formbuilder/internal/lane"
)

// QuestionEditor defines the primary port for editing a single question.
type QuestionEditor interface {
	// ReceiveAttrs replaces the editor attributes and reloads the candidates.
	// Any load still in flight is canceled.
	ReceiveAttrs(ctx context.Context, attrs Attrs) *lane.Handle

	// View returns the current load state.
	View() LoadView

	// PossibleTypes lists the question kinds with localized labels.
	PossibleTypes() []TypeOption

	// UpdateLabel sets the label. For a new question the slug is derived from
	// the label and validated; the returned handle tracks that validation and
	// is already finished when none was started.
	UpdateLabel(ctx context.Context, value string, cs *question.Changeset) *lane.Handle

	// UpdateSlug sets the slug and validates it against the backend.
	UpdateSlug(ctx context.Context, value string, cs *question.Changeset) *lane.Handle

	// ValidateSlug checks, after the debounce window, that slug is not in use
	// and pushes an error onto cs when it is.
	ValidateSlug(ctx context.Context, slug string, cs *question.Changeset) *lane.Handle

	// Submit saves the candidate. A submission started while another is in
	// flight is dropped.
	Submit(ctx context.Context, cs *question.Changeset) *lane.Handle

	// Submitting reports whether a submission is in flight.
	Submitting() bool
}

// Attrs are the externally supplied editor attributes.
type Attrs struct {
	// Slug selects an existing question. Empty edits a new one.
	Slug string
	// Form is the parent form a new question is attached to.
	Form string
	// OnAfterSubmit is called with the saved question after a successful submit.
	OnAfterSubmit func(question.Question)
}

// LoadStatus is the state of the loader.
type LoadStatus int

const (
	LoadIdle LoadStatus = iota
	LoadLoading
	LoadReady
	LoadFailed
)

// String returns the status name.
func (s LoadStatus) String() string {
	switch s {
	case LoadIdle:
		return "idle"
	case LoadLoading:
		return "loading"
	case LoadReady:
		return "ready"
	case LoadFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// LoadView is a snapshot of the loader output.
type LoadView struct {
	Status LoadStatus
	// Candidates holds the loaded questions. A new question yields exactly one.
	Candidates []*question.Changeset
	// Stale is true while the candidates come from the cache and a network
	// refresh is still pending.
	Stale bool
	Err   error
}

// Candidate returns the first candidate, or nil when none was loaded.
func (v LoadView) Candidate() *question.Changeset {
	if len(v.Candidates) == 0 {
		return nil
	}
	return v.Candidates[0]
}

// TypeOption is a selectable question kind.
type TypeOption struct {
	Value question.Kind
	Label string
}
