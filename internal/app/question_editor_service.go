package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/example/formbuilder/internal/core/question"
	"github.com/example/formbuilder/internal/ctxutil"
	"github.com/example/formbuilder/internal/gql"
	"github.com/example/formbuilder/internal/lane"
	"github.com/example/formbuilder/internal/ports/primary"
	"github.com/example/formbuilder/internal/ports/secondary"
)

// ErrSubmitFailed is reported by a submission that failed after validation.
// The cause is logged, not returned.
var ErrSubmitFailed = errors.New("failed to save question")

// DefaultSlugDebounce is the quiet period before a slug is checked.
const DefaultSlugDebounce = 500 * time.Millisecond

// Translation keys.
const (
	KeySaveSuccess = "form-builder.notification.question.save.success"
	KeySaveError   = "form-builder.notification.question.save.error"
	KeySlugTaken   = "form-builder.validations.question.slug"
	KeyTypePrefix  = "form-builder.question.types."
)

// EditorConfig tunes the question editor.
type EditorConfig struct {
	SlugDebounce time.Duration
}

// QuestionEditorServiceImpl implements the QuestionEditor interface.
type QuestionEditorServiceImpl struct {
	executor    secondary.Executor
	notifier    secondary.Notifier
	translator  secondary.Translator
	slugifier   secondary.Slugifier
	tokens      secondary.TokenGenerator
	submissions secondary.SubmissionLog
	logger      *zap.Logger
	debounce    time.Duration

	loader    lane.Restartable
	validator lane.Restartable
	submitter lane.Drop

	mu    sync.RWMutex
	attrs primary.Attrs
	view  primary.LoadView
}

// NewQuestionEditorService creates a new QuestionEditorService with injected dependencies.
// submissions may be nil, in which case submissions are not recorded.
func NewQuestionEditorService(
	executor secondary.Executor,
	notifier secondary.Notifier,
	translator secondary.Translator,
	slugifier secondary.Slugifier,
	tokens secondary.TokenGenerator,
	submissions secondary.SubmissionLog,
	logger *zap.Logger,
	cfg EditorConfig,
) *QuestionEditorServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuestionEditorServiceImpl{
		executor:    executor,
		notifier:    notifier,
		translator:  translator,
		slugifier:   slugifier,
		tokens:      tokens,
		submissions: submissions,
		logger:      logger.Named("question-editor"),
		debounce:    cfg.SlugDebounce,
	}
}

// ReceiveAttrs stores the attributes and reloads the candidates.
func (s *QuestionEditorServiceImpl) ReceiveAttrs(ctx context.Context, attrs primary.Attrs) *lane.Handle {
	s.mu.Lock()
	s.attrs = attrs
	s.mu.Unlock()

	return s.loader.Go(ctx, func(ctx context.Context, commit lane.Commit) error {
		return s.load(ctx, attrs.Slug, commit)
	})
}

// View returns the current load state.
func (s *QuestionEditorServiceImpl) View() primary.LoadView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	view := s.view
	view.Candidates = append([]*question.Changeset(nil), s.view.Candidates...)
	return view
}

// PossibleTypes lists every kind in declaration order with its localized label.
func (s *QuestionEditorServiceImpl) PossibleTypes() []primary.TypeOption {
	kinds := question.Kinds()
	out := make([]primary.TypeOption, len(kinds))
	for i, k := range kinds {
		out[i] = primary.TypeOption{
			Value: k,
			Label: s.translator.T(KeyTypePrefix + k.String()),
		}
	}
	return out
}

// UpdateLabel sets the label and, for a new question, derives and checks the slug.
func (s *QuestionEditorServiceImpl) UpdateLabel(ctx context.Context, value string, cs *question.Changeset) *lane.Handle {
	cs.SetLabel(value)

	if s.currentAttrs().Slug != "" {
		return lane.Finished(nil)
	}

	slug := s.slugifier.Slugify(value)
	cs.SetSlug(slug)
	return s.ValidateSlug(ctx, slug, cs)
}

// UpdateSlug sets the slug and checks it.
func (s *QuestionEditorServiceImpl) UpdateSlug(ctx context.Context, value string, cs *question.Changeset) *lane.Handle {
	cs.SetSlug(value)
	return s.ValidateSlug(ctx, value, cs)
}

// ValidateSlug checks slug against the backend once the debounce window passes
// without a newer check superseding it.
func (s *QuestionEditorServiceImpl) ValidateSlug(ctx context.Context, slug string, cs *question.Changeset) *lane.Handle {
	return s.validator.Go(ctx, func(ctx context.Context, commit lane.Commit) error {
		if err := lane.Debounce(ctx, s.debounce); err != nil {
			return err
		}

		// Blank slugs are already reported by the local guard.
		if slug == "" {
			return nil
		}

		data, err := s.executor.Query(ctx, secondary.Request{
			Name:       "CheckQuestionSlug",
			Document:   gql.CheckQuestionSlug,
			Variables:  map[string]any{"slug": slug},
			ResultPath: "allQuestions.edges",
		})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Warn("slug check failed", zap.String("slug", slug), zap.Error(err))
			return fmt.Errorf("failed to check slug %s: %w", slug, err)
		}

		var edges []json.RawMessage
		if err := json.Unmarshal(data, &edges); err != nil {
			return fmt.Errorf("failed to decode slug check: %w", err)
		}
		if len(edges) == 0 {
			return nil
		}

		msg := s.translator.T(KeySlugTaken)
		commit(func() { cs.PushErrors(question.FieldSlug, msg) })
		s.logger.Debug("slug already taken", zap.String("slug", slug))
		return nil
	})
}

// Submit saves the candidate unless a submission is already in flight.
func (s *QuestionEditorServiceImpl) Submit(ctx context.Context, cs *question.Changeset) *lane.Handle {
	attrs := s.currentAttrs()
	return s.submitter.Go(ctx, func(ctx context.Context) error {
		return s.submit(ctx, cs, attrs)
	})
}

// Submitting reports whether a submission is in flight.
func (s *QuestionEditorServiceImpl) Submitting() bool {
	return s.submitter.Busy()
}

// Loader

func (s *QuestionEditorServiceImpl) load(ctx context.Context, slug string, commit lane.Commit) error {
	commit(func() { s.setView(primary.LoadView{Status: primary.LoadLoading}) })

	if slug == "" {
		commit(func() {
			s.setView(primary.LoadView{
				Status:     primary.LoadReady,
				Candidates: []*question.Changeset{question.NewChangeset(question.Blank())},
			})
		})
		return nil
	}

	req := secondary.Request{
		Name:       "FormEditorQuestion",
		Document:   gql.FormEditorQuestion,
		Variables:  map[string]any{"slug": slug},
		ResultPath: "allQuestions.edges",
	}

	var last []*question.Changeset
	for res, err := range s.executor.WatchQuery(ctx, req, secondary.CacheAndNetwork) {
		if err == nil {
			var questions []question.Question
			questions, err = decodeQuestionEdges(res.Data)
			if err == nil {
				last = toChangesets(questions)
				stale := res.FromCache
				commit(func() {
					s.setView(primary.LoadView{Status: primary.LoadReady, Candidates: last, Stale: stale})
				})
				continue
			}
		}

		err = fmt.Errorf("failed to load question %s: %w", slug, err)
		if ctx.Err() == nil {
			s.logger.Error("load failed", zap.String("slug", slug), zap.Error(err))
		}
		commit(func() {
			s.setView(primary.LoadView{Status: primary.LoadFailed, Candidates: last, Stale: last != nil, Err: err})
		})
		return err
	}
	return nil
}

func toChangesets(questions []question.Question) []*question.Changeset {
	out := make([]*question.Changeset, len(questions))
	for i, q := range questions {
		out[i] = question.NewChangeset(q)
	}
	return out
}

func (s *QuestionEditorServiceImpl) setView(view primary.LoadView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = view
}

func (s *QuestionEditorServiceImpl) currentAttrs() primary.Attrs {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.attrs
}

// Submitter

func (s *QuestionEditorServiceImpl) submit(ctx context.Context, cs *question.Changeset, attrs primary.Attrs) error {
	if !cs.Validate() {
		return fmt.Errorf("%w: %v", question.ErrInvalid, cs.ErrorFields())
	}

	q := cs.Snapshot()
	isNew := attrs.Slug == ""
	logger := s.logger.With(zap.String("slug", q.Slug), zap.Stringer("kind", q.Kind), zap.Bool("new", isNew))

	saved, err := s.persist(ctx, q, attrs)

	record := &secondary.SubmissionRecord{
		ActorID: ctxutil.ActorFromContext(ctx),
		Slug:    q.Slug,
		Form:    attrs.Form,
		Kind:    q.Kind.String(),
		Created: isNew,
		Outcome: secondary.OutcomeSucceeded,
	}

	if err != nil {
		logger.Error("submit failed", zap.Error(err))
		s.notifier.Danger(s.translator.T(KeySaveError))
		record.Outcome = secondary.OutcomeFailed
		s.recordSubmission(ctx, record)
		return ErrSubmitFailed
	}

	logger.Info("question saved")
	s.notifier.Success(s.translator.T(KeySaveSuccess))
	s.recordSubmission(ctx, record)

	if attrs.OnAfterSubmit != nil {
		attrs.OnAfterSubmit(saved)
	}
	return nil
}

// persist runs the dependent mutations: options, the question itself and,
// for a new question, the attachment to its form.
func (s *QuestionEditorServiceImpl) persist(ctx context.Context, q question.Question, attrs primary.Attrs) (question.Question, error) {
	if err := s.saveOptions(ctx, q); err != nil {
		return question.Question{}, err
	}

	variant := questionVariants[q.Kind]
	operation := saveOperation(q.Kind)
	input := question.CommonInput(q, s.tokens.NewToken()).Merge(variant.extract(q))

	data, err := s.executor.Mutate(ctx, secondary.Request{
		Name:       operation,
		Document:   variant.document,
		Variables:  map[string]any{"input": input},
		ResultPath: operation + ".question",
	})
	if err != nil {
		return question.Question{}, fmt.Errorf("failed to save question %s: %w", q.Slug, err)
	}

	saved, err := decodeQuestion(data)
	if err != nil {
		return question.Question{}, err
	}

	if attrs.Slug == "" {
		_, err := s.executor.Mutate(ctx, secondary.Request{
			Name:     "addFormQuestion",
			Document: gql.AddFormQuestion,
			Variables: map[string]any{
				"input": question.Input{
					"question":         saved.Slug,
					"form":             attrs.Form,
					"clientMutationId": s.tokens.NewToken(),
				},
				"search": "",
			},
		})
		if err != nil {
			return question.Question{}, fmt.Errorf("failed to add question %s to form %s: %w", saved.Slug, attrs.Form, err)
		}
	}

	return saved, nil
}

// saveOptions upserts the options of a choice question concurrently and
// returns the first failure.
func (s *QuestionEditorServiceImpl) saveOptions(ctx context.Context, q question.Question) error {
	if !q.Kind.HasOptions() || len(q.Options) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, option := range q.Options {
		g.Go(func() error {
			_, err := s.executor.Mutate(gctx, secondary.Request{
				Name:      "saveOption",
				Document:  gql.SaveOption,
				Variables: map[string]any{"input": question.OptionInput(option, s.tokens.NewToken())},
			})
			if err != nil {
				return fmt.Errorf("failed to save option %s: %w", option.Slug, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *QuestionEditorServiceImpl) recordSubmission(ctx context.Context, record *secondary.SubmissionRecord) {
	if s.submissions == nil {
		return
	}
	if err := s.submissions.Append(context.WithoutCancel(ctx), record); err != nil {
		s.logger.Warn("failed to record submission", zap.String("slug", record.Slug), zap.Error(err))
	}
}

// Ensure QuestionEditorServiceImpl implements the interface
var _ primary.QuestionEditor = (*QuestionEditorServiceImpl)(nil)
