package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/formbuilder/internal/core/question"
	"github.com/example/formbuilder/internal/ports/primary"
)

// QuestionEdits holds the fields a command sets on a candidate. Nil fields
// are left unchanged.
type QuestionEdits struct {
	Kind        *question.Kind
	Label       *string
	Slug        *string
	Description *string
	IsRequired  *bool
	IsHidden    *bool
	MaxLength   *int
	Min         *float64
	Max         *float64
	Options     []question.Option
}

// QuestionAdapter is a thin adapter that drives a QuestionEditor from the CLI.
// It depends only on the QuestionEditor interface, enabling easy testing with mocks.
type QuestionAdapter struct {
	editor primary.QuestionEditor
	out    io.Writer
}

// NewQuestionAdapter creates a new QuestionAdapter with the given editor.
func NewQuestionAdapter(editor primary.QuestionEditor, out io.Writer) *QuestionAdapter {
	return &QuestionAdapter{
		editor: editor,
		out:    out,
	}
}

// Types lists the selectable question types.
func (a *QuestionAdapter) Types() []primary.TypeOption {
	types := a.editor.PossibleTypes()

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TYPE\tLABEL")
	fmt.Fprintln(w, "----\t-----")
	for _, t := range types {
		fmt.Fprintf(w, "%s\t%s\n", t.Value, t.Label)
	}
	w.Flush()

	return types
}

// Show loads and displays a question. A cached copy is shown with a warning
// when the network refresh fails.
func (a *QuestionAdapter) Show(ctx context.Context, slug string) (question.Question, error) {
	view, err := a.load(ctx, primary.Attrs{Slug: slug})
	if err != nil && view.Candidate() == nil {
		return question.Question{}, err
	}

	cs := view.Candidate()
	if cs == nil {
		return question.Question{}, fmt.Errorf("question %s not found", slug)
	}

	q := cs.Snapshot()
	a.printQuestion(q)
	if view.Stale {
		fmt.Fprintln(a.out, color.New(color.FgYellow).Sprint("⚠ showing cached copy; refresh failed"))
	}
	return q, nil
}

// Create edits a new question and attaches it to form.
func (a *QuestionAdapter) Create(ctx context.Context, form string, edits QuestionEdits) (question.Question, error) {
	var saved question.Question
	attrs := primary.Attrs{
		Form:          form,
		OnAfterSubmit: func(q question.Question) { saved = q },
	}

	view, err := a.load(ctx, attrs)
	if err != nil {
		return question.Question{}, err
	}

	if err := a.submit(ctx, view.Candidate(), edits); err != nil {
		return question.Question{}, err
	}

	fmt.Fprintf(a.out, "✓ Created question %s\n", saved.Slug)
	fmt.Fprintf(a.out, "  Type: %s\n", saved.Kind)
	fmt.Fprintf(a.out, "  Form: %s\n", form)
	return saved, nil
}

// Update edits an existing question. It is never attached to a form.
func (a *QuestionAdapter) Update(ctx context.Context, slug string, edits QuestionEdits) (question.Question, error) {
	var saved question.Question
	attrs := primary.Attrs{
		Slug:          slug,
		OnAfterSubmit: func(q question.Question) { saved = q },
	}

	view, err := a.load(ctx, attrs)
	if err != nil {
		return question.Question{}, err
	}
	if view.Candidate() == nil {
		return question.Question{}, fmt.Errorf("question %s not found", slug)
	}
	if edits.Slug != nil && *edits.Slug != slug {
		return question.Question{}, fmt.Errorf("the slug of an existing question cannot be changed")
	}

	if err := a.submit(ctx, view.Candidate(), edits); err != nil {
		return question.Question{}, err
	}

	fmt.Fprintf(a.out, "✓ Updated question %s\n", saved.Slug)
	return saved, nil
}

// CheckSlug reports whether slug is valid and unused.
func (a *QuestionAdapter) CheckSlug(ctx context.Context, slug string) (bool, error) {
	cs := question.NewChangeset(question.Blank())

	if err := a.editor.UpdateSlug(ctx, slug, cs).Wait(); err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}

	errs := cs.Errors(question.FieldSlug)
	if len(errs) > 0 {
		for _, msg := range errs {
			fmt.Fprintln(a.out, color.New(color.FgRed).Sprintf("✗ %s: %s", slug, msg))
		}
		return false, nil
	}

	fmt.Fprintf(a.out, "✓ %s is available\n", slug)
	return true, nil
}

func (a *QuestionAdapter) load(ctx context.Context, attrs primary.Attrs) (primary.LoadView, error) {
	err := a.editor.ReceiveAttrs(ctx, attrs).Wait()
	view := a.editor.View()
	if err != nil {
		return view, fmt.Errorf("failed to load question: %w", err)
	}
	return view, nil
}

// submit applies edits, waits for slug validation and saves the candidate.
func (a *QuestionAdapter) submit(ctx context.Context, cs *question.Changeset, edits QuestionEdits) error {
	if err := applyEdits(cs, edits); err != nil {
		return err
	}

	var pending []func() error
	if edits.Label != nil {
		pending = append(pending, a.editor.UpdateLabel(ctx, *edits.Label, cs).Wait)
	}
	if edits.Slug != nil {
		pending = append(pending, a.editor.UpdateSlug(ctx, *edits.Slug, cs).Wait)
	}
	for _, wait := range pending {
		// Check failures are logged by the editor; Submit reports what still blocks.
		_ = wait()
	}

	err := a.editor.Submit(ctx, cs).Wait()
	if errors.Is(err, question.ErrInvalid) {
		a.printErrors(cs)
	}
	return err
}

func applyEdits(cs *question.Changeset, edits QuestionEdits) error {
	if edits.Kind != nil {
		cs.SetKind(*edits.Kind)
	}

	kind := cs.Snapshot().Kind
	var rangeErr error
	cs.Update(func(q *question.Question) {
		if edits.Description != nil {
			q.Description = *edits.Description
		}
		if edits.IsRequired != nil {
			q.IsRequired = *edits.IsRequired
		}
		if edits.IsHidden != nil {
			q.IsHidden = *edits.IsHidden
		}
		if edits.MaxLength != nil {
			q.MaxLength = edits.MaxLength
		}
		if edits.Options != nil {
			q.Options = edits.Options
		}

		switch kind {
		case question.IntegerQuestion:
			q.IntegerMinValue, rangeErr = toInt(edits.Min, q.IntegerMinValue)
			if rangeErr == nil {
				q.IntegerMaxValue, rangeErr = toInt(edits.Max, q.IntegerMaxValue)
			}
		case question.FloatQuestion:
			if edits.Min != nil {
				q.FloatMinValue = edits.Min
			}
			if edits.Max != nil {
				q.FloatMaxValue = edits.Max
			}
		}
	})
	return rangeErr
}

func toInt(v *float64, current *int) (*int, error) {
	if v == nil {
		return current, nil
	}
	if *v != math.Trunc(*v) {
		return nil, fmt.Errorf("integer questions need whole bounds, got %g", *v)
	}
	n := int(*v)
	return &n, nil
}

// ParseOption parses a "slug=Label" flag value.
func ParseOption(s string) (question.Option, error) {
	slug, label, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(slug) == "" {
		return question.Option{}, fmt.Errorf("invalid option %q: expected slug=Label", s)
	}
	return question.Option{Slug: strings.TrimSpace(slug), Label: strings.TrimSpace(label)}, nil
}

func (a *QuestionAdapter) printQuestion(q question.Question) {
	fmt.Fprintf(a.out, "\nQuestion: %s\n", q.Slug)
	fmt.Fprintf(a.out, "Type:     %s\n", q.Kind)
	fmt.Fprintf(a.out, "Label:    %s\n", q.Label)
	if q.Description != "" {
		fmt.Fprintf(a.out, "Description: %s\n", q.Description)
	}
	fmt.Fprintf(a.out, "Required: %t\n", q.IsRequired)
	fmt.Fprintf(a.out, "Hidden:   %t\n", q.IsHidden)
	if q.MaxLength != nil {
		fmt.Fprintf(a.out, "Max length: %d\n", *q.MaxLength)
	}
	if q.IntegerMinValue != nil || q.IntegerMaxValue != nil {
		fmt.Fprintf(a.out, "Range:    %s..%s\n", formatInt(q.IntegerMinValue), formatInt(q.IntegerMaxValue))
	}
	if q.FloatMinValue != nil || q.FloatMaxValue != nil {
		fmt.Fprintf(a.out, "Range:    %s..%s\n", formatFloat(q.FloatMinValue), formatFloat(q.FloatMaxValue))
	}
	if len(q.Options) > 0 {
		fmt.Fprintln(a.out, "Options:")
		for _, o := range q.Options {
			fmt.Fprintf(a.out, "  - %s (%s)\n", o.Label, o.Slug)
		}
	}
	fmt.Fprintln(a.out)
}

func (a *QuestionAdapter) printErrors(cs *question.Changeset) {
	red := color.New(color.FgRed)
	for _, field := range cs.ErrorFields() {
		for _, msg := range cs.Errors(field) {
			fmt.Fprintln(a.out, red.Sprintf("✗ %s: %s", field, msg))
		}
	}
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(*v)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(*v)
}
