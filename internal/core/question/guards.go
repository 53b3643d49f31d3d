package question

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalid is wrapped by guard errors for candidates that cannot be saved.
var ErrInvalid = errors.New("invalid question")

// MaxSlugLength is the longest slug the backend accepts.
const MaxSlugLength = 50

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed    bool
	Reason     string
	Violations []Violation
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalid, r.Reason)
}

// Violation is a single field-scoped validation failure.
type Violation struct {
	Field   string
	Message string
}

// CanSubmitQuestion evaluates whether a candidate can be saved.
// Rules:
// - Label is required
// - Slug is required, lowercase kebab-case, at most MaxSlugLength characters
//   (a Changeset accepts the slug an existing question was loaded with)
// - Text kinds: max length must be positive when set
// - Number kinds: min must not exceed max
// - Choice kinds: at least one option, each with slug and label, no duplicate slugs
func CanSubmitQuestion(q Question) GuardResult {
	if !q.Kind.Valid() {
		return GuardResult{
			Allowed:    false,
			Reason:     fmt.Sprintf("unknown question type %s", q.Kind),
			Violations: []Violation{{Field: FieldKind, Message: "unknown question type"}},
		}
	}

	violations := Validate(q)
	if len(violations) == 0 {
		return GuardResult{Allowed: true}
	}

	reasons := make([]string, len(violations))
	for i, v := range violations {
		reasons[i] = fmt.Sprintf("%s: %s", v.Field, v.Message)
	}
	return GuardResult{
		Allowed:    false,
		Reason:     strings.Join(reasons, "; "),
		Violations: violations,
	}
}

// Validate runs every field guard against q.
func Validate(q Question) []Violation {
	var out []Violation
	if !q.Kind.Valid() {
		out = append(out, Violation{Field: FieldKind, Message: "unknown question type"})
	}
	for _, field := range []string{FieldLabel, FieldSlug, FieldMaxLength, FieldRange, FieldOptions} {
		out = append(out, ValidateField(q, field)...)
	}
	return out
}

// ValidateField runs the guard of a single field. Guards of payload fields
// only apply to the kinds that carry them.
func ValidateField(q Question, field string) []Violation {
	switch field {
	case FieldLabel:
		if strings.TrimSpace(q.Label) == "" {
			return []Violation{{Field: FieldLabel, Message: "must not be blank"}}
		}
	case FieldSlug:
		return validateSlug(q.Slug)
	case FieldMaxLength:
		if (q.Kind == TextQuestion || q.Kind == TextareaQuestion) && q.MaxLength != nil && *q.MaxLength < 1 {
			return []Violation{{Field: FieldMaxLength, Message: "must be greater than 0"}}
		}
	case FieldRange:
		return validateRange(q)
	case FieldOptions:
		return validateOptions(q)
	}
	return nil
}

func validateSlug(slug string) []Violation {
	switch {
	case slug == "":
		return []Violation{{Field: FieldSlug, Message: "must not be blank"}}
	case len(slug) > MaxSlugLength:
		return []Violation{{Field: FieldSlug, Message: fmt.Sprintf("must be at most %d characters", MaxSlugLength)}}
	case !slugPattern.MatchString(slug):
		return []Violation{{Field: FieldSlug, Message: "must contain only lowercase letters, digits and single dashes"}}
	}
	return nil
}

func validateRange(q Question) []Violation {
	switch q.Kind {
	case IntegerQuestion:
		if q.IntegerMinValue != nil && q.IntegerMaxValue != nil && *q.IntegerMinValue > *q.IntegerMaxValue {
			return []Violation{{Field: FieldRange, Message: "min value must not exceed max value"}}
		}
	case FloatQuestion:
		if q.FloatMinValue != nil && q.FloatMaxValue != nil && *q.FloatMinValue > *q.FloatMaxValue {
			return []Violation{{Field: FieldRange, Message: "min value must not exceed max value"}}
		}
	}
	return nil
}

func validateOptions(q Question) []Violation {
	if !q.Kind.HasOptions() {
		return nil
	}
	if len(q.Options) == 0 {
		return []Violation{{Field: FieldOptions, Message: "at least one option is required"}}
	}

	var out []Violation
	seen := make(map[string]bool, len(q.Options))
	for i, o := range q.Options {
		if o.Label == "" {
			out = append(out, Violation{Field: FieldOptions, Message: fmt.Sprintf("option %d: label must not be blank", i+1)})
		}
		if v := validateSlug(o.Slug); len(v) > 0 {
			out = append(out, Violation{Field: FieldOptions, Message: fmt.Sprintf("option %d: slug %s", i+1, v[0].Message)})
			continue
		}
		if seen[o.Slug] {
			out = append(out, Violation{Field: FieldOptions, Message: fmt.Sprintf("option %d: duplicate slug %s", i+1, o.Slug)})
		}
		seen[o.Slug] = true
	}
	return out
}
