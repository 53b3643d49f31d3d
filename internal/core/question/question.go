// Package question contains the pure business logic of the question editor:
// the closed set of question kinds, the editable candidate, per-kind input
// extraction and the guards that validate a candidate before it is saved.
package question

// Option is a selectable choice of a checkbox or radio question.
type Option struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
}

// Question is a question record. Kind selects which payload fields are meaningful.
type Question struct {
	Kind        Kind
	Slug        string
	Label       string
	Description string
	IsRequired  bool
	IsHidden    bool

	// TextQuestion, TextareaQuestion
	MaxLength *int

	// IntegerQuestion
	IntegerMinValue *int
	IntegerMaxValue *int

	// FloatQuestion
	FloatMinValue *float64
	FloatMaxValue *float64

	// CheckboxQuestion, RadioQuestion
	Options []Option
}

// Blank returns the synthetic record used when creating a question.
func Blank() Question {
	return Question{
		Kind:    DefaultKind(),
		Options: []Option{},
	}
}

// IsNew reports whether the question has not been assigned a slug yet.
func (q Question) IsNew() bool {
	return q.Slug == ""
}

// OptionSlugs returns the slugs of the options in order.
func (q Question) OptionSlugs() []string {
	slugs := make([]string, len(q.Options))
	for i, o := range q.Options {
		slugs[i] = o.Slug
	}
	return slugs
}

// Clone returns a deep copy of q.
func (q Question) Clone() Question {
	c := q
	c.MaxLength = cloneInt(q.MaxLength)
	c.IntegerMinValue = cloneInt(q.IntegerMinValue)
	c.IntegerMaxValue = cloneInt(q.IntegerMaxValue)
	c.FloatMinValue = cloneFloat(q.FloatMinValue)
	c.FloatMaxValue = cloneFloat(q.FloatMaxValue)
	if q.Options != nil {
		c.Options = append([]Option(nil), q.Options...)
	}
	return c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
