package question

import (
	"sort"
	"sync"
)

// Field names used as error keys on a Changeset.
const (
	FieldKind      = "kind"
	FieldLabel     = "label"
	FieldSlug      = "slug"
	FieldMaxLength = "maxLength"
	FieldRange     = "range"
	FieldOptions   = "options"
)

// Changeset is the editable candidate of a question together with the
// field-scoped errors collected for it. It is safe for concurrent use.
//
// Two kinds of errors are kept per field: local guard errors, recomputed
// whenever the field is set or Validate runs, and pushed errors (for instance
// a slug already in use), which stay until the field is set again.
type Changeset struct {
	mu     sync.Mutex
	q      Question
	local  map[string][]string
	pushed map[string][]string

	// stored is the slug the question was loaded with, empty for a new one.
	// Only a slug that differs from it is format checked.
	stored string
}

// NewChangeset wraps a copy of q.
func NewChangeset(q Question) *Changeset {
	return &Changeset{
		q:      q.Clone(),
		local:  make(map[string][]string),
		pushed: make(map[string][]string),
		stored: q.Slug,
	}
}

// Snapshot returns a copy of the current candidate.
func (c *Changeset) Snapshot() Question {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.q.Clone()
}

// SetLabel sets the label.
func (c *Changeset) SetLabel(label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.q.Label = label
	c.set(FieldLabel)
}

// SetSlug sets the slug.
func (c *Changeset) SetSlug(slug string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.q.Slug = slug
	c.set(FieldSlug)
}

// SetKind switches the active type payload.
func (c *Changeset) SetKind(kind Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.q.Kind = kind
	for _, field := range payloadFields {
		c.set(field)
	}
}

// Update applies fn to the candidate and re-runs the guards of the payload
// fields. Label and slug must be changed through SetLabel and SetSlug.
func (c *Changeset) Update(fn func(q *Question)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.q)
	for _, field := range payloadFields {
		c.set(field)
	}
}

// Validate re-runs every local guard and reports whether the changeset is
// free of errors. Pushed errors are kept.
func (c *Changeset) Validate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.local = make(map[string][]string)
	for _, v := range Validate(c.q) {
		c.addLocal(v)
	}
	return c.countErrors() == 0
}

// PushErrors appends messages to the errors of field.
func (c *Changeset) PushErrors(field string, msgs ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pushed[field] = append(c.pushed[field], msgs...)
}

// Errors returns the messages collected for field, guard errors first.
func (c *Changeset) Errors(field string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errorsFor(field)
}

// AllErrors returns a copy of every collected error keyed by field.
func (c *Changeset) AllErrors() map[string][]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string][]string)
	for _, m := range []map[string][]string{c.local, c.pushed} {
		for field := range m {
			if msgs := c.errorsFor(field); len(msgs) > 0 {
				out[field] = msgs
			}
		}
	}
	return out
}

// ErrorFields returns the fields that currently carry errors, sorted.
func (c *Changeset) ErrorFields() []string {
	all := c.AllErrors()
	fields := make([]string, 0, len(all))
	for field := range all {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// IsValid reports whether no errors are collected.
func (c *Changeset) IsValid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.countErrors() == 0
}

var payloadFields = []string{FieldMaxLength, FieldRange, FieldOptions}

// The helpers below must be called with c.mu held.

func (c *Changeset) set(field string) {
	delete(c.pushed, field)
	delete(c.local, field)
	for _, v := range ValidateField(c.q, field) {
		c.addLocal(v)
	}
}

func (c *Changeset) addLocal(v Violation) {
	if v.Field == FieldSlug && c.stored != "" && c.q.Slug == c.stored {
		return
	}
	c.local[v.Field] = append(c.local[v.Field], v.Message)
}

func (c *Changeset) errorsFor(field string) []string {
	var out []string
	out = append(out, c.local[field]...)
	out = append(out, c.pushed[field]...)
	return out
}

func (c *Changeset) countErrors() int {
	n := 0
	for _, msgs := range c.local {
		n += len(msgs)
	}
	for _, msgs := range c.pushed {
		n += len(msgs)
	}
	return n
}
