package question

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is returned when a __typename does not name a known question type.
var ErrUnknownKind = errors.New("unknown question type")

// Kind is the discriminator selecting one of the question variants.
type Kind int

// Declaration order is significant: the first kind is the default for new questions.
const (
	TextQuestion Kind = iota
	TextareaQuestion
	IntegerQuestion
	FloatQuestion
	CheckboxQuestion
	RadioQuestion

	// NumKinds is the number of declared kinds.
	NumKinds
)

var kindNames = [NumKinds]string{
	TextQuestion:     "TextQuestion",
	TextareaQuestion: "TextareaQuestion",
	IntegerQuestion:  "IntegerQuestion",
	FloatQuestion:    "FloatQuestion",
	CheckboxQuestion: "CheckboxQuestion",
	RadioQuestion:    "RadioQuestion",
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, NumKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// DefaultKind is the kind given to a freshly created question.
func DefaultKind() Kind {
	return Kinds()[0]
}

// String returns the GraphQL __typename of the kind.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= 0 && k < NumKinds
}

// HasOptions reports whether the kind carries a list of options.
func (k Kind) HasOptions() bool {
	return k == CheckboxQuestion || k == RadioQuestion
}

// ParseKind maps a __typename to its Kind.
func ParseKind(typename string) (Kind, error) {
	for i, name := range kindNames {
		if name == typename {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, typename)
}

// MarshalText encodes the kind as its __typename.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText decodes a __typename.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
