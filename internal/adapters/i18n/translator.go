// Package i18n provides localized strings for the question editor.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/example/formbuilder/internal/ports/secondary"
)

// messages holds the built-in translations per language.
var messages = map[language.Tag]map[string]string{
	language.English: {
		"form-builder.notification.question.save.success": "The question was saved",
		"form-builder.notification.question.save.error":   "The question could not be saved",
		"form-builder.validations.question.slug":          "A question with this slug already exists",
		"form-builder.question.types.TextQuestion":        "Text",
		"form-builder.question.types.TextareaQuestion":    "Textarea",
		"form-builder.question.types.IntegerQuestion":     "Integer",
		"form-builder.question.types.FloatQuestion":       "Float",
		"form-builder.question.types.CheckboxQuestion":    "Checkbox",
		"form-builder.question.types.RadioQuestion":       "Radio",
	},
	language.German: {
		"form-builder.notification.question.save.success": "Die Frage wurde gespeichert",
		"form-builder.notification.question.save.error":   "Die Frage konnte nicht gespeichert werden",
		"form-builder.validations.question.slug":          "Eine Frage mit diesem Slug existiert bereits",
		"form-builder.question.types.TextQuestion":        "Text",
		"form-builder.question.types.TextareaQuestion":    "Textbereich",
		"form-builder.question.types.IntegerQuestion":     "Ganzzahl",
		"form-builder.question.types.FloatQuestion":       "Gleitkommazahl",
		"form-builder.question.types.CheckboxQuestion":    "Mehrfachauswahl",
		"form-builder.question.types.RadioQuestion":       "Einfachauswahl",
	},
}

// Translator implements secondary.Translator on a golang.org/x/text catalog.
// Unknown keys are returned unchanged.
type Translator struct {
	printer *message.Printer
	tag     language.Tag
}

// NewTranslator creates a Translator for locale, e.g. "de" or "en-US".
// Unsupported or malformed locales fall back to English.
func NewTranslator(locale string) (*Translator, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, entries := range messages {
		for key, msg := range entries {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, err
			}
		}
	}

	tag := language.English
	if parsed, err := language.Parse(locale); err == nil {
		matcher := language.NewMatcher(b.Languages())
		_, idx, confidence := matcher.Match(parsed)
		if confidence != language.No {
			tag = b.Languages()[idx]
		}
	}

	return &Translator{
		printer: message.NewPrinter(tag, message.Catalog(b)),
		tag:     tag,
	}, nil
}

// T returns the message for key.
func (t *Translator) T(key string) string {
	return t.printer.Sprintf(key)
}

// Language returns the language messages are printed in.
func (t *Translator) Language() language.Tag {
	return t.tag
}

// Ensure Translator implements the interface
var _ secondary.Translator = (*Translator)(nil)
