package app

import (
	"github.com/example/formbuilder/internal/core/question"
	"github.com/example/formbuilder/internal/gql"
)

// questionVariant binds a question kind to its save mutation and the
// extraction of its kind-specific input.
type questionVariant struct {
	document string
	extract  func(question.Question) question.Input
}

// questionVariants is indexed by kind. Every kind must have an entry.
var questionVariants = [question.NumKinds]questionVariant{
	question.TextQuestion:     {document: gql.SaveTextQuestion, extract: question.TextInput},
	question.TextareaQuestion: {document: gql.SaveTextareaQuestion, extract: question.TextareaInput},
	question.IntegerQuestion:  {document: gql.SaveIntegerQuestion, extract: question.IntegerInput},
	question.FloatQuestion:    {document: gql.SaveFloatQuestion, extract: question.FloatInput},
	question.CheckboxQuestion: {document: gql.SaveCheckboxQuestion, extract: question.CheckboxInput},
	question.RadioQuestion:    {document: gql.SaveRadioQuestion, extract: question.RadioInput},
}

// saveOperation returns the mutation field name of a kind, e.g. saveTextQuestion.
func saveOperation(kind question.Kind) string {
	return "save" + kind.String()
}
