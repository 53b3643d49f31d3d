package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/example/formbuilder/internal/core/question"
)

// questionNode is a question as returned by the backend.
type questionNode struct {
	Slug            string         `json:"slug"`
	Label           string         `json:"label"`
	Description     *string        `json:"description"`
	IsRequired      flexBool       `json:"isRequired"`
	IsHidden        flexBool       `json:"isHidden"`
	Typename        question.Kind  `json:"__typename"`
	MaxLength       *int           `json:"maxLength"`
	IntegerMinValue *int           `json:"integerMinValue"`
	IntegerMaxValue *int           `json:"integerMaxValue"`
	FloatMinValue   *float64       `json:"floatMinValue"`
	FloatMaxValue   *float64       `json:"floatMaxValue"`
	Options         *optionConnect `json:"options"`
}

type optionConnect struct {
	Edges []struct {
		Node question.Option `json:"node"`
	} `json:"edges"`
}

type questionEdge struct {
	Node questionNode `json:"node"`
}

func (n questionNode) toQuestion() question.Question {
	q := question.Question{
		Kind:            n.Typename,
		Slug:            n.Slug,
		Label:           n.Label,
		IsRequired:      bool(n.IsRequired),
		IsHidden:        bool(n.IsHidden),
		MaxLength:       n.MaxLength,
		IntegerMinValue: n.IntegerMinValue,
		IntegerMaxValue: n.IntegerMaxValue,
		FloatMinValue:   n.FloatMinValue,
		FloatMaxValue:   n.FloatMaxValue,
		Options:         []question.Option{},
	}
	if n.Description != nil {
		q.Description = *n.Description
	}
	if n.Options != nil {
		for _, e := range n.Options.Edges {
			q.Options = append(q.Options, e.Node)
		}
	}
	return q
}

// decodeQuestionEdges decodes an allQuestions.edges list.
func decodeQuestionEdges(data json.RawMessage) ([]question.Question, error) {
	var edges []questionEdge
	if err := json.Unmarshal(data, &edges); err != nil {
		return nil, fmt.Errorf("failed to decode questions: %w", err)
	}
	out := make([]question.Question, len(edges))
	for i, e := range edges {
		out[i] = e.Node.toQuestion()
	}
	return out, nil
}

// decodeQuestion decodes a single question node.
func decodeQuestion(data json.RawMessage) (question.Question, error) {
	var node questionNode
	if err := json.Unmarshal(data, &node); err != nil {
		return question.Question{}, fmt.Errorf("failed to decode question: %w", err)
	}
	return node.toQuestion(), nil
}

// flexBool accepts JSON booleans as well as the strings "true" and "false",
// which older backends use for isRequired and isHidden.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	switch s {
	case "true":
		*b = true
	case "false", "null", "":
		*b = false
	default:
		return fmt.Errorf("invalid boolean %s", data)
	}
	return nil
}
