package cli

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"

	"github.com/example/formbuilder/internal/core/question"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    question.Kind
		wantErr bool
	}{
		{"RadioQuestion", question.RadioQuestion, false},
		{"radio", question.RadioQuestion, false},
		{"TEXTAREA", question.TextareaQuestion, false},
		{"float", question.FloatQuestion, false},
		{"date", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, question.ErrUnknownKind) {
					t.Errorf("expected ErrUnknownKind, got %v", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("parseKind(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	addEditFlags(cmd)
	cmd.Flags().String("slug", "", "")
	return cmd
}

func TestQuestionEditsFromFlags_OnlyChangedFields(t *testing.T) {
	cmd := newEditCmd()
	if err := cmd.ParseFlags([]string{"--label", "Color", "--type", "checkbox", "-o", "red=Red", "-o", "blue=Blue", "--required"}); err != nil {
		t.Fatal(err)
	}

	edits, err := questionEditsFromFlags(cmd)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if edits.Label == nil || *edits.Label != "Color" {
		t.Errorf("unexpected label %v", edits.Label)
	}
	if edits.Kind == nil || *edits.Kind != question.CheckboxQuestion {
		t.Errorf("unexpected kind %v", edits.Kind)
	}
	if edits.IsRequired == nil || !*edits.IsRequired {
		t.Error("expected required to be set")
	}
	if len(edits.Options) != 2 || edits.Options[1] != (question.Option{Slug: "blue", Label: "Blue"}) {
		t.Errorf("unexpected options %v", edits.Options)
	}

	if edits.Slug != nil || edits.Description != nil || edits.IsHidden != nil || edits.MaxLength != nil || edits.Min != nil || edits.Max != nil {
		t.Errorf("expected unset flags to stay nil, got %+v", edits)
	}
}

func TestQuestionEditsFromFlags_ZeroValuesAreKept(t *testing.T) {
	cmd := newEditCmd()
	if err := cmd.ParseFlags([]string{"--min", "0", "--hidden=false"}); err != nil {
		t.Fatal(err)
	}

	edits, err := questionEditsFromFlags(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if edits.Min == nil || *edits.Min != 0 {
		t.Errorf("expected explicit zero min, got %v", edits.Min)
	}
	if edits.IsHidden == nil || *edits.IsHidden {
		t.Errorf("expected explicit false hidden, got %v", edits.IsHidden)
	}
}

func TestQuestionEditsFromFlags_InvalidOption(t *testing.T) {
	cmd := newEditCmd()
	if err := cmd.ParseFlags([]string{"-o", "red"}); err != nil {
		t.Fatal(err)
	}

	if _, err := questionEditsFromFlags(cmd); err == nil {
		t.Error("expected error for option without label")
	}
}
