package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/formbuilder/internal/adapters/cli"
	"github.com/example/formbuilder/internal/core/question"
	"github.com/example/formbuilder/internal/wire"
)

var questionCmd = &cobra.Command{
	Use:   "question",
	Short: "Create and edit form questions",
	Long:  "Load, create, update and check the slugs of questions on the form backend",
}

var questionTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the question types",
	RunE: func(cmd *cobra.Command, args []string) error {
		wire.QuestionAdapter().Types()
		return nil
	},
}

var questionShowCmd = &cobra.Command{
	Use:   "show [slug]",
	Short: "Show a question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.QuestionAdapter().Show(NewContext(), args[0])
		return err
	},
}

var questionCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a question and add it to a form",
	RunE: func(cmd *cobra.Command, args []string) error {
		form, _ := cmd.Flags().GetString("form")
		if form == "" {
			return fmt.Errorf("--form is required")
		}

		edits, err := questionEditsFromFlags(cmd)
		if err != nil {
			return err
		}

		_, err = wire.QuestionAdapter().Create(NewContext(), form, edits)
		return err
	},
}

var questionUpdateCmd = &cobra.Command{
	Use:   "update [slug]",
	Short: "Update an existing question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		edits, err := questionEditsFromFlags(cmd)
		if err != nil {
			return err
		}

		_, err = wire.QuestionAdapter().Update(NewContext(), args[0], edits)
		return err
	},
}

var questionCheckSlugCmd = &cobra.Command{
	Use:   "check-slug [slug]",
	Short: "Check that a slug is valid and not in use",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := wire.QuestionAdapter().CheckSlug(NewContext(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("slug %s cannot be used", args[0])
		}
		return nil
	},
}

// questionEditsFromFlags collects the flags the user actually set.
func questionEditsFromFlags(cmd *cobra.Command) (cliadapter.QuestionEdits, error) {
	var edits cliadapter.QuestionEdits
	flags := cmd.Flags()

	if flags.Changed("type") {
		value, _ := flags.GetString("type")
		kind, err := parseKind(value)
		if err != nil {
			return edits, err
		}
		edits.Kind = &kind
	}
	if flags.Changed("label") {
		value, _ := flags.GetString("label")
		edits.Label = &value
	}
	if flags.Changed("slug") {
		value, _ := flags.GetString("slug")
		edits.Slug = &value
	}
	if flags.Changed("description") {
		value, _ := flags.GetString("description")
		edits.Description = &value
	}
	if flags.Changed("required") {
		value, _ := flags.GetBool("required")
		edits.IsRequired = &value
	}
	if flags.Changed("hidden") {
		value, _ := flags.GetBool("hidden")
		edits.IsHidden = &value
	}
	if flags.Changed("max-length") {
		value, _ := flags.GetInt("max-length")
		edits.MaxLength = &value
	}
	if flags.Changed("min") {
		value, _ := flags.GetFloat64("min")
		edits.Min = &value
	}
	if flags.Changed("max") {
		value, _ := flags.GetFloat64("max")
		edits.Max = &value
	}
	if flags.Changed("option") {
		values, _ := flags.GetStringArray("option")
		edits.Options = make([]question.Option, 0, len(values))
		for _, v := range values {
			o, err := cliadapter.ParseOption(v)
			if err != nil {
				return edits, err
			}
			edits.Options = append(edits.Options, o)
		}
	}

	return edits, nil
}

// parseKind accepts the typename ("RadioQuestion") or its short form ("radio").
func parseKind(value string) (question.Kind, error) {
	for _, k := range question.Kinds() {
		name := k.String()
		if strings.EqualFold(value, name) || strings.EqualFold(value+"Question", name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %s\nHint: run 'fb question types'", question.ErrUnknownKind, value)
}

func addEditFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("type", "t", "", "Question type (text, textarea, integer, float, checkbox, radio)")
	cmd.Flags().StringP("label", "l", "", "Question label")
	cmd.Flags().StringP("description", "d", "", "Question description")
	cmd.Flags().Bool("required", false, "Answer is required")
	cmd.Flags().Bool("hidden", false, "Hide the question")
	cmd.Flags().Int("max-length", 0, "Maximum answer length (text types)")
	cmd.Flags().Float64("min", 0, "Minimum value (number types)")
	cmd.Flags().Float64("max", 0, "Maximum value (number types)")
	cmd.Flags().StringArrayP("option", "o", nil, "Choice as slug=Label (repeatable, replaces all options)")
}

// QuestionCmd returns the question command with all subcommands attached.
func QuestionCmd() *cobra.Command {
	// question create
	addEditFlags(questionCreateCmd)
	questionCreateCmd.Flags().StringP("form", "f", "", "Form the question is added to (required)")
	questionCreateCmd.Flags().StringP("slug", "s", "", "Slug (derived from the label when omitted)")

	// question update
	addEditFlags(questionUpdateCmd)

	questionCmd.AddCommand(questionTypesCmd)
	questionCmd.AddCommand(questionShowCmd)
	questionCmd.AddCommand(questionCreateCmd)
	questionCmd.AddCommand(questionUpdateCmd)
	questionCmd.AddCommand(questionCheckSlugCmd)

	return questionCmd
}
