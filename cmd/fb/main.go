package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/formbuilder/internal/cli"
	"github.com/example/formbuilder/internal/version"
	"github.com/example/formbuilder/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "fb",
		Short:   "fb - question editor for the form builder",
		Version: version.String(),
		Long: `fb edits the questions of a form builder backend over GraphQL.
It checks slugs as you type them, keeps question options in sync and
caches query results locally so questions load while offline.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cli.DetectAndStoreActor()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if show, _ := cmd.Flags().GetBool("metrics"); show {
				return cli.PrintMetrics(os.Stderr, wire.Registry())
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().Bool("metrics", false, "Print GraphQL operation metrics after the command")

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.QuestionCmd())
	rootCmd.AddCommand(cli.LogCmd())
	rootCmd.AddCommand(cli.CacheCmd())

	err := rootCmd.Execute()
	wire.Shutdown()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
