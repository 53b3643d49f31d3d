package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/formbuilder/internal/config"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the fb configuration",
		Long:  `Write .fb/config.json in the current directory with the GraphQL endpoint and editor settings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			cfg := config.Default()
			cfg.Endpoint, _ = cmd.Flags().GetString("endpoint")
			cfg.Locale, _ = cmd.Flags().GetString("locale")
			cfg.Actor, _ = cmd.Flags().GetString("actor")
			cfg.SlugDebounce, _ = cmd.Flags().GetDuration("slug-debounce")
			cfg.RequestTimeout, _ = cmd.Flags().GetDuration("timeout")

			headers, _ := cmd.Flags().GetStringToString("header")
			for k, v := range headers {
				cfg.Headers[k] = v
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			force, _ := cmd.Flags().GetBool("force")
			if _, err := os.Stat(config.Path(dir)); err == nil && !force {
				return fmt.Errorf("%s already exists\nHint: use --force to overwrite", config.Path(dir))
			}

			if err := config.SaveConfig(dir, cfg); err != nil {
				return err
			}

			fmt.Printf("✓ Config written to %s\n", config.Path(dir))
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  fb question types")
			fmt.Println("  fb question create --form FORM --label \"My question\"")

			return nil
		},
	}

	cmd.Flags().String("endpoint", "", "GraphQL endpoint URL (required)")
	cmd.Flags().String("locale", "en", "Locale for labels and notifications")
	cmd.Flags().String("actor", "", "Actor recorded with submissions (default $USER)")
	cmd.Flags().Duration("slug-debounce", 500*time.Millisecond, "Quiet period before a slug is checked")
	cmd.Flags().Duration("timeout", 0, "HTTP request timeout (0 disables)")
	cmd.Flags().StringToString("header", nil, "Extra request header, e.g. --header authorization='Bearer TOKEN'")
	cmd.Flags().Bool("force", false, "Overwrite an existing config")

	return cmd
}
