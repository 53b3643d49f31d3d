package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/formbuilder/internal/wire"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local query cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached query result",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := wire.LogAdapter().ClearCache(NewContext()); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		return nil
	},
}

// CacheCmd returns the cache command with all subcommands attached.
func CacheCmd() *cobra.Command {
	cacheCmd.AddCommand(cacheClearCmd)
	return cacheCmd
}
