package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/centsible-dev/centsible/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "centsible",
		Short:   "Bank statement ingestion and budget pattern mining",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newRecurringCommand())
	rootCmd.AddCommand(newTrendsCommand())
	rootCmd.AddCommand(newMappingsCommand())

	return rootCmd
}
