package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/centsible-dev/centsible/internal/categories"
	"github.com/centsible-dev/centsible/internal/config"
	"github.com/centsible-dev/centsible/internal/gitops"
)

func newInitCommand() *cobra.Command {
	var name string
	var noGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new budget profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, name, noGit)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "profile name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().BoolVar(&noGit, "no-git", false, "skip git repository setup")

	return cmd
}

func runInit(dir, name string, noGit bool) error {
	// Create directory structure.
	dirs := []string{
		"import",
		filepath.Join("import", "processed"),
		"logs",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write default config.
	cfg := config.Default(name)
	if noGit {
		cfg.Git.AutoCommit = false
	}
	configPath := filepath.Join(dir, "centsible.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists", configPath)
	}
	if err := config.Save(configPath, cfg); err != nil {
		return err
	}

	// Write default categories.
	cats := categories.NewService(categories.DefaultSet())
	if err := cats.Save(dir); err != nil {
		return err
	}

	if !noGit && !gitops.IsRepo(dir) {
		if err := gitops.Init(dir); err != nil {
			return err
		}
		if _, err := gitops.CommitAll(dir, "init: new budget profile", cfg.Git.AuthorName, cfg.Git.AuthorEmail); err != nil {
			return err
		}
	}

	fmt.Printf("Initialized budget profile %q in %s\n", name, dir)
	return nil
}
