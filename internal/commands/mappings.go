package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/centsible-dev/centsible/internal/classify"
	"github.com/centsible-dev/centsible/internal/mining"
	"github.com/centsible-dev/centsible/internal/model"
	"github.com/centsible-dev/centsible/internal/normalize"
)

func newMappingsCommand() *cobra.Command {
	var profileDir string
	var apply bool

	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Suggest merchant-to-category mappings from ledger history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(profileDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runMappings(absDir, apply)
		},
	}

	cmd.Flags().StringVar(&profileDir, "profile", ".", "profile directory")
	cmd.Flags().BoolVar(&apply, "apply", false, "save suggested mappings to mappings.csv")

	return cmd
}

func runMappings(profileRoot string, apply bool) error {
	env, err := loadProfile(profileRoot)
	if err != nil {
		return err
	}

	suggestions := mining.SuggestMappings(env.transactions, env.mappingTable)
	if len(suggestions) == 0 {
		fmt.Println("No mapping suggestions.")
		return nil
	}

	for _, s := range suggestions {
		name := fmt.Sprintf("category %d", s.CategoryID)
		if cat, ok := env.cats.Get(s.CategoryID); ok {
			name = cat.Name
		}
		fmt.Printf("%-30.30s  -> %-20.20s  %d txns, %.0f%% agreement\n",
			s.Merchant, name, s.TransactionCount, s.ShareSameCat*100)
	}

	if !apply {
		fmt.Println("\nRe-run with --apply to save these mappings.")
		return nil
	}

	table := env.mappingTable
	for _, s := range suggestions {
		key := normalize.Key(s.Merchant)
		var existing *model.MerchantMapping
		if m, ok := table[key]; ok {
			existing = &m
		}
		table[key] = classify.UpdateMapping(existing, s.Merchant, s.CategoryID)
	}
	updated := make([]model.MerchantMapping, 0, len(table))
	for _, m := range table {
		updated = append(updated, m)
	}
	if err := classify.SaveMappings(profileRoot, updated); err != nil {
		return err
	}
	fmt.Printf("Saved %d mappings.\n", len(suggestions))
	return nil
}
