package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/centsible-dev/centsible/internal/mining"
)

func newRecurringCommand() *cobra.Command {
	var profileDir string

	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Detect recurring bills and subscriptions in the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(profileDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runRecurring(absDir)
		},
	}

	cmd.Flags().StringVar(&profileDir, "profile", ".", "profile directory")

	return cmd
}

func runRecurring(profileRoot string) error {
	env, err := loadProfile(profileRoot)
	if err != nil {
		return err
	}

	var known []string
	for _, t := range env.transactions {
		if t.Recurring {
			known = append(known, t.Merchant)
		}
	}

	suggestions := mining.DetectRecurring(env.transactions, env.cats.ByID(), known)
	if len(suggestions) == 0 {
		fmt.Println("No recurring series detected.")
		return nil
	}

	for _, s := range suggestions {
		fmt.Printf("%-30.30s  %8s  %-9s  %d txns  %.0f%%  next due %s\n",
			s.Merchant, s.AverageAmount.StringFixed(2), s.Frequency,
			len(s.Members), s.Confidence*100, s.NextDueDate.Format("2006-01-02"))
	}
	return nil
}
