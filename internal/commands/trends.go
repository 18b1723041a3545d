package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/centsible-dev/centsible/internal/mining"
)

func newTrendsCommand() *cobra.Command {
	var profileDir string
	var months int

	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Suggest budget adjustments from spending trends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(profileDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runTrends(absDir, months)
		},
	}

	cmd.Flags().StringVar(&profileDir, "profile", ".", "profile directory")
	cmd.Flags().IntVar(&months, "months", 0, "analysis window in months (default: from config)")

	return cmd
}

func runTrends(profileRoot string, months int) error {
	env, err := loadProfile(profileRoot)
	if err != nil {
		return err
	}
	if months <= 0 {
		months = env.cfg.Trends.WindowMonths
	}

	suggestions := mining.SuggestBudgets(env.transactions, env.cats.ByID(), months, time.Now())
	if len(suggestions) == 0 {
		fmt.Println("No budget adjustments suggested.")
		return nil
	}

	for _, s := range suggestions {
		name := fmt.Sprintf("category %d", s.CategoryID)
		if cat, ok := env.cats.Get(s.CategoryID); ok {
			name = cat.Name
		}
		fmt.Printf("%-20.20s  avg %8s/mo  %-10s  suggest %8s  %s\n",
			name, s.AverageMonthlySpend.StringFixed(2), s.Trend,
			s.SuggestedLimit.StringFixed(2), s.Rationale)
	}
	return nil
}
