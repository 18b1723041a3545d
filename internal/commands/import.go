package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/centsible-dev/centsible/internal/auditlog"
	"github.com/centsible-dev/centsible/internal/categories"
	"github.com/centsible-dev/centsible/internal/classify"
	"github.com/centsible-dev/centsible/internal/config"
	"github.com/centsible-dev/centsible/internal/decode"
	"github.com/centsible-dev/centsible/internal/gitops"
	"github.com/centsible-dev/centsible/internal/ledger"
	"github.com/centsible-dev/centsible/internal/model"
	"github.com/centsible-dev/centsible/internal/normalize"
	"github.com/centsible-dev/centsible/internal/reconcile"
)

func newImportCommand() *cobra.Command {
	var profileDir string
	var format string
	var confirm bool
	var includeMatched bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Decode a bank export and reconcile it against the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(profileDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runImport(absDir, args[0], format, confirm, includeMatched)
		},
	}

	cmd.Flags().StringVar(&profileDir, "profile", ".", "profile directory")
	cmd.Flags().StringVar(&format, "format", "", "bank preset or \"ofx\" (default: sniff from extension)")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "append new transactions to the ledger")
	cmd.Flags().BoolVar(&includeMatched, "include-matched", false, "also import probable duplicates")

	return cmd
}

func runImport(profileRoot, file, format string, confirm, includeMatched bool) error {
	env, err := loadProfile(profileRoot)
	if err != nil {
		return err
	}

	if format == "" {
		format = sniffFormat(file)
	}
	decoder := env.registry.Get(format)
	if decoder == nil {
		return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(env.registry.Formats(), ", "))
	}

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	batch, err := decoder.Decode(f)
	if err != nil {
		return describeDecodeError(err)
	}

	matcher := reconcile.NewMatcher(env.classifier)
	matches := matcher.Reconcile(batch.Candidates, env.transactions, env.mappingTable)
	printMatches(matches, env)

	counts := tallyMatches(matches)
	fmt.Printf("\n%d decoded: %d new, %d matched, %d duplicate (%d rows skipped)\n",
		len(matches), counts[model.StatusNew], counts[model.StatusMatched],
		counts[model.StatusDuplicate], batch.Skipped)

	if !confirm {
		fmt.Println("Re-run with --confirm to append new transactions.")
		return nil
	}

	if err := confirmImport(env, matches, confirmParams{
		profileRoot:    profileRoot,
		sourceFile:     filepath.Base(file),
		format:         format,
		skipped:        batch.Skipped,
		includeMatched: includeMatched,
	}); err != nil {
		return err
	}
	return archiveStatement(profileRoot, file)
}

// archiveStatement moves a confirmed statement out of the profile's
// import/ inbox into import/processed/. Statements living elsewhere are
// left where they are.
func archiveStatement(profileRoot, file string) error {
	abs, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("resolving statement path: %w", err)
	}
	inbox := filepath.Join(profileRoot, "import")
	if filepath.Dir(abs) != inbox {
		return nil
	}
	dest := filepath.Join(inbox, "processed", filepath.Base(abs))
	if err := os.Rename(abs, dest); err != nil {
		return fmt.Errorf("archiving statement: %w", err)
	}
	return nil
}

// profileEnv bundles everything an import run needs from the profile dir.
type profileEnv struct {
	cfg          *config.Config
	registry     *decode.Registry
	cats         *categories.Service
	ledgerSvc    *ledger.Service
	transactions []model.LedgerTransaction
	mappings     []model.MerchantMapping
	mappingTable map[string]model.MerchantMapping
	classifier   *classify.Classifier
}

type confirmParams struct {
	profileRoot    string
	sourceFile     string
	format         string
	skipped        int
	includeMatched bool
}

// confirmImport appends accepted candidates, persists mapping updates,
// audit-logs the batch, and optionally commits the profile directory.
func confirmImport(env *profileEnv, matches []model.ReconciliationMatch, p confirmParams) error {
	var accepted []model.CandidateTransaction
	var categoryIDs []int
	for _, m := range matches {
		if m.Status == model.StatusDuplicate {
			continue
		}
		if m.Status == model.StatusMatched && !p.includeMatched {
			continue
		}
		catID := m.SuggestedCategoryID
		if catID == 0 {
			if id, ok := env.cats.FirstExpense(); ok {
				catID = id
			}
		}
		accepted = append(accepted, m.Candidate)
		categoryIDs = append(categoryIDs, catID)
	}

	stored, err := env.ledgerSvc.Append(accepted, categoryIDs)
	if err != nil {
		return err
	}

	// Accepted suggestions reinforce (or create) learned mappings.
	table := env.mappingTable
	for i, cand := range accepted {
		if cand.Merchant == "" || categoryIDs[i] == 0 {
			continue
		}
		key := normalize.Key(cand.Merchant)
		var existing *model.MerchantMapping
		if m, ok := table[key]; ok {
			existing = &m
		}
		table[key] = classify.UpdateMapping(existing, cand.Merchant, categoryIDs[i])
	}
	updated := make([]model.MerchantMapping, 0, len(table))
	for _, m := range table {
		updated = append(updated, m)
	}
	if err := classify.SaveMappings(p.profileRoot, updated); err != nil {
		return err
	}

	counts := tallyMatches(matches)
	entry := auditlog.Entry{
		Timestamp:  time.Now(),
		BatchID:    auditlog.NewBatchID(),
		SourceFile: p.sourceFile,
		Format:     p.format,
		Decoded:    len(matches),
		New:        counts[model.StatusNew],
		Matched:    counts[model.StatusMatched],
		Duplicate:  counts[model.StatusDuplicate],
		Skipped:    p.skipped,
	}

	if env.cfg.Git.AutoCommit && gitops.IsRepo(p.profileRoot) {
		dirty, err := gitops.HasChanges(p.profileRoot)
		if err != nil {
			return err
		}
		// A duplicate-only batch leaves the tree clean and nothing to commit.
		if dirty {
			msg := fmt.Sprintf("import: %s (%d transactions)", p.sourceFile, len(stored))
			hash, err := gitops.CommitAll(p.profileRoot, msg, env.cfg.Git.AuthorName, env.cfg.Git.AuthorEmail)
			if err != nil {
				return err
			}
			entry.CommitHash = hash
		}
	}

	if err := auditlog.Append(p.profileRoot, []auditlog.Entry{entry}); err != nil {
		return err
	}

	fmt.Printf("Appended %d transactions to the ledger.\n", len(stored))
	return nil
}

func printMatches(matches []model.ReconciliationMatch, env *profileEnv) {
	newC := color.New(color.FgGreen)
	matchedC := color.New(color.FgYellow)
	dupC := color.New(color.FgRed)

	for _, m := range matches {
		c := m.Candidate
		line := fmt.Sprintf("%s  %-40.40s  %8s %s",
			c.Date.Format("2006-01-02"), c.Description, c.Amount.StringFixed(2), c.Direction)

		switch m.Status {
		case model.StatusDuplicate:
			dupC.Printf("DUP  %s  (= %s)\n", line, m.MatchedExisting.ID)
		case model.StatusMatched:
			matchedC.Printf("MAT  %s  (~ %s, %.0f%%)\n", line, m.MatchedExisting.ID, m.Confidence*100)
		default:
			suggestion := "uncategorized"
			if cat, ok := env.cats.Get(m.SuggestedCategoryID); ok {
				suggestion = cat.Name
			}
			switch {
			case m.SuggestionConfidence >= env.cfg.Thresholds.AutoAccept:
				newC.Printf("NEW  %s  -> %s\n", line, suggestion)
			case m.SuggestionConfidence >= env.cfg.Thresholds.ReviewFlag:
				newC.Printf("NEW  %s  -> %s (%.0f%%)\n", line, suggestion, m.SuggestionConfidence*100)
			default:
				newC.Printf("NEW  %s  -> %s (review)\n", line, suggestion)
			}
		}
	}
}

func tallyMatches(matches []model.ReconciliationMatch) map[model.MatchStatus]int {
	counts := make(map[model.MatchStatus]int)
	for _, m := range matches {
		counts[m.Status]++
	}
	return counts
}

// sniffFormat guesses a decoder from the file extension.
func sniffFormat(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".ofx", ".qfx":
		return "ofx"
	default:
		return "generic"
	}
}

// describeDecodeError turns the typed decode failures into actionable
// messages.
func describeDecodeError(err error) error {
	var confErr decode.ConfigurationError
	if errors.As(err, &confErr) {
		return fmt.Errorf("%w\ntry a different --format preset", confErr)
	}
	var emptyErr decode.EmptyResultError
	if errors.As(err, &emptyErr) {
		return fmt.Errorf("%w\ncheck that the bank preset matches this file", emptyErr)
	}
	var formatErr decode.FormatError
	if errors.As(err, &formatErr) {
		return fmt.Errorf("statement file could not be parsed: %w", formatErr)
	}
	return err
}
