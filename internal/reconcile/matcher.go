// Package reconcile classifies decoded candidates against the existing
// ledger as exact duplicates, probable duplicates, or new transactions.
package reconcile

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/centsible-dev/centsible/internal/classify"
	"github.com/centsible-dev/centsible/internal/model"
	"github.com/centsible-dev/centsible/internal/normalize"
)

var (
	// Amounts within one cent count as equal.
	exactTolerance = decimal.NewFromFloat(0.01)
	// Fuzzy duplicates may differ by up to a dollar.
	fuzzyTolerance = decimal.NewFromInt(1)
)

// Description similarity required for a fuzzy duplicate on the same day.
const fuzzyDescSimilarity = 0.6

// Matcher reconciles candidate batches against an in-memory ledger.
// The ledger and mapping table are read-only inputs.
type Matcher struct {
	classifier *classify.Classifier
}

// NewMatcher creates a Matcher using the given classifier for category
// suggestions on new transactions.
func NewMatcher(classifier *classify.Classifier) *Matcher {
	return &Matcher{classifier: classifier}
}

// Reconcile produces one ReconciliationMatch per candidate, in input
// order. Duplicates always carry the matched ledger transaction; new
// candidates carry a category suggestion when one can be made.
func (m *Matcher) Reconcile(
	candidates []model.CandidateTransaction,
	ledger []model.LedgerTransaction,
	mappings map[string]model.MerchantMapping,
) []model.ReconciliationMatch {
	matches := make([]model.ReconciliationMatch, 0, len(candidates))
	for _, cand := range candidates {
		matches = append(matches, m.reconcileOne(cand, ledger, mappings))
	}
	return matches
}

func (m *Matcher) reconcileOne(
	cand model.CandidateTransaction,
	ledger []model.LedgerTransaction,
	mappings map[string]model.MerchantMapping,
) model.ReconciliationMatch {
	// Pass 1: exact duplicate. Same day, same description ignoring case,
	// amount within a cent.
	for i := range ledger {
		t := &ledger[i]
		if !sameDay(cand.Date, t.Date) {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(cand.Description), strings.TrimSpace(t.Description)) {
			continue
		}
		if cand.Amount.Sub(t.Amount).Abs().GreaterThan(exactTolerance) {
			continue
		}
		return model.ReconciliationMatch{
			Candidate:       cand,
			Status:          model.StatusDuplicate,
			Confidence:      1.0,
			MatchedExisting: t,
		}
	}

	// Pass 2: fuzzy duplicate. Same day, amount within a dollar, similar
	// description.
	for i := range ledger {
		t := &ledger[i]
		if !sameDay(cand.Date, t.Date) {
			continue
		}
		if cand.Amount.Sub(t.Amount).Abs().GreaterThan(fuzzyTolerance) {
			continue
		}
		if normalize.Similarity(cand.Description, t.Description) <= fuzzyDescSimilarity {
			continue
		}
		return model.ReconciliationMatch{
			Candidate:       cand,
			Status:          model.StatusMatched,
			Confidence:      0.8,
			MatchedExisting: t,
		}
	}

	match := model.ReconciliationMatch{
		Candidate:  cand,
		Status:     model.StatusNew,
		Confidence: 0,
	}
	if s, ok := m.classifier.Suggest(cand.Merchant, cand.Description, ledger, mappings); ok {
		match.SuggestedCategoryID = s.CategoryID
		match.SuggestionReason = s.Reason
		match.SuggestionConfidence = s.Confidence
	} else if s, ok := m.classifier.Fallback(); ok {
		match.SuggestedCategoryID = s.CategoryID
		match.SuggestionReason = s.Reason
	}
	return match
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
