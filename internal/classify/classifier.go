// Package classify maps normalized merchants to budget categories using,
// in priority order, the learned mapping table, ledger history, and the
// static keyword-pattern database.
package classify

import (
	"strings"

	"github.com/centsible-dev/centsible/internal/model"
	"github.com/centsible-dev/centsible/internal/normalize"
)

// Suggestions below this overall confidence are not surfaced.
const minConfidence = 0.7

// Ledger-history similarity must clear this bar to inherit a category.
const historySimilarity = 0.7

// Fuzzy keyword similarity must clear this bar before scaling by the
// pattern's base confidence.
const fuzzyKeywordSimilarity = 0.75

// CategoryResolver resolves pattern category names against the user's
// categories.
type CategoryResolver interface {
	IDByName(name string) (int, bool)
	FirstExpense() (int, bool)
}

// Suggestion is a single ranked category proposal.
type Suggestion struct {
	CategoryID int
	Confidence float64
	Reason     string
}

// Classifier scores merchants against learned mappings, ledger history,
// and the injected pattern database. It holds no mutable state.
type Classifier struct {
	patterns   *PatternDB
	categories CategoryResolver
}

// New creates a Classifier around an immutable pattern database.
func New(patterns *PatternDB, categories CategoryResolver) *Classifier {
	return &Classifier{patterns: patterns, categories: categories}
}

// Suggest returns the single highest-scoring category for a merchant and
// description, or ok=false when nothing clears the confidence floor.
func (c *Classifier) Suggest(
	merchant, description string,
	ledger []model.LedgerTransaction,
	mappings map[string]model.MerchantMapping,
) (Suggestion, bool) {
	key := normalize.Key(merchant)
	if key == "" {
		key = normalize.Key(description)
	}
	if key == "" {
		return Suggestion{}, false
	}

	best := Suggestion{Confidence: 0}

	// Learned mappings first: an exact key hit carries the mapping's own
	// confidence; near-misses are scored fuzzily.
	if m, ok := mappings[key]; ok {
		best = better(best, Suggestion{
			CategoryID: m.CategoryID,
			Confidence: m.Confidence,
			Reason:     "learned mapping for " + m.Merchant,
		})
	} else {
		for _, m := range mappings {
			sim := normalize.Similarity(key, m.Merchant)
			if sim > historySimilarity {
				best = better(best, Suggestion{
					CategoryID: m.CategoryID,
					Confidence: sim * m.Confidence,
					Reason:     "similar to learned mapping " + m.Merchant,
				})
			}
		}
	}

	// Ledger history: inherit the category of a sufficiently similar
	// existing transaction.
	for i := range ledger {
		t := &ledger[i]
		if t.CategoryID == 0 {
			continue
		}
		sim := normalize.Similarity(key, t.Merchant)
		if s2 := normalize.Similarity(key, t.Description); s2 > sim {
			sim = s2
		}
		if sim > historySimilarity {
			best = better(best, Suggestion{
				CategoryID: t.CategoryID,
				Confidence: sim,
				Reason:     "matches history: " + t.Description,
			})
		}
	}

	// Static keyword patterns.
	for _, p := range c.patterns.Patterns() {
		score := scorePattern(key, normalize.Key(p.Keyword), p.Confidence)
		if score <= 0 {
			continue
		}
		catID, ok := c.categories.IDByName(p.Category)
		if !ok {
			continue
		}
		best = better(best, Suggestion{
			CategoryID: catID,
			Confidence: score,
			Reason:     "keyword " + p.Keyword,
		})
	}

	if best.Confidence < minConfidence {
		return Suggestion{}, false
	}
	if best.Confidence > 1.0 {
		best.Confidence = 1.0
	}
	return best, true
}

// Fallback returns the first available expense category, for callers that
// must suggest something even when no evidence exists.
func (c *Classifier) Fallback() (Suggestion, bool) {
	id, ok := c.categories.FirstExpense()
	if !ok {
		return Suggestion{}, false
	}
	return Suggestion{CategoryID: id, Confidence: 0, Reason: "first available category"}, true
}

// scorePattern scores one keyword against a merchant key. Tiers, best
// first: exact or prefix, whole word, gated substring, fuzzy similarity.
// Returns 0 when no tier matches.
func scorePattern(key, keyword string, base float64) float64 {
	if keyword == "" {
		return 0
	}

	if key == keyword || strings.HasPrefix(key, keyword) {
		return 0.95 * base
	}

	for _, word := range strings.Fields(key) {
		if word == keyword {
			return 0.9 * base
		}
	}

	// Substring matches are gated: a short keyword, or one dwarfed by the
	// merchant string, would produce hits like "at" in "flat".
	if len(keyword) >= 4 && float64(len(keyword))/float64(len(key)) >= 0.3 &&
		strings.Contains(key, keyword) {
		return 0.85 * base
	}

	if sim := normalize.Similarity(key, keyword); sim >= fuzzyKeywordSimilarity {
		return sim * base
	}
	return 0
}

func better(a, b Suggestion) Suggestion {
	if b.Confidence > a.Confidence {
		return b
	}
	return a
}
