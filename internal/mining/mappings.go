package mining

import (
	"sort"

	"github.com/centsible-dev/centsible/internal/model"
	"github.com/centsible-dev/centsible/internal/normalize"
)

// A merchant needs this many categorized transactions before a mapping is
// proposed.
const minMappingSize = 3

// Fraction of a merchant's transactions that must share one category.
const mappingAgreement = 0.8

// SuggestMappings proposes merchant-to-category mappings for merchants
// whose history is consistent but not yet captured in the learned table,
// or captured pointing at a different category. Sorted by transaction
// count, descending.
func SuggestMappings(
	ledger []model.LedgerTransaction,
	mappings map[string]model.MerchantMapping,
) []model.MappingSuggestion {
	type tally struct {
		total      int
		byCategory map[int]int
	}
	groups := make(map[string]*tally)

	for _, t := range ledger {
		if t.CategoryID == 0 {
			continue
		}
		key := normalize.Key(t.Merchant)
		if key == "" {
			key = normalize.Key(normalize.Merchant(t.Description))
		}
		if key == "" {
			continue
		}
		g := groups[key]
		if g == nil {
			g = &tally{byCategory: make(map[int]int)}
			groups[key] = g
		}
		g.total++
		g.byCategory[t.CategoryID]++
	}

	var suggestions []model.MappingSuggestion
	for merchant, g := range groups {
		if g.total < minMappingSize {
			continue
		}

		bestCat, bestCount := 0, 0
		for cat, count := range g.byCategory {
			if count > bestCount || (count == bestCount && cat < bestCat) {
				bestCat, bestCount = cat, count
			}
		}

		share := float64(bestCount) / float64(g.total)
		if share < mappingAgreement {
			continue
		}
		if existing, ok := mappings[merchant]; ok && existing.CategoryID == bestCat {
			continue
		}

		suggestions = append(suggestions, model.MappingSuggestion{
			Merchant:         merchant,
			CategoryID:       bestCat,
			TransactionCount: g.total,
			ShareSameCat:     share,
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].TransactionCount != suggestions[j].TransactionCount {
			return suggestions[i].TransactionCount > suggestions[j].TransactionCount
		}
		return suggestions[i].Merchant < suggestions[j].Merchant
	})
	return suggestions
}
