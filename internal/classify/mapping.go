package classify

import (
	"github.com/centsible-dev/centsible/internal/model"
	"github.com/centsible-dev/centsible/internal/normalize"
)

const (
	// Confidence for a mapping created on first confirmation.
	initialConfidence = 0.7
	// Confidence a mapping resets to when the user picks a different
	// category than the one it had learned.
	baselineConfidence = 0.6
	// Reinforcement added on each confirmation of the same category.
	reinforceStep = 0.05
)

// UpdateMapping is the transition applied when the user confirms or
// overrides a category for a merchant. It returns a new value rather than
// mutating in place; existing == nil means no mapping was learned yet.
// The same category reinforces (capped at 1.0); a different category
// resets confidence to the baseline and the usage count to 1.
func UpdateMapping(existing *model.MerchantMapping, merchant string, categoryID int) model.MerchantMapping {
	key := normalize.Key(merchant)

	if existing == nil {
		return model.MerchantMapping{
			Merchant:   key,
			CategoryID: categoryID,
			Confidence: initialConfidence,
			TimesUsed:  1,
		}
	}

	if existing.CategoryID == categoryID {
		conf := existing.Confidence + reinforceStep
		if conf > 1.0 {
			conf = 1.0
		}
		return model.MerchantMapping{
			Merchant:   existing.Merchant,
			CategoryID: categoryID,
			Confidence: conf,
			TimesUsed:  existing.TimesUsed + 1,
		}
	}

	return model.MerchantMapping{
		Merchant:   existing.Merchant,
		CategoryID: categoryID,
		Confidence: baselineConfidence,
		TimesUsed:  1,
	}
}

// MappingTable indexes mappings by merchant key for classifier lookups.
func MappingTable(mappings []model.MerchantMapping) map[string]model.MerchantMapping {
	table := make(map[string]model.MerchantMapping, len(mappings))
	for _, m := range mappings {
		table[normalize.Key(m.Merchant)] = m
	}
	return table
}
