package mining

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centsible-dev/centsible/internal/model"
)

func categorized(merchant string, categoryID int, day int) model.LedgerTransaction {
	return model.LedgerTransaction{
		Date:        date(2024, 1, day),
		Description: merchant,
		Amount:      dec("10.00"),
		Direction:   model.DirectionOutflow,
		CategoryID:  categoryID,
		Merchant:    merchant,
	}
}

func TestSuggestMappingsConsistentMerchant(t *testing.T) {
	ledger := []model.LedgerTransaction{
		categorized("TRADER JOES", 201, 3),
		categorized("TRADER JOES", 201, 10),
		categorized("TRADER JOES", 201, 17),
	}

	got := SuggestMappings(ledger, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "TRADER JOES", got[0].Merchant)
	assert.Equal(t, 201, got[0].CategoryID)
	assert.Equal(t, 3, got[0].TransactionCount)
	assert.Equal(t, 1.0, got[0].ShareSameCat)
}

func TestSuggestMappingsAgreementThreshold(t *testing.T) {
	// Four of five in the same category clears 80%.
	ledger := []model.LedgerTransaction{
		categorized("TARGET", 205, 1),
		categorized("TARGET", 205, 5),
		categorized("TARGET", 205, 9),
		categorized("TARGET", 205, 13),
		categorized("TARGET", 201, 17),
	}
	got := SuggestMappings(ledger, nil)
	require.Len(t, got, 1)
	assert.Equal(t, 205, got[0].CategoryID)
	assert.InDelta(t, 0.8, got[0].ShareSameCat, 0.001)

	// Two of three does not.
	ledger = []model.LedgerTransaction{
		categorized("TARGET", 205, 1),
		categorized("TARGET", 205, 5),
		categorized("TARGET", 201, 9),
	}
	assert.Empty(t, SuggestMappings(ledger, nil))
}

func TestSuggestMappingsSkipsExistingAgreement(t *testing.T) {
	ledger := []model.LedgerTransaction{
		categorized("TRADER JOES", 201, 3),
		categorized("TRADER JOES", 201, 10),
		categorized("TRADER JOES", 201, 17),
	}

	// An existing mapping to the same category: nothing to suggest.
	same := map[string]model.MerchantMapping{
		"TRADER JOES": {Merchant: "TRADER JOES", CategoryID: 201},
	}
	assert.Empty(t, SuggestMappings(ledger, same))

	// An existing mapping to a different category is worth flagging.
	different := map[string]model.MerchantMapping{
		"TRADER JOES": {Merchant: "TRADER JOES", CategoryID: 205},
	}
	assert.Len(t, SuggestMappings(ledger, different), 1)
}

func TestSuggestMappingsIgnoresUncategorized(t *testing.T) {
	ledger := []model.LedgerTransaction{
		categorized("TRADER JOES", 0, 3),
		categorized("TRADER JOES", 0, 10),
		categorized("TRADER JOES", 0, 17),
	}
	assert.Empty(t, SuggestMappings(ledger, nil))
}

func TestSuggestMappingsSortedByCount(t *testing.T) {
	var ledger []model.LedgerTransaction
	for d := 1; d <= 5; d++ {
		ledger = append(ledger, categorized("COSTCO", 201, d))
	}
	for d := 10; d <= 12; d++ {
		ledger = append(ledger, categorized("SHELL", 204, d))
	}

	got := SuggestMappings(ledger, nil)
	require.Len(t, got, 2)
	assert.Equal(t, "COSTCO", got[0].Merchant)
	assert.Equal(t, "SHELL", got[1].Merchant)
}
