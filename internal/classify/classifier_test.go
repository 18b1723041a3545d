package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centsible-dev/centsible/internal/model"
)

type fakeCategories struct {
	byName       map[string]int
	firstExpense int
}

func (f *fakeCategories) IDByName(name string) (int, bool) {
	id, ok := f.byName[name]
	return id, ok
}

func (f *fakeCategories) FirstExpense() (int, bool) {
	return f.firstExpense, f.firstExpense != 0
}

func testCategories() *fakeCategories {
	return &fakeCategories{
		byName: map[string]int{
			"Groceries":     201,
			"Dining Out":    202,
			"Subscriptions": 203,
			"Transport":     204,
		},
		firstExpense: 201,
	}
}

func testClassifier() *Classifier {
	db := NewPatternDB([]Pattern{
		{Category: "Dining Out", Keyword: "STARBUCKS", Confidence: 0.95},
		{Category: "Subscriptions", Keyword: "NETFLIX", Confidence: 0.98},
		{Category: "Dining Out", Keyword: "PIZZA", Confidence: 0.8},
		{Category: "Transport", Keyword: "AT", Confidence: 0.9},
	})
	return New(db, testCategories())
}

func TestSuggestExactKeyword(t *testing.T) {
	c := testClassifier()
	got, ok := c.Suggest("STARBUCKS", "STARBUCKS #4471", nil, nil)
	require.True(t, ok)
	assert.Equal(t, 202, got.CategoryID)
	assert.InDelta(t, 0.95*0.95, got.Confidence, 0.001)
}

func TestSuggestWholeWordKeyword(t *testing.T) {
	c := testClassifier()
	got, ok := c.Suggest("DOWNTOWN STARBUCKS EXPRESS", "", nil, nil)
	require.True(t, ok)
	assert.Equal(t, 202, got.CategoryID)
	assert.InDelta(t, 0.9*0.95, got.Confidence, 0.001)
}

func TestSuggestSubstringKeyword(t *testing.T) {
	c := testClassifier()
	got, ok := c.Suggest("XXNETFLIXXX", "", nil, nil)
	require.True(t, ok)
	assert.Equal(t, 203, got.CategoryID)
	assert.InDelta(t, 0.85*0.98, got.Confidence, 0.001)
}

func TestSuggestShortKeywordGated(t *testing.T) {
	// "AT" appears inside "FLAT IRON" but short keywords never match by
	// substring.
	c := testClassifier()
	_, ok := c.Suggest("FLAT IRON", "", nil, nil)
	assert.False(t, ok)
}

func TestSuggestLearnedMapping(t *testing.T) {
	c := testClassifier()
	mappings := map[string]model.MerchantMapping{
		"LOCAL GYM": {Merchant: "LOCAL GYM", CategoryID: 204, Confidence: 0.9},
	}
	got, ok := c.Suggest("Local Gym", "", nil, mappings)
	require.True(t, ok)
	assert.Equal(t, 204, got.CategoryID)
	assert.InDelta(t, 0.9, got.Confidence, 0.001)
	assert.Contains(t, got.Reason, "learned mapping")
}

func TestSuggestLedgerHistory(t *testing.T) {
	c := testClassifier()
	ledger := []model.LedgerTransaction{
		{Merchant: "LOCAL COFFEE ROASTERS", Description: "LOCAL COFFEE ROASTERS", CategoryID: 202},
	}
	got, ok := c.Suggest("LOCAL COFFEE ROASTERS", "", ledger, nil)
	require.True(t, ok)
	assert.Equal(t, 202, got.CategoryID)
	assert.InDelta(t, 1.0, got.Confidence, 0.001)
}

func TestSuggestNothingBelowFloor(t *testing.T) {
	c := testClassifier()
	_, ok := c.Suggest("ZZQQX UNKNOWN VENDOR", "", nil, nil)
	assert.False(t, ok)

	_, ok = c.Suggest("", "", nil, nil)
	assert.False(t, ok)
}

func TestSuggestDefaultPatterns(t *testing.T) {
	c := New(DefaultPatterns(), testCategories())
	got, ok := c.Suggest("NETFLIX.COM", "", nil, nil)
	require.True(t, ok)
	assert.Equal(t, 203, got.CategoryID)
}

func TestFallback(t *testing.T) {
	c := testClassifier()
	got, ok := c.Fallback()
	require.True(t, ok)
	assert.Equal(t, 201, got.CategoryID)

	empty := New(NewPatternDB(nil), &fakeCategories{})
	_, ok = empty.Fallback()
	assert.False(t, ok)
}
