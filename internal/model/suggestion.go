package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency buckets for a recurring series.
type Frequency string

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiweekly  Frequency = "biweekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// RecurringSeriesSuggestion is a group of ledger transactions judged to be
// a repeating bill or subscription. Recomputed on demand, never stored.
type RecurringSeriesSuggestion struct {
	Merchant      string
	AverageAmount decimal.Decimal
	Frequency     Frequency
	Members       []LedgerTransaction
	Confidence    float64
	NextDueDate   time.Time
}

// Trend direction for a category's month-over-month spending.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// BudgetTrendSuggestion proposes a new monthly limit for one category.
type BudgetTrendSuggestion struct {
	CategoryID          int
	AverageMonthlySpend decimal.Decimal
	Trend               Trend
	SuggestedLimit      decimal.Decimal
	Rationale           string
}

// MappingSuggestion proposes a merchant-to-category mapping mined from
// consistent history.
type MappingSuggestion struct {
	Merchant         string
	CategoryID       int
	TransactionCount int
	ShareSameCat     float64 // fraction of the merchant's transactions in CategoryID
}
