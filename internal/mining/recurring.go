// Package mining scans ledger history for recurring bills, spending
// trends, and mapping candidates. Miners never fail: absence of qualifying
// patterns is an empty result, not an error.
package mining

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/centsible-dev/centsible/internal/model"
	"github.com/centsible-dev/centsible/internal/normalize"
)

// A group needs at least this many transactions to qualify as a series.
const minSeriesSize = 3

// Every amount must sit within this fraction of the group average.
var amountTolerance = decimal.NewFromFloat(0.05)

// Every interval must sit within this many days of the average interval.
const intervalToleranceDays = 7.0

// Fuzzy-name similarity above which a group is considered to overlap an
// already-tracked recurring record.
const knownOverlapSimilarity = 0.7

// frequencyBuckets classifies an average interval in days. Intervals
// outside every bucket disqualify the group.
var frequencyBuckets = []struct {
	min, max   float64
	frequency  model.Frequency
	confidence float64
}{
	{5, 9, model.FrequencyWeekly, 0.90},
	{12, 16, model.FrequencyBiweekly, 0.90},
	{28, 33, model.FrequencyMonthly, 0.95},
	{88, 95, model.FrequencyQuarterly, 0.90},
	{360, 370, model.FrequencyYearly, 0.85},
}

// DetectRecurring groups ledger transactions by normalized merchant and
// returns the groups showing consistent amounts at consistent intervals.
// Earnings never qualify: transactions already flagged recurring and all
// income/savings categories are excluded up front, and groups overlapping
// a known recurring merchant by fuzzy name match are skipped. Results are
// sorted by confidence times transaction count, descending.
func DetectRecurring(
	ledger []model.LedgerTransaction,
	categories map[int]model.Category,
	knownRecurring []string,
) []model.RecurringSeriesSuggestion {
	groups := make(map[string][]model.LedgerTransaction)
	for _, t := range ledger {
		if t.Recurring || t.Direction != model.DirectionOutflow {
			continue
		}
		if cat, ok := categories[t.CategoryID]; ok {
			if cat.Type == model.CategoryTypeIncome || cat.Type == model.CategoryTypeSavings {
				continue
			}
		}
		key := normalize.Key(t.Merchant)
		if key == "" {
			key = normalize.Key(normalize.Merchant(t.Description))
		}
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], t)
	}

	var suggestions []model.RecurringSeriesSuggestion
	for merchant, members := range groups {
		s, ok := evaluateGroup(merchant, members)
		if !ok {
			continue
		}
		if overlapsKnown(merchant, knownRecurring) {
			continue
		}
		suggestions = append(suggestions, s)
	}

	sort.Slice(suggestions, func(i, j int) bool {
		si := suggestions[i].Confidence * float64(len(suggestions[i].Members))
		sj := suggestions[j].Confidence * float64(len(suggestions[j].Members))
		if si != sj {
			return si > sj
		}
		return suggestions[i].Merchant < suggestions[j].Merchant
	})
	return suggestions
}

// evaluateGroup checks one merchant group for amount and interval
// consistency and classifies its frequency.
func evaluateGroup(merchant string, members []model.LedgerTransaction) (model.RecurringSeriesSuggestion, bool) {
	if len(members) < minSeriesSize {
		return model.RecurringSeriesSuggestion{}, false
	}

	sorted := make([]model.LedgerTransaction, len(members))
	copy(sorted, members)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	// Amount consistency: every amount within 5% of the mean.
	total := decimal.Zero
	for _, t := range sorted {
		total = total.Add(t.Amount)
	}
	avg := total.Div(decimal.NewFromInt(int64(len(sorted))))
	if avg.IsZero() {
		return model.RecurringSeriesSuggestion{}, false
	}
	maxDrift := avg.Mul(amountTolerance)
	for _, t := range sorted {
		if t.Amount.Sub(avg).Abs().GreaterThan(maxDrift) {
			return model.RecurringSeriesSuggestion{}, false
		}
	}

	// Interval consistency: every gap within 7 days of the mean gap.
	intervals := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		days := sorted[i].Date.Sub(sorted[i-1].Date).Hours() / 24
		intervals = append(intervals, days)
	}
	var sum float64
	for _, d := range intervals {
		sum += d
	}
	avgInterval := sum / float64(len(intervals))
	for _, d := range intervals {
		if diff := d - avgInterval; diff > intervalToleranceDays || diff < -intervalToleranceDays {
			return model.RecurringSeriesSuggestion{}, false
		}
	}

	freq, confidence, ok := classifyInterval(avgInterval)
	if !ok {
		return model.RecurringSeriesSuggestion{}, false
	}

	last := sorted[len(sorted)-1].Date
	next := last.Add(time.Duration(avgInterval*24) * time.Hour)

	return model.RecurringSeriesSuggestion{
		Merchant:      merchant,
		AverageAmount: avg.Round(2),
		Frequency:     freq,
		Members:       sorted,
		Confidence:    confidence,
		NextDueDate:   next,
	}, true
}

func classifyInterval(avgDays float64) (model.Frequency, float64, bool) {
	for _, b := range frequencyBuckets {
		if avgDays >= b.min && avgDays <= b.max {
			return b.frequency, b.confidence, true
		}
	}
	return "", 0, false
}

func overlapsKnown(merchant string, known []string) bool {
	for _, k := range known {
		if normalize.Similarity(merchant, k) > knownOverlapSimilarity {
			return true
		}
	}
	return false
}
