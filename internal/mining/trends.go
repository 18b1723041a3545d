package mining

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/centsible-dev/centsible/internal/model"
)

// Trend ratio boundaries: second-half over first-half spend.
const (
	trendIncreasingRatio = 1.15
	trendDecreasingRatio = 0.85
)

var (
	overBudgetRatio    = decimal.NewFromFloat(1.2)
	underBudgetRatio   = decimal.NewFromFloat(0.5)
	decreasingBelow    = decimal.NewFromFloat(0.8)
	meaningfulBudget   = decimal.NewFromInt(50)
	suggestOverFactor  = decimal.NewFromFloat(1.1)
	suggestUnderFactor = decimal.NewFromFloat(1.2)
	suggestRiseFactor  = decimal.NewFromFloat(1.15)
)

// SuggestBudgets buckets each expense category's outflows over the last
// windowMonths months and proposes a new limit where spending has drifted
// from the budget. Most categories produce no suggestion; that is the
// expected case, not an error.
func SuggestBudgets(
	ledger []model.LedgerTransaction,
	categories map[int]model.Category,
	windowMonths int,
	now time.Time,
) []model.BudgetTrendSuggestion {
	if windowMonths < 2 {
		windowMonths = 2
	}
	cutoff := monthStart(now).AddDate(0, -(windowMonths - 1), 0)

	// monthly[categoryID][months-since-cutoff] = spend
	monthly := make(map[int][]decimal.Decimal)
	for _, t := range ledger {
		if t.Direction != model.DirectionOutflow {
			continue
		}
		cat, ok := categories[t.CategoryID]
		if !ok || cat.Type != model.CategoryTypeExpense {
			continue
		}
		if t.Date.Before(cutoff) || t.Date.After(now) {
			continue
		}
		idx := monthIndex(cutoff, t.Date)
		if idx < 0 || idx >= windowMonths {
			continue
		}
		buckets := monthly[t.CategoryID]
		if buckets == nil {
			buckets = make([]decimal.Decimal, windowMonths)
			for i := range buckets {
				buckets[i] = decimal.Zero
			}
		}
		buckets[idx] = buckets[idx].Add(t.Amount)
		monthly[t.CategoryID] = buckets
	}

	var suggestions []model.BudgetTrendSuggestion
	for catID, buckets := range monthly {
		cat := categories[catID]
		if s, ok := evaluateCategory(cat, buckets); ok {
			suggestions = append(suggestions, s)
		}
	}

	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].CategoryID < suggestions[j].CategoryID
	})
	return suggestions
}

// evaluateCategory computes average monthly spend and trend for one
// category and applies the suggestion rules.
func evaluateCategory(cat model.Category, buckets []decimal.Decimal) (model.BudgetTrendSuggestion, bool) {
	active := 0
	total := decimal.Zero
	for _, b := range buckets {
		if !b.IsZero() {
			active++
		}
		total = total.Add(b)
	}
	if active == 0 {
		return model.BudgetTrendSuggestion{}, false
	}
	// Average over months that saw any spending, so a category used three
	// of six months is not diluted to half its real monthly cost.
	avg := total.Div(decimal.NewFromInt(int64(active)))

	trend := computeTrend(buckets)

	budget := cat.MonthlyBudget
	s := model.BudgetTrendSuggestion{
		CategoryID:          cat.ID,
		AverageMonthlySpend: avg.Round(2),
		Trend:               trend,
	}

	switch {
	case budget.IsPositive() && avg.GreaterThan(budget.Mul(overBudgetRatio)):
		s.SuggestedLimit = avg.Mul(suggestOverFactor).Round(2)
		s.Rationale = fmt.Sprintf("spending averages %s, over 120%% of the %s budget", avg.Round(2), budget)
	case budget.GreaterThan(meaningfulBudget) && avg.LessThan(budget.Mul(underBudgetRatio)):
		s.SuggestedLimit = avg.Mul(suggestUnderFactor).Round(2)
		s.Rationale = fmt.Sprintf("spending averages %s, under half of the %s budget", avg.Round(2), budget)
	case trend == model.TrendIncreasing:
		s.SuggestedLimit = avg.Mul(suggestRiseFactor).Round(2)
		s.Rationale = "month-over-month spending is increasing"
	case trend == model.TrendDecreasing && budget.IsPositive() && avg.LessThan(budget.Mul(decreasingBelow)):
		s.SuggestedLimit = avg.Mul(suggestOverFactor).Round(2)
		s.Rationale = "spending is decreasing and sits under 80% of budget"
	default:
		return model.BudgetTrendSuggestion{}, false
	}
	return s, true
}

// computeTrend compares the first half of the window against the second.
func computeTrend(buckets []decimal.Decimal) model.Trend {
	half := len(buckets) / 2
	first := decimal.Zero
	second := decimal.Zero
	for i, b := range buckets {
		if i < half {
			first = first.Add(b)
		} else {
			second = second.Add(b)
		}
	}
	if first.IsZero() {
		return model.TrendStable
	}

	ratio, _ := second.Div(first).Float64()
	// Normalize for uneven halves when the window is odd.
	if len(buckets)%2 != 0 && len(buckets) > half {
		ratio *= float64(half) / float64(len(buckets)-half)
	}

	switch {
	case ratio > trendIncreasingRatio:
		return model.TrendIncreasing
	case ratio < trendDecreasingRatio:
		return model.TrendDecreasing
	default:
		return model.TrendStable
	}
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// monthIndex counts whole calendar months from cutoff to t.
func monthIndex(cutoff, t time.Time) int {
	return (t.Year()-cutoff.Year())*12 + int(t.Month()) - int(cutoff.Month())
}
