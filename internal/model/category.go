package model

import "github.com/shopspring/decimal"

// CategoryType classifies categories in the budget.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeSavings CategoryType = "savings"
)

// Category represents a row in categories.csv.
type Category struct {
	ID            int
	Name          string
	Type          CategoryType
	MonthlyBudget decimal.Decimal // zero = no budget set
}

// MerchantMapping is a learned merchant-to-category association. The
// normalized merchant string is the unique key. Confidence stays in [0,1];
// it is only changed through classify.UpdateMapping, never in place.
type MerchantMapping struct {
	Merchant   string
	CategoryID int
	Confidence float64
	TimesUsed  int
}
