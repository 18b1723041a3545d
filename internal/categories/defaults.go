package categories

import (
	"github.com/shopspring/decimal"

	"github.com/centsible-dev/centsible/internal/model"
)

// DefaultSet returns the starter categories created by `centsible init`.
func DefaultSet() []model.Category {
	budget := func(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
	return []model.Category{
		{ID: 101, Name: "Salary", Type: model.CategoryTypeIncome},
		{ID: 102, Name: "Other Income", Type: model.CategoryTypeIncome},
		{ID: 201, Name: "Housing", Type: model.CategoryTypeExpense, MonthlyBudget: budget(1800)},
		{ID: 202, Name: "Groceries", Type: model.CategoryTypeExpense, MonthlyBudget: budget(500)},
		{ID: 203, Name: "Dining Out", Type: model.CategoryTypeExpense, MonthlyBudget: budget(200)},
		{ID: 204, Name: "Transport", Type: model.CategoryTypeExpense, MonthlyBudget: budget(150)},
		{ID: 205, Name: "Utilities", Type: model.CategoryTypeExpense, MonthlyBudget: budget(250)},
		{ID: 206, Name: "Subscriptions", Type: model.CategoryTypeExpense, MonthlyBudget: budget(60)},
		{ID: 207, Name: "Entertainment", Type: model.CategoryTypeExpense, MonthlyBudget: budget(120)},
		{ID: 208, Name: "Shopping", Type: model.CategoryTypeExpense, MonthlyBudget: budget(200)},
		{ID: 209, Name: "Health", Type: model.CategoryTypeExpense, MonthlyBudget: budget(100)},
		{ID: 210, Name: "Fees", Type: model.CategoryTypeExpense},
		{ID: 301, Name: "Emergency Fund", Type: model.CategoryTypeSavings, MonthlyBudget: budget(300)},
	}
}
