package classify

// Pattern is one keyword rule in the static merchant-pattern database.
// Category is a category name, resolved against the user's categories at
// classification time since category IDs are profile-specific.
type Pattern struct {
	Category   string
	Keyword    string
	Confidence float64
}

// PatternDB is the immutable keyword database injected into the
// Classifier. Loaded once, never mutated.
type PatternDB struct {
	patterns []Pattern
}

// NewPatternDB builds a database from explicit patterns.
func NewPatternDB(patterns []Pattern) *PatternDB {
	return &PatternDB{patterns: patterns}
}

// Patterns returns the rule list.
func (db *PatternDB) Patterns() []Pattern {
	return db.patterns
}

// DefaultPatterns returns the built-in merchant keyword database.
func DefaultPatterns() *PatternDB {
	return NewPatternDB([]Pattern{
		// Groceries
		{Category: "Groceries", Keyword: "WHOLE FOODS", Confidence: 0.95},
		{Category: "Groceries", Keyword: "TRADER JOE", Confidence: 0.95},
		{Category: "Groceries", Keyword: "SAFEWAY", Confidence: 0.95},
		{Category: "Groceries", Keyword: "KROGER", Confidence: 0.95},
		{Category: "Groceries", Keyword: "ALDI", Confidence: 0.9},
		{Category: "Groceries", Keyword: "COSTCO", Confidence: 0.85},
		{Category: "Groceries", Keyword: "WEGMANS", Confidence: 0.95},

		// Dining
		{Category: "Dining Out", Keyword: "MCDONALD", Confidence: 0.95},
		{Category: "Dining Out", Keyword: "CHIPOTLE", Confidence: 0.95},
		{Category: "Dining Out", Keyword: "STARBUCKS", Confidence: 0.95},
		{Category: "Dining Out", Keyword: "DUNKIN", Confidence: 0.95},
		{Category: "Dining Out", Keyword: "DOORDASH", Confidence: 0.9},
		{Category: "Dining Out", Keyword: "GRUBHUB", Confidence: 0.9},
		{Category: "Dining Out", Keyword: "UBER EATS", Confidence: 0.9},
		{Category: "Dining Out", Keyword: "PIZZA", Confidence: 0.8},
		{Category: "Dining Out", Keyword: "RESTAURANT", Confidence: 0.8},
		{Category: "Dining Out", Keyword: "CAFE", Confidence: 0.75},

		// Transport
		{Category: "Transport", Keyword: "UBER", Confidence: 0.85},
		{Category: "Transport", Keyword: "LYFT", Confidence: 0.95},
		{Category: "Transport", Keyword: "SHELL", Confidence: 0.9},
		{Category: "Transport", Keyword: "CHEVRON", Confidence: 0.9},
		{Category: "Transport", Keyword: "EXXON", Confidence: 0.9},
		{Category: "Transport", Keyword: "PARKING", Confidence: 0.85},
		{Category: "Transport", Keyword: "TRANSIT", Confidence: 0.85},

		// Subscriptions & entertainment
		{Category: "Subscriptions", Keyword: "NETFLIX", Confidence: 0.98},
		{Category: "Subscriptions", Keyword: "SPOTIFY", Confidence: 0.98},
		{Category: "Subscriptions", Keyword: "HULU", Confidence: 0.98},
		{Category: "Subscriptions", Keyword: "DISNEY", Confidence: 0.9},
		{Category: "Subscriptions", Keyword: "YOUTUBE PREMIUM", Confidence: 0.95},
		{Category: "Subscriptions", Keyword: "APPLE.COM/BILL", Confidence: 0.9},
		{Category: "Subscriptions", Keyword: "AMAZON PRIME", Confidence: 0.95},
		{Category: "Entertainment", Keyword: "CINEMA", Confidence: 0.9},
		{Category: "Entertainment", Keyword: "THEATRE", Confidence: 0.85},
		{Category: "Entertainment", Keyword: "STEAM", Confidence: 0.8},

		// Utilities & housing
		{Category: "Utilities", Keyword: "COMCAST", Confidence: 0.95},
		{Category: "Utilities", Keyword: "VERIZON", Confidence: 0.95},
		{Category: "Utilities", Keyword: "T-MOBILE", Confidence: 0.95},
		{Category: "Utilities", Keyword: "AT&T", Confidence: 0.9},
		{Category: "Utilities", Keyword: "CON EDISON", Confidence: 0.95},
		{Category: "Utilities", Keyword: "NATIONAL GRID", Confidence: 0.95},
		{Category: "Utilities", Keyword: "ELECTRIC", Confidence: 0.8},
		{Category: "Utilities", Keyword: "WATER", Confidence: 0.7},
		{Category: "Housing", Keyword: "RENT", Confidence: 0.8},
		{Category: "Housing", Keyword: "MORTGAGE", Confidence: 0.9},

		// Shopping
		{Category: "Shopping", Keyword: "AMAZON", Confidence: 0.85},
		{Category: "Shopping", Keyword: "TARGET", Confidence: 0.85},
		{Category: "Shopping", Keyword: "WALMART", Confidence: 0.85},
		{Category: "Shopping", Keyword: "BEST BUY", Confidence: 0.9},
		{Category: "Shopping", Keyword: "IKEA", Confidence: 0.9},

		// Health
		{Category: "Health", Keyword: "PHARMACY", Confidence: 0.9},
		{Category: "Health", Keyword: "CVS", Confidence: 0.85},
		{Category: "Health", Keyword: "WALGREENS", Confidence: 0.85},
		{Category: "Health", Keyword: "DENTAL", Confidence: 0.9},
		{Category: "Health", Keyword: "MEDICAL", Confidence: 0.85},

		// Income
		{Category: "Salary", Keyword: "PAYROLL", Confidence: 0.95},
		{Category: "Salary", Keyword: "DIRECT DEP", Confidence: 0.9},

		// Fees
		{Category: "Fees", Keyword: "OVERDRAFT", Confidence: 0.95},
		{Category: "Fees", Keyword: "SERVICE FEE", Confidence: 0.95},
		{Category: "Fees", Keyword: "ATM FEE", Confidence: 0.95},
	})
}
