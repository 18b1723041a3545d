package model

// MatchStatus is the reconciliation outcome for one candidate.
type MatchStatus string

const (
	// StatusNew means no ledger transaction resembles the candidate.
	StatusNew MatchStatus = "new"
	// StatusMatched means a ledger transaction probably covers the candidate.
	StatusMatched MatchStatus = "matched"
	// StatusDuplicate means the candidate is already in the ledger.
	StatusDuplicate MatchStatus = "duplicate"
)

// ReconciliationMatch classifies one candidate against the ledger.
// MatchedExisting is always set for StatusDuplicate and StatusMatched,
// never for StatusNew.
type ReconciliationMatch struct {
	Candidate            CandidateTransaction
	Status               MatchStatus
	Confidence           float64 // duplicate-match certainty, always 0 for StatusNew
	MatchedExisting      *LedgerTransaction
	SuggestedCategoryID  int     // only meaningful for StatusNew
	SuggestionReason     string  // how the category suggestion was derived
	SuggestionConfidence float64 // classifier score behind the suggestion
}
