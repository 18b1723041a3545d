package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction indicates which way money moved.
type Direction string

const (
	DirectionInflow  Direction = "inflow"
	DirectionOutflow Direction = "outflow"
)

// CandidateTransaction is a decoded, not-yet-accepted transaction awaiting
// reconciliation. Amount is always non-negative; Direction carries the sign.
type CandidateTransaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Direction   Direction
	Merchant    string // normalized, may be empty when extraction found nothing better
	RawAmount   string // amount cell as it appeared in the source file
	RawType     string // type cell/code as it appeared in the source file
}

// SignedAmount returns the amount with direction applied (outflows negative).
func (c CandidateTransaction) SignedAmount() decimal.Decimal {
	if c.Direction == DirectionOutflow {
		return c.Amount.Neg()
	}
	return c.Amount
}

// LedgerTransaction is an already-accepted transaction owned by the ledger.
type LedgerTransaction struct {
	ID          string // "YYYY-MM-NNN"
	Date        time.Time
	Description string
	Amount      decimal.Decimal // non-negative; Direction carries the sign
	Direction   Direction
	CategoryID  int
	Merchant    string
	Recurring   bool // already confirmed as part of a recurring series
}

// SignedAmount returns the amount with direction applied (outflows negative).
func (t LedgerTransaction) SignedAmount() decimal.Decimal {
	if t.Direction == DirectionOutflow {
		return t.Amount.Neg()
	}
	return t.Amount
}
