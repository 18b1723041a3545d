package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSignedAmount(t *testing.T) {
	amount := decimal.NewFromFloat(5.75)

	out := CandidateTransaction{Amount: amount, Direction: DirectionOutflow}
	assert.True(t, amount.Neg().Equal(out.SignedAmount()))

	in := CandidateTransaction{Amount: amount, Direction: DirectionInflow}
	assert.True(t, amount.Equal(in.SignedAmount()))

	stored := LedgerTransaction{Amount: amount, Direction: DirectionOutflow}
	assert.True(t, amount.Neg().Equal(stored.SignedAmount()))
}
