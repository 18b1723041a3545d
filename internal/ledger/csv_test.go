package ledger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centsible-dev/centsible/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestRoundTrip(t *testing.T) {
	txns := []model.LedgerTransaction{
		{
			ID:          "2025-01-001",
			Date:        date(2025, 1, 15),
			Description: "STARBUCKS #4471",
			Amount:      dec("5.75"),
			Direction:   model.DirectionOutflow,
			CategoryID:  202,
			Merchant:    "STARBUCKS",
		},
		{
			ID:          "2025-01-002",
			Date:        date(2025, 1, 16),
			Description: "ACME CORP PAYROLL",
			Amount:      dec("2500.00"),
			Direction:   model.DirectionInflow,
			CategoryID:  101,
			Merchant:    "ACME CORP",
			Recurring:   true,
		},
	}

	var buf bytes.Buffer
	err := WriteTransactions(&buf, txns)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(buf.String(), "txn_id,"))

	got, err := ReadTransactions(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	for i := range txns {
		assert.Equal(t, txns[i].ID, got[i].ID)
		assert.True(t, txns[i].Date.Equal(got[i].Date))
		assert.Equal(t, txns[i].Description, got[i].Description)
		assert.True(t, txns[i].Amount.Equal(got[i].Amount), "amount mismatch row %d", i)
		assert.Equal(t, txns[i].Direction, got[i].Direction)
		assert.Equal(t, txns[i].CategoryID, got[i].CategoryID)
		assert.Equal(t, txns[i].Merchant, got[i].Merchant)
		assert.Equal(t, txns[i].Recurring, got[i].Recurring)
	}
}

func TestUnmarshalRejectsNegativeAmount(t *testing.T) {
	_, err := UnmarshalTransaction([]string{
		"2025-01-001", "2025-01-15", "COFFEE", "-5.75", "outflow", "202", "COFFEE", "",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative amount")
}

func TestUnmarshalRejectsUnknownDirection(t *testing.T) {
	_, err := UnmarshalTransaction([]string{
		"2025-01-001", "2025-01-15", "COFFEE", "5.75", "sideways", "202", "COFFEE", "",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown direction")
}

func TestReadTransactionsReportsRow(t *testing.T) {
	input := Header + "\n" +
		"2025-01-001,2025-01-15,COFFEE,5.75,outflow,202,COFFEE,\n" +
		"2025-01-002,bogus,COFFEE,5.75,outflow,202,COFFEE,\n"

	_, err := ReadTransactions(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
}
