package ledger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centsible-dev/centsible/internal/model"
)

func candidate(d, desc, amount string) model.CandidateTransaction {
	day, _ := time.Parse("2006-01-02", d)
	return model.CandidateTransaction{
		Date:        day,
		Description: desc,
		Amount:      dec(amount),
		Direction:   model.DirectionOutflow,
		Merchant:    desc,
	}
}

func TestReadAllMissingFile(t *testing.T) {
	svc := NewService(t.TempDir())
	got, err := svc.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAppendAssignsSequentialIDs(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir)

	stored, err := svc.Append([]model.CandidateTransaction{
		candidate("2025-01-15", "COFFEE", "5.75"),
		candidate("2025-01-16", "LUNCH", "12.00"),
		candidate("2025-02-01", "RENT", "1800.00"),
	}, []int{202, 202, 208})
	require.NoError(t, err)
	require.Len(t, stored, 3)

	assert.Equal(t, "2025-01-001", stored[0].ID)
	assert.Equal(t, "2025-01-002", stored[1].ID)
	assert.Equal(t, "2025-02-001", stored[2].ID)

	// A later batch continues each month's sequence.
	stored, err = svc.Append([]model.CandidateTransaction{
		candidate("2025-01-20", "DINNER", "40.00"),
	}, []int{202})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "2025-01-003", stored[0].ID)

	all, err := svc.ReadAll()
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestAppendCreatesFileWithHeader(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir)

	_, err := svc.Append([]model.CandidateTransaction{
		candidate("2025-01-15", "COFFEE", "5.75"),
	}, []int{202})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "ledger.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), Header))
}

func TestAppendRejectsMismatchedLengths(t *testing.T) {
	svc := NewService(t.TempDir())
	_, err := svc.Append([]model.CandidateTransaction{
		candidate("2025-01-15", "COFFEE", "5.75"),
	}, nil)
	assert.Error(t, err)
}

func TestAppendNothing(t *testing.T) {
	svc := NewService(t.TempDir())
	stored, err := svc.Append(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, stored)
}
