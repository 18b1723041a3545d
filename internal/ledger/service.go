package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/centsible-dev/centsible/internal/id"
	"github.com/centsible-dev/centsible/internal/model"
)

const ledgerFile = "ledger.csv"

// Service reads and appends the profile's ledger.csv. The engine packages
// only ever see the in-memory slice it loads.
type Service struct {
	profileRoot string
}

// NewService creates a ledger Service for a profile root.
func NewService(profileRoot string) *Service {
	return &Service{profileRoot: profileRoot}
}

// ReadAll returns every transaction in the ledger. A missing file is an
// empty ledger, not an error.
func (s *Service) ReadAll() ([]model.LedgerTransaction, error) {
	f, err := os.Open(s.path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	txns, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	return txns, nil
}

// Append assigns IDs to accepted candidates and appends them to
// ledger.csv, creating the file with a header if needed. categoryIDs is
// indexed parallel to candidates. Returns the stored transactions.
func (s *Service) Append(candidates []model.CandidateTransaction, categoryIDs []int) ([]model.LedgerTransaction, error) {
	if len(candidates) != len(categoryIDs) {
		return nil, fmt.Errorf("got %d candidates but %d category IDs", len(candidates), len(categoryIDs))
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	existing, err := s.ReadAll()
	if err != nil {
		return nil, err
	}

	// Highest sequence already used per year-month.
	maxSeq := make(map[[2]int]int)
	for _, t := range existing {
		y, m, seq, err := id.ParseTxnID(t.ID)
		if err != nil {
			continue
		}
		k := [2]int{y, m}
		if seq > maxSeq[k] {
			maxSeq[k] = seq
		}
	}

	newTxns := make([]model.LedgerTransaction, 0, len(candidates))
	for i, cand := range candidates {
		k := [2]int{cand.Date.Year(), int(cand.Date.Month())}
		maxSeq[k]++
		newTxns = append(newTxns, model.LedgerTransaction{
			ID:          id.FormatTxnID(k[0], k[1], maxSeq[k]),
			Date:        cand.Date,
			Description: cand.Description,
			Amount:      cand.Amount,
			Direction:   cand.Direction,
			CategoryID:  categoryIDs[i],
			Merchant:    cand.Merchant,
		})
	}

	path := s.path()
	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendTransactions(f, newTxns); err != nil {
		return nil, fmt.Errorf("appending transactions: %w", err)
	}
	return newTxns, nil
}

func (s *Service) path() string {
	return filepath.Join(s.profileRoot, ledgerFile)
}
