package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/centsible-dev/centsible/internal/model"
)

// Header is the CSV header for ledger.csv.
const Header = "txn_id,date,description,amount,direction,category_id,merchant,recurring"

const (
	numFields     = 8
	dateFormat    = "2006-01-02"
	colTxnID      = 0
	colDate       = 1
	colDesc       = 2
	colAmount     = 3
	colDirection  = 4
	colCategoryID = 5
	colMerchant   = 6
	colRecurring  = 7
)

// ReadTransactions reads all transactions from a ledger.csv reader.
func ReadTransactions(r io.Reader) ([]model.LedgerTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var txns []model.LedgerTransaction
	for i, rec := range records[1:] {
		txn, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// WriteTransactions writes transactions to a ledger.csv writer (including
// header).
func WriteTransactions(w io.Writer, txns []model.LedgerTransaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// AppendTransactions appends transactions to an existing ledger.csv writer
// (no header).
func AppendTransactions(w io.Writer, txns []model.LedgerTransaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// MarshalTransaction converts a LedgerTransaction to a CSV row.
func MarshalTransaction(txn model.LedgerTransaction) []string {
	row := make([]string, numFields)
	row[colTxnID] = txn.ID
	row[colDate] = txn.Date.Format(dateFormat)
	row[colDesc] = txn.Description
	row[colAmount] = txn.Amount.StringFixed(2)
	row[colDirection] = string(txn.Direction)
	row[colCategoryID] = strconv.Itoa(txn.CategoryID)
	row[colMerchant] = txn.Merchant
	if txn.Recurring {
		row[colRecurring] = "true"
	}
	return row
}

// UnmarshalTransaction converts a CSV row to a LedgerTransaction.
func UnmarshalTransaction(record []string) (model.LedgerTransaction, error) {
	if len(record) != numFields {
		return model.LedgerTransaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.LedgerTransaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.LedgerTransaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}
	if amount.IsNegative() {
		return model.LedgerTransaction{}, fmt.Errorf("negative amount %s: direction carries the sign", record[colAmount])
	}

	direction := model.Direction(record[colDirection])
	if direction != model.DirectionInflow && direction != model.DirectionOutflow {
		return model.LedgerTransaction{}, fmt.Errorf("unknown direction %q", record[colDirection])
	}

	categoryID, err := strconv.Atoi(record[colCategoryID])
	if err != nil {
		return model.LedgerTransaction{}, fmt.Errorf("parsing category_id %q: %w", record[colCategoryID], err)
	}

	return model.LedgerTransaction{
		ID:          record[colTxnID],
		Date:        date,
		Description: record[colDesc],
		Amount:      amount,
		Direction:   direction,
		CategoryID:  categoryID,
		Merchant:    record[colMerchant],
		Recurring:   record[colRecurring] == "true",
	}, nil
}
