package decode

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/centsible-dev/centsible/internal/model"
	"github.com/centsible-dev/centsible/internal/normalize"
)

// CSVDecoder parses a delimited bank export using a ColumnMapping to find
// its columns. One instance per bank preset.
type CSVDecoder struct {
	Mapping ColumnMapping
}

// Format returns the preset name.
func (d *CSVDecoder) Format() string { return d.Mapping.Name }

// columnIndexes holds resolved header positions. -1 = column not present.
type columnIndexes struct {
	date, desc, amount, balance, typ int
}

// Decode reads the delimited text, resolves the header against the
// mapping, and converts each complete data row to a candidate. Rows
// missing any of date/description/amount are skipped and counted, never
// fatal. A mapping that resolves no required column fails with
// ConfigurationError; a well-formed file yielding zero candidates fails
// with EmptyResultError.
func (d *CSVDecoder) Decode(r io.Reader) (Batch, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var header []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		header = splitCells(line)
		break
	}
	if err := scanner.Err(); err != nil {
		return Batch{}, fmt.Errorf("reading input: %w", err)
	}
	if header == nil {
		return Batch{}, EmptyResultError{Detail: "file contains no rows"}
	}

	cols, err := d.resolveHeader(header)
	if err != nil {
		return Batch{}, err
	}

	var batch Batch
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		cand, ok := d.decodeRow(splitCells(line), cols)
		if !ok {
			batch.Skipped++
			continue
		}
		batch.Candidates = append(batch.Candidates, cand)
	}
	if err := scanner.Err(); err != nil {
		return Batch{}, fmt.Errorf("reading input: %w", err)
	}

	if len(batch.Candidates) == 0 {
		return Batch{}, EmptyResultError{
			Detail: fmt.Sprintf("no transactions found with preset %q, check the column mapping", d.Mapping.Name),
		}
	}
	return batch, nil
}

// resolveHeader maps configured column names to header positions.
// Matching is case-insensitive substring containment, so "Posting Date"
// satisfies a configured "date".
func (d *CSVDecoder) resolveHeader(header []string) (columnIndexes, error) {
	find := func(name string) int {
		if name == "" {
			return -1
		}
		want := strings.ToLower(name)
		for i, cell := range header {
			if strings.Contains(strings.ToLower(strings.TrimSpace(cell)), want) {
				return i
			}
		}
		return -1
	}

	cols := columnIndexes{
		date:    find(d.Mapping.Date),
		desc:    find(d.Mapping.Description),
		amount:  find(d.Mapping.Amount),
		balance: find(d.Mapping.Balance),
		typ:     find(d.Mapping.Type),
	}

	if cols.date < 0 && cols.desc < 0 && cols.amount < 0 {
		return cols, ConfigurationError{
			Preset: d.Mapping.Name,
			Detail: fmt.Sprintf("no configured column found in header %q", strings.Join(header, ",")),
		}
	}
	var missing []string
	if cols.date < 0 {
		missing = append(missing, d.Mapping.Date)
	}
	if cols.desc < 0 {
		missing = append(missing, d.Mapping.Description)
	}
	if cols.amount < 0 {
		missing = append(missing, d.Mapping.Amount)
	}
	if len(missing) > 0 {
		return cols, ConfigurationError{
			Preset: d.Mapping.Name,
			Detail: fmt.Sprintf("required column(s) %q not found in header", strings.Join(missing, ", ")),
		}
	}
	return cols, nil
}

// decodeRow converts one data row. Returns ok=false for rows that should
// be skipped (short rows, blank required cells, unparseable date/amount).
func (d *CSVDecoder) decodeRow(cells []string, cols columnIndexes) (model.CandidateTransaction, bool) {
	cell := func(i int) string {
		if i < 0 || i >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[i])
	}

	rawDate := cell(cols.date)
	rawDesc := cell(cols.desc)
	rawAmount := cell(cols.amount)
	if rawDate == "" || rawDesc == "" || rawAmount == "" {
		return model.CandidateTransaction{}, false
	}

	date, err := normalize.ParseDate(rawDate)
	if err != nil {
		return model.CandidateTransaction{}, false
	}
	amount, err := normalize.ParseAmount(rawAmount)
	if err != nil {
		return model.CandidateTransaction{}, false
	}

	rawType := cell(cols.typ)
	return model.CandidateTransaction{
		Date:        date,
		Description: rawDesc,
		Amount:      amount,
		Direction:   rowDirection(rawType, rawAmount, rawDesc),
		Merchant:    normalize.Merchant(rawDesc),
		RawAmount:   rawAmount,
		RawType:     rawType,
	}, true
}

// Keywords in a type cell or description that mark money coming in.
var inflowKeywords = []string{
	"CREDIT", "DEPOSIT", "DIRECT DEP", "PAYROLL", "INTEREST", "DIVIDEND", "REFUND",
}

// rowDirection classifies a tabular row as inflow or outflow. The type
// cell wins when present; a negative raw amount is always an outflow;
// otherwise inflow keywords in the description rescue deposits, and the
// default is outflow since unsigned exports are overwhelmingly spending.
func rowDirection(rawType, rawAmount, description string) model.Direction {
	if rawType != "" {
		upper := strings.ToUpper(rawType)
		for _, kw := range inflowKeywords {
			if strings.Contains(upper, kw) {
				return model.DirectionInflow
			}
		}
		return model.DirectionOutflow
	}

	if normalize.AmountSign(rawAmount) {
		return model.DirectionOutflow
	}

	upper := strings.ToUpper(description)
	for _, kw := range inflowKeywords {
		if strings.Contains(upper, kw) {
			return model.DirectionInflow
		}
	}
	return model.DirectionOutflow
}

// splitCells splits one line into cells. Double quotes toggle an in-field
// state so commas inside quoted fields are not separators; doubled quotes
// inside a quoted field collapse to a literal quote.
func splitCells(line string) []string {
	var cells []string
	var cur strings.Builder
	inField := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inField && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
				continue
			}
			inField = !inField
		case ch == ',' && !inField:
			cells = append(cells, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	cells = append(cells, cur.String())
	return cells
}
