package categories

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/centsible-dev/centsible/internal/model"
)

// Header is the CSV header for categories.csv.
const Header = "category_id,name,type,monthly_budget"

const (
	numFields = 4
	colID     = 0
	colName   = 1
	colType   = 2
	colBudget = 3
)

// ReadCategories reads categories.csv.
func ReadCategories(r io.Reader) ([]model.Category, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading categories CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var cats []model.Category
	for i, rec := range records[1:] {
		cat, err := UnmarshalCategory(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		cats = append(cats, cat)
	}
	return cats, nil
}

// WriteCategories writes categories.csv.
func WriteCategories(w io.Writer, cats []model.Category) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, cat := range cats {
		if err := cw.Write(MarshalCategory(cat)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalCategory converts a Category to a CSV row.
func MarshalCategory(cat model.Category) []string {
	row := make([]string, numFields)
	row[colID] = strconv.Itoa(cat.ID)
	row[colName] = cat.Name
	row[colType] = string(cat.Type)
	if !cat.MonthlyBudget.IsZero() {
		row[colBudget] = cat.MonthlyBudget.StringFixed(2)
	}
	return row
}

// UnmarshalCategory converts a CSV row to a Category.
func UnmarshalCategory(record []string) (model.Category, error) {
	if len(record) != numFields {
		return model.Category{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	id, err := strconv.Atoi(record[colID])
	if err != nil {
		return model.Category{}, fmt.Errorf("parsing category_id %q: %w", record[colID], err)
	}

	var budget decimal.Decimal
	if record[colBudget] != "" {
		budget, err = decimal.NewFromString(record[colBudget])
		if err != nil {
			return model.Category{}, fmt.Errorf("parsing monthly_budget %q: %w", record[colBudget], err)
		}
	}

	return model.Category{
		ID:            id,
		Name:          record[colName],
		Type:          model.CategoryType(record[colType]),
		MonthlyBudget: budget,
	}, nil
}
