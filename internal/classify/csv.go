package classify

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/centsible-dev/centsible/internal/model"
)

// Header is the CSV header for mappings.csv.
const Header = "merchant,category_id,confidence,times_used"

const (
	numFields     = 4
	colMerchant   = 0
	colCategoryID = 1
	colConfidence = 2
	colTimesUsed  = 3
)

// ReadMappings reads all learned mappings from a mappings.csv reader.
func ReadMappings(r io.Reader) ([]model.MerchantMapping, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading mappings CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var mappings []model.MerchantMapping
	for i, rec := range records[1:] {
		m, err := UnmarshalMapping(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		mappings = append(mappings, m)
	}
	return mappings, nil
}

// WriteMappings writes mappings to a mappings.csv writer (including header).
func WriteMappings(w io.Writer, mappings []model.MerchantMapping) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, m := range mappings {
		if err := cw.Write(MarshalMapping(m)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalMapping converts a MerchantMapping to a CSV row.
func MarshalMapping(m model.MerchantMapping) []string {
	row := make([]string, numFields)
	row[colMerchant] = m.Merchant
	row[colCategoryID] = strconv.Itoa(m.CategoryID)
	row[colConfidence] = strconv.FormatFloat(m.Confidence, 'f', 2, 64)
	row[colTimesUsed] = strconv.Itoa(m.TimesUsed)
	return row
}

// UnmarshalMapping converts a CSV row to a MerchantMapping.
func UnmarshalMapping(record []string) (model.MerchantMapping, error) {
	if len(record) != numFields {
		return model.MerchantMapping{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	categoryID, err := strconv.Atoi(record[colCategoryID])
	if err != nil {
		return model.MerchantMapping{}, fmt.Errorf("parsing category_id %q: %w", record[colCategoryID], err)
	}

	confidence, err := strconv.ParseFloat(record[colConfidence], 64)
	if err != nil {
		return model.MerchantMapping{}, fmt.Errorf("parsing confidence %q: %w", record[colConfidence], err)
	}
	if confidence < 0 || confidence > 1 {
		return model.MerchantMapping{}, fmt.Errorf("confidence %s out of range [0,1]", record[colConfidence])
	}

	timesUsed, err := strconv.Atoi(record[colTimesUsed])
	if err != nil {
		return model.MerchantMapping{}, fmt.Errorf("parsing times_used %q: %w", record[colTimesUsed], err)
	}

	return model.MerchantMapping{
		Merchant:   record[colMerchant],
		CategoryID: categoryID,
		Confidence: confidence,
		TimesUsed:  timesUsed,
	}, nil
}
