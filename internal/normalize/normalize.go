// Package normalize turns heterogeneous bank-export field values into
// canonical forms shared by every decoder: dates, amounts, and merchant
// names extracted from free-text descriptions.
package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// datePatterns pairs a recognizer with a time layout. Detection runs in
// order; the first pattern that matches the whole string wins.
var datePatterns = []struct {
	re     *regexp.Regexp
	layout string
}{
	{regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`), "1/2/2006"},
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), "2006-01-02"},
	{regexp.MustCompile(`^\d{1,2}-\d{1,2}-\d{4}$`), "1-2-2006"},
	{regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2}$`), "1/2/06"},
	{regexp.MustCompile(`^\d{8}$`), "20060102"},
	{regexp.MustCompile(`^\d{14}(\.\d+)?(\[.*\])?$`), ""}, // OFX timestamp, handled below
}

// ParseDate detects the format of a date string and parses it. Unrecognized
// formats are an error; silently substituting the current date would
// mis-date transactions.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, p := range datePatterns {
		if !p.re.MatchString(s) {
			continue
		}
		layout := p.layout
		if layout == "" {
			// OFX timestamp: keep the date portion, drop time and timezone.
			layout = "20060102"
			s = s[:8]
		}
		t, err := time.Parse(layout, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date format %q", s)
}

var amountJunk = strings.NewReplacer("$", "", "€", "", "£", "", ",", "", " ", "", " ", "")

// ParseAmount strips currency symbols, thousands separators, and whitespace,
// then parses the remainder and returns its absolute value. The caller keeps
// the original string when the sign matters.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := amountJunk.Replace(strings.TrimSpace(s))
	// Tolerate accounting-style parentheses for negatives.
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		cleaned = "-" + cleaned[1:len(cleaned)-1]
	}
	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("unparseable amount %q", s)
	}
	return d.Abs(), nil
}

// AmountSign reports whether a raw amount string carries a negative sign
// (leading minus or accounting parentheses).
func AmountSign(s string) bool {
	cleaned := strings.TrimSpace(amountJunk.Replace(s))
	return strings.HasPrefix(cleaned, "-") ||
		(strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")"))
}

const maxMerchantLen = 40

// Boilerplate the card networks and banks prepend to descriptions.
var merchantPrefixes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^PURCHASE\s+AUTHORIZED\s+ON\s+\d{1,2}/\d{1,2}\s*`),
	regexp.MustCompile(`(?i)^POS\s+PURCHASE\s*-?\s*`),
	regexp.MustCompile(`(?i)^DEBIT\s+CARD\s+PURCHASE\s*-?\s*`),
	regexp.MustCompile(`(?i)^ACH\s+(DEBIT|CREDIT|PAYMENT|WITHDRAWAL)?\s*-?\s*`),
	regexp.MustCompile(`(?i)^RECURRING\s+PAYMENT\s*-?\s*`),
	regexp.MustCompile(`(?i)^CHECKCARD\s+\d{4}\s*`),
}

var merchantSuffixes = []*regexp.Regexp{
	regexp.MustCompile(`\s*#\d+\s*$`),      // store numbers: "STARBUCKS #4471"
	regexp.MustCompile(`\s+\d{6,}\s*$`),    // trailing reference numbers
	regexp.MustCompile(`\s+[Xx*]{4,}\d*$`), // masked card numbers
}

// Merchant extracts a normalized merchant token from a free-text bank
// description. This is heuristic cleanup, not a parser: when stripping
// leaves nothing usable the full description is returned, never an empty
// string.
func Merchant(description string) string {
	s := strings.TrimSpace(description)
	if s == "" {
		return ""
	}

	for _, re := range merchantPrefixes {
		s = re.ReplaceAllString(s, "")
	}
	for _, re := range merchantSuffixes {
		s = re.ReplaceAllString(s, "")
	}
	s = strings.TrimSpace(strings.Trim(s, "-*/ "))

	if s == "" {
		s = strings.TrimSpace(description)
	}
	if len(s) > maxMerchantLen {
		s = strings.TrimSpace(s[:maxMerchantLen])
	}
	return s
}

// Key folds a merchant string for use as a grouping or lookup key.
func Key(merchant string) string {
	return strings.ToUpper(strings.TrimSpace(merchant))
}
