package decode

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/centsible-dev/centsible/internal/model"
	"github.com/centsible-dev/centsible/internal/normalize"
)

// OFXDecoder parses OFX bank exports, including the older SGML dialect
// where leaf tags carry a value on the same line and have no closing tag.
// That dialect is repaired into strictly nested markup first, then loaded
// with a standard tree parser.
type OFXDecoder struct{}

// Format returns the decoder name.
func (d *OFXDecoder) Format() string { return "ofx" }

const ofxRoot = "<OFX>"

// Transaction element names recognized inside a statement.
var transactionElements = map[string]bool{
	"STMTTRN":   true,
	"CCSTMTTRN": true,
}

// TRNTYPE codes that mean money coming in.
var inflowTypeCodes = map[string]bool{
	"CREDIT":    true,
	"DEP":       true,
	"INT":       true,
	"DIV":       true,
	"DIRECTDEP": true,
	"REPEATPMT": true,
}

// Decode locates the OFX payload, repairs the leaf-tag dialect when
// needed, and extracts statement transactions. Records missing any of
// date, amount, or transaction id are skipped and counted; only a missing
// root or an unloadable document is fatal.
func (d *OFXDecoder) Decode(r io.Reader) (Batch, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Batch{}, fmt.Errorf("reading input: %w", err)
	}

	text := string(raw)
	rootIdx := strings.Index(text, ofxRoot)
	if rootIdx < 0 {
		return Batch{}, FormatError{Detail: "OFX root marker not found"}
	}
	payload := text[rootIdx:]

	// Presence of any closing tag means the document is already strictly
	// nested and the repair pass must leave it untouched.
	if !strings.Contains(payload, "</") {
		payload = repairLeafTags(payload)
	}

	txns, err := parseTransactions(payload)
	if err != nil {
		return Batch{}, err
	}

	var batch Batch
	seen := make(map[string]bool)
	for _, ofxTxn := range txns {
		cand, ok := convertTransaction(ofxTxn)
		if !ok {
			batch.Skipped++
			continue
		}
		if ofxTxn.FitID != "" && seen[ofxTxn.FitID] {
			batch.Skipped++
			continue
		}
		seen[ofxTxn.FitID] = true
		batch.Candidates = append(batch.Candidates, cand)
	}

	if len(batch.Candidates) == 0 {
		return Batch{}, EmptyResultError{Detail: "no transactions found in OFX statement"}
	}
	return batch, nil
}

// repairLeafTags converts the tag-per-line SGML dialect into well-formed
// markup in a single pass. A line holding an opening tag followed by a
// value gets its closing tag synthesized in place; a bare opening tag is a
// container and is pushed until its explicit close or end of document.
func repairLeafTags(payload string) string {
	var out strings.Builder
	var stack []string

	for _, line := range strings.Split(payload, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.HasPrefix(line, "<") {
			continue
		}

		if strings.HasPrefix(line, "</") {
			name := strings.Trim(line, "</> ")
			out.WriteString("</" + name + ">\n")
			if len(stack) > 0 && stack[len(stack)-1] == name {
				stack = stack[:len(stack)-1]
			}
			continue
		}

		end := strings.Index(line, ">")
		if end < 0 {
			continue
		}
		name := line[1:end]
		value := strings.TrimSpace(line[end+1:])

		if value != "" {
			out.WriteString("<" + name + ">" + escapeValue(value) + "</" + name + ">\n")
			continue
		}

		out.WriteString("<" + name + ">\n")
		stack = append(stack, name)
	}

	// Force-close whatever is still open, innermost first.
	for i := len(stack) - 1; i >= 0; i-- {
		out.WriteString("</" + stack[i] + ">\n")
	}
	return out.String()
}

// escapeValue protects the characters real bank exports leave unescaped.
func escapeValue(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	return s
}

// ofxTransaction mirrors the fields of a <STMTTRN> element.
type ofxTransaction struct {
	Type     string `xml:"TRNTYPE"`
	Posted   string `xml:"DTPOSTED"`
	Amount   string `xml:"TRNAMT"`
	FitID    string `xml:"FITID"`
	Name     string `xml:"NAME"`
	Memo     string `xml:"MEMO"`
	CheckNum string `xml:"CHECKNUM"`
}

// parseTransactions walks the repaired markup and collects every statement
// transaction element, wherever it nests.
func parseTransactions(payload string) ([]ofxTransaction, error) {
	dec := xml.NewDecoder(strings.NewReader(payload))
	dec.Strict = false

	var txns []ofxTransaction
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, FormatError{
				Snippet: snippet(payload, int(dec.InputOffset())),
				Detail:  fmt.Sprintf("malformed OFX markup: %v", err),
			}
		}

		start, ok := tok.(xml.StartElement)
		if !ok || !transactionElements[start.Name.Local] {
			continue
		}

		var txn ofxTransaction
		if err := dec.DecodeElement(&txn, &start); err != nil {
			return nil, FormatError{
				Snippet: snippet(payload, int(dec.InputOffset())),
				Detail:  fmt.Sprintf("malformed transaction element: %v", err),
			}
		}
		txns = append(txns, txn)
	}

	if txns == nil {
		return nil, FormatError{Detail: "no transaction elements found in OFX statement"}
	}
	return txns, nil
}

// convertTransaction maps an OFX record to a candidate. Date, amount, and
// transaction id are required; anything else is optional.
func convertTransaction(txn ofxTransaction) (model.CandidateTransaction, bool) {
	if txn.Posted == "" || txn.Amount == "" || txn.FitID == "" {
		return model.CandidateTransaction{}, false
	}

	date, err := normalize.ParseDate(strings.TrimSpace(txn.Posted))
	if err != nil {
		return model.CandidateTransaction{}, false
	}
	amount, err := normalize.ParseAmount(txn.Amount)
	if err != nil {
		return model.CandidateTransaction{}, false
	}

	desc := strings.TrimSpace(txn.Name)
	if desc == "" {
		desc = strings.TrimSpace(txn.Memo)
	} else if memo := strings.TrimSpace(txn.Memo); memo != "" && !strings.EqualFold(memo, desc) {
		desc = desc + " " + memo
	}
	// Payee and memo are optional; a check number still gives us something
	// to show.
	if desc == "" && txn.CheckNum != "" {
		desc = "Check #" + strings.TrimSpace(txn.CheckNum)
	}

	return model.CandidateTransaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Direction:   ofxDirection(txn.Type, txn.Amount),
		Merchant:    normalize.Merchant(desc),
		RawAmount:   strings.TrimSpace(txn.Amount),
		RawType:     strings.TrimSpace(txn.Type),
	}, true
}

// ofxDirection derives direction from the TRNTYPE code, falling back to
// the sign of the raw amount when no code is present.
func ofxDirection(trnType, rawAmount string) model.Direction {
	code := strings.ToUpper(strings.TrimSpace(trnType))
	if code != "" {
		if inflowTypeCodes[code] {
			return model.DirectionInflow
		}
		return model.DirectionOutflow
	}
	if normalize.AmountSign(rawAmount) {
		return model.DirectionOutflow
	}
	return model.DirectionInflow
}

// snippet returns a short window of the payload around offset for error
// reporting.
func snippet(payload string, offset int) string {
	if offset < 0 || offset > len(payload) {
		offset = len(payload)
	}
	start := offset - 40
	if start < 0 {
		start = 0
	}
	end := offset + 10
	if end > len(payload) {
		end = len(payload)
	}
	return strings.TrimSpace(payload[start:end])
}
