// Package decode turns raw bank-export text (delimited or OFX markup) into
// canonical candidate transactions. Decoders never touch the filesystem;
// the caller supplies a reader and receives a batch.
package decode

import (
	"io"
	"sort"
	"strings"

	"github.com/centsible-dev/centsible/internal/model"
)

// Batch is the result of decoding one uploaded file. Skipped counts rows
// or records dropped for missing required fields; a non-zero skip count is
// not an error.
type Batch struct {
	Candidates []model.CandidateTransaction
	Skipped    int
}

// Decoder converts one bank export file into candidate transactions.
type Decoder interface {
	Decode(r io.Reader) (Batch, error)
	Format() string
}

// ColumnMapping names the columns of one bank's delimited export layout.
// Header resolution is case-insensitive and tolerant of variants: a header
// cell matches when it contains the configured name as a substring, so
// "Posting Date" satisfies a Date value of "date".
type ColumnMapping struct {
	Name        string `yaml:"name"`
	Date        string `yaml:"date"`
	Description string `yaml:"description"`
	Amount      string `yaml:"amount"`
	Balance     string `yaml:"balance,omitempty"`
	Type        string `yaml:"type,omitempty"`
}

// Presets returns the built-in bank layouts. Plain configuration data;
// callers may overlay their own from config.
func Presets() []ColumnMapping {
	return []ColumnMapping{
		{Name: "generic", Date: "date", Description: "description", Amount: "amount"},
		{Name: "chase", Date: "posting date", Description: "description", Amount: "amount", Type: "type", Balance: "balance"},
		{Name: "bofa", Date: "date", Description: "description", Amount: "amount", Balance: "running bal"},
		{Name: "wellsfargo", Date: "date", Description: "description", Amount: "amount"},
		{Name: "capitalone", Date: "transaction date", Description: "description", Amount: "amount", Type: "transaction type"},
	}
}

// Registry holds named decoders.
type Registry struct {
	decoders map[string]Decoder
}

// NewRegistry creates an empty decoder registry.
func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]Decoder)}
}

// Register adds a decoder. Panics on duplicate format.
func (r *Registry) Register(d Decoder) {
	key := strings.ToLower(d.Format())
	if _, ok := r.decoders[key]; ok {
		panic("duplicate decoder format: " + key)
	}
	r.decoders[key] = d
}

// Get returns the decoder for format, or nil.
func (r *Registry) Get(format string) Decoder {
	return r.decoders[strings.ToLower(format)]
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.decoders))
	for name := range r.decoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with a CSV decoder per built-in
// preset plus the OFX decoder.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, preset := range Presets() {
		r.Register(&CSVDecoder{Mapping: preset})
	}
	r.Register(&OFXDecoder{})
	return r
}
