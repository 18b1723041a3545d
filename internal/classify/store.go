package classify

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/centsible-dev/centsible/internal/model"
)

const mappingsFile = "mappings.csv"

// LoadMappings reads <profileRoot>/mappings.csv. A missing file is an
// empty table, not an error.
func LoadMappings(profileRoot string) ([]model.MerchantMapping, error) {
	path := filepath.Join(profileRoot, mappingsFile)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening mappings: %w", err)
	}
	defer f.Close()

	mappings, err := ReadMappings(f)
	if err != nil {
		return nil, fmt.Errorf("reading mappings: %w", err)
	}
	return mappings, nil
}

// SaveMappings writes the full mapping table to <profileRoot>/mappings.csv,
// sorted by merchant for stable diffs.
func SaveMappings(profileRoot string, mappings []model.MerchantMapping) error {
	sorted := make([]model.MerchantMapping, len(mappings))
	copy(sorted, mappings)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Merchant < sorted[j].Merchant })

	path := filepath.Join(profileRoot, mappingsFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating mappings file: %w", err)
	}
	defer f.Close()

	if err := WriteMappings(f, sorted); err != nil {
		return fmt.Errorf("writing mappings: %w", err)
	}
	return nil
}
