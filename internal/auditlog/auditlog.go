// Package auditlog records every import batch in logs/import-log.csv so a
// statement file can always be traced to the transactions it produced.
package auditlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is one row in the import log.
type Entry struct {
	Timestamp  time.Time
	BatchID    string
	SourceFile string
	Format     string
	Decoded    int
	New        int
	Matched    int
	Duplicate  int
	Skipped    int
	CommitHash string
}

// Header is the CSV header for import-log.csv.
const Header = "timestamp,batch_id,source_file,format,decoded,new,matched,duplicate,skipped,commit_hash"

const (
	numFields     = 10
	logDir        = "logs"
	logFile       = "logs/import-log.csv"
	colTimestamp  = 0
	colBatchID    = 1
	colSourceFile = 2
	colFormat     = 3
	colDecoded    = 4
	colNew        = 5
	colMatched    = 6
	colDuplicate  = 7
	colSkipped    = 8
	colCommitHash = 9
)

// NewBatchID returns a fresh batch identifier.
func NewBatchID() string {
	return uuid.NewString()
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colBatchID] = e.BatchID
	row[colSourceFile] = e.SourceFile
	row[colFormat] = e.Format
	row[colDecoded] = strconv.Itoa(e.Decoded)
	row[colNew] = strconv.Itoa(e.New)
	row[colMatched] = strconv.Itoa(e.Matched)
	row[colDuplicate] = strconv.Itoa(e.Duplicate)
	row[colSkipped] = strconv.Itoa(e.Skipped)
	row[colCommitHash] = e.CommitHash
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	counts := make([]int, 5)
	for i, col := range []int{colDecoded, colNew, colMatched, colDuplicate, colSkipped} {
		n, err := strconv.Atoi(record[col])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing count %q: %w", record[col], err)
		}
		counts[i] = n
	}

	return Entry{
		Timestamp:  ts,
		BatchID:    record[colBatchID],
		SourceFile: record[colSourceFile],
		Format:     record[colFormat],
		Decoded:    counts[0],
		New:        counts[1],
		Matched:    counts[2],
		Duplicate:  counts[3],
		Skipped:    counts[4],
		CommitHash: record[colCommitHash],
	}, nil
}

// Append writes entries to <profileRoot>/logs/import-log.csv, creating the
// file and header if needed.
func Append(profileRoot string, entries []Entry) error {
	dir := filepath.Join(profileRoot, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(profileRoot, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <profileRoot>/logs/import-log.csv.
// Returns an empty slice if the file does not exist.
func Read(profileRoot string) ([]Entry, error) {
	path := filepath.Join(profileRoot, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading import log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
