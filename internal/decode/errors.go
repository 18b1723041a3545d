package decode

import "fmt"

// ConfigurationError means the column mapping does not fit the file: none
// of the configured column names resolved against the header. The user
// should pick a different bank preset, not a different file.
type ConfigurationError struct {
	Preset string
	Detail string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("column mapping %q: %s", e.Preset, e.Detail)
}

// FormatError means the file content itself could not be understood:
// an unparseable date or amount, malformed markup, or no recognizable
// transaction elements.
type FormatError struct {
	Snippet string // offending input fragment, may be empty
	Detail  string
}

func (e FormatError) Error() string {
	if e.Snippet == "" {
		return e.Detail
	}
	return fmt.Sprintf("%s (near %q)", e.Detail, e.Snippet)
}

// EmptyResultError means well-formed input yielded zero transactions.
// Distinguished from FormatError so the UI can suggest checking the bank
// preset rather than declaring the file corrupt.
type EmptyResultError struct {
	Detail string
}

func (e EmptyResultError) Error() string {
	return e.Detail
}
