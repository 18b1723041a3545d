package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centsible-dev/centsible/internal/auditlog"
	"github.com/centsible-dev/centsible/internal/classify"
	"github.com/centsible-dev/centsible/internal/gitops"
	"github.com/centsible-dev/centsible/internal/ledger"
	"github.com/centsible-dev/centsible/internal/model"
)

func initProfile(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, runInit(dir, "test profile", true))
	return dir
}

func writeStatement(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunImportConfirm(t *testing.T) {
	profile := initProfile(t)
	statement := writeStatement(t, t.TempDir(), "january.csv",
		"Date,Description,Amount\n"+
			"01/15/2025,STARBUCKS #4471,5.75\n"+
			"01/16/2025,NETFLIX.COM,15.49\n")

	require.NoError(t, runImport(profile, statement, "generic", true, false))

	txns, err := ledger.NewService(profile).ReadAll()
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "2025-01-001", txns[0].ID)
	assert.Equal(t, "STARBUCKS", txns[0].Merchant)
	// Dining Out and Subscriptions from the default category set.
	assert.Equal(t, 203, txns[0].CategoryID)
	assert.Equal(t, 206, txns[1].CategoryID)

	mappings, err := classify.LoadMappings(profile)
	require.NoError(t, err)
	assert.Len(t, mappings, 2)

	entries, err := auditlog.Read(profile)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "january.csv", entries[0].SourceFile)
	assert.Equal(t, 2, entries[0].Decoded)
	assert.Equal(t, 2, entries[0].New)
}

func TestRunImportSkipsDuplicates(t *testing.T) {
	profile := initProfile(t)
	statement := writeStatement(t, t.TempDir(), "january.csv",
		"Date,Description,Amount\n"+
			"01/15/2025,STARBUCKS #4471,5.75\n")

	require.NoError(t, runImport(profile, statement, "generic", true, false))
	// The same statement again: everything reconciles as duplicate.
	require.NoError(t, runImport(profile, statement, "generic", true, false))

	txns, err := ledger.NewService(profile).ReadAll()
	require.NoError(t, err)
	assert.Len(t, txns, 1)

	entries, err := auditlog.Read(profile)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[1].Duplicate)
	assert.Equal(t, 0, entries[1].New)
}

func TestRunImportSkipsCommitWhenClean(t *testing.T) {
	profile := t.TempDir()
	require.NoError(t, runInit(profile, "test profile", false))
	statement := writeStatement(t, t.TempDir(), "january.csv",
		"Date,Description,Amount\n"+
			"01/15/2025,STARBUCKS #4471,5.75\n")

	require.NoError(t, runImport(profile, statement, "generic", true, false))

	// Commit the audit log so the working tree is clean, then re-import
	// the same statement. A duplicate-only batch changes nothing, so no
	// commit should be made.
	_, err := gitops.CommitAll(profile, "chore: snapshot logs", "Test Author", "test@example.com")
	require.NoError(t, err)
	require.NoError(t, runImport(profile, statement, "generic", true, false))

	entries, err := auditlog.Read(profile)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.NotEmpty(t, entries[0].CommitHash)
	assert.Empty(t, entries[1].CommitHash)
}

func TestRunImportUnknownFormat(t *testing.T) {
	profile := initProfile(t)
	statement := writeStatement(t, t.TempDir(), "january.csv", "Date,Description,Amount\n01/15/2025,X,1.00\n")

	err := runImport(profile, statement, "no-such-bank", false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestRunImportNotAProfile(t *testing.T) {
	err := runImport(t.TempDir(), "whatever.csv", "", false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "centsible init")
}

func TestRunImportArchivesInboxStatements(t *testing.T) {
	profile := initProfile(t)
	statement := writeStatement(t, filepath.Join(profile, "import"), "january.csv",
		"Date,Description,Amount\n01/15/2025,STARBUCKS #4471,5.75\n")

	require.NoError(t, runImport(profile, statement, "generic", true, false))

	_, err := os.Stat(statement)
	assert.True(t, os.IsNotExist(err), "confirmed statement should leave the inbox")
	_, err = os.Stat(filepath.Join(profile, "import", "processed", "january.csv"))
	assert.NoError(t, err)
}

func TestSniffFormat(t *testing.T) {
	assert.Equal(t, "ofx", sniffFormat("statement.ofx"))
	assert.Equal(t, "ofx", sniffFormat("statement.QFX"))
	assert.Equal(t, "generic", sniffFormat("statement.csv"))
	assert.Equal(t, "generic", sniffFormat("statement"))
}

func TestTallyMatches(t *testing.T) {
	counts := tallyMatches([]model.ReconciliationMatch{
		{Status: model.StatusNew},
		{Status: model.StatusNew},
		{Status: model.StatusDuplicate},
	})
	assert.Equal(t, 2, counts[model.StatusNew])
	assert.Equal(t, 1, counts[model.StatusDuplicate])
	assert.Equal(t, 0, counts[model.StatusMatched])
}
