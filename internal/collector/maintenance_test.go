package collector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMoveHtmlFiles(t *testing.T) {
	dataDir := t.TempDir()
	reportDir := filepath.Join(t.TempDir(), "reports")

	for _, name := range []string{"medicine_report_001.html", "stray.htm", "record.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, name), []byte("x"), 0600))
	}

	moved, err := MoveHtmlFiles(dataDir, reportDir)
	require.NoError(t, err)
	require.Equal(t, 2, moved)

	_, err = os.Stat(filepath.Join(reportDir, "medicine_report_001.html"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dataDir, "record.json"))
	require.NoError(t, err)

	// a second file with the same name lands under a suffixed name
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "stray.htm"), []byte("y"), 0600))
	moved, err = MoveHtmlFiles(dataDir, reportDir)
	require.NoError(t, err)
	require.Equal(t, 1, moved)
	entries, err := os.ReadDir(reportDir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
}

func TestMoveHtmlFilesMissingDir(t *testing.T) {
	moved, err := MoveHtmlFiles(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	require.NoError(t, err)
	require.Zero(t, moved)
}

func TestRemoveRecords(t *testing.T) {
	dataDir := t.TempDir()
	_, err := SaveDocument(dataDir, sampleDocument())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "notes.txt"), []byte("x"), 0600))

	removed, err := RemoveRecords(dataDir)
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	_, err = os.Stat(filepath.Join(dataDir, "notes.txt"))
	require.NoError(t, err)
}
