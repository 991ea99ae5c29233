package collector

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"medicollector/lib/timezone"
)

// MoveHtmlFiles moves stray html files from the top of baseDir into
// targetDir. Saved report pages sometimes end up next to the records
// when runs are interrupted; this puts them back where the report
// tooling expects them. Name collisions get a timestamp suffix
// instead of overwriting.
func MoveHtmlFiles(baseDir, targetDir string) (int, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	moved := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".html" && ext != ".htm" {
			continue
		}

		if moved == 0 {
			err := os.MkdirAll(targetDir, 0777)
			if err != nil {
				return 0, err
			}
		}

		dest := filepath.Join(targetDir, name)
		if _, err := os.Stat(dest); err == nil {
			stem := strings.TrimSuffix(name, filepath.Ext(name))
			stamp := timezone.Now().Format("20060102_150405")
			dest = filepath.Join(targetDir, fmt.Sprintf("%s_%s%s", stem, stamp, filepath.Ext(name)))
		}
		err := os.Rename(filepath.Join(baseDir, name), dest)
		if err != nil {
			return moved, err
		}
		moved++
	}
	return moved, nil
}

// RemoveRecords deletes every record json file in the data directory
// and returns how many were removed.
func RemoveRecords(dataDir string) (int, error) {
	files, err := ListRecordFiles(dataDir)
	if err != nil {
		return 0, err
	}
	for i, file := range files {
		err := os.Remove(file)
		if err != nil {
			return i, err
		}
	}
	return len(files), nil
}
