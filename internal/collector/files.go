package collector

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"medicollector/lib/scrapers/encyc"
)

// SaveDocument writes a standardized record to the data directory and
// returns the file it created.
func SaveDocument(dataDir string, doc *encyc.Document) (string, error) {
	err := os.MkdirAll(dataDir, 0777)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	file := filepath.Join(dataDir, Filename(doc))
	err = os.WriteFile(file, data, 0600)
	if err != nil {
		return "", err
	}
	return file, nil
}

// LoadDocument reads a single record back from disk.
func LoadDocument(file string) (*encyc.Document, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var doc encyc.Document
	err = json.Unmarshal(data, &doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListRecordFiles returns every record file in the data directory.
func ListRecordFiles(dataDir string) ([]string, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(dataDir, entry.Name()))
	}
	return files, nil
}

// LoadDocuments streams every record in the data directory to the
// callback, skipping files that no longer parse.
func LoadDocuments(ctx context.Context, dataDir string, fn func(file string, doc *encyc.Document) error) error {
	files, err := ListRecordFiles(dataDir)
	if err != nil {
		return err
	}
	for _, file := range files {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		doc, err := LoadDocument(file)
		if err != nil {
			continue
		}
		err = fn(file, doc)
		if err != nil {
			return err
		}
	}
	return nil
}
