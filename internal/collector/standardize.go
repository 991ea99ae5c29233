package collector

import (
	"regexp"
	"time"

	"medicollector/lib/scrapers/encyc"
)

// Standardize fills in every canonical field so downstream consumers
// never have to nil-check. narrative fields default to the korean "no
// information" placeholder, mechanical fields to an empty string.
func Standardize(doc *encyc.Document, keyword string) {
	doc.NormalizeFieldNames()

	for _, field := range encyc.FieldOrder {
		if doc.Get(field) != "" {
			continue
		}
		if encyc.MechanicalFields[field] {
			doc.Set(field, "")
		} else {
			doc.Set(field, encyc.NoInformation)
		}
	}

	now := time.Now().Format(time.RFC3339)
	if doc.Get("extracted_time") == "" {
		doc.Set("extracted_time", now)
	}
	if doc.Get("collection_time") == "" {
		doc.Set("collection_time", now)
	}
	if keyword != "" {
		doc.Set("search_keyword", keyword)
	}
	if doc.Get("id") == "" || doc.Get("id") == encyc.NoInformation {
		doc.Set("id", encyc.DocumentId(
			doc.Get("url"),
			doc.Get("korean_name"),
			doc.Get("company"),
		))
	}
}

var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

const maxFilenameRunes = 50

// Filename builds the canonical record file name, "<id>_<name>.json"
// with characters the filesystem would reject replaced.
func Filename(doc *encyc.Document) string {
	name := invalidFilenameChars.ReplaceAllString(doc.Get("korean_name"), "_")
	runes := []rune(name)
	if len(runes) > maxFilenameRunes {
		name = string(runes[:maxFilenameRunes])
	}
	return doc.Get("id") + "_" + name + ".json"
}
