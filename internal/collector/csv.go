package collector

import (
	"context"
	"encoding/csv"
	"log/slog"
	"os"
	"sort"
)

// csvKeyOrder is the preferred column order of an export. columns
// outside this list sort alphabetically after these.
var csvKeyOrder = []string{
	"id",
	"korean_name",
	"english_name",
	"category",
	"type",
	"company",
	"classification",
	"medicine_type",
	"insurance_code",
	"approval_number",
	"components",
	"components_amount",
	"efficacy",
	"dosage",
	"precautions",
	"side_effects",
	"interactions",
	"storage",
	"expiration",
	"appearance",
	"shape",
	"color",
	"size",
	"identification",
	"division_line",
	"image_url",
	"url",
	"extracted_time",
	"collection_time",
}

// columns whose values can run to many pages of text
var truncatedCsvColumns = map[string]bool{
	"components":  true,
	"efficacy":    true,
	"precautions": true,
	"dosage":      true,
}

const maxCsvValueRunes = 1000
const csvKeySampleSize = 100

// ExportCsv flattens every record in the data directory into a single
// csv file. the column set is the union of the fields seen in a
// sample of records, long narrative values are truncated.
func ExportCsv(ctx context.Context, dataDir, outFile string) (int, error) {
	ctx, span := tracer.Start(ctx, "ExportCsv")
	defer span.End()

	files, err := ListRecordFiles(dataDir)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		return 0, nil
	}

	keySet := map[string]bool{}
	sample := files
	if len(sample) > csvKeySampleSize {
		sample = sample[:csvKeySampleSize]
	}
	for _, file := range sample {
		doc, err := LoadDocument(file)
		if err != nil {
			continue
		}
		for key := range doc.Fields {
			keySet[key] = true
		}
		// the division line lives in the structured division info, not
		// in the flat field map
		if doc.Division != nil && doc.Division.Description != "" {
			keySet["division_line"] = true
		}
	}

	var columns []string
	for _, key := range csvKeyOrder {
		if keySet[key] {
			columns = append(columns, key)
			delete(keySet, key)
		}
	}
	var rest []string
	for key := range keySet {
		rest = append(rest, key)
	}
	sort.Strings(rest)
	columns = append(columns, rest...)

	out, err := os.Create(outFile)
	if err != nil {
		return 0, err
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	err = writer.Write(columns)
	if err != nil {
		return 0, err
	}

	rows := 0
	for _, file := range files {
		if ctx.Err() != nil {
			return rows, ctx.Err()
		}
		doc, loadErr := LoadDocument(file)
		if loadErr != nil {
			slog.WarnContext(ctx, "skipping unreadable record", "file", file, "err", loadErr)
			continue
		}
		record := make([]string, len(columns))
		for i, column := range columns {
			value := doc.Get(column)
			if column == "division_line" && value == "" && doc.Division != nil {
				value = doc.Division.Description
			}
			if truncatedCsvColumns[column] {
				runes := []rune(value)
				if len(runes) > maxCsvValueRunes {
					value = string(runes[:maxCsvValueRunes-3]) + "..."
				}
			}
			record[i] = value
		}
		err = writer.Write(record)
		if err != nil {
			return rows, err
		}
		rows++
	}

	writer.Flush()
	return rows, writer.Error()
}
