package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"medicollector/lib/scrapers/encyc"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ErrBlocked stops a reextraction run when the pages start coming
// back as bot challenges.
var ErrBlocked = errors.New("requests are being blocked")

var imageFields = []string{
	"image_url",
	"image_quality",
	"image_width",
	"image_height",
	"original_width",
	"original_height",
	"image_alt",
}

// NeedsImageReextraction reports whether a record is worth refetching
// for its photo. records that already carry a high quality image are
// left alone.
func NeedsImageReextraction(doc *encyc.Document) bool {
	url := doc.Get("image_url")
	if url == "" || url == encyc.NoInformation {
		return true
	}
	return doc.Get("image_quality") != "high"
}

// entryUrlFor recovers the entry page url for a record, falling back
// to rebuilding it from the docId when the url fields are empty.
func entryUrlFor(doc *encyc.Document) string {
	for _, field := range []string{"url", "source_url"} {
		value := doc.Get(field)
		if value != "" && value != encyc.NoInformation {
			return value
		}
	}
	id := doc.Get("id")
	digits := strings.TrimPrefix(id, "M")
	if digits == "" || digits == id || strings.HasPrefix(id, "MC") {
		return ""
	}
	return fmt.Sprintf("https://terms.naver.com/entry.naver?docId=%s&cid=51000&categoryId=51000", digits)
}

// applyImageData replaces every image field on a record with the
// freshly extracted set. when the page has no photo anymore the old
// image fields are dropped entirely.
func applyImageData(doc *encyc.Document, fresh *encyc.Document, found bool) {
	for _, field := range imageFields {
		delete(doc.Fields, field)
	}
	if !found {
		return
	}
	for _, field := range imageFields {
		if value := fresh.Get(field); value != "" {
			doc.Set(field, value)
		}
	}
}

type ImageStats struct {
	Checked int
	Updated int
	Removed int
	Skipped int
	Failed  int
}

// ReextractImages refetches the entry page for every record missing a
// high quality photo and rewrites the record's image fields in place.
func ReextractImages(ctx context.Context, pages *encyc.Client, dataDir string, limit int) (ImageStats, error) {
	ctx, span := tracer.Start(ctx, "ReextractImages")
	defer span.End()

	var stats ImageStats
	err := LoadDocuments(ctx, dataDir, func(file string, doc *encyc.Document) error {
		if limit > 0 && stats.Updated+stats.Removed >= limit {
			return errImageLimitReached
		}
		if !NeedsImageReextraction(doc) {
			stats.Skipped++
			return nil
		}
		url := entryUrlFor(doc)
		if url == "" {
			stats.Skipped++
			return nil
		}
		stats.Checked++

		res, err := pages.Get(ctx, url, encyc.DefaultReferer)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			stats.Failed++
			slog.WarnContext(ctx, "could not refetch entry", "file", file, "err", err)
			return nil
		}
		if encyc.IsBlocked(res) {
			return ErrBlocked
		}
		if res.StatusCode() == 404 {
			stats.Skipped++
			return nil
		}
		if res.StatusCode() != 200 {
			stats.Failed++
			return nil
		}

		page, err := goquery.NewDocumentFromReader(strings.NewReader(res.String()))
		if err != nil {
			stats.Failed++
			return nil
		}
		fresh := encyc.NewDocument()
		found := encyc.ExtractImage(page, fresh)
		applyImageData(doc, fresh, found)

		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			stats.Failed++
			return nil
		}
		err = os.WriteFile(file, data, 0600)
		if err != nil {
			stats.Failed++
			slog.WarnContext(ctx, "could not rewrite record", "file", file, "err", err)
			return nil
		}

		if found {
			stats.Updated++
			slog.InfoContext(
				ctx, "updated record image",
				"file", file,
				"quality", doc.Get("image_quality"),
			)
		} else {
			stats.Removed++
			slog.InfoContext(ctx, "record has no image anymore", "file", file)
		}
		return nil
	})
	if errors.Is(err, errImageLimitReached) {
		err = nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "reextraction failed")
	}
	span.SetAttributes(
		attribute.Int("updated", stats.Updated),
		attribute.Int("removed", stats.Removed),
		attribute.Int("failed", stats.Failed),
	)
	return stats, err
}

var errImageLimitReached = errors.New("image reextraction limit reached")
