package keywords

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"medicollector/internal/db"
	"medicollector/lib/scrapers/encyc"
	"medicollector/lib/timezone"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("medicollector.internal.keywords")

const (
	StatusTodo = "todo"
	StatusDone = "done"
)

// DefaultMaxNew caps how many keywords a single generation run can
// add to the queue.
const DefaultMaxNew = 100

// generation only looks at the newest records, old ones were already
// mined on previous runs
const maxGenerationFiles = 500

type Queue struct {
	qry *db.Queries
}

func NewQueue(qry *db.Queries) Queue {
	return Queue{qry: qry}
}

func (q Queue) Add(ctx context.Context, words []string) (int, error) {
	added := 0
	now := timezone.Now().Unix()
	for _, word := range words {
		word = Normalize(word)
		if word == "" {
			continue
		}
		err := q.qry.AddKeyword(ctx, db.AddKeywordParams{Word: word, AddedAt: now})
		if err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

func (q Queue) Next(ctx context.Context, limit int) ([]string, error) {
	rows, err := q.qry.ListKeywordsByStatus(ctx, StatusTodo)
	if err != nil {
		return nil, err
	}
	var words []string
	for _, row := range rows {
		if limit > 0 && len(words) >= limit {
			break
		}
		words = append(words, row.Word)
	}
	return words, nil
}

func (q Queue) MarkDone(ctx context.Context, word string) error {
	return q.qry.SetKeywordStatus(ctx, db.SetKeywordStatusParams{
		Status: StatusDone,
		Word:   word,
	})
}

// EnsureAvailable tops up the todo queue. an empty database gets the
// seed lists, otherwise new keywords are mined from the records
// collected so far.
func (q Queue) EnsureAvailable(ctx context.Context, dataDir string) (int, error) {
	ctx, span := tracer.Start(ctx, "EnsureAvailable")
	defer span.End()

	todo, err := q.qry.CountKeywordsByStatus(ctx, StatusTodo)
	if err != nil {
		return 0, err
	}
	if todo > 0 {
		return 0, nil
	}

	done, err := q.qry.CountKeywordsByStatus(ctx, StatusDone)
	if err != nil {
		return 0, err
	}
	if done == 0 {
		added, err := q.Add(ctx, ExtensiveSeeds())
		if err != nil {
			return added, err
		}
		slog.InfoContext(ctx, "seeded keyword queue", "added", added)
		span.SetAttributes(attribute.Int("seeded", added))
		return added, nil
	}

	return q.GenerateFromData(ctx, dataDir, DefaultMaxNew)
}

// GenerateFromData mines new keywords out of collected json records.
func (q Queue) GenerateFromData(ctx context.Context, dataDir string, maxNew int) (int, error) {
	ctx, span := tracer.Start(ctx, "GenerateFromData")
	defer span.End()

	if maxNew <= 0 {
		maxNew = DefaultMaxNew
	}

	existingRows, err := q.qry.ListKeywords(ctx)
	if err != nil {
		return 0, err
	}
	existing := make([]string, len(existingRows))
	for i, row := range existingRows {
		existing[i] = row.Word
	}

	var candidates []string
	for _, file := range newestJsonFiles(dataDir, maxGenerationFiles) {
		data, err := os.ReadFile(file)
		if err != nil {
			slog.WarnContext(ctx, "could not read record", "file", file, "err", err)
			continue
		}
		var doc encyc.Document
		err = json.Unmarshal(data, &doc)
		if err != nil {
			slog.WarnContext(ctx, "could not parse record", "file", file, "err", err)
			continue
		}
		candidates = append(candidates, Extract(&doc)...)
	}

	kept := Dedup(candidates, existing)
	if len(kept) > maxNew {
		kept = kept[:maxNew]
	}
	added, err := q.Add(ctx, kept)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "could not add keywords")
		return added, err
	}

	slog.InfoContext(
		ctx, "generated keywords",
		"candidates", len(candidates),
		"added", added,
	)
	span.SetAttributes(
		attribute.Int("candidates", len(candidates)),
		attribute.Int("added", added),
	)
	return added, nil
}

func newestJsonFiles(dir string, limit int) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	type fileInfo struct {
		path    string
		modTime int64
	}
	var files []fileInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, fileInfo{
			path:    filepath.Join(dir, entry.Name()),
			modTime: info.ModTime().UnixNano(),
		})
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime > files[j].modTime
	})
	if len(files) > limit {
		files = files[:limit]
	}
	paths := make([]string, len(files))
	for i, file := range files {
		paths[i] = file.path
	}
	return paths
}
