// Package collector drives the collection pipeline: search keywords
// against the open api, fetch the matching encyclopedia entries,
// parse them into records and persist everything with checkpoints so
// an interrupted run picks up where it stopped.
package collector

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"medicollector/internal/db"
	"medicollector/internal/keywords"
	"medicollector/lib/scrapers/encyc"
	"medicollector/lib/scrapers/openapi"
	"medicollector/lib/timezone"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	defaultWorkers      = 4
	maxKeywordsInFlight = 10
	checkpointInterval  = 10
)

// ErrMaxItemsReached stops a run once the configured record limit is
// hit.
var ErrMaxItemsReached = errors.New("maximum item count reached")

// SearchApi is the slice of the open api client the collector needs.
type SearchApi interface {
	Search(ctx context.Context, keyword string) (openapi.SearchResult, error)
}

// PageFetcher is the slice of the entry page client the collector
// needs.
type PageFetcher interface {
	FetchMedicine(ctx context.Context, url string, title string) (*encyc.Document, error)
}

type Options struct {
	Api   SearchApi
	Pages PageFetcher
	Qry   *db.Queries

	DataDir   string
	ReportDir string
	CsvFile   string

	// Workers defaults to min(4, GOMAXPROCS).
	Workers int
	// MaxItems limits how many records a run may save, 0 means
	// unlimited.
	MaxItems int
}

type Stats struct {
	Searches int
	Found    int
	Saved    int
	Skipped  int
	Failed   int
}

type Collector struct {
	api   SearchApi
	pages PageFetcher
	qry   *db.Queries
	queue keywords.Queue

	dataDir   string
	reportDir string
	csvFile   string
	workers   int
	maxItems  int

	mu       sync.Mutex
	stats    Stats
	reporter *Reporter
	started  time.Time
}

func New(opts Options) *Collector {
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	if max := runtime.GOMAXPROCS(0); workers > max {
		workers = max
	}
	return &Collector{
		api:       opts.Api,
		pages:     opts.Pages,
		qry:       opts.Qry,
		queue:     keywords.NewQueue(opts.Qry),
		dataDir:   opts.DataDir,
		reportDir: opts.ReportDir,
		csvFile:   opts.CsvFile,
		workers:   workers,
		maxItems:  opts.MaxItems,
	}
}

func (c *Collector) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Run processes keywords until the queue runs dry, the record limit
// is hit, the api quota runs out or the context is canceled.
func (c *Collector) Run(ctx context.Context) (Stats, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	c.mu.Lock()
	c.started = timezone.Now()
	if c.reportDir != "" {
		c.reporter = NewReporter(c.reportDir)
	}
	c.mu.Unlock()

	var runErr error
	for runErr == nil && ctx.Err() == nil {
		_, err := c.queue.EnsureAvailable(ctx, c.dataDir)
		if err != nil {
			runErr = err
			break
		}
		batch, err := c.queue.Next(ctx, maxKeywordsInFlight)
		if err != nil {
			runErr = err
			break
		}
		if len(batch) == 0 {
			slog.InfoContext(ctx, "keyword queue exhausted")
			break
		}
		runErr = c.processBatch(ctx, batch)
	}

	finishErr := c.finish(ctx)
	if runErr == nil {
		runErr = finishErr
	}
	if errors.Is(runErr, ErrMaxItemsReached) || errors.Is(runErr, context.Canceled) {
		runErr = nil
	}
	if errors.Is(runErr, openapi.ErrDailyQuotaExceeded) {
		slog.WarnContext(ctx, "stopping, daily api quota exhausted")
		runErr = nil
	}
	if runErr != nil {
		span.RecordError(runErr)
		span.SetStatus(codes.Error, "run failed")
	}

	stats := c.Stats()
	span.SetAttributes(
		attribute.Int("saved", stats.Saved),
		attribute.Int("failed", stats.Failed),
	)
	return stats, runErr
}

func (c *Collector) processBatch(ctx context.Context, batch []string) error {
	workers := c.workers
	if workers > len(batch) {
		workers = len(batch)
	}

	work := make(chan string)
	errs := make(chan error, len(batch))
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for word := range work {
				errs <- c.processKeyword(ctx, word)
			}
		}()
	}
	for _, word := range batch {
		work <- word
	}
	close(work)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Collector) processKeyword(ctx context.Context, word string) error {
	ctx, span := tracer.Start(ctx, "processKeyword")
	defer span.End()
	span.SetAttributes(attribute.String("keyword", word))

	startIndex := 0
	checkpoint, err := c.qry.GetCheckpoint(ctx, word)
	if err == nil {
		startIndex = int(checkpoint.ProcessedCount)
		slog.InfoContext(
			ctx, "resuming keyword from checkpoint",
			"keyword", word,
			"processed", startIndex,
		)
	}

	result, err := c.api.Search(ctx, word)
	if err != nil {
		return err
	}
	items := openapi.FilterMedicineItems(result)

	c.mu.Lock()
	c.stats.Searches++
	c.stats.Found += len(items)
	c.mu.Unlock()

	processed := startIndex
	for i, item := range items {
		if ctx.Err() != nil {
			break
		}
		if i < startIndex {
			continue
		}

		err := c.processItem(ctx, word, item)
		switch {
		case err == nil:
		case errors.Is(err, openapi.ErrDailyQuotaExceeded):
			return err
		default:
			c.mu.Lock()
			c.stats.Failed++
			c.mu.Unlock()
			slog.WarnContext(
				ctx, "could not collect item",
				"keyword", word,
				"title", item.Title,
				"err", err,
			)
		}

		processed = i + 1
		if processed%checkpointInterval == 0 {
			c.saveCheckpoint(ctx, word, processed)
			c.logProgress(ctx, word, processed, len(items))
		}

		if c.maxItems > 0 && c.Stats().Saved >= c.maxItems {
			c.saveCheckpoint(ctx, word, processed)
			return ErrMaxItemsReached
		}
	}

	if ctx.Err() != nil {
		// a final checkpoint so an interrupted run resumes mid-keyword
		c.saveCheckpoint(context.WithoutCancel(ctx), word, processed)
		return ctx.Err()
	}
	err = c.queue.MarkDone(ctx, word)
	if err != nil {
		return err
	}
	return c.qry.DeleteCheckpoint(ctx, word)
}

func (c *Collector) processItem(ctx context.Context, word string, item openapi.SearchItem) error {
	id := encyc.DocumentId(item.Link, item.Title, "")
	count, err := c.qry.IsProcessed(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		c.mu.Lock()
		c.stats.Skipped++
		c.mu.Unlock()
		return nil
	}

	doc, err := c.pages.FetchMedicine(ctx, item.Link, item.Title)
	if err != nil {
		return err
	}
	if doc == nil {
		// reachable but not a medicine entry
		c.mu.Lock()
		c.stats.Skipped++
		c.mu.Unlock()
		return nil
	}

	Standardize(doc, word)
	// the search api snippet and link are worth keeping alongside the
	// parsed page, set after normalization so they are not treated as
	// legacy field names
	doc.Set("link", item.Link)
	if desc := doc.Get("description"); desc == "" || desc == encyc.NoInformation {
		if item.Description != "" {
			doc.Set("description", item.Description)
		}
	}

	_, err = SaveDocument(c.dataDir, doc)
	if err != nil {
		return err
	}
	err = c.qry.MarkProcessed(ctx, db.MarkProcessedParams{
		ID:          doc.Get("id"),
		ProcessedAt: timezone.Now().Unix(),
	})
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.Saved++
	if c.reporter != nil {
		err := c.reporter.Add(doc)
		if err != nil {
			slog.WarnContext(ctx, "could not write report entry", "err", err)
		}
	}
	return nil
}

func (c *Collector) saveCheckpoint(ctx context.Context, word string, processed int) {
	stats := c.Stats()
	err := c.qry.UpsertCheckpoint(ctx, db.UpsertCheckpointParams{
		Keyword:        word,
		ProcessedCount: int64(processed),
		TotalSearches:  int64(stats.Searches),
		TotalFound:     int64(stats.Found),
		TotalSaved:     int64(stats.Saved),
		FailedItems:    int64(stats.Failed),
		UpdatedAt:      timezone.Now().Unix(),
	})
	if err != nil {
		slog.WarnContext(ctx, "could not save checkpoint", "keyword", word, "err", err)
	}
}

func (c *Collector) logProgress(ctx context.Context, word string, processed, total int) {
	c.mu.Lock()
	elapsed := time.Since(c.started)
	c.mu.Unlock()

	percent := float64(processed) / float64(total) * 100
	var remaining time.Duration
	if processed > 0 {
		remaining = time.Duration(float64(elapsed) / float64(processed) * float64(total-processed))
	}
	slog.InfoContext(
		ctx, "keyword progress",
		"keyword", word,
		"processed", processed,
		"total", total,
		"percent", int(percent),
		"elapsed", elapsed.Round(time.Second),
		"remaining", remaining.Round(time.Second),
	)
}

func (c *Collector) finish(ctx context.Context) error {
	c.mu.Lock()
	reporter := c.reporter
	c.reporter = nil
	c.mu.Unlock()

	if reporter != nil {
		err := reporter.Finalize()
		if err != nil {
			slog.WarnContext(ctx, "could not finalize report", "err", err)
		}
	}
	if c.csvFile != "" {
		rows, err := ExportCsv(context.WithoutCancel(ctx), c.dataDir, c.csvFile)
		if err != nil {
			return err
		}
		slog.InfoContext(ctx, "exported csv", "file", c.csvFile, "rows", rows)
	}
	return nil
}
