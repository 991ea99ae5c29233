// Package backfill walks the encyclopedia docId space directly
// instead of going through keyword search. medicine entries live in a
// known id range, so everything that keyword search missed can still
// be reached by fetching the ids in between.
package backfill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"medicollector/internal/collector"
	"medicollector/internal/db"
	"medicollector/lib/scrapers/encyc"
	"medicollector/lib/timezone"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("medicollector.internal.backfill")

// the medicine dictionary's docId range, established by probing the
// lowest and highest known entries
const (
	DefaultStartId = 2120920
	DefaultEndId   = 6730030
)

const listReferer = "https://terms.naver.com/list.naver?cid=51000&categoryId=51000"
const resumeSaveInterval = 10

// ErrBlocked is returned when naver starts serving bot challenges,
// continuing would only make the block last longer.
var ErrBlocked = errors.New("request blocked by bot detection")

type Options struct {
	Pages *encyc.Client
	Qry   *db.Queries

	DataDir string
	StartId int64
	EndId   int64
	// Limit stops the run after this many saved records, 0 means
	// unlimited.
	Limit int
	// Resume continues from the position stored by the previous run.
	Resume bool
}

type Stats struct {
	Attempted int
	Saved     int
	Skipped   int
	Invalid   int
	Failed    int
}

type Backfill struct {
	pages   *encyc.Client
	qry     *db.Queries
	dataDir string
	startId int64
	endId   int64
	limit   int
	resume  bool
}

func New(opts Options) *Backfill {
	startId := opts.StartId
	if startId <= 0 {
		startId = DefaultStartId
	}
	endId := opts.EndId
	if endId <= 0 {
		endId = DefaultEndId
	}
	return &Backfill{
		pages:   opts.Pages,
		qry:     opts.Qry,
		dataDir: opts.DataDir,
		startId: startId,
		endId:   endId,
		limit:   opts.Limit,
		resume:  opts.Resume,
	}
}

// EntryUrl builds the canonical entry url for a docId.
func EntryUrl(docId int64) string {
	return fmt.Sprintf(
		"https://terms.naver.com/entry.naver?docId=%d&cid=51000&categoryId=51000",
		docId,
	)
}

var recordFilePattern = regexp.MustCompile(`^M(\d+)_.*\.json$`)

// MissingIds computes which docIds in the range have no collected
// record yet, excluding ids already known to be invalid.
func (b *Backfill) MissingIds(ctx context.Context) ([]int64, error) {
	ctx, span := tracer.Start(ctx, "MissingIds")
	defer span.End()

	have := map[int64]bool{}

	processed, err := b.qry.ListProcessedIds(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range processed {
		numeric, err := strconv.ParseInt(strings.TrimPrefix(id, "M"), 10, 64)
		if err == nil {
			have[numeric] = true
		}
	}

	files, err := collector.ListRecordFiles(b.dataDir)
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		base := file[strings.LastIndexByte(file, '/')+1:]
		groups := recordFilePattern.FindStringSubmatch(base)
		if groups == nil {
			continue
		}
		numeric, err := strconv.ParseInt(groups[1], 10, 64)
		if err == nil {
			have[numeric] = true
		}
	}

	invalid, err := b.qry.ListInvalidDocIds(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range invalid {
		have[id] = true
	}

	var missing []int64
	for id := b.startId; id <= b.endId; id++ {
		if !have[id] {
			missing = append(missing, id)
		}
	}
	span.SetAttributes(attribute.Int("missing", len(missing)))
	return missing, nil
}

// Run crawls missing docIds until the range is covered, the limit is
// reached or the context is canceled. the id order is shuffled so
// consecutive requests do not walk the id space linearly.
func (b *Backfill) Run(ctx context.Context) (Stats, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	var stats Stats

	missing, err := b.MissingIds(ctx)
	if err != nil {
		return stats, err
	}
	rand.New(rand.NewSource(int64(b.startId))).Shuffle(len(missing), func(i, j int) {
		missing[i], missing[j] = missing[j], missing[i]
	})

	start := 0
	if b.resume {
		position, err := b.qry.GetCrawlResume(ctx)
		if err == nil && position > 0 && position < int64(len(missing)) {
			start = int(position)
			slog.InfoContext(ctx, "resuming crawl", "position", start)
		}
	}

	slog.InfoContext(
		ctx, "starting backfill",
		"missing", len(missing),
		"start", start,
		"limit", b.limit,
	)

	for i := start; i < len(missing); i++ {
		if ctx.Err() != nil {
			break
		}
		if b.limit > 0 && stats.Saved >= b.limit {
			break
		}

		stats.Attempted++
		err := b.crawlOne(ctx, missing[i], &stats)
		if errors.Is(err, ErrBlocked) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "blocked")
			b.saveResume(ctx, i)
			return stats, err
		}
		if err != nil {
			stats.Failed++
			slog.WarnContext(ctx, "crawl failed", "docId", missing[i], "err", err)
			// transport failures in a row usually mean throttling,
			// cool down before the next id
			time.Sleep(time.Duration(5+rand.Intn(5)) * time.Second)
		}

		if (i+1)%resumeSaveInterval == 0 {
			b.saveResume(ctx, i+1)
		}
	}

	if ctx.Err() == nil && (b.limit == 0 || stats.Saved < b.limit) {
		err := b.qry.ClearCrawlResume(ctx)
		if err != nil {
			slog.WarnContext(ctx, "could not clear resume position", "err", err)
		}
	}

	span.SetAttributes(
		attribute.Int("attempted", stats.Attempted),
		attribute.Int("saved", stats.Saved),
		attribute.Int("invalid", stats.Invalid),
	)
	return stats, nil
}

func (b *Backfill) saveResume(ctx context.Context, position int) {
	err := b.qry.SetCrawlResume(ctx, int64(position))
	if err != nil {
		slog.WarnContext(ctx, "could not save resume position", "err", err)
	}
}

func (b *Backfill) crawlOne(ctx context.Context, docId int64, stats *Stats) error {
	url := EntryUrl(docId)
	res, err := b.pages.Get(ctx, url, listReferer)
	if err != nil {
		return err
	}
	if encyc.IsBlocked(res) {
		return ErrBlocked
	}
	if res.StatusCode() == 404 {
		stats.Invalid++
		return b.qry.MarkInvalidDocId(ctx, docId)
	}
	if res.StatusCode() != 200 {
		return fmt.Errorf("docId %d: status %d", docId, res.StatusCode())
	}

	// a redirect to another entry or out of the medicine category
	// means the docId does not belong to the dictionary
	finalUrl := res.RawResponse.Request.URL.String()
	if finalDocId := encyc.DocIdFromUrl(finalUrl); finalDocId != "" && finalDocId != strconv.FormatInt(docId, 10) {
		stats.Invalid++
		return b.qry.MarkInvalidDocId(ctx, docId)
	}
	if !strings.Contains(finalUrl, "cid=51000") {
		stats.Invalid++
		return b.qry.MarkInvalidDocId(ctx, docId)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.String()))
	if err != nil {
		return err
	}
	if !IsMedicineDictionaryPage(doc) || !encyc.IsMedicinePage(doc) {
		stats.Invalid++
		return b.qry.MarkInvalidDocId(ctx, docId)
	}

	record := encyc.Parse(doc, url)
	record.Set("id", fmt.Sprintf("M%d", docId))
	collector.Standardize(record, "")

	_, err = collector.SaveDocument(b.dataDir, record)
	if err != nil {
		return err
	}
	err = b.qry.MarkProcessed(ctx, db.MarkProcessedParams{
		ID:          record.Get("id"),
		ProcessedAt: timezone.Now().Unix(),
	})
	if err != nil {
		return err
	}
	stats.Saved++
	return nil
}

// IsMedicineDictionaryPage verifies the entry belongs to the medicine
// dictionary category by its citation and breadcrumb links.
func IsMedicineDictionaryPage(doc *goquery.Document) bool {
	match := false
	doc.Find("p.cite a").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href, _ := link.Attr("href")
		if strings.Contains(href, "list.naver?cid=51000") ||
			strings.Contains(link.Text(), "의약품 사전") ||
			strings.Contains(link.Text(), "의약품사전") {
			match = true
			return false
		}
		return true
	})
	if match {
		return true
	}

	doc.Find(".location_wrap a, .path a, .breadcrumb a").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href, _ := link.Attr("href")
		if strings.Contains(href, "cid=51000") ||
			strings.Contains(link.Text(), "의약품") {
			match = true
			return false
		}
		return true
	})
	return match
}
