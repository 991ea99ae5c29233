package collector

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"medicollector/internal/db"
	"medicollector/internal/keywords"
	"medicollector/lib/scrapers/encyc"
	"medicollector/lib/scrapers/openapi"
	"medicollector/lib/testutil"

	"github.com/stretchr/testify/require"
)

func setupQueries(t *testing.T) *db.Queries {
	result, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "internal/collector",
		DbSchema: db.Schema,
	})
	t.Cleanup(cleanup)
	t.Cleanup(func() { result.DB.Close() })
	return db.New(result.DB)
}

type fakeApi struct {
	results map[string]openapi.SearchResult
}

func (f *fakeApi) Search(ctx context.Context, keyword string) (openapi.SearchResult, error) {
	return f.results[keyword], nil
}

type fakeFetcher struct {
	mu          sync.Mutex
	fetched     int
	cancelAfter int
	cancel      context.CancelFunc
}

func (f *fakeFetcher) FetchMedicine(ctx context.Context, url string, title string) (*encyc.Document, error) {
	f.mu.Lock()
	f.fetched++
	if f.cancelAfter > 0 && f.fetched >= f.cancelAfter && f.cancel != nil {
		f.cancel()
	}
	f.mu.Unlock()

	doc := encyc.NewDocument()
	doc.Set("korean_name", title)
	doc.Set("url", url)
	doc.Set("components", "아세트아미노펜")
	return doc, nil
}

func dictionaryItem(docId int, title string) openapi.SearchItem {
	return openapi.SearchItem{
		Title:    title,
		Link:     fmt.Sprintf("https://terms.naver.com/entry.naver?docId=%d&cid=51000", docId),
		Category: "의약품사전",
	}
}

func TestRunCollectsAndCompletes(t *testing.T) {
	qry := setupQueries(t)
	ctx := context.Background()

	_, err := keywords.NewQueue(qry).Add(ctx, []string{"타이레놀"})
	require.NoError(t, err)

	api := &fakeApi{results: map[string]openapi.SearchResult{
		"타이레놀": {Items: []openapi.SearchItem{
			dictionaryItem(101, "타이레놀정"),
			dictionaryItem(102, "게보린정"),
			// same entry surfacing twice in one result
			dictionaryItem(101, "타이레놀정"),
		}},
	}}
	dataDir := t.TempDir()
	c := New(Options{
		Api:     api,
		Pages:   &fakeFetcher{},
		Qry:     qry,
		DataDir: dataDir,
		Workers: 1,
	})

	stats, err := c.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, stats.Saved)
	require.Equal(t, 1, stats.Skipped)
	require.Zero(t, stats.Failed)

	files, err := ListRecordFiles(dataDir)
	require.NoError(t, err)
	require.Len(t, files, 2)

	count, err := qry.IsProcessed(ctx, "M101")
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	// the run only ends once keyword mining stops producing anything
	todo, err := qry.CountKeywordsByStatus(ctx, keywords.StatusTodo)
	require.NoError(t, err)
	require.Zero(t, todo)

	_, err = qry.GetCheckpoint(ctx, "타이레놀")
	require.Error(t, err)
}

func TestRunSavesCheckpointOnCancel(t *testing.T) {
	qry := setupQueries(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := keywords.NewQueue(qry).Add(ctx, []string{"감기약"})
	require.NoError(t, err)

	var items []openapi.SearchItem
	for i := 0; i < 15; i++ {
		items = append(items, dictionaryItem(200+i, fmt.Sprintf("감기약%d정", i)))
	}
	api := &fakeApi{results: map[string]openapi.SearchResult{
		"감기약": {Items: items},
	}}
	c := New(Options{
		Api:     api,
		Pages:   &fakeFetcher{cancelAfter: 12, cancel: cancel},
		Qry:     qry,
		DataDir: t.TempDir(),
		Workers: 1,
	})

	stats, err := c.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 11, stats.Saved)

	// interrupted keywords keep their progress for the next run
	checkpoint, err := qry.GetCheckpoint(context.Background(), "감기약")
	require.NoError(t, err)
	require.EqualValues(t, 12, checkpoint.ProcessedCount)

	todo, err := qry.CountKeywordsByStatus(context.Background(), keywords.StatusTodo)
	require.NoError(t, err)
	require.EqualValues(t, 1, todo)
}
