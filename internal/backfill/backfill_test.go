package backfill

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"medicollector/internal/db"
	"medicollector/lib/testutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, dataDir string) (*Backfill, *db.Queries) {
	result, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "internal/backfill",
		DbSchema: db.Schema,
	})
	t.Cleanup(cleanup)
	t.Cleanup(func() { result.DB.Close() })
	qry := db.New(result.DB)
	b := New(Options{
		Qry:     qry,
		DataDir: dataDir,
		StartId: 100,
		EndId:   110,
	})
	return b, qry
}

func TestEntryUrl(t *testing.T) {
	require.Equal(
		t,
		"https://terms.naver.com/entry.naver?docId=2148875&cid=51000&categoryId=51000",
		EntryUrl(2148875),
	)
}

func TestMissingIds(t *testing.T) {
	dataDir := t.TempDir()
	// a record file on disk counts even without a db row
	err := os.WriteFile(filepath.Join(dataDir, "M103_테스트약품.json"), []byte("{}"), 0600)
	require.NoError(t, err)

	b, qry := setup(t, dataDir)
	ctx := context.Background()

	err = qry.MarkProcessed(ctx, db.MarkProcessedParams{ID: "M101", ProcessedAt: 1})
	require.NoError(t, err)
	err = qry.MarkInvalidDocId(ctx, 105)
	require.NoError(t, err)

	missing, err := b.MissingIds(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{100, 102, 104, 106, 107, 108, 109, 110}, missing)
}

func TestIsMedicineDictionaryPage(t *testing.T) {
	page := `<html><body>
<p class="cite">출처: <a href="https://terms.naver.com/list.naver?cid=51000&categoryId=51000">의약품 사전</a></p>
</body></html>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	require.True(t, IsMedicineDictionaryPage(doc))

	other := `<html><body>
<p class="cite"><a href="https://terms.naver.com/list.naver?cid=40942">두산백과</a></p>
</body></html>`
	doc, err = goquery.NewDocumentFromReader(strings.NewReader(other))
	require.NoError(t, err)
	require.False(t, IsMedicineDictionaryPage(doc))
}
