package keywords

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"medicollector/internal/db"
	"medicollector/lib/scrapers/encyc"
	"medicollector/lib/testutil"

	"github.com/stretchr/testify/require"
)

func setupQueue(t *testing.T) Queue {
	result, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "internal/keywords",
		DbSchema: db.Schema,
	})
	t.Cleanup(cleanup)
	t.Cleanup(func() { result.DB.Close() })
	return NewQueue(db.New(result.DB))
}

func TestEnsureAvailableSeeds(t *testing.T) {
	queue := setupQueue(t)
	ctx := context.Background()

	added, err := queue.EnsureAvailable(ctx, t.TempDir())
	require.NoError(t, err)
	require.Equal(t, len(ExtensiveSeeds()), added)

	// a queue with todo keywords left is not touched
	added, err = queue.EnsureAvailable(ctx, t.TempDir())
	require.NoError(t, err)
	require.Zero(t, added)

	words, err := queue.Next(ctx, 5)
	require.NoError(t, err)
	require.Len(t, words, 5)
}

func TestMarkDone(t *testing.T) {
	queue := setupQueue(t)
	ctx := context.Background()

	_, err := queue.Add(ctx, []string{"타이레놀", "게보린"})
	require.NoError(t, err)
	require.NoError(t, queue.MarkDone(ctx, "타이레놀"))

	words, err := queue.Next(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, []string{"게보린"}, words)
}

func TestGenerateFromData(t *testing.T) {
	queue := setupQueue(t)
	ctx := context.Background()

	_, err := queue.Add(ctx, []string{"감기약"})
	require.NoError(t, err)
	require.NoError(t, queue.MarkDone(ctx, "감기약"))

	dataDir := t.TempDir()
	doc := encyc.NewDocument()
	doc.Set("id", "M100")
	doc.Set("korean_name", "판피린큐액")
	doc.Set("components", "아세트아미노펜, 클로르페니라민말레산염")
	// records always carry the queue word they were found through, so
	// mining must not skip them just because that word is known
	doc.Set("search_keyword", "감기약")
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dataDir, "M100_판피린큐액.json"), data, 0600)
	require.NoError(t, err)

	added, err := queue.GenerateFromData(ctx, dataDir, 10)
	require.NoError(t, err)
	require.Greater(t, added, 0)

	words, err := queue.Next(ctx, 0)
	require.NoError(t, err)
	require.Contains(t, words, "판피린큐액")
}
