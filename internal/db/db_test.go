package db

import (
	"context"
	"testing"

	"medicollector/lib/testutil"

	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *Queries {
	result, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "internal/db",
		DbSchema: Schema,
	})
	t.Cleanup(cleanup)
	t.Cleanup(func() { result.DB.Close() })
	return New(result.DB)
}

func TestProcessedIds(t *testing.T) {
	qry := setup(t)
	ctx := context.Background()

	count, err := qry.IsProcessed(ctx, "M100")
	require.NoError(t, err)
	require.EqualValues(t, 0, count)

	err = qry.MarkProcessed(ctx, MarkProcessedParams{ID: "M100", ProcessedAt: 1})
	require.NoError(t, err)
	// marking twice is a no-op
	err = qry.MarkProcessed(ctx, MarkProcessedParams{ID: "M100", ProcessedAt: 2})
	require.NoError(t, err)

	count, err = qry.IsProcessed(ctx, "M100")
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	ids, err := qry.ListProcessedIds(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"M100"}, ids)
}

func TestKeywordLifecycle(t *testing.T) {
	qry := setup(t)
	ctx := context.Background()

	err := qry.AddKeyword(ctx, AddKeywordParams{Word: "타이레놀", AddedAt: 1})
	require.NoError(t, err)
	err = qry.AddKeyword(ctx, AddKeywordParams{Word: "게보린", AddedAt: 2})
	require.NoError(t, err)

	todo, err := qry.ListKeywordsByStatus(ctx, "todo")
	require.NoError(t, err)
	require.Len(t, todo, 2)
	require.Equal(t, "타이레놀", todo[0].Word)

	err = qry.SetKeywordStatus(ctx, SetKeywordStatusParams{Status: "done", Word: "타이레놀"})
	require.NoError(t, err)

	todo, err = qry.ListKeywordsByStatus(ctx, "todo")
	require.NoError(t, err)
	require.Len(t, todo, 1)
	require.Equal(t, "게보린", todo[0].Word)

	count, err := qry.CountKeywordsByStatus(ctx, "done")
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestQuotaIncrement(t *testing.T) {
	qry := setup(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		count, err := qry.IncrementQuota(ctx, "2026-08-29")
		require.NoError(t, err)
		require.EqualValues(t, i, count)
	}

	count, err := qry.IncrementQuota(ctx, "2026-08-30")
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	count, err = qry.GetQuota(ctx, "2026-08-29")
	require.NoError(t, err)
	require.EqualValues(t, 3, count)
}

func TestCheckpointUpsert(t *testing.T) {
	qry := setup(t)
	ctx := context.Background()

	err := qry.UpsertCheckpoint(ctx, UpsertCheckpointParams{
		Keyword:        "타이레놀",
		ProcessedCount: 10,
		TotalSearches:  1,
		TotalFound:     20,
		TotalSaved:     9,
		FailedItems:    1,
		UpdatedAt:      100,
	})
	require.NoError(t, err)

	err = qry.UpsertCheckpoint(ctx, UpsertCheckpointParams{
		Keyword:        "타이레놀",
		ProcessedCount: 20,
		TotalSearches:  2,
		TotalFound:     40,
		TotalSaved:     18,
		FailedItems:    2,
		UpdatedAt:      200,
	})
	require.NoError(t, err)

	checkpoint, err := qry.GetCheckpoint(ctx, "타이레놀")
	require.NoError(t, err)
	require.EqualValues(t, 20, checkpoint.ProcessedCount)
	require.EqualValues(t, 200, checkpoint.UpdatedAt)

	err = qry.DeleteCheckpoint(ctx, "타이레놀")
	require.NoError(t, err)
	_, err = qry.GetCheckpoint(ctx, "타이레놀")
	require.Error(t, err)
}

func TestCrawlResume(t *testing.T) {
	qry := setup(t)
	ctx := context.Background()

	_, err := qry.GetCrawlResume(ctx)
	require.Error(t, err)

	require.NoError(t, qry.SetCrawlResume(ctx, 42))
	require.NoError(t, qry.SetCrawlResume(ctx, 84))

	position, err := qry.GetCrawlResume(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 84, position)

	require.NoError(t, qry.ClearCrawlResume(ctx))
	_, err = qry.GetCrawlResume(ctx)
	require.Error(t, err)
}
