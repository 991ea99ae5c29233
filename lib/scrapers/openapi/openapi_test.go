package openapi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type fixedQuota struct {
	count int64
}

func (q *fixedQuota) Increment(ctx context.Context, day string) (int64, error) {
	q.count++
	return q.count, nil
}

func TestSearchStopsAtDailyLimit(t *testing.T) {
	quota := &fixedQuota{count: DailyLimit}
	client := NewClient(ClientOptions{Quota: quota})

	// the quota check runs before any request goes out, so an
	// exhausted counter fails the search without touching the network
	_, err := client.Search(context.Background(), "타이레놀")
	require.ErrorIs(t, err, ErrDailyQuotaExceeded)
}

func TestCheckQuotaUnderLimit(t *testing.T) {
	client := NewClient(ClientOptions{Quota: &fixedQuota{}})
	require.NoError(t, client.checkQuota(context.Background()))

	// no counter configured means no local limit
	client = NewClient(ClientOptions{})
	require.NoError(t, client.checkQuota(context.Background()))
}
