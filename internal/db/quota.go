package db

import "context"

// QuotaCounter adapts Queries to the quota interface the search api
// client consumes.
type QuotaCounter struct {
	Qry *Queries
}

func (c QuotaCounter) Increment(ctx context.Context, day string) (int64, error) {
	return c.Qry.IncrementQuota(ctx, day)
}
