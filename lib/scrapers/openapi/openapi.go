// Package openapi implements a client for the naver open api
// encyclopedia search endpoint. searches are paced, retried and
// counted against the 25,000 request daily quota naver enforces
// per credential.
package openapi

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"medicollector/lib/scrapers/useragent"
	"medicollector/lib/timezone"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

const searchUrl = "https://openapi.naver.com/v1/search/encyc.json"

const DailyLimit = 25000

var ErrDailyQuotaExceeded = fmt.Errorf("daily api request quota of %d exceeded", DailyLimit)

// QuotaCounter tracks api usage per KST day. Increment returns the
// total after counting the request about to be made.
type QuotaCounter interface {
	Increment(ctx context.Context, day string) (int64, error)
}

type SearchItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	Category    string `json:"category"`
}

type SearchResult struct {
	Total   int          `json:"total"`
	Start   int          `json:"start"`
	Display int          `json:"display"`
	Items   []SearchItem `json:"items"`
}

type ClientOptions struct {
	ClientId     string
	ClientSecret string
	// Quota may be nil, in which case usage is not limited locally.
	Quota QuotaCounter
	// MaxRetries defaults to 3.
	MaxRetries int
}

type Client struct {
	http       *resty.Client
	quota      QuotaCounter
	maxRetries int

	mu          sync.Mutex
	lastRequest time.Time
}

func NewClient(opts ClientOptions) *Client {
	client := resty.New()
	client.SetHeader("X-Naver-Client-Id", opts.ClientId)
	client.SetHeader("X-Naver-Client-Secret", opts.ClientSecret)
	client.SetTimeout(time.Second * 10)

	restyutilInstrument(client)

	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &Client{
		http:       client,
		quota:      opts.Quota,
		maxRetries: maxRetries,
	}
}

// naver throttles aggressively, keep at least 500ms between calls
const minRequestInterval = time.Millisecond * 500

func (c *Client) pace() {
	c.mu.Lock()
	defer c.mu.Unlock()

	elapsed := time.Since(c.lastRequest)
	if elapsed < minRequestInterval {
		time.Sleep(minRequestInterval - elapsed)
	}
	c.lastRequest = time.Now()
}

func (c *Client) checkQuota(ctx context.Context) error {
	if c.quota == nil {
		return nil
	}
	count, err := c.quota.Increment(ctx, timezone.Day(timezone.Now()))
	if err != nil {
		return err
	}
	if count > DailyLimit {
		return ErrDailyQuotaExceeded
	}
	return nil
}

// Search queries the encyclopedia vertical for a keyword. the query
// gets an " 의약품" suffix so generic brand names still land in the
// medicine dictionary instead of the general encyclopedia.
func (c *Client) Search(ctx context.Context, keyword string) (SearchResult, error) {
	ctx, span := tracer.Start(ctx, "Search")
	defer span.End()

	err := c.checkQuota(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "quota check failed")
		return SearchResult{}, err
	}

	backoff := time.Second
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			slog.WarnContext(
				ctx, "retrying search",
				"keyword", keyword,
				"attempt", attempt+1,
				"max", c.maxRetries,
			)
		}
		c.pace()

		var result SearchResult
		res, err := c.http.R().
			SetContext(ctx).
			SetHeader("User-Agent", useragent.Random()).
			SetQueryParams(map[string]string{
				"query":   keyword + " 의약품",
				"display": "100",
				"start":   "1",
			}).
			SetResult(&result).
			Get(searchUrl)
		if err != nil {
			// transport errors back off more gently than rate limits
			time.Sleep(backoff)
			backoff = backoff * 3 / 2
			continue
		}

		switch {
		case res.StatusCode() == 429:
			wait := backoff
			if retryAfter := res.Header().Get("Retry-After"); retryAfter != "" {
				if secs, err := strconv.Atoi(retryAfter); err == nil {
					wait = time.Duration(secs) * time.Second
				}
			}
			slog.WarnContext(ctx, "api rate limit hit", "wait", wait)
			time.Sleep(wait)
			backoff *= 2
			continue
		case res.StatusCode() == 400:
			// a malformed query will never succeed on retry
			slog.ErrorContext(
				ctx, "bad search request",
				"keyword", keyword,
				"body", res.String(),
			)
			return SearchResult{}, nil
		case res.StatusCode() >= 400:
			slog.WarnContext(
				ctx, "api error",
				"status", res.StatusCode(),
				"attempt", attempt+1,
			)
			time.Sleep(backoff)
			backoff *= 2
			continue
		}

		return result, nil
	}

	err = fmt.Errorf("search %q: exceeded %d retries", keyword, c.maxRetries)
	span.RecordError(err)
	span.SetStatus(codes.Error, "retries exhausted")
	return SearchResult{}, err
}
