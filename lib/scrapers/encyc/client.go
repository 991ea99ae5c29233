// Package encyc fetches and parses medicine entries from the naver
// encyclopedia at terms.naver.com. the pages are server rendered html
// behind cloudflare, so the client carries a cookie jar, a browser
// transport and rotates user agents between requests.
package encyc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/cookiejar"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"medicollector/lib/scrapers/useragent"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

const DefaultReferer = "https://search.naver.com/"

type ClientOptions struct {
	// DelayMin and DelayMax bound the random pause between requests.
	// both default to one second.
	DelayMin time.Duration
	DelayMax time.Duration
	// MaxRetries defaults to 3.
	MaxRetries int
	// ErrorLogDir, when set, receives a json dump for every page that
	// could not be fetched after all retries.
	ErrorLogDir string
}

type Client struct {
	http        *resty.Client
	delayMin    time.Duration
	delayMax    time.Duration
	maxRetries  int
	errorLogDir string

	mu          sync.Mutex
	lastRequest time.Time
}

func NewClient(opts ClientOptions) (*Client, error) {
	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	client.SetHeader("Accept-Language", "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7")
	// bot challenges redirect off terms.naver.com; redirects are
	// followed and IsBlocked inspects the final url
	client.SetTimeout(time.Second * 15)

	restyutilInstrument(client)

	delayMin := opts.DelayMin
	if delayMin <= 0 {
		delayMin = time.Second
	}
	delayMax := opts.DelayMax
	if delayMax < delayMin {
		delayMax = delayMin
	}
	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &Client{
		http:        client,
		delayMin:    delayMin,
		delayMax:    delayMax,
		maxRetries:  maxRetries,
		errorLogDir: opts.ErrorLogDir,
	}, nil
}

func (c *Client) pace() {
	c.mu.Lock()
	defer c.mu.Unlock()

	delay := c.delayMin
	if c.delayMax > c.delayMin {
		delay += time.Duration(rand.Int63n(int64(c.delayMax - c.delayMin)))
	}
	elapsed := time.Since(c.lastRequest)
	if elapsed < delay {
		time.Sleep(delay - elapsed)
	}
	c.lastRequest = time.Now()
}

// Get fetches a single page with pacing, rotating user agents and a
// doubling backoff on server errors. responses with a non-5xx status
// are returned as-is so callers can tell a 404 from a block page.
func (c *Client) Get(ctx context.Context, url string, referer string) (*resty.Response, error) {
	ctx, span := tracer.Start(ctx, "Get")
	defer span.End()

	if referer == "" {
		referer = DefaultReferer
	}

	backoff := time.Second
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			slog.WarnContext(
				ctx, "retrying page fetch",
				"url", url,
				"attempt", attempt+1,
				"max", c.maxRetries,
			)
		}
		c.pace()

		res, err := c.http.R().
			SetContext(ctx).
			SetHeader("User-Agent", useragent.Random()).
			SetHeader("Referer", referer).
			Get(url)
		if err != nil {
			lastErr = err
			time.Sleep(backoff)
			backoff *= 2
			continue
		}
		if res.StatusCode() >= 500 {
			lastErr = fmt.Errorf("fetch %s: status %d", url, res.StatusCode())
			time.Sleep(backoff)
			backoff *= 2
			continue
		}
		return res, nil
	}

	span.RecordError(lastErr)
	span.SetStatus(codes.Error, "retries exhausted")
	return nil, fmt.Errorf("fetch %s: exceeded %d retries: %w", url, c.maxRetries, lastErr)
}

var blockedBodyMarkers = []string{
	"captcha",
	"자동화",
	"로봇",
	"비정상적인 접근",
	"일시적으로 차단",
}

var blockedHeaders = []string{
	"x-frame-options",
	"content-security-policy",
	"strict-transport-security",
}

// IsBlocked reports whether a response looks like a bot challenge
// rather than a real entry page. naver serves block pages with a 200
// status, so the final url, body text and security headers are the
// only tells.
func IsBlocked(res *resty.Response) bool {
	return isBlocked(res.RawResponse.Request.URL.Hostname(), res.Header(), res.String())
}

func isBlocked(finalHost string, headers http.Header, body string) bool {
	body = strings.ToLower(body)
	for _, marker := range blockedBodyMarkers {
		if strings.Contains(body, strings.ToLower(marker)) {
			return true
		}
	}
	if !strings.HasSuffix(finalHost, "terms.naver.com") {
		for _, header := range blockedHeaders {
			if headers.Get(header) != "" {
				return true
			}
		}
	}
	return false
}

// FetchMedicine fetches an entry page and parses it into a Document.
// pages that are reachable but do not describe a medicine return
// (nil, nil) so callers can skip them without treating it as a
// failure.
func (c *Client) FetchMedicine(ctx context.Context, url string, title string) (*Document, error) {
	ctx, span := tracer.Start(ctx, "FetchMedicine")
	defer span.End()

	res, err := c.Get(ctx, url, DefaultReferer)
	if err != nil {
		c.dumpErrorLog(ctx, url, title, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return nil, err
	}
	if res.StatusCode() != 200 {
		err := fmt.Errorf("fetch %s: status %d", url, res.StatusCode())
		c.dumpErrorLog(ctx, url, title, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected status")
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.String()))
	if err != nil {
		return nil, err
	}
	if !IsMedicinePage(doc) {
		slog.DebugContext(ctx, "skipping non-medicine page", "url", url, "title", title)
		return nil, nil
	}
	return Parse(doc, url), nil
}

type errorLogEntry struct {
	Url       string `json:"url"`
	Title     string `json:"title"`
	Id        string `json:"id"`
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}

func (c *Client) dumpErrorLog(ctx context.Context, url, title string, fetchErr error) {
	if c.errorLogDir == "" {
		return
	}
	err := os.MkdirAll(c.errorLogDir, 0777)
	if err != nil {
		slog.WarnContext(ctx, "could not create error log directory", "err", err)
		return
	}
	entry := errorLogEntry{
		Url:       url,
		Title:     title,
		Id:        DocumentId(url, title, ""),
		Error:     fetchErr.Error(),
		Timestamp: time.Now().Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return
	}
	file := filepath.Join(
		c.errorLogDir,
		fmt.Sprintf("error_%s.json", time.Now().Format("20060102_150405.000")),
	)
	err = os.WriteFile(file, data, 0600)
	if err != nil {
		slog.WarnContext(ctx, "could not write error log", "file", file, "err", err)
	}
}
