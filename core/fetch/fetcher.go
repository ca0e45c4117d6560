// Package fetch implements the Fetcher interface.
// It performs polite HTTP GET requests: one request per Delay, with the
// cookies and Referer the novel sites expect.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/gaurav-prasanna/novelpipe/core"
)

const (
	defaultTimeout   = 30 * time.Second
	DefaultDelay     = time.Second
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36 novelpipe/1.0"
	maxBodySize      = 32 << 20
)

var tracer = otel.Tracer("github.com/gaurav-prasanna/novelpipe/core/fetch")

// Options configures an HTTPFetcher.
type Options struct {
	// Delay is the minimum spacing between requests. Zero disables the limit.
	Delay     time.Duration
	UserAgent string
	Timeout   time.Duration
	// Cookies are sent with every request.
	Cookies []*http.Cookie
	// Referer returns the Referer header for a URL; "" sends none.
	Referer func(url string) string
	Client  *http.Client
	Logger  *slog.Logger
}

// HTTPFetcher fetches web pages via HTTP.
type HTTPFetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
	cookies   []*http.Cookie
	referer   func(string) string
	logger    *slog.Logger
}

var _ core.Fetcher = (*HTTPFetcher)(nil)

// New creates an HTTPFetcher. Zero options mean a 30s timeout and no
// politeness delay.
func New(opts Options) *HTTPFetcher {
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	limit := rate.Inf
	if opts.Delay > 0 {
		limit = rate.Every(opts.Delay)
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPFetcher{
		client:    client,
		limiter:   rate.NewLimiter(limit, 1),
		userAgent: ua,
		cookies:   opts.Cookies,
		referer:   opts.Referer,
		logger:    logger,
	}
}

// Fetch retrieves the HTML content of the given URL, waiting for the
// politeness delay first.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	ctx, span := tracer.Start(ctx, "fetch", trace.WithAttributes(attribute.String("http.url", url)))
	defer span.End()

	result, err := f.fetch(ctx, url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("http.status_code", result.StatusCode))
	return result, nil
}

func (f *HTTPFetcher) fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for request slot: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "ja,en;q=0.8")
	for _, c := range f.cookies {
		req.AddCookie(c)
	}
	if f.referer != nil {
		if ref := f.referer(url); ref != "" {
			req.Header.Set("Referer", ref)
		}
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	f.logger.Debug("fetched page", "url", url, "status", resp.StatusCode,
		"bytes", len(body), "elapsed", time.Since(start))

	return &core.FetchResult{
		URL:        url,
		StatusCode: resp.StatusCode,
		HTML:       string(body),
	}, nil
}
