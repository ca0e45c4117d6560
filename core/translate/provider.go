package translate

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/gaurav-prasanna/novelpipe/core"
	"github.com/gaurav-prasanna/novelpipe/logging"
)

// Texts longer than maxTextLength are translated in windowSize slices.
const (
	maxTextLength = 5000
	windowSize    = 4000
)

var tracer = otel.Tracer("github.com/gaurav-prasanna/novelpipe/core/translate")

// Option customizes a Provider or the registry.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	metrics    *Metrics
	cache      Cache
	httpClient *http.Client
	chatModel  chatModelFactory
}

// WithLogger sets the logger used for retry and fallback warnings when the
// request context carries none.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics records request, retry, degradation and cache counters.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithCache memoizes successful backend translations.
func WithCache(c Cache) Option {
	return func(o *options) { o.cache = c }
}

// WithHTTPClient sets the client used by HTTP backends.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.metrics == nil {
		o.metrics = NewMetrics(nil)
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return o
}

// Provider wraps a Backend with the retry, windowing and batching policy.
// It never returns an error: a text that cannot be translated comes back
// unchanged.
type Provider struct {
	backend Backend
	cfg     Config
	logger  *slog.Logger
	metrics *Metrics
	sleep   func(ctx context.Context, d time.Duration) error
}

var _ core.Translator = (*Provider)(nil)

// NewProvider creates a Provider over backend.
func NewProvider(backend Backend, cfg Config, opts ...Option) *Provider {
	return newProvider(backend, cfg, buildOptions(opts))
}

func newProvider(backend Backend, cfg Config, o options) *Provider {
	return &Provider{
		backend: backend,
		cfg:     cfg.withDefaults(),
		logger:  o.logger,
		metrics: o.metrics,
		sleep:   sleepContext,
	}
}

// Config returns the effective configuration.
func (p *Provider) Config() Config { return p.cfg }

// TranslateText translates one text, retrying up to MaxRetries times with
// RetryDelay between attempts. After the last failure the input is returned.
func (p *Provider) TranslateText(ctx context.Context, text, targetLang string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	if targetLang == "" {
		targetLang = p.cfg.TargetLanguage
	}

	ctx, span := tracer.Start(ctx, "translate.text", trace.WithAttributes(
		attribute.String("translate.service", p.backend.Name()),
		attribute.String("translate.target", targetLang),
		attribute.Int("translate.length", utf8.RuneCountInString(text)),
	))
	defer span.End()

	service := p.backend.Name()
	attempts := p.cfg.MaxRetries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		out, err := p.attempt(ctx, text, targetLang)
		if err == nil {
			p.metrics.request(service, true)
			return out
		}
		p.metrics.request(service, false)
		span.RecordError(err)

		if ctx.Err() != nil {
			break
		}
		if attempt == attempts {
			logging.FromContextOr(ctx, p.logger).Warn("translation failed, keeping original text",
				"service", service, "attempts", attempts, "error", err)
			break
		}
		logging.FromContextOr(ctx, p.logger).Warn("translation attempt failed, retrying",
			"service", service, "attempt", attempt, "max_attempts", attempts,
			"retry_delay", p.cfg.RetryDelay, "error", err)
		p.metrics.retry(service)
		if err := p.sleep(ctx, p.cfg.RetryDelay); err != nil {
			break
		}
	}

	p.metrics.degrade(service)
	span.SetStatus(codes.Error, "degraded to original text")
	return text
}

// attempt performs one full translation of text. Oversize texts are split
// into fixed windows; a failure in any window fails the whole attempt.
func (p *Provider) attempt(ctx context.Context, text, targetLang string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("translation backend panicked: %v", r)
		}
	}()

	if utf8.RuneCountInString(text) <= maxTextLength {
		return p.backend.Translate(ctx, text, targetLang)
	}

	var b strings.Builder
	for _, window := range splitWindows(text, windowSize) {
		part, err := p.backend.Translate(ctx, window, targetLang)
		if err != nil {
			return "", err
		}
		b.WriteString(part)
	}
	return b.String(), nil
}

// BatchTranslate translates texts preserving order and length. With
// ConcurrentRequests <= 1 the texts are translated one at a time; otherwise
// at most ConcurrentRequests translations run at once. RequestDelay is slept
// after every call. Once ctx is done no further texts are submitted and the
// remainder keep their original values.
func (p *Provider) BatchTranslate(ctx context.Context, texts []string, targetLang string) []string {
	if len(texts) == 0 {
		return slices.Clone(texts)
	}
	results := slices.Clone(texts)

	if p.cfg.ConcurrentRequests <= 1 {
		for i, text := range texts {
			if ctx.Err() != nil {
				break
			}
			results[i] = p.TranslateText(ctx, text, targetLang)
			_ = p.sleep(ctx, p.cfg.RequestDelay)
		}
		return results
	}

	var g errgroup.Group
	g.SetLimit(p.cfg.ConcurrentRequests)
	for i, text := range texts {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			results[i] = p.TranslateText(ctx, text, targetLang)
			_ = p.sleep(ctx, p.cfg.RequestDelay)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// splitWindows cuts text into consecutive slices of size runes.
func splitWindows(text string, size int) []string {
	runes := []rune(text)
	windows := make([]string, 0, len(runes)/size+1)
	for start := 0; start < len(runes); start += size {
		end := min(start+size, len(runes))
		windows = append(windows, string(runes[start:end]))
	}
	return windows
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Passthrough is the disabled translator: every text comes back unchanged.
type Passthrough struct{}

var _ core.Translator = Passthrough{}

func (Passthrough) TranslateText(_ context.Context, text, _ string) string { return text }

func (Passthrough) BatchTranslate(_ context.Context, texts []string, _ string) []string {
	return slices.Clone(texts)
}
