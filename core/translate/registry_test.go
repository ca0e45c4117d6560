package translate

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseService(t *testing.T) {
	s, ok := ParseService(" DeepL ")
	assert.True(t, ok)
	assert.Equal(t, ServiceDeepL, s)

	_, ok = ParseService("babelfish")
	assert.False(t, ok)
}

func TestNewNoneIsPassthrough(t *testing.T) {
	tr := New(context.Background(), Config{Service: ServiceNone})
	assert.IsType(t, Passthrough{}, tr)
}

func TestNewFallsBackToGoogle(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"unimplemented", Config{Service: ServiceLinguee}},
		{"unknown", Config{Service: Service("babelfish")}},
		{"missing key", Config{Service: ServiceDeepL}},
		{"malformed papago key", Config{Service: ServicePapago, APIKey: "x"}},
		{"chatgpt without key", Config{Service: ServiceChatGPT}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))

			tr := New(context.Background(), tc.cfg, WithLogger(logger))
			p, ok := tr.(*Provider)
			require.True(t, ok)
			assert.Equal(t, string(ServiceGoogle), p.backend.Name())
			assert.Contains(t, logs.String(), "using default")
		})
	}
}

func TestNewKeepsConfiguredService(t *testing.T) {
	tr := New(context.Background(), Config{Service: ServiceDeepL, APIKey: "k"})
	p, ok := tr.(*Provider)
	require.True(t, ok)
	assert.Equal(t, string(ServiceDeepL), p.backend.Name())
}

func TestCachedBackendStoresOnlySuccesses(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	next := &stubBackend{fn: func(_ context.Context, text, _ string) (string, error) {
		if fail.Load() {
			return "", errors.New("down")
		}
		return "T:" + text, nil
	}}
	cache := NewMemoryCache()
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	b := newCachedBackend(next, cache, "auto", slog.Default(), metrics)

	_, err := b.Translate(context.Background(), "a", "en")
	require.Error(t, err)
	assert.Zero(t, cache.Len())

	fail.Store(false)
	out, err := b.Translate(context.Background(), "a", "en")
	require.NoError(t, err)
	assert.Equal(t, "T:a", out)
	assert.Equal(t, 1, cache.Len())

	out, err = b.Translate(context.Background(), "a", "en")
	require.NoError(t, err)
	assert.Equal(t, "T:a", out)
	assert.EqualValues(t, 2, next.calls.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.cacheHits.WithLabelValues("stub")))
}

func TestCachedBackendKeysByTarget(t *testing.T) {
	next := &stubBackend{fn: func(_ context.Context, text, target string) (string, error) {
		return target + ":" + text, nil
	}}
	b := newCachedBackend(next, NewMemoryCache(), "auto", slog.Default(), NewMetrics(nil))

	en, _ := b.Translate(context.Background(), "x", "en")
	fr, _ := b.Translate(context.Background(), "x", "fr")
	assert.Equal(t, "en:x", en)
	assert.Equal(t, "fr:x", fr)
}

func TestCachedBackendKeysBySource(t *testing.T) {
	cache := NewMemoryCache()
	ja := &stubBackend{fn: func(_ context.Context, text, _ string) (string, error) { return "ja:" + text, nil }}
	ko := &stubBackend{fn: func(_ context.Context, text, _ string) (string, error) { return "ko:" + text, nil }}

	out, err := newCachedBackend(ja, cache, "ja", slog.Default(), NewMetrics(nil)).Translate(context.Background(), "x", "en")
	require.NoError(t, err)
	assert.Equal(t, "ja:x", out)

	out, err = newCachedBackend(ko, cache, "ko", slog.Default(), NewMetrics(nil)).Translate(context.Background(), "x", "en")
	require.NoError(t, err)
	assert.Equal(t, "ko:x", out)
	assert.Equal(t, 2, cache.Len())
}

func TestCachedBackendCollapsesConcurrentRequests(t *testing.T) {
	release := make(chan struct{})
	next := &stubBackend{fn: func(_ context.Context, text, _ string) (string, error) {
		<-release
		return "T:" + text, nil
	}}
	b := newCachedBackend(next, NewMemoryCache(), "auto", slog.Default(), NewMetrics(nil))

	var wg sync.WaitGroup
	results := make([]string, 5)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = b.Translate(context.Background(), "same", "en")
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "T:same", r)
	}
	assert.LessOrEqual(t, next.calls.Load(), int64(5))
	assert.GreaterOrEqual(t, next.calls.Load(), int64(1))
}

func TestCacheKeyIsStable(t *testing.T) {
	assert.Equal(t, CacheKey("google", "auto", "en", "x"), CacheKey("google", "auto", "en", "x"))
	assert.NotEqual(t, CacheKey("google", "auto", "en", "x"), CacheKey("deepl", "auto", "en", "x"))
	assert.NotEqual(t, CacheKey("google", "auto", "en", "x"), CacheKey("google", "ja", "en", "x"))
	assert.Len(t, CacheKey("google", "auto", "en", "x"), 64)
}

func TestProviderMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	b := &stubBackend{fn: func(context.Context, string, string) (string, error) {
		return "", errors.New("no")
	}}
	p := NewProvider(b, Config{MaxRetries: 2}, WithMetrics(metrics))
	p.sleep = func(context.Context, time.Duration) error { return nil }

	p.TranslateText(context.Background(), "x", "en")
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.requests.WithLabelValues("stub", "error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.retries.WithLabelValues("stub")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.degraded.WithLabelValues("stub")))
}
