package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/novelpipe/config"
	"github.com/gaurav-prasanna/novelpipe/core"
	"github.com/gaurav-prasanna/novelpipe/core/extract"
	"github.com/gaurav-prasanna/novelpipe/core/fetch"
	"github.com/gaurav-prasanna/novelpipe/core/scrape"
	"github.com/gaurav-prasanna/novelpipe/core/translate"
	"github.com/gaurav-prasanna/novelpipe/logging"
)

const (
	httpTimeout      = 30 * time.Second
	redisPingTimeout = 3 * time.Second
)

// transport carries every outbound request. Tests replace it.
var transport http.RoundTripper = http.DefaultTransport

// app holds the components shared by one command invocation.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *translate.Metrics
	closers  []func() error
}

// newApp loads configuration and logging from the command's flags.
func newApp(cmd *cobra.Command, flags *rootFlags) (*app, error) {
	cfg, err := config.Load(flags.configPath, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if flags.debug {
		cfg.Log.Level = "debug"
	}
	logger := logging.Init(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())

	registry := prometheus.NewRegistry()
	a := &app{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		metrics:  translate.NewMetrics(registry),
	}
	if cfg.Metrics.Addr != "" {
		if err := a.serveMetrics(cfg.Metrics.Addr); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// serveMetrics exposes the registry on addr until the app is closed.
func (a *app) serveMetrics(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening for metrics on %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server stopped", "error", err)
		}
	}()
	a.logger.Info("serving metrics", "addr", ln.Addr().String())
	a.closers = append(a.closers, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	})
	return nil
}

// Close releases the metrics server and cache connections.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("closing resource", "error", err)
		}
	}
	a.closers = nil
}

func (a *app) httpClient() *http.Client {
	return &http.Client{Timeout: httpTimeout, Transport: transport}
}

// cache builds the configured translation cache. An unreachable redis falls
// back to the in-memory cache.
func (a *app) cache(ctx context.Context) translate.Cache {
	switch a.cfg.Cache.Backend {
	case config.CacheNone:
		return nil
	case config.CacheRedis:
		rc := translate.NewRedisCache(translate.RedisOptions{
			Addr:     a.cfg.Cache.Redis.Addr,
			Password: a.cfg.Cache.Redis.Password,
			DB:       a.cfg.Cache.Redis.DB,
			TTL:      a.cfg.Cache.TTL,
		})
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		defer cancel()
		if err := rc.Ping(pingCtx); err != nil {
			a.logger.Warn("redis cache unavailable, using memory cache", "addr", a.cfg.Cache.Redis.Addr, "error", err)
			_ = rc.Close()
			return translate.NewMemoryCache()
		}
		a.closers = append(a.closers, rc.Close)
		return rc
	default:
		return translate.NewMemoryCache()
	}
}

// translator builds the translation provider. Disabled translation yields
// the pass-through translator.
func (a *app) translator(ctx context.Context) core.Translator {
	tc := a.cfg.TranslateConfig()
	if tc.Service == translate.ServiceNone {
		return translate.Passthrough{}
	}
	opts := []translate.Option{
		translate.WithLogger(a.logger),
		translate.WithMetrics(a.metrics),
		translate.WithHTTPClient(a.httpClient()),
	}
	if c := a.cache(ctx); c != nil {
		opts = append(opts, translate.WithCache(c))
	}
	return translate.New(ctx, tc, opts...)
}

// scraper wires fetcher, translation and extractor for site.
func (a *app) scraper(ctx context.Context, site extract.Site) (*scrape.Scraper, error) {
	t := a.cfg.Translation
	extractor, err := extract.New(site, extract.Options{
		Translator: a.translator(ctx),
		Translation: extract.TranslationOptions{
			Enabled:          t.Enabled,
			TargetLanguage:   t.TargetLanguage,
			TranslateTitle:   t.TranslateTitle,
			TranslateContent: t.TranslateContent,
		},
		Logger: a.logger,
	})
	if err != nil {
		return nil, err
	}

	var cookies []*http.Cookie
	if c := site.Cookie(); c != nil {
		cookies = append(cookies, c)
	}
	fetcher := fetch.New(fetch.Options{
		Delay:     a.cfg.FetchDelay(),
		UserAgent: a.cfg.General.UserAgent,
		Cookies:   cookies,
		Referer:   site.Referer,
		Client:    a.httpClient(),
		Logger:    a.logger,
	})
	return scrape.New(site, fetcher, extractor, a.logger), nil
}

// resolveNovel accepts a full novel URL or a bare ID on the given site.
func resolveNovel(arg, siteName string) (extract.Site, string, error) {
	arg = strings.TrimSpace(arg)
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		return extract.DetectSite(arg)
	}
	if arg == "" || strings.Contains(arg, "/") {
		return "", "", fmt.Errorf("invalid novel %q: give a novel URL or ID", arg)
	}
	site, err := extract.ParseSite(siteName)
	if err != nil {
		return "", "", err
	}
	if site != extract.SiteHameln {
		arg = strings.ToLower(arg)
	}
	return site, arg, nil
}
