package translate

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gaurav-prasanna/novelpipe/core"
)

// DefaultService is the fallback for unknown or unusable services.
const DefaultService = ServiceGoogle

type constructor func(ctx context.Context, cfg Config, o options) (Backend, error)

func httpConstructor(f func(Config, *http.Client) (Backend, error)) constructor {
	return func(_ context.Context, cfg Config, o options) (Backend, error) {
		return f(cfg, o.httpClient)
	}
}

// registry maps services to backends. linguee, pons and qcri are
// recognized names without an implementation.
var registry = map[Service]constructor{
	ServiceGoogle:    httpConstructor(newGoogle),
	ServiceDeepL:     httpConstructor(newDeepL),
	ServiceMyMemory:  httpConstructor(newMyMemory),
	ServiceLibre:     httpConstructor(newLibre),
	ServiceMicrosoft: httpConstructor(newMicrosoft),
	ServiceYandex:    httpConstructor(newYandex),
	ServicePapago:    httpConstructor(newPapago),
	ServiceChatGPT: func(ctx context.Context, cfg Config, o options) (Backend, error) {
		return newChatGPT(ctx, cfg, o.chatModel)
	},
}

// New builds the translator for cfg. ServiceNone yields Passthrough. A
// service that is unknown, unimplemented or fails to initialize falls
// back to DefaultService; if that fails too, translation is disabled.
func New(ctx context.Context, cfg Config, opts ...Option) core.Translator {
	if cfg.Service == ServiceNone {
		return Passthrough{}
	}
	o := buildOptions(opts)

	backend, err := newBackend(ctx, cfg, o)
	if err != nil {
		o.logger.Warn("translation unavailable, continuing without translation", "error", err)
		return Passthrough{}
	}
	if o.cache != nil {
		backend = newCachedBackend(backend, o.cache, cfg.withDefaults().SourceLanguage, o.logger, o.metrics)
	}
	return newProvider(backend, cfg, o)
}

func newBackend(ctx context.Context, cfg Config, o options) (Backend, error) {
	cfg = cfg.withDefaults()

	ctor, ok := registry[cfg.Service]
	if !ok {
		o.logger.Warn("translation service not available, using default",
			"service", cfg.Service, "default", DefaultService)
		return newDefaultBackend(ctx, cfg, o)
	}
	backend, err := ctor(ctx, cfg, o)
	if err == nil {
		return backend, nil
	}
	if cfg.Service == DefaultService {
		return nil, fmt.Errorf("initializing %s: %w", cfg.Service, err)
	}
	o.logger.Warn("translation service failed to initialize, using default",
		"service", cfg.Service, "default", DefaultService, "error", err)
	return newDefaultBackend(ctx, cfg, o)
}

func newDefaultBackend(ctx context.Context, cfg Config, o options) (Backend, error) {
	// The default backend talks to its own host.
	cfg.Service = DefaultService
	cfg.Endpoint = ""
	backend, err := registry[DefaultService](ctx, cfg, o)
	if err != nil {
		return nil, fmt.Errorf("initializing %s: %w", DefaultService, err)
	}
	return backend, nil
}
