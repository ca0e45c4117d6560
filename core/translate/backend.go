// Package translate implements the Translation Provider: a uniform
// single-text and batch contract over interchangeable translation services,
// with bounded retries, oversize windowing and a bounded worker pool.
package translate

import (
	"context"
	"strings"
	"time"
)

// Backend is one translation service. Implementations return errors freely;
// the Provider retries and degrades them.
type Backend interface {
	Name() string
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// Service identifies a translation backend.
type Service string

const (
	ServiceNone      Service = "none"
	ServiceGoogle    Service = "google"
	ServiceDeepL     Service = "deepl"
	ServiceMyMemory  Service = "mymemory"
	ServiceLinguee   Service = "linguee"
	ServicePons      Service = "pons"
	ServiceLibre     Service = "libre"
	ServiceMicrosoft Service = "microsoft"
	ServiceQcri      Service = "qcri"
	ServicePapago    Service = "papago"
	ServiceYandex    Service = "yandex"
	ServiceChatGPT   Service = "chatgpt"
)

// Services lists every recognized service name.
var Services = []Service{
	ServiceNone, ServiceGoogle, ServiceDeepL, ServiceMyMemory, ServiceLinguee,
	ServicePons, ServiceLibre, ServiceMicrosoft, ServiceQcri, ServicePapago,
	ServiceYandex, ServiceChatGPT,
}

// ParseService maps a configuration string to a Service.
func ParseService(raw string) (Service, bool) {
	s := Service(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Services {
		if s == known {
			return s, true
		}
	}
	return s, false
}

// Defaults for the provider configuration.
const (
	DefaultTargetLanguage     = "en"
	DefaultSourceLanguage     = "auto"
	DefaultConcurrentRequests = 3
	DefaultRequestDelay       = 100 * time.Millisecond
	DefaultMaxRetries         = 3
	DefaultRetryDelay         = 5 * time.Second
)

// Config is the fixed configuration of one Provider.
type Config struct {
	Service            Service
	APIKey             string
	TargetLanguage     string
	SourceLanguage     string
	ConcurrentRequests int
	// RequestDelay is slept after every call in a batch, success or not.
	RequestDelay time.Duration
	// MaxRetries is the number of extra attempts after the first failure.
	MaxRetries int
	RetryDelay time.Duration
	// Model selects the chat model for the chatgpt service.
	Model string
	// Endpoint overrides the service base URL where the service allows it.
	Endpoint string
}

// DefaultConfig returns the reference configuration for service.
func DefaultConfig(service Service) Config {
	return Config{
		Service:            service,
		TargetLanguage:     DefaultTargetLanguage,
		SourceLanguage:     DefaultSourceLanguage,
		ConcurrentRequests: DefaultConcurrentRequests,
		RequestDelay:       DefaultRequestDelay,
		MaxRetries:         DefaultMaxRetries,
		RetryDelay:         DefaultRetryDelay,
	}
}

func (c Config) withDefaults() Config {
	if c.TargetLanguage == "" {
		c.TargetLanguage = DefaultTargetLanguage
	}
	if c.SourceLanguage == "" {
		c.SourceLanguage = DefaultSourceLanguage
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.RetryDelay < 0 {
		c.RetryDelay = 0
	}
	if c.RequestDelay < 0 {
		c.RequestDelay = 0
	}
	return c
}
