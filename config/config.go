// Package config loads novelpipe configuration.
// Values are layered: defaults -> optional config file -> NOVELPIPE_* env -> flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/novelpipe/core/fetch"
	"github.com/gaurav-prasanna/novelpipe/core/translate"
)

// EnvPrefix prefixes every environment variable, e.g. NOVELPIPE_TRANSLATION_API_KEY.
const EnvPrefix = "NOVELPIPE"

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config is the effective configuration.
type Config struct {
	General     GeneralConfig     `mapstructure:"general" json:"general"`
	Translation TranslationConfig `mapstructure:"translation" json:"translation"`
	Cache       CacheConfig       `mapstructure:"cache" json:"cache"`
	Export      ExportConfig      `mapstructure:"export" json:"export"`
	Log         LogConfig         `mapstructure:"log" json:"log"`
	Metrics     MetricsConfig     `mapstructure:"metrics" json:"metrics"`
}

// GeneralConfig controls fetching.
type GeneralConfig struct {
	// Delay between requests, in seconds.
	Delay     float64 `mapstructure:"delay" json:"delay"`
	UserAgent string  `mapstructure:"user_agent" json:"user_agent"`
}

// TranslationConfig selects and tunes the translation provider.
type TranslationConfig struct {
	Enabled            bool    `mapstructure:"enabled" json:"enabled"`
	Service            string  `mapstructure:"service" json:"service"`
	APIKey             string  `mapstructure:"api_key" json:"api_key"`
	TargetLanguage     string  `mapstructure:"target_language" json:"target_language"`
	SourceLanguage     string  `mapstructure:"source_language" json:"source_language"`
	TranslateTitle     bool    `mapstructure:"translate_title" json:"translate_title"`
	TranslateContent   bool    `mapstructure:"translate_content" json:"translate_content"`
	ConcurrentRequests int     `mapstructure:"concurrent_requests" json:"concurrent_requests"`
	RequestDelay       float64 `mapstructure:"request_delay" json:"request_delay"`
	MaxRetries         int     `mapstructure:"max_retries" json:"max_retries"`
	RetryDelay         float64 `mapstructure:"retry_delay" json:"retry_delay"`
	Model              string  `mapstructure:"model" json:"model,omitempty"`
	Endpoint           string  `mapstructure:"endpoint" json:"endpoint,omitempty"`
}

// CacheConfig selects the translation cache.
type CacheConfig struct {
	Backend string        `mapstructure:"backend" json:"backend"`
	TTL     time.Duration `mapstructure:"ttl" json:"ttl"`
	Redis   RedisConfig   `mapstructure:"redis" json:"redis"`
}

// RedisConfig locates the redis cache.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" json:"addr"`
	Password string `mapstructure:"password" json:"password,omitempty"`
	DB       int    `mapstructure:"db" json:"db"`
}

// ExportConfig controls where and how exports are written.
type ExportConfig struct {
	OutputDir string `mapstructure:"output_dir" json:"output_dir"`
	FontPath  string `mapstructure:"font_path" json:"font_path,omitempty"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string `mapstructure:"level" json:"level"`
	Format string `mapstructure:"format" json:"format"`
}

// MetricsConfig exposes Prometheus metrics when Addr is set.
type MetricsConfig struct {
	Addr string `mapstructure:"addr" json:"addr,omitempty"`
}

// flagKeys maps CLI flag names to configuration keys.
var flagKeys = map[string]string{
	"delay":               "general.delay",
	"user-agent":          "general.user_agent",
	"translation":         "translation.enabled",
	"translator":          "translation.service",
	"api-key":             "translation.api_key",
	"target-lang":         "translation.target_language",
	"source-lang":         "translation.source_language",
	"translate-title":     "translation.translate_title",
	"translate-content":   "translation.translate_content",
	"concurrent-requests": "translation.concurrent_requests",
	"request-delay":       "translation.request_delay",
	"max-retries":         "translation.max_retries",
	"cache":               "cache.backend",
	"output-dir":          "export.output_dir",
	"font":                "export.font_path",
	"log-level":           "log.level",
	"log-format":          "log.format",
	"metrics-addr":        "metrics.addr",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("general.delay", fetch.DefaultDelay.Seconds())
	v.SetDefault("general.user_agent", fetch.DefaultUserAgent)

	v.SetDefault("translation.enabled", false)
	v.SetDefault("translation.service", string(translate.DefaultService))
	v.SetDefault("translation.api_key", "")
	v.SetDefault("translation.target_language", translate.DefaultTargetLanguage)
	v.SetDefault("translation.source_language", translate.DefaultSourceLanguage)
	v.SetDefault("translation.translate_title", true)
	v.SetDefault("translation.translate_content", true)
	v.SetDefault("translation.concurrent_requests", translate.DefaultConcurrentRequests)
	v.SetDefault("translation.request_delay", translate.DefaultRequestDelay.Seconds())
	v.SetDefault("translation.max_retries", translate.DefaultMaxRetries)
	v.SetDefault("translation.retry_delay", translate.DefaultRetryDelay.Seconds())
	v.SetDefault("translation.model", "")
	v.SetDefault("translation.endpoint", "")

	v.SetDefault("cache.backend", CacheMemory)
	v.SetDefault("cache.ttl", "720h")
	v.SetDefault("cache.redis.addr", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)

	v.SetDefault("export.output_dir", "downloads")
	v.SetDefault("export.font_path", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("metrics.addr", "")
}

// Load builds the configuration. path names an explicit YAML or JSON file,
// which must exist; an empty path looks for config.{yaml,json} under
// $HOME/.novelpipe and the working directory and ignores its absence.
// flags may be nil; only flags set on the command line override.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".novelpipe"))
		}
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate clamps numeric settings into range and rejects unknown choices.
func (c *Config) Validate() error {
	if c.General.Delay < 0 {
		c.General.Delay = 0
	}
	t := &c.Translation
	if t.ConcurrentRequests < 1 {
		t.ConcurrentRequests = 1
	}
	if t.MaxRetries < 0 {
		t.MaxRetries = 0
	}
	if t.RequestDelay < 0 {
		t.RequestDelay = 0
	}
	if t.RetryDelay < 0 {
		t.RetryDelay = 0
	}
	t.Service = strings.ToLower(strings.TrimSpace(t.Service))

	switch c.Cache.Backend {
	case CacheNone, CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("unknown cache backend %q (supported: none, memory, redis)", c.Cache.Backend)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (supported: text, json)", c.Log.Format)
	}
	return nil
}

// FetchDelay returns the politeness delay between requests.
func (c *Config) FetchDelay() time.Duration {
	return seconds(c.General.Delay)
}

// TranslateConfig converts the translation section for translate.New.
// Disabled translation selects the pass-through service.
func (c *Config) TranslateConfig() translate.Config {
	t := c.Translation
	service, ok := translate.ParseService(t.Service)
	if !ok {
		// translate.New falls back to the default service for unknown names.
		service = translate.Service(t.Service)
	}
	if !t.Enabled {
		service = translate.ServiceNone
	}
	return translate.Config{
		Service:            service,
		APIKey:             t.APIKey,
		TargetLanguage:     t.TargetLanguage,
		SourceLanguage:     t.SourceLanguage,
		ConcurrentRequests: t.ConcurrentRequests,
		RequestDelay:       seconds(t.RequestDelay),
		MaxRetries:         t.MaxRetries,
		RetryDelay:         seconds(t.RetryDelay),
		Model:              t.Model,
		Endpoint:           t.Endpoint,
	}
}

// Masked returns a copy safe for printing: secrets keep only their last
// four characters.
func (c Config) Masked() Config {
	c.Translation.APIKey = mask(c.Translation.APIKey)
	c.Cache.Redis.Password = mask(c.Cache.Redis.Password)
	return c
}

func mask(secret string) string {
	r := []rune(secret)
	if len(r) == 0 {
		return ""
	}
	if len(r) <= 4 {
		return strings.Repeat("*", len(r))
	}
	return strings.Repeat("*", len(r)-4) + string(r[len(r)-4:])
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
