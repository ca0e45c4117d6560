package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/novelpipe/core/translate"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const emptyYAML = "general: {}\n"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeFile(t, "config.yaml", emptyYAML), nil)
	require.NoError(t, err)

	assert.Equal(t, 1.0, cfg.General.Delay)
	assert.Equal(t, time.Second, cfg.FetchDelay())
	assert.False(t, cfg.Translation.Enabled)
	assert.Equal(t, "google", cfg.Translation.Service)
	assert.Equal(t, "en", cfg.Translation.TargetLanguage)
	assert.True(t, cfg.Translation.TranslateTitle)
	assert.True(t, cfg.Translation.TranslateContent)
	assert.Equal(t, 3, cfg.Translation.ConcurrentRequests)
	assert.Equal(t, 0.1, cfg.Translation.RequestDelay)
	assert.Equal(t, 3, cfg.Translation.MaxRetries)
	assert.Equal(t, CacheMemory, cfg.Cache.Backend)
	assert.Equal(t, 720*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	path := writeFile(t, "config.yaml", `
general:
  delay: 2.5
translation:
  enabled: true
  service: deepl
  api_key: file-key
  concurrent_requests: 5
cache:
  backend: redis
  ttl: 1h
  redis:
    addr: cache:6379
`)
	t.Setenv("NOVELPIPE_TRANSLATION_API_KEY", "env-key")
	t.Setenv("NOVELPIPE_TRANSLATION_TARGET_LANGUAGE", "fr")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("concurrent-requests", 3, "")
	flags.Bool("translate-title", true, "")
	flags.String("translator", "google", "")
	require.NoError(t, flags.Parse([]string{"--concurrent-requests=8", "--translate-title=false"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, 2.5, cfg.General.Delay)
	assert.True(t, cfg.Translation.Enabled)
	// An unset flag does not override the file.
	assert.Equal(t, "deepl", cfg.Translation.Service)
	assert.Equal(t, "env-key", cfg.Translation.APIKey)
	assert.Equal(t, "fr", cfg.Translation.TargetLanguage)
	assert.Equal(t, 8, cfg.Translation.ConcurrentRequests)
	assert.False(t, cfg.Translation.TranslateTitle)
	assert.Equal(t, CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "cache:6379", cfg.Cache.Redis.Addr)
}

func TestLoadJSONFile(t *testing.T) {
	cfg, err := Load(writeFile(t, "config.json", `{"translation": {"service": "none", "max_retries": 1}}`), nil)
	require.NoError(t, err)
	assert.Equal(t, "none", cfg.Translation.Service)
	assert.Equal(t, 1, cfg.Translation.MaxRetries)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	assert.Error(t, err)
}

func TestLoadRejectsUnknownCache(t *testing.T) {
	_, err := Load(writeFile(t, "config.yaml", "cache:\n  backend: disk\n"), nil)
	assert.ErrorContains(t, err, "cache backend")
}

func TestValidateClamps(t *testing.T) {
	cfg := Config{
		General: GeneralConfig{Delay: -1},
		Translation: TranslationConfig{
			Service:            " DeepL ",
			ConcurrentRequests: 0,
			MaxRetries:         -2,
			RequestDelay:       -0.5,
		},
		Cache: CacheConfig{Backend: CacheNone},
		Log:   LogConfig{Format: "json"},
	}
	require.NoError(t, cfg.Validate())
	assert.Zero(t, cfg.General.Delay)
	assert.Equal(t, 1, cfg.Translation.ConcurrentRequests)
	assert.Zero(t, cfg.Translation.MaxRetries)
	assert.Zero(t, cfg.Translation.RequestDelay)
	assert.Equal(t, "deepl", cfg.Translation.Service)

	cfg.Log.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestTranslateConfig(t *testing.T) {
	cfg := Config{Translation: TranslationConfig{
		Enabled:            true,
		Service:            "mymemory",
		TargetLanguage:     "de",
		ConcurrentRequests: 2,
		RequestDelay:       0.25,
		MaxRetries:         1,
		RetryDelay:         5,
	}}
	tc := cfg.TranslateConfig()
	assert.Equal(t, translate.ServiceMyMemory, tc.Service)
	assert.Equal(t, "de", tc.TargetLanguage)
	assert.Equal(t, 250*time.Millisecond, tc.RequestDelay)
	assert.Equal(t, 5*time.Second, tc.RetryDelay)

	cfg.Translation.Enabled = false
	assert.Equal(t, translate.ServiceNone, cfg.TranslateConfig().Service)
}

func TestMasked(t *testing.T) {
	cfg := Config{}
	cfg.Translation.APIKey = "secret-key-1234"
	cfg.Cache.Redis.Password = "pw"

	masked := cfg.Masked()
	assert.Equal(t, "***********1234", masked.Translation.APIKey)
	assert.Equal(t, "**", masked.Cache.Redis.Password)
	assert.Equal(t, "secret-key-1234", cfg.Translation.APIKey)
}
