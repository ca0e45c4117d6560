// Package cmd implements the CLI commands for novelpipe using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// persistent flag values shared by every command.
type rootFlags struct {
	configPath string
	debug      bool
	site       string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:   "novelpipe",
		Short: "Download web novels from syosetu and hameln",
		Long: `novelpipe scrapes novels from the syosetu family of sites (ncode, novel18,
mnlt, yomou) and from hameln, optionally translates them, and exports them
as EPUB, PDF, Markdown or JSON.

A novel is given either as its full URL or as its ID together with --site.

Usage:
  novelpipe info <novel> [flags]
  novelpipe chapter <novel> <n> [flags]
  novelpipe download <novel> [flags]
  novelpipe config`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Config file (YAML or JSON; default $HOME/.novelpipe/config.yaml)")
	pf.BoolVar(&flags.debug, "debug", false, "Enable debug logging")
	pf.StringVar(&flags.site, "site", "ncode", "Site of a bare novel ID: ncode, novel18, mnlt, yomou, hameln")

	// Bound to configuration keys by config.Load; only explicitly set flags override.
	pf.Float64("delay", 1.0, "Delay between requests in seconds")
	pf.String("user-agent", "", "User-Agent header for site requests")
	pf.Bool("translation", false, "Enable translation")
	pf.String("translator", "google", "Translation service: google, deepl, mymemory, libre, microsoft, yandex, papago, chatgpt, none")
	pf.String("api-key", "", "API key for the translation service")
	pf.String("target-lang", "en", "Target language code (e.g. en, fr, es)")
	pf.String("source-lang", "auto", "Source language code")
	pf.Bool("translate-title", true, "Translate titles, authors and metadata")
	pf.Bool("translate-content", true, "Translate descriptions and chapter bodies")
	pf.Int("concurrent-requests", 3, "Number of concurrent translation requests")
	pf.Float64("request-delay", 0.1, "Delay after each translation request in seconds")
	pf.Int("max-retries", 3, "Retries for a failed translation")
	pf.String("cache", "memory", "Translation cache: none, memory, redis")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.String("log-format", "text", "Log format: text, json")
	pf.String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")

	root.AddCommand(
		newInfoCmd(&flags),
		newChapterCmd(&flags),
		newDownloadCmd(&flags),
		newConfigCmd(&flags),
	)
	return root
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
