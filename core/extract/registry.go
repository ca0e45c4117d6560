// Package extract implements one core.Extractor per supported site.
//
// Extraction is fail-soft: a missing element yields a literal default, never
// an error. Every extractor composes the same kit (chunker, description
// normalizer, translation fan-out) instead of sharing behaviour through
// embedding of a base type.
package extract

import (
	"fmt"
	"log/slog"

	"github.com/gaurav-prasanna/novelpipe/core"
	"github.com/gaurav-prasanna/novelpipe/core/chunk"
	"github.com/gaurav-prasanna/novelpipe/core/normalize"
)

// Options configures the extractors built by New.
type Options struct {
	// Translator is used when Translation.Enabled is set. Nil disables translation.
	Translator  core.Translator
	Translation TranslationOptions
	// ChunkLimit bounds chapter chunks in characters. Zero means chunk.DefaultLimit.
	ChunkLimit int
	Logger     *slog.Logger
}

var constructors = map[Site]func(kit) core.Extractor{
	SiteNcode:   func(k kit) core.Extractor { return &Ncode{k} },
	SiteNovel18: func(k kit) core.Extractor { return &Novel18{k} },
	SiteMobile:  func(k kit) core.Extractor { return &Mobile{k} },
	SiteYomou:   func(k kit) core.Extractor { return &Yomou{k} },
	SiteHameln:  func(k kit) core.Extractor { return &Hameln{k} },
}

// New returns the extractor for site.
func New(site Site, opts Options) (core.Extractor, error) {
	ctor, ok := constructors[site]
	if !ok {
		return nil, fmt.Errorf("unknown site %q (supported: %s)", site, siteNames())
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("site", string(site))
	return ctor(kit{
		translation: NewTranslation(opts.Translator, opts.Translation, logger),
		chunker:     chunk.New(opts.ChunkLimit),
		normalizer:  normalize.New(),
		logger:      logger,
	}), nil
}
