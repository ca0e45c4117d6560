package extract

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gaurav-prasanna/novelpipe/core"
	"github.com/gaurav-prasanna/novelpipe/logging"
)

// paragraphMarker stands in for blank-line separators while a text is with
// the translation service, which would otherwise collapse them.
const paragraphMarker = " PARAGRAPH_BREAK "

// TranslationOptions selects which extracted fields are translated.
type TranslationOptions struct {
	Enabled        bool
	TargetLanguage string
	// TranslateTitle covers titles, author, metadata and arc labels.
	TranslateTitle bool
	// TranslateContent covers the description and chapter bodies.
	TranslateContent bool
}

// Translation is the translation fan-out shared by every extractor. All
// texts of one extraction call go out as a single batch and come back in
// input order.
type Translation struct {
	tr     core.Translator
	opts   TranslationOptions
	logger *slog.Logger
}

// NewTranslation wraps tr. A nil tr or disabled options yield a Translation
// that returns every text unchanged.
func NewTranslation(tr core.Translator, opts TranslationOptions, logger *slog.Logger) *Translation {
	if logger == nil {
		logger = slog.Default()
	}
	if !opts.Enabled || tr == nil {
		opts.Enabled = false
		tr = nil
	}
	return &Translation{tr: tr, opts: opts, logger: logger}
}

func (t *Translation) titles() bool  { return t.opts.Enabled && t.opts.TranslateTitle }
func (t *Translation) content() bool { return t.opts.Enabled && t.opts.TranslateContent }

// batch translates texts with paragraph breaks protected. A translator that
// breaks the length contract is ignored.
func (t *Translation) batch(ctx context.Context, texts []string) []string {
	if t.tr == nil || len(texts) == 0 {
		return texts
	}
	protected := make([]string, len(texts))
	for i, s := range texts {
		protected[i] = strings.ReplaceAll(s, "\n\n", paragraphMarker)
	}

	out := t.tr.BatchTranslate(ctx, protected, t.opts.TargetLanguage)
	if len(out) != len(texts) {
		logging.FromContextOr(ctx, t.logger).Warn("translator returned a mismatched batch, keeping originals",
			"want", len(texts), "got", len(out))
		return texts
	}
	for i, s := range out {
		out[i] = restoreParagraphs(s)
	}
	return out
}

// restoreParagraphs undoes the marker substitution. Services sometimes trim
// the spaces around the marker, so the bare token is restored as well.
func restoreParagraphs(s string) string {
	s = strings.ReplaceAll(s, paragraphMarker, "\n\n")
	return strings.ReplaceAll(s, strings.TrimSpace(paragraphMarker), "\n\n")
}

// fields collects string targets for one batch.
type fields struct {
	texts []string
	sets  []func(string)
	after []func()
}

func (f *fields) add(text string, set func(string)) {
	f.texts = append(f.texts, text)
	f.sets = append(f.sets, set)
}

func (t *Translation) apply(ctx context.Context, f *fields) {
	if len(f.texts) == 0 {
		return
	}
	for i, s := range t.batch(ctx, f.texts) {
		f.sets[i](s)
	}
	for _, fn := range f.after {
		fn()
	}
}

// untranslatedKeys hold machine values rather than prose.
var untranslatedKeys = map[string]bool{"age_restricted": true}

// NovelInfo translates the user-visible fields of info in one batch.
func (t *Translation) NovelInfo(ctx context.Context, info *core.NovelInfo) {
	var f fields
	if t.titles() {
		f.add(info.Title, func(s string) { info.Title = s })
		f.add(info.Author, func(s string) { info.Author = s })
	}
	if t.content() {
		f.add(info.Description, func(s string) { info.Description = s })
	}
	if t.titles() {
		for _, e := range info.Metadata.Entries() {
			if untranslatedKeys[e.Key] {
				continue
			}
			key := e.Key
			if !e.IsList {
				f.add(e.Value, func(s string) { info.Metadata.Set(key, s) })
				continue
			}
			values := make([]string, len(e.Values))
			for i, v := range e.Values {
				f.add(v, func(s string) { values[i] = s })
			}
			f.after = append(f.after, func() { info.Metadata.SetList(key, values) })
		}
	}
	t.apply(ctx, &f)
}

// ChapterTitles translates every chapter title in one batch and every
// distinct arc label once.
func (t *Translation) ChapterTitles(ctx context.Context, chapters []core.ChapterRef) {
	if !t.titles() || len(chapters) == 0 {
		return
	}

	var arcs []string
	seen := make(map[string]bool)
	for _, ch := range chapters {
		if ch.Arc != "" && !seen[ch.Arc] {
			seen[ch.Arc] = true
			arcs = append(arcs, ch.Arc)
		}
	}
	if len(arcs) > 0 {
		translated := t.batch(ctx, arcs)
		lookup := make(map[string]string, len(arcs))
		for i, arc := range arcs {
			lookup[arc] = translated[i]
		}
		for i := range chapters {
			if v, ok := lookup[chapters[i].Arc]; ok {
				chapters[i].Arc = v
			}
		}
	}

	titles := make([]string, len(chapters))
	for i, ch := range chapters {
		titles[i] = ch.Title
	}
	for i, s := range t.batch(ctx, titles) {
		chapters[i].Title = s
	}
}

// Chapter translates an on-page title (when no hint was given) and the body
// chunks. Each chunk degrades on its own; Content is rebuilt from the chunks.
func (t *Translation) Chapter(ctx context.Context, c *core.ChapterContent, hinted bool, join func([]string) string) {
	if !hinted && t.titles() {
		c.Title = t.batch(ctx, []string{c.Title})[0]
	}
	if !t.content() || len(c.Chunks) == 0 || c.Content == core.DefaultContent {
		return
	}
	c.Chunks = t.batch(ctx, c.Chunks)
	c.Content = join(c.Chunks)
}
