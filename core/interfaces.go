// Package core defines the pipeline interfaces for novelpipe.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Extractor converts a parsed page of one site variant into Document Model records.
// Extraction is fail-soft: missing markup yields literal defaults, never an error.
type Extractor interface {
	// ParseNovelInfo reads the novel index page. url is stored verbatim.
	ParseNovelInfo(ctx context.Context, doc *goquery.Document, url string) NovelInfo
	// ParseChapterList returns chapters in presentation order with Index 1..N.
	ParseChapterList(ctx context.Context, doc *goquery.Document, novelID, baseURL string) []ChapterRef
	// ParseChapterContent reads one chapter page. A non-empty titleHint is used
	// as the chapter title instead of the on-page title.
	ParseChapterContent(ctx context.Context, doc *goquery.Document, url, titleHint string) ChapterContent
}

// Translator is a black-box text transform. It never fails: on any error the
// original text is returned in place of the translation.
type Translator interface {
	TranslateText(ctx context.Context, text, targetLang string) string
	// BatchTranslate returns a slice of the same length and order as texts.
	BatchTranslate(ctx context.Context, texts []string, targetLang string) []string
}

// RenderOptions controls what a Renderer includes in the exported file.
type RenderOptions struct {
	IncludeInfo bool
	// Range limits exported chapters by Index. Nil exports everything.
	Range *ChapterRange
}

// Renderer converts a Document into a final output format.
type Renderer interface {
	Render(doc *Document, opts RenderOptions) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".epub", ".pdf").
	Extension() string
}
