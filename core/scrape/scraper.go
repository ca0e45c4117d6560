// Package scrape orchestrates one novel: fetch → parse → extract, for the
// novel index page and then for each requested chapter.
//
// Fetch and parse failures are never masked. They surface as
// core.FetchError or core.ParseError tagged with the failing stage.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/novelpipe/core"
	"github.com/gaurav-prasanna/novelpipe/core/extract"
	"github.com/gaurav-prasanna/novelpipe/logging"
)

// Scraper drives a Fetcher and an Extractor for one site. Requests are made
// one at a time.
type Scraper struct {
	site      extract.Site
	fetcher   core.Fetcher
	extractor core.Extractor
	logger    *slog.Logger
	now       func() time.Time
}

// New creates a Scraper.
func New(site extract.Site, fetcher core.Fetcher, extractor core.Extractor, logger *slog.Logger) *Scraper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scraper{
		site:      site,
		fetcher:   fetcher,
		extractor: extractor,
		logger:    logger.With("site", string(site)),
		now:       time.Now,
	}
}

// Site returns the site this scraper serves.
func (s *Scraper) Site() extract.Site { return s.site }

// scoped returns ctx carrying the scraper's logger tagged with url, so
// extraction and translation log against the page being processed.
func (s *Scraper) scoped(ctx context.Context, url string) context.Context {
	return logging.WithLogger(ctx, s.logger.With("url", url))
}

// document fetches url and parses it, tagging failures with stage.
func (s *Scraper) document(ctx context.Context, stage core.Stage, url string) (*goquery.Document, error) {
	logging.FromContextOr(ctx, s.logger).Debug("requesting page", "stage", stage)

	// 1. Fetch
	result, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, &core.FetchError{Stage: stage, URL: url, Err: err}
	}

	// 2. Parse
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(result.HTML))
	if err != nil {
		return nil, &core.ParseError{Stage: stage, URL: url, Err: err}
	}
	return doc, nil
}

// NovelInfo fetches the novel index page and extracts its metadata.
func (s *Scraper) NovelInfo(ctx context.Context, novelID string) (core.NovelInfo, error) {
	url := s.site.NovelURL(novelID)
	ctx = s.scoped(ctx, url)
	doc, err := s.document(ctx, core.StageNovelInfo, url)
	if err != nil {
		return core.NovelInfo{}, err
	}
	return s.extractor.ParseNovelInfo(ctx, doc, url), nil
}

// ChapterList fetches the novel index page and extracts the chapter list.
// Chapters without a URL get one from the site's chapter pattern.
func (s *Scraper) ChapterList(ctx context.Context, novelID string) ([]core.ChapterRef, error) {
	url := s.site.NovelURL(novelID)
	ctx = s.scoped(ctx, url)
	doc, err := s.document(ctx, core.StageChapterList, url)
	if err != nil {
		return nil, err
	}
	return s.chapterList(ctx, doc, novelID), nil
}

// Index extracts novel info and the chapter list from a single fetch of the
// novel index page.
func (s *Scraper) Index(ctx context.Context, novelID string) (core.NovelInfo, []core.ChapterRef, error) {
	url := s.site.NovelURL(novelID)
	ctx = s.scoped(ctx, url)
	doc, err := s.document(ctx, core.StageNovelInfo, url)
	if err != nil {
		return core.NovelInfo{}, nil, err
	}
	info := s.extractor.ParseNovelInfo(ctx, doc, url)
	return info, s.chapterList(ctx, doc, novelID), nil
}

func (s *Scraper) chapterList(ctx context.Context, doc *goquery.Document, novelID string) []core.ChapterRef {
	chapters := s.extractor.ParseChapterList(ctx, doc, novelID, s.site.BaseURL())
	s.FillURLs(chapters, novelID)
	return chapters
}

// FillURLs sets every missing chapter URL from the site pattern, using the
// chapter number or, when that is empty, the index.
func (s *Scraper) FillURLs(chapters []core.ChapterRef, novelID string) {
	for i := range chapters {
		if chapters[i].URL != "" {
			continue
		}
		num := chapters[i].ChapterNum
		if num == "" {
			num = fmt.Sprint(chapters[i].Index)
		}
		chapters[i].URL = s.site.ChapterURL(novelID, num)
	}
}

// ChapterContent fetches and extracts one chapter. titleHint, when set, is
// used as the chapter title.
func (s *Scraper) ChapterContent(ctx context.Context, url, titleHint string) (core.ChapterContent, error) {
	ctx = s.scoped(ctx, url)
	doc, err := s.document(ctx, core.StageChapter, url)
	if err != nil {
		return core.ChapterContent{}, err
	}
	return s.extractor.ParseChapterContent(ctx, doc, url, titleHint), nil
}

// Progress is reported after each downloaded chapter.
type Progress struct {
	Done    int
	Total   int
	Chapter core.ChapterRef
	Elapsed time.Duration
	// Average is the smoothed time per chapter; ETA is Average times the
	// chapters left.
	Average time.Duration
	ETA     time.Duration
}

// Download fetches the content of every chapter in r (all chapters when r is
// nil) in index order. The first fetch or parse failure aborts the download.
func (s *Scraper) Download(ctx context.Context, info core.NovelInfo, chapters []core.ChapterRef, r *core.ChapterRange, progress func(Progress)) (*core.Document, error) {
	selected := Select(chapters, r)
	doc := &core.Document{Info: info, Chapters: make([]core.Chapter, 0, len(selected))}

	var eta Estimator
	started := s.now()
	for i, ref := range selected {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		chapterStart := s.now()

		content, err := s.ChapterContent(ctx, ref.URL, ref.Title)
		if err != nil {
			return nil, err
		}
		doc.Chapters = append(doc.Chapters, core.Chapter{
			Index:          ref.Index,
			Arc:            ref.Arc,
			PublishDate:    ref.PublishDate,
			ChapterContent: content,
		})

		eta.Observe(s.now().Sub(chapterStart))
		if progress != nil {
			left := len(selected) - (i + 1)
			progress(Progress{
				Done:    i + 1,
				Total:   len(selected),
				Chapter: ref,
				Elapsed: s.now().Sub(started),
				Average: eta.Average(),
				ETA:     eta.Remaining(left),
			})
		}
	}

	s.logger.Info("download complete", "chapters", len(doc.Chapters), "elapsed", s.now().Sub(started).Round(time.Millisecond))
	return doc, nil
}
