package extract

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/novelpipe/core"
)

// Ncode extracts ncode.syosetu.com pages.
type Ncode struct {
	kit
}

var _ core.Extractor = (*Ncode)(nil)

func (e *Ncode) ParseNovelInfo(ctx context.Context, doc *goquery.Document, url string) core.NovelInfo {
	info := e.baseInfo(doc.Selection, url, desktopLayout)
	genreAndKeywords(doc.Selection, &info.Metadata)
	e.translation.NovelInfo(ctx, &info)
	return info
}

func (e *Ncode) ParseChapterList(ctx context.Context, doc *goquery.Document, _, baseURL string) []core.ChapterRef {
	chapters := e.chapterRefs(doc.Selection, desktopLayout, baseURL, false)
	e.translation.ChapterTitles(ctx, chapters)
	return chapters
}

func (e *Ncode) ParseChapterContent(ctx context.Context, doc *goquery.Document, url, titleHint string) core.ChapterContent {
	return e.chapter(ctx, doc.Selection, url, titleHint, desktopLayout.chapterTitle, desktopLayout.body)
}

// Yomou extracts yomou.syosetu.com pages, which share the ncode markup.
type Yomou struct {
	kit
}

var _ core.Extractor = (*Yomou)(nil)

func (e *Yomou) ParseNovelInfo(ctx context.Context, doc *goquery.Document, url string) core.NovelInfo {
	info := e.baseInfo(doc.Selection, url, desktopLayout)
	genreAndKeywords(doc.Selection, &info.Metadata)
	e.translation.NovelInfo(ctx, &info)
	return info
}

func (e *Yomou) ParseChapterList(ctx context.Context, doc *goquery.Document, _, baseURL string) []core.ChapterRef {
	chapters := e.chapterRefs(doc.Selection, desktopLayout, baseURL, false)
	e.translation.ChapterTitles(ctx, chapters)
	return chapters
}

func (e *Yomou) ParseChapterContent(ctx context.Context, doc *goquery.Document, url, titleHint string) core.ChapterContent {
	return e.chapter(ctx, doc.Selection, url, titleHint, desktopLayout.chapterTitle, desktopLayout.body)
}

func genreAndKeywords(root *goquery.Selection, m *core.Metadata) {
	if genre := textOr(root, desktopLayout.genre, ""); genre != "" {
		m.Set("genre", genre)
	}
	keywords(root, desktopLayout, m)
}
