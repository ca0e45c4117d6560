package extract

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/novelpipe/core"
)

// Mobile extracts mnlt.syosetu.com, the mobile layout. It carries no
// metadata, and chapter links may sit on the row element itself.
type Mobile struct {
	kit
}

var _ core.Extractor = (*Mobile)(nil)

func (e *Mobile) ParseNovelInfo(ctx context.Context, doc *goquery.Document, url string) core.NovelInfo {
	info := e.baseInfo(doc.Selection, url, mobileLayout)
	e.translation.NovelInfo(ctx, &info)
	return info
}

func (e *Mobile) ParseChapterList(ctx context.Context, doc *goquery.Document, _, baseURL string) []core.ChapterRef {
	chapters := e.chapterRefs(doc.Selection, mobileLayout, baseURL, true)
	e.translation.ChapterTitles(ctx, chapters)
	return chapters
}

func (e *Mobile) ParseChapterContent(ctx context.Context, doc *goquery.Document, url, titleHint string) core.ChapterContent {
	return e.chapter(ctx, doc.Selection, url, titleHint, mobileLayout.chapterTitle, mobileLayout.body)
}
