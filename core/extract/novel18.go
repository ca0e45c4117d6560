package extract

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/novelpipe/core"
)

// Novel18 extracts novel18.syosetu.com pages. The markup is the ncode markup
// plus an age notice and without a genre.
type Novel18 struct {
	kit
}

var _ core.Extractor = (*Novel18)(nil)

func (e *Novel18) ParseNovelInfo(ctx context.Context, doc *goquery.Document, url string) core.NovelInfo {
	root := doc.Selection
	info := e.baseInfo(root, url, desktopLayout)
	if notice := desktopLayout.ageNotice.first(root); notice != nil && strings.Contains(notice.Text(), "18禁") {
		info.Metadata.Set("age_restricted", "true")
	}
	keywords(root, desktopLayout, &info.Metadata)
	e.translation.NovelInfo(ctx, &info)
	return info
}

func (e *Novel18) ParseChapterList(ctx context.Context, doc *goquery.Document, _, baseURL string) []core.ChapterRef {
	chapters := e.chapterRefs(doc.Selection, desktopLayout, baseURL, false)
	e.translation.ChapterTitles(ctx, chapters)
	return chapters
}

func (e *Novel18) ParseChapterContent(ctx context.Context, doc *goquery.Document, url, titleHint string) core.ChapterContent {
	return e.chapter(ctx, doc.Selection, url, titleHint, desktopLayout.chapterTitle, desktopLayout.body)
}
