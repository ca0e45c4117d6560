package extract

import (
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/novelpipe/core"
	"github.com/gaurav-prasanna/novelpipe/core/chunk"
	"github.com/gaurav-prasanna/novelpipe/core/normalize"
	"github.com/gaurav-prasanna/novelpipe/logging"
)

// kit holds the collaborators every extractor composes.
type kit struct {
	translation *Translation
	chunker     *chunk.Chunker
	normalizer  *normalize.TextNormalizer
	logger      *slog.Logger
}

// baseInfo reads title, author and description with literal defaults.
func (k kit) baseInfo(root *goquery.Selection, url string, l syosetuLayout) core.NovelInfo {
	info := core.NovelInfo{
		Title:       textOr(root, l.title, core.DefaultTitle),
		Author:      core.DefaultAuthor,
		Description: description(root, l.description, k.normalizer),
		URL:         url,
	}
	if a := l.author.first(root); a != nil {
		info.Author = authorName(a.Text())
	}
	return info
}

// keywords stores the keyword tags of an ncode-family index page.
func keywords(root *goquery.Selection, l syosetuLayout, m *core.Metadata) {
	if kw := texts(root, l.keywords); len(kw) > 0 {
		m.SetList("keywords", kw)
	}
}

// chapterRefs walks the chapter rows of an ncode-family index page. A row
// counts when it holds a link (or is one); with requireHref the link must
// carry an href.
func (k kit) chapterRefs(root *goquery.Selection, l syosetuLayout, baseURL string, requireHref bool) []core.ChapterRef {
	var chapters []core.ChapterRef
	l.chapterRows.all(root).Each(func(_ int, row *goquery.Selection) {
		link := l.chapterLink.first(row)
		if link == nil {
			if _, ok := row.Attr("href"); !ok {
				return
			}
			link = row
		}
		href, hasHref := link.Attr("href")
		if requireHref && strings.TrimSpace(href) == "" {
			return
		}

		index := len(chapters) + 1
		ref := core.ChapterRef{
			Index:      index,
			Title:      strings.TrimSpace(link.Text()),
			ChapterNum: chapterNumFromHref(href, index),
		}
		if hasHref {
			ref.URL = resolveHref(href, baseURL)
		}
		chapters = append(chapters, ref)
	})
	return chapters
}

// chapter reads one chapter page. A non-blank hint replaces the on-page title.
func (k kit) chapter(ctx context.Context, root *goquery.Selection, url, hint string, titles, body selectors) core.ChapterContent {
	hint = strings.TrimSpace(hint)
	c := core.ChapterContent{Title: hint, URL: url}
	if hint == "" {
		c.Title = textOr(root, titles, core.DefaultChapterTitle)
	}
	container := body.first(root)
	if container == nil {
		logging.FromContextOr(ctx, k.logger).Debug("chapter body not found", "url", url)
	}
	c.Content, c.Chunks = chapterText(container, k.chunker)
	k.translation.Chapter(ctx, &c, hint != "", chunk.Join)
	return c
}
