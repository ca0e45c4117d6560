package extract

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/novelpipe/core"
)

var hamelnChapterNum = regexp.MustCompile(`(\d+)\.html$`)

// Hameln extracts syosetu.org pages. Its chapter list is grouped into arcs:
// an arc header row labels every chapter row after it until the next header.
type Hameln struct {
	kit
}

var _ core.Extractor = (*Hameln)(nil)

func (e *Hameln) ParseNovelInfo(ctx context.Context, doc *goquery.Document, url string) core.NovelInfo {
	root := doc.Selection
	l := hamelnLayout
	info := core.NovelInfo{
		Title:       textOr(root, l.title, core.DefaultTitle),
		Author:      textOr(root, l.author, core.DefaultAuthor),
		Description: description(root, l.description, e.normalizer),
		URL:         url,
	}
	if tags := texts(root, l.tags); len(tags) > 0 {
		info.Metadata.SetList("tags", tags)
	}
	e.translation.NovelInfo(ctx, &info)
	return info
}

func (e *Hameln) ParseChapterList(ctx context.Context, doc *goquery.Document, _, _ string) []core.ChapterRef {
	l := hamelnLayout
	var (
		chapters []core.ChapterRef
		arc      string
	)
	l.tables.all(doc.Selection).Each(func(_ int, table *goquery.Selection) {
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			if header := l.arcHeader.first(row); header != nil {
				if label := strings.TrimSpace(header.Text()); label != "" {
					arc = label
				}
				return
			}
			if !row.IsMatcher(l.chapterRows[0]) {
				return
			}
			link := l.link.first(row)
			if link == nil {
				return
			}

			index := len(chapters) + 1
			ref := core.ChapterRef{
				Index:      index,
				Title:      strings.TrimSpace(link.Text()),
				ChapterNum: strconv.Itoa(index),
				Arc:        arc,
			}
			if href, ok := link.Attr("href"); ok {
				if m := hamelnChapterNum.FindStringSubmatch(href); m != nil {
					ref.ChapterNum = m[1]
				}
			}
			if t := l.date.first(row); t != nil {
				ref.PublishDate, _ = t.Attr("datetime")
			}
			chapters = append(chapters, ref)
		})
	})

	e.translation.ChapterTitles(ctx, chapters)
	return chapters
}

func (e *Hameln) ParseChapterContent(ctx context.Context, doc *goquery.Document, url, titleHint string) core.ChapterContent {
	return e.chapter(ctx, doc.Selection, url, titleHint, hamelnLayout.chapterTitle, hamelnLayout.body)
}
