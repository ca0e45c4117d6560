package scrape

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/novelpipe/core"
	"github.com/gaurav-prasanna/novelpipe/core/extract"
)

const hamelnIndex = `<html><body><div id="maind">
<div class="ss"><span itemprop="name">テスト小説</span> <span itemprop="author">作者A</span></div>
<div class="ss">あらすじ</div>
<div class="ss"><table>
  <tr><td colspan="2"><strong>第一章</strong></td></tr>
  <tr class="bgcolor3"><td><a href="./1.html">一話</a></td><td><time datetime="2021-05-01T00:00:00+09:00">2021年05月01日</time></td></tr>
  <tr class="bgcolor2"><td><a href="./2.html">二話</a></td></tr>
  <tr><td colspan="2"><strong>第二章</strong></td></tr>
  <tr class="bgcolor3"><td><a href="./3.html">三話</a></td></tr>
</table></div>
</div></body></html>`

func hamelnChapter(n int) string {
	return fmt.Sprintf(`<html><body><div id="maind">
<div id="honbun"><p id="1">本文%d</p></div>
</div></body></html>`, n)
}

// fakeFetcher serves pages by URL and records every request.
type fakeFetcher struct {
	pages    map[string]string
	requests []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*core.FetchResult, error) {
	f.requests = append(f.requests, url)
	html, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("unexpected status 404 for %s", url)
	}
	return &core.FetchResult{URL: url, StatusCode: 200, HTML: html}, nil
}

func hamelnFixture() *fakeFetcher {
	site := extract.SiteHameln
	pages := map[string]string{site.NovelURL("42"): hamelnIndex}
	for i := 1; i <= 3; i++ {
		pages[site.ChapterURL("42", fmt.Sprint(i))] = hamelnChapter(i)
	}
	return &fakeFetcher{pages: pages}
}

func newScraper(t *testing.T, f core.Fetcher) *Scraper {
	t.Helper()
	e, err := extract.New(extract.SiteHameln, extract.Options{})
	require.NoError(t, err)
	return New(extract.SiteHameln, f, e, nil)
}

func TestExtractionLogsCarrySiteAndURL(t *testing.T) {
	url := extract.SiteHameln.ChapterURL("42", "9")
	f := &fakeFetcher{pages: map[string]string{url: `<html><body><div id="maind"></div></body></html>`}}
	e, err := extract.New(extract.SiteHameln, extract.Options{})
	require.NoError(t, err)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := New(extract.SiteHameln, f, e, logger)

	_, err = s.ChapterContent(context.Background(), url, "")
	require.NoError(t, err)

	var line string
	for _, l := range bytes.Split(logs.Bytes(), []byte("\n")) {
		if bytes.Contains(l, []byte("chapter body not found")) {
			line = string(l)
		}
	}
	require.NotEmpty(t, line)
	assert.Contains(t, line, "site=hameln")
	assert.Contains(t, line, "url="+url)
}

func TestIndexFetchesOnce(t *testing.T) {
	f := hamelnFixture()
	s := newScraper(t, f)

	info, chapters, err := s.Index(context.Background(), "42")
	require.NoError(t, err)
	assert.Len(t, f.requests, 1)

	assert.Equal(t, "テスト小説", info.Title)
	assert.Equal(t, "https://syosetu.org/novel/42/", info.URL)
	require.Len(t, chapters, 3)
	for i, ch := range chapters {
		assert.Equal(t, i+1, ch.Index)
		assert.Equal(t, fmt.Sprintf("https://syosetu.org/novel/42/%d.html", i+1), ch.URL)
	}
	assert.Equal(t, "第二章", chapters[2].Arc)
}

func TestFillURLsFallsBackToIndex(t *testing.T) {
	s := New(extract.SiteNcode, &fakeFetcher{}, nil, nil)
	chapters := []core.ChapterRef{
		{Index: 1, ChapterNum: "7"},
		{Index: 2},
		{Index: 3, URL: "https://ncode.syosetu.com/n1/keep/"},
	}
	s.FillURLs(chapters, "n1")
	assert.Equal(t, "https://ncode.syosetu.com/n1/7", chapters[0].URL)
	assert.Equal(t, "https://ncode.syosetu.com/n1/2", chapters[1].URL)
	assert.Equal(t, "https://ncode.syosetu.com/n1/keep/", chapters[2].URL)
}

func TestFetchFailureIsTaggedByStage(t *testing.T) {
	s := newScraper(t, &fakeFetcher{pages: map[string]string{}})

	_, err := s.NovelInfo(context.Background(), "42")
	var fetchErr *core.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, core.StageNovelInfo, fetchErr.Stage)
	assert.True(t, errors.Is(err, core.ErrFetch))

	_, err = s.ChapterList(context.Background(), "42")
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, core.StageChapterList, fetchErr.Stage)

	_, err = s.ChapterContent(context.Background(), "https://syosetu.org/novel/42/9.html", "")
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, core.StageChapter, fetchErr.Stage)
	assert.Equal(t, "https://syosetu.org/novel/42/9.html", fetchErr.URL)
}

func TestDownloadRangeAndProgress(t *testing.T) {
	f := hamelnFixture()
	s := newScraper(t, f)
	info, chapters, err := s.Index(context.Background(), "42")
	require.NoError(t, err)

	var reports []Progress
	doc, err := s.Download(context.Background(), info, chapters, &core.ChapterRange{Start: 2, End: 3}, func(p Progress) {
		reports = append(reports, p)
	})
	require.NoError(t, err)

	require.Len(t, doc.Chapters, 2)
	assert.Equal(t, "テスト小説", doc.Info.Title)
	assert.Equal(t, 2, doc.Chapters[0].Index)
	assert.Equal(t, "二話", doc.Chapters[0].Title)
	assert.Equal(t, "本文2", doc.Chapters[0].Content)
	assert.Equal(t, "第一章", doc.Chapters[0].Arc)
	assert.Equal(t, 3, doc.Chapters[1].Index)
	assert.Equal(t, "第二章", doc.Chapters[1].Arc)

	require.Len(t, reports, 2)
	assert.Equal(t, 1, reports[0].Done)
	assert.Equal(t, 2, reports[0].Total)
	assert.Equal(t, 2, reports[1].Done)
	assert.Zero(t, reports[1].ETA)
}

func TestDownloadKeepsPublishDate(t *testing.T) {
	f := hamelnFixture()
	s := newScraper(t, f)
	info, chapters, err := s.Index(context.Background(), "42")
	require.NoError(t, err)

	doc, err := s.Download(context.Background(), info, chapters, &core.ChapterRange{Start: 1, End: 1}, nil)
	require.NoError(t, err)
	require.Len(t, doc.Chapters, 1)
	assert.Equal(t, "2021-05-01T00:00:00+09:00", doc.Chapters[0].PublishDate)
}

func TestDownloadAbortsOnFailure(t *testing.T) {
	f := hamelnFixture()
	delete(f.pages, extract.SiteHameln.ChapterURL("42", "2"))
	s := newScraper(t, f)
	info, chapters, err := s.Index(context.Background(), "42")
	require.NoError(t, err)

	doc, err := s.Download(context.Background(), info, chapters, nil, nil)
	assert.Nil(t, doc)
	var fetchErr *core.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, core.StageChapter, fetchErr.Stage)
	// Chapter 3 is never requested once chapter 2 fails.
	assert.NotContains(t, f.requests, extract.SiteHameln.ChapterURL("42", "3"))
}

func TestDownloadStopsWhenCancelled(t *testing.T) {
	s := newScraper(t, hamelnFixture())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Download(ctx, core.NovelInfo{}, []core.ChapterRef{{Index: 1, URL: "x"}}, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDownloadETAUsesFakeClock(t *testing.T) {
	f := hamelnFixture()
	s := newScraper(t, f)
	info, chapters, err := s.Index(context.Background(), "42")
	require.NoError(t, err)

	var clock time.Time
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	var first Progress
	_, err = s.Download(context.Background(), info, chapters, nil, func(p Progress) {
		if p.Done == 1 {
			first = p
		}
	})
	require.NoError(t, err)
	// Each chapter spans exactly one tick of the fake clock.
	assert.Equal(t, time.Second, first.Average)
	assert.Equal(t, 2*time.Second, first.ETA)
}
