package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteURLs(t *testing.T) {
	tests := []struct {
		site    Site
		novel   string
		chapter string
	}{
		{SiteNcode, "https://ncode.syosetu.com/n1234ab/", "https://ncode.syosetu.com/n1234ab/5"},
		{SiteNovel18, "https://novel18.syosetu.com/n1234ab/", "https://novel18.syosetu.com/n1234ab/5"},
		{SiteMobile, "https://mnlt.syosetu.com/n1234ab/", "https://mnlt.syosetu.com/n1234ab/5"},
		{SiteYomou, "https://yomou.syosetu.com/n1234ab/", "https://yomou.syosetu.com/n1234ab/5"},
		{SiteHameln, "https://syosetu.org/novel/n1234ab/", "https://syosetu.org/novel/n1234ab/5.html"},
	}
	for _, tt := range tests {
		t.Run(string(tt.site), func(t *testing.T) {
			assert.Equal(t, tt.novel, tt.site.NovelURL("n1234ab"))
			assert.Equal(t, tt.chapter, tt.site.ChapterURL("n1234ab", "5"))
		})
	}
}

func TestParseSite(t *testing.T) {
	s, err := ParseSite(" Hameln ")
	require.NoError(t, err)
	assert.Equal(t, SiteHameln, s)

	_, err = ParseSite("kakuyomu")
	assert.ErrorContains(t, err, "unknown site")
}

func TestDetectSite(t *testing.T) {
	tests := []struct {
		url  string
		site Site
		id   string
	}{
		{"https://ncode.syosetu.com/n1234ab/", SiteNcode, "n1234ab"},
		{"https://ncode.syosetu.com/n1234ab/3/", SiteNcode, "n1234ab"},
		{"https://novel18.syosetu.com/n9999zz", SiteNovel18, "n9999zz"},
		{"https://syosetu.org/novel/123456/", SiteHameln, "123456"},
		{"https://syosetu.org/novel/123456/7.html", SiteHameln, "123456"},
	}
	for _, tt := range tests {
		site, id, err := DetectSite(tt.url)
		require.NoError(t, err, tt.url)
		assert.Equal(t, tt.site, site, tt.url)
		assert.Equal(t, tt.id, id, tt.url)
	}

	for _, bad := range []string{"https://example.com/n1/", "https://ncode.syosetu.com/", "https://syosetu.org/user/1/"} {
		_, _, err := DetectSite(bad)
		assert.Error(t, err, bad)
	}
}

func TestSiteCookie(t *testing.T) {
	c := SiteNovel18.Cookie()
	require.NotNil(t, c)
	assert.Equal(t, "over18", c.Name)
	assert.Equal(t, "yes", c.Value)

	c.Value = "mutated"
	assert.Equal(t, "yes", SiteNovel18.Cookie().Value)

	assert.Equal(t, "off", SiteHameln.Cookie().Value)
	assert.Nil(t, SiteNcode.Cookie())
}

func TestReferer(t *testing.T) {
	assert.Equal(t, "https://syosetu.org/novel/42/", SiteHameln.Referer("https://syosetu.org/novel/42/3.html"))
	assert.Empty(t, SiteHameln.Referer("https://syosetu.org/novel/42/"))
	assert.Empty(t, SiteNcode.Referer("https://ncode.syosetu.com/n1/1"))
}

func TestResolveHref(t *testing.T) {
	base := "https://ncode.syosetu.com"
	assert.Equal(t, "https://ncode.syosetu.com/n1/2/", resolveHref("/n1/2/", base))
	assert.Equal(t, "https://ncode.syosetu.com/n1/2/", resolveHref("/n1/2/", base+"/"))
	assert.Equal(t, "https://other.example/n1/2/", resolveHref("https://other.example/n1/2/#top", base))
	assert.Empty(t, resolveHref("./2.html", base))
	assert.Empty(t, resolveHref("javascript:void(0)", base))
	assert.Empty(t, resolveHref("", base))
}

func TestChapterNumFromHref(t *testing.T) {
	assert.Equal(t, "7", chapterNumFromHref("/n1234ab/7/", 1))
	assert.Equal(t, "7", chapterNumFromHref("/n1234ab/7", 1))
	assert.Equal(t, "4", chapterNumFromHref("", 4))
}
