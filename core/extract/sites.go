package extract

import (
	"fmt"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"
)

// Site identifies one supported publishing site.
type Site string

const (
	SiteNcode   Site = "ncode"
	SiteNovel18 Site = "novel18"
	SiteMobile  Site = "mnlt"
	SiteYomou   Site = "yomou"
	SiteHameln  Site = "hameln"
)

// Sites lists every supported site in display order.
var Sites = []Site{SiteNcode, SiteNovel18, SiteMobile, SiteYomou, SiteHameln}

type siteInfo struct {
	host    string
	novel   string // novel URL template: base, id
	chapter string // chapter URL template: base, id, chapter
	cookie  *http.Cookie
}

var siteTable = map[Site]siteInfo{
	SiteNcode:   {host: "ncode.syosetu.com", novel: "%s/%s/", chapter: "%s/%s/%s"},
	SiteNovel18: {host: "novel18.syosetu.com", novel: "%s/%s/", chapter: "%s/%s/%s", cookie: &http.Cookie{Name: "over18", Value: "yes"}},
	SiteMobile:  {host: "mnlt.syosetu.com", novel: "%s/%s/", chapter: "%s/%s/%s"},
	SiteYomou:   {host: "yomou.syosetu.com", novel: "%s/%s/", chapter: "%s/%s/%s"},
	SiteHameln:  {host: "syosetu.org", novel: "%s/novel/%s/", chapter: "%s/novel/%s/%s.html", cookie: &http.Cookie{Name: "over18", Value: "off"}},
}

// ParseSite validates a site name.
func ParseSite(name string) (Site, error) {
	s := Site(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := siteTable[s]; !ok {
		return "", fmt.Errorf("unknown site %q (supported: %s)", name, siteNames())
	}
	return s, nil
}

func siteNames() string {
	names := make([]string, len(Sites))
	for i, s := range Sites {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// BaseURL returns the scheme and host of the site.
func (s Site) BaseURL() string {
	return "https://" + siteTable[s].host
}

// NovelURL returns the index page of a novel.
func (s Site) NovelURL(novelID string) string {
	return fmt.Sprintf(siteTable[s].novel, s.BaseURL(), novelID)
}

// ChapterURL returns the page of one chapter.
func (s Site) ChapterURL(novelID, chapterNum string) string {
	return fmt.Sprintf(siteTable[s].chapter, s.BaseURL(), novelID, chapterNum)
}

// Cookie returns the cookie the site needs to serve novel pages, if any.
func (s Site) Cookie() *http.Cookie {
	c := siteTable[s].cookie
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

var hamelnChapterPath = regexp.MustCompile(`^/novel/([^/]+)/\d+\.html$`)

// Referer returns the Referer header the site expects for rawURL. Hameln
// rejects chapter requests that do not come from the novel page.
func (s Site) Referer(rawURL string) string {
	if s != SiteHameln {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	m := hamelnChapterPath.FindStringSubmatch(parsed.Path)
	if m == nil {
		return ""
	}
	return s.NovelURL(m[1])
}

// DetectSite maps a novel or chapter URL to its site and novel ID.
func DetectSite(rawURL string) (Site, string, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", "", fmt.Errorf("parsing URL: %w", err)
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
	segments := pathSegments(parsed.Path)

	for _, site := range Sites {
		if siteTable[site].host != host {
			continue
		}
		if site == SiteHameln {
			if len(segments) >= 2 && segments[0] == "novel" {
				return site, segments[1], nil
			}
			return "", "", fmt.Errorf("no novel ID in %s", rawURL)
		}
		if len(segments) >= 1 {
			return site, segments[0], nil
		}
		return "", "", fmt.Errorf("no novel ID in %s", rawURL)
	}
	return "", "", fmt.Errorf("unsupported site %q", parsed.Host)
}

func pathSegments(p string) []string {
	var out []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// resolveHref turns a chapter link into an absolute URL. Root-relative links
// are joined to baseURL and absolute http(s) links are kept; anything else
// yields "" so the caller fills the URL from the site pattern.
func resolveHref(href, baseURL string) string {
	href = strings.TrimSpace(href)
	switch {
	case href == "":
		return ""
	case strings.HasPrefix(href, "//"):
		return ""
	case strings.HasPrefix(href, "/"):
		return strings.TrimRight(baseURL, "/") + href
	}

	parsed, err := url.Parse(href)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return ""
	}
	parsed.Fragment = ""
	return parsed.String()
}

// chapterNumFromHref returns the last path segment of href, or the 1-based
// position when href has none.
func chapterNumFromHref(href string, position int) string {
	if parsed, err := url.Parse(strings.TrimSpace(href)); err == nil {
		if seg := path.Base(strings.TrimRight(parsed.Path, "/")); seg != "." && seg != "/" && seg != "" {
			return seg
		}
	}
	return strconv.Itoa(position)
}
