package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html"
	"strings"

	"github.com/bmaupin/go-epub"
	"github.com/google/uuid"

	"github.com/gaurav-prasanna/novelpipe/core"
)

const epubCSS = `body { font-family: serif; }
h1 { text-align: center; }
h2 { text-align: center; }
.arc-header { page-break-before: always; }
`

// EPUBRenderer builds an EPUB book with one section per chapter.
type EPUBRenderer struct {
	Language string
}

// NewEPUBRenderer creates an EPUBRenderer. An empty language means "en".
func NewEPUBRenderer(language string) *EPUBRenderer {
	if language == "" {
		language = "en"
	}
	return &EPUBRenderer{Language: language}
}

// chapterFile is the internal file name of a chapter section.
func chapterFile(index int) string {
	return fmt.Sprintf("chapter_%d.xhtml", index)
}

// Render builds the book in memory.
func (r *EPUBRenderer) Render(doc *core.Document, opts core.RenderOptions) ([]byte, error) {
	info := doc.Info
	book := epub.NewEpub(info.Title)
	book.SetAuthor(info.Author)
	book.SetLang(r.Language)
	book.SetDescription(info.Description)
	// The same novel URL always yields the same identifier.
	book.SetIdentifier("urn:uuid:" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(info.URL)).String())

	css, err := book.AddCSS("data:text/css;base64,"+base64.StdEncoding.EncodeToString([]byte(epubCSS)), "style.css")
	if err != nil {
		return nil, fmt.Errorf("adding stylesheet: %w", err)
	}

	secs := sections(doc.Chapters, opts.Range)
	if opts.IncludeInfo {
		if _, err := book.AddSection(coverBody(info), "Cover", "cover.xhtml", css); err != nil {
			return nil, fmt.Errorf("adding cover: %w", err)
		}
		if _, err := book.AddSection(tocBody(secs), "Table of Contents", "toc.xhtml", css); err != nil {
			return nil, fmt.Errorf("adding table of contents: %w", err)
		}
	}

	for _, s := range secs {
		if _, err := book.AddSection(chapterBody(s), s.Chapter.Title, chapterFile(s.Chapter.Index), css); err != nil {
			return nil, fmt.Errorf("adding chapter %d: %w", s.Chapter.Index, err)
		}
	}

	var buf bytes.Buffer
	if _, err := book.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("writing epub: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for EPUB output.
func (r *EPUBRenderer) Extension() string {
	return ".epub"
}

func coverBody(info core.NovelInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(info.Title))
	fmt.Fprintf(&b, "<p><strong>Author:</strong> %s</p>\n", html.EscapeString(info.Author))
	for _, line := range metadataLines(info.Metadata) {
		key, value, _ := strings.Cut(line, ": ")
		fmt.Fprintf(&b, "<p><strong>%s:</strong> %s</p>\n", html.EscapeString(key), html.EscapeString(value))
	}
	fmt.Fprintf(&b, "<p>%s</p>\n", withBreaks(info.Description))
	fmt.Fprintf(&b, "<p><strong>URL:</strong> %s</p>\n", html.EscapeString(info.URL))
	return b.String()
}

func tocBody(secs []section) string {
	var b strings.Builder
	b.WriteString("<h1>Table of Contents</h1>\n<ul>\n")
	for _, s := range secs {
		fmt.Fprintf(&b, "<li><a href=\"%s\">%s</a></li>\n", chapterFile(s.Chapter.Index), html.EscapeString(s.Chapter.Title))
	}
	b.WriteString("</ul>\n")
	return b.String()
}

func chapterBody(s section) string {
	var b strings.Builder
	if s.Arc != "" {
		fmt.Fprintf(&b, "<h2 class=\"arc-header\">%s</h2>\n", html.EscapeString(s.Arc))
	}
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(s.Chapter.Title))
	fmt.Fprintf(&b, "<div>%s</div>\n", withBreaks(s.Chapter.Content))
	return b.String()
}

// withBreaks escapes text and turns line breaks into <br/>.
func withBreaks(text string) string {
	return strings.ReplaceAll(html.EscapeString(text), "\n", "<br/>")
}
