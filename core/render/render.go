// Package render provides the export renderers for novelpipe: EPUB, PDF,
// Markdown and JSON. Every renderer honours the same RenderOptions: the
// optional info section, the chapter range and the arc headers.
package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/gaurav-prasanna/novelpipe/core"
)

// Format names an export format.
type Format string

const (
	FormatEPUB     Format = "epub"
	FormatPDF      Format = "pdf"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Formats lists the supported export formats.
var Formats = []Format{FormatEPUB, FormatPDF, FormatMarkdown, FormatJSON}

// Options configures renderer construction.
type Options struct {
	// FontPath is a TTF font with CJK glyphs for PDF output.
	FontPath string
	// Language is the EPUB content language.
	Language string
}

// New returns the renderer for format.
func New(format string, opts Options) (core.Renderer, error) {
	switch Format(strings.ToLower(strings.TrimSpace(format))) {
	case FormatEPUB:
		return NewEPUBRenderer(opts.Language), nil
	case FormatPDF:
		if err := checkFont(opts.FontPath); err != nil {
			return nil, err
		}
		return NewPDFRenderer(opts.FontPath), nil
	case FormatMarkdown, "md":
		return NewMarkdownRenderer(), nil
	case FormatJSON:
		return NewJSONRenderer(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q (supported: epub, pdf, markdown, json)", format)
	}
}

// checkFont fails early for a font file that gofpdf would only reject when
// the finished document is written. An empty path means the built-in font.
func checkFont(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("pdf font: %w", err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("pdf font: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("pdf font: %s is a directory", path)
	}
	return nil
}

// section is one exported chapter. Arc is set on the first chapter of each
// new arc and empty otherwise.
type section struct {
	Arc     string
	Chapter core.Chapter
}

// sections filters chapters by r and marks arc changes between consecutive
// exported chapters.
func sections(chapters []core.Chapter, r *core.ChapterRange) []section {
	var (
		out     []section
		current string
	)
	for _, ch := range chapters {
		if !core.InRange(r, ch.Index) {
			continue
		}
		s := section{Chapter: ch}
		if ch.Arc != current {
			current = ch.Arc
			s.Arc = ch.Arc
		}
		out = append(out, s)
	}
	return out
}

// metadataLines renders metadata as "key: value" lines, joining lists with ", ".
func metadataLines(m core.Metadata) []string {
	entries := m.Entries()
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		value := e.Value
		if e.IsList {
			value = strings.Join(e.Values, ", ")
		}
		lines = append(lines, e.Key+": "+value)
	}
	return lines
}

// contentLines splits chapter content into its non-blank lines.
func contentLines(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
