package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/novelpipe/core"
)

// MarkdownRenderer writes the novel as a single Markdown document: an
// optional info block and table of contents, then one section per chapter.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render converts the document to Markdown.
func (r *MarkdownRenderer) Render(doc *core.Document, opts core.RenderOptions) ([]byte, error) {
	var b strings.Builder
	secs := sections(doc.Chapters, opts.Range)

	fmt.Fprintf(&b, "# %s\n\n", doc.Info.Title)
	if opts.IncludeInfo {
		fmt.Fprintf(&b, "**Author:** %s\n\n", doc.Info.Author)
		for _, line := range metadataLines(doc.Info.Metadata) {
			key, value, _ := strings.Cut(line, ": ")
			fmt.Fprintf(&b, "- **%s:** %s\n", key, value)
		}
		if doc.Info.Metadata.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s\n\n", doc.Info.Description)
		fmt.Fprintf(&b, "**URL:** %s\n\n", doc.Info.URL)

		b.WriteString("## Table of Contents\n\n")
		for _, s := range secs {
			fmt.Fprintf(&b, "%d. %s\n", s.Chapter.Index, s.Chapter.Title)
		}
		b.WriteString("\n")
	}

	for _, s := range secs {
		if s.Arc != "" {
			fmt.Fprintf(&b, "## %s\n\n", s.Arc)
		}
		fmt.Fprintf(&b, "### %s\n\n", s.Chapter.Title)
		// Paragraphs are separated by a blank line already; single line
		// breaks inside a paragraph are kept with a trailing backslash.
		for i, para := range strings.Split(s.Chapter.Content, "\n\n") {
			if i > 0 {
				b.WriteString("\n\n")
			}
			b.WriteString(strings.ReplaceAll(para, "\n", "\\\n"))
		}
		b.WriteString("\n\n")
	}

	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
