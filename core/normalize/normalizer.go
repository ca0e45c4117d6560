// Package normalize converts HTML fragments into plain text that keeps the
// fragment's line structure. Goquery's Text() drops <br> elements, which
// flattens multi-line novel descriptions into one run-on line.
package normalize

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

var (
	// escapedPunct matches the backslash escapes the converter adds to
	// Markdown-significant punctuation.
	escapedPunct = regexp.MustCompile(`\\([\\` + "`" + `*_{}\[\]()#+\-.!|<>~=])`)
	blankRuns    = regexp.MustCompile(`\n{3,}`)
)

// nbsp stands in for the spaces of an interior run while the converter
// collapses ASCII whitespace.
const nbsp = "\u00a0"

// TextNormalizer converts HTML to line-preserving plain text using html-to-markdown.
type TextNormalizer struct{}

// New creates a TextNormalizer.
func New() *TextNormalizer {
	return &TextNormalizer{}
}

// Normalize converts an HTML fragment into plain text. Line breaks survive,
// entities are decoded, and runs of spaces between words are kept. Trailing
// whitespace is trimmed from every line and runs of blank lines are
// collapsed to one.
func (n *TextNormalizer) Normalize(fragment string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(keepSpaceRuns(fragment))
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}

	text := escapedPunct.ReplaceAllString(markdown, "$1")
	text = html.UnescapeString(text)
	text = strings.ReplaceAll(text, nbsp, " ")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\\")
	}
	text = strings.Join(lines, "\n")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text), nil
}

// keepSpaceRuns pins runs of spaces that sit between two visible characters
// of text, so indentation between tags still collapses. Markup is copied
// untouched.
func keepSpaceRuns(fragment string) string {
	if !strings.Contains(fragment, "  ") {
		return fragment
	}
	var b strings.Builder
	inTag := false
	for i := 0; i < len(fragment); i++ {
		c := fragment[i]
		switch {
		case c == '<':
			inTag = true
		case c == '>':
			inTag = false
		case c == ' ' && !inTag:
			end := i
			for end < len(fragment) && fragment[end] == ' ' {
				end++
			}
			if end-i > 1 && i > 0 && end < len(fragment) && visible(fragment[i-1]) && visible(fragment[end]) {
				b.WriteByte(' ')
				b.WriteString(strings.Repeat(nbsp, end-i-1))
				i = end - 1
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

func visible(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '<', '>':
		return false
	}
	return true
}
