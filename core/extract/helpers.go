package extract

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gaurav-prasanna/novelpipe/core"
	"github.com/gaurav-prasanna/novelpipe/core/chunk"
	"github.com/gaurav-prasanna/novelpipe/core/normalize"
)

// textOr returns the trimmed text of the first match of sel, or def when
// nothing matches or the match is blank.
func textOr(root *goquery.Selection, sel selectors, def string) string {
	if found := sel.first(root); found != nil {
		if text := strings.TrimSpace(found.Text()); text != "" {
			return text
		}
	}
	return def
}

// texts returns the trimmed, non-empty texts of every match of sel.
func texts(root *goquery.Selection, sel selectors) []string {
	var out []string
	sel.all(root).Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			out = append(out, text)
		}
	})
	return out
}

// authorName strips the "作者：" label the ncode family prints before the name.
func authorName(raw string) string {
	name := strings.TrimSpace(strings.ReplaceAll(raw, "作者：", ""))
	if name == "" {
		return core.DefaultAuthor
	}
	return name
}

// inlineMarkup is unwrapped before converting descriptions so that links and
// emphasis come out as plain text.
const inlineMarkup = "a, b, strong, em, i, u, s, span, font"

// description converts the first match of sel to line-preserving text.
func description(root *goquery.Selection, sel selectors, n *normalize.TextNormalizer) string {
	found := sel.first(root)
	if found == nil {
		return core.DefaultDescription
	}

	fragment := found.Clone()
	fragment.Find(inlineMarkup).Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithHtml(html.EscapeString(s.Text()))
	})
	if inner, err := fragment.Html(); err == nil {
		if text, err := n.Normalize(inner); err == nil && text != "" {
			return text
		}
	}
	if text := strings.TrimSpace(found.Text()); text != "" {
		return text
	}
	return core.DefaultDescription
}

// paragraphs returns the non-empty <p> texts of container. Containers without
// paragraph markup fall back to their text split into lines, with <br>
// counted as a line break.
func paragraphs(container *goquery.Selection) []string {
	var out []string
	container.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			out = append(out, text)
		}
	})
	if len(out) > 0 {
		return out
	}

	var b strings.Builder
	for _, n := range container.Nodes {
		writeLines(&b, n)
	}
	for _, line := range strings.Split(b.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func writeLines(b *strings.Builder, n *nethtml.Node) {
	switch n.Type {
	case nethtml.TextNode:
		b.WriteString(n.Data)
		return
	case nethtml.ElementNode:
		switch n.DataAtom {
		case atom.Br:
			b.WriteByte('\n')
			return
		case atom.Script, atom.Style, atom.Rp, atom.Rt:
			return
		case atom.Div, atom.P, atom.Li, atom.Tr:
			defer b.WriteByte('\n')
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeLines(b, c)
	}
}

// bodyNoise are elements inside a chapter body that carry no story text.
const bodyNoise = "script, style, noscript, img, picture, figure, iframe, form, button, input, .koukoku, .ads"

// chapterText joins paragraphs into content and chunks. A missing or empty
// body yields the default content as both.
func chapterText(container *goquery.Selection, c *chunk.Chunker) (string, []string) {
	var ps []string
	if container != nil {
		cleaned := container.Clone()
		cleaned.Find(bodyNoise).Remove()
		ps = paragraphs(cleaned)
	}
	if len(ps) == 0 {
		return core.DefaultContent, []string{core.DefaultContent}
	}
	return chunk.Join(ps), c.Chunk(ps)
}
