// Package chunk splits chapter text into paragraph-aligned chunks for translation.
// Paragraphs are packed greedily and never split, so a paragraph longer than
// the limit becomes its own oversized chunk.
package chunk

import (
	"strings"
	"unicode/utf8"
)

// Separator joins paragraphs inside a chunk and chunks inside a chapter.
const Separator = "\n\n"

// DefaultLimit is the chunk size bound in characters.
const DefaultLimit = 1000

var separatorLength = utf8.RuneCountInString(Separator)

// Chunker packs paragraphs into chunks of at most Limit characters.
type Chunker struct {
	Limit int // characters (runes) per chunk
}

// New creates a Chunker with the given limit.
// Defaults to DefaultLimit if limit <= 0.
func New(limit int) *Chunker {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Chunker{Limit: limit}
}

// Chunk packs paragraphs in order. Before a paragraph is added, the current
// chunk is closed if it is non-empty and the addition would pass the limit.
func (c *Chunker) Chunk(paragraphs []string) []string {
	if len(paragraphs) == 0 {
		return nil
	}

	var (
		chunks  []string
		current []string
		length  int
	)
	for _, p := range paragraphs {
		n := utf8.RuneCountInString(p)
		if length+n+separatorLength > c.Limit && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, Separator))
			current = nil
			length = 0
		}
		current = append(current, p)
		length += n + separatorLength
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, Separator))
	}
	return chunks
}

// Join reassembles chunks (or paragraphs) into chapter content.
func Join(parts []string) string {
	return strings.Join(parts, Separator)
}
