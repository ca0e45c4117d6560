package scrape

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/novelpipe/core"
)

// ParseRange interprets a chapter selection against a list of total
// chapters: "0" (or empty) selects everything and returns nil, "N" selects
// one chapter and "A-B" an inclusive range. Bounds must lie in 1..total.
func ParseRange(input string, total int) (*core.ChapterRange, error) {
	input = strings.TrimSpace(input)
	if input == "" || input == "0" {
		return nil, nil
	}

	if startRaw, endRaw, ok := strings.Cut(input, "-"); ok {
		start, errStart := strconv.Atoi(strings.TrimSpace(startRaw))
		end, errEnd := strconv.Atoi(strings.TrimSpace(endRaw))
		if errStart != nil || errEnd != nil {
			return nil, fmt.Errorf("invalid chapter range %q: use start-end, e.g. 1-5", input)
		}
		if start < 1 || start > total || end < 1 || end > total {
			return nil, fmt.Errorf("invalid chapter range %q: valid range is 1-%d", input, total)
		}
		if start > end {
			return nil, fmt.Errorf("invalid chapter range %q: start is after end", input)
		}
		return &core.ChapterRange{Start: start, End: end}, nil
	}

	n, err := strconv.Atoi(input)
	if err != nil {
		return nil, fmt.Errorf("invalid chapter number %q", input)
	}
	if n < 1 || n > total {
		return nil, fmt.Errorf("invalid chapter number %d: valid range is 1-%d", n, total)
	}
	return &core.ChapterRange{Start: n, End: n}, nil
}

// Select returns the contiguous run of chapters whose Index lies in r.
// Indexes are unchanged so the selection can be rendered against the full list.
func Select(chapters []core.ChapterRef, r *core.ChapterRange) []core.ChapterRef {
	if r == nil {
		return chapters
	}
	var out []core.ChapterRef
	for _, ch := range chapters {
		if r.Contains(ch.Index) {
			out = append(out, ch)
		}
	}
	return out
}
