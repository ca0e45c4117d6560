package core

import "fmt"

// Literal defaults used when markup is missing.
const (
	DefaultTitle        = "Unknown Title"
	DefaultAuthor       = "Unknown Author"
	DefaultDescription  = "No description available"
	DefaultChapterTitle = "Unknown Chapter"
	DefaultContent      = "No content available"
)

// NovelInfo is the per-novel metadata produced once by an Extractor.
type NovelInfo struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Metadata    Metadata `json:"metadata"`
}

// ChapterRef is one entry of a chapter list. Empty URL, Arc and PublishDate
// mean the value is absent.
type ChapterRef struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	// ChapterNum is the site-native identifier used to build chapter URLs.
	ChapterNum  string `json:"chapter_num"`
	URL         string `json:"url,omitempty"`
	Arc         string `json:"arc,omitempty"`
	PublishDate string `json:"publish_date,omitempty"`
}

// ChapterContent is the text of one chapter. Joining Chunks with a blank
// line reproduces Content exactly.
type ChapterContent struct {
	Title   string   `json:"title"`
	URL     string   `json:"url"`
	Content string   `json:"content"`
	Chunks  []string `json:"chunks"`
}

// Chapter is a downloaded chapter annotated with its list position and arc.
type Chapter struct {
	Index       int    `json:"index"`
	Arc         string `json:"arc,omitempty"`
	PublishDate string `json:"publish_date,omitempty"`
	ChapterContent
}

// Document is the normalized structure handed to the Export Collaborator.
type Document struct {
	Info     NovelInfo `json:"info"`
	Chapters []Chapter `json:"chapters"`
}

// ChapterRange is an inclusive range of 1-based chapter indexes.
type ChapterRange struct {
	Start int
	End   int
}

// Contains reports whether index lies within the range.
func (r ChapterRange) Contains(index int) bool {
	return index >= r.Start && index <= r.End
}

func (r ChapterRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// InRange reports whether index passes an optional range filter.
func InRange(r *ChapterRange, index int) bool {
	return r == nil || r.Contains(index)
}
