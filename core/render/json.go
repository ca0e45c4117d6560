package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/novelpipe/core"
)

// JSONRenderer produces the structured JSON export: the Document Model as-is,
// restricted to the selected chapters.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

type jsonChapter struct {
	core.Chapter
	// NewArc marks the first chapter of an arc.
	NewArc bool `json:"new_arc,omitempty"`
}

type jsonDocument struct {
	Info     *core.NovelInfo `json:"info,omitempty"`
	Title    string          `json:"title"`
	Chapters []jsonChapter   `json:"chapters"`
}

// Render marshals the document. Novel info is included only with IncludeInfo.
func (r *JSONRenderer) Render(doc *core.Document, opts core.RenderOptions) ([]byte, error) {
	out := jsonDocument{Title: doc.Info.Title, Chapters: []jsonChapter{}}
	if opts.IncludeInfo {
		info := doc.Info
		out.Info = &info
	}
	for _, s := range sections(doc.Chapters, opts.Range) {
		out.Chapters = append(out.Chapters, jsonChapter{Chapter: s.Chapter, NewArc: s.Arc != ""})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
