// Package output handles file naming and writing for novelpipe exports.
// File names are derived from the novel title, e.g.
// 転生したら猫だった_1-10_20240102_150405.epub.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gaurav-prasanna/novelpipe/core"
)

const maxTitleRunes = 100

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
	now       func() time.Time
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to ./downloads.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = filepath.Join(wd, "downloads")
	}

	// Ensure the output directory exists.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir, now: time.Now}, nil
}

// Write stores one export and returns its path. The name carries the
// chapter range ("full" without one) and a timestamp so repeated exports
// never overwrite each other.
func (w *Writer) Write(title string, r *core.ChapterRange, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, Filename(title, r, w.now())+ext)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// Filename builds the extension-less export name for a novel.
func Filename(title string, r *core.ChapterRange, at time.Time) string {
	scope := "full"
	if r != nil {
		scope = r.String()
	}
	return Sanitize(title) + "_" + scope + "_" + at.Format("20060102_150405")
}

// Sanitize replaces characters that are invalid in file names on common
// systems with underscores and truncates the result to 100 runes.
func Sanitize(s string) string {
	var b strings.Builder
	n := 0
	for _, ch := range s {
		if n == maxTitleRunes {
			break
		}
		if strings.ContainsRune(`<>:"/\|?*`, ch) {
			ch = '_'
		}
		b.WriteRune(ch)
		n++
	}
	return b.String()
}
