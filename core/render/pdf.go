package render

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/novelpipe/core"
)

const bodyFont = "novel"

// PDFRenderer renders the novel as an A4 PDF, one page per chapter.
// Japanese text needs FontPath to point at a TTF font with CJK glyphs; the
// built-in Helvetica only covers cp1252.
type PDFRenderer struct {
	FontPath string
}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer(fontPath string) *PDFRenderer {
	return &PDFRenderer{FontPath: fontPath}
}

// pdfWriter pairs the document with the active font and text translation.
type pdfWriter struct {
	pdf    *gofpdf.Fpdf
	family string
	tr     func(string) string
}

func (r *PDFRenderer) newWriter() *pdfWriter {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	w := &pdfWriter{pdf: pdf, family: "Helvetica", tr: pdf.UnicodeTranslatorFromDescriptor("")}
	if r.FontPath != "" {
		pdf.AddUTF8Font(bodyFont, "", r.FontPath)
		w.family = bodyFont
		w.tr = func(s string) string { return s }
	}
	return w
}

// font sets the body font; styles other than "" only apply to Helvetica.
func (w *pdfWriter) font(style string, size float64) {
	if w.family == bodyFont {
		style = ""
	}
	w.pdf.SetFont(w.family, style, size)
}

func (w *pdfWriter) text(height float64, s, align string) {
	w.pdf.MultiCell(0, height, w.tr(s), "", align, false)
}

// Render writes the document to PDF bytes.
func (r *PDFRenderer) Render(doc *core.Document, opts core.RenderOptions) ([]byte, error) {
	w := r.newWriter()
	pdf := w.pdf
	secs := sections(doc.Chapters, opts.Range)

	if opts.IncludeInfo {
		pdf.AddPage()
		w.font("B", 22)
		w.text(10, doc.Info.Title, "C")
		pdf.Ln(4)
		w.font("", 14)
		w.text(7, "Author: "+doc.Info.Author, "C")
		pdf.Ln(8)

		w.font("B", 13)
		w.text(6, "Description:", "L")
		w.font("", 11)
		w.text(5.5, doc.Info.Description, "L")

		if lines := metadataLines(doc.Info.Metadata); len(lines) > 0 {
			pdf.Ln(4)
			w.font("B", 13)
			w.text(6, "Metadata:", "L")
			w.font("", 11)
			for _, line := range lines {
				w.text(5.5, line, "L")
			}
		}
		pdf.Ln(4)
		w.font("I", 9)
		pdf.SetTextColor(100, 100, 100)
		w.text(5, "URL: "+doc.Info.URL, "L")
		pdf.SetTextColor(0, 0, 0)

		pdf.AddPage()
		w.font("B", 18)
		w.text(9, "Table of Contents", "C")
		pdf.Ln(4)
		w.font("", 11)
		for _, s := range secs {
			w.text(6, strconv.Itoa(s.Chapter.Index)+". "+s.Chapter.Title, "L")
		}
	}

	for _, s := range secs {
		pdf.AddPage()
		if s.Arc != "" {
			w.font("B", 16)
			w.text(8, s.Arc, "C")
			pdf.Ln(4)
		}
		w.font("B", 18)
		w.text(9, s.Chapter.Title, "C")
		pdf.Ln(6)

		w.font("", 11)
		for _, line := range contentLines(s.Chapter.Content) {
			w.text(5.5, line, "L")
			pdf.Ln(2)
		}
	}

	if len(secs) == 0 && !opts.IncludeInfo {
		pdf.AddPage()
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}
