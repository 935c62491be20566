// Package exporter renders a question list into a paginated PDF document.
package exporter

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/Thedarik/Quations/services/assembler"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageMargin   = 15.0 // mm
	maxImageH    = 60.0 // mm, height cap for embedded images
	lineHeight   = 6.0
	answerIndent = "     "
)

// Render lays the questions out one after another, breaking pages
// automatically: question text, the optional embedded image scaled to fit
// the content width with a height cap, and four lettered answer lines in the
// answers' current order. A missing image file is logged and replaced by a
// placeholder line; it never aborts the document.
func Render(heading string, questions []assembler.TestQuestion) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.MultiCell(0, 8, tr(heading), "", "C", false)
	pdf.Ln(4)

	for i, q := range questions {
		pdf.SetFont("Arial", "B", 11)
		pdf.MultiCell(0, lineHeight, tr(fmt.Sprintf("%d. %s", i+1, q.Text)), "", "L", false)

		if q.Image != "" {
			embedImage(pdf, q.Image)
		}

		pdf.SetFont("Arial", "", 11)
		for j, a := range q.Answers {
			letter := string(rune('A' + j))
			pdf.MultiCell(0, lineHeight, tr(fmt.Sprintf("%s%s) %s", answerIndent, letter, a.Text)), "", "L", false)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// embedImage draws the image scaled to the content width with a height cap,
// or a placeholder line when the file cannot be loaded.
func embedImage(pdf *gofpdf.Fpdf, path string) {
	if _, err := os.Stat(path); err != nil {
		log.Printf("Image %s not found, skipping: %v", path, err)
		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(0, lineHeight, fmt.Sprintf("%s[image not available: %s]", answerIndent, path), "", "L", false)
		return
	}

	info := pdf.RegisterImageOptions(path, gofpdf.ImageOptions{ReadDpi: true})
	if info == nil || !pdf.Ok() {
		return
	}

	pageW, pageH := pdf.GetPageSize()
	maxW := pageW - 2*pageMargin

	w, h := info.Width(), info.Height()
	scale := 1.0
	if w > maxW {
		scale = maxW / w
	}
	if h*scale > maxImageH {
		scale = maxImageH / h
	}
	w, h = w*scale, h*scale

	// Auto page break does not cover manually placed images
	if pdf.GetY()+h > pageH-pageMargin {
		pdf.AddPage()
	}

	pdf.ImageOptions(path, pageMargin, pdf.GetY(), w, h, true, gofpdf.ImageOptions{ReadDpi: true}, 0, "")
	pdf.Ln(2)
}
