// Package report renders saved notes as PDF documents.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// Note is the content of one exported document.
type Note struct {
	Kind        string
	Subject     string
	Topic       string
	Content     string
	GeneratedAt time.Time
}

// FileName is the default export name, e.g. "flashcards_Biology_Cells.pdf".
func (n Note) FileName() string {
	clean := func(s string) string {
		s = strings.TrimSpace(s)
		return strings.Map(func(r rune) rune {
			switch r {
			case '/', '\\', ' ', ':', '*', '?', '"', '<', '>', '|':
				return '_'
			}
			return r
		}, s)
	}
	return fmt.Sprintf("%s_%s_%s.pdf", strings.ToLower(clean(n.Kind)), clean(n.Subject), clean(n.Topic))
}

// Render writes the PDF for n to w.
func Render(w io.Writer, n Note) error {
	pdf := build(n)
	return pdf.Output(w)
}

// WriteFile renders n into path, creating the parent directory.
func WriteFile(path string, n Note) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	pdf := build(n)
	return pdf.OutputFileAndClose(path)
}

func build(n Note) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(fmt.Sprintf("%s: %s / %s", n.Kind, n.Subject, n.Topic), true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr(fmt.Sprintf("%s: %s", n.Kind, n.Topic)))
	pdf.Ln(10)

	pdf.SetFont("Arial", "I", 10)
	generated := n.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	pdf.Cell(0, 6, tr(fmt.Sprintf("Subject: %s  |  Exported %s", n.Subject, generated.Format("2006-01-02 15:04"))))
	pdf.Ln(10)

	for _, line := range strings.Split(n.Content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			pdf.Ln(4)
		case strings.HasPrefix(trimmed, "#"):
			pdf.SetFont("Arial", "B", 13)
			pdf.MultiCell(0, 7, tr(strings.TrimSpace(strings.TrimLeft(trimmed, "#"))), "", "", false)
		default:
			pdf.SetFont("Arial", "", 11)
			pdf.MultiCell(0, 6, tr(stripEmphasis(line)), "", "", false)
		}
	}
	return pdf
}

// stripEmphasis drops markdown bold markers, which the core fonts can't style
// inline.
func stripEmphasis(s string) string {
	return strings.ReplaceAll(s, "**", "")
}
