package shopping

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	pdfFont      = "Helvetica"
	pdfRowHeight = 8.0
)

var pdfColumns = []struct {
	title string
	width float64
	align string
}{
	{"#", 12, "R"},
	{"Ingredient", 98, "L"},
	{"Unit", 40, "L"},
	{"Amount", 40, "R"},
}

// PDFFormatter renders the list as a single table on A4 pages.
// Core fonts only cover cp1252, characters outside it are replaced.
type PDFFormatter struct {
	opts Options
}

func (f *PDFFormatter) ContentType() string { return "application/pdf" }
func (f *PDFFormatter) Extension() string   { return "pdf" }

func (f *PDFFormatter) Render(w io.Writer, entries []AggregatedEntry) error {
	if len(entries) == 0 {
		return ErrEmptyList
	}

	title := f.opts.titleOr("Shopping list")

	pdf := fpdf.New("P", "mm", "A4", "")
	// Fonts and resources are written from maps; sorted catalogs plus pinned
	// dates keep output identical for identical input.
	pdf.SetCatalogSort(true)
	created := f.opts.GeneratedAt
	if created.IsZero() {
		created = time.Unix(0, 0)
	}
	pdf.SetCreationDate(created.UTC())
	pdf.SetModificationDate(created.UTC())
	pdf.SetTitle(title, true)
	pdf.SetCreator("foodgram", true)

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont(pdfFont, "B", 16)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	if line := f.opts.generatedLine(); line != "" {
		pdf.SetFont(pdfFont, "", 9)
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont(pdfFont, "B", 11)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, pdfRowHeight, col.title, "1", 0, col.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(pdfFont, "", 11)
	for i, e := range entries {
		cells := []string{strconv.Itoa(i + 1), tr(e.Name), tr(e.Unit), e.FormatAmount()}
		for j, col := range pdfColumns {
			pdf.CellFormat(col.width, pdfRowHeight, cells[j], "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}
