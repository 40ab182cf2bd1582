package report

import (
	"fmt"
	"io"

	"github.com/frahmantamala/expense-bot/internal/summary"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfCategoryWidth = 90.0
	pdfAmountWidth   = 50.0
	pdfRowHeight     = 7.0
)

// WritePDF renders the report as an A4 document.
func WritePDF(w io.Writer, r summary.Report, order []string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// core fonts are cp1252; translate so accented category names survive
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(Title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(Title))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 8, tr("Generated "+r.GeneratedAt.Format("2006-01-02 15:04")))
	pdf.Ln(12)

	for _, win := range r.Windows {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, tr(win.Name.Label()))
		pdf.Ln(9)

		pdf.SetFont("Courier", "B", 10)
		pdf.CellFormat(pdfCategoryWidth, pdfRowHeight, tr(CategoryHeader), "1", 0, "L", false, 0, "")
		pdf.CellFormat(pdfAmountWidth, pdfRowHeight, tr(AmountHeader), "1", 1, "R", false, 0, "")

		pdf.SetFont("Courier", "", 10)
		for _, row := range Rows(win.Sums, order) {
			pdf.CellFormat(pdfCategoryWidth, pdfRowHeight, tr(row.Category), "1", 0, "L", false, 0, "")
			pdf.CellFormat(pdfAmountWidth, pdfRowHeight, FormatAmount(row.Amount), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(6)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
