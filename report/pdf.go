package report

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/indiekitai/budget-cli/ledger"
	"github.com/indiekitai/budget-cli/models"
)

var (
	pdfHeaderColor  = [3]int{0, 90, 140}
	pdfIncomeColor  = [3]int{0, 128, 0}
	pdfExpenseColor = [3]int{192, 0, 0}
	pdfBodyColor    = [3]int{40, 40, 40}
)

// WritePDF renders a one-page budget report
func WritePDF(w io.Writer, title string, snap ledger.Snapshot) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFillColor(pdfHeaderColor[0], pdfHeaderColor[1], pdfHeaderColor[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 12, tr("  "+title), "", 1, "L", true, 0, "")
	pdf.Ln(4)

	s := snap.Summary
	pdf.SetTextColor(pdfBodyColor[0], pdfBodyColor[1], pdfBodyColor[2])
	summaryRow := func(label, value string) {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(40, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 7, tr(value), "", 1, "L", false, 0, "")
	}
	summaryRow("Budget", models.FormatBudget(s.Budget))
	summaryRow("Income", models.FormatAmount(s.TotalIncome, models.Income))
	summaryRow("Expenses", models.FormatAmount(s.TotalExpense, models.Expense))
	summaryRow("Spent", models.FormatPercentage(s.SpendingPercentage))
	pdf.Ln(4)

	widths := []float64{20, 15, 85, 35, 25}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range []string{"Type", "ID", "Description", "Value", "%"} {
		pdf.CellFormat(widths[i], 7, h, "B", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, e := range allEntries(snap) {
		c := pdfIncomeColor
		pct := ""
		if e.Category == models.Expense {
			c = pdfExpenseColor
			pct = models.FormatPercentage(e.Percentage)
		}
		pdf.SetTextColor(pdfBodyColor[0], pdfBodyColor[1], pdfBodyColor[2])
		pdf.CellFormat(widths[0], 6, e.Category.String(), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, fmt.Sprintf("%d", e.ID), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, tr(e.Description), "", 0, "L", false, 0, "")
		pdf.SetTextColor(c[0], c[1], c[2])
		pdf.CellFormat(widths[3], 6, models.FormatAmount(e.Value, e.Category), "", 0, "R", false, 0, "")
		pdf.SetTextColor(pdfBodyColor[0], pdfBodyColor[1], pdfBodyColor[2])
		pdf.CellFormat(widths[4], 6, pct, "", 1, "R", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}
