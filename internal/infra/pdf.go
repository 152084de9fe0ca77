package infra

// pdf.go — remittance advice generation using go-pdf/fpdf.
// One A4 page per paid invoice:
//   - Site name header + invoice reference
//   - Author banking/tax snapshot
//   - Commission table (article, amount, tax, VAT, due)
//   - Totals block
//
// The output file is saved to storagePath/invoice_{authorID}_{num}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/sjwaight/gu/internal/model"
	"github.com/sjwaight/gu/internal/payment"
)

// GenerateInvoicePDF renders the remittance advice for a paid invoice and
// returns the absolute path to the generated file. storagePath is created if
// needed.
func GenerateInvoicePDF(siteName, storagePath string, inv *model.Invoice, commissions []model.Commission) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("invoice_%s_%d.pdf", inv.AuthorID, inv.InvoiceNum)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, siteName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Remittance advice", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Invoice %s", inv.Reference()), "", 1, "L", false, 0, "")
	if inv.DateTimeProcessed != nil {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW, 5, "Processed "+inv.DateTimeProcessed.Format("02 Jan 2006"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	// ── Payee details ────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, "Paid to", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if inv.Author != nil {
		pdf.CellFormat(contentW, 5, inv.Author.FullName(), "", 1, "L", false, 0, "")
	}
	if inv.BankName != "" {
		pdf.CellFormat(contentW, 5,
			fmt.Sprintf("%s  %s (%s)", inv.BankName, inv.BankAccountNumber, inv.BankAccountType),
			"", 1, "L", false, 0, "")
	}
	if inv.TaxNumber != "" {
		pdf.CellFormat(contentW, 5, "Tax number "+inv.TaxNumber, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// ── Commission table ─────────────────────────────────────────────────────
	col1 := contentW * 0.40 // description/article
	col2 := contentW * 0.15 // amount
	col3 := contentW * 0.15 // tax
	col4 := contentW * 0.15 // vat
	col5 := contentW * 0.15 // due

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 6, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Amount", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col3, 6, "Tax", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "VAT", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 6, "Due", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for i := range commissions {
		c := &commissions[i]
		if c.FundID == nil || !c.CommissionDue.IsPositive() {
			continue
		}
		b := payment.CalcCommission(c.CommissionDue, c.Taxable, c.VATable, inv.TaxPercent, inv.VATPercent)

		label := c.Description
		if c.Article != nil {
			label = c.Article.Title
		}
		if len(label) > 48 {
			label = label[:47] + "…"
		}
		pdf.CellFormat(col1, 5, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, b.Gross.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col3, 5, b.Tax.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 5, b.VAT.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col5, 5, b.Due.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(col1+col2+col3, 6, "Tax deducted:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4+col5, 6, inv.TaxPaid.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(col1+col2+col3, 6, "VAT:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4+col5, 6, inv.VATPaid.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1+col2+col3, 7, "Amount paid:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4+col5, 7, inv.AmountPaid.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
