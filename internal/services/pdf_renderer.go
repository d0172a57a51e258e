package services

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"invisifeed/internal/models/request_models"
)

// InvoiceDocument is everything the renderer needs to lay out one invoice.
type InvoiceDocument struct {
	InvoiceNumber string
	InvoiceDate   string
	DueDate       string
	PaymentTerms  string

	BusinessName    string
	BusinessEmail   string
	BusinessPhone   string
	BusinessAddress string

	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string

	Items    []request_models.InvoiceItemRequest
	TaxRate  float64
	Totals   InvoiceTotals
	Currency string

	BankDetails         string
	PaymentMethod       string
	PaymentInstructions string
	Notes               string

	// QRPNG, when set, is embedded with the feedback call-to-action block.
	QRPNG []byte
	// CouponBanner, when set, promotes the coupon unlocked by feedback.
	CouponBanner string
}

type PDFRenderer interface {
	Render(doc InvoiceDocument) ([]byte, error)
}

type fpdfRenderer struct{}

func NewPDFRenderer() PDFRenderer {
	return &fpdfRenderer{}
}

func (r *fpdfRenderer) Render(doc InvoiceDocument) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 18)
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "INVOICE", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Invoice No: %s", doc.InvoiceNumber), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Date: %s", doc.InvoiceDate), "", 1, "L", false, 0, "")
	if doc.DueDate != "" {
		pdf.CellFormat(0, 6, fmt.Sprintf("Due: %s", doc.DueDate), "", 1, "L", false, 0, "")
	}
	if doc.PaymentTerms != "" {
		pdf.CellFormat(0, 6, fmt.Sprintf("Terms: %s", doc.PaymentTerms), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// From / To blocks side by side
	y := pdf.GetY()
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(95, 6, "From", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	writeBlock(pdf, 95, doc.BusinessName, doc.BusinessAddress, doc.BusinessEmail, doc.BusinessPhone)
	fromBottom := pdf.GetY()

	pdf.SetXY(105, y)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(95, 6, "Bill To", "", 2, "L", false, 0, "")
	pdf.SetX(105)
	pdf.SetFont("Helvetica", "", 10)
	writeBlockAt(pdf, 105, 95, doc.CustomerName, doc.CustomerAddress, doc.CustomerEmail, doc.CustomerPhone)
	if pdf.GetY() < fromBottom {
		pdf.SetY(fromBottom)
	}
	pdf.Ln(6)

	// Items table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(80, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 8, "Rate", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 8, "Disc %", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, it := range doc.Items {
		amount := it.Quantity * it.Rate
		pdf.CellFormat(80, 7, it.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, trimFloat(it.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, money(it.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, trimFloat(it.Discount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, money(amount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(2)

	// Totals block, right aligned
	totals := []struct {
		label string
		value float64
	}{
		{"Subtotal", doc.Totals.Subtotal},
		{"Discount", doc.Totals.DiscountTotal},
		{fmt.Sprintf("Tax (%s%%)", trimFloat(doc.TaxRate)), doc.Totals.TaxTotal},
		{"Grand Total", doc.Totals.GrandTotal},
	}
	for i, row := range totals {
		style := ""
		if i == len(totals)-1 {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(155, 7, row.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%s %s", doc.Currency, money(row.value)), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// Payment info
	if doc.BankDetails != "" || doc.PaymentMethod != "" || doc.PaymentInstructions != "" {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, "Payment", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, line := range []string{doc.PaymentMethod, doc.BankDetails, doc.PaymentInstructions} {
			if line != "" {
				pdf.MultiCell(0, 6, line, "", "L", false)
			}
		}
		pdf.Ln(2)
	}

	if doc.Notes != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, doc.Notes, "", "L", false)
		pdf.Ln(2)
	}

	// Feedback QR block
	if len(doc.QRPNG) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, "We value your feedback", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 5, "Scan the QR code to share anonymous feedback about this invoice.", "", 1, "L", false, 0, "")

		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("feedback-qr", opts, bytes.NewReader(doc.QRPNG))
		pdf.ImageOptions("feedback-qr", pdf.GetX(), pdf.GetY()+2, 32, 32, false, opts, 0, "")
		pdf.SetY(pdf.GetY() + 38)

		if doc.CouponBanner != "" {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.SetFillColor(255, 243, 205)
			pdf.CellFormat(0, 9, doc.CouponBanner, "1", 1, "C", true, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeBlock(pdf *fpdf.Fpdf, w float64, lines ...string) {
	for _, line := range lines {
		if line != "" {
			pdf.CellFormat(w, 5, line, "", 1, "L", false, 0, "")
		}
	}
}

func writeBlockAt(pdf *fpdf.Fpdf, x, w float64, lines ...string) {
	for _, line := range lines {
		if line != "" {
			pdf.SetX(x)
			pdf.CellFormat(w, 5, line, "", 1, "L", false, 0, "")
		}
	}
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", Round2(v))
}

func trimFloat(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
