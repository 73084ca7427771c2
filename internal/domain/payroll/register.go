package payroll

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"promoback/internal/domain/busday"
)

// RegisterNames resolves display names for the register; ids fall through
// unchanged when a name is unknown.
type RegisterNames struct {
	Promoters     map[string]string
	Organizations map[string]string
}

func (n RegisterNames) promoter(id string) string {
	if name, ok := n.Promoters[id]; ok {
		return name
	}
	return id
}

func (n RegisterNames) organization(id string) string {
	if name, ok := n.Organizations[id]; ok {
		return name
	}
	return id
}

// BuildRegister renders the payroll register for a range as a PDF: one line
// per priced shift plus a totals line. The base fonts carry latin-1 only, so
// the register keeps to transliterated headings.
func BuildRegister(priced []ShiftPay, from, to time.Time, names RegisterNames) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Payroll register", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, fmt.Sprintf("Payroll register %s - %s",
		busday.FormatDate(from), busday.FormatDate(to)), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	widths := []float64{70, 60, 28, 24, 24, 30, 30}
	headers := []string{"Promoter", "Organization", "Date", "Contacts", "Rate", "Payment", "Pay"}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	var totalContacts, totalPay int
	for _, p := range priced {
		cells := []string{
			names.promoter(p.PromoterID),
			names.organization(p.OrgID),
			busday.FormatDate(p.Date),
			fmt.Sprintf("%d", p.Contacts),
			fmt.Sprintf("%d", p.Rate),
			p.PaymentType,
			fmt.Sprintf("%d", p.GrossPay),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		totalContacts += p.Contacts
		totalPay += p.GrossPay
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(widths[0]+widths[1]+widths[2], 8, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[3], 8, fmt.Sprintf("%d", totalContacts), "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[4]+widths[5], 8, "", "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[6], 8, fmt.Sprintf("%d", totalPay), "1", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
