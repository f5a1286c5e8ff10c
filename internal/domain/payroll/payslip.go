package payroll

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// PayslipPDF renders a single page payslip for entry.
func PayslipPDF(entry Entry, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", entry.Name))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Employee ID: %s", entry.EmployeeID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s %d", entry.Month, entry.Year))
	pdf.Ln(10)

	lines := []struct {
		label  string
		amount float64
	}{
		{"Base salary", entry.Salary},
		{"Bonus", entry.Bonus},
		{"Deductions", entry.Deductions},
	}
	for _, line := range lines {
		pdf.CellFormat(60, 8, line.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", line.amount), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(60, 8, "Net salary", "T", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", entry.NetSalary), "T", 1, "R", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", entry.Status))
	pdf.Ln(7)
	paid := "-"
	if entry.PaymentDate != nil {
		paid = entry.PaymentDate.Format("2006-01-02")
	}
	pdf.Cell(0, 8, fmt.Sprintf("Payment date: %s", paid))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 8, fmt.Sprintf("Generated %s", generatedAt.Format(time.RFC1123)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
