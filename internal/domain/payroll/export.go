package payroll

import (
	"github.com/xuri/excelize/v2"
)

var registerHeader = []string{
	"Employee ID", "Name", "Month", "Year", "Base Salary", "Bonus", "Deductions", "Net Salary", "Status", "Payment Date",
}

// RegisterXLSX writes one row per entry under a bold header on the Payroll sheet.
func RegisterXLSX(entries []Entry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	for c, v := range registerHeader {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		if err := f.SetCellValue(exportSheet, cell, v); err != nil {
			return nil, err
		}
	}
	for r, e := range entries {
		paid := ""
		if e.PaymentDate != nil {
			paid = e.PaymentDate.Format("2006-01-02")
		}
		values := []any{
			e.EmployeeID, e.Name, e.Month, e.Year, e.Salary, e.Bonus, e.Deductions, e.NetSalary, e.Status, paid,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	_ = f.SetColWidth(exportSheet, "A", "A", 18)
	_ = f.SetColWidth(exportSheet, "B", "B", 28)
	_ = f.SetColWidth(exportSheet, "C", "J", 14)
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(exportSheet, "A1", "J1", style)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
