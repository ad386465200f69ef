package export

import (
	"bytes"
	"fmt"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/payroll"
	"github.com/xuri/excelize/v2"
)

const payrollSheet = "Payroll"

var payrollHeaders = []string{
	"Employee", "Email", "Month", "Year", "Base Salary", "Working Days",
	"Present", "Late", "Absent", "Sick", "Leave",
	"Deductions", "Bonus", "Tax", "Total", "Status", "Payment Method", "Paid At",
}

// PayrollWorkbook renders the records of one period as an .xlsx document.
func PayrollWorkbook(period payroll.Period, records []payroll.PayrollRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", payrollSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, h := range payrollHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(payrollSheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(payrollHeaders), 1)
	if err := f.SetCellStyle(payrollSheet, "A1", lastHeader, bold); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, r := range records {
		row := []interface{}{
			deref(r.EmployeeName), deref(r.EmployeeEmail), period.Month, period.Year,
			r.BaseSalary.InexactFloat64(), r.WorkingDays,
			r.PresentDays, r.LateDays, r.AbsentDays, r.SickDays, r.LeaveDays,
			r.Deductions.Round(2).InexactFloat64(), r.Bonus.Round(2).InexactFloat64(),
			r.Tax.Round(2).InexactFloat64(), r.TotalAmount.Round(2).InexactFloat64(),
			string(r.Status), deref(r.PaymentMethod), "",
		}
		if r.PaidAt != nil {
			row[len(row)-1] = r.PaidAt.Format("2006-01-02 15:04")
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(payrollSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// PayrollFileName is the download name of a period export.
func PayrollFileName(period payroll.Period) string {
	return fmt.Sprintf("payroll-%04d-%02d.xlsx", period.Year, period.Month)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
