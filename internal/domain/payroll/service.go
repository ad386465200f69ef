package payroll

import "context"

type PayrollService interface {
	ListPayrollRecords(ctx context.Context, filter PayrollFilter) (ListPayrollRecordResponse, error)
	ListMyPayrollRecords(ctx context.Context, employeeID string, filter PayrollFilter) (ListPayrollRecordResponse, error)

	// GetPayrollRecord returns the record when the viewer owns it or may view all records.
	GetPayrollRecord(ctx context.Context, id string, viewerID string, viewAll bool) (PayrollRecordResponse, error)

	MarkPaid(ctx context.Context, req MarkPaidRequest) (PayrollRecordResponse, error)
	DeletePayrollRecord(ctx context.Context, id string) error

	// GenerateCurrentPeriod runs the generator for the month containing now.
	GenerateCurrentPeriod(ctx context.Context) (GenerationResult, error)

	// ExportPeriod renders every record of a period as a spreadsheet.
	ExportPeriod(ctx context.Context, period Period) ([]byte, string, error)

	// WaitMail blocks until pending payslip mails have been handed off.
	WaitMail()
}
