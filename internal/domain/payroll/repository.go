package payroll

import "context"

// PayrollRepository defines data access methods for payroll records.
// The (employee_id, month, year) triple is unique at the storage layer.
type PayrollRepository interface {
	// CreatePayrollRecord returns ErrPayrollRecordAlreadyExists when the period is taken.
	CreatePayrollRecord(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	ExistsForPeriod(ctx context.Context, employeeID string, period Period) (bool, error)
	GetPayrollRecordByID(ctx context.Context, id string) (PayrollRecord, error)
	ListPayrollRecords(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, int64, error)
	ListByPeriod(ctx context.Context, period Period) ([]PayrollRecord, error)

	// MarkPaid flips an unpaid record to paid; ErrPayrollRecordAlreadyPaid otherwise.
	MarkPaid(ctx context.Context, req MarkPaidRequest) (PayrollRecord, error)

	// DeletePayrollRecord removes an unpaid record; ErrCannotDeletePaidRecord otherwise.
	DeletePayrollRecord(ctx context.Context, id string) error
}
