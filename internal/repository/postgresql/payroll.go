package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

const payrollColumns = `
	p.id, p.employee_id, p.month, p.year, p.base_salary, p.working_days,
	p.present_days, p.late_days, p.absent_days, p.sick_days, p.leave_days,
	p.deductions, p.bonus, p.tax, p.total_amount, p.status,
	p.payment_method, p.payment_reference, p.paid_at, p.paid_by,
	p.created_at, p.updated_at, u.name, u.email`

func scanPayroll(row pgx.Row) (payroll.PayrollRecord, error) {
	var p payroll.PayrollRecord
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.Month, &p.Year, &p.BaseSalary, &p.WorkingDays,
		&p.PresentDays, &p.LateDays, &p.AbsentDays, &p.SickDays, &p.LeaveDays,
		&p.Deductions, &p.Bonus, &p.Tax, &p.TotalAmount, &p.Status,
		&p.PaymentMethod, &p.PaymentReference, &p.PaidAt, &p.PaidBy,
		&p.CreatedAt, &p.UpdatedAt, &p.EmployeeName, &p.EmployeeEmail,
	)
	return p, err
}

func (r *payrollRepositoryImpl) CreatePayrollRecord(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payrolls (
			employee_id, month, year, base_salary, working_days,
			present_days, late_days, absent_days, sick_days, leave_days,
			deductions, bonus, tax, total_amount, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, status, created_at, updated_at
	`

	status := record.Status
	if status == "" {
		status = payroll.PayrollStatusUnpaid
	}

	err := q.QueryRow(ctx, query,
		record.EmployeeID, record.Month, record.Year, record.BaseSalary, record.WorkingDays,
		record.PresentDays, record.LateDays, record.AbsentDays, record.SickDays, record.LeaveDays,
		record.Deductions, record.Bonus, record.Tax, record.TotalAmount, status,
	).Scan(&record.ID, &record.Status, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "uk_payroll_employee_period") {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return record, nil
}

func (r *payrollRepositoryImpl) ExistsForPeriod(ctx context.Context, employeeID string, period payroll.Period) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM payrolls WHERE employee_id = $1 AND month = $2 AND year = $3)`,
		employeeID, period.Month, period.Year,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check payroll of %s: %w", employeeID, err)
	}
	return exists, nil
}

func (r *payrollRepositoryImpl) GetPayrollRecordByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + `
		FROM payrolls p
		LEFT JOIN users u ON u.id = p.employee_id
		WHERE p.id = $1`

	p, err := scanPayroll(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record %s: %w", id, err)
	}
	return p, nil
}

func (r *payrollRepositoryImpl) ListPayrollRecords(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND p.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Month != nil {
		baseWhere += fmt.Sprintf(" AND p.month = $%d", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.Year != nil {
		baseWhere += fmt.Sprintf(" AND p.year = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND p.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM payrolls p WHERE "+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM payrolls p
		LEFT JOIN users u ON u.id = p.employee_id
		WHERE %s
		ORDER BY p.year DESC, p.month DESC, u.name ASC
		LIMIT $%d OFFSET $%d
	`, payrollColumns, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, pageOffset(filter.Page, filter.Limit))

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *payrollRepositoryImpl) ListByPeriod(ctx context.Context, period payroll.Period) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + `
		FROM payrolls p
		LEFT JOIN users u ON u.id = p.employee_id
		WHERE p.month = $1 AND p.year = $2
		ORDER BY u.name ASC`

	rows, err := q.Query(ctx, query, period.Month, period.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll period %d-%02d: %w", period.Year, period.Month, err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, p)
	}

	return records, rows.Err()
}

func (r *payrollRepositoryImpl) MarkPaid(ctx context.Context, req payroll.MarkPaidRequest) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	var id string
	err := q.QueryRow(ctx, `
		UPDATE payrolls
		SET status = $1, payment_method = $2, payment_reference = $3, paid_by = $4,
			paid_at = NOW(), updated_at = NOW()
		WHERE id = $5 AND status = $6
		RETURNING id
	`, payroll.PayrollStatusPaid, req.PaymentMethod, req.PaymentReference, nullableID(req.PaidBy),
		req.ID, payroll.PayrollStatusUnpaid,
	).Scan(&id)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, fmt.Errorf("failed to mark payroll record %s paid: %w", req.ID, err)
		}
		// Either missing or already paid.
		if _, getErr := r.GetPayrollRecordByID(ctx, req.ID); getErr != nil {
			return payroll.PayrollRecord{}, getErr
		}
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyPaid
	}

	return r.GetPayrollRecordByID(ctx, id)
}

func (r *payrollRepositoryImpl) DeletePayrollRecord(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, "DELETE FROM payrolls WHERE id = $1 AND status = $2", id, payroll.PayrollStatusUnpaid)
	if err != nil {
		return fmt.Errorf("failed to delete payroll record %s: %w", id, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	if _, err := r.GetPayrollRecordByID(ctx, id); err != nil {
		return err
	}
	return payroll.ErrCannotDeletePaidRecord
}

func nullableID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
