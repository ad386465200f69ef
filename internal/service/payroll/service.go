package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/email"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/export"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/validator"
)

// PeriodGenerator is satisfied by Generator.
type PeriodGenerator interface {
	Generate(ctx context.Context, now time.Time) (payroll.GenerationResult, error)
}

type PayrollServiceImpl struct {
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	generator    PeriodGenerator
	emailService email.EmailService
	now          func() time.Time

	// mail tracks payslip sends still in flight.
	mail sync.WaitGroup
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	generator PeriodGenerator,
	emailService email.EmailService,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		generator:    generator,
		emailService: emailService,
		now:          time.Now,
	}
}

func (s *PayrollServiceImpl) ListPayrollRecords(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollRecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}

	records, total, err := s.payrollRepo.ListPayrollRecords(ctx, filter)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}

	data := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		data = append(data, payroll.ToResponse(r))
	}

	return payroll.ListPayrollRecordResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) ListMyPayrollRecords(ctx context.Context, employeeID string, filter payroll.PayrollFilter) (payroll.ListPayrollRecordResponse, error) {
	filter.EmployeeID = &employeeID
	return s.ListPayrollRecords(ctx, filter)
}

func (s *PayrollServiceImpl) GetPayrollRecord(ctx context.Context, id string, viewerID string, viewAll bool) (payroll.PayrollRecordResponse, error) {
	if !validator.IsValidUUID(id) {
		return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordNotFound
	}

	record, err := s.payrollRepo.GetPayrollRecordByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	if !viewAll && record.EmployeeID != viewerID {
		return payroll.PayrollRecordResponse{}, payroll.ErrUnauthorized
	}

	return payroll.ToResponse(record), nil
}

// MarkPaid records the payment and notifies the employee in the background.
// Mail failures are logged only; the payment stands.
func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, req payroll.MarkPaidRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := s.payrollRepo.MarkPaid(ctx, req)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	if s.emailService != nil {
		s.mail.Add(1)
		go func() {
			defer s.mail.Done()
			s.sendPayslip(context.WithoutCancel(ctx), record)
		}()
	}

	return payroll.ToResponse(record), nil
}

// WaitMail blocks until every payslip send started by MarkPaid has finished.
func (s *PayrollServiceImpl) WaitMail() {
	s.mail.Wait()
}

func (s *PayrollServiceImpl) sendPayslip(ctx context.Context, record payroll.PayrollRecord) {

	emp, err := s.employeeRepo.GetByID(ctx, record.EmployeeID)
	if err != nil {
		slog.Warn("Payslip not sent, employee lookup failed", "payroll_id", record.ID, "error", err)
		return
	}

	slip := email.Payslip{
		EmployeeName: emp.Name,
		Period:       fmt.Sprintf("%04d-%02d", record.Year, record.Month),
		BaseSalary:   record.BaseSalary.StringFixed(2),
		WorkingDays:  record.WorkingDays,
		Deductions:   record.Deductions.StringFixed(2),
		Bonus:        record.Bonus.StringFixed(2),
		Tax:          record.Tax.StringFixed(2),
		TotalAmount:  record.TotalAmount.StringFixed(2),
	}
	if record.PaymentMethod != nil {
		slip.PaymentMethod = *record.PaymentMethod
	}
	if record.PaymentReference != nil {
		slip.PaymentReference = *record.PaymentReference
	}

	if err := s.emailService.SendPayslip(emp.Email, slip); err != nil {
		slog.Error("Failed to send payslip", "payroll_id", record.ID, "employee_id", emp.ID, "error", err)
	}
}

func (s *PayrollServiceImpl) DeletePayrollRecord(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return payroll.ErrPayrollRecordNotFound
	}
	return s.payrollRepo.DeletePayrollRecord(ctx, id)
}

func (s *PayrollServiceImpl) GenerateCurrentPeriod(ctx context.Context) (payroll.GenerationResult, error) {
	return s.generator.Generate(ctx, s.now())
}

func (s *PayrollServiceImpl) ExportPeriod(ctx context.Context, period payroll.Period) ([]byte, string, error) {
	if err := period.Validate(); err != nil {
		return nil, "", err
	}

	records, err := s.payrollRepo.ListByPeriod(ctx, period)
	if err != nil {
		return nil, "", err
	}

	data, err := export.PayrollWorkbook(period, records)
	if err != nil {
		return nil, "", err
	}

	return data, export.PayrollFileName(period), nil
}
