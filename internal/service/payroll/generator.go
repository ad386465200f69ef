package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// WorkingDayCounter is satisfied by workday.Calculator.
type WorkingDayCounter interface {
	WorkingDays(ctx context.Context, start, end time.Time) int
}

// Generator creates the monthly payroll records. Records belong to the month of
// the run and are computed from the previous month's attendance.
type Generator struct {
	employeeRepo employee.EmployeeRepository
	payrollRepo  payroll.PayrollRepository
	workdays     WorkingDayCounter
	aggregator   attendance.Aggregator
	loc          *time.Location
}

func NewGenerator(
	employeeRepo employee.EmployeeRepository,
	payrollRepo payroll.PayrollRepository,
	workdays WorkingDayCounter,
	aggregator attendance.Aggregator,
	loc *time.Location,
) *Generator {
	return &Generator{
		employeeRepo: employeeRepo,
		payrollRepo:  payrollRepo,
		workdays:     workdays,
		aggregator:   aggregator,
		loc:          loc,
	}
}

var errAlreadyGenerated = errors.New("payroll already generated")

// Generate processes every active employee. A failure for one employee is
// logged and counted; only a roster lookup failure aborts the run.
func (g *Generator) Generate(ctx context.Context, now time.Time) (payroll.GenerationResult, error) {
	period := payroll.PeriodOf(now.In(g.loc))
	source := period.Previous()
	result := payroll.GenerationResult{Period: period, AttendancePeriod: source}

	slog.Info("Cron: Starting auto payroll generation", "month", period.Month, "year", period.Year)

	roster, err := g.employeeRepo.GetAutomationRoster(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to get employee roster: %w", err)
	}

	start, end := source.Bounds(g.loc)

	for _, emp := range roster {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		err := g.generateOne(ctx, emp, period, start, end)
		switch {
		case err == nil:
			result.Created++
		case errors.Is(err, errAlreadyGenerated):
			result.Skipped++
		default:
			result.Failed++
			slog.Error("Cron: Failed to generate payroll", "employee_id", emp.ID, "error", err)
		}
	}

	slog.Info("Cron: Auto payroll generation finished",
		"month", period.Month,
		"year", period.Year,
		"created", result.Created,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)

	return result, nil
}

func (g *Generator) generateOne(ctx context.Context, emp employee.Employee, period payroll.Period, start, end time.Time) error {
	exists, err := g.payrollRepo.ExistsForPeriod(ctx, emp.ID, period)
	if err != nil {
		return fmt.Errorf("failed to check existing payroll: %w", err)
	}
	if exists {
		return errAlreadyGenerated
	}

	totalWorkingDays := g.workdays.WorkingDays(ctx, start, end)

	summary, err := g.aggregator.Aggregate(ctx, emp.ID, start, end, totalWorkingDays)
	if err != nil {
		return err
	}

	calc, err := Calculate(CalculationInput{
		BaseSalary:       emp.BaseSalary.InexactFloat64(),
		TotalWorkingDays: totalWorkingDays,
		Attendance:       summary,
	})
	if err != nil {
		return fmt.Errorf("invalid payroll input: %w", err)
	}

	_, err = g.payrollRepo.CreatePayrollRecord(ctx, payroll.PayrollRecord{
		EmployeeID:  emp.ID,
		Month:       period.Month,
		Year:        period.Year,
		BaseSalary:  emp.BaseSalary,
		WorkingDays: totalWorkingDays,
		PresentDays: summary.PresentDays,
		LateDays:    summary.LateDays,
		AbsentDays:  summary.AbsentDays,
		SickDays:    summary.SickDays,
		LeaveDays:   summary.LeaveDays,
		Deductions:  decimal.NewFromFloat(calc.Deductions),
		Bonus:       decimal.NewFromFloat(calc.Bonus),
		Tax:         decimal.NewFromFloat(calc.Tax),
		TotalAmount: decimal.NewFromFloat(calc.TotalAmount),
		Status:      payroll.PayrollStatusUnpaid,
	})
	if errors.Is(err, payroll.ErrPayrollRecordAlreadyExists) {
		// Lost a race with a concurrent run; the unique key decided.
		return errAlreadyGenerated
	}
	if err != nil {
		return fmt.Errorf("failed to create payroll record: %w", err)
	}

	return nil
}
