package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/payroll"
)

const (
	AutoPayrollJob = "auto_payroll"

	autoPayrollDay = 1
)

// PayrollGenerator is satisfied by the payroll generator service.
type PayrollGenerator interface {
	Generate(ctx context.Context, now time.Time) (payroll.GenerationResult, error)
}

type PayrollJobs struct {
	generator PayrollGenerator
	now       func() time.Time
}

func NewPayrollJobs(generator PayrollGenerator) *PayrollJobs {
	return &PayrollJobs{generator: generator, now: time.Now}
}

// RegisterJobs schedules payroll generation on the first of every month at clock (HH:MM) in loc.
func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler, clock string, loc *time.Location) error {
	trigger, err := MonthlyAt(autoPayrollDay, clock, loc)
	if err != nil {
		return fmt.Errorf("auto payroll trigger: %w", err)
	}
	return scheduler.AddJob(AutoPayrollJob, trigger, j.GeneratePayroll)
}

func (j *PayrollJobs) GeneratePayroll(ctx context.Context) error {
	_, err := j.generator.Generate(ctx, j.now())
	return err
}
