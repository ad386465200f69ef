package payroll

import (
	"math"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/validator"
)

const (
	// LateDeductionFactor is the share of a day's pay deducted per late day.
	LateDeductionFactor = 0.5
	BonusRate           = 0.2
	TaxRate             = 0.05

	// BonusToleranceDays is how many working days short of full attendance still earn the bonus window.
	BonusToleranceDays = 2
)

type CalculationInput struct {
	BaseSalary       float64
	TotalWorkingDays int
	Attendance       attendance.Summary
}

func (in CalculationInput) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsPositiveAmount(in.BaseSalary) {
		errs.Add("base_salary", "must be a positive finite number")
	}
	if in.TotalWorkingDays <= 0 {
		errs.Add("total_working_days", "must be greater than zero")
	}

	return errs.Err()
}

type Calculation struct {
	AbsentDeduction float64
	LateDeduction   float64
	Deductions      float64
	Bonus           float64
	Tax             float64
	TotalAmount     float64
}

// Calculate applies the payroll formulas:
//
//	absent    = base / days * absentDays
//	late      = 0.5 * base / days * lateDays
//	bonus     = base * 0.2 when validDays > days - 2
//	tax       = base * 0.05
//	total     = base - tax - (absent + late) + bonus
//
// TotalAmount is not floored and may be negative.
func Calculate(in CalculationInput) (Calculation, error) {
	if err := in.Validate(); err != nil {
		return Calculation{}, err
	}

	days := float64(in.TotalWorkingDays)
	var c Calculation

	c.AbsentDeduction = (in.BaseSalary / days) * float64(in.Attendance.AbsentDays)
	c.LateDeduction = (LateDeductionFactor * in.BaseSalary / days) * float64(in.Attendance.LateDays)
	c.Deductions = c.AbsentDeduction + c.LateDeduction

	if in.Attendance.TotalValidDays > in.TotalWorkingDays-BonusToleranceDays {
		c.Bonus = in.BaseSalary * BonusRate
	}

	c.Tax = in.BaseSalary * TaxRate
	c.TotalAmount = in.BaseSalary - c.Tax - c.Deductions + c.Bonus

	if math.IsNaN(c.TotalAmount) || math.IsInf(c.TotalAmount, 0) {
		return Calculation{}, validator.ValidationErrors{{Field: "total_amount", Message: "calculation overflowed"}}
	}

	return c, nil
}
