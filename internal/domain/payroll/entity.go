package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusUnpaid PayrollStatus = "unpaid"
	PayrollStatusPaid   PayrollStatus = "paid"
)

// PayrollRecord is one employee's payout for a (month, year) period.
// Attendance figures come from the month preceding the period.
type PayrollRecord struct {
	ID          string
	EmployeeID  string
	Month       int
	Year        int
	BaseSalary  decimal.Decimal
	WorkingDays int
	PresentDays int
	LateDays    int
	AbsentDays  int
	SickDays    int
	LeaveDays   int
	Deductions  decimal.Decimal
	Bonus       decimal.Decimal
	Tax         decimal.Decimal
	TotalAmount decimal.Decimal
	Status      PayrollStatus

	PaymentMethod    *string
	PaymentReference *string
	PaidAt           *time.Time
	PaidBy           *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName  *string
	EmployeeEmail *string
}

// Period is a payroll (month, year) pair.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Month: int(t.Month()), Year: t.Year()}
}

// Previous returns the period one month earlier.
func (p Period) Previous() Period {
	if p.Month == 1 {
		return Period{Month: 12, Year: p.Year - 1}
	}
	return Period{Month: p.Month - 1, Year: p.Year}
}

// Bounds returns the first and last calendar day of the period in loc.
func (p Period) Bounds(loc *time.Location) (time.Time, time.Time) {
	start := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, -1)
	return start, end
}
