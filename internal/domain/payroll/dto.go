package payroll

import (
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== PAYROLL RECORD DTOs ==========

type MarkPaidRequest struct {
	ID               string  `json:"-"`
	PaidBy           string  `json:"-"`
	PaymentMethod    string  `json:"payment_method"`
	PaymentReference *string `json:"payment_reference,omitempty"`
}

var paymentMethods = []string{"bank_transfer", "cash", "e_wallet"}

func (r *MarkPaidRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "must be a valid UUID")
	}
	if !validator.IsInSlice(r.PaymentMethod, paymentMethods) {
		errs.Add("payment_method", "must be one of bank_transfer, cash, e_wallet")
	}
	if r.PaymentReference != nil && len(*r.PaymentReference) > 100 {
		errs.Add("payment_reference", "must be at most 100 characters")
	}

	return errs.Err()
}

type PayrollFilter struct {
	Month      *int    `json:"month,omitempty"`
	Year       *int    `json:"year,omitempty"`
	Status     *string `json:"status,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

func (f *PayrollFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	if f.Month != nil && (*f.Month < 1 || *f.Month > 12) {
		errs.Add("month", "must be between 1 and 12")
	}
	if f.Year != nil && *f.Year < 2000 {
		errs.Add("year", "must be 2000 or later")
	}
	if f.Status != nil && *f.Status != string(PayrollStatusUnpaid) && *f.Status != string(PayrollStatusPaid) {
		errs.Add("status", "must be 'unpaid' or 'paid'")
	}
	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs.Add("employee_id", "must be a valid UUID")
	}

	return errs.Err()
}

func (p Period) Validate() error {
	var errs validator.ValidationErrors

	if p.Month < 1 || p.Month > 12 {
		errs.Add("month", "must be between 1 and 12")
	}
	if p.Year < 2000 || p.Year > 9999 {
		errs.Add("year", "must be a four-digit year")
	}

	return errs.Err()
}

type PayrollRecordResponse struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	EmployeeName     *string         `json:"employee_name,omitempty"`
	Month            int             `json:"month"`
	Year             int             `json:"year"`
	BaseSalary       decimal.Decimal `json:"base_salary"`
	WorkingDays      int             `json:"working_days"`
	PresentDays      int             `json:"present_days"`
	LateDays         int             `json:"late_days"`
	AbsentDays       int             `json:"absent_days"`
	SickDays         int             `json:"sick_days"`
	LeaveDays        int             `json:"leave_days"`
	Deductions       decimal.Decimal `json:"deductions"`
	Bonus            decimal.Decimal `json:"bonus"`
	Tax              decimal.Decimal `json:"tax"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Status           string          `json:"status"`
	PaymentMethod    *string         `json:"payment_method,omitempty"`
	PaymentReference *string         `json:"payment_reference,omitempty"`
	PaidAt           *time.Time      `json:"paid_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

type ListPayrollRecordResponse struct {
	Data       []PayrollRecordResponse `json:"data"`
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
}

// GenerationResult summarizes one run of the payroll generator.
type GenerationResult struct {
	Period           Period `json:"period"`
	AttendancePeriod Period `json:"attendance_period"`
	Created          int    `json:"created"`
	Skipped          int    `json:"skipped"`
	Failed           int    `json:"failed"`
}

func ToResponse(r PayrollRecord) PayrollRecordResponse {
	return PayrollRecordResponse{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		EmployeeName:     r.EmployeeName,
		Month:            r.Month,
		Year:             r.Year,
		BaseSalary:       r.BaseSalary,
		WorkingDays:      r.WorkingDays,
		PresentDays:      r.PresentDays,
		LateDays:         r.LateDays,
		AbsentDays:       r.AbsentDays,
		SickDays:         r.SickDays,
		LeaveDays:        r.LeaveDays,
		Deductions:       r.Deductions,
		Bonus:            r.Bonus,
		Tax:              r.Tax,
		TotalAmount:      r.TotalAmount,
		Status:           string(r.Status),
		PaymentMethod:    r.PaymentMethod,
		PaymentReference: r.PaymentReference,
		PaidAt:           r.PaidAt,
		CreatedAt:        r.CreatedAt,
	}
}
