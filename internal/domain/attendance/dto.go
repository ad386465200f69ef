package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type RecordAttendanceRequest struct {
	EmployeeID string  `json:"-"`
	Status     string  `json:"status"`
	Note       *string `json:"note,omitempty"`
}

func (r *RecordAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}

	status := Status(r.Status)
	if !status.IsValid() {
		errs.Add("status", "status must be one of present, late, sick, leave")
	} else if !status.IsSelfReportable() {
		errs.Add("status", ErrStatusNotSelfReportable.Error())
	}

	if r.Note != nil && len(*r.Note) > 500 {
		errs.Add("note", "note must be at most 500 characters")
	}

	return errs.Err()
}

type UpdateAttendanceRequest struct {
	ID     string  `json:"-"`
	Status *string `json:"status,omitempty"`
	Note   *string `json:"note,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "must be a valid UUID")
	}
	if r.Status != nil && !Status(*r.Status).IsValid() {
		errs.Add("status", "status must be one of present, late, sick, leave, absent")
	}
	if r.Note != nil && len(*r.Note) > 500 {
		errs.Add("note", "note must be at most 500 characters")
	}

	return errs.Err()
}

type AttendanceFilter struct {
	EmployeeID *string
	Status     *string
	StartDate  *string
	EndDate    *string
	Page       int
	Limit      int
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs.Add("employee_id", "must be a valid UUID")
	}
	if f.Status != nil && !Status(*f.Status).IsValid() {
		errs.Add("status", "invalid status")
	}

	var start, end time.Time
	var startOK, endOK bool
	if f.StartDate != nil {
		if start, startOK = validator.IsValidDate(*f.StartDate); !startOK {
			errs.Add("start_date", "start_date must be YYYY-MM-DD")
		}
	}
	if f.EndDate != nil {
		if end, endOK = validator.IsValidDate(*f.EndDate); !endOK {
			errs.Add("end_date", "end_date must be YYYY-MM-DD")
		}
	}
	if startOK && endOK && end.Before(start) {
		errs.Add("end_date", "end_date must not be before start_date")
	}

	return errs.Err()
}

type SummaryRequest struct {
	EmployeeID string
	Month      int
	Year       int
}

func (r *SummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "must be a valid UUID")
	}
	if r.Month < 1 || r.Month > 12 {
		errs.Add("month", "must be between 1 and 12")
	}
	if r.Year < 2000 || r.Year > 9999 {
		errs.Add("year", "must be a four-digit year")
	}

	return errs.Err()
}

type AttendanceResponse struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName *string   `json:"employee_name,omitempty"`
	Date         string    `json:"date"`
	Status       string    `json:"status"`
	Note         *string   `json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ListAttendanceResponse struct {
	Attendances []AttendanceResponse `json:"attendances"`
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
}

type SummaryResponse struct {
	EmployeeID  string  `json:"employee_id"`
	Month       int     `json:"month"`
	Year        int     `json:"year"`
	WorkingDays int     `json:"working_days"`
	Summary     Summary `json:"summary"`
}

func ToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		Date:         a.Date.Format(validator.DateLayout),
		Status:       string(a.Status),
		Note:         a.Note,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
