package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusSick    Status = "sick"
	StatusLeave   Status = "leave"
	StatusAbsent  Status = "absent"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusSick, StatusLeave, StatusAbsent:
		return true
	}
	return false
}

// IsSelfReportable reports whether an employee may submit this status.
// Absences are only written by administrators or the auto-absence job.
func (s Status) IsSelfReportable() bool {
	return s.IsValid() && s != StatusAbsent
}

// AutoAbsenceNote is stored on records inserted by the auto-absence job.
const AutoAbsenceNote = "Automatically marked absent: no attendance recorded by end of business day"

type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Status     Status
	Note       *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName *string
}

// Summary is the per-status tally of an employee's attendance over a range.
// AbsentDays already includes MissingDays.
type Summary struct {
	AbsentDays     int `json:"absent_days"`
	LateDays       int `json:"late_days"`
	PresentDays    int `json:"present_days"`
	SickDays       int `json:"sick_days"`
	LeaveDays      int `json:"leave_days"`
	TotalValidDays int `json:"total_valid_days"`

	RecordsFound int `json:"records_found"`
	MissingDays  int `json:"missing_days"`
}
