package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/attendance"
)

type AggregatorImpl struct {
	attendanceRepo attendance.AttendanceRepository
}

func NewAggregator(attendanceRepo attendance.AttendanceRepository) attendance.Aggregator {
	return &AggregatorImpl{attendanceRepo: attendanceRepo}
}

// Aggregate tallies the employee's records in [start, end]. Working days with no
// record count as absent: AbsentDays = explicit absences + (totalWorkingDays - records found).
func (a *AggregatorImpl) Aggregate(ctx context.Context, employeeID string, start, end time.Time, totalWorkingDays int) (attendance.Summary, error) {
	records, err := a.attendanceRepo.ListByEmployeeBetween(ctx, employeeID, start, end)
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("failed to load attendance for %s: %w", employeeID, err)
	}

	return Tally(records, totalWorkingDays), nil
}

// Tally folds records into a Summary. MissingDays is not clamped: records on
// non-working days make it negative and reduce the absent count accordingly.
func Tally(records []attendance.Attendance, totalWorkingDays int) attendance.Summary {
	var s attendance.Summary
	for _, r := range records {
		switch r.Status {
		case attendance.StatusAbsent:
			s.AbsentDays++
		case attendance.StatusLate:
			s.LateDays++
		case attendance.StatusPresent:
			s.PresentDays++
		case attendance.StatusSick:
			s.SickDays++
		case attendance.StatusLeave:
			s.LeaveDays++
		}
	}

	s.RecordsFound = len(records)
	s.MissingDays = totalWorkingDays - s.RecordsFound
	s.AbsentDays += s.MissingDays
	s.TotalValidDays = s.PresentDays + s.SickDays + s.LeaveDays

	return s
}
