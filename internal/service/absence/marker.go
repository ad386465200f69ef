package absence

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/holiday"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/service/workday"
)

const (
	SkipWeekend = "weekend"
	SkipHoliday = "national_holiday"
)

// MarkResult summarizes one auto-absence run.
type MarkResult struct {
	Date          string `json:"date"`
	Marked        int    `json:"marked"`
	Skipped       int    `json:"skipped"`
	Failed        int    `json:"failed"`
	SkippedReason string `json:"skipped_reason,omitempty"`
}

// Marker writes an absent record for every active employee who has not
// reported attendance by the end of the business day.
type Marker struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	holidays       holiday.Provider
	loc            *time.Location
}

func NewMarker(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	holidays holiday.Provider,
	loc *time.Location,
) *Marker {
	return &Marker{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		holidays:       holidays,
		loc:            loc,
	}
}

// MarkAbsent runs for the calendar day of now. Weekends and national holidays
// are skipped. If the holiday calendar cannot be reached the day is treated as
// a working day. Re-running on the same day writes nothing new.
func (m *Marker) MarkAbsent(ctx context.Context, now time.Time) (MarkResult, error) {
	local := now.In(m.loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, m.loc)
	result := MarkResult{Date: holiday.DateKey(today)}

	if workday.IsWeekend(today) {
		result.SkippedReason = SkipWeekend
		slog.Info("Cron: Skipping auto absence on weekend", "date", result.Date)
		return result, nil
	}

	isHoliday, err := holiday.IsNationalHoliday(ctx, m.holidays, today)
	if err != nil {
		slog.Warn("Cron: Holiday check failed, marking absences anyway", "date", result.Date, "error", err)
	} else if isHoliday {
		result.SkippedReason = SkipHoliday
		slog.Info("Cron: Skipping auto absence on national holiday", "date", result.Date)
		return result, nil
	}

	roster, err := m.employeeRepo.GetAutomationRoster(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to get employee roster: %w", err)
	}

	slog.Info("Cron: Starting auto absence marking", "date", result.Date, "employees", len(roster))

	note := attendance.AutoAbsenceNote
	for _, emp := range roster {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		exists, err := m.attendanceRepo.ExistsForDate(ctx, emp.ID, today)
		if err != nil {
			result.Failed++
			slog.Error("Cron: Failed to check attendance", "employee_id", emp.ID, "error", err)
			continue
		}
		if exists {
			result.Skipped++
			continue
		}

		created, err := m.attendanceRepo.CreateIfAbsent(ctx, attendance.Attendance{
			EmployeeID: emp.ID,
			Date:       today,
			Status:     attendance.StatusAbsent,
			Note:       &note,
		})
		if err != nil {
			result.Failed++
			slog.Error("Cron: Failed to mark absent", "employee_id", emp.ID, "error", err)
			continue
		}
		if created {
			result.Marked++
		} else {
			result.Skipped++
		}
	}

	slog.Info("Cron: Auto absence marking finished",
		"date", result.Date,
		"marked", result.Marked,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)

	return result, nil
}
