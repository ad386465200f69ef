package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/service/absence"
)

const AutoAbsenceJob = "auto_absence"

// AbsenceMarker is satisfied by absence.Marker.
type AbsenceMarker interface {
	MarkAbsent(ctx context.Context, now time.Time) (absence.MarkResult, error)
}

type AttendanceJobs struct {
	marker AbsenceMarker
	now    func() time.Time
}

func NewAttendanceJobs(marker AbsenceMarker) *AttendanceJobs {
	return &AttendanceJobs{marker: marker, now: time.Now}
}

// RegisterJobs schedules auto absence daily at clock (HH:MM) in loc.
func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, clock string, loc *time.Location) error {
	trigger, err := DailyAt(clock, loc)
	if err != nil {
		return fmt.Errorf("auto absence trigger: %w", err)
	}
	return scheduler.AddJob(AutoAbsenceJob, trigger, j.MarkAbsentEmployees)
}

func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	_, err := j.marker.MarkAbsent(ctx, j.now())
	return err
}
