package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// Record stores today's self-reported attendance for the employee
	Record(ctx context.Context, req RecordAttendanceRequest) (AttendanceResponse, error)

	// GetMyAttendance retrieves attendance records for the authenticated employee
	GetMyAttendance(ctx context.Context, employeeID string, filter AttendanceFilter) (ListAttendanceResponse, error)

	// ListAttendance retrieves attendance records with filters (admin)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
	DeleteAttendance(ctx context.Context, id string) error

	// Summarize aggregates one employee's month against its working days
	Summarize(ctx context.Context, req SummaryRequest) (SummaryResponse, error)
}

// Aggregator tallies attendance over a closed date range.
type Aggregator interface {
	Aggregate(ctx context.Context, employeeID string, start, end time.Time, totalWorkingDays int) (Summary, error)
}
