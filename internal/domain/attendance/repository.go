package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// The (employee_id, date) pair is unique at the storage layer.
type AttendanceRepository interface {
	// Create inserts a record and returns ErrAlreadyRecordedToday on a duplicate day.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// CreateIfAbsent inserts a record unless one exists for the same employee and
	// day. It reports whether a row was written.
	CreateIfAbsent(ctx context.Context, attendance Attendance) (bool, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// ExistsForDate checks whether the employee already has a record on date.
	ExistsForDate(ctx context.Context, employeeID string, date time.Time) (bool, error)

	// ListByEmployeeBetween returns all records of an employee with start <= date <= end.
	ListByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error)

	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
	Update(ctx context.Context, req UpdateAttendanceRequest) error
	Delete(ctx context.Context, id string) error
}
