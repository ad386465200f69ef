package attendance

import "errors"

var (
	ErrAttendanceNotFound      = errors.New("attendance record not found")
	ErrAlreadyRecordedToday    = errors.New("attendance already recorded for this date")
	ErrStatusNotSelfReportable = errors.New("absent status cannot be self-reported")
	ErrUnauthorized            = errors.New("unauthorized to access this attendance record")
)
