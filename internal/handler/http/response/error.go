package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/submission"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/storage"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/service/file"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, jwt.ErrMissingClaims):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token has been revoked")
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, "Account is inactive")
	case errors.Is(err, auth.ErrForbidden):
		Forbidden(w, "Insufficient permissions")

	// Employee
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrCannotDeleteSelf):
		BadRequest(w, "You cannot delete your own account", nil)

	// Attendance
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyRecordedToday):
		Conflict(w, "Attendance already recorded for today")
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, "You are not allowed to record attendance")

	// Payroll
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyExists):
		Conflict(w, "Payroll record already exists for this period")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyPaid):
		Conflict(w, "Payroll record already paid")
	case errors.Is(err, payroll.ErrCannotDeletePaidRecord):
		Conflict(w, "Paid payroll records cannot be deleted")
	case errors.Is(err, payroll.ErrUnauthorized):
		Forbidden(w, "You are not allowed to view this payroll record")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)

	// Submission
	case errors.Is(err, submission.ErrSubmissionNotFound):
		NotFound(w, "Submission not found")
	case errors.Is(err, submission.ErrSubmissionAlreadyProcessed):
		Conflict(w, "Submission already processed")

	// Uploads
	case errors.Is(err, file.ErrInvalidFileType), errors.Is(err, file.ErrEmptyFile), errors.Is(err, storage.ErrInvalidPath):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, file.ErrFileTooLarge), errors.Is(err, file.ErrImageTooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, Response{
			Success: false,
			Error:   &ErrorDetail{Code: "FILE_TOO_LARGE", Message: err.Error()},
		})
	case errors.Is(err, storage.ErrFileNotFound):
		NotFound(w, "File not found")

	// Jobs
	case errors.Is(err, cron.ErrJobNotFound):
		NotFound(w, "Job not found")
	case errors.Is(err, cron.ErrJobRunning):
		Conflict(w, "Job is already running")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
