package submission

import (
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/validator"
)

type CreateSubmissionRequest struct {
	EmployeeID    string  `json:"-"`
	Type          string  `json:"type"`
	Reason        string  `json:"reason"`
	StartDate     *string `json:"start_date,omitempty"`
	EndDate       *string `json:"end_date,omitempty"`
	AttachmentURL *string `json:"attachment_url,omitempty"`

	// Parsed by Validate
	start *time.Time
	end   *time.Time
}

func (r *CreateSubmissionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "is required")
	}
	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "is required")
	}

	switch Type(r.Type) {
	case TypeLeave:
		if r.StartDate == nil || r.EndDate == nil {
			errs.Add("start_date", "start_date and end_date are required for leave")
			break
		}
		start, startOK := validator.IsValidDate(*r.StartDate)
		end, endOK := validator.IsValidDate(*r.EndDate)
		if !startOK {
			errs.Add("start_date", "start_date must be YYYY-MM-DD")
		}
		if !endOK {
			errs.Add("end_date", "end_date must be YYYY-MM-DD")
		}
		if startOK && endOK {
			if end.Before(start) {
				errs.Add("end_date", "end_date must not be before start_date")
			}
			r.start, r.end = &start, &end
		}
	case TypeResignation:
		// An optional effective date is carried in start_date.
		if r.StartDate != nil {
			start, ok := validator.IsValidDate(*r.StartDate)
			if !ok {
				errs.Add("start_date", "start_date must be YYYY-MM-DD")
			} else {
				r.start = &start
			}
		}
	default:
		errs.Add("type", "must be 'leave' or 'resignation'")
	}

	return errs.Err()
}

// Dates returns the parsed range after a successful Validate.
func (r *CreateSubmissionRequest) Dates() (*time.Time, *time.Time) {
	return r.start, r.end
}

type ReviewSubmissionRequest struct {
	ID         string  `json:"-"`
	ReviewerID string  `json:"-"`
	Status     Status  `json:"-"`
	Note       *string `json:"note,omitempty"`
}

func (r *ReviewSubmissionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "must be a valid UUID")
	}
	if r.Status != StatusApproved && r.Status != StatusRejected {
		errs.Add("status", "must be 'approved' or 'rejected'")
	}
	if r.Status == StatusRejected && (r.Note == nil || validator.IsEmpty(*r.Note)) {
		errs.Add("note", "a note is required when rejecting")
	}

	return errs.Err()
}

type SubmissionFilter struct {
	EmployeeID *string
	Type       *string
	Status     *string
	Page       int
	Limit      int
}

func (f *SubmissionFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Type != nil && Type(*f.Type) != TypeLeave && Type(*f.Type) != TypeResignation {
		errs.Add("type", "must be 'leave' or 'resignation'")
	}
	if f.Status != nil {
		switch Status(*f.Status) {
		case StatusPending, StatusApproved, StatusRejected:
		default:
			errs.Add("status", "must be pending, approved or rejected")
		}
	}
	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs.Add("employee_id", "must be a valid UUID")
	}

	return errs.Err()
}

type SubmissionResponse struct {
	ID            string     `json:"id"`
	EmployeeID    string     `json:"employee_id"`
	EmployeeName  *string    `json:"employee_name,omitempty"`
	Type          string     `json:"type"`
	Reason        string     `json:"reason"`
	StartDate     *string    `json:"start_date,omitempty"`
	EndDate       *string    `json:"end_date,omitempty"`
	AttachmentURL *string    `json:"attachment_url,omitempty"`
	Status        string     `json:"status"`
	ReviewedBy    *string    `json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	ReviewNote    *string    `json:"review_note,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type ListSubmissionResponse struct {
	Submissions []SubmissionResponse `json:"submissions"`
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
}

func ToResponse(s Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:            s.ID,
		EmployeeID:    s.EmployeeID,
		EmployeeName:  s.EmployeeName,
		Type:          string(s.Type),
		Reason:        s.Reason,
		StartDate:     formatDate(s.StartDate),
		EndDate:       formatDate(s.EndDate),
		AttachmentURL: s.AttachmentURL,
		Status:        string(s.Status),
		ReviewedBy:    s.ReviewedBy,
		ReviewedAt:    s.ReviewedAt,
		ReviewNote:    s.ReviewNote,
		CreatedAt:     s.CreatedAt,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(validator.DateLayout)
	return &s
}
