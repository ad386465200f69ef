package submission

import "time"

type Type string

const (
	TypeLeave       Type = "leave"
	TypeResignation Type = "resignation"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Submission struct {
	ID            string
	EmployeeID    string
	Type          Type
	Reason        string
	StartDate     *time.Time
	EndDate       *time.Time
	AttachmentURL *string
	Status        Status
	ReviewedBy    *string
	ReviewedAt    *time.Time
	ReviewNote    *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined
	EmployeeName *string
}

// IsPending reports whether the submission can still be reviewed.
func (s *Submission) IsPending() bool {
	return s.Status == StatusPending
}
