package submission

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/submission"
)

type SubmissionServiceImpl struct {
	submissionRepo submission.SubmissionRepository
	employeeRepo   employee.EmployeeRepository
}

func NewSubmissionService(submissionRepo submission.SubmissionRepository, employeeRepo employee.EmployeeRepository) submission.SubmissionService {
	return &SubmissionServiceImpl{
		submissionRepo: submissionRepo,
		employeeRepo:   employeeRepo,
	}
}

func (s *SubmissionServiceImpl) Create(ctx context.Context, req submission.CreateSubmissionRequest) (submission.SubmissionResponse, error) {
	if err := req.Validate(); err != nil {
		return submission.SubmissionResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return submission.SubmissionResponse{}, err
	}

	start, end := req.Dates()
	created, err := s.submissionRepo.Create(ctx, submission.Submission{
		EmployeeID:    req.EmployeeID,
		Type:          submission.Type(req.Type),
		Reason:        req.Reason,
		StartDate:     start,
		EndDate:       end,
		AttachmentURL: req.AttachmentURL,
		Status:        submission.StatusPending,
	})
	if err != nil {
		return submission.SubmissionResponse{}, err
	}

	return submission.ToResponse(created), nil
}

func (s *SubmissionServiceImpl) ListMine(ctx context.Context, employeeID string, filter submission.SubmissionFilter) (submission.ListSubmissionResponse, error) {
	filter.EmployeeID = &employeeID
	return s.List(ctx, filter)
}

func (s *SubmissionServiceImpl) List(ctx context.Context, filter submission.SubmissionFilter) (submission.ListSubmissionResponse, error) {
	if err := filter.Validate(); err != nil {
		return submission.ListSubmissionResponse{}, err
	}

	items, total, err := s.submissionRepo.List(ctx, filter)
	if err != nil {
		return submission.ListSubmissionResponse{}, err
	}

	responses := make([]submission.SubmissionResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, submission.ToResponse(item))
	}

	return submission.ListSubmissionResponse{
		Submissions: responses,
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
	}, nil
}

// Review approves or rejects a pending submission.
func (s *SubmissionServiceImpl) Review(ctx context.Context, req submission.ReviewSubmissionRequest) (submission.SubmissionResponse, error) {
	if err := req.Validate(); err != nil {
		return submission.SubmissionResponse{}, err
	}

	current, err := s.submissionRepo.GetByID(ctx, req.ID)
	if err != nil {
		return submission.SubmissionResponse{}, err
	}
	if !current.IsPending() {
		return submission.SubmissionResponse{}, submission.ErrSubmissionAlreadyProcessed
	}

	reviewed, err := s.submissionRepo.Review(ctx, req)
	if err != nil {
		return submission.SubmissionResponse{}, err
	}

	slog.Info("Submission reviewed", "submission_id", reviewed.ID, "status", reviewed.Status, "reviewed_by", req.ReviewerID)
	return submission.ToResponse(reviewed), nil
}
