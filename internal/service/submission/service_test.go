package submission

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/submission"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	employeeID   = "5b7c9d1e-2f3a-4b5c-8d6e-7f8091a2b3c4"
	submissionID = "c1d2e3f4-a5b6-4c7d-8e9f-0a1b2c3d4e5f"
	reviewerID   = "admin-1"
)

type fakeEmployeeRepo struct{ employee.EmployeeRepository }

func (fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if id != employeeID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{ID: id}, nil
}

type memSubmissionRepo struct {
	submission.SubmissionRepository
	items map[string]submission.Submission
}

func (m *memSubmissionRepo) Create(ctx context.Context, s submission.Submission) (submission.Submission, error) {
	s.ID = submissionID
	s.CreatedAt = time.Now()
	m.items[s.ID] = s
	return s, nil
}

func (m *memSubmissionRepo) GetByID(ctx context.Context, id string) (submission.Submission, error) {
	s, ok := m.items[id]
	if !ok {
		return submission.Submission{}, submission.ErrSubmissionNotFound
	}
	return s, nil
}

func (m *memSubmissionRepo) Review(ctx context.Context, req submission.ReviewSubmissionRequest) (submission.Submission, error) {
	s := m.items[req.ID]
	now := time.Now()
	s.Status = req.Status
	s.ReviewedBy = &req.ReviewerID
	s.ReviewedAt = &now
	s.ReviewNote = req.Note
	m.items[req.ID] = s
	return s, nil
}

func strPtr(s string) *string { return &s }

func newService() (submission.SubmissionService, *memSubmissionRepo) {
	repo := &memSubmissionRepo{items: make(map[string]submission.Submission)}
	return NewSubmissionService(repo, fakeEmployeeRepo{}), repo
}

func TestCreate_Leave(t *testing.T) {
	svc, repo := newService()

	resp, err := svc.Create(context.Background(), submission.CreateSubmissionRequest{
		EmployeeID: employeeID,
		Type:       "leave",
		Reason:     "Family event",
		StartDate:  strPtr("2024-05-06"),
		EndDate:    strPtr("2024-05-08"),
	})

	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	require.NotNil(t, resp.StartDate)
	assert.Equal(t, "2024-05-06", *resp.StartDate)
	assert.Equal(t, "2024-05-08", *resp.EndDate)
	assert.Len(t, repo.items, 1)
}

func TestCreate_LeaveRequiresOrderedRange(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Create(context.Background(), submission.CreateSubmissionRequest{
		EmployeeID: employeeID,
		Type:       "leave",
		Reason:     "Trip",
		StartDate:  strPtr("2024-05-08"),
		EndDate:    strPtr("2024-05-06"),
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "end_date")

	_, err = svc.Create(context.Background(), submission.CreateSubmissionRequest{
		EmployeeID: employeeID,
		Type:       "leave",
		Reason:     "Trip",
	})
	require.ErrorAs(t, err, &verrs)
}

func TestCreate_Resignation(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.Create(context.Background(), submission.CreateSubmissionRequest{
		EmployeeID: employeeID,
		Type:       "resignation",
		Reason:     "Relocating",
	})

	require.NoError(t, err)
	assert.Equal(t, "resignation", resp.Type)
	assert.Nil(t, resp.EndDate)
}

func TestReview_OnlyPendingTransitions(t *testing.T) {
	svc, _ := newService()
	_, err := svc.Create(context.Background(), submission.CreateSubmissionRequest{
		EmployeeID: employeeID,
		Type:       "resignation",
		Reason:     "Relocating",
	})
	require.NoError(t, err)

	resp, err := svc.Review(context.Background(), submission.ReviewSubmissionRequest{
		ID: submissionID, ReviewerID: reviewerID, Status: submission.StatusApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)

	_, err = svc.Review(context.Background(), submission.ReviewSubmissionRequest{
		ID: submissionID, ReviewerID: reviewerID, Status: submission.StatusRejected, Note: strPtr("late"),
	})
	assert.ErrorIs(t, err, submission.ErrSubmissionAlreadyProcessed)
}

func TestReview_RejectNeedsNote(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Review(context.Background(), submission.ReviewSubmissionRequest{
		ID: submissionID, ReviewerID: reviewerID, Status: submission.StatusRejected,
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "note")
}
