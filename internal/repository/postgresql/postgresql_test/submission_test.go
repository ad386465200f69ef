package postgresql_test

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/submission"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmissionRepository_CreateAndReview(t *testing.T) {
	ctx := resetDB(t)
	repo := postgresql.NewSubmissionRepository(testDB)
	e := createTestEmployee(t, ctx, "leave@example.com", employee.RoleEmployee)
	admin := createTestEmployee(t, ctx, "admin@example.com", employee.RoleAdmin)

	start := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC)
	created, err := repo.Create(ctx, submission.Submission{
		EmployeeID: e.ID, Type: submission.TypeLeave, Reason: "family event",
		StartDate: &start, EndDate: &end,
	})
	require.NoError(t, err)
	assert.Equal(t, submission.StatusPending, created.Status)
	require.NotNil(t, created.StartDate)
	assert.Equal(t, "2024-05-06", created.StartDate.Format("2006-01-02"))

	note := "enjoy"
	reviewed, err := repo.Review(ctx, submission.ReviewSubmissionRequest{
		ID: created.ID, ReviewerID: admin.ID, Status: submission.StatusApproved, Note: &note,
	})
	require.NoError(t, err)
	assert.Equal(t, submission.StatusApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, admin.ID, *reviewed.ReviewedBy)

	_, err = repo.Review(ctx, submission.ReviewSubmissionRequest{
		ID: created.ID, ReviewerID: admin.ID, Status: submission.StatusRejected, Note: &note,
	})
	assert.ErrorIs(t, err, submission.ErrSubmissionAlreadyProcessed)

	_, err = repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, submission.ErrSubmissionNotFound)
}

func TestSubmissionRepository_List(t *testing.T) {
	ctx := resetDB(t)
	repo := postgresql.NewSubmissionRepository(testDB)
	e := createTestEmployee(t, ctx, "quit@example.com", employee.RoleEmployee)

	_, err := repo.Create(ctx, submission.Submission{EmployeeID: e.ID, Type: submission.TypeResignation, Reason: "moving"})
	require.NoError(t, err)

	typ := string(submission.TypeResignation)
	list, total, err := repo.List(ctx, submission.SubmissionFilter{Type: &typ, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].StartDate)
}
