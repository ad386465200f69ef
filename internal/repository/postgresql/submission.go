package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/submission"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type submissionRepositoryImpl struct {
	db *database.DB
}

func NewSubmissionRepository(db *database.DB) submission.SubmissionRepository {
	return &submissionRepositoryImpl{db: db}
}

const submissionColumns = `
	s.id, s.employee_id, s.type, s.reason, s.start_date, s.end_date, s.attachment_url,
	s.status, s.reviewed_by, s.reviewed_at, s.review_note, s.created_at, s.updated_at, u.name`

func scanSubmission(row pgx.Row) (submission.Submission, error) {
	var s submission.Submission
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.Type, &s.Reason, &s.StartDate, &s.EndDate, &s.AttachmentURL,
		&s.Status, &s.ReviewedBy, &s.ReviewedAt, &s.ReviewNote, &s.CreatedAt, &s.UpdatedAt, &s.EmployeeName,
	)
	return s, err
}

func optionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := dateOnly(*t)
	return &s
}

func (r *submissionRepositoryImpl) Create(ctx context.Context, s submission.Submission) (submission.Submission, error) {
	q := GetQuerier(ctx, r.db)

	start, end := optionalDate(s.StartDate), optionalDate(s.EndDate)

	var id string
	err := q.QueryRow(ctx, `
		INSERT INTO submissions (employee_id, type, reason, start_date, end_date, attachment_url, status)
		VALUES ($1, $2, $3, $4::date, $5::date, $6, $7)
		RETURNING id
	`, s.EmployeeID, s.Type, s.Reason, start, end, s.AttachmentURL, submission.StatusPending).Scan(&id)
	if err != nil {
		return submission.Submission{}, fmt.Errorf("failed to create submission: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *submissionRepositoryImpl) GetByID(ctx context.Context, id string) (submission.Submission, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + submissionColumns + `
		FROM submissions s
		LEFT JOIN users u ON u.id = s.employee_id
		WHERE s.id = $1`

	s, err := scanSubmission(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return submission.Submission{}, submission.ErrSubmissionNotFound
		}
		return submission.Submission{}, fmt.Errorf("failed to get submission %s: %w", id, err)
	}
	return s, nil
}

func (r *submissionRepositoryImpl) List(ctx context.Context, filter submission.SubmissionFilter) ([]submission.Submission, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND s.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Type != nil && *filter.Type != "" {
		baseWhere += fmt.Sprintf(" AND s.type = $%d", argIdx)
		args = append(args, *filter.Type)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND s.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM submissions s WHERE "+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count submissions: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM submissions s
		LEFT JOIN users u ON u.id = s.employee_id
		WHERE %s
		ORDER BY s.created_at DESC
		LIMIT $%d OFFSET $%d
	`, submissionColumns, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, pageOffset(filter.Page, filter.Limit))

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var submissions []submission.Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return submissions, total, nil
}

func (r *submissionRepositoryImpl) Review(ctx context.Context, req submission.ReviewSubmissionRequest) (submission.Submission, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE submissions
		SET status = $1, reviewed_by = $2, reviewed_at = NOW(), review_note = $3, updated_at = NOW()
		WHERE id = $4 AND status = $5
	`, req.Status, nullableID(req.ReviewerID), req.Note, req.ID, submission.StatusPending)
	if err != nil {
		return submission.Submission{}, fmt.Errorf("failed to review submission %s: %w", req.ID, err)
	}

	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, req.ID); err != nil {
			return submission.Submission{}, err
		}
		return submission.Submission{}, submission.ErrSubmissionAlreadyProcessed
	}

	return r.GetByID(ctx, req.ID)
}
