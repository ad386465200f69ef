package submission

import "context"

type SubmissionRepository interface {
	Create(ctx context.Context, s Submission) (Submission, error)
	GetByID(ctx context.Context, id string) (Submission, error)
	List(ctx context.Context, filter SubmissionFilter) ([]Submission, int64, error)

	// Review moves a pending submission to req.Status; ErrSubmissionAlreadyProcessed otherwise.
	Review(ctx context.Context, req ReviewSubmissionRequest) (Submission, error)
}
