package submission

import "context"

type SubmissionService interface {
	Create(ctx context.Context, req CreateSubmissionRequest) (SubmissionResponse, error)
	ListMine(ctx context.Context, employeeID string, filter SubmissionFilter) (ListSubmissionResponse, error)
	List(ctx context.Context, filter SubmissionFilter) (ListSubmissionResponse, error)
	Review(ctx context.Context, req ReviewSubmissionRequest) (SubmissionResponse, error)
}
