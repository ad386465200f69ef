package submission

import "errors"

var (
	ErrSubmissionNotFound         = errors.New("submission not found")
	ErrSubmissionAlreadyProcessed = errors.New("submission already processed")
)
