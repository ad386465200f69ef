package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/submission"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SubmissionHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type submissionHandlerImpl struct {
	submissionService submission.SubmissionService
}

func NewSubmissionHandler(submissionService submission.SubmissionService) SubmissionHandler {
	return &submissionHandlerImpl{
		submissionService: submissionService,
	}
}

func submissionFilterFromQuery(r *http.Request) submission.SubmissionFilter {
	var filter submission.SubmissionFilter
	filter.Page, filter.Limit = paging(r)
	filter.EmployeeID = queryString(r, "employee_id")
	filter.Type = queryString(r, "type")
	filter.Status = queryString(r, "status")
	return filter
}

func (h *submissionHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerClaims(w, r)
	if !ok {
		return
	}

	var req submission.CreateSubmissionRequest
	if !decodeJSON(w, r, &req, "CreateSubmission") {
		return
	}
	req.EmployeeID = claims.UserID

	created, err := h.submissionService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Create submission error", "error", err, "employee_id", claims.UserID)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Submission created successfully", created)
}

func (h *submissionHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerClaims(w, r)
	if !ok {
		return
	}

	result, err := h.submissionService.ListMine(r.Context(), claims.UserID, submissionFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Submissions, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *submissionHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.submissionService.List(r.Context(), submissionFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Submissions, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *submissionHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, submission.StatusApproved)
}

func (h *submissionHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, submission.StatusRejected)
}

func (h *submissionHandlerImpl) review(w http.ResponseWriter, r *http.Request, status submission.Status) {
	claims, ok := callerClaims(w, r)
	if !ok {
		return
	}

	var req submission.ReviewSubmissionRequest
	// The note is optional on approval, so an empty body is accepted.
	if r.ContentLength != 0 && !decodeJSON(w, r, &req, "ReviewSubmission") {
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.ReviewerID = claims.UserID
	req.Status = status

	reviewed, err := h.submissionService.Review(r.Context(), req)
	if err != nil {
		slog.Error("Review submission error", "error", err, "submission_id", req.ID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Submission "+string(status), reviewed)
}
