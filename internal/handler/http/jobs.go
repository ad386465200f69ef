package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// JobRunner runs a registered batch job on demand.
type JobRunner interface {
	RunJob(ctx context.Context, name string) error
	Jobs() []string
}

type JobHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Run(w http.ResponseWriter, r *http.Request)
}

type jobHandlerImpl struct {
	runner JobRunner
}

func NewJobHandler(runner JobRunner) JobHandler {
	return &jobHandlerImpl{runner: runner}
}

func (h *jobHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.runner.Jobs())
}

func (h *jobHandlerImpl) Run(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	slog.Info("Manual job run requested", "job", name)
	if err := h.runner.RunJob(r.Context(), name); err != nil {
		slog.Error("Manual job run failed", "job", name, "error", err)
		response.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
