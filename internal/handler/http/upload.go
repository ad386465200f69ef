package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/service/file"
	"github.com/go-chi/chi/v5"
)

type UploadHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	Download(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type uploadHandlerImpl struct {
	fileService file.FileService
}

func NewUploadHandler(fileService file.FileService) UploadHandler {
	return &uploadHandlerImpl{fileService: fileService}
}

// multipartOverhead leaves room for form boundaries around a maximum sized file.
const multipartOverhead = 1 << 20

func (h *uploadHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerClaims(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, file.MaxUploadSize+multipartOverhead)
	if err := r.ParseMultipartForm(file.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.HandleError(w, file.ErrFileTooLarge)
			return
		}
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			response.BadRequest(w, "Field 'file' is required", nil)
			return
		}
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer f.Close()

	uploaded, err := h.fileService.Upload(r.Context(), claims.UserID, f, header.Filename)
	if err != nil {
		slog.Error("Upload error", "error", err, "user_id", claims.UserID)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "File uploaded successfully", uploaded)
}

func (h *uploadHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerClaims(w, r)
	if !ok {
		return
	}

	rc, contentType, err := h.fileService.Open(r.Context(), claims.UserID, claims.CanViewAll(), chi.URLParam(r, "*"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=300")
	if _, err := io.Copy(w, rc); err != nil {
		slog.Warn("Failed to stream upload", "error", err, "user_id", claims.UserID)
	}
}

func (h *uploadHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerClaims(w, r)
	if !ok {
		return
	}

	if err := h.fileService.DeleteFile(r.Context(), claims.UserID, chi.URLParam(r, "*")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "File deleted successfully", nil)
}
