package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type PayrollHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	ListMy(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	Generate(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// payrollFilterFromQuery returns false after writing a 400 for non-numeric month or year.
func payrollFilterFromQuery(w http.ResponseWriter, r *http.Request) (payroll.PayrollFilter, bool) {
	var filter payroll.PayrollFilter
	var monthOK, yearOK bool

	filter.Page, filter.Limit = paging(r)
	filter.Month, monthOK = queryInt(r, "month")
	filter.Year, yearOK = queryInt(r, "year")
	if !monthOK || !yearOK {
		response.BadRequest(w, "month and year must be integers", nil)
		return filter, false
	}
	filter.Status = queryString(r, "status")
	filter.EmployeeID = queryString(r, "employee_id")
	return filter, true
}

func (h *payrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, ok := payrollFilterFromQuery(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.ListPayrollRecords(r.Context(), filter)
	if err != nil {
		slog.Error("List payroll records error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *payrollHandlerImpl) ListMy(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerClaims(w, r)
	if !ok {
		return
	}
	filter, ok := payrollFilterFromQuery(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.ListMyPayrollRecords(r.Context(), claims.UserID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *payrollHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	month, monthOK := queryInt(r, "month")
	year, yearOK := queryInt(r, "year")
	if !monthOK || !yearOK || month == nil || year == nil {
		response.BadRequest(w, "month and year are required", nil)
		return
	}

	body, filename, err := h.payrollService.ExportPeriod(r.Context(), payroll.Period{Month: *month, Year: *year})
	if err != nil {
		slog.Error("Export payroll error", "error", err, "month", *month, "year", *year)
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, xlsxContentType, filename, body)
}

func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GenerateCurrentPeriod(r.Context())
	if err != nil {
		slog.Error("Generate payroll error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll generated", result)
}

func (h *payrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerClaims(w, r)
	if !ok {
		return
	}

	record, err := h.payrollService.GetPayrollRecord(r.Context(), chi.URLParam(r, "id"), claims.UserID, claims.CanViewAll())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}

func (h *payrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerClaims(w, r)
	if !ok {
		return
	}

	var req payroll.MarkPaidRequest
	if !decodeJSON(w, r, &req, "MarkPaid") {
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.PaidBy = claims.UserID

	record, err := h.payrollService.MarkPaid(r.Context(), req)
	if err != nil {
		slog.Error("Mark payroll paid error", "error", err, "payroll_id", req.ID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record marked as paid", record)
}

func (h *payrollHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.payrollService.DeletePayrollRecord(r.Context(), id); err != nil {
		slog.Error("Delete payroll record error", "error", err, "payroll_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record deleted successfully", nil)
}
