package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/submission"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/storage"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/service/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestSecret = "test-secret-key-for-jwt"
	adminID           = "11111111-1111-1111-1111-111111111111"
	employeeID        = "22222222-2222-2222-2222-222222222222"
	ceoID             = "33333333-3333-3333-3333-333333333333"
)

type fakeAuthService struct {
	auth.AuthService
	jwtService jwt.Service
}

func (f *fakeAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if req.Password != "password123" {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	token, exp, err := f.jwtService.GenerateAccessToken(employeeID, req.Email, employee.RoleEmployee)
	if err != nil {
		return auth.LoginResponse{}, err
	}
	return auth.LoginResponse{AccessToken: token, AccessTokenExpiresIn: exp, User: employee.EmployeeResponse{ID: employeeID}}, nil
}

func (f *fakeAuthService) Logout(ctx context.Context, accessToken string) error {
	token, err := f.jwtService.JWTAuth().Decode(accessToken)
	if err != nil {
		return auth.ErrInvalidToken
	}
	f.jwtService.RevokeToken(accessToken, token.Expiration())
	return nil
}

func (f *fakeAuthService) Me(ctx context.Context, userID string) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{ID: userID}, nil
}

type fakeEmployeeService struct {
	employee.EmployeeService
	lastFilter employee.EmployeeFilter
}

func (f *fakeEmployeeService) List(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	f.lastFilter = filter
	return employee.ListEmployeeResponse{
		Employees:  []employee.EmployeeResponse{{ID: employeeID, Name: "Budi"}},
		TotalCount: 41,
		Page:       2,
		Limit:      20,
	}, nil
}

func (f *fakeEmployeeService) Delete(ctx context.Context, id string, actorID string) error {
	if id == actorID {
		return employee.ErrCannotDeleteSelf
	}
	return nil
}

type fakeAttendanceService struct {
	attendance.AttendanceService
	recorded []attendance.RecordAttendanceRequest
}

func (f *fakeAttendanceService) Record(ctx context.Context, req attendance.RecordAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if len(f.recorded) > 0 {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyRecordedToday
	}
	f.recorded = append(f.recorded, req)
	return attendance.AttendanceResponse{EmployeeID: req.EmployeeID, Status: req.Status}, nil
}

func (f *fakeAttendanceService) Summarize(ctx context.Context, req attendance.SummaryRequest) (attendance.SummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SummaryResponse{}, err
	}
	return attendance.SummaryResponse{EmployeeID: req.EmployeeID, Month: req.Month, Year: req.Year, WorkingDays: 22}, nil
}

type fakeSubmissionService struct {
	submission.SubmissionService
	reviewed []submission.ReviewSubmissionRequest
}

func (f *fakeSubmissionService) Review(ctx context.Context, req submission.ReviewSubmissionRequest) (submission.SubmissionResponse, error) {
	if err := req.Validate(); err != nil {
		return submission.SubmissionResponse{}, err
	}
	f.reviewed = append(f.reviewed, req)
	return submission.SubmissionResponse{ID: req.ID, Status: string(req.Status)}, nil
}

type fakePayrollService struct {
	payroll.PayrollService
	viewAll bool
}

func (f *fakePayrollService) GetPayrollRecord(ctx context.Context, id string, viewerID string, viewAll bool) (payroll.PayrollRecordResponse, error) {
	f.viewAll = viewAll
	if !viewAll && viewerID != employeeID {
		return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordNotFound
	}
	return payroll.PayrollRecordResponse{ID: id, EmployeeID: employeeID}, nil
}

func (f *fakePayrollService) ExportPeriod(ctx context.Context, period payroll.Period) ([]byte, string, error) {
	if err := period.Validate(); err != nil {
		return nil, "", err
	}
	return []byte("xlsx"), "payroll-2024-05.xlsx", nil
}

func (f *fakePayrollService) MarkPaid(ctx context.Context, req payroll.MarkPaidRequest) (payroll.PayrollRecordResponse, error) {
	return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordAlreadyPaid
}

type fakeFileService struct {
	file.FileService
}

func (f *fakeFileService) Open(ctx context.Context, viewerID string, viewAll bool, key string) (io.ReadCloser, string, error) {
	if key != employeeID+"/note.pdf" || (viewerID != employeeID && !viewAll) {
		return nil, "", storage.ErrFileNotFound
	}
	return io.NopCloser(strings.NewReader("%PDF-1.4")), "application/pdf", nil
}

type fakeJobRunner struct {
	ran []string
}

func (f *fakeJobRunner) RunJob(ctx context.Context, name string) error {
	if name != cron.AutoAbsenceJob {
		return cron.ErrJobNotFound
	}
	f.ran = append(f.ran, name)
	return nil
}

func (f *fakeJobRunner) Jobs() []string {
	return []string{cron.AutoAbsenceJob}
}

type testServer struct {
	router      http.Handler
	jwtService  *jwt.JWTService
	employees   *fakeEmployeeService
	attendances *fakeAttendanceService
	submissions *fakeSubmissionService
	payrolls    *fakePayrollService
	jobs        *fakeJobRunner
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	jwtService := jwt.NewJWTService(handlerTestSecret, "1h")
	s := &testServer{
		jwtService:  jwtService,
		employees:   &fakeEmployeeService{},
		attendances: &fakeAttendanceService{},
		submissions: &fakeSubmissionService{},
		payrolls:    &fakePayrollService{},
		jobs:        &fakeJobRunner{},
	}
	s.router = NewRouter(jwtService, Handlers{
		Auth:       NewAuthHandler(&fakeAuthService{jwtService: jwtService}),
		Employee:   NewEmployeeHandler(s.employees),
		Attendance: NewAttendanceHandler(s.attendances),
		Submission: NewSubmissionHandler(s.submissions),
		Payroll:    NewPayrollHandler(s.payrolls),
		Upload:     NewUploadHandler(&fakeFileService{}),
		Job:        NewJobHandler(s.jobs),
	}, RouterConfig{Env: "test", FrontendURL: "http://localhost:3000"})
	return s
}

func (s *testServer) token(t *testing.T, userID string, role employee.Role) string {
	t.Helper()
	token, _, err := s.jwtService.GenerateAccessToken(userID, userID+"@example.com", role)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestAuth_LoginAndLogout(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "budi@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data auth.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	token := body.Data.AccessToken
	require.NotEmpty(t, token)

	rec = s.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_LoginErrors(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "nope", "password": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Details, "email")

	rec = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "budi@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_RoleGuards(t *testing.T) {
	s := newTestServer(t)
	employeeToken := s.token(t, employeeID, employee.RoleEmployee)
	ceoToken := s.token(t, ceoID, employee.RoleCEO)
	adminToken := s.token(t, adminID, employee.RoleAdmin)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/employees", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/employees", "garbage", nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/v1/employees", employeeToken, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/employees", ceoToken, nil).Code)

	// The CEO reads but does not write.
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodDelete, "/api/v1/employees/"+employeeID, ceoToken, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/api/v1/employees/"+employeeID, adminToken, nil).Code)

	// Only employees record their own attendance.
	rec := s.do(http.MethodPost, "/api/v1/attendances", adminToken, map[string]string{"status": "present"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestEmployeeHandler_ListPaging(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/v1/employees?page=2&search=bu&status=active", s.token(t, adminID, employee.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, int64(41), resp.Meta.TotalItems)
	assert.Equal(t, 3, resp.Meta.TotalPages)

	require.NotNil(t, s.employees.lastFilter.Search)
	assert.Equal(t, "bu", *s.employees.lastFilter.Search)
	assert.Nil(t, s.employees.lastFilter.Role)
}

func TestEmployeeHandler_DeleteSelf(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodDelete, "/api/v1/employees/"+adminID, s.token(t, adminID, employee.RoleAdmin), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAttendanceHandler_Record(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, employeeID, employee.RoleEmployee)

	rec := s.do(http.MethodPost, "/api/v1/attendances", token, map[string]string{"status": "absent"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/attendances", token, map[string]string{"status": "late"})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, s.attendances.recorded, 1)
	assert.Equal(t, employeeID, s.attendances.recorded[0].EmployeeID)

	rec = s.do(http.MethodPost, "/api/v1/attendances", token, map[string]string{"status": "present"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAttendanceHandler_Summary(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, adminID, employee.RoleAdmin)

	rec := s.do(http.MethodGet, "/api/v1/attendances/summary?employee_id="+employeeID+"&month=5&year=2024", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data attendance.SummaryResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 22, body.Data.WorkingDays)
	assert.Equal(t, 5, body.Data.Month)

	rec = s.do(http.MethodGet, "/api/v1/attendances/summary?employee_id="+employeeID+"&month=may&year=2024", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/attendances/summary?employee_id="+employeeID+"&month=13&year=2024", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSubmissionHandler_Review(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, adminID, employee.RoleAdmin)
	id := "44444444-4444-4444-4444-444444444444"

	rec := s.do(http.MethodPost, "/api/v1/submissions/"+id+"/approve", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, s.submissions.reviewed, 1)
	assert.Equal(t, submission.StatusApproved, s.submissions.reviewed[0].Status)
	assert.Equal(t, adminID, s.submissions.reviewed[0].ReviewerID)

	// Rejections need a note.
	rec = s.do(http.MethodPost, "/api/v1/submissions/"+id+"/reject", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/submissions/"+id+"/reject", token, map[string]string{"note": "busy season"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPayrollHandler_GetOwnership(t *testing.T) {
	s := newTestServer(t)
	id := "55555555-5555-5555-5555-555555555555"

	rec := s.do(http.MethodGet, "/api/v1/payrolls/"+id, s.token(t, employeeID, employee.RoleEmployee), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, s.payrolls.viewAll)

	rec = s.do(http.MethodGet, "/api/v1/payrolls/"+id, s.token(t, "66666666-6666-6666-6666-666666666666", employee.RoleEmployee), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/payrolls/"+id, s.token(t, ceoID, employee.RoleCEO), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, s.payrolls.viewAll)
}

func TestPayrollHandler_Export(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, ceoID, employee.RoleCEO)

	rec := s.do(http.MethodGet, "/api/v1/payrolls/export?month=5&year=2024", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "payroll-2024-05.xlsx")
	assert.Equal(t, "xlsx", rec.Body.String())

	rec = s.do(http.MethodGet, "/api/v1/payrolls/export?month=5", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPayrollHandler_MarkPaidConflict(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/v1/payrolls/55555555-5555-5555-5555-555555555555/pay",
		s.token(t, adminID, employee.RoleAdmin), map[string]string{"payment_method": "cash"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestJobHandler_Run(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, adminID, employee.RoleAdmin)

	rec := s.do(http.MethodPost, "/api/v1/jobs/"+cron.AutoAbsenceJob+"/run", token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{cron.AutoAbsenceJob}, s.jobs.ran)

	rec = s.do(http.MethodPost, "/api/v1/jobs/unknown/run", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/jobs/"+cron.AutoAbsenceJob+"/run", s.token(t, employeeID, employee.RoleEmployee), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUploadHandler_Download(t *testing.T) {
	s := newTestServer(t)
	path := "/api/v1/uploads/" + employeeID + "/note.pdf"

	rec := s.do(http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, path, s.token(t, employeeID, employee.RoleEmployee), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-1.4", rec.Body.String())

	rec = s.do(http.MethodGet, path, s.token(t, "44444444-4444-4444-4444-444444444444", employee.RoleEmployee), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, path, s.token(t, ceoID, employee.RoleCEO), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
