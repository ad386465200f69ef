package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/service/workday"
	"golang.org/x/sync/errgroup"
)

// WorkingDayCounter is satisfied by workday.Calculator.
type WorkingDayCounter interface {
	WorkingDays(ctx context.Context, start, end time.Time) int
}

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	aggregator     attendance.Aggregator
	workdays       WorkingDayCounter
	loc            *time.Location
	now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	aggregator attendance.Aggregator,
	workdays WorkingDayCounter,
	loc *time.Location,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		aggregator:     aggregator,
		workdays:       workdays,
		loc:            loc,
		now:            time.Now,
	}
}

func (s *AttendanceServiceImpl) today() time.Time {
	n := s.now().In(s.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, s.loc)
}

// Record stores today's self-reported status. The storage layer rejects a second
// record for the same day with ErrAlreadyRecordedToday.
func (s *AttendanceServiceImpl) Record(ctx context.Context, req attendance.RecordAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !emp.IsActive() {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}

	created, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		EmployeeID: req.EmployeeID,
		Date:       s.today(),
		Status:     attendance.Status(req.Status),
		Note:       req.Note,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.ToResponse(created), nil
}

func (s *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	filter.EmployeeID = &employeeID
	return s.ListAttendance(ctx, filter)
}

func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.ToResponse(r))
	}

	return attendance.ListAttendanceResponse{
		Attendances: responses,
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
	}, nil
}

func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	record, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(record), nil
}

func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := s.attendanceRepo.Update(ctx, req); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return s.GetAttendance(ctx, req.ID)
}

func (s *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	return s.attendanceRepo.Delete(ctx, id)
}

// Summarize reports one employee's month: its working days and the folded tally.
func (s *AttendanceServiceImpl) Summarize(ctx context.Context, req attendance.SummaryRequest) (attendance.SummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SummaryResponse{}, err
	}

	start, end := workday.MonthRange(req.Year, time.Month(req.Month), s.loc)

	// The employee check and the holiday-backed day count are independent.
	var totalWorkingDays int
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.employeeRepo.GetByID(gCtx, req.EmployeeID)
		return err
	})
	g.Go(func() error {
		totalWorkingDays = s.workdays.WorkingDays(gCtx, start, end)
		return nil
	})
	if err := g.Wait(); err != nil {
		return attendance.SummaryResponse{}, err
	}

	summary, err := s.aggregator.Aggregate(ctx, req.EmployeeID, start, end, totalWorkingDays)
	if err != nil {
		return attendance.SummaryResponse{}, fmt.Errorf("failed to summarize attendance: %w", err)
	}

	return attendance.SummaryResponse{
		EmployeeID:  req.EmployeeID,
		Month:       req.Month,
		Year:        req.Year,
		WorkingDays: totalWorkingDays,
		Summary:     summary,
	}, nil
}
