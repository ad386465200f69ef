package postgresql_test

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestAttendanceRepository_OneRecordPerDay(t *testing.T) {
	ctx := resetDB(t)
	repo := postgresql.NewAttendanceRepository(testDB)
	e := createTestEmployee(t, ctx, "daily@example.com", employee.RoleEmployee)

	created, err := repo.Create(ctx, attendance.Attendance{EmployeeID: e.ID, Date: day(4), Status: attendance.StatusLate})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", created.Date.Format("2006-01-02"))

	_, err = repo.Create(ctx, attendance.Attendance{EmployeeID: e.ID, Date: day(4), Status: attendance.StatusPresent})
	assert.ErrorIs(t, err, attendance.ErrAlreadyRecordedToday)

	inserted, err := repo.CreateIfAbsent(ctx, attendance.Attendance{EmployeeID: e.ID, Date: day(4), Status: attendance.StatusAbsent})
	require.NoError(t, err)
	assert.False(t, inserted)

	inserted, err = repo.CreateIfAbsent(ctx, attendance.Attendance{EmployeeID: e.ID, Date: day(5), Status: attendance.StatusAbsent})
	require.NoError(t, err)
	assert.True(t, inserted)

	exists, err := repo.ExistsForDate(ctx, e.ID, day(5))
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsForDate(ctx, e.ID, day(6))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAttendanceRepository_ListByEmployeeBetween(t *testing.T) {
	ctx := resetDB(t)
	repo := postgresql.NewAttendanceRepository(testDB)
	e := createTestEmployee(t, ctx, "range@example.com", employee.RoleEmployee)

	for _, d := range []int{1, 15, 31} {
		_, err := repo.Create(ctx, attendance.Attendance{EmployeeID: e.ID, Date: day(d), Status: attendance.StatusPresent})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, attendance.Attendance{
		EmployeeID: e.ID, Date: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), Status: attendance.StatusPresent,
	})
	require.NoError(t, err)

	records, err := repo.ListByEmployeeBetween(ctx, e.ID, day(1), day(31))
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, 1, records[0].Date.Day())
	assert.Equal(t, 31, records[2].Date.Day())
}

func TestAttendanceRepository_ListUpdateDelete(t *testing.T) {
	ctx := resetDB(t)
	repo := postgresql.NewAttendanceRepository(testDB)
	a := createTestEmployee(t, ctx, "a@example.com", employee.RoleEmployee)
	b := createTestEmployee(t, ctx, "b@example.com", employee.RoleEmployee)

	rec, err := repo.Create(ctx, attendance.Attendance{EmployeeID: a.ID, Date: day(4), Status: attendance.StatusPresent})
	require.NoError(t, err)
	_, err = repo.Create(ctx, attendance.Attendance{EmployeeID: b.ID, Date: day(4), Status: attendance.StatusSick})
	require.NoError(t, err)

	status := string(attendance.StatusSick)
	list, total, err := repo.List(ctx, attendance.AttendanceFilter{Status: &status, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].EmployeeName)
	assert.Equal(t, "Employee b@example.com", *list[0].EmployeeName)

	late := string(attendance.StatusLate)
	require.NoError(t, repo.Update(ctx, attendance.UpdateAttendanceRequest{ID: rec.ID, Status: &late}))
	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, got.Status)

	require.NoError(t, repo.Delete(ctx, rec.ID))
	_, err = repo.GetByID(ctx, rec.ID)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, rec.ID), attendance.ErrAttendanceNotFound)
}
