package auth

import (
	"context"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/employee"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Logout(ctx context.Context, accessToken string) error
	Me(ctx context.Context, userID string) (employee.EmployeeResponse, error)
}
