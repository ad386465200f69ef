package auth

import (
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "must be a valid email address")
	}
	if validator.IsEmpty(r.Password) {
		errs.Add("password", "is required")
	}

	return errs.Err()
}

type LoginResponse struct {
	AccessToken          string                    `json:"access_token"`
	AccessTokenExpiresIn int64                     `json:"access_token_expires_in"`
	User                 employee.EmployeeResponse `json:"user"`
}
