package employee

import (
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Password   string          `json:"password"`
	Position   *string         `json:"position,omitempty"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	Status     string          `json:"status,omitempty"`
	Role       string          `json:"role,omitempty"`
	PhotoURL   *string         `json:"photo_url,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "is required")
	}
	if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "must be a valid email address")
	}
	if len(r.Password) < 8 {
		errs.Add("password", "must be at least 8 characters")
	}
	if !r.BaseSalary.IsPositive() {
		errs.Add("base_salary", "must be a positive number")
	}
	if r.Status != "" && !Status(r.Status).IsValid() {
		errs.Add("status", "must be 'active' or 'inactive'")
	}
	if r.Role != "" && !Role(r.Role).IsValid() {
		errs.Add("role", "must be 'employee', 'admin' or 'ceo'")
	}

	return errs.Err()
}

type UpdateEmployeeRequest struct {
	ID         string           `json:"-"`
	Name       *string          `json:"name,omitempty"`
	Email      *string          `json:"email,omitempty"`
	Password   *string          `json:"password,omitempty"`
	Position   *string          `json:"position,omitempty"`
	BaseSalary *decimal.Decimal `json:"base_salary,omitempty"`
	Status     *string          `json:"status,omitempty"`
	Role       *string          `json:"role,omitempty"`
	PhotoURL   *string          `json:"photo_url,omitempty"`

	// Set by the service after hashing Password.
	PasswordHash *string `json:"-"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "must be a valid UUID")
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "cannot be empty")
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs.Add("email", "must be a valid email address")
	}
	if r.Password != nil && len(*r.Password) < 8 {
		errs.Add("password", "must be at least 8 characters")
	}
	if r.BaseSalary != nil && !r.BaseSalary.IsPositive() {
		errs.Add("base_salary", "must be a positive number")
	}
	if r.Status != nil && !Status(*r.Status).IsValid() {
		errs.Add("status", "must be 'active' or 'inactive'")
	}
	if r.Role != nil && !Role(*r.Role).IsValid() {
		errs.Add("role", "must be 'employee', 'admin' or 'ceo'")
	}

	return errs.Err()
}

type EmployeeFilter struct {
	Search *string
	Status *string
	Role   *string
	Page   int
	Limit  int
}

// Normalize applies paging defaults.
func (f *EmployeeFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

type EmployeeResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Position   *string         `json:"position,omitempty"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	Status     string          `json:"status"`
	Role       string          `json:"role"`
	PhotoURL   *string         `json:"photo_url,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type ListEmployeeResponse struct {
	Employees  []EmployeeResponse `json:"employees"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Position:   e.Position,
		BaseSalary: e.BaseSalary,
		Status:     string(e.Status),
		Role:       string(e.Role),
		PhotoURL:   e.PhotoURL,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
