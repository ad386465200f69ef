package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Position     *string
	BaseSalary   decimal.Decimal
	Status       Status
	Role         Role
	PhotoURL     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Role string

const (
	RoleEmployee Role = "employee" // Self-service only
	RoleAdmin    Role = "admin"    // Full management access
	RoleCEO      Role = "ceo"      // Read access to management listings
)

func (r Role) IsValid() bool {
	switch r {
	case RoleEmployee, RoleAdmin, RoleCEO:
		return true
	}
	return false
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// IsActive checks if the employee is allowed to log in.
func (e *Employee) IsActive() bool {
	return e.Status == StatusActive
}

// InAutomation reports whether the batch jobs (auto-absence, auto-payroll) cover this employee.
func (e *Employee) InAutomation() bool {
	return e.Status == StatusActive && e.Role == RoleEmployee
}
