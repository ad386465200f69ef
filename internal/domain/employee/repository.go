package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) error

	// Delete removes the employee together with every dependent attendance,
	// payroll and submission row.
	Delete(ctx context.Context, id string) error

	// GetAutomationRoster returns active employees with the employee role,
	// the population covered by the batch jobs.
	GetAutomationRoster(ctx context.Context) ([]Employee, error)
}
