package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	testSetup *TestDatabaseSetup
	testDB    *database.DB
)

func TestMain(m *testing.M) {
	setup, err := NewTestDatabase(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "skipping repository integration tests: %v\n", err)
	} else {
		testSetup = setup
		testDB = setup.DB
	}

	code := m.Run()

	if testSetup != nil {
		testSetup.Close()
	}
	os.Exit(code)
}

// resetDB skips the test without a database and truncates all tables otherwise.
func resetDB(t *testing.T) context.Context {
	t.Helper()
	if testSetup == nil {
		t.Skip("test database not available")
	}
	ctx := context.Background()
	require.NoError(t, testSetup.TruncateAllTables(ctx))
	return ctx
}

func createTestEmployee(t *testing.T, ctx context.Context, email string, role employee.Role) employee.Employee {
	t.Helper()
	repo := postgresql.NewEmployeeRepository(testDB)
	e, err := repo.Create(ctx, employee.Employee{
		Name:         "Employee " + email,
		Email:        email,
		PasswordHash: "$2a$10$hash",
		BaseSalary:   decimal.NewFromInt(5000000),
		Status:       employee.StatusActive,
		Role:         role,
	})
	require.NoError(t, err)
	return e
}
