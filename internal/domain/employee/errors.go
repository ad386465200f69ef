package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrEmailExists       = errors.New("email already registered")
	ErrInvalidBaseSalary = errors.New("base salary must be a positive number")
	ErrCannotDeleteSelf  = errors.New("cannot delete your own account")
)
