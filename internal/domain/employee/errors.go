package employee

import "errors"

var (
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrEmployeeNotActive      = errors.New("employee is not active")
	ErrEmployeeHasNoSalary    = errors.New("employee has no basic salary configured")
	ErrInvalidEmploymentState = errors.New("invalid employment status")
)
