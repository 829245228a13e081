package payroll

import "errors"

var (
	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll record already exists for this period")
	ErrDeductionTypeNotFound      = errors.New("mandatory deduction type missing from catalog")
	ErrNegativeRegularHours       = errors.New("regular hours are negative, attendance data is corrupt")
	ErrInvalidPeriod              = errors.New("invalid payroll period")
	ErrRunSkipBudgetExceeded      = errors.New("payroll run aborted: skip budget exceeded")
)
