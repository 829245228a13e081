package response

import (
	"errors"
	"net/http"

	"github.com/silangan-hr/payroll-backend-go/internal/domain/employee"
	"github.com/silangan-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/silangan-hr/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyExists):
		Conflict(w, "Payroll record already exists for this employee and period")
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrNegativeRegularHours):
		BadRequest(w, "Attendance data is inconsistent for this period", nil)
	case errors.Is(err, payroll.ErrDeductionTypeNotFound):
		InternalServerError(w, "Deduction type catalog is incomplete")
	case errors.Is(err, payroll.ErrRunSkipBudgetExceeded):
		InternalServerError(w, "Payroll run aborted after too many failures")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeNotActive):
		BadRequest(w, "Employee is not active", nil)
	case errors.Is(err, employee.ErrEmployeeHasNoSalary):
		BadRequest(w, "Employee has no basic salary configured", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
