package payroll

import "context"

type PayrollService interface {
	// CreatePayroll generates and persists one employee's payroll for a
	// period. Returns ErrPayrollRecordAlreadyExists if one is already there.
	CreatePayroll(ctx context.Context, req CreatePayrollRequest) (PayrollRecordResponse, error)

	// GeneratePayrollRun generates payroll for every active employee,
	// skipping per-employee conflicts and faults until the run's skip budget
	// is exhausted.
	GeneratePayrollRun(ctx context.Context, req GeneratePayrollRunRequest) (PayrollRunSummary, error)

	GetPayrollRecord(ctx context.Context, id string) (PayrollRecordResponse, error)
	ListPayrollRecords(ctx context.Context, filter PayrollFilter) (ListPayrollRecordResponse, error)
	ListDeductionTypes(ctx context.Context) ([]DeductionTypeResponse, error)
}
