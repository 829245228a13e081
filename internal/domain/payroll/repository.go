package payroll

import (
	"context"
	"time"
)

type PayrollRepository interface {
	// Records
	Exists(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (bool, error)
	Create(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetByID(ctx context.Context, id string) (PayrollRecord, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (PayrollRecord, error)
	List(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, int64, error)

	// Reference data
	GetDeductionType(ctx context.Context, code DeductionCode) (DeductionType, error)
	ListDeductionTypes(ctx context.Context) ([]DeductionType, error)
	ListBenefitTypes(ctx context.Context) ([]BenefitType, error)
}
