package employee

import "context"

type EmployeeRepository interface {
	// GetByID returns the employee together with their compensation profile
	// and recurring benefits.
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetActiveIDs returns the identifiers of employees whose employment
	// status is active. Resigned and terminated employees are excluded here
	// so payroll runs never see them.
	GetActiveIDs(ctx context.Context) ([]string, error)

	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
}
