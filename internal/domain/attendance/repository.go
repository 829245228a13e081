package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// ListByEmployeePeriod returns the employee's records with dates inside
	// [periodStart, periodEnd], ordered by date ascending.
	ListByEmployeePeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) ([]AttendanceRecord, error)
}
