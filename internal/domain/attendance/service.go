package attendance

import "context"

type AttendanceService interface {
	// ListAttendance returns one employee's records inside a period, ordered
	// by date ascending.
	ListAttendance(ctx context.Context, employeeID string, periodStart, periodEnd string) ([]AttendanceRecordResponse, error)
}
