package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/silangan-hr/payroll-backend-go/internal/domain/attendance"
)

// AttendanceTotals is the reduction of one period's attendance records.
type AttendanceTotals struct {
	TotalHours    decimal.Decimal
	OvertimeHours decimal.Decimal
	RegularHours  decimal.Decimal
	DaysWorked    int
}

// AggregateAttendance sums a period's records. RegularHours can only go
// negative on corrupt input (overtime exceeding total); the caller treats
// that as a fault rather than clamping it.
func AggregateAttendance(records []attendance.AttendanceRecord) AttendanceTotals {
	totals := AttendanceTotals{
		TotalHours:    decimal.Zero,
		OvertimeHours: decimal.Zero,
	}
	for _, rec := range records {
		totals.TotalHours = totals.TotalHours.Add(rec.TotalHours)
		totals.OvertimeHours = totals.OvertimeHours.Add(rec.OvertimeHours)
	}
	totals.RegularHours = totals.TotalHours.Sub(totals.OvertimeHours)
	totals.DaysWorked = len(records)
	return totals
}
