package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceRecord is one day of clocked time for one employee. Records are
// produced by the clock-in/out workflow; the payroll engine only reads them.
type AttendanceRecord struct {
	ID            string
	EmployeeID    string
	Date          time.Time
	TotalHours    decimal.Decimal // 2-decimal
	OvertimeHours decimal.Decimal // 2-decimal, never exceeds TotalHours
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
