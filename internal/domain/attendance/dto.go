package attendance

import "github.com/shopspring/decimal"

type AttendanceRecordResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	Date          string          `json:"date"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
}
