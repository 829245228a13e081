package attendance

import (
	"context"
	"time"

	"github.com/silangan-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/silangan-hr/payroll-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{attendanceRepo: attendanceRepo}
}

func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, employeeID string, periodStart, periodEnd string) ([]attendance.AttendanceRecordResponse, error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(employeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	startAt, err := time.Parse("2006-01-02", periodStart)
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	endAt, err := time.Parse("2006-01-02", periodEnd)
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	records, err := s.attendanceRepo.ListByEmployeePeriod(ctx, employeeID, startAt, endAt)
	if err != nil {
		return nil, err
	}

	result := make([]attendance.AttendanceRecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, attendance.AttendanceRecordResponse{
			ID:            r.ID,
			EmployeeID:    r.EmployeeID,
			Date:          r.Date.Format("2006-01-02"),
			TotalHours:    r.TotalHours,
			OvertimeHours: r.OvertimeHours,
		})
	}
	return result, nil
}
