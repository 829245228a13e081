package payroll

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/silangan-hr/payroll-backend-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

// ========== GENERATION DTOs ==========

type CreatePayrollRequest struct {
	EmployeeID  string `json:"employee_id"`
	PeriodStart string `json:"period_start"` // YYYY-MM-DD
	PeriodEnd   string `json:"period_end"`   // YYYY-MM-DD
	PayDate     string `json:"pay_date"`     // YYYY-MM-DD
}

func (r *CreatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	errs = append(errs, validatePeriod(r.PeriodStart, r.PeriodEnd, r.PayDate)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Period returns the parsed period fields. Call Validate first.
func (r *CreatePayrollRequest) Period() (start, end, payDate time.Time) {
	return mustParsePeriod(r.PeriodStart, r.PeriodEnd, r.PayDate)
}

type GeneratePayrollRunRequest struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	PayDate     string `json:"pay_date"`
}

func (r *GeneratePayrollRunRequest) Validate() error {
	errs := validatePeriod(r.PeriodStart, r.PeriodEnd, r.PayDate)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *GeneratePayrollRunRequest) Period() (start, end, payDate time.Time) {
	return mustParsePeriod(r.PeriodStart, r.PeriodEnd, r.PayDate)
}

func validatePeriod(start, end, payDate string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	startAt, err := time.Parse(dateLayout, start)
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	endAt, err := time.Parse(dateLayout, end)
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if _, err := time.Parse(dateLayout, payDate); err != nil {
		errs = append(errs, validator.ValidationError{Field: "pay_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if len(errs) == 0 && endAt.Before(startAt) {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must not be before period_start"})
	}
	return errs
}

func mustParsePeriod(start, end, payDate string) (time.Time, time.Time, time.Time) {
	startAt, _ := time.Parse(dateLayout, start)
	endAt, _ := time.Parse(dateLayout, end)
	payAt, _ := time.Parse(dateLayout, payDate)
	return startAt, endAt, payAt
}

// ========== RUN SUMMARY ==========

type RunItemOutcome string

const (
	RunItemCreated         RunItemOutcome = "created"
	RunItemSkippedExisting RunItemOutcome = "skipped_existing"
	RunItemSkippedFailed   RunItemOutcome = "skipped_failed"
)

type PayrollRunItem struct {
	EmployeeID string         `json:"employee_id"`
	Outcome    RunItemOutcome `json:"outcome"`
	Reason     string         `json:"reason,omitempty"`
}

// PayrollRunSummary reports the outcome of a batch run. Created counts the
// records persisted before any abort.
type PayrollRunSummary struct {
	Created         int              `json:"created"`
	SkippedExisting int              `json:"skipped_existing"`
	SkippedFailed   int              `json:"skipped_failed"`
	Items           []PayrollRunItem `json:"items"`
}

// ========== RECORD DTOs ==========

type PayrollFilter struct {
	EmployeeID  string
	PeriodStart *time.Time
	PeriodEnd   *time.Time
	Page        int
	Limit       int
}

type PayrollRecordResponse struct {
	ID              string           `json:"id"`
	EmployeeID      string           `json:"employee_id"`
	EmployeeName    string           `json:"employee_name,omitempty"`
	EmployeeCode    string           `json:"employee_code,omitempty"`
	PeriodStartDate string           `json:"period_start_date"`
	PeriodEndDate   string           `json:"period_end_date"`
	PayDate         string           `json:"pay_date"`
	DaysWorked      int              `json:"days_worked"`
	OvertimeHours   decimal.Decimal  `json:"overtime_hours"`
	MonthlyRate     decimal.Decimal  `json:"monthly_rate"`
	DailyRate       decimal.Decimal  `json:"daily_rate"`
	GrossPay        decimal.Decimal  `json:"gross_pay"`
	Benefits        []PayrollBenefit `json:"benefits"`
	TotalBenefits   decimal.Decimal  `json:"total_benefits"`
	Deductions      []Deduction      `json:"deductions"`
	TotalDeductions decimal.Decimal  `json:"total_deductions"`
	NetPay          decimal.Decimal  `json:"net_pay"`
}

type ListPayrollRecordResponse struct {
	Data       []PayrollRecordResponse `json:"data"`
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
}

type DeductionTypeResponse struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
