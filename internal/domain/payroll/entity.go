package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeductionCode identifies a mandatory statutory deduction. Every payroll
// record carries exactly one line per code.
type DeductionCode string

const (
	DeductionCodeSSS        DeductionCode = "SSS"
	DeductionCodePhilHealth DeductionCode = "PHIC"
	DeductionCodePagIBIG    DeductionCode = "HDMF"
	DeductionCodeTax        DeductionCode = "TAX"
)

// MandatoryDeductionCodes lists the codes that must exist in the catalog
// before any payroll can be assembled.
var MandatoryDeductionCodes = []DeductionCode{
	DeductionCodeSSS,
	DeductionCodePhilHealth,
	DeductionCodePagIBIG,
	DeductionCodeTax,
}

// DeductionType - static catalog entry for a statutory deduction
type DeductionType struct {
	Code        DeductionCode
	Description string
}

// BenefitType - static catalog entry for a recurring benefit
type BenefitType struct {
	ID          string
	Description string
}

// Deduction is one statutory line on a payroll record.
type Deduction struct {
	DeductionCode DeductionCode   `json:"deduction_code"`
	Amount        decimal.Decimal `json:"amount"`
}

// PayrollBenefit is a snapshot of a compensation benefit at generation time.
type PayrollBenefit struct {
	BenefitTypeID string          `json:"benefit_type_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// PayrollRecord - Generated payroll result. One per
// (employee, period start, period end); immutable once created.
type PayrollRecord struct {
	ID              string
	EmployeeID      string
	PeriodStartDate time.Time
	PeriodEndDate   time.Time
	PayDate         time.Time
	DaysWorked      int
	OvertimeHours   decimal.Decimal
	MonthlyRate     decimal.Decimal // basic salary snapshot
	DailyRate       decimal.Decimal // hourly rate x 8
	GrossPay        decimal.Decimal
	Benefits        []PayrollBenefit
	TotalBenefits   decimal.Decimal
	Deductions      []Deduction
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal
	CreatedAt       time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}
