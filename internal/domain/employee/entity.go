package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID               string
	EmployeeCode     string
	FullName         string
	EmploymentStatus EmploymentStatus
	HireDate         time.Time
	Compensation     CompensationProfile
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

// CompensationProfile is owned 1:1 by the employee. HR edits it; the payroll
// engine only reads it.
type CompensationProfile struct {
	BasicSalary decimal.Decimal // monthly
	HourlyRate  decimal.Decimal
	Benefits    []CompensationBenefit
}

// CompensationBenefit is a recurring allowance attached to the profile,
// e.g. meal or rice allowance.
type CompensationBenefit struct {
	BenefitTypeID string
	Amount        decimal.Decimal
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)
