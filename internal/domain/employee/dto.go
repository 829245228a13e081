package employee

import "github.com/shopspring/decimal"

type EmployeeFilter struct {
	Status string
	Page   int
	Limit  int
}

type BenefitResponse struct {
	BenefitTypeID string          `json:"benefit_type_id"`
	Amount        decimal.Decimal `json:"amount"`
}

type EmployeeResponse struct {
	ID               string            `json:"id"`
	EmployeeCode     string            `json:"employee_code"`
	FullName         string            `json:"full_name"`
	EmploymentStatus string            `json:"employment_status"`
	HireDate         string            `json:"hire_date"`
	BasicSalary      decimal.Decimal   `json:"basic_salary"`
	HourlyRate       decimal.Decimal   `json:"hourly_rate"`
	Benefits         []BenefitResponse `json:"benefits"`
}

type ListEmployeeResponse struct {
	Data       []EmployeeResponse `json:"data"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}
