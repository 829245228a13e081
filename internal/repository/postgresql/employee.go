package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/silangan-hr/payroll-backend-go/internal/domain/employee"
	"github.com/silangan-hr/payroll-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_code, full_name, employment_status, hire_date,
			   basic_salary, hourly_rate, created_at, updated_at
		FROM employees
		WHERE id = $1 AND deleted_at IS NULL
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.EmploymentStatus, &emp.HireDate,
		&emp.Compensation.BasicSalary, &emp.Compensation.HourlyRate, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	benefits, err := r.getBenefits(ctx, id)
	if err != nil {
		return employee.Employee{}, err
	}
	emp.Compensation.Benefits = benefits

	return emp, nil
}

func (r *employeeRepository) GetActiveIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id FROM employees
		WHERE employment_status = 'active' AND deleted_at IS NULL
		ORDER BY employee_code
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (r *employeeRepository) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := ` FROM employees WHERE deleted_at IS NULL`
	args := []interface{}{}
	argIdx := 1

	if filter.Status != "" {
		baseQuery += fmt.Sprintf(" AND employment_status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}

	var totalCount int64
	countQuery := "SELECT COUNT(*)" + baseQuery
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`
		SELECT id, employee_code, full_name, employment_status, hire_date,
			   basic_salary, hourly_rate, created_at, updated_at
		%s
		ORDER BY employee_code
		LIMIT $%d OFFSET $%d
	`, baseQuery, argIdx, argIdx+1)

	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(
			&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.EmploymentStatus, &emp.HireDate,
			&emp.Compensation.BasicSalary, &emp.Compensation.HourlyRate, &emp.CreatedAt, &emp.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, totalCount, nil
}

func (r *employeeRepository) getBenefits(ctx context.Context, employeeID string) ([]employee.CompensationBenefit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT benefit_type_id, amount
		FROM employee_benefits
		WHERE employee_id = $1
		ORDER BY benefit_type_id
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee benefits: %w", err)
	}
	defer rows.Close()

	var benefits []employee.CompensationBenefit
	for rows.Next() {
		var b employee.CompensationBenefit
		if err := rows.Scan(&b.BenefitTypeID, &b.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan employee benefit: %w", err)
		}
		benefits = append(benefits, b)
	}

	return benefits, nil
}
