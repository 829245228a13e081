package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/silangan-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/silangan-hr/payroll-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== RECORDS ==========

func (r *payrollRepository) Exists(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM payroll_records
			WHERE employee_id = $1 AND period_start_date = $2 AND period_end_date = $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, periodStart, periodEnd).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check payroll record existence: %w", err)
	}

	return exists, nil
}

func (r *payrollRepository) Create(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	benefitsJSON, _ := json.Marshal(record.Benefits)
	deductionsJSON, _ := json.Marshal(record.Deductions)

	query := `
		INSERT INTO payroll_records (
			id, employee_id, period_start_date, period_end_date, pay_date,
			days_worked, overtime_hours, monthly_rate, daily_rate, gross_pay,
			benefits, total_benefits, deductions, total_deductions, net_pay
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, employee_id, period_start_date, period_end_date, pay_date,
			days_worked, overtime_hours, monthly_rate, daily_rate, gross_pay,
			benefits, total_benefits, deductions, total_deductions, net_pay, created_at
	`

	var rec payroll.PayrollRecord
	var benefitsBytes, deductionsBytes []byte
	err := q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.PeriodStartDate, record.PeriodEndDate, record.PayDate,
		record.DaysWorked, record.OvertimeHours, record.MonthlyRate, record.DailyRate, record.GrossPay,
		benefitsJSON, record.TotalBenefits, deductionsJSON, record.TotalDeductions, record.NetPay,
	).Scan(
		&rec.ID, &rec.EmployeeID, &rec.PeriodStartDate, &rec.PeriodEndDate, &rec.PayDate,
		&rec.DaysWorked, &rec.OvertimeHours, &rec.MonthlyRate, &rec.DailyRate, &rec.GrossPay,
		&benefitsBytes, &rec.TotalBenefits, &deductionsBytes, &rec.TotalDeductions, &rec.NetPay, &rec.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_employee_period") {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	_ = json.Unmarshal(benefitsBytes, &rec.Benefits)
	_ = json.Unmarshal(deductionsBytes, &rec.Deductions)

	return rec, nil
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT pr.id, pr.employee_id, pr.period_start_date, pr.period_end_date, pr.pay_date,
			   pr.days_worked, pr.overtime_hours, pr.monthly_rate, pr.daily_rate, pr.gross_pay,
			   pr.benefits, pr.total_benefits, pr.deductions, pr.total_deductions, pr.net_pay, pr.created_at,
			   e.full_name as employee_name, e.employee_code
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE pr.id = $1
	`

	return r.scanRecordRow(q.QueryRow(ctx, query, id))
}

func (r *payrollRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT pr.id, pr.employee_id, pr.period_start_date, pr.period_end_date, pr.pay_date,
			   pr.days_worked, pr.overtime_hours, pr.monthly_rate, pr.daily_rate, pr.gross_pay,
			   pr.benefits, pr.total_benefits, pr.deductions, pr.total_deductions, pr.net_pay, pr.created_at,
			   e.full_name as employee_name, e.employee_code
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE pr.employee_id = $1 AND pr.period_start_date = $2 AND pr.period_end_date = $3
	`

	return r.scanRecordRow(q.QueryRow(ctx, query, employeeID, periodStart, periodEnd))
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := `
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE 1=1
	`
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != "" {
		baseQuery += fmt.Sprintf(" AND pr.employee_id = $%d", argIdx)
		args = append(args, filter.EmployeeID)
		argIdx++
	}
	if filter.PeriodStart != nil {
		baseQuery += fmt.Sprintf(" AND pr.period_start_date >= $%d", argIdx)
		args = append(args, *filter.PeriodStart)
		argIdx++
	}
	if filter.PeriodEnd != nil {
		baseQuery += fmt.Sprintf(" AND pr.period_end_date <= $%d", argIdx)
		args = append(args, *filter.PeriodEnd)
		argIdx++
	}

	var totalCount int64
	countQuery := "SELECT COUNT(*) " + baseQuery
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`
		SELECT pr.id, pr.employee_id, pr.period_start_date, pr.period_end_date, pr.pay_date,
			   pr.days_worked, pr.overtime_hours, pr.monthly_rate, pr.daily_rate, pr.gross_pay,
			   pr.benefits, pr.total_benefits, pr.deductions, pr.total_deductions, pr.net_pay, pr.created_at,
			   e.full_name as employee_name, e.employee_code
		%s
		ORDER BY pr.period_start_date DESC, e.full_name ASC
		LIMIT $%d OFFSET $%d
	`, baseQuery, argIdx, argIdx+1)

	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		rec, err := r.scanRecordRow(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}

	return records, totalCount, nil
}

// ========== REFERENCE DATA ==========

func (r *payrollRepository) GetDeductionType(ctx context.Context, code payroll.DeductionCode) (payroll.DeductionType, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT code, description FROM deduction_types WHERE code = $1`

	var t payroll.DeductionType
	err := q.QueryRow(ctx, query, code).Scan(&t.Code, &t.Description)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.DeductionType{}, payroll.ErrDeductionTypeNotFound
		}
		return payroll.DeductionType{}, fmt.Errorf("failed to get deduction type: %w", err)
	}

	return t, nil
}

func (r *payrollRepository) ListDeductionTypes(ctx context.Context) ([]payroll.DeductionType, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT code, description FROM deduction_types ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list deduction types: %w", err)
	}
	defer rows.Close()

	var types []payroll.DeductionType
	for rows.Next() {
		var t payroll.DeductionType
		if err := rows.Scan(&t.Code, &t.Description); err != nil {
			return nil, fmt.Errorf("failed to scan deduction type: %w", err)
		}
		types = append(types, t)
	}

	return types, nil
}

func (r *payrollRepository) ListBenefitTypes(ctx context.Context) ([]payroll.BenefitType, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, description FROM benefit_types ORDER BY description`)
	if err != nil {
		return nil, fmt.Errorf("failed to list benefit types: %w", err)
	}
	defer rows.Close()

	var types []payroll.BenefitType
	for rows.Next() {
		var t payroll.BenefitType
		if err := rows.Scan(&t.ID, &t.Description); err != nil {
			return nil, fmt.Errorf("failed to scan benefit type: %w", err)
		}
		types = append(types, t)
	}

	return types, nil
}

// ========== HELPERS ==========

func (r *payrollRepository) scanRecordRow(row pgx.Row) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	var benefitsBytes, deductionsBytes []byte
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.PeriodStartDate, &rec.PeriodEndDate, &rec.PayDate,
		&rec.DaysWorked, &rec.OvertimeHours, &rec.MonthlyRate, &rec.DailyRate, &rec.GrossPay,
		&benefitsBytes, &rec.TotalBenefits, &deductionsBytes, &rec.TotalDeductions, &rec.NetPay, &rec.CreatedAt,
		&rec.EmployeeName, &rec.EmployeeCode,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to scan payroll record: %w", err)
	}

	_ = json.Unmarshal(benefitsBytes, &rec.Benefits)
	_ = json.Unmarshal(deductionsBytes, &rec.Deductions)

	return rec, nil
}
