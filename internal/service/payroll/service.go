package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/silangan-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/silangan-hr/payroll-backend-go/internal/domain/employee"
	"github.com/silangan-hr/payroll-backend-go/internal/domain/payroll"
)

const (
	defaultRunWorkers    = 4
	defaultRunSkipBudget = 50
)

type PayrollServiceImpl struct {
	payrollRepo    payroll.PayrollRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	assembler      *Assembler
	logger         *slog.Logger
	runWorkers     int
	runSkipBudget  int
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	logger *slog.Logger,
	runWorkers int,
	runSkipBudget int,
) payroll.PayrollService {
	if runWorkers <= 0 {
		runWorkers = defaultRunWorkers
	}
	if runSkipBudget <= 0 {
		runSkipBudget = defaultRunSkipBudget
	}
	return &PayrollServiceImpl{
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		assembler:      NewAssembler(),
		logger:         logger,
		runWorkers:     runWorkers,
		runSkipBudget:  runSkipBudget,
	}
}

// ========== SINGLE EMPLOYEE ==========

func (s *PayrollServiceImpl) CreatePayroll(ctx context.Context, req payroll.CreatePayrollRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	periodStart, periodEnd, payDate := req.Period()

	catalog, err := s.deductionCatalog(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := s.create(ctx, req.EmployeeID, catalog, periodStart, periodEnd, payDate)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return mapToRecordResponse(record), nil
}

// create runs the whole pipeline for one employee: existence check, data
// pulls, assembly, persist. All-or-nothing; nothing is persisted on error.
func (s *PayrollServiceImpl) create(
	ctx context.Context,
	employeeID string,
	catalog map[payroll.DeductionCode]payroll.DeductionType,
	periodStart, periodEnd, payDate time.Time,
) (payroll.PayrollRecord, error) {
	exists, err := s.payrollRepo.Exists(ctx, employeeID, periodStart, periodEnd)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to check existing payroll record: %w", err)
	}
	if exists {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}
	if !emp.Compensation.BasicSalary.IsPositive() {
		return payroll.PayrollRecord{}, employee.ErrEmployeeHasNoSalary
	}

	records, err := s.attendanceRepo.ListByEmployeePeriod(ctx, employeeID, periodStart, periodEnd)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to load attendance: %w", err)
	}

	record, err := s.assembler.Assemble(emp.Compensation, records, catalog, periodStart, periodEnd, payDate)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}
	record.ID = uuid.NewString()
	record.EmployeeID = employeeID

	// A concurrent creation for the same tuple can slip past the pre-check;
	// the repository maps the unique constraint violation back to
	// ErrPayrollRecordAlreadyExists so both paths look identical to callers.
	created, err := s.payrollRepo.Create(ctx, record)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}
	return created, nil
}

// ========== BATCH RUN ==========

func (s *PayrollServiceImpl) GeneratePayrollRun(ctx context.Context, req payroll.GeneratePayrollRunRequest) (payroll.PayrollRunSummary, error) {
	var summary payroll.PayrollRunSummary
	if err := req.Validate(); err != nil {
		return summary, err
	}
	periodStart, periodEnd, payDate := req.Period()

	ids, err := s.employeeRepo.GetActiveIDs(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to resolve active employees: %w", err)
	}

	catalog, err := s.deductionCatalog(ctx)
	if err != nil {
		return summary, err
	}

	// Employees are independent, so creations fan out over a bounded worker
	// pool. Outcome accounting stays behind one mutex; exceeding the skip
	// budget cancels the group and the remaining workers stop at their
	// iteration boundary.
	var mu sync.Mutex
	failed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.runWorkers)

	for _, employeeID := range ids {
		employeeID := employeeID
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil // left pending, never attempted
			}
			_, err := s.create(gctx, employeeID, catalog, periodStart, periodEnd, payDate)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				summary.Created++
				summary.Items = append(summary.Items, payroll.PayrollRunItem{
					EmployeeID: employeeID,
					Outcome:    payroll.RunItemCreated,
				})
			case errors.Is(err, payroll.ErrPayrollRecordAlreadyExists):
				summary.SkippedExisting++
				summary.Items = append(summary.Items, payroll.PayrollRunItem{
					EmployeeID: employeeID,
					Outcome:    payroll.RunItemSkippedExisting,
					Reason:     err.Error(),
				})
			default:
				summary.SkippedFailed++
				summary.Items = append(summary.Items, payroll.PayrollRunItem{
					EmployeeID: employeeID,
					Outcome:    payroll.RunItemSkippedFailed,
					Reason:     err.Error(),
				})
				s.logger.Warn("payroll run item failed",
					slog.String("employee_id", employeeID),
					slog.String("error", err.Error()),
				)
				failed++
				if failed > s.runSkipBudget {
					return payroll.ErrRunSkipBudgetExceeded
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error("payroll run aborted",
			slog.Int("created", summary.Created),
			slog.Int("skipped_failed", summary.SkippedFailed),
			slog.String("error", err.Error()),
		)
		return summary, err
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	s.logger.Info("payroll run finished",
		slog.Int("employees", len(ids)),
		slog.Int("created", summary.Created),
		slog.Int("skipped_existing", summary.SkippedExisting),
		slog.Int("skipped_failed", summary.SkippedFailed),
	)
	return summary, nil
}

// ========== QUERIES ==========

func (s *PayrollServiceImpl) GetPayrollRecord(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return mapToRecordResponse(record), nil
}

func (s *PayrollServiceImpl) ListPayrollRecords(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollRecordResponse, error) {
	records, totalCount, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}

	return payroll.ListPayrollRecordResponse{
		Data:       mapToRecordResponses(records),
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) ListDeductionTypes(ctx context.Context) ([]payroll.DeductionTypeResponse, error) {
	types, err := s.payrollRepo.ListDeductionTypes(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.DeductionTypeResponse, 0, len(types))
	for _, t := range types {
		result = append(result, payroll.DeductionTypeResponse{
			Code:        string(t.Code),
			Description: t.Description,
		})
	}
	return result, nil
}

// ========== HELPERS ==========

func (s *PayrollServiceImpl) deductionCatalog(ctx context.Context) (map[payroll.DeductionCode]payroll.DeductionType, error) {
	types, err := s.payrollRepo.ListDeductionTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load deduction type catalog: %w", err)
	}
	catalog := make(map[payroll.DeductionCode]payroll.DeductionType, len(types))
	for _, t := range types {
		catalog[t.Code] = t
	}
	return catalog, nil
}

func mapToRecordResponse(r payroll.PayrollRecord) payroll.PayrollRecordResponse {
	employeeName := ""
	employeeCode := ""
	if r.EmployeeName != nil {
		employeeName = *r.EmployeeName
	}
	if r.EmployeeCode != nil {
		employeeCode = *r.EmployeeCode
	}

	return payroll.PayrollRecordResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    employeeName,
		EmployeeCode:    employeeCode,
		PeriodStartDate: r.PeriodStartDate.Format("2006-01-02"),
		PeriodEndDate:   r.PeriodEndDate.Format("2006-01-02"),
		PayDate:         r.PayDate.Format("2006-01-02"),
		DaysWorked:      r.DaysWorked,
		OvertimeHours:   r.OvertimeHours,
		MonthlyRate:     r.MonthlyRate,
		DailyRate:       r.DailyRate,
		GrossPay:        r.GrossPay,
		Benefits:        r.Benefits,
		TotalBenefits:   r.TotalBenefits,
		Deductions:      r.Deductions,
		TotalDeductions: r.TotalDeductions,
		NetPay:          r.NetPay,
	}
}

func mapToRecordResponses(records []payroll.PayrollRecord) []payroll.PayrollRecordResponse {
	result := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, mapToRecordResponse(r))
	}
	return result
}
