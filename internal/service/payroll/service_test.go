package payroll

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/silangan-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/silangan-hr/payroll-backend-go/internal/domain/employee"
	"github.com/silangan-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== IN-MEMORY FAKES =====

type fakePayrollRepo struct {
	mu             sync.Mutex
	records        map[string]payroll.PayrollRecord // keyed by employee|start|end
	deductionTypes []payroll.DeductionType
	benefitTypes   []payroll.BenefitType
	createErr      error
	skipPrecheck   bool // simulate a lost existence-check race
}

func newFakePayrollRepo() *fakePayrollRepo {
	var types []payroll.DeductionType
	for _, code := range payroll.MandatoryDeductionCodes {
		types = append(types, payroll.DeductionType{Code: code, Description: string(code)})
	}
	return &fakePayrollRepo{
		records:        make(map[string]payroll.PayrollRecord),
		deductionTypes: types,
	}
}

func recordKey(employeeID string, start, end time.Time) string {
	return fmt.Sprintf("%s|%s|%s", employeeID, start.Format("2006-01-02"), end.Format("2006-01-02"))
}

func (f *fakePayrollRepo) Exists(_ context.Context, employeeID string, periodStart, periodEnd time.Time) (bool, error) {
	if f.skipPrecheck {
		return false, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.records[recordKey(employeeID, periodStart, periodEnd)]
	return ok, nil
}

func (f *fakePayrollRepo) Create(_ context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	if f.createErr != nil {
		return payroll.PayrollRecord{}, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := recordKey(record.EmployeeID, record.PeriodStartDate, record.PeriodEndDate)
	if _, ok := f.records[key]; ok {
		// same mapping a unique index violation gets in the pgx repository
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
	}
	record.CreatedAt = time.Now()
	f.records[key] = record
	return record, nil
}

func (f *fakePayrollRepo) GetByID(_ context.Context, id string) (payroll.PayrollRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
}

func (f *fakePayrollRepo) GetByEmployeePeriod(_ context.Context, employeeID string, periodStart, periodEnd time.Time) (payroll.PayrollRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.records[recordKey(employeeID, periodStart, periodEnd)]; ok {
		return r, nil
	}
	return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
}

func (f *fakePayrollRepo) List(_ context.Context, _ payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []payroll.PayrollRecord
	for _, r := range f.records {
		result = append(result, r)
	}
	return result, int64(len(result)), nil
}

func (f *fakePayrollRepo) GetDeductionType(_ context.Context, code payroll.DeductionCode) (payroll.DeductionType, error) {
	for _, t := range f.deductionTypes {
		if t.Code == code {
			return t, nil
		}
	}
	return payroll.DeductionType{}, payroll.ErrDeductionTypeNotFound
}

func (f *fakePayrollRepo) ListDeductionTypes(_ context.Context) ([]payroll.DeductionType, error) {
	return f.deductionTypes, nil
}

func (f *fakePayrollRepo) ListBenefitTypes(_ context.Context) ([]payroll.BenefitType, error) {
	return f.benefitTypes, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
	activeIDs []string
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	if emp, ok := f.employees[id]; ok {
		return emp, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetActiveIDs(_ context.Context) ([]string, error) {
	return f.activeIDs, nil
}

func (f *fakeEmployeeRepo) List(_ context.Context, _ employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	var result []employee.Employee
	for _, emp := range f.employees {
		result = append(result, emp)
	}
	return result, int64(len(result)), nil
}

type fakeAttendanceRepo struct {
	records map[string][]attendance.AttendanceRecord
	err     error
}

func (f *fakeAttendanceRepo) ListByEmployeePeriod(_ context.Context, employeeID string, periodStart, periodEnd time.Time) ([]attendance.AttendanceRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []attendance.AttendanceRecord
	for _, rec := range f.records[employeeID] {
		if rec.Date.Before(periodStart) || rec.Date.After(periodEnd) {
			continue
		}
		result = append(result, rec)
	}
	return result, nil
}

// ===== FIXTURES =====

func testEmployee(id string, basicSalary, hourlyRate string) employee.Employee {
	return employee.Employee{
		ID:               id,
		EmployeeCode:     "2024-0001",
		FullName:         "Test Employee",
		EmploymentStatus: employee.EmploymentStatusActive,
		Compensation: employee.CompensationProfile{
			BasicSalary: dec(basicSalary),
			HourlyRate:  dec(hourlyRate),
		},
	}
}

func fixedAttendance(employeeID string, days int) []attendance.AttendanceRecord {
	var records []attendance.AttendanceRecord
	for i := 0; i < days; i++ {
		records = append(records, attendance.AttendanceRecord{
			EmployeeID:    employeeID,
			Date:          testPeriodStart.AddDate(0, 0, i),
			TotalHours:    dec("8"),
			OvertimeHours: dec("0"),
		})
	}
	return records
}

type serviceFixture struct {
	payrollRepo    *fakePayrollRepo
	employeeRepo   *fakeEmployeeRepo
	attendanceRepo *fakeAttendanceRepo
	service        payroll.PayrollService
}

func newServiceFixture(workers, skipBudget int) *serviceFixture {
	payrollRepo := newFakePayrollRepo()
	employeeRepo := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	attendanceRepo := &fakeAttendanceRepo{records: make(map[string][]attendance.AttendanceRecord)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &serviceFixture{
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		service:        NewPayrollService(payrollRepo, employeeRepo, attendanceRepo, logger, workers, skipBudget),
	}
}

func (f *serviceFixture) addEmployee(emp employee.Employee, days int) {
	f.employeeRepo.employees[emp.ID] = emp
	f.employeeRepo.activeIDs = append(f.employeeRepo.activeIDs, emp.ID)
	if days > 0 {
		f.attendanceRepo.records[emp.ID] = fixedAttendance(emp.ID, days)
	}
}

func createRequest(employeeID string) payroll.CreatePayrollRequest {
	return payroll.CreatePayrollRequest{
		EmployeeID:  employeeID,
		PeriodStart: "2025-06-01",
		PeriodEnd:   "2025-06-15",
		PayDate:     "2025-06-20",
	}
}

func runRequest() payroll.GeneratePayrollRunRequest {
	return payroll.GeneratePayrollRunRequest{
		PeriodStart: "2025-06-01",
		PeriodEnd:   "2025-06-15",
		PayDate:     "2025-06-20",
	}
}

// ===== CREATE ONE =====

func TestCreatePayroll_Success(t *testing.T) {
	f := newServiceFixture(1, 10)
	f.addEmployee(testEmployee("emp-1", "30000", "178.57"), 10)

	result, err := f.service.CreatePayroll(context.Background(), createRequest("emp-1"))
	require.NoError(t, err)

	assert.NotEmpty(t, result.ID)
	assert.Equal(t, "emp-1", result.EmployeeID)
	assert.Equal(t, 10, result.DaysWorked)
	assertDecimalEqual(t, dec("14285.6"), result.GrossPay)
	assertDecimalEqual(t, dec("826.25"), result.TotalDeductions)
	assertDecimalEqual(t, dec("13459.35"), result.NetPay)
	assert.Equal(t, "2025-06-01", result.PeriodStartDate)
	assert.Equal(t, "2025-06-20", result.PayDate)
	assert.Len(t, result.Deductions, 4)
}

func TestCreatePayroll_SecondCallConflicts(t *testing.T) {
	f := newServiceFixture(1, 10)
	f.addEmployee(testEmployee("emp-1", "30000", "178.57"), 10)
	ctx := context.Background()

	_, err := f.service.CreatePayroll(ctx, createRequest("emp-1"))
	require.NoError(t, err)

	_, err = f.service.CreatePayroll(ctx, createRequest("emp-1"))
	require.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyExists)

	// still exactly one persisted record
	_, total, err := f.payrollRepo.List(ctx, payroll.PayrollFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestCreatePayroll_InsertRaceMapsToConflict(t *testing.T) {
	// when a concurrent run wins between the existence check and the insert,
	// the unique-violation error from the insert must look like the pre-check
	f := newServiceFixture(1, 10)
	f.addEmployee(testEmployee("emp-1", "30000", "178.57"), 10)
	ctx := context.Background()

	_, err := f.service.CreatePayroll(ctx, createRequest("emp-1"))
	require.NoError(t, err)

	f.payrollRepo.skipPrecheck = true
	_, err = f.service.CreatePayroll(ctx, createRequest("emp-1"))
	require.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyExists)
}

func TestCreatePayroll_ValidationFault(t *testing.T) {
	f := newServiceFixture(1, 10)

	_, err := f.service.CreatePayroll(context.Background(), payroll.CreatePayrollRequest{
		EmployeeID:  "emp-1",
		PeriodStart: "not-a-date",
		PeriodEnd:   "2025-06-15",
		PayDate:     "2025-06-20",
	})

	require.Error(t, err)
}

func TestCreatePayroll_UnknownEmployee(t *testing.T) {
	f := newServiceFixture(1, 10)

	_, err := f.service.CreatePayroll(context.Background(), createRequest("ghost"))

	require.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCreatePayroll_MissingDeductionTypeIsFatal(t *testing.T) {
	f := newServiceFixture(1, 10)
	f.addEmployee(testEmployee("emp-1", "30000", "178.57"), 10)
	// drop TAX from the catalog
	f.payrollRepo.deductionTypes = f.payrollRepo.deductionTypes[:3]
	ctx := context.Background()

	_, err := f.service.CreatePayroll(ctx, createRequest("emp-1"))
	require.ErrorIs(t, err, payroll.ErrDeductionTypeNotFound)

	// nothing partially persisted
	_, total, err := f.payrollRepo.List(ctx, payroll.PayrollFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

// ===== BATCH RUN =====

func TestGeneratePayrollRun_AllCreated(t *testing.T) {
	f := newServiceFixture(4, 10)
	for i := 0; i < 20; i++ {
		f.addEmployee(testEmployee(fmt.Sprintf("emp-%d", i), "30000", "178.57"), 10)
	}

	summary, err := f.service.GeneratePayrollRun(context.Background(), runRequest())
	require.NoError(t, err)

	assert.Equal(t, 20, summary.Created)
	assert.Equal(t, 0, summary.SkippedExisting)
	assert.Equal(t, 0, summary.SkippedFailed)
	assert.Len(t, summary.Items, 20)
}

func TestGeneratePayrollRun_SkipsExisting(t *testing.T) {
	f := newServiceFixture(4, 10)
	for i := 0; i < 5; i++ {
		f.addEmployee(testEmployee(fmt.Sprintf("emp-%d", i), "30000", "178.57"), 10)
	}
	ctx := context.Background()

	// emp-2 already has a payroll for the period
	_, err := f.service.CreatePayroll(ctx, createRequest("emp-2"))
	require.NoError(t, err)

	summary, err := f.service.GeneratePayrollRun(ctx, runRequest())
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Created)
	assert.Equal(t, 1, summary.SkippedExisting)
	assert.Equal(t, 0, summary.SkippedFailed)
}

func TestGeneratePayrollRun_FaultsBecomeSkips(t *testing.T) {
	f := newServiceFixture(4, 10)
	f.addEmployee(testEmployee("emp-ok", "30000", "178.57"), 10)
	f.addEmployee(testEmployee("emp-nosalary", "0", "0"), 10)

	summary, err := f.service.GeneratePayrollRun(context.Background(), runRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, summary.SkippedFailed)

	var failedItem payroll.PayrollRunItem
	for _, item := range summary.Items {
		if item.Outcome == payroll.RunItemSkippedFailed {
			failedItem = item
		}
	}
	assert.Equal(t, "emp-nosalary", failedItem.EmployeeID)
	assert.NotEmpty(t, failedItem.Reason)
}

func TestGeneratePayrollRun_SkipBudgetAbortsRun(t *testing.T) {
	// one worker keeps the item order deterministic
	f := newServiceFixture(1, 1)
	f.addEmployee(testEmployee("emp-0", "0", "0"), 0) // fails: no salary
	f.addEmployee(testEmployee("emp-1", "0", "0"), 0) // fails: budget exceeded here
	f.addEmployee(testEmployee("emp-2", "30000", "178.57"), 10)

	summary, err := f.service.GeneratePayrollRun(context.Background(), runRequest())

	require.ErrorIs(t, err, payroll.ErrRunSkipBudgetExceeded)
	assert.Equal(t, 0, summary.Created)
	assert.Equal(t, 2, summary.SkippedFailed)
	// emp-2 was never attempted
	for _, item := range summary.Items {
		assert.NotEqual(t, "emp-2", item.EmployeeID)
	}
}

func TestGeneratePayrollRun_CreatedCountSurvivesAbort(t *testing.T) {
	f := newServiceFixture(1, 1)
	f.addEmployee(testEmployee("emp-0", "30000", "178.57"), 10)
	f.addEmployee(testEmployee("emp-1", "0", "0"), 0)
	f.addEmployee(testEmployee("emp-2", "0", "0"), 0)
	f.addEmployee(testEmployee("emp-3", "30000", "178.57"), 10)

	summary, err := f.service.GeneratePayrollRun(context.Background(), runRequest())

	require.ErrorIs(t, err, payroll.ErrRunSkipBudgetExceeded)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 2, summary.SkippedFailed)
}

func TestGeneratePayrollRun_CancelledContext(t *testing.T) {
	f := newServiceFixture(2, 10)
	f.addEmployee(testEmployee("emp-0", "30000", "178.57"), 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := f.service.GeneratePayrollRun(ctx, runRequest())

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, summary.Created)
}

func TestGeneratePayrollRun_RerunIsIdempotent(t *testing.T) {
	f := newServiceFixture(4, 10)
	for i := 0; i < 5; i++ {
		f.addEmployee(testEmployee(fmt.Sprintf("emp-%d", i), "30000", "178.57"), 10)
	}
	ctx := context.Background()

	first, err := f.service.GeneratePayrollRun(ctx, runRequest())
	require.NoError(t, err)
	assert.Equal(t, 5, first.Created)

	second, err := f.service.GeneratePayrollRun(ctx, runRequest())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 5, second.SkippedExisting)
}
