package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/silangan-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/silangan-hr/payroll-backend-go/internal/domain/employee"
	"github.com/silangan-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testPeriodStart = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	testPeriodEnd   = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	testPayDate     = time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
)

func fullCatalog() map[payroll.DeductionCode]payroll.DeductionType {
	catalog := make(map[payroll.DeductionCode]payroll.DeductionType)
	for _, code := range payroll.MandatoryDeductionCodes {
		catalog[code] = payroll.DeductionType{Code: code, Description: string(code)}
	}
	return catalog
}

func attendanceDays(t *testing.T, days int, total, overtime string) []attendance.AttendanceRecord {
	t.Helper()
	var records []attendance.AttendanceRecord
	for i := 0; i < days; i++ {
		records = append(records, attendance.AttendanceRecord{
			EmployeeID:    "emp-1",
			Date:          testPeriodStart.AddDate(0, 0, i),
			TotalHours:    dec(total),
			OvertimeHours: dec(overtime),
		})
	}
	return records
}

func deductionAmount(t *testing.T, record payroll.PayrollRecord, code payroll.DeductionCode) decimal.Decimal {
	t.Helper()
	for _, d := range record.Deductions {
		if d.DeductionCode == code {
			return d.Amount
		}
	}
	t.Fatalf("no %s deduction line on record", code)
	return decimal.Decimal{}
}

func TestAssembleRegularPeriod(t *testing.T) {
	profile := employee.CompensationProfile{
		BasicSalary: dec("30000"),
		HourlyRate:  dec("178.57"),
	}

	record, err := NewAssembler().Assemble(profile, attendanceDays(t, 10, "8", "0"), fullCatalog(), testPeriodStart, testPeriodEnd, testPayDate)
	require.NoError(t, err)

	assert.Equal(t, 10, record.DaysWorked)
	assertDecimalEqual(t, decimal.Zero, record.OvertimeHours)
	assertDecimalEqual(t, dec("30000"), record.MonthlyRate)
	assertDecimalEqual(t, dec("1428.56"), record.DailyRate) // 178.57 x 8
	assertDecimalEqual(t, dec("14285.6"), record.GrossPay)  // 178.57 x 80

	assertDecimalEqual(t, dec("551.25"), deductionAmount(t, record, payroll.DeductionCodeSSS)) // 1102.50 / 2
	assertDecimalEqual(t, dec("225"), deductionAmount(t, record, payroll.DeductionCodePhilHealth))
	assertDecimalEqual(t, dec("50"), deductionAmount(t, record, payroll.DeductionCodePagIBIG))
	// taxable 14285.60 - 826.25 = 13459.35 is under the first boundary
	assertDecimalEqual(t, decimal.Zero, deductionAmount(t, record, payroll.DeductionCodeTax))

	assertDecimalEqual(t, dec("826.25"), record.TotalDeductions)
	assertDecimalEqual(t, dec("13459.35"), record.NetPay)

	assert.Equal(t, testPeriodStart, record.PeriodStartDate)
	assert.Equal(t, testPeriodEnd, record.PeriodEndDate)
	assert.Equal(t, testPayDate, record.PayDate)
	assert.Len(t, record.Deductions, 4)
}

func TestAssembleOvertimePeriod(t *testing.T) {
	profile := employee.CompensationProfile{
		BasicSalary: dec("30000"),
		HourlyRate:  dec("100"),
	}

	record, err := NewAssembler().Assemble(profile, attendanceDays(t, 15, "14", "6"), fullCatalog(), testPeriodStart, testPeriodEnd, testPayDate)
	require.NoError(t, err)

	assert.Equal(t, 15, record.DaysWorked)
	assertDecimalEqual(t, dec("90"), record.OvertimeHours)
	// regular 120h x 100 = 12000; overtime 90h x 100 x 1.25 = 11250
	assertDecimalEqual(t, dec("23250"), record.GrossPay)
}

func TestAssembleWithBenefits(t *testing.T) {
	profile := employee.CompensationProfile{
		BasicSalary: dec("30000"),
		HourlyRate:  dec("178.57"),
		Benefits: []employee.CompensationBenefit{
			{BenefitTypeID: "benefit-rice", Amount: dec("1500")},
			{BenefitTypeID: "benefit-phone", Amount: dec("800")},
		},
	}

	record, err := NewAssembler().Assemble(profile, attendanceDays(t, 10, "8", "0"), fullCatalog(), testPeriodStart, testPeriodEnd, testPayDate)
	require.NoError(t, err)

	assertDecimalEqual(t, dec("2300"), record.TotalBenefits)
	require.Len(t, record.Benefits, 2)
	assert.Equal(t, "benefit-rice", record.Benefits[0].BenefitTypeID)
	// benefits are added on top of gross, not taxed and not deducted against
	assertDecimalEqual(t, dec("15759.35"), record.NetPay) // 13459.35 + 2300
}

func TestAssembleZeroAttendance(t *testing.T) {
	profile := employee.CompensationProfile{
		BasicSalary: dec("30000"),
		HourlyRate:  dec("178.57"),
		Benefits: []employee.CompensationBenefit{
			{BenefitTypeID: "benefit-meal", Amount: dec("1000")},
		},
	}

	record, err := NewAssembler().Assemble(profile, nil, fullCatalog(), testPeriodStart, testPeriodEnd, testPayDate)
	require.NoError(t, err)

	// statutory deductions still apply: they come off the monthly salary,
	// not off attendance
	assert.Equal(t, 0, record.DaysWorked)
	assertDecimalEqual(t, decimal.Zero, record.GrossPay)
	assertDecimalEqual(t, dec("826.25"), record.TotalDeductions)
	assertDecimalEqual(t, dec("173.75"), record.NetPay) // 1000 - 826.25
}

func TestAssembleNegativeRegularHoursFault(t *testing.T) {
	profile := employee.CompensationProfile{
		BasicSalary: dec("30000"),
		HourlyRate:  dec("178.57"),
	}
	corrupt := []attendance.AttendanceRecord{
		{Date: testPeriodStart, TotalHours: dec("4"), OvertimeHours: dec("6")},
	}

	_, err := NewAssembler().Assemble(profile, corrupt, fullCatalog(), testPeriodStart, testPeriodEnd, testPayDate)

	require.ErrorIs(t, err, payroll.ErrNegativeRegularHours)
}

func TestAssembleMissingDeductionTypeFault(t *testing.T) {
	profile := employee.CompensationProfile{
		BasicSalary: dec("30000"),
		HourlyRate:  dec("178.57"),
	}
	catalog := fullCatalog()
	delete(catalog, payroll.DeductionCodePagIBIG)

	_, err := NewAssembler().Assemble(profile, attendanceDays(t, 10, "8", "0"), catalog, testPeriodStart, testPeriodEnd, testPayDate)

	require.ErrorIs(t, err, payroll.ErrDeductionTypeNotFound)
	assert.Contains(t, err.Error(), "HDMF")
}

func TestAssembleGrossPayRoundTrip(t *testing.T) {
	// gross must equal round2(regularPay + overtimePay) exactly
	profile := employee.CompensationProfile{
		BasicSalary: dec("25000"),
		HourlyRate:  dec("148.81"),
	}
	records := attendanceDays(t, 11, "8.25", "0.25")

	record, err := NewAssembler().Assemble(profile, records, fullCatalog(), testPeriodStart, testPeriodEnd, testPayDate)
	require.NoError(t, err)

	// regular 88h x 148.81 = 13095.28; overtime 2.75h x 148.81 x 1.25 = 511.534375
	assertDecimalEqual(t, dec("13606.81"), record.GrossPay)
}
