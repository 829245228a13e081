package payroll

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/silangan-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/silangan-hr/payroll-backend-go/internal/domain/employee"
	"github.com/silangan-hr/payroll-backend-go/internal/domain/payroll"
)

type Assembler struct{}

func NewAssembler() *Assembler {
	return &Assembler{}
}

// Assemble builds the payroll record for one employee and period. Amounts are
// rounded at each computation boundary, not only at the end; moving a Round
// call changes the output. The period fields on the record are the requested
// parameters, never re-derived from the attendance dates actually found.
func (a *Assembler) Assemble(
	profile employee.CompensationProfile,
	records []attendance.AttendanceRecord,
	catalog map[payroll.DeductionCode]payroll.DeductionType,
	periodStart, periodEnd, payDate time.Time,
) (payroll.PayrollRecord, error) {
	for _, code := range payroll.MandatoryDeductionCodes {
		if _, ok := catalog[code]; !ok {
			return payroll.PayrollRecord{}, fmt.Errorf("%w: %s", payroll.ErrDeductionTypeNotFound, code)
		}
	}

	totals := AggregateAttendance(records)
	if totals.RegularHours.IsNegative() {
		return payroll.PayrollRecord{}, payroll.ErrNegativeRegularHours
	}

	regularPay := profile.HourlyRate.Mul(totals.RegularHours)
	overtimePay := profile.HourlyRate.Mul(totals.OvertimeHours).Mul(overtimeMultiplier)
	grossPay := regularPay.Add(overtimePay).Round(2)

	totalBenefits := decimal.Zero
	benefits := make([]payroll.PayrollBenefit, 0, len(profile.Benefits))
	for _, b := range profile.Benefits {
		totalBenefits = totalBenefits.Add(b.Amount)
		benefits = append(benefits, payroll.PayrollBenefit{
			BenefitTypeID: b.BenefitTypeID,
			Amount:        b.Amount,
		})
	}

	// Statutory deductions come off the monthly basic salary, independent of
	// attendance. The withholding tax comes off this period's taxable income.
	sss := SSSDeduction(profile.BasicSalary)
	philHealth := PhilHealthDeduction(profile.BasicSalary)
	pagIBIG := PagIBIGDeduction(profile.BasicSalary)
	statutoryTotal := sss.Add(philHealth).Add(pagIBIG).Round(2)

	taxableIncome := grossPay.Sub(statutoryTotal).Round(2)
	tax := WithholdingTax(taxableIncome)

	totalDeductions := statutoryTotal.Add(tax).Round(2)
	netPay := grossPay.Add(totalBenefits).Sub(statutoryTotal).Sub(tax).Round(2)

	deductions := []payroll.Deduction{
		{DeductionCode: payroll.DeductionCodeSSS, Amount: sss},
		{DeductionCode: payroll.DeductionCodePhilHealth, Amount: philHealth},
		{DeductionCode: payroll.DeductionCodePagIBIG, Amount: pagIBIG},
		{DeductionCode: payroll.DeductionCodeTax, Amount: tax},
	}

	return payroll.PayrollRecord{
		PeriodStartDate: periodStart,
		PeriodEndDate:   periodEnd,
		PayDate:         payDate,
		DaysWorked:      totals.DaysWorked,
		OvertimeHours:   totals.OvertimeHours,
		MonthlyRate:     profile.BasicSalary,
		DailyRate:       profile.HourlyRate.Mul(hoursPerDay).Round(2),
		GrossPay:        grossPay,
		Benefits:        benefits,
		TotalBenefits:   totalBenefits,
		Deductions:      deductions,
		TotalDeductions: totalDeductions,
		NetPay:          netPay,
	}, nil
}
