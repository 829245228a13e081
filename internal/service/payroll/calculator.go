package payroll

import "github.com/shopspring/decimal"

// Every deduction here is a per-run (semi-monthly) amount: one monthly
// contribution is split across the two payroll runs in a month, so each
// function halves the monthly figure before returning it.

// SSSDeduction computes the employee's SSS contribution for one run from
// their monthly basic salary. Salaries below the schedule's lowest floor
// still pay the minimum contribution.
func SSSDeduction(basicSalary decimal.Decimal) decimal.Decimal {
	if basicSalary.LessThan(sssTable[0].salaryFloor) {
		return sssTable[0].contribution.Div(two)
	}
	contribution, ok := sssContributionFor(basicSalary)
	if !ok {
		// unreachable given the minimum-floor branch above
		return decimal.Zero
	}
	return contribution.Div(two)
}

// PhilHealthDeduction computes the employee share of the PhilHealth premium
// for one run. The premium is 3% of the monthly salary capped at 1800, split
// 50-50 with the employer, then split across the two runs. The two halvings
// round independently.
func PhilHealthDeduction(basicSalary decimal.Decimal) decimal.Decimal {
	monthlyPremium := basicSalary.Mul(philHealthPremiumRate)
	if monthlyPremium.GreaterThan(philHealthPremiumCap) {
		monthlyPremium = philHealthPremiumCap
	}
	employeeShare := monthlyPremium.Div(two).Round(2)
	return employeeShare.Div(two).Round(2)
}

// PagIBIGDeduction computes the Pag-IBIG contribution for one run: 2% of the
// monthly salary above the 1500 threshold, 1% at or below it, capped at 100
// per month.
func PagIBIGDeduction(basicSalary decimal.Decimal) decimal.Decimal {
	rate := pagIBIGLowerRate
	if basicSalary.GreaterThan(pagIBIGRateThreshold) {
		rate = pagIBIGUpperRate
	}
	contribution := basicSalary.Mul(rate)
	if contribution.GreaterThan(pagIBIGContributionCap) {
		contribution = pagIBIGContributionCap
	}
	return contribution.Div(two).Round(2)
}

// WithholdingTax computes the progressive withholding tax for one run from
// the period's taxable income (gross pay minus the statutory deductions).
func WithholdingTax(taxableIncome decimal.Decimal) decimal.Decimal {
	b := taxBracketFor(taxableIncome)
	monthly := b.baseAmount.Add(taxableIncome.Sub(b.floor).Mul(b.rate))
	return monthly.Div(two).Round(2)
}
