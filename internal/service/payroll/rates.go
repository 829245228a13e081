package payroll

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Statutory rates and caps. Everything rate-shaped lives here so the
// schedules stay auditable in one place.
var (
	philHealthPremiumRate = decimal.RequireFromString("0.03")
	philHealthPremiumCap  = decimal.NewFromInt(1800)

	pagIBIGLowerRate       = decimal.RequireFromString("0.01")
	pagIBIGUpperRate       = decimal.RequireFromString("0.02")
	pagIBIGRateThreshold   = decimal.NewFromInt(1500)
	pagIBIGContributionCap = decimal.NewFromInt(100)

	overtimeMultiplier = decimal.RequireFromString("1.25")
	hoursPerDay        = decimal.NewFromInt(8)

	two = decimal.NewFromInt(2)
)

// The SSS schedule is a closed-form table: entry i covers salaries from
// 3250 + 500*i upward and charges 135 + 22.5*i per month.
const sssTableSize = 44

type sssBracket struct {
	salaryFloor  decimal.Decimal
	contribution decimal.Decimal
}

var sssTable [sssTableSize]sssBracket

// The withholding tax schedule is table-driven, not derived: the published
// bracket boundaries and base amounts must be reproduced exactly. The top
// bracket has no upper bound. Bracket floors equal the previous bracket's
// upper bound so the schedule is continuous.
type taxBracket struct {
	upperBound decimal.Decimal // ignored when unbounded
	baseAmount decimal.Decimal
	rate       decimal.Decimal
	floor      decimal.Decimal
	unbounded  bool
}

var taxTable []taxBracket

func init() {
	sssSalaryFloorBase := decimal.NewFromInt(3250)
	sssSalaryFloorStep := decimal.NewFromInt(500)
	sssContributionBase := decimal.NewFromInt(135)
	sssContributionStep := decimal.RequireFromString("22.5")

	for i := 0; i < sssTableSize; i++ {
		step := decimal.NewFromInt(int64(i))
		sssTable[i] = sssBracket{
			salaryFloor:  sssSalaryFloorBase.Add(sssSalaryFloorStep.Mul(step)),
			contribution: sssContributionBase.Add(sssContributionStep.Mul(step)),
		}
	}

	bracket := func(upper, base, rate, floor string) taxBracket {
		return taxBracket{
			upperBound: decimal.RequireFromString(upper),
			baseAmount: decimal.RequireFromString(base),
			rate:       decimal.RequireFromString(rate),
			floor:      decimal.RequireFromString(floor),
		}
	}
	taxTable = []taxBracket{
		bracket("20832", "0", "0", "0"),
		bracket("33332", "0", "0.20", "20832"),
		bracket("66666", "2500", "0.25", "33332"),
		bracket("166666", "10833.33", "0.30", "66666"),
		bracket("666666", "40833.33", "0.32", "166666"),
		{
			baseAmount: decimal.RequireFromString("200833.33"),
			rate:       decimal.RequireFromString("0.35"),
			floor:      decimal.RequireFromString("666666"),
			unbounded:  true,
		},
	}
}

// sssContributionFor finds the monthly contribution for the largest salary
// floor not exceeding basicSalary.
func sssContributionFor(basicSalary decimal.Decimal) (decimal.Decimal, bool) {
	idx := sort.Search(len(sssTable), func(i int) bool {
		return sssTable[i].salaryFloor.GreaterThan(basicSalary)
	})
	if idx == 0 {
		return decimal.Decimal{}, false
	}
	return sssTable[idx-1].contribution, true
}

// taxBracketFor picks the first bracket whose upper bound is at or above
// taxableIncome; the top bracket catches everything else.
func taxBracketFor(taxableIncome decimal.Decimal) taxBracket {
	for _, b := range taxTable {
		if !b.unbounded && taxableIncome.LessThanOrEqual(b.upperBound) {
			return b
		}
	}
	return taxTable[len(taxTable)-1]
}
