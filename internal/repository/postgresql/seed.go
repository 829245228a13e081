package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/silangan-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/silangan-hr/payroll-backend-go/internal/pkg/database"
)

var deductionTypeDescriptions = map[payroll.DeductionCode]string{
	payroll.DeductionCodeSSS:        "Social Security System contribution",
	payroll.DeductionCodePhilHealth: "PhilHealth premium",
	payroll.DeductionCodePagIBIG:    "Pag-IBIG Fund contribution",
	payroll.DeductionCodeTax:        "Withholding tax",
}

// SeedDeductionTypes installs the mandatory deduction catalog. Safe to run on
// every startup; existing rows are left untouched.
func SeedDeductionTypes(ctx context.Context, db *database.DB) error {
	return WithTransaction(ctx, db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO deduction_types (code, description)
			VALUES ($1, $2)
			ON CONFLICT (code) DO NOTHING
		`
		for _, code := range payroll.MandatoryDeductionCodes {
			if _, err := tx.Exec(ctx, query, code, deductionTypeDescriptions[code]); err != nil {
				return fmt.Errorf("failed to seed deduction type %s: %w", code, err)
			}
		}
		return nil
	})
}
