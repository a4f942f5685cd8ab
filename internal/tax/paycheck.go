package tax

import (
	"fmt"

	"projection-engine/internal/model"
)

// ComputePaycheck delegates annual figures to Compute and divides every
// additive component by the periods per year.
func ComputePaycheck(t *Table, annual float64, freq model.PayFrequency, status model.FilingStatus, jurisdiction string) (model.Paycheck, error) {
	if annual <= 0 {
		return model.Paycheck{}, fmt.Errorf("%w: annual income must be positive", ErrInvalidInput)
	}
	periods := freq.PeriodsPerYear()
	if periods == 0 {
		return model.Paycheck{}, fmt.Errorf("%w: unknown pay frequency %q", ErrInvalidInput, freq)
	}

	annualBreakdown, err := Compute(t, annual, status, jurisdiction)
	if err != nil {
		return model.Paycheck{}, err
	}

	n := float64(periods)
	perPeriod := model.TaxBreakdown{
		GrossIncome:   annualBreakdown.GrossIncome / n,
		FederalTax:    annualBreakdown.FederalTax / n,
		StateTax:      annualBreakdown.StateTax / n,
		PayrollTax:    annualBreakdown.PayrollTax / n,
		NetIncome:     annualBreakdown.NetIncome / n,
		EffectiveRate: annualBreakdown.EffectiveRate,
		MarginalRate:  annualBreakdown.MarginalRate,
	}

	return model.Paycheck{
		GrossPerPeriod:     annual / n,
		NetPerPeriod:       perPeriod.NetIncome,
		PeriodsPerYear:     periods,
		AnnualNet:          annualBreakdown.NetIncome,
		BreakdownPerPeriod: perPeriod,
	}, nil
}
