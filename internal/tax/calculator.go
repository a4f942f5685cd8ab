package tax

import (
	"errors"
	"fmt"
	"math"

	"projection-engine/internal/model"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnknownFilingStatus = errors.New("unknown filing status")
)

// Compute itemizes one year of taxes on a gross annual income. Federal,
// payroll and jurisdiction taxes are computed independently and summed.
// Pure and deterministic; rates in the result are fractions in [0, 1].
func Compute(t *Table, gross float64, status model.FilingStatus, jurisdiction string) (model.TaxBreakdown, error) {
	if gross < 0 || math.IsNaN(gross) || math.IsInf(gross, 0) {
		return model.TaxBreakdown{}, fmt.Errorf("%w: gross income must be a finite non-negative number", ErrInvalidInput)
	}
	brackets, ok := t.Federal[status]
	if !ok {
		return model.TaxBreakdown{}, fmt.Errorf("%w: %q", ErrUnknownFilingStatus, status)
	}

	federal, federalMarginal := progressive(brackets, gross)
	payroll, payrollMarginal := payrollTax(t.Payroll, gross)

	// Unknown or absent jurisdiction codes yield zero jurisdiction tax.
	stateRate := t.Jurisdiction[jurisdiction]
	state := gross * stateRate

	total := federal + state + payroll
	effective := 0.0
	if gross > 0 {
		effective = total / gross
	}

	return model.TaxBreakdown{
		GrossIncome:   gross,
		FederalTax:    federal,
		StateTax:      state,
		PayrollTax:    payroll,
		NetIncome:     gross - federal - state - payroll,
		EffectiveRate: effective,
		MarginalRate:  federalMarginal + stateRate + payrollMarginal,
	}, nil
}

// progressive applies a bracket ladder and returns the tax owed plus the
// marginal rate at the given income.
func progressive(brackets []Bracket, gross float64) (tax, marginal float64) {
	lower := 0.0
	for _, b := range brackets {
		marginal = b.Rate
		if b.UpTo == 0 || gross <= b.UpTo {
			tax += (gross - lower) * b.Rate
			return tax, marginal
		}
		tax += (b.UpTo - lower) * b.Rate
		lower = b.UpTo
	}
	return tax, marginal
}

func payrollTax(r PayrollRates, gross float64) (tax, marginal float64) {
	capped := gross
	if capped > r.SocialSecurityCap {
		capped = r.SocialSecurityCap
	} else {
		marginal += r.SocialSecurityRate
	}
	tax = capped*r.SocialSecurityRate + gross*r.MedicareRate
	marginal += r.MedicareRate
	if gross > r.AdditionalFloor {
		tax += (gross - r.AdditionalFloor) * r.AdditionalRate
		marginal += r.AdditionalRate
	}
	return tax, marginal
}
