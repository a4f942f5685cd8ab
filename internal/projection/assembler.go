package projection

import (
	"fmt"

	"projection-engine/internal/milestone"
	"projection-engine/internal/model"
	"projection-engine/internal/tax"
)

// Input is everything one projection run needs. CareerSeries supplies the
// gross income per projected year; when it is shorter than the horizon the
// last known value is held constant. BaselineExpenses defaults to the
// profile's annual expenses.
type Input struct {
	Profile          *model.FinancialProfile
	CareerSeries     []float64
	Milestones       []model.MilestoneRecord
	StartAge         int
	HorizonYears     int
	FilingStatus     model.FilingStatus
	Jurisdiction     string
	BaselineExpenses float64
	RetirementRate   float64
	Table            *tax.Table
}

// Assemble merges the baseline trajectory, per-year taxes and every
// milestone's cash-flow delta into one per-age series. The result is raw:
// callers run it through the validator before handing it out.
func Assemble(in Input) (model.ProjectionData, error) {
	if in.Profile == nil {
		return model.ProjectionData{}, fmt.Errorf("%w: profile is required", tax.ErrInvalidInput)
	}
	if in.HorizonYears < 1 {
		return model.ProjectionData{}, fmt.Errorf("%w: horizon_years must be at least 1", tax.ErrInvalidInput)
	}

	deltas := make([]model.CashFlowDelta, 0, len(in.Milestones))
	for i := range in.Milestones {
		d, err := milestone.ToCashFlowDelta(&in.Milestones[i])
		if err != nil {
			return model.ProjectionData{}, err
		}
		deltas = append(deltas, d)
	}

	baselineExpenses := in.BaselineExpenses
	if baselineExpenses == 0 {
		baselineExpenses = in.Profile.AnnualExpenses
	}

	n := in.HorizonYears
	out := model.ProjectionData{
		UserID:                 in.Profile.UserID,
		Ages:                   make([]float64, n),
		NetWorth:               make([]float64, n),
		Income:                 make([]float64, n),
		Expenses:               make([]float64, n),
		FederalTax:             make([]float64, n),
		StateTax:               make([]float64, n),
		PayrollTax:             make([]float64, n),
		RetirementContribution: make([]float64, n),
		EffectiveTaxRate:       make([]float64, n),
		MarginalTaxRate:        make([]float64, n),
	}

	netWorth := in.Profile.SavingsAmount
	for year := 0; year < n; year++ {
		gross := grossIncomeAt(in, year)

		breakdown, err := tax.Compute(in.Table, gross, in.FilingStatus, in.Jurisdiction)
		if err != nil {
			return model.ProjectionData{}, err
		}

		// Sum milestone effects active this year. Same-year one-time
		// amounts are summed, so ordering between milestones never
		// matters. Recurring amounts route by sign: positive is income,
		// negative is a cost.
		var oneTime, incomeAdd, costAdd float64
		for _, d := range deltas {
			if year == d.FirstYearOffset {
				oneTime += d.OneTimeAmount
			}
			if !d.ActiveAt(year) {
				continue
			}
			if d.RecurringAnnual >= 0 {
				incomeAdd += d.RecurringAnnual
			} else {
				costAdd += -d.RecurringAnnual
			}
		}

		income := breakdown.NetIncome + incomeAdd
		expenses := baselineExpenses + costAdd
		netWorth += income - expenses + oneTime

		out.Ages[year] = float64(in.StartAge + year)
		out.NetWorth[year] = netWorth
		out.Income[year] = income
		out.Expenses[year] = expenses
		out.FederalTax[year] = breakdown.FederalTax
		out.StateTax[year] = breakdown.StateTax
		out.PayrollTax[year] = breakdown.PayrollTax
		out.RetirementContribution[year] = gross * in.RetirementRate
		out.EffectiveTaxRate[year] = breakdown.EffectiveRate
		out.MarginalTaxRate[year] = breakdown.MarginalRate
	}

	return out, nil
}

// grossIncomeAt holds the last known career value when the series is
// shorter than the horizon, and falls back to the profile's household
// income when no series was supplied at all.
func grossIncomeAt(in Input, year int) float64 {
	if len(in.CareerSeries) == 0 {
		return in.Profile.HouseholdIncome
	}
	if year >= len(in.CareerSeries) {
		return in.CareerSeries[len(in.CareerSeries)-1]
	}
	return in.CareerSeries[year]
}
