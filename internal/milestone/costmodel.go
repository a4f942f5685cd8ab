package milestone

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"projection-engine/internal/model"
)

var ErrInvalidMilestone = errors.New("invalid milestone")

// builder converts the kind-specific properties of one milestone record
// into a cash-flow delta.
type builder interface {
	Build(rec *model.MilestoneRecord) (model.CashFlowDelta, error)
}

var registry = map[model.MilestoneKind]builder{
	model.KindMarriage:  marriageBuilder{},
	model.KindHome:      purchaseBuilder{},
	model.KindCar:       purchaseBuilder{},
	model.KindChildren:  childrenBuilder{},
	model.KindEducation: educationBuilder{},
}

// ToCashFlowDelta dispatches on the milestone kind. The record is
// immutable input; the returned delta is anchored at years_away.
func ToCashFlowDelta(rec *model.MilestoneRecord) (model.CashFlowDelta, error) {
	if rec.YearsAway < 1 {
		return model.CashFlowDelta{}, fmt.Errorf("%w: years_away must be at least 1", ErrInvalidMilestone)
	}
	b, ok := registry[rec.Kind]
	if !ok {
		return model.CashFlowDelta{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidMilestone, rec.Kind)
	}
	return b.Build(rec)
}

type marriageProps struct {
	SpouseIncome      *float64 `json:"spouse_income"`
	SpouseAssets      float64  `json:"spouse_assets"`
	SpouseLiabilities float64  `json:"spouse_liabilities"`
}

type marriageBuilder struct{}

// Marriage adjusts net worth once by the spouse's assets minus liabilities
// and adds the spouse's income for every remaining year of the horizon.
func (marriageBuilder) Build(rec *model.MilestoneRecord) (model.CashFlowDelta, error) {
	var props marriageProps
	if err := json.Unmarshal(rec.Properties, &props); err != nil {
		return model.CashFlowDelta{}, fmt.Errorf("%w: %v", ErrInvalidMilestone, err)
	}
	if props.SpouseIncome == nil {
		return model.CashFlowDelta{}, fmt.Errorf("%w: marriage requires spouse_income", ErrInvalidMilestone)
	}
	return model.CashFlowDelta{
		FirstYearOffset: rec.YearsAway,
		OneTimeAmount:   props.SpouseAssets - props.SpouseLiabilities,
		RecurringAnnual: *props.SpouseIncome,
		DurationYears:   model.DurationUntilHorizon,
	}, nil
}

type purchaseProps struct {
	TotalValue     *float64 `json:"total_value"`
	DownPayment    *float64 `json:"down_payment"`
	MonthlyPayment *float64 `json:"recurring_monthly_payment"`
}

type purchaseBuilder struct{}

// Home and car purchases: the down payment leaves net worth in the event
// year, the monthly payment recurs for the rest of the horizon. The
// payment is taken as given, never amortization-derived here.
func (purchaseBuilder) Build(rec *model.MilestoneRecord) (model.CashFlowDelta, error) {
	var props purchaseProps
	if err := json.Unmarshal(rec.Properties, &props); err != nil {
		return model.CashFlowDelta{}, fmt.Errorf("%w: %v", ErrInvalidMilestone, err)
	}
	if props.TotalValue == nil || props.DownPayment == nil || props.MonthlyPayment == nil {
		return model.CashFlowDelta{}, fmt.Errorf("%w: %s requires total_value, down_payment and recurring_monthly_payment", ErrInvalidMilestone, rec.Kind)
	}
	if *props.DownPayment >= *props.TotalValue {
		return model.CashFlowDelta{}, fmt.Errorf("%w: down_payment must be less than total_value", ErrInvalidMilestone)
	}
	return model.CashFlowDelta{
		FirstYearOffset: rec.YearsAway,
		OneTimeAmount:   -*props.DownPayment,
		RecurringAnnual: -*props.MonthlyPayment * 12,
		DurationYears:   model.DurationUntilHorizon,
	}, nil
}

// defaultAnnualCostPerChild is used when the record does not supply a
// per-child expense.
const defaultAnnualCostPerChild = 15000.0

type childrenProps struct {
	Count                 *int    `json:"count"`
	AnnualExpensePerChild float64 `json:"annual_expense_per_child"`
}

type childrenBuilder struct{}

// Children add a recurring expense for the rest of the horizon. There is
// no cutoff at the child's majority.
func (childrenBuilder) Build(rec *model.MilestoneRecord) (model.CashFlowDelta, error) {
	var props childrenProps
	if err := json.Unmarshal(rec.Properties, &props); err != nil {
		return model.CashFlowDelta{}, fmt.Errorf("%w: %v", ErrInvalidMilestone, err)
	}
	if props.Count == nil || *props.Count < 1 {
		return model.CashFlowDelta{}, fmt.Errorf("%w: children requires a count of at least 1", ErrInvalidMilestone)
	}
	perChild := props.AnnualExpensePerChild
	if perChild == 0 {
		perChild = defaultAnnualCostPerChild
	}
	return model.CashFlowDelta{
		FirstYearOffset: rec.YearsAway,
		RecurringAnnual: -float64(*props.Count) * perChild,
		DurationYears:   model.DurationUntilHorizon,
	}, nil
}

type educationProps struct {
	AnnualCost       *float64 `json:"annual_cost"`
	AnnualLoanAmount float64  `json:"annual_loan_amount"`
	DurationYears    *int     `json:"duration_years"`
	WorkStatus       string   `json:"work_status"`
	PartTimeIncome   float64  `json:"part_time_income"`
}

type educationBuilder struct{}

// Education costs run only for the study window; loans offset the annual
// cost and part-time work adds income during the same window. The delta
// reverts to zero after graduation; post-graduation salary changes are the
// assembler's business via career re-selection.
func (educationBuilder) Build(rec *model.MilestoneRecord) (model.CashFlowDelta, error) {
	var props educationProps
	if err := json.Unmarshal(rec.Properties, &props); err != nil {
		return model.CashFlowDelta{}, fmt.Errorf("%w: %v", ErrInvalidMilestone, err)
	}
	if props.AnnualCost == nil || props.DurationYears == nil {
		return model.CashFlowDelta{}, fmt.Errorf("%w: education requires annual_cost and duration_years", ErrInvalidMilestone)
	}
	if *props.DurationYears < 1 {
		return model.CashFlowDelta{}, fmt.Errorf("%w: duration_years must be at least 1", ErrInvalidMilestone)
	}
	recurring := -(*props.AnnualCost - props.AnnualLoanAmount)
	if props.WorkStatus == model.WorkPartTime {
		recurring += props.PartTimeIncome
	}
	return model.CashFlowDelta{
		FirstYearOffset: rec.YearsAway,
		RecurringAnnual: recurring,
		DurationYears:   *props.DurationYears,
	}, nil
}
