package projection

import (
	"errors"
	"math"
	"testing"

	json "github.com/goccy/go-json"

	"projection-engine/internal/milestone"
	"projection-engine/internal/model"
	"projection-engine/internal/tax"
)

func baseInput() Input {
	return Input{
		Profile: &model.FinancialProfile{
			UserID:          9,
			HouseholdIncome: 60000,
			SavingsAmount:   10000,
			AnnualExpenses:  30000,
			HouseholdSize:   1,
		},
		StartAge:     25,
		HorizonYears: 5,
		FilingStatus: model.StatusSingle,
		Table:        tax.Default(),
	}
}

func TestAssembleBaseline(t *testing.T) {
	in := baseInput()

	out, err := Assemble(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Ages) != 5 {
		t.Fatalf("expected 5 years, got %d", len(out.Ages))
	}
	if out.Ages[0] != 25 || out.Ages[4] != 29 {
		t.Fatalf("unexpected ages %v", out.Ages)
	}
	if out.UserID != 9 {
		t.Fatalf("expected owner 9, got %d", out.UserID)
	}

	b, err := tax.Compute(in.Table, 60000, model.StatusSingle, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantFirst := 10000 + b.NetIncome - 30000
	if math.Abs(out.NetWorth[0]-wantFirst) > 1e-9 {
		t.Fatalf("net worth year 0: got %f, want %f", out.NetWorth[0], wantFirst)
	}

	// Flat income and expenses accumulate linearly.
	step := b.NetIncome - 30000
	wantLast := 10000 + 5*step
	if math.Abs(out.NetWorth[4]-wantLast) > 1e-6 {
		t.Fatalf("net worth year 4: got %f, want %f", out.NetWorth[4], wantLast)
	}

	for i := range out.Income {
		if math.Abs(out.Income[i]-b.NetIncome) > 1e-9 {
			t.Fatalf("income year %d: got %f, want %f", i, out.Income[i], b.NetIncome)
		}
		if out.Expenses[i] != 30000 {
			t.Fatalf("expenses year %d: got %f", i, out.Expenses[i])
		}
	}
}

func TestAssembleSequenceLengths(t *testing.T) {
	out, err := Assemble(baseInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n := len(out.Ages)
	for name, seq := range map[string][]float64{
		"net_worth":               out.NetWorth,
		"income":                  out.Income,
		"expenses":                out.Expenses,
		"federal_tax":             out.FederalTax,
		"state_tax":               out.StateTax,
		"payroll_tax":             out.PayrollTax,
		"retirement_contribution": out.RetirementContribution,
		"effective_tax_rate":      out.EffectiveTaxRate,
		"marginal_tax_rate":       out.MarginalTaxRate,
	} {
		if len(seq) != n {
			t.Fatalf("%s length %d, want %d", name, len(seq), n)
		}
	}
}

func TestAssembleHoldsLastCareerValue(t *testing.T) {
	in := baseInput()
	in.CareerSeries = []float64{50000, 55000}

	out, err := Assemble(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Years beyond the series hold the last known salary.
	for year := 2; year < 5; year++ {
		if out.Income[year] != out.Income[1] {
			t.Fatalf("year %d income %f should match year 1 income %f", year, out.Income[year], out.Income[1])
		}
	}
	if out.Income[0] == out.Income[1] {
		t.Fatal("years 0 and 1 should differ with a growing series")
	}
}

func TestAssembleHomeMilestone(t *testing.T) {
	in := baseInput()
	in.Milestones = []model.MilestoneRecord{{
		Kind:      model.KindHome,
		Title:     "first home",
		YearsAway: 2,
		Properties: json.RawMessage(`{
			"total_value": 300000,
			"down_payment": 60000,
			"recurring_monthly_payment": 1500
		}`),
	}}

	out, err := Assemble(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	base, err := Assemble(baseInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Before the event nothing changes.
	for year := 0; year < 2; year++ {
		if out.Expenses[year] != base.Expenses[year] {
			t.Fatalf("year %d expenses changed before the event", year)
		}
		if out.NetWorth[year] != base.NetWorth[year] {
			t.Fatalf("year %d net worth changed before the event", year)
		}
	}

	// From the event on, the annualized payment shows up in expenses.
	for year := 2; year < 5; year++ {
		if math.Abs(out.Expenses[year]-(base.Expenses[year]+18000)) > 1e-9 {
			t.Fatalf("year %d expenses %f, want %f", year, out.Expenses[year], base.Expenses[year]+18000)
		}
	}

	// The down payment hits net worth exactly once, in the event year.
	drop := (base.NetWorth[2] - out.NetWorth[2])
	if math.Abs(drop-(60000+18000)) > 1e-9 {
		t.Fatalf("event-year net worth drop %f, want down payment plus one year of payments", drop)
	}
}

func TestAssembleMarriageMilestone(t *testing.T) {
	in := baseInput()
	in.Milestones = []model.MilestoneRecord{{
		Kind:      model.KindMarriage,
		YearsAway: 1,
		Properties: json.RawMessage(`{
			"spouse_income": 40000,
			"spouse_assets": 20000,
			"spouse_liabilities": 5000
		}`),
	}}

	out, err := Assemble(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	base, err := Assemble(baseInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Income[0] != base.Income[0] {
		t.Fatal("income changed before the wedding")
	}
	// Spousal income persists through the end of the horizon.
	for year := 1; year < 5; year++ {
		if math.Abs(out.Income[year]-(base.Income[year]+40000)) > 1e-9 {
			t.Fatalf("year %d income %f, want %f", year, out.Income[year], base.Income[year]+40000)
		}
	}

	gain := out.NetWorth[1] - base.NetWorth[1]
	if math.Abs(gain-(15000+40000)) > 1e-9 {
		t.Fatalf("wedding-year net worth gain %f, want assets minus liabilities plus income", gain)
	}
}

func TestAssembleEducationWindowEnds(t *testing.T) {
	in := baseInput()
	in.Milestones = []model.MilestoneRecord{{
		Kind:      model.KindEducation,
		YearsAway: 1,
		Properties: json.RawMessage(`{
			"annual_cost": 20000,
			"annual_loan_amount": 5000,
			"duration_years": 2
		}`),
	}}

	out, err := Assemble(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	base, err := Assemble(baseInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for year := 1; year < 3; year++ {
		if math.Abs(out.Expenses[year]-(base.Expenses[year]+15000)) > 1e-9 {
			t.Fatalf("year %d expenses %f, want study-window cost", year, out.Expenses[year])
		}
	}
	// After graduation the delta reverts to zero.
	for _, year := range []int{0, 3, 4} {
		if out.Expenses[year] != base.Expenses[year] {
			t.Fatalf("year %d expenses %f should match baseline", year, out.Expenses[year])
		}
	}
}

func TestAssembleSameYearMilestonesSum(t *testing.T) {
	car := model.MilestoneRecord{
		Kind:      model.KindCar,
		YearsAway: 2,
		Properties: json.RawMessage(`{
			"total_value": 30000,
			"down_payment": 6000,
			"recurring_monthly_payment": 400
		}`),
	}
	home := model.MilestoneRecord{
		Kind:      model.KindHome,
		YearsAway: 2,
		Properties: json.RawMessage(`{
			"total_value": 300000,
			"down_payment": 60000,
			"recurring_monthly_payment": 1500
		}`),
	}

	a := baseInput()
	a.Milestones = []model.MilestoneRecord{car, home}
	b := baseInput()
	b.Milestones = []model.MilestoneRecord{home, car}

	outA, err := Assemble(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outB, err := Assemble(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for year := range outA.NetWorth {
		if outA.NetWorth[year] != outB.NetWorth[year] {
			t.Fatalf("year %d: milestone order changed the result", year)
		}
	}
}

func TestAssemblePropagatesMilestoneErrors(t *testing.T) {
	in := baseInput()
	in.Milestones = []model.MilestoneRecord{{
		Kind:       model.KindHome,
		YearsAway:  0,
		Properties: json.RawMessage(`{}`),
	}}

	if _, err := Assemble(in); !errors.Is(err, milestone.ErrInvalidMilestone) {
		t.Fatalf("expected ErrInvalidMilestone, got %v", err)
	}
}

func TestAssembleRejectsBadHorizon(t *testing.T) {
	in := baseInput()
	in.HorizonYears = 0
	if _, err := Assemble(in); !errors.Is(err, tax.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
