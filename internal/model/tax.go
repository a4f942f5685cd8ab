package model

// FilingStatus is the closed set of recognized filing statuses.
type FilingStatus string

const (
	StatusSingle          FilingStatus = "single"
	StatusMarriedJoint    FilingStatus = "married_joint"
	StatusMarriedSeparate FilingStatus = "married_separate"
	StatusHeadOfHousehold FilingStatus = "head_of_household"
)

// TaxBreakdown itemizes one year of taxes on a gross income. Rates are
// fractions in [0, 1]. NetIncome is always gross minus the three tax
// components.
type TaxBreakdown struct {
	GrossIncome   float64 `json:"gross_income"`
	FederalTax    float64 `json:"federal_tax"`
	StateTax      float64 `json:"state_tax"`
	PayrollTax    float64 `json:"payroll_tax"`
	NetIncome     float64 `json:"net_income"`
	EffectiveRate float64 `json:"effective_rate"`
	MarginalRate  float64 `json:"marginal_rate"`
}

// PayFrequency is how often a paycheck is issued.
type PayFrequency string

const (
	FrequencyWeekly      PayFrequency = "weekly"
	FrequencyBiweekly    PayFrequency = "biweekly"
	FrequencySemimonthly PayFrequency = "semimonthly"
	FrequencyMonthly     PayFrequency = "monthly"
)

// PeriodsPerYear returns the pay periods for the frequency, or 0 when the
// frequency is not recognized.
func (f PayFrequency) PeriodsPerYear() int {
	switch f {
	case FrequencyWeekly:
		return 52
	case FrequencyBiweekly:
		return 26
	case FrequencySemimonthly:
		return 24
	case FrequencyMonthly:
		return 12
	}
	return 0
}

// Paycheck is a per-period view of an annual income after taxes.
type Paycheck struct {
	GrossPerPeriod     float64      `json:"gross_per_period"`
	NetPerPeriod       float64      `json:"net_per_period"`
	PeriodsPerYear     int          `json:"periods_per_year"`
	AnnualNet          float64      `json:"annual_net"`
	BreakdownPerPeriod TaxBreakdown `json:"breakdown_per_period"`
}
