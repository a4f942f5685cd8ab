package model

// ProjectionData is the externally visible projection result: equal-length
// parallel sequences indexed by year offset from the start age. Ages,
// NetWorth, Income and Expenses are required; the tax sequences are
// optional. All sequences use float64 so that data re-entering from JSON
// can be inspected for non-integer ages and non-finite values instead of
// failing at decode.
type ProjectionData struct {
	UserID                 int64     `json:"user_id,omitempty"`
	Ages                   []float64 `json:"ages"`
	NetWorth               []float64 `json:"net_worth"`
	Income                 []float64 `json:"income"`
	Expenses               []float64 `json:"expenses"`
	FederalTax             []float64 `json:"federal_tax,omitempty"`
	StateTax               []float64 `json:"state_tax,omitempty"`
	PayrollTax             []float64 `json:"payroll_tax,omitempty"`
	RetirementContribution []float64 `json:"retirement_contribution,omitempty"`
	EffectiveTaxRate       []float64 `json:"effective_tax_rate,omitempty"`
	MarginalTaxRate        []float64 `json:"marginal_tax_rate,omitempty"`
}

// Magnitude sanity ceilings. Breaches are flagged by the validator, never
// auto-corrected.
const (
	MaxAge            = 120
	MaxAnnualIncome   = 10_000_000
	MaxAnnualExpenses = 10_000_000
	MaxNetWorth       = 1_000_000_000
)
