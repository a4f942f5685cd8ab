package model

// Request bodies for the projection endpoints. Required numeric fields are
// pointers so the boundary can tell "missing" from "zero" before any
// engine code runs.

type TaxRequest struct {
	Income       *float64 `json:"income"`
	FilingStatus string   `json:"filing_status"`
	Jurisdiction string   `json:"jurisdiction,omitempty"`
}

type PaycheckRequest struct {
	AnnualIncome *float64 `json:"annual_income"`
	PayFrequency string   `json:"pay_frequency"`
	FilingStatus string   `json:"filing_status"`
	Jurisdiction string   `json:"jurisdiction,omitempty"`
}

type BuildRequest struct {
	Profile      *FinancialProfile `json:"profile"`
	Milestones   []MilestoneRecord `json:"milestones"`
	CareerID     string            `json:"career_id,omitempty"`
	StartAge     int               `json:"start_age"`
	HorizonYears int               `json:"horizon_years"`
	FilingStatus string            `json:"filing_status"`
	Jurisdiction string            `json:"jurisdiction,omitempty"`
	// RetirementRate is the fraction of gross income set aside per year,
	// reported as its own sequence in the result.
	RetirementRate float64 `json:"retirement_rate,omitempty"`
}

// FutureSavingsRequest carries the profile inline; resolving a profile ID
// is owned by the storage collaborator, not this service.
type FutureSavingsRequest struct {
	Profile     *FinancialProfile `json:"profile"`
	TargetYears *int              `json:"target_years"`
}

type RevalidateRequest struct {
	Projection *ProjectionData `json:"projection"`
}

type EstimatePaymentRequest struct {
	TotalValue  *float64 `json:"total_value"`
	DownPayment *float64 `json:"down_payment"`
	AnnualRate  *float64 `json:"annual_rate"`
	TermYears   *int     `json:"term_years"`
}
