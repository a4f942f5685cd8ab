package model

import (
	json "github.com/goccy/go-json"
)

type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
	CalculationOutcome     string `json:"calculation_outcome"`
}

const (
	OutcomeSuccess  = "SUCCESS"
	OutcomeRepaired = "REPAIRED"
	OutcomeFailure  = "FAILURE"
)

type TaxResponse struct {
	CalculationMetadata CalculationMetadata `json:"calculation_metadata"`
	Breakdown           TaxBreakdown        `json:"breakdown"`
}

type PaycheckResponse struct {
	CalculationMetadata CalculationMetadata `json:"calculation_metadata"`
	Paycheck            Paycheck            `json:"paycheck"`
}

// ProjectionResponse is returned by both the build and revalidate
// operations. RepairPatch, when present, is an RFC 6902 patch describing
// exactly what the repair step changed.
type ProjectionResponse struct {
	CalculationMetadata CalculationMetadata `json:"calculation_metadata"`
	Projection          ProjectionData      `json:"projection"`
	Diagnostics         []Diagnostic        `json:"diagnostics"`
	RepairPatch         json.RawMessage     `json:"repair_patch,omitempty"`
}

type FutureSavingsResponse struct {
	CalculationMetadata CalculationMetadata `json:"calculation_metadata"`
	CurrentSavings      float64             `json:"current_savings"`
	FutureSavings       float64             `json:"future_savings"`
}

type EstimatePaymentResponse struct {
	MonthlyPayment float64 `json:"monthly_payment"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
