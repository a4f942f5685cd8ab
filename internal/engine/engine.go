package engine

import (
	"errors"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"projection-engine/internal/careers"
	"projection-engine/internal/jsonpatch"
	"projection-engine/internal/model"
	"projection-engine/internal/projection"
	"projection-engine/internal/tax"
	"projection-engine/internal/validate"
)

// ErrOwnership signals that a projection crossing the auth boundary
// belongs to a different identity. Never repaired; the caller must
// re-fetch.
var ErrOwnership = errors.New("projection owned by another user")

// Engine wires the pure calculators to the pluggable tax table and the
// career registry. All methods are safe for concurrent use.
type Engine struct {
	table   *tax.Table
	careers *careers.Client
}

func New(table *tax.Table, careerClient *careers.Client) *Engine {
	return &Engine{table: table, careers: careerClient}
}

func newMetadata(start time.Time, outcome string) model.CalculationMetadata {
	elapsed := time.Since(start)
	now := time.Now().UTC()
	return model.CalculationMetadata{
		CalculationID:          uuid.New().String(),
		CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
		CalculationCompletedAt: now.Format(time.RFC3339),
		CalculationDurationMs:  elapsed.Milliseconds(),
		CalculationOutcome:     outcome,
	}
}

// ComputeTax itemizes taxes for one gross annual income.
func (e *Engine) ComputeTax(gross float64, status model.FilingStatus, jurisdiction string) (*model.TaxResponse, error) {
	start := time.Now()
	breakdown, err := tax.Compute(e.table, gross, status, jurisdiction)
	if err != nil {
		return nil, err
	}
	return &model.TaxResponse{
		CalculationMetadata: newMetadata(start, model.OutcomeSuccess),
		Breakdown:           breakdown,
	}, nil
}

// ComputePaycheck breaks an annual income into per-period figures.
func (e *Engine) ComputePaycheck(annual float64, freq model.PayFrequency, status model.FilingStatus, jurisdiction string) (*model.PaycheckResponse, error) {
	start := time.Now()
	paycheck, err := tax.ComputePaycheck(e.table, annual, freq, status, jurisdiction)
	if err != nil {
		return nil, err
	}
	return &model.PaycheckResponse{
		CalculationMetadata: newMetadata(start, model.OutcomeSuccess),
		Paycheck:            paycheck,
	}, nil
}

// BuildProjection assembles a fresh projection, validates it and repairs
// anything recoverable before handing it out.
func (e *Engine) BuildProjection(req *model.BuildRequest) (*model.ProjectionResponse, error) {
	start := time.Now()

	series := e.careers.Series(req.CareerID, req.Profile.HouseholdIncome, req.HorizonYears)
	raw, err := projection.Assemble(projection.Input{
		Profile:        req.Profile,
		CareerSeries:   series,
		Milestones:     req.Milestones,
		StartAge:       req.StartAge,
		HorizonYears:   req.HorizonYears,
		FilingStatus:   model.FilingStatus(req.FilingStatus),
		Jurisdiction:   req.Jurisdiction,
		RetirementRate: req.RetirementRate,
		Table:          e.table,
	})
	if err != nil {
		return nil, err
	}

	final, rep := validate.EnsureValid(&raw)
	outcome := model.OutcomeSuccess
	var patch json.RawMessage
	if !rep.IsValid() {
		outcome = model.OutcomeRepaired
		patch = repairPatch(&raw, &final)
	}

	return &model.ProjectionResponse{
		CalculationMetadata: newMetadata(start, outcome),
		Projection:          final,
		Diagnostics:         diagnostics(rep),
		RepairPatch:         patch,
	}, nil
}

// FutureSavings projects the savings trajectory only: no milestones, flat
// career series from the household income.
func (e *Engine) FutureSavings(profile *model.FinancialProfile, targetYears int) (*model.FutureSavingsResponse, error) {
	start := time.Now()
	raw, err := projection.Assemble(projection.Input{
		Profile:      profile,
		HorizonYears: targetYears,
		FilingStatus: model.StatusSingle,
		Table:        e.table,
	})
	if err != nil {
		return nil, err
	}
	return &model.FutureSavingsResponse{
		CalculationMetadata: newMetadata(start, model.OutcomeSuccess),
		CurrentSavings:      profile.SavingsAmount,
		FutureSavings:       raw.NetWorth[len(raw.NetWorth)-1],
	}, nil
}

// Revalidate re-admits a projection that left the system (cache, storage,
// a re-authenticated client). Ownership mismatch is the one anomaly that
// rejects instead of repairing.
func (e *Engine) Revalidate(d *model.ProjectionData, currentUserID int64) (*model.ProjectionResponse, error) {
	start := time.Now()

	final, rep := validate.EnsureValidAfterAuth(d, currentUserID)
	if final == nil {
		return nil, ErrOwnership
	}

	outcome := model.OutcomeSuccess
	var patch json.RawMessage
	if !rep.IsValid() {
		outcome = model.OutcomeRepaired
		patch = repairPatch(d, final)
	}

	return &model.ProjectionResponse{
		CalculationMetadata: newMetadata(start, outcome),
		Projection:          *final,
		Diagnostics:         diagnostics(rep),
		RepairPatch:         patch,
	}, nil
}

func diagnostics(rep validate.Report) []model.Diagnostic {
	if rep.Diagnostics == nil {
		return []model.Diagnostic{}
	}
	return rep.Diagnostics
}

// repairPatch renders what repair changed as an RFC 6902 patch.
func repairPatch(before, after *model.ProjectionData) json.RawMessage {
	rawBefore, err := json.Marshal(before)
	if err != nil {
		return nil
	}
	rawAfter, err := json.Marshal(after)
	if err != nil {
		return nil
	}
	var a, b interface{}
	if err := json.Unmarshal(rawBefore, &a); err != nil {
		return nil
	}
	if err := json.Unmarshal(rawAfter, &b); err != nil {
		return nil
	}
	ops := jsonpatch.Diff(a, b, "")
	if len(ops) == 0 {
		return nil
	}
	patch, err := json.Marshal(ops)
	if err != nil {
		return nil
	}
	return patch
}
