package validate

import (
	"fmt"
	"math"

	"projection-engine/internal/model"
)

// Validity states for a checked projection object. VALID and RECOVERABLE
// both end in a usable ProjectionData; UNRECOVERABLE ends in rejection.
const (
	StatusValid         = "VALID"
	StatusRecoverable   = "RECOVERABLE"
	StatusUnrecoverable = "UNRECOVERABLE"
)

// Diagnostic codes.
const (
	CodeMissingSequence      = "MISSING_SEQUENCE"
	CodeEmptyAges            = "EMPTY_AGES"
	CodeLengthMismatch       = "SEQUENCE_LENGTH_MISMATCH"
	CodeNonFiniteValue       = "NON_FINITE_VALUE"
	CodeAgeOutOfRange        = "AGE_OUT_OF_RANGE"
	CodeNonIntegerAge        = "NON_INTEGER_AGE"
	CodeNegativeValue        = "NEGATIVE_VALUE"
	CodeImplausibleMagnitude = "IMPLAUSIBLE_MAGNITUDE"
	CodeOwnershipViolation   = "OWNERSHIP_VIOLATION"
)

// Report is the structured outcome of a validation pass. Every violated
// invariant contributes one diagnostic; nothing short-circuits, so callers
// always see the full picture.
type Report struct {
	Status      string
	Diagnostics []model.Diagnostic
}

// IsValid reports whether no invariant was violated.
func (r Report) IsValid() bool {
	return len(r.Diagnostics) == 0
}

// Errors flattens the diagnostics to human-readable strings.
func (r Report) Errors() []string {
	out := make([]string, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		out[i] = d.Message
	}
	return out
}

func (r *Report) add(level, code, message string) {
	r.Diagnostics = append(r.Diagnostics, model.Diagnostic{
		ID:      len(r.Diagnostics),
		Level:   level,
		Code:    code,
		Message: message,
	})
}

func (r *Report) hasCritical() bool {
	for _, d := range r.Diagnostics {
		if d.Level == model.LevelCritical {
			return true
		}
	}
	return false
}

type namedSeq struct {
	name     string
	values   []float64
	required bool
	money    bool    // non-negative expected, subject to a ceiling
	ceiling  float64 // 0 means no ceiling check
}

func sequences(d *model.ProjectionData) []namedSeq {
	return []namedSeq{
		{name: "ages", values: d.Ages, required: true},
		{name: "net_worth", values: d.NetWorth, required: true, money: true, ceiling: model.MaxNetWorth},
		{name: "income", values: d.Income, required: true, money: true, ceiling: model.MaxAnnualIncome},
		{name: "expenses", values: d.Expenses, required: true, money: true, ceiling: model.MaxAnnualExpenses},
		{name: "federal_tax", values: d.FederalTax},
		{name: "state_tax", values: d.StateTax},
		{name: "payroll_tax", values: d.PayrollTax},
		{name: "retirement_contribution", values: d.RetirementContribution},
		{name: "effective_tax_rate", values: d.EffectiveTaxRate},
		{name: "marginal_tax_rate", values: d.MarginalTaxRate},
	}
}

// Validate checks every invariant without mutating the data. Structural
// violations (missing required sequences, empty ages) are CRITICAL;
// everything else is a WARNING the repairer or the caller can act on.
func Validate(d *model.ProjectionData) Report {
	var rep Report

	for _, s := range sequences(d) {
		if s.required && s.values == nil {
			rep.add(model.LevelCritical, CodeMissingSequence,
				fmt.Sprintf("required sequence %s is missing", s.name))
		}
	}
	if d.Ages != nil && len(d.Ages) == 0 {
		rep.add(model.LevelCritical, CodeEmptyAges, "ages must contain at least one entry")
	}
	if rep.hasCritical() {
		rep.Status = StatusUnrecoverable
		return rep
	}

	want := len(d.Ages)
	for _, s := range sequences(d) {
		if s.values == nil || s.name == "ages" {
			continue
		}
		if len(s.values) != want {
			rep.add(model.LevelWarning, CodeLengthMismatch,
				fmt.Sprintf("%s length %d does not match ages length %d", s.name, len(s.values), want))
		}
	}

	for _, s := range sequences(d) {
		for i, v := range s.values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				rep.add(model.LevelWarning, CodeNonFiniteValue,
					fmt.Sprintf("%s[%d] is not a finite number", s.name, i))
				continue
			}
			if s.money && v < 0 {
				rep.add(model.LevelWarning, CodeNegativeValue,
					fmt.Sprintf("%s[%d] is negative (%g)", s.name, i, v))
			}
			if s.ceiling > 0 && v > s.ceiling {
				rep.add(model.LevelWarning, CodeImplausibleMagnitude,
					fmt.Sprintf("%s[%d] exceeds the plausible ceiling of %g", s.name, i, s.ceiling))
			}
		}
	}

	for i, v := range d.Ages {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue // already reported as non-finite
		}
		if v != math.Trunc(v) {
			rep.add(model.LevelWarning, CodeNonIntegerAge,
				fmt.Sprintf("ages[%d] is not an integer (%g)", i, v))
		} else if v < 0 || v > model.MaxAge {
			rep.add(model.LevelWarning, CodeAgeOutOfRange,
				fmt.Sprintf("ages[%d] is outside [0, %d] (%g)", i, model.MaxAge, v))
		}
	}

	if rep.IsValid() {
		rep.Status = StatusValid
	} else {
		rep.Status = StatusRecoverable
	}
	return rep
}

// Repair normalizes a structurally valid projection: every present
// sequence is padded with zeros or truncated to the ages length, and every
// non-finite element becomes 0. Out-of-range and negative values are left
// untouched — clamping them would hide a real upstream bug. Idempotent.
func Repair(d *model.ProjectionData) model.ProjectionData {
	n := len(d.Ages)
	out := model.ProjectionData{
		UserID:                 d.UserID,
		Ages:                   repairSeries(d.Ages, n),
		NetWorth:               repairSeries(d.NetWorth, n),
		Income:                 repairSeries(d.Income, n),
		Expenses:               repairSeries(d.Expenses, n),
		FederalTax:             repairSeries(d.FederalTax, n),
		StateTax:               repairSeries(d.StateTax, n),
		PayrollTax:             repairSeries(d.PayrollTax, n),
		RetirementContribution: repairSeries(d.RetirementContribution, n),
		EffectiveTaxRate:       repairSeries(d.EffectiveTaxRate, n),
		MarginalTaxRate:        repairSeries(d.MarginalTaxRate, n),
	}
	return out
}

// repairSeries is the one primitive every sequence goes through: absent
// sequences stay absent, present ones come back with exactly n finite
// elements.
func repairSeries(values []float64, n int) []float64 {
	if values == nil {
		return nil
	}
	out := make([]float64, n)
	for i := 0; i < n && i < len(values); i++ {
		v := values[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		out[i] = v
	}
	return out
}

// defaultHorizonYears is the length of the fallback projection handed out
// when structural validation fails outright.
const defaultHorizonYears = 6

// DefaultProjection is the deterministic fallback: six years, all zeros.
func DefaultProjection() model.ProjectionData {
	d := model.ProjectionData{
		Ages:     make([]float64, defaultHorizonYears),
		NetWorth: make([]float64, defaultHorizonYears),
		Income:   make([]float64, defaultHorizonYears),
		Expenses: make([]float64, defaultHorizonYears),
	}
	for i := range d.Ages {
		d.Ages[i] = float64(i)
	}
	return d
}

// EnsureValid orchestrates validate then repair. Structural failure falls
// back to the default projection; every semantic anomaly is recoverable
// and routes through Repair.
func EnsureValid(d *model.ProjectionData) (model.ProjectionData, Report) {
	rep := Validate(d)
	switch rep.Status {
	case StatusValid:
		return *d, rep
	case StatusUnrecoverable:
		return DefaultProjection(), rep
	default:
		return Repair(d), rep
	}
}

// EnsureValidAfterAuth re-checks data crossing an authentication boundary.
// A projection owned by a different identity is never repaired: the caller
// gets nil and must re-fetch. Everything else behaves like EnsureValid.
func EnsureValidAfterAuth(d *model.ProjectionData, currentUserID int64) (*model.ProjectionData, Report) {
	if d.UserID != 0 && d.UserID != currentUserID {
		var rep Report
		rep.add(model.LevelCritical, CodeOwnershipViolation,
			fmt.Sprintf("projection belongs to user %d, not the authenticated user", d.UserID))
		rep.Status = StatusUnrecoverable
		return nil, rep
	}
	out, rep := EnsureValid(d)
	return &out, rep
}
