package tax

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"projection-engine/internal/model"
)

// Bracket is one progressive tax bracket. UpTo is the upper bound of the
// bracket; 0 means unbounded (top bracket).
type Bracket struct {
	UpTo float64 `json:"up_to"`
	Rate float64 `json:"rate"`
}

// PayrollRates models a capped social-security-style contribution plus an
// uncapped medicare-style levy with a supplemental rate above a floor.
type PayrollRates struct {
	SocialSecurityRate float64 `json:"social_security_rate"`
	SocialSecurityCap  float64 `json:"social_security_cap"`
	MedicareRate       float64 `json:"medicare_rate"`
	AdditionalRate     float64 `json:"additional_rate"`
	AdditionalFloor    float64 `json:"additional_floor"`
}

// Table holds every rate the calculator needs. It is a pluggable external
// input: a deployment can replace the compiled-in default with a JSON file.
// Jurisdiction rates are flat; an unknown jurisdiction code simply yields
// zero jurisdiction tax.
type Table struct {
	Federal      map[model.FilingStatus][]Bracket `json:"federal"`
	Jurisdiction map[string]float64               `json:"jurisdiction"`
	Payroll      PayrollRates                     `json:"payroll"`
}

// Load reads a bracket table from a JSON file.
func Load(path string) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tax table: %w", err)
	}
	var t Table
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("parse tax table: %w", err)
	}
	if len(t.Federal) == 0 {
		return nil, fmt.Errorf("parse tax table: no federal brackets")
	}
	return &t, nil
}

// Default returns the compiled-in bracket table.
func Default() *Table {
	return &Table{
		Federal: map[model.FilingStatus][]Bracket{
			model.StatusSingle: {
				{UpTo: 11600, Rate: 0.10},
				{UpTo: 47150, Rate: 0.12},
				{UpTo: 100525, Rate: 0.22},
				{UpTo: 191950, Rate: 0.24},
				{UpTo: 243725, Rate: 0.32},
				{UpTo: 609350, Rate: 0.35},
				{UpTo: 0, Rate: 0.37},
			},
			model.StatusMarriedJoint: {
				{UpTo: 23200, Rate: 0.10},
				{UpTo: 94300, Rate: 0.12},
				{UpTo: 201050, Rate: 0.22},
				{UpTo: 383900, Rate: 0.24},
				{UpTo: 487450, Rate: 0.32},
				{UpTo: 731200, Rate: 0.35},
				{UpTo: 0, Rate: 0.37},
			},
			model.StatusMarriedSeparate: {
				{UpTo: 11600, Rate: 0.10},
				{UpTo: 47150, Rate: 0.12},
				{UpTo: 100525, Rate: 0.22},
				{UpTo: 191950, Rate: 0.24},
				{UpTo: 243725, Rate: 0.32},
				{UpTo: 365600, Rate: 0.35},
				{UpTo: 0, Rate: 0.37},
			},
			model.StatusHeadOfHousehold: {
				{UpTo: 16550, Rate: 0.10},
				{UpTo: 63100, Rate: 0.12},
				{UpTo: 100500, Rate: 0.22},
				{UpTo: 191950, Rate: 0.24},
				{UpTo: 243700, Rate: 0.32},
				{UpTo: 609350, Rate: 0.35},
				{UpTo: 0, Rate: 0.37},
			},
		},
		Jurisdiction: map[string]float64{
			"CA": 0.093,
			"NY": 0.0685,
			"MA": 0.05,
			"IL": 0.0495,
			"PA": 0.0307,
			"NC": 0.045,
			"CO": 0.044,
			"MI": 0.0425,
		},
		Payroll: PayrollRates{
			SocialSecurityRate: 0.062,
			SocialSecurityCap:  168600,
			MedicareRate:       0.0145,
			AdditionalRate:     0.009,
			AdditionalFloor:    200000,
		},
	}
}
