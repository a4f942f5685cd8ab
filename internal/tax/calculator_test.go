package tax

import (
	"errors"
	"math"
	"testing"

	"projection-engine/internal/model"
)

func TestComputeSingleSixtyThousand(t *testing.T) {
	table := Default()

	b, err := Compute(table, 60000, model.StatusSingle, "none")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.NetIncome >= 60000 {
		t.Fatalf("net income %f should be strictly less than gross", b.NetIncome)
	}
	if b.NetIncome <= 40000 {
		t.Fatalf("net income %f is implausibly low for 60000 gross", b.NetIncome)
	}

	// Unknown jurisdiction yields zero jurisdiction tax.
	if b.StateTax != 0 {
		t.Fatalf("expected zero state tax for unknown jurisdiction, got %f", b.StateTax)
	}

	sum := b.GrossIncome - b.FederalTax - b.StateTax - b.PayrollTax
	if math.Abs(sum-b.NetIncome) > 1e-9 {
		t.Fatalf("net income %f does not equal gross minus taxes %f", b.NetIncome, sum)
	}

	if b.EffectiveRate <= 0 || b.EffectiveRate >= 1 {
		t.Fatalf("effective rate %f out of (0, 1)", b.EffectiveRate)
	}
	if b.MarginalRate < b.EffectiveRate {
		t.Fatalf("marginal rate %f below effective rate %f", b.MarginalRate, b.EffectiveRate)
	}
}

func TestComputeNetIncomeMonotonic(t *testing.T) {
	table := Default()

	prev := -1.0
	for gross := 1000.0; gross <= 800000; gross += 3517 {
		b, err := Compute(table, gross, model.StatusSingle, "CA")
		if err != nil {
			t.Fatalf("unexpected error at %f: %v", gross, err)
		}
		if b.NetIncome <= prev {
			t.Fatalf("net income not strictly increasing at gross %f: %f <= %f", gross, b.NetIncome, prev)
		}
		prev = b.NetIncome
	}
}

func TestComputeZeroIncome(t *testing.T) {
	b, err := Compute(Default(), 0, model.StatusSingle, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.EffectiveRate != 0 {
		t.Fatalf("expected zero effective rate at zero income, got %f", b.EffectiveRate)
	}
	if b.NetIncome != 0 {
		t.Fatalf("expected zero net income, got %f", b.NetIncome)
	}
}

func TestComputeInvalidInput(t *testing.T) {
	for _, gross := range []float64{-1, math.NaN(), math.Inf(1)} {
		if _, err := Compute(Default(), gross, model.StatusSingle, ""); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %f, got %v", gross, err)
		}
	}
}

func TestComputeUnknownFilingStatus(t *testing.T) {
	_, err := Compute(Default(), 50000, "widowed", "")
	if !errors.Is(err, ErrUnknownFilingStatus) {
		t.Fatalf("expected ErrUnknownFilingStatus, got %v", err)
	}
}

func TestComputeKnownJurisdiction(t *testing.T) {
	table := Default()

	none, err := Compute(table, 80000, model.StatusSingle, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ca, err := Compute(table, 80000, model.StatusSingle, "CA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ca.StateTax <= 0 {
		t.Fatalf("expected positive state tax for CA, got %f", ca.StateTax)
	}
	if ca.NetIncome >= none.NetIncome {
		t.Fatalf("CA net %f should be below no-jurisdiction net %f", ca.NetIncome, none.NetIncome)
	}
}

func TestComputeSocialSecurityCap(t *testing.T) {
	table := Default()

	below, err := Compute(table, 168600, model.StatusSingle, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	above, err := Compute(table, 268600, model.StatusSingle, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Social security is capped; the extra 100k above the cap adds only
	// medicare plus the supplemental levy above the floor.
	extra := above.PayrollTax - below.PayrollTax
	want := 100000*table.Payroll.MedicareRate + 68600*table.Payroll.AdditionalRate
	if math.Abs(extra-want) > 1e-6 {
		t.Fatalf("payroll tax above the cap: got %f extra, want %f", extra, want)
	}
}
