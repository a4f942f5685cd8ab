package careers

import (
	"math"
	"testing"
)

func TestSeriesWithoutRegistry(t *testing.T) {
	c := New("")

	series := c.Series("software-engineer", 60000, 4)
	if len(series) != 4 {
		t.Fatalf("expected 4 years, got %d", len(series))
	}
	if series[0] != 60000 {
		t.Fatalf("expected the base salary first, got %f", series[0])
	}

	for i := 1; i < len(series); i++ {
		want := series[i-1] * (1 + defaultGrowthRate)
		if math.Abs(series[i]-want) > 1e-9 {
			t.Fatalf("year %d: got %f, want %f", i, series[i], want)
		}
	}
}

func TestSeriesEmptyForBadHorizon(t *testing.T) {
	if s := New("").Series("x", 60000, 0); s != nil {
		t.Fatalf("expected nil series, got %v", s)
	}
}

func TestGrowthRateDefaultWithoutRegistry(t *testing.T) {
	if rate := New("").GrowthRate("anything"); rate != defaultGrowthRate {
		t.Fatalf("expected default rate, got %f", rate)
	}
}
