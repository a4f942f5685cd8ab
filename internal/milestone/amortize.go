package milestone

import (
	"fmt"
	"math"
)

// fallbackMonthlyEstimate is substituted when the amortization formula
// produces a non-finite value, so a NaN never reaches a form field.
const fallbackMonthlyEstimate = 2000.0

// EstimateMonthlyPayment suggests a fixed-rate amortized monthly payment
// for a purchase. It is a UI helper, not an input to projections.
func EstimateMonthlyPayment(totalValue, downPayment, annualRate float64, termYears int) (float64, error) {
	if totalValue <= 0 {
		return 0, fmt.Errorf("%w: total_value must be positive", ErrInvalidMilestone)
	}
	if downPayment >= totalValue {
		return 0, fmt.Errorf("%w: down_payment must be less than total_value", ErrInvalidMilestone)
	}
	if termYears <= 0 {
		return 0, fmt.Errorf("%w: term_years must be positive", ErrInvalidMilestone)
	}
	if annualRate < 0 || math.IsNaN(annualRate) || math.IsInf(annualRate, 0) {
		return 0, fmt.Errorf("%w: annual_rate must be a finite non-negative number", ErrInvalidMilestone)
	}

	principal := totalValue - downPayment
	n := float64(termYears * 12)
	r := annualRate / 12
	if r == 0 {
		return principal / n, nil
	}

	pow := math.Pow(1+r, n)
	payment := principal * r * pow / (pow - 1)
	if math.IsNaN(payment) || math.IsInf(payment, 0) {
		return fallbackMonthlyEstimate, nil
	}
	return payment, nil
}
