package bond

import "math"

// PresentValue discounts every remaining coupon plus the final face value
// repayment at rate/frequency per period:
//
//	PV(r) = Σ_{t=1..n} coupon / (1 + r/f)^t + face / (1 + r/f)^n
//
// PresentValue is strictly decreasing in rate for non-negative cash flows,
// which is what the bisection solvers rely on. Defined for rate > -f.
func (t Terms) PresentValue(rate float64) float64 {
	coupon := t.Coupon()
	periods := t.Periods()
	base := 1 + rate/float64(t.PaymentFrequency)

	pv := 0.0
	for n := 1; n <= periods; n++ {
		pv += coupon / math.Pow(base, float64(n))
	}
	pv += t.FaceValue / math.Pow(base, float64(periods))
	return pv
}

// Valuation is a bond together with an established required yield. The yield
// is fixed at construction: either supplied by the caller (NewValuation) or
// derived from the market price (NewValuationFromPrice). There is no way to
// mutate it afterwards, so risk measures are always well defined.
type Valuation struct {
	Terms Terms
	// RequiredYield is the annual nominal discount rate, compounded
	// PaymentFrequency times per year.
	RequiredYield float64
}

// NewValuation builds a valuation with a caller-supplied required yield.
// Passing the UnsetYield sentinel returns ErrYieldUnset; use
// NewValuationFromPrice to derive the yield instead.
func NewValuation(t Terms, requiredYield float64) (*Valuation, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if requiredYield == UnsetYield {
		return nil, ErrYieldUnset
	}
	return &Valuation{Terms: t, RequiredYield: requiredYield}, nil
}

// NewValuationFromPrice derives the required yield from the market price via
// the YTM solver. The solve result is returned alongside the valuation so
// callers can inspect convergence.
func NewValuationFromPrice(t Terms, tolerance float64, maxIterations int) (*Valuation, SolveResult, error) {
	if err := t.Validate(); err != nil {
		return nil, SolveResult{}, err
	}
	res := t.SolveYTM(tolerance, maxIterations)
	return &Valuation{Terms: t, RequiredYield: res.Yield}, res, nil
}

// PresentValue prices the bond at the valuation's required yield.
func (v *Valuation) PresentValue() float64 {
	return v.Terms.PresentValue(v.RequiredYield)
}
