// Package bond prices fixed-coupon bonds with a regular payment schedule and
// a single flat discount rate, and derives the standard risk measures
// (yield to maturity, duration, convexity) from that price/yield relation.
package bond

import "fmt"

// UnsetYield is the sentinel callers pass when the required yield should be
// derived from the market price instead of being supplied.
const UnsetYield = -1.0

// Validation errors returned by Terms.Validate.
var (
	ErrInvalidFaceValue        = fmt.Errorf("face value must be positive")
	ErrInvalidCouponRate       = fmt.Errorf("coupon rate must not be negative")
	ErrInvalidMarketPrice      = fmt.Errorf("market price must be positive")
	ErrInvalidRemainingYears   = fmt.Errorf("remaining years must be positive")
	ErrInvalidPaymentFrequency = fmt.Errorf("payment frequency must be positive")

	// ErrYieldUnset is returned when a Valuation is requested with the
	// UnsetYield sentinel instead of an established required yield.
	ErrYieldUnset = fmt.Errorf("required yield is unset; derive it from the market price first")
)

// Terms holds the contractual and observed parameters of a bond. Terms are
// immutable once constructed; every analytic in this package is a pure
// function of Terms and a yield.
type Terms struct {
	// FaceValue is the principal repaid at maturity.
	FaceValue float64
	// CouponRate is the annual nominal coupon rate as a fraction of face
	// value (0.05 for 5%).
	CouponRate float64
	// MarketPrice is the observed trading price, the target the YTM solver
	// inverts against.
	MarketPrice float64
	// RemainingYears is the whole number of years to maturity.
	RemainingYears int
	// PaymentFrequency is the number of coupon payments per year.
	PaymentFrequency int
}

// Validate checks the terms and fails fast on the first invalid field.
func (t Terms) Validate() error {
	if t.FaceValue <= 0 {
		return ErrInvalidFaceValue
	}
	if t.CouponRate < 0 {
		return ErrInvalidCouponRate
	}
	if t.MarketPrice <= 0 {
		return ErrInvalidMarketPrice
	}
	if t.RemainingYears <= 0 {
		return ErrInvalidRemainingYears
	}
	if t.PaymentFrequency <= 0 {
		return ErrInvalidPaymentFrequency
	}
	return nil
}

// Coupon returns the per-period coupon payment.
func (t Terms) Coupon() float64 {
	return t.FaceValue * t.CouponRate / float64(t.PaymentFrequency)
}

// Periods returns the total number of coupon periods to maturity.
func (t Terms) Periods() int {
	return t.RemainingYears * t.PaymentFrequency
}
