package bond

import "math"

// MacaulayDuration returns the time-weighted present value of the cash flows
// divided by the observed market price:
//
//	D = [ Σ_{t=1..n} t·coupon/(1+y/f)^t + n·face/(1+y/f)^n ] / market_price
//
// The denominator is the market price, not PresentValue(); the two differ
// unless the required yield exactly reproduces the price. Period indices are
// summed directly, so for payment frequencies above one the result is in
// periods rather than years.
func (v *Valuation) MacaulayDuration() float64 {
	t := v.Terms
	coupon := t.Coupon()
	periods := t.Periods()
	base := 1 + v.RequiredYield/float64(t.PaymentFrequency)

	duration := 0.0
	for n := 1; n <= periods; n++ {
		duration += float64(n) * coupon / math.Pow(base, float64(n))
	}
	duration += float64(periods) * t.FaceValue / math.Pow(base, float64(periods))
	return duration / t.MarketPrice
}

// ModifiedDuration is the Macaulay duration discounted one period:
// D_mod = D_mac / (1 + y/f).
func (v *Valuation) ModifiedDuration() float64 {
	return v.MacaulayDuration() / (1 + v.RequiredYield/float64(v.Terms.PaymentFrequency))
}

// Convexity returns the second-order price sensitivity:
//
//	C = [ Σ_{t=1..n} t(t+1)·coupon/(1+y/f)^(t+2) + n(n+1)·face/(1+y/f)^(n+2) ] / market_price
func (v *Valuation) Convexity() float64 {
	t := v.Terms
	coupon := t.Coupon()
	periods := t.Periods()
	base := 1 + v.RequiredYield/float64(t.PaymentFrequency)

	convexity := 0.0
	for n := 1; n <= periods; n++ {
		convexity += float64(n) * float64(n+1) * coupon / math.Pow(base, float64(n+2))
	}
	convexity += float64(periods) * float64(periods+1) * t.FaceValue / math.Pow(base, float64(periods+2))
	return convexity / t.MarketPrice
}

// CurrentYield returns the per-period coupon over the market price. Note the
// numerator is the per-period coupon, not the annual coupon; this matches the
// system's historical output. AnnualCurrentYield gives the conventional
// figure.
func (v *Valuation) CurrentYield() float64 {
	return v.Terms.Coupon() / v.Terms.MarketPrice
}

// AnnualCurrentYield returns the conventional current yield, annual coupon
// over market price.
func (v *Valuation) AnnualCurrentYield() float64 {
	return v.Terms.FaceValue * v.Terms.CouponRate / v.Terms.MarketPrice
}
