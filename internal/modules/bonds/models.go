package bonds

import (
	"time"

	"github.com/aristath/bond-desk/pkg/bond"
)

// Bond is a catalogued bond: identification plus the terms the valuation
// engine needs.
type Bond struct {
	ID     int    `json:"id,omitempty"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`

	FaceValue        float64 `json:"face_value"`
	CouponRate       float64 `json:"coupon_rate"`
	MarketPrice      float64 `json:"market_price"`
	RemainingYears   int     `json:"remaining_years"`
	PaymentFrequency int     `json:"payment_frequency"`

	// RequiredYield is the caller-supplied annual discount rate. Nil means
	// the yield is derived from the market price on each analysis.
	RequiredYield *float64 `json:"required_yield,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Terms maps the catalogue row to valuation terms.
func (b *Bond) Terms() bond.Terms {
	return bond.Terms{
		FaceValue:        b.FaceValue,
		CouponRate:       b.CouponRate,
		MarketPrice:      b.MarketPrice,
		RemainingYears:   b.RemainingYears,
		PaymentFrequency: b.PaymentFrequency,
	}
}

// Analysis is the full set of measures for one bond at one point in time.
type Analysis struct {
	Symbol string `json:"symbol"`

	// RequiredYield is the yield the risk measures are evaluated at;
	// YieldDerived reports whether it came from the YTM solver rather than
	// the catalogue.
	RequiredYield float64 `json:"required_yield"`
	YieldDerived  bool    `json:"yield_derived"`

	PresentValue  float64 `json:"present_value"`
	YTM           float64 `json:"ytm"`
	YTMConverged  bool    `json:"ytm_converged"`
	YTMIterations int     `json:"ytm_iterations"`

	MacaulayDuration   float64 `json:"macaulay_duration"`
	ModifiedDuration   float64 `json:"modified_duration"`
	Convexity          float64 `json:"convexity"`
	CurrentYield       float64 `json:"current_yield"`
	AnnualCurrentYield float64 `json:"annual_current_yield"`
	BreakEvenYield     float64 `json:"break_even_yield"`
}
