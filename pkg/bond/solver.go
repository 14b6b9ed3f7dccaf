package bond

import "math"

// Solver defaults and bounds. Yields are searched on [0, 1] (0%-100% annual);
// a bond whose fair yield lies outside that range resolves to a
// boundary-adjacent value rather than an error.
const (
	DefaultTolerance     = 1e-6
	DefaultMaxIterations = 1000

	// breakEvenWidth is the interval-width stop for the break-even variant.
	breakEvenWidth = 1e-6

	yieldLowerBound = 0.0
	yieldUpperBound = 1.0
)

// SolveResult is the outcome of a bisection solve.
type SolveResult struct {
	// Yield is the solved annual nominal rate. When Converged is false it is
	// the last midpoint examined, a best-effort estimate.
	Yield float64
	// Iterations is the number of bisection steps taken.
	Iterations int
	// Converged reports whether the stopping rule was met before the
	// iteration budget ran out.
	Converged bool
}

// stopRule parameterizes the bisection termination. The two call sites keep
// their historically distinct semantics: the YTM solve exits early once the
// price difference is inside an absolute tolerance, the break-even solve
// halves until the bracketing interval itself is narrow enough.
type stopRule struct {
	// width, when set, stops before the next halving once high-low is small
	// enough. Checked against the interval, never against the price.
	width func(low, high float64) bool
	// priceDiff, when set, stops once |target - pv(mid)| is small enough.
	priceDiff func(diff float64) bool
}

// bisect searches [yieldLowerBound, yieldUpperBound] for a rate whose present
// value matches target, assuming pv is strictly decreasing in the rate.
// maxIterations <= 0 means no iteration cap.
func bisect(pv func(float64) float64, target float64, stop stopRule, maxIterations int) SolveResult {
	low, high := yieldLowerBound, yieldUpperBound
	mid := 0.0

	for i := 0; maxIterations <= 0 || i < maxIterations; i++ {
		if stop.width != nil && stop.width(low, high) {
			return SolveResult{Yield: mid, Iterations: i, Converged: true}
		}

		mid = (low + high) / 2
		price := pv(mid)

		if stop.priceDiff != nil && stop.priceDiff(target-price) {
			return SolveResult{Yield: mid, Iterations: i + 1, Converged: true}
		}

		if price < target {
			// Price below target: the rate overshoots, search the lower half.
			high = mid
		} else {
			low = mid
		}
	}

	return SolveResult{Yield: mid, Iterations: maxIterations, Converged: false}
}

// YTM solves for the yield to maturity with the default tolerance and
// iteration budget.
func (t Terms) YTM() SolveResult {
	return t.SolveYTM(DefaultTolerance, DefaultMaxIterations)
}

// SolveYTM finds the yield whose present value matches the market price,
// stopping as soon as the price difference is within the absolute tolerance.
// If the iteration budget runs out first, the result carries the last
// midpoint with Converged set to false.
func (t Terms) SolveYTM(tolerance float64, maxIterations int) SolveResult {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	return bisect(t.PresentValue, t.MarketPrice, stopRule{
		priceDiff: func(diff float64) bool { return math.Abs(diff) < tolerance },
	}, maxIterations)
}

// BreakEvenYield finds the yield at which the bond's present value equals the
// reference price. Unlike SolveYTM it halves until the bracketing interval is
// narrower than 1e-6, with no iteration cap and no check on the price
// difference, so the guarantee is on the interval width only.
func (t Terms) BreakEvenYield(referencePrice float64) float64 {
	res := bisect(t.PresentValue, referencePrice, stopRule{
		width: func(low, high float64) bool { return high-low <= breakEvenWidth },
	}, 0)
	return res.Yield
}
