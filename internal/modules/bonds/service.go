package bonds

import (
	"fmt"

	"github.com/aristath/bond-desk/pkg/bond"
	"github.com/rs/zerolog"
)

// Service runs the valuation engine over catalogued bonds
type Service struct {
	tolerance     float64
	maxIterations int
	log           zerolog.Logger
}

// NewService creates a new bond analysis service
func NewService(tolerance float64, maxIterations int, log zerolog.Logger) *Service {
	if tolerance <= 0 {
		tolerance = bond.DefaultTolerance
	}
	if maxIterations <= 0 {
		maxIterations = bond.DefaultMaxIterations
	}
	return &Service{
		tolerance:     tolerance,
		maxIterations: maxIterations,
		log:           log.With().Str("service", "bonds").Logger(),
	}
}

// valuationFor builds a valuation for a catalogued bond, supplying the stored
// yield when present and deriving it from the market price otherwise.
func (s *Service) valuationFor(b *Bond) (*bond.Valuation, bond.SolveResult, bool, error) {
	terms := b.Terms()

	if b.RequiredYield != nil {
		v, err := bond.NewValuation(terms, *b.RequiredYield)
		if err != nil {
			return nil, bond.SolveResult{}, false, err
		}
		return v, terms.SolveYTM(s.tolerance, s.maxIterations), false, nil
	}

	v, res, err := bond.NewValuationFromPrice(terms, s.tolerance, s.maxIterations)
	if err != nil {
		return nil, bond.SolveResult{}, false, err
	}
	if !res.Converged {
		s.log.Warn().
			Str("symbol", b.Symbol).
			Float64("yield", res.Yield).
			Int("iterations", res.Iterations).
			Msg("YTM solve did not converge, using best estimate")
	}
	return v, res, true, nil
}

// Analyze computes the full analysis for one bond
func (s *Service) Analyze(b *Bond) (Analysis, error) {
	v, ytm, derived, err := s.valuationFor(b)
	if err != nil {
		return Analysis{}, fmt.Errorf("failed to value bond %s: %w", b.Symbol, err)
	}

	terms := b.Terms()

	return Analysis{
		Symbol:             b.Symbol,
		RequiredYield:      v.RequiredYield,
		YieldDerived:       derived,
		PresentValue:       v.PresentValue(),
		YTM:                ytm.Yield,
		YTMConverged:       ytm.Converged,
		YTMIterations:      ytm.Iterations,
		MacaulayDuration:   v.MacaulayDuration(),
		ModifiedDuration:   v.ModifiedDuration(),
		Convexity:          v.Convexity(),
		CurrentYield:       v.CurrentYield(),
		AnnualCurrentYield: v.AnnualCurrentYield(),
		BreakEvenYield:     terms.BreakEvenYield(terms.MarketPrice),
	}, nil
}

// Sensitivity returns the price sensitivity sweep for one bond
func (s *Service) Sensitivity(b *Bond) ([]bond.SensitivityRow, error) {
	v, _, _, err := s.valuationFor(b)
	if err != nil {
		return nil, err
	}
	return v.PriceSensitivity(), nil
}

// Scenarios returns the scenario table for one bond
func (s *Service) Scenarios(b *Bond) ([]bond.ScenarioRow, error) {
	v, _, _, err := s.valuationFor(b)
	if err != nil {
		return nil, err
	}
	return v.ScenarioAnalysis(), nil
}

// Frequencies returns the payment frequency comparison for one bond
func (s *Service) Frequencies(b *Bond) ([]bond.FrequencyRow, error) {
	v, _, _, err := s.valuationFor(b)
	if err != nil {
		return nil, err
	}
	return v.FrequencyComparison(), nil
}

// Amortization returns the payment schedule for one bond
func (s *Service) Amortization(b *Bond) ([]bond.AmortizationRow, error) {
	terms := b.Terms()
	if err := terms.Validate(); err != nil {
		return nil, err
	}
	return terms.AmortizationSchedule(), nil
}

// BreakEven solves for the yield that prices the bond at referencePrice
func (s *Service) BreakEven(b *Bond, referencePrice float64) (float64, error) {
	terms := b.Terms()
	if err := terms.Validate(); err != nil {
		return 0, err
	}
	if referencePrice <= 0 {
		return 0, fmt.Errorf("reference price must be positive")
	}
	return terms.BreakEvenYield(referencePrice), nil
}
