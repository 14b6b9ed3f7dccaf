package snapshots

import (
	"fmt"

	"github.com/aristath/bond-desk/pkg/formulas"
	"github.com/rs/zerolog"
)

// Service summarizes valuation history
type Service struct {
	repo *Repository
	log  zerolog.Logger
}

// NewService creates a new snapshot service
func NewService(repo *Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("service", "snapshots").Logger(),
	}
}

// History returns a bond's snapshots over the last N days, oldest first
func (s *Service) History(symbol string, days int) ([]Snapshot, error) {
	return s.repo.GetBySymbol(symbol, days)
}

// Stats summarizes the yield and price history of one bond
func (s *Service) Stats(symbol string, days int) (HistoryStats, error) {
	snaps, err := s.repo.GetBySymbol(symbol, days)
	if err != nil {
		return HistoryStats{}, fmt.Errorf("failed to load history: %w", err)
	}
	if len(snaps) == 0 {
		return HistoryStats{}, fmt.Errorf("no snapshots for %s", symbol)
	}

	yields := make([]float64, len(snaps))
	prices := make([]float64, len(snaps))
	for i, snap := range snaps {
		yields[i] = snap.YTM
		prices[i] = snap.MarketPrice
	}

	return HistoryStats{
		Symbol:      symbol,
		Count:       len(snaps),
		YTMMean:     formulas.Mean(yields),
		YTMStdDev:   formulas.StdDev(yields),
		YTMMin:      formulas.Min(yields),
		YTMMax:      formulas.Max(yields),
		YTMChange:   formulas.Change(yields),
		PriceMean:   formulas.Mean(prices),
		PriceStdDev: formulas.StdDev(prices),
		PriceMin:    formulas.Min(prices),
		PriceMax:    formulas.Max(prices),
		PriceChange: formulas.Change(prices),
	}, nil
}
