package scheduler

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/bond-desk/internal/modules/bonds"
	"github.com/aristath/bond-desk/internal/modules/snapshots"
)

// SnapshotJob revalues every catalogued bond and appends the results to the
// valuation history.
type SnapshotJob struct {
	log          zerolog.Logger
	bondRepo     *bonds.Repository
	bondService  *bonds.Service
	snapshotRepo *snapshots.Repository
}

// SnapshotJobConfig holds dependencies for the snapshot job
type SnapshotJobConfig struct {
	Log          zerolog.Logger
	BondRepo     *bonds.Repository
	BondService  *bonds.Service
	SnapshotRepo *snapshots.Repository
}

// NewSnapshotJob creates a new snapshot job
func NewSnapshotJob(cfg SnapshotJobConfig) *SnapshotJob {
	return &SnapshotJob{
		log:          cfg.Log.With().Str("job", "valuation_snapshot").Logger(),
		bondRepo:     cfg.BondRepo,
		bondService:  cfg.BondService,
		snapshotRepo: cfg.SnapshotRepo,
	}
}

// Name returns the job name
func (j *SnapshotJob) Name() string {
	return "valuation_snapshot"
}

// Run revalues the catalogue. A bond that fails to value is logged and
// skipped; the run only fails when nothing could be valued.
func (j *SnapshotJob) Run() error {
	catalogue, err := j.bondRepo.GetAll()
	if err != nil {
		return fmt.Errorf("failed to load catalogue: %w", err)
	}
	if len(catalogue) == 0 {
		j.log.Debug().Msg("No bonds to snapshot")
		return nil
	}

	date := time.Now().Format("2006-01-02")
	failed := 0

	for i := range catalogue {
		b := &catalogue[i]

		analysis, err := j.bondService.Analyze(b)
		if err != nil {
			j.log.Error().Err(err).Str("symbol", b.Symbol).Msg("Failed to value bond")
			failed++
			continue
		}

		_, err = j.snapshotRepo.Create(&snapshots.Snapshot{
			Symbol:           b.Symbol,
			Date:             date,
			MarketPrice:      b.MarketPrice,
			YTM:              analysis.YTM,
			YTMConverged:     analysis.YTMConverged,
			MacaulayDuration: analysis.MacaulayDuration,
			ModifiedDuration: analysis.ModifiedDuration,
			Convexity:        analysis.Convexity,
			CurrentYield:     analysis.CurrentYield,
		})
		if err != nil {
			j.log.Error().Err(err).Str("symbol", b.Symbol).Msg("Failed to store snapshot")
			failed++
		}
	}

	j.log.Info().
		Int("bonds", len(catalogue)).
		Int("failed", failed).
		Str("date", date).
		Msg("Valuation snapshot complete")

	if failed == len(catalogue) {
		return fmt.Errorf("all %d bonds failed to snapshot", failed)
	}
	return nil
}
