package scheduler

import (
	"database/sql"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/bond-desk/internal/modules/bonds"
	"github.com/aristath/bond-desk/internal/modules/snapshots"

	_ "modernc.org/sqlite"
)

func setupJob(t *testing.T) (*SnapshotJob, *bonds.Repository, *snapshots.Repository) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, bonds.InitSchema(db))
	require.NoError(t, snapshots.InitSchema(db))
	t.Cleanup(func() { db.Close() })

	bondRepo := bonds.NewRepository(db, zerolog.Nop())
	snapshotRepo := snapshots.NewRepository(db, zerolog.Nop())

	job := NewSnapshotJob(SnapshotJobConfig{
		Log:          zerolog.Nop(),
		BondRepo:     bondRepo,
		BondService:  bonds.NewService(0, 0, zerolog.Nop()),
		SnapshotRepo: snapshotRepo,
	})
	return job, bondRepo, snapshotRepo
}

func TestSnapshotJob_Run(t *testing.T) {
	job, bondRepo, snapshotRepo := setupJob(t)

	_, err := bondRepo.Create(&bonds.Bond{
		Symbol:           "TB-8Y",
		Name:             "Treasury 5% 8Y",
		FaceValue:        1000,
		CouponRate:       0.05,
		MarketPrice:      950,
		RemainingYears:   8,
		PaymentFrequency: 2,
	})
	require.NoError(t, err)

	require.NoError(t, job.Run())

	latest, err := snapshotRepo.Latest("TB-8Y")
	require.NoError(t, err)
	require.NotNil(t, latest)

	assert.Equal(t, time.Now().Format("2006-01-02"), latest.Date)
	assert.Equal(t, 950.0, latest.MarketPrice)
	assert.True(t, latest.YTMConverged)
	assert.Greater(t, latest.MacaulayDuration, 0.0)
}

func TestSnapshotJob_Run_EmptyCatalogue(t *testing.T) {
	job, _, _ := setupJob(t)

	assert.NoError(t, job.Run())
}

func TestSnapshotJob_Name(t *testing.T) {
	job, _, _ := setupJob(t)

	assert.Equal(t, "valuation_snapshot", job.Name())
}
