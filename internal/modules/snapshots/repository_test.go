package snapshots

import (
	"database/sql"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, InitSchema(db))

	t.Cleanup(func() { db.Close() })
	return db
}

func testSnapshot(date string, ytm, price float64) *Snapshot {
	return &Snapshot{
		Symbol:           "TB-8Y",
		Date:             date,
		MarketPrice:      price,
		YTM:              ytm,
		YTMConverged:     true,
		MacaulayDuration: 13.2,
		ModifiedDuration: 12.8,
		Convexity:        200.5,
		CurrentYield:     0.0263,
	}
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo := NewRepository(setupTestDB(t), zerolog.Nop())

	_, err := repo.Create(testSnapshot("2026-08-20", 0.0578, 950))
	require.NoError(t, err)
	_, err = repo.Create(testSnapshot("2026-08-21", 0.0561, 962))
	require.NoError(t, err)

	snaps, err := repo.GetBySymbol("TB-8Y", 0)
	require.NoError(t, err)
	require.Len(t, snaps, 2)

	// Oldest first.
	assert.Equal(t, "2026-08-20", snaps[0].Date)
	assert.Equal(t, "2026-08-21", snaps[1].Date)
	assert.True(t, snaps[0].YTMConverged)
}

func TestRepository_Create_ReplacesSameDay(t *testing.T) {
	repo := NewRepository(setupTestDB(t), zerolog.Nop())

	_, err := repo.Create(testSnapshot("2026-08-21", 0.0561, 962))
	require.NoError(t, err)
	_, err = repo.Create(testSnapshot("2026-08-21", 0.0555, 967))
	require.NoError(t, err)

	snaps, err := repo.GetBySymbol("TB-8Y", 0)
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.InDelta(t, 0.0555, snaps[0].YTM, 1e-12)
}

func TestRepository_GetBySymbol_DayWindow(t *testing.T) {
	repo := NewRepository(setupTestDB(t), zerolog.Nop())

	old := time.Now().AddDate(0, 0, -30).Format("2006-01-02")
	recent := time.Now().Format("2006-01-02")

	_, err := repo.Create(testSnapshot(old, 0.0610, 930))
	require.NoError(t, err)
	_, err = repo.Create(testSnapshot(recent, 0.0561, 962))
	require.NoError(t, err)

	snaps, err := repo.GetBySymbol("TB-8Y", 7)
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, recent, snaps[0].Date)
}

func TestRepository_Latest(t *testing.T) {
	repo := NewRepository(setupTestDB(t), zerolog.Nop())

	latest, err := repo.Latest("TB-8Y")
	require.NoError(t, err)
	assert.Nil(t, latest)

	_, err = repo.Create(testSnapshot("2026-08-20", 0.0578, 950))
	require.NoError(t, err)
	_, err = repo.Create(testSnapshot("2026-08-21", 0.0561, 962))
	require.NoError(t, err)

	latest, err = repo.Latest("TB-8Y")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "2026-08-21", latest.Date)
}

func TestRepository_DeleteBySymbol(t *testing.T) {
	repo := NewRepository(setupTestDB(t), zerolog.Nop())

	_, err := repo.Create(testSnapshot("2026-08-20", 0.0578, 950))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteBySymbol("TB-8Y"))

	snaps, err := repo.GetBySymbol("TB-8Y", 0)
	require.NoError(t, err)
	assert.Empty(t, snaps)
}
