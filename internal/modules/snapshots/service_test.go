package snapshots

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Stats(t *testing.T) {
	repo := NewRepository(setupTestDB(t), zerolog.Nop())
	service := NewService(repo, zerolog.Nop())

	_, err := repo.Create(testSnapshot("2026-08-19", 0.060, 940))
	require.NoError(t, err)
	_, err = repo.Create(testSnapshot("2026-08-20", 0.058, 950))
	require.NoError(t, err)
	_, err = repo.Create(testSnapshot("2026-08-21", 0.056, 962))
	require.NoError(t, err)

	stats, err := service.Stats("TB-8Y", 0)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Count)
	assert.InDelta(t, 0.058, stats.YTMMean, 1e-9)
	assert.InDelta(t, 0.056, stats.YTMMin, 1e-12)
	assert.InDelta(t, 0.060, stats.YTMMax, 1e-12)
	assert.InDelta(t, -0.004, stats.YTMChange, 1e-12)

	assert.InDelta(t, 950.6667, stats.PriceMean, 1e-3)
	assert.InDelta(t, 22.0, stats.PriceChange, 1e-9)
}

func TestService_Stats_NoHistory(t *testing.T) {
	repo := NewRepository(setupTestDB(t), zerolog.Nop())
	service := NewService(repo, zerolog.Nop())

	_, err := service.Stats("NOPE", 0)
	assert.Error(t, err)
}

func TestService_History(t *testing.T) {
	repo := NewRepository(setupTestDB(t), zerolog.Nop())
	service := NewService(repo, zerolog.Nop())

	_, err := repo.Create(testSnapshot("2026-08-20", 0.058, 950))
	require.NoError(t, err)

	snaps, err := service.History("TB-8Y", 0)
	require.NoError(t, err)
	assert.Len(t, snaps, 1)
}
