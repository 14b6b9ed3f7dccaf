package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 1e-12)
}

func TestStdDev(t *testing.T) {
	assert.Equal(t, 0.0, StdDev([]float64{5}))
	// Sample standard deviation of {2, 4, 4, 4, 5, 5, 7, 9}.
	assert.InDelta(t, 2.138, StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-3)
}

func TestMinMax(t *testing.T) {
	data := []float64{0.052, 0.049, 0.061, 0.055}

	assert.InDelta(t, 0.049, Min(data), 1e-12)
	assert.InDelta(t, 0.061, Max(data), 1e-12)
	assert.Equal(t, 0.0, Min(nil))
	assert.Equal(t, 0.0, Max(nil))
}

func TestChange(t *testing.T) {
	assert.Equal(t, 0.0, Change([]float64{1}))
	assert.InDelta(t, -0.003, Change([]float64{0.052, 0.055, 0.049}), 1e-12)
}
