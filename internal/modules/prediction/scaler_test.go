package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestScalerFitTransform(t *testing.T) {
	rows := [][]float64{
		{1, 100, 5},
		{2, 200, 5},
		{3, 300, 5},
		{4, 400, 5},
	}

	s := &Scaler{}
	require.NoError(t, s.Fit(rows))
	require.Len(t, s.Mean, 3)

	assert.Equal(t, 2.5, s.Mean[0])
	assert.Equal(t, 250.0, s.Mean[1])
	// Constant column: scale forced to 1 so transforms stay defined.
	assert.Equal(t, 5.0, s.Mean[2])
	assert.Equal(t, 1.0, s.Scale[2])

	scaled, err := s.TransformAll(rows)
	require.NoError(t, err)

	// Standardized non-constant columns have zero mean and unit variance.
	for j := 0; j < 2; j++ {
		column := make([]float64, len(scaled))
		for i := range scaled {
			column[i] = scaled[i][j]
		}
		mean, std := stat.MeanStdDev(column, nil)
		assert.InDelta(t, 0.0, mean, 1e-12)
		assert.InDelta(t, 1.0, std, 1e-12)
	}
	for i := range scaled {
		assert.Equal(t, 0.0, scaled[i][2])
	}
}

func TestScalerErrors(t *testing.T) {
	s := &Scaler{}
	assert.Error(t, s.Fit(nil))
	assert.Error(t, s.Fit([][]float64{{1, 2}, {1}}))

	require.NoError(t, s.Fit([][]float64{{1, 2}, {3, 4}}))
	_, err := s.Transform([]float64{1})
	assert.Error(t, err)
}
