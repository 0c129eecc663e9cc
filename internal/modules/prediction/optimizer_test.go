package prediction

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedrocvaranda/modelo-alocacao-caixa/internal/domain"
	"github.com/pedrocvaranda/modelo-alocacao-caixa/internal/modules/evaluation"
	"github.com/pedrocvaranda/modelo-alocacao-caixa/internal/modules/simulation"
)

func newTestOptimizer(t *testing.T) *Optimizer {
	t.Helper()
	svc := evaluation.New(simulation.New(zerolog.Nop()), 0, zerolog.Nop())
	return NewOptimizer(svc, zerolog.Nop())
}

func trainedOptimizer(t *testing.T) *Optimizer {
	t.Helper()
	o := newTestOptimizer(t)
	ds, err := o.GenerateTrainingData(400, rand.New(rand.NewSource(31)))
	require.NoError(t, err)
	_, err = o.Train(ds)
	require.NoError(t, err)
	return o
}

func TestPredictBeforeTraining(t *testing.T) {
	o := newTestOptimizer(t)
	params, err := domain.NewParameterSet(100000, 15000, 8000, 3000, 0.15, 0.3, 6)
	require.NoError(t, err)

	_, err = o.Predict(params)
	assert.ErrorIs(t, err, ErrNotTrained)
	assert.False(t, o.Trained())
}

func TestGenerateTrainingData(t *testing.T) {
	o := newTestOptimizer(t)
	ds, err := o.GenerateTrainingData(50, rand.New(rand.NewSource(32)))
	require.NoError(t, err)
	require.Len(t, ds, 50)

	for i, s := range ds {
		assert.GreaterOrEqual(t, s.Cash, minCash, "sample %d", i)
		assert.LessOrEqual(t, s.Cash, maxCash, "sample %d", i)
		assert.GreaterOrEqual(t, s.ProtectedMonths, float64(minMonths), "sample %d", i)
		assert.LessOrEqual(t, s.ProtectedMonths, float64(maxMonths), "sample %d", i)
		assert.InDelta(t, 100.0, s.ReservePct+s.GrowthPct+s.RiskPct, domain.AllocationSumTolerance, "sample %d", i)
		assert.Contains(t, []float64{0, 1}, s.Valid, "sample %d", i)
	}
}

func TestTrainReportsFit(t *testing.T) {
	o := newTestOptimizer(t)
	ds, err := o.GenerateTrainingData(400, rand.New(rand.NewSource(33)))
	require.NoError(t, err)

	report, err := o.Train(ds)
	require.NoError(t, err)
	assert.True(t, o.Trained())
	assert.Equal(t, 400, report.Samples)

	// The advisor's reserve rule is strongly driven by the deficit and
	// protected-months features; even a linear fit should explain a
	// meaningful share of the variance.
	assert.Greater(t, report.ReserveR2, 0.2)
	assert.LessOrEqual(t, report.ReserveR2, 1.0)
}

func TestPredictSumInvariant(t *testing.T) {
	o := trainedOptimizer(t)

	tests := []struct {
		name      string
		cash      float64
		monthly   float64
		fixed     float64
		variable  float64
		vol       float64
		tolerance float64
		months    int
	}{
		{"mid-range firm", 100000, 15000, 8000, 3000, 0.15, 0.3, 6},
		{"tiny firm", 10000, 5000, 2000, 1000, 0.05, 0.1, 3},
		{"large volatile firm", 500000, 100000, 50000, 30000, 0.4, 0.9, 11},
		{"outside training range", 900000, 200000, 60000, 40000, 0.45, 0.95, 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := domain.NewParameterSet(tt.cash, tt.monthly, tt.fixed, tt.variable, tt.vol, tt.tolerance, tt.months)
			require.NoError(t, err)

			alloc, err := o.Predict(params)
			require.NoError(t, err)
			assert.InDelta(t, 100.0, alloc.ReservePct+alloc.GrowthPct+alloc.RiskPct, domain.AllocationSumTolerance)
			assert.GreaterOrEqual(t, alloc.RiskPct, 0.0)
		})
	}
}

func TestNormalizeAllocationFloors(t *testing.T) {
	// Heavily negative raw outputs collapse to the tier floors and
	// renormalize into a valid reserve/growth split.
	alloc, err := normalizeAllocation(-40, -10, -5)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, alloc.ReservePct, 1e-9)
	assert.InDelta(t, 50.0, alloc.GrowthPct, 1e-9)
	assert.InDelta(t, 0.0, alloc.RiskPct, 1e-9)
}

func TestFallbackAllocation(t *testing.T) {
	alloc, err := fallbackAllocation()
	require.NoError(t, err)
	assert.Equal(t, 50.0, alloc.ReservePct)
	assert.Equal(t, 30.0, alloc.GrowthPct)
	assert.Equal(t, 20.0, alloc.RiskPct)
}

func TestEvaluateWithModel(t *testing.T) {
	o := trainedOptimizer(t)
	params, err := domain.NewParameterSet(200000, 30000, 10000, 5000, 0.1, 0.4, 6)
	require.NoError(t, err)

	outcome, alloc, err := o.EvaluateWithModel(params, false, rand.New(rand.NewSource(34)))
	require.NoError(t, err)
	assert.Equal(t, alloc.ReservePct, outcome.ReservePct)
	assert.InDelta(t, 100.0, outcome.ReservePct+outcome.GrowthPct+outcome.RiskPct, domain.AllocationSumTolerance)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	o := trainedOptimizer(t)
	folder := t.TempDir()
	require.NoError(t, o.Save(folder, "allocation"))

	params, err := domain.NewParameterSet(150000, 20000, 9000, 4000, 0.2, 0.5, 8)
	require.NoError(t, err)
	want, err := o.Predict(params)
	require.NoError(t, err)

	restored := newTestOptimizer(t)
	require.NoError(t, restored.Load(folder, "allocation"))
	assert.True(t, restored.Trained())

	got, err := restored.Predict(params)
	require.NoError(t, err)
	assert.InDelta(t, want.ReservePct, got.ReservePct, 1e-9)
	assert.InDelta(t, want.GrowthPct, got.GrowthPct, 1e-9)
	assert.InDelta(t, want.RiskPct, got.RiskPct, 1e-9)
}

func TestSaveBeforeTraining(t *testing.T) {
	o := newTestOptimizer(t)
	assert.ErrorIs(t, o.Save(t.TempDir(), "allocation"), ErrNotTrained)
}

func TestLoadOrTrain(t *testing.T) {
	folder := t.TempDir()

	// First start: nothing persisted, so it trains and saves.
	first := newTestOptimizer(t)
	require.NoError(t, first.LoadOrTrain(folder, "allocation", 200, rand.New(rand.NewSource(35))))
	assert.True(t, first.Trained())

	// Second start: artifacts exist, so it loads without retraining.
	second := newTestOptimizer(t)
	require.NoError(t, second.LoadOrTrain(folder, "allocation", 200, rand.New(rand.NewSource(36))))
	assert.True(t, second.Trained())

	params, err := domain.NewParameterSet(100000, 15000, 8000, 3000, 0.15, 0.3, 6)
	require.NoError(t, err)
	a, err := first.Predict(params)
	require.NoError(t, err)
	b, err := second.Predict(params)
	require.NoError(t, err)
	assert.InDelta(t, a.ReservePct, b.ReservePct, 1e-9)
}
