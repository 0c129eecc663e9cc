package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedrocvaranda/modelo-alocacao-caixa/internal/domain"
)

func TestMinimumReserve(t *testing.T) {
	params, err := domain.NewParameterSet(100000, 15000, 8000, 3000, 0.15, 0.3, 6)
	require.NoError(t, err)

	// Bad-case expenses 11000*1.2 = 13200, bad-case cash 15000*0.7 = 10500,
	// deficit 2700/month over 6 protected months.
	assert.InDelta(t, 16200, MinimumReserve(params), 1e-9)
}

func TestSuggestKnownAllocation(t *testing.T) {
	params, err := domain.NewParameterSet(100000, 15000, 8000, 3000, 0.15, 0.3, 6)
	require.NoError(t, err)

	alloc, err := Suggest(params)
	require.NoError(t, err)

	assert.InDelta(t, 16.20, alloc.ReservePct, 1e-9)
	assert.InDelta(t, 7.54, alloc.RiskPct, 1e-9)
	assert.InDelta(t, 76.26, alloc.GrowthPct, 1e-9)
}

func TestSuggestDeterminism(t *testing.T) {
	params, err := domain.NewParameterSet(250000, 40000, 20000, 12000, 0.25, 0.7, 9)
	require.NoError(t, err)

	first, err := Suggest(params)
	require.NoError(t, err)
	second, err := Suggest(params)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSuggestReserveCappedAt100(t *testing.T) {
	// Tiny capital against a huge protected deficit: the reserve claim
	// exceeds the capital and must be capped, leaving nothing for the
	// other tiers.
	params, err := domain.NewParameterSet(10000, 5000, 20000, 10000, 0.3, 0.9, 11)
	require.NoError(t, err)

	alloc, err := Suggest(params)
	require.NoError(t, err)

	assert.Equal(t, 100.0, alloc.ReservePct)
	assert.Equal(t, 0.0, alloc.GrowthPct)
	assert.Equal(t, 0.0, alloc.RiskPct)
}

func TestSuggestSumInvariant(t *testing.T) {
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
		{"comfortable firm", 500000, 100000, 20000, 10000, 0.1, 0.9, 3},
		{"tight firm", 30000, 12000, 9000, 4000, 0.35, 0.2, 8},
		{"no deficit", 100000, 50000, 5000, 2000, 0.05, 0.5, 6},
		{"high volatility", 80000, 20000, 15000, 8000, 0.4, 0.6, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := domain.NewParameterSet(tt.cash, tt.monthly, tt.fixed, tt.variable, tt.vol, tt.tolerance, tt.months)
			require.NoError(t, err)

			alloc, err := Suggest(params)
			require.NoError(t, err)
			assert.InDelta(t, 100.0, alloc.ReservePct+alloc.GrowthPct+alloc.RiskPct, domain.AllocationSumTolerance)
		})
	}
}
