// Package advisor derives a deterministic starting allocation from a
// firm's parameters alone, with no simulation involved.
package advisor

import (
	"math"

	"github.com/pedrocvaranda/modelo-alocacao-caixa/internal/domain"
)

// riskShareCap limits how much of the non-reserve remainder the risk tier
// can claim at full risk tolerance.
const riskShareCap = 0.3

// MinimumReserve computes the reserve needed to cover the bad-case monthly
// deficit through the protected window. The 1.2 expense factor and the
// 1-2×volatility cash factor mirror the bad-scenario multiplier profile.
func MinimumReserve(params domain.ParameterSet) float64 {
	badExpenses := params.TotalExpenses() * 1.2
	badCash := math.Max(0, params.ExpectedMonthlyCash*(1-2*params.CashVolatility))
	monthlyDeficit := math.Max(0, badExpenses-badCash)
	return monthlyDeficit * float64(params.ProtectedMonths)
}

// Suggest proposes an allocation: reserve sized to the minimum protected
// requirement, the remainder split between growth and risk according to
// risk tolerance. Percentages are rounded to two decimals with the growth
// tier taking the exact remainder so the split always sums to 100.
func Suggest(params domain.ParameterSet) (domain.AllocationStrategy, error) {
	reservePct := (MinimumReserve(params) / params.CashOnHand) * 100
	reservePct = math.Min(reservePct, 100.0)

	remaining := 100.0 - reservePct
	riskPct := remaining * params.RiskTolerance * riskShareCap

	reservePct = round2(reservePct)
	riskPct = round2(riskPct)
	growthPct := round2(100.0 - reservePct - riskPct)

	return domain.NewAllocationStrategy(reservePct, growthPct, riskPct)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
