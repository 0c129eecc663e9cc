// Package history persists evaluation outcomes so reporting and plotting
// consumers can read past decisions without re-running simulations.
package history

import "time"

// Record is one persisted evaluation decision.
type Record struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Valid     bool      `json:"valid"`

	ReservePct float64 `json:"reserve_pct"`
	GrowthPct  float64 `json:"growth_pct"`
	RiskPct    float64 `json:"risk_pct"`

	BadSurvivalProbability float64 `json:"bad_survival_probability"`
	// BadMeanMonthsToZero is nil when no simulated run hit zero.
	BadMeanMonthsToZero *float64 `json:"bad_mean_months_to_zero"`

	ReserveValue float64 `json:"reserve_value"`
	GrowthValue  float64 `json:"growth_value"`
	RiskValue    float64 `json:"risk_value"`
}
