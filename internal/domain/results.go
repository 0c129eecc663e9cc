package domain

import (
	"math"
	"time"
)

// Scenario identifies a fixed multiplier profile applied to cash, expense
// and return draws during simulation.
type Scenario string

const (
	ScenarioGood    Scenario = "good"
	ScenarioNeutral Scenario = "neutral"
	ScenarioBad     Scenario = "bad"
)

// Scenarios lists all scenario kinds in display order.
func Scenarios() []Scenario {
	return []Scenario{ScenarioGood, ScenarioNeutral, ScenarioBad}
}

// SimulationResult is the outcome of a single simulated trajectory.
// Trajectory always has length SimulationHorizon()+1, front-loaded with the
// initial total and zero-padded if the cash hit zero before the horizon.
type SimulationResult struct {
	Scenario            Scenario  `json:"scenario"`
	Survived            bool      `json:"survived"`
	MonthsToZero        float64   `json:"months_to_zero"` // +Inf if cash never hit zero
	SurvivalProbability float64   `json:"survival_probability"`
	Trajectory          []float64 `json:"trajectory"`
}

// HitZero reports whether the simulated cash reached zero within the
// horizon.
func (r SimulationResult) HitZero() bool {
	return !math.IsInf(r.MonthsToZero, 1)
}

// FinalCash returns the last point of the trajectory.
func (r SimulationResult) FinalCash() float64 {
	if len(r.Trajectory) == 0 {
		return 0
	}
	return r.Trajectory[len(r.Trajectory)-1]
}

// EvaluationOutcome is the aggregate decision object returned by the
// evaluation service and consumed read-only by downstream layers
// (reporting, plotting, history).
type EvaluationOutcome struct {
	ID    string `json:"id"`
	Valid bool   `json:"valid"`

	ReservePct float64 `json:"reserve_pct"`
	GrowthPct  float64 `json:"growth_pct"`
	RiskPct    float64 `json:"risk_pct"`

	// Bad-scenario survival statistics; Monte Carlo when enabled,
	// otherwise the single bad run's boolean outcome.
	BadSurvivalProbability float64 `json:"bad_survival_probability"`
	BadMeanMonthsToZero    float64 `json:"bad_mean_months_to_zero"` // +Inf if no run hit zero

	Good    SimulationResult `json:"good"`
	Neutral SimulationResult `json:"neutral"`
	Bad     SimulationResult `json:"bad"`

	ReserveValue float64 `json:"reserve_value"`
	GrowthValue  float64 `json:"growth_value"`
	RiskValue    float64 `json:"risk_value"`

	CreatedAt time.Time `json:"created_at"`
}
