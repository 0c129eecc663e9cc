// Package simulation runs stochastic month-by-month cash-flow trajectories
// and Monte Carlo survival estimation for a (parameters, allocation,
// scenario) triple.
package simulation

import (
	"math"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/pedrocvaranda/modelo-alocacao-caixa/internal/domain"
)

// noiseFunc draws a zero-mean shock with the given standard deviation.
type noiseFunc func(std float64) float64

// gaussNoise builds a noiseFunc backed by the caller's random source.
func gaussNoise(rng *rand.Rand) noiseFunc {
	return func(std float64) float64 {
		if std == 0 {
			return 0
		}
		return rng.NormFloat64() * std
	}
}

// noNoise removes all stochastic shocks. Used for deterministic runs.
func noNoise(float64) float64 { return 0 }

// Simulator runs scenario trajectories. It is stateless apart from its
// logger; the random source is threaded through each call so concurrent
// runs never share generator state.
type Simulator struct {
	log zerolog.Logger
}

// New creates a new scenario simulator.
func New(log zerolog.Logger) *Simulator {
	return &Simulator{
		log: log.With().Str("component", "simulation").Logger(),
	}
}

// Run simulates a single stochastic trajectory for the given scenario.
// The returned trajectory always has length SimulationHorizon()+1,
// zero-padded when the cash hits zero before the horizon.
func (s *Simulator) Run(
	params domain.ParameterSet,
	alloc domain.AllocationStrategy,
	scenario domain.Scenario,
	rng *rand.Rand,
) domain.SimulationResult {
	return s.run(params, alloc, scenario, gaussNoise(rng))
}

// RunDeterministic simulates a trajectory with every stochastic shock
// removed; only the scenario multipliers and deterministic tier returns
// apply. Useful for regression baselines and what-if displays.
func (s *Simulator) RunDeterministic(
	params domain.ParameterSet,
	alloc domain.AllocationStrategy,
	scenario domain.Scenario,
) domain.SimulationResult {
	return s.run(params, alloc, scenario, noNoise)
}

func (s *Simulator) run(
	params domain.ParameterSet,
	alloc domain.AllocationStrategy,
	scenario domain.Scenario,
	noise noiseFunc,
) domain.SimulationResult {
	m := multipliersFor(scenario, params.CashVolatility)
	horizon := params.SimulationHorizon()

	reserve, growth, risk := alloc.Amounts(params.CashOnHand)
	total := reserve + growth + risk

	trajectory := make([]float64, 0, horizon+1)
	trajectory = append(trajectory, total)

	for month := 0; month < horizon; month++ {
		// Revenue draw, floored at zero
		monthlyCash := params.ExpectedMonthlyCash * m.cash
		monthlyCash = math.Max(0, monthlyCash+noise(params.CashVolatility*monthlyCash))

		// Expenses; only the variable part carries a shock
		fixed := params.FixedExpenses * m.expense
		variable := params.VariableExpenses * m.expense
		variable += noise(variable * 0.1)
		operating := monthlyCash - (fixed + variable)

		// Independent tier returns; the reserve tier earns without noise
		growthReturn := growth * (params.MediumRiskReturn*m.ret + noise(params.MediumRiskVolatility))
		riskReturn := risk * (params.HighRiskReturn*m.ret + noise(params.HighRiskVolatility))
		reserveReturn := reserve * params.SafeReturn * m.ret

		growth += growthReturn
		risk = math.Max(0, risk+riskReturn)
		reserve += reserveReturn

		if operating < 0 {
			// Cascading liquidation: drain the reserve first, then growth,
			// then risk. Shortfall beyond total capital is absorbed at the
			// zero floor; debt is not modeled.
			reserve += operating
			if reserve < 0 {
				growth += reserve
				reserve = 0
				if growth < 0 {
					risk += growth
					growth = 0
					if risk < 0 {
						risk = 0
					}
				}
			}
		} else {
			// Surplus is parked in the reserve tier
			reserve += operating
		}

		total = reserve + growth + risk
		trajectory = append(trajectory, total)

		if total <= 0 {
			survived := month >= params.ProtectedMonths
			for len(trajectory) < horizon+1 {
				trajectory = append(trajectory, 0)
			}
			probability := 0.0
			if survived {
				probability = float64(month) / float64(horizon)
			}
			s.log.Debug().
				Str("scenario", string(scenario)).
				Int("months_to_zero", month+1).
				Bool("survived", survived).
				Msg("Cash depleted before horizon")
			return domain.SimulationResult{
				Scenario:            scenario,
				Survived:            survived,
				MonthsToZero:        float64(month + 1),
				SurvivalProbability: probability,
				Trajectory:          trajectory,
			}
		}
	}

	return domain.SimulationResult{
		Scenario:            scenario,
		Survived:            true,
		MonthsToZero:        math.Inf(1),
		SurvivalProbability: 1.0,
		Trajectory:          trajectory,
	}
}
