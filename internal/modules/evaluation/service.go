// Package evaluation composes the advisor, the scenario simulator and the
// Monte Carlo estimator into a single allocation decision.
package evaluation

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pedrocvaranda/modelo-alocacao-caixa/internal/domain"
	"github.com/pedrocvaranda/modelo-alocacao-caixa/internal/modules/advisor"
	"github.com/pedrocvaranda/modelo-alocacao-caixa/internal/modules/simulation"
)

// SurvivalThreshold is the bad-scenario survival probability an allocation
// must reach to be considered valid. This is the single decision gate of
// the whole system.
const SurvivalThreshold = 0.70

// Service evaluates allocation strategies against the three scenarios.
type Service struct {
	sim            *simulation.Simulator
	monteCarloRuns int
	log            zerolog.Logger
}

// New creates an evaluation service. monteCarloRuns controls the bad-scenario
// estimator; a non-positive value selects the default.
func New(sim *simulation.Simulator, monteCarloRuns int, log zerolog.Logger) *Service {
	if monteCarloRuns <= 0 {
		monteCarloRuns = simulation.DefaultMonteCarloRuns
	}
	return &Service{
		sim:            sim,
		monteCarloRuns: monteCarloRuns,
		log:            log.With().Str("component", "evaluation").Logger(),
	}
}

// Evaluate runs all three scenarios once for display, then decides validity
// from the bad-scenario survival probability. With useMonteCarlo the
// bad-scenario statistic comes from the estimator; otherwise the single bad
// run's boolean outcome is used directly.
func (s *Service) Evaluate(
	params domain.ParameterSet,
	alloc domain.AllocationStrategy,
	useMonteCarlo bool,
	rng *rand.Rand,
) domain.EvaluationOutcome {
	good := s.sim.Run(params, alloc, domain.ScenarioGood, rng)
	neutral := s.sim.Run(params, alloc, domain.ScenarioNeutral, rng)
	bad := s.sim.Run(params, alloc, domain.ScenarioBad, rng)

	var survivalProbability, meanMonthsToZero float64
	if useMonteCarlo {
		estimate := s.sim.MonteCarlo(params, alloc, domain.ScenarioBad, s.monteCarloRuns, rng)
		survivalProbability = estimate.SurvivalProbability
		meanMonthsToZero = estimate.MeanMonthsToZero
	} else {
		if bad.Survived {
			survivalProbability = 1.0
		}
		meanMonthsToZero = bad.MonthsToZero
	}

	reserveValue, growthValue, riskValue := alloc.Amounts(params.CashOnHand)

	outcome := domain.EvaluationOutcome{
		ID:                     uuid.NewString(),
		Valid:                  survivalProbability >= SurvivalThreshold,
		ReservePct:             alloc.ReservePct,
		GrowthPct:              alloc.GrowthPct,
		RiskPct:                alloc.RiskPct,
		BadSurvivalProbability: survivalProbability,
		BadMeanMonthsToZero:    meanMonthsToZero,
		Good:                   good,
		Neutral:                neutral,
		Bad:                    bad,
		ReserveValue:           reserveValue,
		GrowthValue:            growthValue,
		RiskValue:              riskValue,
		CreatedAt:              time.Now(),
	}

	s.log.Info().
		Str("id", outcome.ID).
		Bool("valid", outcome.Valid).
		Float64("bad_survival_probability", survivalProbability).
		Bool("monte_carlo", useMonteCarlo).
		Msg("Allocation evaluated")

	return outcome
}

// SuggestAndEvaluate asks the advisor for a starting allocation and
// evaluates it. This is the default entry point for a fresh analysis.
func (s *Service) SuggestAndEvaluate(
	params domain.ParameterSet,
	useMonteCarlo bool,
	rng *rand.Rand,
) (domain.EvaluationOutcome, domain.AllocationStrategy, error) {
	alloc, err := advisor.Suggest(params)
	if err != nil {
		return domain.EvaluationOutcome{}, domain.AllocationStrategy{}, err
	}
	return s.Evaluate(params, alloc, useMonteCarlo, rng), alloc, nil
}
