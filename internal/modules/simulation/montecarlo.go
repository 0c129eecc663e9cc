package simulation

import (
	"math"
	"math/rand"
	"runtime"
	"sync"

	"github.com/pedrocvaranda/modelo-alocacao-caixa/internal/domain"
)

// DefaultMonteCarloRuns is the run count used when a caller passes a
// non-positive value to MonteCarlo.
const DefaultMonteCarloRuns = 500

// MonteCarloEstimate aggregates independent simulated runs for a fixed
// scenario, allocation and parameter set.
type MonteCarloEstimate struct {
	SurvivalProbability float64 `json:"survival_probability"` // fraction of runs that survived
	MeanMonthsToZero    float64 `json:"mean_months_to_zero"`  // mean over runs that hit zero; +Inf if none did
	Runs                int     `json:"runs"`
}

// MonteCarlo estimates the survival probability by running the scenario
// simulator `runs` independent times. Runs are split across workers; each
// worker draws from a child generator seeded from the caller's source, so
// a seeded caller gets reproducible aggregates for a fixed worker count.
// Aggregation is order-insensitive.
func (s *Simulator) MonteCarlo(
	params domain.ParameterSet,
	alloc domain.AllocationStrategy,
	scenario domain.Scenario,
	runs int,
	rng *rand.Rand,
) MonteCarloEstimate {
	if runs <= 0 {
		runs = DefaultMonteCarloRuns
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > runs {
		workers = runs
	}

	type partial struct {
		survived  int
		zeroSum   float64
		zeroCount int
	}
	partials := make([]partial, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		n := runs / workers
		if w < runs%workers {
			n++
		}
		// Child sources are derived before the goroutines start so the
		// parent generator is only touched from this goroutine.
		child := rand.New(rand.NewSource(rng.Int63()))

		wg.Add(1)
		go func(slot, n int, child *rand.Rand) {
			defer wg.Done()
			var p partial
			for i := 0; i < n; i++ {
				result := s.Run(params, alloc, scenario, child)
				if result.Survived {
					p.survived++
				}
				if result.HitZero() {
					p.zeroSum += result.MonthsToZero
					p.zeroCount++
				}
			}
			partials[slot] = p
		}(w, n, child)
	}
	wg.Wait()

	var survived, zeroCount int
	var zeroSum float64
	for _, p := range partials {
		survived += p.survived
		zeroSum += p.zeroSum
		zeroCount += p.zeroCount
	}

	estimate := MonteCarloEstimate{
		SurvivalProbability: float64(survived) / float64(runs),
		MeanMonthsToZero:    math.Inf(1),
		Runs:                runs,
	}
	if zeroCount > 0 {
		estimate.MeanMonthsToZero = zeroSum / float64(zeroCount)
	}

	s.log.Debug().
		Str("scenario", string(scenario)).
		Int("runs", runs).
		Float64("survival_probability", estimate.SurvivalProbability).
		Msg("Monte Carlo estimate complete")

	return estimate
}
