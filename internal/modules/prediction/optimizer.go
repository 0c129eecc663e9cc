package prediction

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/pedrocvaranda/modelo-alocacao-caixa/internal/domain"
	"github.com/pedrocvaranda/modelo-alocacao-caixa/internal/modules/evaluation"
)

// ErrNotTrained indicates the optimizer was asked to predict before its
// models were trained or loaded.
var ErrNotTrained = errors.New("prediction models are not trained")

// Floors applied to the raw regressor outputs before renormalization.
const (
	reserveFloor = 0.1
	growthFloor  = 0.1
	riskFloor    = 0.0
)

// Training-data parameter ranges. These mirror the input domains the
// advisor and simulator are expected to handle.
const (
	minCash, maxCash           = 10000.0, 500000.0
	minMonthly, maxMonthly     = 5000.0, 100000.0
	minFixed, maxFixed         = 2000.0, 50000.0
	minVariable, maxVariable   = 1000.0, 30000.0
	minVol, maxVol             = 0.05, 0.40
	minTolerance, maxTolerance = 0.1, 0.9
	minMonths, maxMonths       = 3, 11
)

// Optimizer bundles the three tier regressors and their feature scaler as
// one explicitly owned state unit. It is created once (load or train) and
// then shared read-only across requests; there is no package-level state.
type Optimizer struct {
	evaluator *evaluation.Service
	log       zerolog.Logger

	reserve *Regressor
	growth  *Regressor
	risk    *Regressor
	scaler  *Scaler
	trained bool
}

// NewOptimizer creates an untrained optimizer bound to an evaluation
// service (used for training-data generation and combined evaluation).
func NewOptimizer(evaluator *evaluation.Service, log zerolog.Logger) *Optimizer {
	return &Optimizer{
		evaluator: evaluator,
		log:       log.With().Str("component", "prediction").Logger(),
	}
}

// Trained reports whether models are ready for prediction.
func (o *Optimizer) Trained() bool {
	return o.trained
}

// GenerateTrainingData draws n parameter sets uniformly across the
// documented ranges and records the advisor's allocation together with a
// single-run (no Monte Carlo, for speed) evaluation of it.
func (o *Optimizer) GenerateTrainingData(n int, rng *rand.Rand) (Dataset, error) {
	ds := make(Dataset, 0, n)
	for i := 0; i < n; i++ {
		params, err := domain.NewParameterSet(
			uniform(rng, minCash, maxCash),
			uniform(rng, minMonthly, maxMonthly),
			uniform(rng, minFixed, maxFixed),
			uniform(rng, minVariable, maxVariable),
			uniform(rng, minVol, maxVol),
			uniform(rng, minTolerance, maxTolerance),
			minMonths+rng.Intn(maxMonths-minMonths+1),
		)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}

		outcome, alloc, err := o.evaluator.SuggestAndEvaluate(params, false, rng)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}

		f := Features(params)
		valid := 0.0
		if outcome.Valid {
			valid = 1.0
		}
		ds = append(ds, Sample{
			Cash:             f[0],
			MonthlyCash:      f[1],
			FixedExpenses:    f[2],
			VariableExpenses: f[3],
			Volatility:       f[4],
			RiskTolerance:    f[5],
			ProtectedMonths:  f[6],
			SlackRatio:       f[7],
			ReserveMonths:    f[8],
			ReservePct:       alloc.ReservePct,
			GrowthPct:        alloc.GrowthPct,
			RiskPct:          alloc.RiskPct,
			Valid:            valid,
			SurvivalProb:     outcome.BadSurvivalProbability,
		})

		if (i+1)%1000 == 0 {
			o.log.Debug().Int("generated", i+1).Int("total", n).Msg("Training data progress")
		}
	}
	return ds, nil
}

// TrainingReport carries the per-target in-sample R² of a training run.
type TrainingReport struct {
	ReserveR2 float64 `json:"reserve_r2"`
	GrowthR2  float64 `json:"growth_r2"`
	RiskR2    float64 `json:"risk_r2"`
	Samples   int     `json:"samples"`
}

// Train fits the scaler and the three tier regressors on the dataset.
func (o *Optimizer) Train(ds Dataset) (TrainingReport, error) {
	if len(ds) == 0 {
		return TrainingReport{}, fmt.Errorf("cannot train on an empty dataset")
	}

	rows := make([][]float64, len(ds))
	reserveTargets := make([]float64, len(ds))
	growthTargets := make([]float64, len(ds))
	riskTargets := make([]float64, len(ds))
	for i, s := range ds {
		rows[i] = s.features()
		reserveTargets[i] = s.ReservePct
		growthTargets[i] = s.GrowthPct
		riskTargets[i] = s.RiskPct
	}

	scaler := &Scaler{}
	if err := scaler.Fit(rows); err != nil {
		return TrainingReport{}, fmt.Errorf("fit scaler: %w", err)
	}
	scaled, err := scaler.TransformAll(rows)
	if err != nil {
		return TrainingReport{}, fmt.Errorf("standardize training data: %w", err)
	}

	models := map[string]struct {
		regressor *Regressor
		targets   []float64
	}{
		"reserve": {&Regressor{}, reserveTargets},
		"growth":  {&Regressor{}, growthTargets},
		"risk":    {&Regressor{}, riskTargets},
	}
	for name, m := range models {
		if err := m.regressor.Fit(scaled, m.targets); err != nil {
			return TrainingReport{}, fmt.Errorf("fit %s regressor: %w", name, err)
		}
	}

	o.scaler = scaler
	o.reserve = models["reserve"].regressor
	o.growth = models["growth"].regressor
	o.risk = models["risk"].regressor
	o.trained = true

	report := TrainingReport{
		ReserveR2: rSquared(o.reserve, scaled, reserveTargets),
		GrowthR2:  rSquared(o.growth, scaled, growthTargets),
		RiskR2:    rSquared(o.risk, scaled, riskTargets),
		Samples:   len(ds),
	}
	o.log.Info().
		Int("samples", report.Samples).
		Float64("reserve_r2", report.ReserveR2).
		Float64("growth_r2", report.GrowthR2).
		Float64("risk_r2", report.RiskR2).
		Msg("Regression models trained")
	return report, nil
}

// Predict approximates the advisor + estimator path in constant time.
// Raw regressor outputs are clamped to tier floors and renormalized so the
// split sums to exactly 100; the risk tier takes the 100-minus-others
// remainder to avoid floating-point drift.
func (o *Optimizer) Predict(params domain.ParameterSet) (domain.AllocationStrategy, error) {
	if !o.trained {
		return domain.AllocationStrategy{}, ErrNotTrained
	}

	scaled, err := o.scaler.Transform(Features(params))
	if err != nil {
		return domain.AllocationStrategy{}, fmt.Errorf("standardize features: %w", err)
	}

	return normalizeAllocation(
		o.reserve.Predict(scaled),
		o.growth.Predict(scaled),
		o.risk.Predict(scaled),
	)
}

// normalizeAllocation turns raw regressor outputs into a valid strategy.
func normalizeAllocation(reserveRaw, growthRaw, riskRaw float64) (domain.AllocationStrategy, error) {
	reservePct := math.Max(reserveFloor, reserveRaw)
	growthPct := math.Max(growthFloor, growthRaw)
	riskPct := math.Max(riskFloor, riskRaw)

	total := reservePct + growthPct + riskPct
	if total <= 0 {
		return fallbackAllocation()
	}

	reservePct = (reservePct / total) * 100
	growthPct = (growthPct / total) * 100
	// The remainder can land a rounding error below zero when the raw
	// risk output sat on its floor.
	riskPct = math.Max(0, 100.0-reservePct-growthPct)

	return domain.NewAllocationStrategy(reservePct, growthPct, riskPct)
}

// fallbackAllocation is the conservative default used when the regressors
// produce a degenerate split.
func fallbackAllocation() (domain.AllocationStrategy, error) {
	return domain.NewAllocationStrategy(50.0, 30.0, 20.0)
}

// EvaluateWithModel predicts an allocation and validates it through the
// full evaluator, combining the constant-time approximation with the
// authoritative survival gate.
func (o *Optimizer) EvaluateWithModel(
	params domain.ParameterSet,
	useMonteCarlo bool,
	rng *rand.Rand,
) (domain.EvaluationOutcome, domain.AllocationStrategy, error) {
	alloc, err := o.Predict(params)
	if err != nil {
		return domain.EvaluationOutcome{}, domain.AllocationStrategy{}, err
	}
	return o.evaluator.Evaluate(params, alloc, useMonteCarlo, rng), alloc, nil
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func rSquared(r *Regressor, rows [][]float64, targets []float64) float64 {
	estimates := make([]float64, len(rows))
	for i, row := range rows {
		estimates[i] = r.Predict(row)
	}
	return stat.RSquaredFrom(estimates, targets, nil)
}
