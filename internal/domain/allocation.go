package domain

import (
	"errors"
	"fmt"
	"math"
)

// AllocationSumTolerance is the allowed deviation from 100 when validating
// an allocation's percentage sum.
const AllocationSumTolerance = 0.01

// ErrAllocationSum indicates the three allocation percentages do not sum
// to 100 within tolerance.
var ErrAllocationSum = errors.New("allocation percentages must sum to 100")

// AllocationStrategy is a validated three-way split of capital across the
// reserve, growth and risk tiers, expressed in percentages. Instances are
// immutable once constructed.
type AllocationStrategy struct {
	ReservePct float64 `json:"reserve_pct"` // Liquid safety reserve
	GrowthPct  float64 `json:"growth_pct"`  // Safe / medium-risk investments
	RiskPct    float64 `json:"risk_pct"`    // High-risk investments
}

// NewAllocationStrategy validates and builds an AllocationStrategy.
// Construction fails if the percentages do not sum to 100 within
// AllocationSumTolerance; an invalid split is never silently corrected.
func NewAllocationStrategy(reservePct, growthPct, riskPct float64) (AllocationStrategy, error) {
	total := reservePct + growthPct + riskPct
	if math.Abs(total-100.0) > AllocationSumTolerance {
		return AllocationStrategy{}, fmt.Errorf("%w: got %.4f", ErrAllocationSum, total)
	}
	return AllocationStrategy{
		ReservePct: reservePct,
		GrowthPct:  growthPct,
		RiskPct:    riskPct,
	}, nil
}

// Amounts converts the percentage split into absolute monetary values for
// a given total amount of capital.
func (a AllocationStrategy) Amounts(total float64) (reserve, growth, risk float64) {
	reserve = total * (a.ReservePct / 100)
	growth = total * (a.GrowthPct / 100)
	risk = total * (a.RiskPct / 100)
	return reserve, growth, risk
}
