package simulation

import (
	"github.com/pedrocvaranda/modelo-alocacao-caixa/internal/domain"
)

// multipliers is the fixed policy profile applied to monthly draws under a
// given scenario.
type multipliers struct {
	cash    float64 // applied to expected monthly cash
	expense float64 // applied to fixed and variable expenses
	ret     float64 // applied to all tier returns
}

// multipliersFor resolves the scenario tag to its multiplier profile.
// The good and bad cash multipliers scale with the firm's cash volatility:
// a more volatile operation swings further in both directions.
func multipliersFor(scenario domain.Scenario, cashVolatility float64) multipliers {
	switch scenario {
	case domain.ScenarioGood:
		return multipliers{
			cash:    1 + cashVolatility,
			expense: 0.9,
			ret:     1.2,
		}
	case domain.ScenarioBad:
		return multipliers{
			cash:    1 - 2*cashVolatility,
			expense: 1.2,
			ret:     0.5,
		}
	default:
		return multipliers{cash: 1.0, expense: 1.0, ret: 1.0}
	}
}
