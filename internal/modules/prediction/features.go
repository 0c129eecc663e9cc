// Package prediction approximates the advisor + Monte Carlo path with
// regression models trained on synthetic evaluation outcomes.
package prediction

import (
	"github.com/pedrocvaranda/modelo-alocacao-caixa/internal/domain"
)

// FeatureCount is the width of the model's feature vector: the seven raw
// parameters plus two derived ratios.
const FeatureCount = 9

// Features derives the model's feature vector from a parameter set.
// The last two features divide by total expenses; zero-expense parameter
// sets are outside the supported input domain and are not guarded here.
func Features(p domain.ParameterSet) []float64 {
	totalExpenses := p.TotalExpenses()
	return []float64{
		p.CashOnHand,
		p.ExpectedMonthlyCash,
		p.FixedExpenses,
		p.VariableExpenses,
		p.CashVolatility,
		p.RiskTolerance,
		float64(p.ProtectedMonths),
		p.ExpectedMonthlyCash / totalExpenses, // slack ratio
		p.CashOnHand / totalExpenses,          // months of expenses covered by cash
	}
}
