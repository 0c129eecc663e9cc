// Package domain provides core domain models and types.
package domain

import "fmt"

// Default monthly return and volatility assumptions for the three
// investment tiers. These are simplified heuristics, not market-calibrated.
const (
	DefaultSafeReturn       = 0.009 // ~CDI-like monthly yield
	DefaultMediumRiskReturn = 0.01  // ~broad index monthly yield
	DefaultHighRiskReturn   = 0.05  // projects / speculative bets

	DefaultSafeVolatility       = 0.001
	DefaultMediumRiskVolatility = 0.05
	DefaultHighRiskVolatility   = 0.15
)

// ParameterSet describes a firm's financial state and risk profile.
// It is created once per analysis request and never mutated.
type ParameterSet struct {
	CashOnHand          float64 `json:"cash_on_hand"`          // Initial capital available
	ExpectedMonthlyCash float64 `json:"expected_monthly_cash"` // Expected monthly revenue
	FixedExpenses       float64 `json:"fixed_expenses"`        // Fixed monthly expenses
	VariableExpenses    float64 `json:"variable_expenses"`     // Variable monthly expenses (mean)
	CashVolatility      float64 `json:"cash_volatility"`       // Std deviation fraction of monthly cash (0-1)
	RiskTolerance       float64 `json:"risk_tolerance"`        // 0-1, where 1 = maximum risk appetite
	ProtectedMonths     int     `json:"protected_months"`      // Months that must stay covered

	// Investment opportunity assumptions (expected monthly return per tier)
	SafeReturn       float64 `json:"safe_return"`
	MediumRiskReturn float64 `json:"medium_risk_return"`
	HighRiskReturn   float64 `json:"high_risk_return"`

	// Return volatilities per tier
	SafeVolatility       float64 `json:"safe_volatility"`
	MediumRiskVolatility float64 `json:"medium_risk_volatility"`
	HighRiskVolatility   float64 `json:"high_risk_volatility"`
}

// NewParameterSet builds a ParameterSet from the seven required fields,
// filling the six investment-opportunity fields with documented defaults.
func NewParameterSet(
	cashOnHand float64,
	expectedMonthlyCash float64,
	fixedExpenses float64,
	variableExpenses float64,
	cashVolatility float64,
	riskTolerance float64,
	protectedMonths int,
) (ParameterSet, error) {
	p := ParameterSet{
		CashOnHand:           cashOnHand,
		ExpectedMonthlyCash:  expectedMonthlyCash,
		FixedExpenses:        fixedExpenses,
		VariableExpenses:     variableExpenses,
		CashVolatility:       cashVolatility,
		RiskTolerance:        riskTolerance,
		ProtectedMonths:      protectedMonths,
		SafeReturn:           DefaultSafeReturn,
		MediumRiskReturn:     DefaultMediumRiskReturn,
		HighRiskReturn:       DefaultHighRiskReturn,
		SafeVolatility:       DefaultSafeVolatility,
		MediumRiskVolatility: DefaultMediumRiskVolatility,
		HighRiskVolatility:   DefaultHighRiskVolatility,
	}
	if err := p.Validate(); err != nil {
		return ParameterSet{}, err
	}
	return p, nil
}

// Validate checks the ParameterSet invariants: all monetary and rate
// fields non-negative, protected months at least 1.
func (p ParameterSet) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"cash_on_hand", p.CashOnHand},
		{"expected_monthly_cash", p.ExpectedMonthlyCash},
		{"fixed_expenses", p.FixedExpenses},
		{"variable_expenses", p.VariableExpenses},
		{"cash_volatility", p.CashVolatility},
		{"risk_tolerance", p.RiskTolerance},
		{"safe_return", p.SafeReturn},
		{"medium_risk_return", p.MediumRiskReturn},
		{"high_risk_return", p.HighRiskReturn},
		{"safe_volatility", p.SafeVolatility},
		{"medium_risk_volatility", p.MediumRiskVolatility},
		{"high_risk_volatility", p.HighRiskVolatility},
	}
	for _, c := range checks {
		if c.value < 0 {
			return fmt.Errorf("parameter %s must be non-negative, got %v", c.name, c.value)
		}
	}
	if p.ProtectedMonths < 1 {
		return fmt.Errorf("protected_months must be at least 1, got %d", p.ProtectedMonths)
	}
	return nil
}

// TotalExpenses returns the combined fixed and variable monthly expenses.
func (p ParameterSet) TotalExpenses() float64 {
	return p.FixedExpenses + p.VariableExpenses
}

// SimulationHorizon returns the number of months a scenario is simulated
// for: the protected period plus a full year beyond it.
func (p ParameterSet) SimulationHorizon() int {
	return p.ProtectedMonths + 12
}
