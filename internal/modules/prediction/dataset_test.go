package prediction

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetCSVRoundTrip(t *testing.T) {
	ds := Dataset{
		{
			Cash: 100000, MonthlyCash: 15000, FixedExpenses: 8000, VariableExpenses: 3000,
			Volatility: 0.15, RiskTolerance: 0.3, ProtectedMonths: 6,
			SlackRatio: 15000.0 / 11000.0, ReserveMonths: 100000.0 / 11000.0,
			ReservePct: 16.2, GrowthPct: 76.26, RiskPct: 7.54,
			Valid: 1, SurvivalProb: 1,
		},
		{
			Cash: 20000, MonthlyCash: 5000, FixedExpenses: 9000, VariableExpenses: 2000,
			Volatility: 0.4, RiskTolerance: 0.9, ProtectedMonths: 11,
			SlackRatio: 5000.0 / 11000.0, ReserveMonths: 20000.0 / 11000.0,
			ReservePct: 100, GrowthPct: 0, RiskPct: 0,
			Valid: 0, SurvivalProb: 0,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, ds.WriteCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3, "header plus one line per sample")
	assert.Equal(t, strings.Join(csvHeader, ","), lines[0])

	parsed, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, ds, parsed)
}

func TestReadCSVRejectsBadHeader(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,b,c\n1,2,3\n"))
	assert.Error(t, err)

	wrongName := strings.Replace(strings.Join(csvHeader, ","), "cash", "dinheiro", 1)
	_, err = ReadCSV(strings.NewReader(wrongName + "\n"))
	assert.Error(t, err)
}
