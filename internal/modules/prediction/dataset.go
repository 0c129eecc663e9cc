package prediction

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Sample is one synthetic training example: the nine derived features and
// the five targets recorded from the advisor + single-run evaluation.
type Sample struct {
	Cash             float64
	MonthlyCash      float64
	FixedExpenses    float64
	VariableExpenses float64
	Volatility       float64
	RiskTolerance    float64
	ProtectedMonths  float64
	SlackRatio       float64
	ReserveMonths    float64

	ReservePct   float64
	GrowthPct    float64
	RiskPct      float64
	Valid        float64 // 1.0 if the evaluation passed the survival gate
	SurvivalProb float64 // bad-scenario survival probability
}

// features returns the sample's feature columns in training order.
func (s Sample) features() []float64 {
	return []float64{
		s.Cash, s.MonthlyCash, s.FixedExpenses, s.VariableExpenses,
		s.Volatility, s.RiskTolerance, s.ProtectedMonths,
		s.SlackRatio, s.ReserveMonths,
	}
}

// Dataset is an in-memory training dataset, interchangeable as CSV.
type Dataset []Sample

// csvHeader is the fixed 14-column schema of the interchange file.
var csvHeader = []string{
	"cash", "monthly_cash", "fixed_expenses", "variable_expenses",
	"volatility", "risk_tolerance", "protected_months", "slack_ratio", "reserve_months",
	"reserve_pct", "growth_pct", "risk_pct", "valid", "survival_prob",
}

// WriteCSV writes the dataset with its header row.
func (d Dataset) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(csvHeader))
	for i, s := range d {
		values := append(s.features(),
			s.ReservePct, s.GrowthPct, s.RiskPct, s.Valid, s.SurvivalProb)
		for j, v := range values {
			record[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a dataset written by WriteCSV, validating the header.
func ReadCSV(r io.Reader) (Dataset, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(csvHeader) {
		return nil, fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(header))
	}
	for i, name := range csvHeader {
		if header[i] != name {
			return nil, fmt.Errorf("column %d: expected %q, got %q", i, name, header[i])
		}
	}

	var ds Dataset
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		values := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %q: %w", line, csvHeader[j], err)
			}
			values[j] = v
		}
		ds = append(ds, Sample{
			Cash:             values[0],
			MonthlyCash:      values[1],
			FixedExpenses:    values[2],
			VariableExpenses: values[3],
			Volatility:       values[4],
			RiskTolerance:    values[5],
			ProtectedMonths:  values[6],
			SlackRatio:       values[7],
			ReserveMonths:    values[8],
			ReservePct:       values[9],
			GrowthPct:        values[10],
			RiskPct:          values[11],
			Valid:            values[12],
			SurvivalProb:     values[13],
		})
	}
	return ds, nil
}
