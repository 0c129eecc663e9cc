package prediction

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Regressor is an ordinary least-squares linear model over the
// standardized feature vector.
type Regressor struct {
	Weights   []float64 `msgpack:"weights"`
	Intercept float64   `msgpack:"intercept"`
}

// Fit solves the least-squares problem min ||Xb - y|| with an intercept
// column, via QR factorization.
func (r *Regressor) Fit(rows [][]float64, targets []float64) error {
	n := len(rows)
	if n == 0 {
		return fmt.Errorf("cannot fit regressor on empty data")
	}
	if len(targets) != n {
		return fmt.Errorf("got %d targets for %d rows", len(targets), n)
	}
	width := len(rows[0])

	design := mat.NewDense(n, width+1, nil)
	for i, row := range rows {
		if len(row) != width {
			return fmt.Errorf("row %d has width %d, expected %d", i, len(row), width)
		}
		design.Set(i, 0, 1)
		for j, v := range row {
			design.Set(i, j+1, v)
		}
	}
	y := mat.NewDense(n, 1, append([]float64(nil), targets...))

	var qr mat.QR
	qr.Factorize(design)

	var beta mat.Dense
	if err := qr.SolveTo(&beta, false, y); err != nil {
		return fmt.Errorf("least-squares solve failed: %w", err)
	}

	r.Intercept = beta.At(0, 0)
	r.Weights = make([]float64, width)
	for j := 0; j < width; j++ {
		r.Weights[j] = beta.At(j+1, 0)
	}
	return nil
}

// Predict evaluates the fitted model on one feature vector.
func (r *Regressor) Predict(features []float64) float64 {
	return r.Intercept + floats.Dot(r.Weights, features)
}
