package analytics

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Model линейная модель y = Intercept + Σ Coefficients[j]*x[j]
type Model struct {
	Intercept    float64
	Coefficients []float64
	// Rank численный ранг центрированной матрицы признаков
	Rank int
}

// FitOLS обучает МНК с intercept.
//
// Признаки и цель центрируются, затем решение с минимальной нормой находится
// через SVD. Ранг отсекается по eps*max(n, p) от наибольшего сингулярного
// числа, поэтому постоянные или коллинеарные столбцы не приводят к ошибке.
func FitOLS(x [][]float64, y []float64) (*Model, error) {
	n := len(x)
	if n == 0 {
		return nil, &ComputationError{Op: "fit", Err: ErrNoData}
	}
	if len(y) != n {
		return nil, &ComputationError{Op: "fit", Err: fmt.Errorf("%d rows but %d targets", n, len(y))}
	}
	p := len(x[0])
	if p == 0 {
		return nil, &ComputationError{Op: "fit", Err: errors.New("no predictors")}
	}

	xMean := make([]float64, p)
	yMean := 0.0
	for i, row := range x {
		if len(row) != p {
			return nil, &ComputationError{Op: "fit", Err: fmt.Errorf("row %d has %d predictors, want %d", i, len(row), p)}
		}
		for j, v := range row {
			if !isFinite(v) {
				return nil, &ComputationError{Op: "fit", Err: fmt.Errorf("non-finite predictor at row %d", i)}
			}
			xMean[j] += v
		}
		if !isFinite(y[i]) {
			return nil, &ComputationError{Op: "fit", Err: fmt.Errorf("non-finite target at row %d", i)}
		}
		yMean += y[i]
	}
	for j := range xMean {
		xMean[j] /= float64(n)
	}
	yMean /= float64(n)

	xc := mat.NewDense(n, p, nil)
	yc := mat.NewVecDense(n, nil)
	for i, row := range x {
		for j, v := range row {
			xc.Set(i, j, v-xMean[j])
		}
		yc.SetVec(i, y[i]-yMean)
	}

	var svd mat.SVD
	if ok := svd.Factorize(xc, mat.SVDThin); !ok {
		return nil, &ComputationError{Op: "fit", Err: errors.New("SVD factorization did not converge")}
	}

	rcond := math.Nextafter(1, 2) - 1
	rcond *= float64(max(n, p))
	rank := svd.Rank(rcond)

	coef := make([]float64, p)
	if rank > 0 {
		var beta mat.VecDense
		svd.SolveVecTo(&beta, yc, rank)
		for j := range coef {
			coef[j] = beta.AtVec(j)
		}
	}

	intercept := yMean
	for j, c := range coef {
		if !isFinite(c) {
			return nil, &ComputationError{Op: "fit", Err: fmt.Errorf("coefficient %d is not finite", j)}
		}
		intercept -= c * xMean[j]
	}

	return &Model{
		Intercept:    intercept,
		Coefficients: coef,
		Rank:         rank,
	}, nil
}

// Predict применяет модель к одной строке признаков
func (m *Model) Predict(row []float64) (float64, error) {
	if len(row) != len(m.Coefficients) {
		return 0, &ComputationError{Op: "predict", Err: fmt.Errorf("row has %d predictors, want %d", len(row), len(m.Coefficients))}
	}

	pred := m.Intercept
	for j, v := range row {
		pred += m.Coefficients[j] * v
	}
	if !isFinite(pred) {
		return 0, &ComputationError{Op: "predict", Err: errors.New("prediction is not finite")}
	}
	return pred, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
