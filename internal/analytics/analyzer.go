package analytics

import (
	"fmt"
	"math"
	"time"

	"sales-forecast/internal/models"
)

// FutureRow признаки для месяца без наблюдений
type FutureRow struct {
	Date      time.Time
	TimeIndex int
	Alerts    float64
	Failures  float64
}

// Features строка признаков в порядке обучения
func (r FutureRow) Features() []float64 {
	return []float64{float64(r.TimeIndex), r.Alerts, r.Failures}
}

// Result результат прогноза
type Result struct {
	Predictions []models.Prediction
	Model       *Model
	Rows        int
	LastDate    time.Time
}

// FutureRows строит строки для оставшихся месяцев года now, строго после последнего наблюдения.
// Алерты и поломки берутся как средние по истории.
func FutureRows(ds *Dataset, now time.Time) []FutureRow {
	last := ds.Last()
	year := now.Year()

	var rows []FutureRow
	for d := firstOfMonth(now); d.Year() == year; d = d.AddDate(0, 1, 0) {
		if !d.After(last.Date) {
			continue
		}
		rows = append(rows, FutureRow{
			Date:      d,
			TimeIndex: last.TimeIndex + len(rows) + 1,
			Alerts:    ds.MeanAlerts,
			Failures:  ds.MeanFailures,
		})
	}
	return rows
}

// Forecast обучает модель на истории и прогнозирует продажи до конца года now
func Forecast(records []models.Record, now time.Time) (*Result, error) {
	ds, err := BuildFeatures(records)
	if err != nil {
		return nil, err
	}

	model, err := FitOLS(ds.Predictors(), ds.Target())
	if err != nil {
		return nil, err
	}

	future := FutureRows(ds, now)
	predictions := make([]models.Prediction, 0, len(future))
	for _, row := range future {
		pred, err := model.Predict(row.Features())
		if err != nil {
			return nil, err
		}
		sales, err := roundSales(pred)
		if err != nil {
			return nil, err
		}
		predictions = append(predictions, models.Prediction{
			Month: FormatMonth(row.Date),
			Sales: sales,
		})
	}

	return &Result{
		Predictions: predictions,
		Model:       model,
		Rows:        len(ds.Observations),
		LastDate:    ds.Last().Date,
	}, nil
}

// maxSales 2^53: дальше float64 не различает соседние целые
const maxSales = 1 << 53

// roundSales округляет прогноз до целого (половины к четному)
func roundSales(pred float64) (int, error) {
	rounded := math.RoundToEven(pred)
	if math.Abs(rounded) > maxSales {
		return 0, &ComputationError{Op: "predict", Err: fmt.Errorf("prediction %g is out of range", pred)}
	}
	return int(rounded), nil
}
