package analytics

import (
	"sort"
	"time"

	"sales-forecast/internal/models"
)

// Observation историческая строка после нормализации даты
type Observation struct {
	models.Record
	Date      time.Time
	TimeIndex int
}

// Dataset обучающая выборка в хронологическом порядке
type Dataset struct {
	Observations []Observation
	MeanAlerts   float64
	MeanFailures float64
}

// BuildFeatures сортирует записи по дате и присваивает индексы 0..N-1
func BuildFeatures(records []models.Record) (*Dataset, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}

	obs := make([]Observation, len(records))
	for i, rec := range records {
		date, err := ParseMonth(rec.Label)
		if err != nil {
			return nil, err
		}
		obs[i] = Observation{Record: rec, Date: date}
	}

	sort.SliceStable(obs, func(i, j int) bool {
		return obs[i].Date.Before(obs[j].Date)
	})

	alerts := make([]float64, len(obs))
	failures := make([]float64, len(obs))
	for i := range obs {
		obs[i].TimeIndex = i
		alerts[i] = obs[i].Alerts
		failures[i] = obs[i].Failures
	}

	return &Dataset{
		Observations: obs,
		MeanAlerts:   calculateAverage(alerts),
		MeanFailures: calculateAverage(failures),
	}, nil
}

// Predictors матрица признаков: индекс времени, алерты, поломки
func (d *Dataset) Predictors() [][]float64 {
	x := make([][]float64, len(d.Observations))
	for i, o := range d.Observations {
		x[i] = []float64{float64(o.TimeIndex), o.Alerts, o.Failures}
	}
	return x
}

// Target вектор продаж
func (d *Dataset) Target() []float64 {
	y := make([]float64, len(d.Observations))
	for i, o := range d.Observations {
		y[i] = o.Sales
	}
	return y
}

// Last последнее наблюдение по времени
func (d *Dataset) Last() Observation {
	return d.Observations[len(d.Observations)-1]
}

// calculateAverage вычисляет среднее значение
func calculateAverage(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
