package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Названия коэффициентов модели для метки term
var coefficientTerms = []string{"month_index", "alerts", "failures"}

// Metrics метрики одного запуска прогноза
type Metrics struct {
	registry *prometheus.Registry

	// RunsTotal запуски по статусу
	RunsTotal *prometheus.CounterVec

	// RunDuration продолжительность запуска
	RunDuration prometheus.Histogram

	// RowsLoaded строки истории
	RowsLoaded prometheus.Gauge

	// MonthsPredicted спрогнозированные месяцы
	MonthsPredicted prometheus.Gauge

	// ModelCoefficient коэффициенты модели
	ModelCoefficient *prometheus.GaugeVec

	// PublishTotal публикации прогноза в Redis
	PublishTotal *prometheus.CounterVec
}

// New создает метрики на собственном registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forecast_runs_total",
				Help: "Total number of forecast runs",
			},
			[]string{"status"},
		),
		RunDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "forecast_run_duration_seconds",
				Help:    "Forecast run duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
		),
		RowsLoaded: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "forecast_rows_loaded",
				Help: "Number of historical rows used to fit the model",
			},
		),
		MonthsPredicted: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "forecast_months_predicted",
				Help: "Number of future months predicted",
			},
		),
		ModelCoefficient: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "forecast_model_coefficient",
				Help: "Fitted regression coefficients",
			},
			[]string{"term"},
		),
		PublishTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forecast_publish_total",
				Help: "Total number of forecast publications",
			},
			[]string{"status"},
		),
	}
}

// ObserveModel записывает intercept и коэффициенты
func (m *Metrics) ObserveModel(intercept float64, coefficients []float64) {
	m.ModelCoefficient.WithLabelValues("intercept").Set(intercept)
	for i, c := range coefficients {
		if i < len(coefficientTerms) {
			m.ModelCoefficient.WithLabelValues(coefficientTerms[i]).Set(c)
		}
	}
}

// Registry возвращает registry для чтения метрик
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile сохраняет метрики в формате textfile collector
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
