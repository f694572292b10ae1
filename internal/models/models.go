package models

import "time"

// Record одна строка исторической статистики за месяц
type Record struct {
	Label    string  `json:"mois"`
	Alerts   float64 `json:"nombre_alertes"`
	Failures float64 `json:"nombre_pannes"`
	Sales    float64 `json:"nombre_ventes"`
}

// Prediction прогноз продаж на один месяц
type Prediction struct {
	Month string `json:"mois"`
	Sales int    `json:"ventes_prevues"`
}

// ErrorResponse ответ при ошибке
type ErrorResponse struct {
	Error string `json:"error"`
}

// PublishedForecast прогноз, который публикуется во внешнее хранилище
type PublishedForecast struct {
	RunID       string       `json:"run_id"`
	GeneratedAt time.Time    `json:"generated_at"`
	Source      string       `json:"source"`
	Predictions []Prediction `json:"predictions"`
}
