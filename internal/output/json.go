package output

import (
	"encoding/json"
	"io"

	"sales-forecast/internal/models"
)

// WriteForecast пишет прогноз JSON-массивом; пустой прогноз -> []
func WriteForecast(w io.Writer, predictions []models.Prediction) error {
	if predictions == nil {
		predictions = []models.Prediction{}
	}
	return newEncoder(w).Encode(predictions)
}

// WriteError пишет объект {"error": "..."}
func WriteError(w io.Writer, err error) error {
	return newEncoder(w).Encode(models.ErrorResponse{Error: err.Error()})
}

func newEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc
}
