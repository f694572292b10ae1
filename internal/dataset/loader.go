// Package dataset читает месячную статистику из CSV с разделителем ';'.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"sales-forecast/internal/models"
)

// Названия столбцов, которые пишет выгрузка статистики
const (
	ColumnMonth    = "Mois"
	ColumnAlerts   = "Nombre d'alertes"
	ColumnFailures = "Nombre de pannes"
	ColumnSales    = "Nombre de ventes"
)

// ErrLoad файл не удалось прочитать или разобрать
var ErrLoad = errors.New("failed to load dataset")

// Load читает файл целиком и возвращает записи в порядке файла
func Load(path string) ([]models.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Read разбирает CSV из r
func Read(r io.Reader) ([]models.Record, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file, header row expected", ErrLoad)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	cols, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	var records []models.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoad, err)
		}
		line, _ := reader.FieldPos(0)

		rec, err := cols.parse(row)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrLoad, line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

type columns struct {
	month, alerts, failures, sales int
	width                          int
}

func locateColumns(header []string) (columns, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var cols columns
	targets := []struct {
		name string
		dst  *int
	}{
		{ColumnMonth, &cols.month},
		{ColumnAlerts, &cols.alerts},
		{ColumnFailures, &cols.failures},
		{ColumnSales, &cols.sales},
	}
	for _, t := range targets {
		i, ok := index[t.name]
		if !ok {
			return columns{}, fmt.Errorf("%w: missing column %q", ErrLoad, t.name)
		}
		*t.dst = i
		cols.width = max(cols.width, i+1)
	}
	return cols, nil
}

func (c columns) parse(row []string) (models.Record, error) {
	if len(row) < c.width {
		return models.Record{}, fmt.Errorf("expected at least %d fields, got %d", c.width, len(row))
	}

	alerts, err := parseNumber(ColumnAlerts, row[c.alerts])
	if err != nil {
		return models.Record{}, err
	}
	failures, err := parseNumber(ColumnFailures, row[c.failures])
	if err != nil {
		return models.Record{}, err
	}
	sales, err := parseNumber(ColumnSales, row[c.sales])
	if err != nil {
		return models.Record{}, err
	}

	return models.Record{
		Label:    row[c.month],
		Alerts:   alerts,
		Failures: failures,
		Sales:    sales,
	}, nil
}

func parseNumber(column, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("column %q: %q is not a number", column, raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("column %q: %q is not finite", column, raw)
	}
	return v, nil
}
