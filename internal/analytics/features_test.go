package analytics

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-forecast/internal/models"
)

func sampleRecords() []models.Record {
	return []models.Record{
		{Label: "Janv 2024", Alerts: 2, Failures: 1, Sales: 100},
		{Label: "Fev 2024", Alerts: 4, Failures: 0, Sales: 110},
		{Label: "Mars 2024", Alerts: 3, Failures: 2, Sales: 125},
		{Label: "Avr 2024", Alerts: 5, Failures: 1, Sales: 130},
		{Label: "Mai 2024", Alerts: 1, Failures: 3, Sales: 142},
		{Label: "Juin 2024", Alerts: 6, Failures: 2, Sales: 150},
	}
}

func TestBuildFeaturesAssignsChronologicalIndex(t *testing.T) {
	base := sampleRecords()
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 20; round++ {
		shuffled := append([]models.Record(nil), base...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		ds, err := BuildFeatures(shuffled)
		require.NoError(t, err)
		require.Len(t, ds.Observations, len(base))

		for i, o := range ds.Observations {
			assert.Equal(t, i, o.TimeIndex)
			assert.Equal(t, base[i].Label, o.Label)
			if i > 0 {
				assert.True(t, o.Date.After(ds.Observations[i-1].Date))
			}
		}
	}
}

func TestBuildFeaturesStableOnTies(t *testing.T) {
	ds, err := BuildFeatures([]models.Record{
		{Label: "Fev 2024", Sales: 3},
		{Label: "Jan 2024", Sales: 1},
		{Label: "Feb 2024", Sales: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 3, 2}, ds.Target())
}

func TestBuildFeaturesMeansAndMatrix(t *testing.T) {
	ds, err := BuildFeatures(sampleRecords())
	require.NoError(t, err)

	assert.InDelta(t, 21.0/6, ds.MeanAlerts, 1e-12)
	assert.InDelta(t, 9.0/6, ds.MeanFailures, 1e-12)

	x := ds.Predictors()
	require.Len(t, x, 6)
	assert.Equal(t, []float64{0, 2, 1}, x[0])
	assert.Equal(t, []float64{5, 6, 2}, x[5])
	assert.Equal(t, date(2024, 6), ds.Last().Date)
}

func TestBuildFeaturesErrors(t *testing.T) {
	_, err := BuildFeatures(nil)
	assert.True(t, errors.Is(err, ErrNoData))

	_, err = BuildFeatures([]models.Record{{Label: "Jan 2024"}, {Label: "2024"}})
	var fe *FormatError
	assert.True(t, errors.As(err, &fe))
}
