package weather

import (
	"math/rand/v2"
	"testing"
	"time"

	appErrors "github.com/fatali-fataliyev/lesson_board/customErrors"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	now := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC) // a Monday
	r := rand.New(rand.NewPCG(3, 4))

	report, err := Lookup(r, "  Baku ", now)
	require.NoError(t, err)
	require.Equal(t, "Baku", report.Current.City)
	require.Len(t, report.Forecast, FORECAST_DAYS)
	require.Equal(t, "2024-03-04", report.Forecast[0].Date)
	require.Equal(t, "Monday", report.Forecast[0].Weekday)
	require.Equal(t, "Sunday", report.Forecast[6].Weekday)

	_, err = Lookup(r, "   ", now)
	require.Error(t, err)
	require.Equal(t, appErrors.ErrInvalidInput, appErrors.CodeOf(err))
}

func TestRanges(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 1))
	for i := 0; i < 200; i++ {
		c := Observe(r, DEFAULT_CITY)
		require.True(t, c.Temperature >= 10 && c.Temperature < 30)
		require.True(t, c.Humidity >= 30 && c.Humidity < 90)
		require.True(t, c.WindSpeed >= 0 && c.WindSpeed < 25)
		require.True(t, c.Pressure >= 1000 && c.Pressure < 1020)
		require.True(t, c.FeelsLike >= 8 && c.FeelsLike < 32)
		require.Contains(t, Conditions, c.Description)
	}
	for _, d := range Forecast(r, time.Now(), 50) {
		require.True(t, d.High >= 15 && d.High < 35)
		require.True(t, d.Low >= 5 && d.Low < 20)
		require.True(t, d.Humidity >= 30 && d.Humidity < 90)
	}
}

func TestCountConditions(t *testing.T) {
	days := []Day{{Condition: "Rainy"}, {Condition: "Sunny"}, {Condition: "Rainy"}, {Condition: "Cloudy"}}
	require.Equal(t, []ConditionCount{
		{Condition: "Rainy", Count: 2},
		{Condition: "Cloudy", Count: 1},
		{Condition: "Sunny", Count: 1},
	}, CountConditions(days))

	table := ForecastTable(Forecast(rand.New(rand.NewPCG(1, 1)), time.Now(), 3))
	require.Equal(t, 3, table.Len())
}
