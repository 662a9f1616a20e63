package weather

import (
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"
	"time"

	appErrors "github.com/fatali-fataliyev/lesson_board/customErrors"
	"github.com/fatali-fataliyev/lesson_board/internal/dataset"
)

const (
	DEFAULT_CITY  = "London"
	FORECAST_DAYS = 7
)

var Conditions = []string{"Sunny", "Cloudy", "Rainy", "Partly Cloudy"}

// Current is a simulated observation; there is no upstream weather API.
type Current struct {
	City        string `json:"city"`
	Temperature int    `json:"temperature"`
	FeelsLike   int    `json:"feels_like"`
	Humidity    int    `json:"humidity"`
	WindSpeed   int    `json:"wind_speed"`
	Pressure    int    `json:"pressure"`
	Description string `json:"description"`
}

type Day struct {
	Date      string `json:"date"`
	Weekday   string `json:"day"`
	High      int    `json:"temp_high"`
	Low       int    `json:"temp_low"`
	Condition string `json:"condition"`
	Humidity  int    `json:"humidity"`
}

type Report struct {
	Current  Current `json:"current"`
	Forecast []Day   `json:"forecast"`
}

type ConditionCount struct {
	Condition string
	Count     int
}

func Lookup(r *rand.Rand, city string, now time.Time) (Report, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return Report{}, appErrors.InvalidInput("city name is required")
	}
	return Report{Current: Observe(r, city), Forecast: Forecast(r, now, FORECAST_DAYS)}, nil
}

func Observe(r *rand.Rand, city string) Current {
	return Current{
		City:        city,
		Temperature: 10 + r.IntN(20),
		Humidity:    30 + r.IntN(60),
		WindSpeed:   r.IntN(25),
		Pressure:    1000 + r.IntN(20),
		Description: Conditions[r.IntN(len(Conditions))],
		FeelsLike:   8 + r.IntN(24),
	}
}

// Forecast starts today and runs for days consecutive days.
func Forecast(r *rand.Rand, now time.Time, days int) []Day {
	out := make([]Day, days)
	for i := range out {
		d := now.AddDate(0, 0, i)
		out[i] = Day{
			Date:      d.Format("2006-01-02"),
			Weekday:   d.Weekday().String(),
			High:      15 + r.IntN(20),
			Low:       5 + r.IntN(15),
			Condition: Conditions[r.IntN(len(Conditions))],
			Humidity:  30 + r.IntN(60),
		}
	}
	return out
}

// CountConditions counts forecast days per condition, most frequent first.
func CountConditions(days []Day) []ConditionCount {
	counts := map[string]int{}
	for _, d := range days {
		counts[d.Condition]++
	}
	out := make([]ConditionCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, ConditionCount{Condition: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Condition < out[j].Condition
	})
	return out
}

func ForecastTable(days []Day) *dataset.Table {
	t := dataset.New("date", "day", "temp_high", "temp_low", "condition", "humidity")
	for _, d := range days {
		t.Append(d.Date, d.Weekday, strconv.Itoa(d.High), strconv.Itoa(d.Low), d.Condition, strconv.Itoa(d.Humidity))
	}
	return t
}
