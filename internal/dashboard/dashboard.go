package dashboard

import (
	"math/rand/v2"
	"slices"
	"time"
)

// Limit is how many points the live dashboard keeps.
const Limit = 20

var Categories = []string{"A", "B", "C"}

type Point struct {
	Timestamp time.Time `json:"timestamp"`
	Value     int       `json:"value"`
	Category  string    `json:"category"`
}

type Stats struct {
	Count   int
	Average float64
	Latest  int
}

// Append adds p and keeps only the newest limit points. The input slice is
// never modified.
func Append(points []Point, p Point, limit int) []Point {
	out := append(slices.Clone(points), p)
	if len(out) > limit {
		out = slices.Clone(out[len(out)-limit:])
	}
	return out
}

// RandomPoint draws a value in [50, 150) and a category from A, B, C.
func RandomPoint(r *rand.Rand, now time.Time) Point {
	return Point{
		Timestamp: now,
		Value:     50 + r.IntN(100),
		Category:  Categories[r.IntN(len(Categories))],
	}
}

func Summarize(points []Point) Stats {
	if len(points) == 0 {
		return Stats{}
	}
	total := 0
	for _, p := range points {
		total += p.Value
	}
	return Stats{
		Count:   len(points),
		Average: float64(total) / float64(len(points)),
		Latest:  points[len(points)-1].Value,
	}
}
