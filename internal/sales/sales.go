package sales

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"sort"
	"strconv"
	"time"

	"github.com/fatali-fataliyev/lesson_board/internal/dataset"
)

const (
	DAYS          = 100
	STUDENT_COUNT = 20
	DATE_LAYOUT   = "2006-01-02"
)

var (
	Regions  = []string{"North", "South", "East", "West"}
	Products = []string{"A", "B", "C", "D"}
	Subjects = []string{"Math", "Science", "English", "History"}
	Start    = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
)

type Record struct {
	Date    time.Time
	Sales   int
	Profit  int
	Region  string
	Product string
}

type Student struct {
	Name   string
	Grades map[string]int
}

type Summary struct {
	Records      int
	TotalSales   int
	AverageSales float64
	TotalProfit  int
	ProfitMargin float64 // percent, 0 when there are no sales
	BestDay      int
}

type Total struct {
	Name   string
	Sales  int
	Profit int
}

func (t Total) Margin() float64 {
	if t.Sales == 0 {
		return 0
	}
	return float64(t.Profit) / float64(t.Sales) * 100
}

// Generate builds DAYS daily records starting at Start. The same seed always
// gives the same data.
func Generate(seed uint64) []Record {
	r := rand.New(rand.NewPCG(seed, seed))
	out := make([]Record, DAYS)
	for i := range out {
		out[i] = Record{
			Date:    Start.AddDate(0, 0, i),
			Sales:   100 + r.IntN(900),
			Profit:  10 + r.IntN(190),
			Region:  Regions[r.IntN(len(Regions))],
			Product: Products[r.IntN(len(Products))],
		}
	}
	return out
}

func Students(seed uint64) []Student {
	r := rand.New(rand.NewPCG(seed, seed+1))
	out := make([]Student, STUDENT_COUNT)
	for i := range out {
		grades := make(map[string]int, len(Subjects))
		for _, s := range Subjects {
			grades[s] = 60 + r.IntN(40)
		}
		out[i] = Student{Name: fmt.Sprintf("Student_%d", i+1), Grades: grades}
	}
	return out
}

// Filter keeps records in the given regions whose date lies in [from, to].
// An empty region list matches nothing.
func Filter(records []Record, regions []string, from, to time.Time) []Record {
	var out []Record
	for _, r := range records {
		if !slices.Contains(regions, r.Region) {
			continue
		}
		if r.Date.Before(from) || r.Date.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func Summarize(records []Record) Summary {
	s := Summary{Records: len(records)}
	for _, r := range records {
		s.TotalSales += r.Sales
		s.TotalProfit += r.Profit
		s.BestDay = max(s.BestDay, r.Sales)
	}
	if len(records) > 0 {
		s.AverageSales = float64(s.TotalSales) / float64(len(records))
	}
	if s.TotalSales > 0 {
		s.ProfitMargin = float64(s.TotalProfit) / float64(s.TotalSales) * 100
	}
	return s
}

// MovingAverage returns the trailing mean of every full window; the result
// has len(values)-window+1 entries, or none when values is shorter.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 0 || len(values) < window {
		return nil
	}
	out := make([]float64, 0, len(values)-window+1)
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out = append(out, sum/float64(window))
		}
	}
	return out
}

// Correlation is the Pearson coefficient of x and y; NaN when undefined.
func Correlation(x, y []float64) float64 {
	n := len(x)
	if n != len(y) || n < 2 {
		return math.NaN()
	}
	var mx, my float64
	for i := range x {
		mx += x[i]
		my += y[i]
	}
	mx /= float64(n)
	my /= float64(n)

	var cov, vx, vy float64
	for i := range x {
		dx, dy := x[i]-mx, y[i]-my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	if vx == 0 || vy == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(vx*vy)
}

func ByRegion(records []Record) []Total {
	return group(records, func(r Record) string { return r.Region })
}

func ByProduct(records []Record) []Total {
	return group(records, func(r Record) string { return r.Product })
}

// ByRegionProduct is keyed "region/product".
func ByRegionProduct(records []Record) []Total {
	return group(records, func(r Record) string { return r.Region + "/" + r.Product })
}

func group(records []Record, key func(Record) string) []Total {
	idx := map[string]int{}
	var out []Total
	for _, r := range records {
		k := key(r)
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, Total{Name: k})
		}
		out[i].Sales += r.Sales
		out[i].Profit += r.Profit
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func Column(records []Record, pick func(Record) int) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = float64(pick(r))
	}
	return out
}

func Dates(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Date.Format(DATE_LAYOUT)
	}
	return out
}

func Table(records []Record) *dataset.Table {
	t := dataset.New("Date", "Sales", "Profit", "Region", "Product")
	for _, r := range records {
		t.Append(r.Date.Format(DATE_LAYOUT), strconv.Itoa(r.Sales), strconv.Itoa(r.Profit), r.Region, r.Product)
	}
	return t
}

func StudentTable(students []Student) *dataset.Table {
	t := dataset.New(append([]string{"Student"}, Subjects...)...)
	for _, s := range students {
		row := []string{s.Name}
		for _, subject := range Subjects {
			row = append(row, strconv.Itoa(s.Grades[subject]))
		}
		t.Append(row...)
	}
	return t
}
