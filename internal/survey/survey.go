package survey

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sort"
	"strconv"
	"time"

	appErrors "github.com/fatali-fataliyev/lesson_board/customErrors"
	"github.com/fatali-fataliyev/lesson_board/internal/dataset"
)

const (
	SEED          = 42
	RESPONSES     = 200
	FEEDBACK_TAIL = 10
)

var (
	Genders    = []string{"Male", "Female", "Other"}
	Educations = []string{"High School", "Bachelor", "Master", "PhD"}
	Recommends = []string{"Yes", "No", "Maybe"}
	Comments   = []string{
		"Great experience!", "Could be better.", "Excellent service!",
		"Needs improvement.", "Very satisfied.", "Disappointed.",
	}
	TrendStart = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	columns = []string{"age", "gender", "education", "satisfaction", "recommend", "feedback"}
)

type Response struct {
	Age          int    `json:"age"`
	Gender       string `json:"gender"`
	Education    string `json:"education"`
	Satisfaction int    `json:"satisfaction"`
	Recommend    string `json:"recommend"`
	Feedback     string `json:"feedback"`
}

type Filter struct {
	AgeMin    int      `json:"age_min"`
	AgeMax    int      `json:"age_max"`
	Genders   []string `json:"genders"`
	Education []string `json:"education"`
}

type Summary struct {
	Responses       int
	AverageAge      float64
	AverageRating   float64
	RecommendRate   float64 // percent answering Yes
	FeedbackChars   int
	AverageFeedback float64
}

type Count struct {
	Name  string
	Count int
}

// Generate draws n responses. The same seed always gives the same data.
func Generate(seed uint64, n int) []Response {
	r := rand.New(rand.NewPCG(seed, seed))
	out := make([]Response, n)
	for i := range out {
		out[i] = Response{
			Age:          18 + r.IntN(47),
			Gender:       Genders[r.IntN(len(Genders))],
			Education:    Educations[r.IntN(len(Educations))],
			Satisfaction: 1 + r.IntN(5),
			Recommend:    Recommends[r.IntN(len(Recommends))],
			Feedback:     fmt.Sprintf("Response %d: %s", i, Comments[r.IntN(len(Comments))]),
		}
	}
	return out
}

// FromTable reads responses from an uploaded table carrying the same columns
// as Table produces.
func FromTable(t *dataset.Table) ([]Response, error) {
	idx := make(map[string]int, len(columns))
	for _, c := range columns {
		i, err := t.ColumnIndex(c)
		if err != nil {
			return nil, appErrors.InvalidInput("survey data needs the columns %v: missing %q", columns, c)
		}
		idx[c] = i
	}

	out := make([]Response, 0, t.Len())
	for n, row := range t.Rows {
		age, err := strconv.Atoi(row[idx["age"]])
		if err != nil {
			return nil, appErrors.InvalidInput("row %d: age %q is not a whole number", n+1, row[idx["age"]])
		}
		rating, err := strconv.Atoi(row[idx["satisfaction"]])
		if err != nil {
			return nil, appErrors.InvalidInput("row %d: satisfaction %q is not a whole number", n+1, row[idx["satisfaction"]])
		}
		out = append(out, Response{
			Age:          age,
			Gender:       row[idx["gender"]],
			Education:    row[idx["education"]],
			Satisfaction: rating,
			Recommend:    row[idx["recommend"]],
			Feedback:     row[idx["feedback"]],
		})
	}
	return out, nil
}

// DefaultFilter spans the whole age range and every gender and education
// level present in responses.
func DefaultFilter(responses []Response) Filter {
	f := Filter{}
	for i, r := range responses {
		if i == 0 || r.Age < f.AgeMin {
			f.AgeMin = r.Age
		}
		if i == 0 || r.Age > f.AgeMax {
			f.AgeMax = r.Age
		}
	}
	f.Genders = unique(responses, func(r Response) string { return r.Gender })
	f.Education = unique(responses, func(r Response) string { return r.Education })
	return f
}

func (f Filter) Validate() error {
	if f.AgeMin > f.AgeMax {
		return appErrors.InvalidInput("age range is empty: %d > %d", f.AgeMin, f.AgeMax)
	}
	return nil
}

// Apply keeps responses with age in [AgeMin, AgeMax] whose gender and
// education are both selected. An empty selection matches nothing.
func (f Filter) Apply(responses []Response) []Response {
	var out []Response
	for _, r := range responses {
		if r.Age < f.AgeMin || r.Age > f.AgeMax {
			continue
		}
		if !slices.Contains(f.Genders, r.Gender) || !slices.Contains(f.Education, r.Education) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func Summarize(responses []Response) Summary {
	s := Summary{Responses: len(responses)}
	if len(responses) == 0 {
		return s
	}
	var ages, ratings, yes int
	for _, r := range responses {
		ages += r.Age
		ratings += r.Satisfaction
		if r.Recommend == "Yes" {
			yes++
		}
		s.FeedbackChars += len(r.Feedback)
	}
	// joined with single spaces
	s.FeedbackChars += len(responses) - 1

	n := float64(len(responses))
	s.AverageAge = float64(ages) / n
	s.AverageRating = float64(ratings) / n
	s.RecommendRate = float64(yes) / n * 100
	s.AverageFeedback = float64(s.FeedbackChars) / n
	return s
}

func Ages(responses []Response) []float64 {
	out := make([]float64, len(responses))
	for i, r := range responses {
		out[i] = float64(r.Age)
	}
	return out
}

// GenderCounts is ordered by count, largest first.
func GenderCounts(responses []Response) []Count {
	counts := map[string]int{}
	for _, r := range responses {
		counts[r.Gender]++
	}
	out := make([]Count, 0, len(counts))
	for name, n := range counts {
		out = append(out, Count{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// SatisfactionCounts returns how many responses gave each rating, by rating.
func SatisfactionCounts(responses []Response) (ratings []string, counts []float64) {
	byRating := map[int]int{}
	for _, r := range responses {
		byRating[r.Satisfaction]++
	}
	keys := make([]int, 0, len(byRating))
	for k := range byRating {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		ratings = append(ratings, strconv.Itoa(k))
		counts = append(counts, float64(byRating[k]))
	}
	return ratings, counts
}

// MeanByGender returns mean satisfaction per gender, genders sorted.
func MeanByGender(responses []Response) (genders []string, means []float64) {
	sums := map[string][2]int{}
	for _, r := range responses {
		s := sums[r.Gender]
		sums[r.Gender] = [2]int{s[0] + r.Satisfaction, s[1] + 1}
	}
	for g := range sums {
		genders = append(genders, g)
	}
	sort.Strings(genders)
	for _, g := range genders {
		means = append(means, float64(sums[g][0])/float64(sums[g][1]))
	}
	return genders, means
}

// Crosstab is an education × gender grid; rows and columns are sorted and only
// hold values seen in the data.
type Crosstab struct {
	Rows    []string
	Columns []string
	Cells   [][]float64
}

// EducationByGender counts responses per cell.
func EducationByGender(responses []Response) Crosstab {
	return crosstab(responses, func(cell []Response) float64 { return float64(len(cell)) })
}

// SatisfactionHeatmap holds mean satisfaction per cell, 0 for empty cells.
func SatisfactionHeatmap(responses []Response) Crosstab {
	return crosstab(responses, func(cell []Response) float64 {
		if len(cell) == 0 {
			return 0
		}
		total := 0
		for _, r := range cell {
			total += r.Satisfaction
		}
		return float64(total) / float64(len(cell))
	})
}

func crosstab(responses []Response, reduce func([]Response) float64) Crosstab {
	ct := Crosstab{
		Rows:    unique(responses, func(r Response) string { return r.Education }),
		Columns: unique(responses, func(r Response) string { return r.Gender }),
	}
	sort.Strings(ct.Rows)
	sort.Strings(ct.Columns)

	groups := map[[2]string][]Response{}
	for _, r := range responses {
		k := [2]string{r.Education, r.Gender}
		groups[k] = append(groups[k], r)
	}
	ct.Cells = make([][]float64, len(ct.Rows))
	for i, row := range ct.Rows {
		ct.Cells[i] = make([]float64, len(ct.Columns))
		for j, col := range ct.Columns {
			ct.Cells[i][j] = reduce(groups[[2]string{row, col}])
		}
	}
	return ct
}

// Trend gives each response a consecutive day starting at TrendStart.
func Trend(responses []Response) (dates []string, ratings []float64) {
	for i, r := range responses {
		dates = append(dates, TrendStart.AddDate(0, 0, i).Format("2006-01-02"))
		ratings = append(ratings, float64(r.Satisfaction))
	}
	return dates, ratings
}

func RecentFeedback(responses []Response, n int) []string {
	start := max(len(responses)-n, 0)
	out := make([]string, 0, len(responses)-start)
	for _, r := range responses[start:] {
		out = append(out, r.Feedback)
	}
	return out
}

func Table(responses []Response) *dataset.Table {
	t := dataset.New(columns...)
	for _, r := range responses {
		t.Append(strconv.Itoa(r.Age), r.Gender, r.Education, strconv.Itoa(r.Satisfaction), r.Recommend, r.Feedback)
	}
	return t
}

func ReportTable(s Summary) *dataset.Table {
	t := dataset.New("Metric", "Value")
	t.Append("Total Responses", strconv.Itoa(s.Responses))
	t.Append("Average Age", fmt.Sprintf("%.1f", s.AverageAge))
	t.Append("Average Satisfaction", fmt.Sprintf("%.1f/5", s.AverageRating))
	t.Append("Recommendation Rate", fmt.Sprintf("%.1f%%", s.RecommendRate))
	return t
}

func unique(responses []Response, key func(Response) string) []string {
	var out []string
	for _, r := range responses {
		if k := key(r); !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	return out
}
