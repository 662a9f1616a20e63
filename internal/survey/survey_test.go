package survey

import (
	"strings"
	"testing"

	appErrors "github.com/fatali-fataliyev/lesson_board/customErrors"
	"github.com/fatali-fataliyev/lesson_board/internal/dataset"
	"github.com/stretchr/testify/require"
)

func sample() []Response {
	return []Response{
		{Age: 20, Gender: "Male", Education: "Bachelor", Satisfaction: 4, Recommend: "Yes", Feedback: "ab"},
		{Age: 30, Gender: "Female", Education: "Master", Satisfaction: 2, Recommend: "No", Feedback: "cde"},
		{Age: 40, Gender: "Female", Education: "Bachelor", Satisfaction: 5, Recommend: "Yes", Feedback: "f"},
		{Age: 50, Gender: "Other", Education: "PhD", Satisfaction: 3, Recommend: "Maybe", Feedback: "gh"},
	}
}

func TestGenerate(t *testing.T) {
	a := Generate(SEED, RESPONSES)
	require.Len(t, a, RESPONSES)
	require.Equal(t, a, Generate(SEED, RESPONSES))

	for i, r := range a {
		require.GreaterOrEqual(t, r.Age, 18)
		require.Less(t, r.Age, 65)
		require.GreaterOrEqual(t, r.Satisfaction, 1)
		require.LessOrEqual(t, r.Satisfaction, 5)
		require.Contains(t, Genders, r.Gender)
		require.Contains(t, Educations, r.Education)
		require.Contains(t, Recommends, r.Recommend)
		require.True(t, strings.HasPrefix(r.Feedback, "Response "), "row %d", i)
	}
}

func TestFromTableRoundTrip(t *testing.T) {
	in := sample()
	out, err := FromTable(Table(in))
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestFromTableRejects(t *testing.T) {
	missing := dataset.New("age", "gender")
	_, err := FromTable(missing)
	require.Error(t, err)
	require.Equal(t, appErrors.ErrInvalidInput, appErrors.CodeOf(err))

	bad := Table(sample())
	bad.Rows[1][0] = "thirty"
	_, err = FromTable(bad)
	require.Error(t, err)
	require.Equal(t, appErrors.ErrInvalidInput, appErrors.CodeOf(err))
}

func TestFilter(t *testing.T) {
	data := sample()

	all := DefaultFilter(data)
	require.Equal(t, 20, all.AgeMin)
	require.Equal(t, 50, all.AgeMax)
	require.Equal(t, []string{"Male", "Female", "Other"}, all.Genders)
	require.Equal(t, data, all.Apply(data))

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{name: "age window", filter: Filter{AgeMin: 25, AgeMax: 45, Genders: Genders, Education: Educations}, want: 2},
		{name: "gender", filter: Filter{AgeMin: 0, AgeMax: 100, Genders: []string{"Female"}, Education: Educations}, want: 2},
		{name: "gender and education", filter: Filter{AgeMin: 0, AgeMax: 100, Genders: []string{"Female"}, Education: []string{"Master"}}, want: 1},
		{name: "nothing selected", filter: Filter{AgeMin: 0, AgeMax: 100}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Len(t, tt.filter.Apply(data), tt.want)
		})
	}

	require.Error(t, Filter{AgeMin: 50, AgeMax: 20}.Validate())
	require.NoError(t, all.Validate())
}

func TestSummarize(t *testing.T) {
	s := Summarize(sample())
	require.Equal(t, 4, s.Responses)
	require.InDelta(t, 35.0, s.AverageAge, 1e-9)
	require.InDelta(t, 3.5, s.AverageRating, 1e-9)
	require.InDelta(t, 50.0, s.RecommendRate, 1e-9)
	require.Equal(t, len("ab cde f gh"), s.FeedbackChars)

	require.Equal(t, Summary{}, Summarize(nil))

	report := ReportTable(s)
	require.Equal(t, []string{"Average Satisfaction", "3.5/5"}, report.Rows[2])
	require.Equal(t, []string{"Recommendation Rate", "50.0%"}, report.Rows[3])
}

func TestDistributions(t *testing.T) {
	data := sample()

	require.Equal(t, []Count{{"Female", 2}, {"Male", 1}, {"Other", 1}}, GenderCounts(data))

	ratings, counts := SatisfactionCounts(data)
	require.Equal(t, []string{"2", "3", "4", "5"}, ratings)
	require.Equal(t, []float64{1, 1, 1, 1}, counts)

	genders, means := MeanByGender(data)
	require.Equal(t, []string{"Female", "Male", "Other"}, genders)
	require.Equal(t, []float64{3.5, 4, 3}, means)

	ct := EducationByGender(data)
	require.Equal(t, []string{"Bachelor", "Master", "PhD"}, ct.Rows)
	require.Equal(t, []string{"Female", "Male", "Other"}, ct.Columns)
	require.Equal(t, [][]float64{{1, 1, 0}, {1, 0, 0}, {0, 0, 1}}, ct.Cells)

	heat := SatisfactionHeatmap(data)
	require.Equal(t, [][]float64{{5, 4, 0}, {2, 0, 0}, {0, 0, 3}}, heat.Cells)

	dates, values := Trend(data)
	require.Equal(t, "2023-01-01", dates[0])
	require.Equal(t, "2023-01-04", dates[3])
	require.Equal(t, []float64{4, 2, 5, 3}, values)

	require.Equal(t, []string{"f", "gh"}, RecentFeedback(data, 2))
	require.Len(t, RecentFeedback(data, FEEDBACK_TAIL), 4)
}
