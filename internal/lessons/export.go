package lessons

import (
	"strings"

	appErrors "github.com/fatali-fataliyev/lesson_board/customErrors"
	"github.com/fatali-fataliyev/lesson_board/internal/dataset"
	"github.com/fatali-fataliyev/lesson_board/internal/finance"
	"github.com/fatali-fataliyev/lesson_board/internal/recipes"
	"github.com/fatali-fataliyev/lesson_board/internal/sales"
	"github.com/fatali-fataliyev/lesson_board/internal/session"
	"github.com/fatali-fataliyev/lesson_board/internal/survey"
)

// Export names a downloadable data set.
type Export string

const (
	ExportSample    Export = "sample"
	ExportSales     Export = "sales"
	ExportFinance   Export = "finance"
	ExportRecipes   Export = "recipes"
	ExportSurvey    Export = "survey"
	ExportProcessed Export = "processed"
)

var Exports = []Export{ExportSample, ExportSales, ExportFinance, ExportRecipes, ExportSurvey, ExportProcessed}

func ParseExport(s string) (Export, error) {
	switch e := Export(strings.ToLower(strings.TrimSpace(s))); e {
	case ExportSample, ExportSales, ExportFinance, ExportRecipes, ExportSurvey, ExportProcessed:
		return e, nil
	}
	return "", appErrors.NotFound("data set %q does not exist", s)
}

// ExportTable returns the table behind name and the base of its file name.
// Data sets the session has not produced yet are not found.
func ExportTable(env Env, st session.State, name Export) (*dataset.Table, string, error) {
	switch name {
	case ExportSample:
		return SampleTable(), "sample_data", nil
	case ExportSales:
		return sales.Table(salesData(env)), "sales_data", nil
	case ExportFinance:
		if len(st.Projects.Transactions) == 0 {
			return nil, "", appErrors.NotFound("no transactions to export")
		}
		return finance.Table(st.Projects.Transactions), "transactions", nil
	case ExportRecipes:
		if len(st.Projects.Recipes) == 0 {
			return nil, "", appErrors.NotFound("no recipes to export")
		}
		return recipes.Table(st.Projects.Recipes), "recipes", nil
	case ExportSurvey:
		data := surveyData(env, st.Projects)
		filtered := surveyFilter(data, st.Projects).Apply(data)
		return survey.ReportTable(survey.Summarize(filtered)), "survey_analysis_report", nil
	case ExportProcessed:
		if st.Interactive.Processed == nil {
			return nil, "", appErrors.NotFound("no processed data to export")
		}
		return st.Interactive.Processed.Clone(), "processed_data", nil
	}
	return nil, "", appErrors.NotFound("data set %q does not exist", name)
}
