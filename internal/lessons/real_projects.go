package lessons

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	appErrors "github.com/fatali-fataliyev/lesson_board/customErrors"
	"github.com/fatali-fataliyev/lesson_board/internal/dataset"
	"github.com/fatali-fataliyev/lesson_board/internal/finance"
	"github.com/fatali-fataliyev/lesson_board/internal/recipes"
	"github.com/fatali-fataliyev/lesson_board/internal/render"
	"github.com/fatali-fataliyev/lesson_board/internal/session"
	"github.com/fatali-fataliyev/lesson_board/internal/survey"
	"github.com/fatali-fataliyev/lesson_board/internal/weather"
)

const RECENT_TRANSACTIONS = 10

type deleteRequest struct {
	ID string `json:"id"`
}

type cityRequest struct {
	City string `json:"city"`
}

func ParseProject(s string) (session.Project, error) {
	if p := session.Project(strings.ToLower(strings.TrimSpace(s))); slices.Contains(session.Projects, p) {
		return p, nil
	}
	return "", appErrors.InvalidInput("unknown project: %q", s)
}

func surveyData(env Env, w session.Workshop) []survey.Response {
	if w.Survey != nil {
		return w.Survey
	}
	data, _ := env.Cache.Survey.Get(survey.SEED, func(seed uint64) []survey.Response {
		return survey.Generate(seed, survey.RESPONSES)
	})
	return data
}

func surveyFilter(data []survey.Response, w session.Workshop) survey.Filter {
	if w.SurveyFilter != nil {
		return *w.SurveyFilter
	}
	return survey.DefaultFilter(data)
}

func renderRealProjects(env Env, w session.Workshop) (sidebar, main []render.Block, err error) {
	sidebar = []render.Block{
		render.Title("🚀 Project Selector"),
		render.JSON("Projects", session.Projects),
		render.Markdown(fmt.Sprintf("**Selected:** %s", w.Project)),
	}
	main = []render.Block{
		render.Title("🚀 Real Projects Tutorial"),
		render.Markdown("### Building Complete Applications"),
	}

	var blocks []render.Block
	switch w.Project {
	case session.ProjectFinance:
		blocks = financeBlocks(w.Transactions)
	case session.ProjectWeather:
		blocks = weatherBlocks(w)
	case session.ProjectImage:
		blocks = imageBlocks(w)
	case session.ProjectSurvey:
		blocks = surveyBlocks(env, w)
	case session.ProjectRecipes:
		blocks = recipeBlocks(w)
	default:
		return nil, nil, appErrors.InvalidInput("unknown project: %q", w.Project)
	}
	main = append(main, blocks...)
	main = append(main,
		render.Divider(),
		render.Markdown("🎉 **Congratulations!** You have finished all six lessons."),
	)
	return sidebar, main, nil
}

func financeBlocks(ts []finance.Transaction) []render.Block {
	out := []render.Block{
		render.Header("💰 Personal Finance Tracker"),
		render.JSON("Income Categories", finance.Categories(finance.Income)),
		render.JSON("Expense Categories", finance.Categories(finance.Expense)),
	}
	if len(ts) == 0 {
		return append(out, render.Info("Add some transactions to see your financial overview!"))
	}

	sum := finance.Summarize(ts)
	out = append(out,
		render.Subheader("📊 Financial Overview"),
		render.Columns(
			render.Column(render.Metric("Total Income", finance.Money(sum.Income))),
			render.Column(render.Metric("Total Expenses", finance.Money(sum.Expenses))),
			render.Column(render.Metric("Net Income", finance.Money(sum.Net))),
			render.Column(render.Metric("Transactions", strconv.Itoa(sum.Count))),
		),
	)

	monthly := map[finance.Type]*render.Series{
		finance.Income:  {Name: string(finance.Income)},
		finance.Expense: {Name: string(finance.Expense)},
	}
	for _, m := range finance.ByMonth(ts) {
		s := monthly[m.Type]
		s.X = append(s.X, m.Month)
		s.Y = append(s.Y, m.Amount.InexactFloat64())
	}

	categories := render.Series{Name: "Expenses"}
	for _, c := range finance.ByCategory(ts) {
		if c.Type == finance.Expense {
			categories.X = append(categories.X, c.Category)
			categories.Y = append(categories.Y, c.Amount.InexactFloat64())
		}
	}

	out = append(out,
		render.ChartBlock(render.Chart{Type: render.ChartBar, Title: "Monthly Income vs Expenses", XLabel: "Month", YLabel: "Amount",
			Series: []render.Series{*monthly[finance.Income], *monthly[finance.Expense]}}),
		render.ChartBlock(render.Chart{Type: render.ChartPie, Title: "Income vs Expenses", Series: []render.Series{{
			Name: "Total",
			X:    []string{string(finance.Income), string(finance.Expense)},
			Y:    []float64{sum.Income.InexactFloat64(), sum.Expenses.InexactFloat64()},
		}}}),
	)
	if len(categories.X) > 0 {
		out = append(out, render.ChartBlock(render.Chart{Type: render.ChartBar, Title: "Expenses by Category", XLabel: "Category", YLabel: "Amount",
			Series: []render.Series{categories}}))
	}
	out = append(out,
		render.Subheader("📋 Recent Transactions"),
		render.Table(finance.Table(finance.Recent(ts, RECENT_TRANSACTIONS))),
		render.DownloadLink(render.Download{
			Label:    "Download Transactions CSV",
			FileName: dataset.FormatCSV.FileName("transactions"),
			MIME:     dataset.FormatCSV.MIME(),
			Href:     exportHref(ExportFinance, "csv"),
		}),
	)
	return out
}

func weatherBlocks(w session.Workshop) []render.Block {
	out := []render.Block{
		render.Header("🌤️ Weather Dashboard"),
		render.Markdown(fmt.Sprintf("**City:** %s", w.City)),
	}
	if w.Weather == nil {
		return append(out, render.Info("Enter a city and get the weather."))
	}
	c := w.Weather.Current
	days := w.Weather.Forecast

	dates := make([]string, len(days))
	highs := make([]float64, len(days))
	lows := make([]float64, len(days))
	humidity := make([]float64, len(days))
	for i, d := range days {
		dates[i] = d.Weekday
		highs[i] = float64(d.High)
		lows[i] = float64(d.Low)
		humidity[i] = float64(d.Humidity)
	}
	conditions := render.Series{Name: "Days"}
	for _, cc := range weather.CountConditions(days) {
		conditions.X = append(conditions.X, cc.Condition)
		conditions.Y = append(conditions.Y, float64(cc.Count))
	}

	return append(out,
		render.Subheader(fmt.Sprintf("Current Weather in %s", c.City)),
		render.Columns(
			render.Column(render.MetricDelta("Temperature", fmt.Sprintf("%d°C", c.Temperature), fmt.Sprintf("Feels like %d°C", c.FeelsLike))),
			render.Column(render.Metric("Humidity", fmt.Sprintf("%d%%", c.Humidity))),
			render.Column(render.Metric("Wind Speed", fmt.Sprintf("%d km/h", c.WindSpeed))),
			render.Column(render.Metric("Pressure", fmt.Sprintf("%d hPa", c.Pressure))),
		),
		render.Info(fmt.Sprintf("**Conditions:** %s", c.Description)),
		render.Subheader("📅 7-Day Forecast"),
		render.Table(weather.ForecastTable(days)),
		render.ChartBlock(render.Chart{Type: render.ChartLine, Title: "Temperature Forecast", XLabel: "Day", YLabel: "°C", Series: []render.Series{
			{Name: "High", X: dates, Y: highs},
			{Name: "Low", X: dates, Y: lows},
		}}),
		render.ChartBlock(render.Chart{Type: render.ChartBar, Title: "Humidity Forecast", XLabel: "Day", YLabel: "%",
			Series: []render.Series{{Name: "Humidity", X: dates, Y: humidity}}}),
		render.ChartBlock(render.Chart{Type: render.ChartPie, Title: "Weather Conditions", Series: []render.Series{conditions}}),
	)
}

func imageBlocks(w session.Workshop) []render.Block {
	out := []render.Block{
		render.Header("🖼️ Image Processor"),
		render.Text("Upload a PNG or JPG image, then send it to the image endpoint with resize, rotation, brightness and contrast options."),
	}
	if w.Image == nil {
		return append(out, render.Info("Upload an image to get started!"))
	}
	return append(out,
		render.Subheader("📋 Image Information"),
		render.ImageInfo(w.Image),
		render.Columns(
			render.Column(render.Metric("Width", fmt.Sprintf("%d px", w.Image.Width))),
			render.Column(render.Metric("Height", fmt.Sprintf("%d px", w.Image.Height))),
			render.Column(render.Metric("Total Pixels", strconv.Itoa(w.Image.TotalPixels))),
		),
	)
}

func crosstabChart(title string, ct survey.Crosstab) render.Chart {
	return render.Chart{
		Type:   render.ChartHeatmap,
		Title:  title,
		XLabel: "Gender",
		YLabel: "Education",
		Series: []render.Series{{Name: "rows", X: ct.Rows}, {Name: "columns", X: ct.Columns}},
		Matrix: ct.Cells,
	}
}

func surveyBlocks(env Env, w session.Workshop) []render.Block {
	data := surveyData(env, w)
	filter := surveyFilter(data, w)
	filtered := filter.Apply(data)
	sum := survey.Summarize(filtered)

	out := []render.Block{
		render.Header("📋 Survey Data Analyzer"),
		render.JSON("Active Filters", filter),
		render.Subheader("📊 Survey Overview"),
		render.Columns(
			render.Column(render.Metric("Total Responses", strconv.Itoa(sum.Responses))),
			render.Column(render.Metric("Average Age", fmt.Sprintf("%.1f", sum.AverageAge))),
			render.Column(render.Metric("Avg Satisfaction", fmt.Sprintf("%.1f/5", sum.AverageRating))),
			render.Column(render.Metric("Recommendation Rate", fmt.Sprintf("%.1f%%", sum.RecommendRate))),
		),
	}
	if len(filtered) == 0 {
		return append(out, render.Warning("No responses match the current filters."))
	}

	genders := render.Series{Name: "Responses"}
	for _, c := range survey.GenderCounts(filtered) {
		genders.X = append(genders.X, c.Name)
		genders.Y = append(genders.Y, float64(c.Count))
	}
	ratings, counts := survey.SatisfactionCounts(filtered)
	meanGenders, means := survey.MeanByGender(filtered)
	trendDates, trend := survey.Trend(filtered)

	feedback := []render.Block{render.Subheader("💬 Recent Feedback")}
	for _, f := range survey.RecentFeedback(filtered, survey.FEEDBACK_TAIL) {
		feedback = append(feedback, render.Markdown("• "+f))
	}

	out = append(out,
		render.Tabs(
			render.Tab("👥 Demographics",
				render.ChartBlock(render.Chart{Type: render.ChartHistogram, Title: "Age Distribution", XLabel: "Age",
					Series: []render.Series{{Name: "Age", Y: survey.Ages(filtered)}}}),
				render.ChartBlock(render.Chart{Type: render.ChartPie, Title: "Gender Distribution", Series: []render.Series{genders}}),
				render.ChartBlock(crosstabChart("Education Level by Gender", survey.EducationByGender(filtered))),
			),
			render.Tab("😊 Satisfaction",
				render.ChartBlock(render.Chart{Type: render.ChartBar, Title: "Satisfaction Rating Distribution", XLabel: "Rating", YLabel: "Count",
					Series: []render.Series{{Name: "Responses", X: ratings, Y: counts}}}),
				render.ChartBlock(render.Chart{Type: render.ChartBar, Title: "Average Satisfaction by Gender", XLabel: "Gender", YLabel: "Rating",
					Series: []render.Series{{Name: "Satisfaction", X: meanGenders, Y: means}}}),
				render.ChartBlock(crosstabChart("Satisfaction Heatmap: Education vs Gender", survey.SatisfactionHeatmap(filtered))),
			),
			render.Tab("📈 Trends",
				render.ChartBlock(render.Chart{Type: render.ChartLine, Title: "Satisfaction Trend Over Time", XLabel: "Date", YLabel: "Rating",
					Series: []render.Series{{Name: "Satisfaction", X: trendDates, Y: trend}}}),
			),
			render.Tab("📝 Feedback",
				append(feedback,
					render.Metric("Total Characters", strconv.Itoa(sum.FeedbackChars)),
					render.Metric("Average Length", fmt.Sprintf("%.1f", sum.AverageFeedback)),
				)...,
			),
		),
		render.Subheader("📄 Export Results"),
		render.Table(survey.ReportTable(sum)),
		render.DownloadLink(render.Download{
			Label:    "Download Analysis Report",
			FileName: dataset.FormatCSV.FileName("survey_analysis_report"),
			MIME:     dataset.FormatCSV.MIME(),
			Href:     exportHref(ExportSurvey, "csv"),
		}),
	)
	return out
}

func recipeBlocks(w session.Workshop) []render.Block {
	out := []render.Block{
		render.Header("👨‍🍳 Recipe Manager"),
		render.JSON("Cuisines", recipes.Cuisines),
		render.JSON("Difficulties", recipes.Difficulties),
	}
	if len(w.Recipes) == 0 {
		return append(out, render.Info("No recipes yet. Add one to get started!"))
	}

	found := w.RecipeFilter.Apply(w.Recipes)
	out = append(out,
		render.Subheader("🔍 Search Recipes"),
		render.JSON("Search", w.RecipeFilter),
		render.Text("Found %d recipes", len(found)),
	)
	for _, r := range found {
		out = append(out, render.Expander(fmt.Sprintf("🍽️ %s", r.Name),
			render.Columns(
				render.Column(render.Markdown(fmt.Sprintf("**Cooking Time:** %d minutes", r.CookingTime))),
				render.Column(render.Markdown(fmt.Sprintf("**Difficulty:** %s", r.Difficulty))),
				render.Column(render.Markdown(fmt.Sprintf("**Cuisine:** %s", r.Cuisine))),
			),
			render.JSON("Ingredients", r.Ingredients),
			render.Markdown("**Instructions:**\n"+r.Instructions),
			render.JSON("Tags", r.Tags),
			render.Text("ID: %s", r.ID),
		))
	}

	stats := recipes.Summarize(w.Recipes)
	cuisines := render.Series{Name: "Recipes"}
	for _, c := range recipes.CuisineCounts(w.Recipes) {
		cuisines.X = append(cuisines.X, c.Name)
		cuisines.Y = append(cuisines.Y, float64(c.Count))
	}
	times := make([]float64, len(w.Recipes))
	for i, r := range w.Recipes {
		times[i] = float64(r.CookingTime)
	}
	tags := render.Series{Name: "Tags"}
	for _, c := range recipes.TagCounts(w.Recipes) {
		tags.X = append(tags.X, c.Name)
		tags.Y = append(tags.Y, float64(c.Count))
	}

	out = append(out,
		render.Subheader("📊 Recipe Statistics"),
		render.Columns(
			render.Column(render.Metric("Total Recipes", strconv.Itoa(stats.Total))),
			render.Column(render.Metric("Avg Cooking Time", fmt.Sprintf("%.0f min", stats.AverageCookingTime))),
			render.Column(render.Metric("Cuisine Types", strconv.Itoa(stats.CuisineTypes))),
			render.Column(render.Metric("Most Common Difficulty", string(stats.MostCommonDifficulty))),
		),
		render.ChartBlock(render.Chart{Type: render.ChartPie, Title: "Recipes by Cuisine", Series: []render.Series{cuisines}}),
		render.ChartBlock(render.Chart{Type: render.ChartHistogram, Title: "Cooking Time Distribution", XLabel: "Minutes",
			Series: []render.Series{{Name: "Cooking Time", Y: times}}}),
		render.ChartBlock(render.Chart{Type: render.ChartBar, Title: "Popular Tags", XLabel: "Tag", YLabel: "Count", Series: []render.Series{tags}}),
		render.DownloadLink(render.Download{
			Label:    "Download Recipes CSV",
			FileName: dataset.FormatCSV.FileName("recipes"),
			MIME:     dataset.FormatCSV.MIME(),
			Href:     exportHref(ExportRecipes, "csv"),
		}),
	)
	return out
}

func handleRealProjects(env Env, w *session.Workshop, ev Event) ([]render.Block, error) {
	switch ev.Name {
	case "select_project":
		v, err := decode[string](ev)
		if err != nil {
			return nil, err
		}
		p, err := ParseProject(v)
		if err != nil {
			return nil, err
		}
		w.Project = p

	case "add_transaction":
		v, err := decode[finance.TransactionRequest](ev)
		if err != nil {
			return nil, err
		}
		tx, err := finance.NewTransaction(v, env.Now)
		if err != nil {
			return nil, err
		}
		w.Transactions = append(w.Transactions, tx)
		return []render.Block{render.Success(fmt.Sprintf("Added %s: %s", tx.Type, finance.Money(tx.Amount)))}, nil

	case "get_weather":
		v, err := decode[cityRequest](ev)
		if err != nil {
			return nil, err
		}
		report, err := weather.Lookup(env.Rand, v.City, env.Now)
		if err != nil {
			return nil, err
		}
		w.City = report.Current.City
		w.Weather = &report

	case "filter_survey":
		v, err := decode[survey.Filter](ev)
		if err != nil {
			return nil, err
		}
		if err := v.Validate(); err != nil {
			return nil, err
		}
		w.SurveyFilter = &v

	case "add_recipe":
		v, err := decode[recipes.RecipeRequest](ev)
		if err != nil {
			return nil, err
		}
		r, err := recipes.NewRecipe(v)
		if err != nil {
			return nil, err
		}
		w.Recipes = append(w.Recipes, r)
		return []render.Block{render.Success(fmt.Sprintf("Recipe '%s' added successfully!", r.Name))}, nil

	case "delete_recipe":
		v, err := decode[deleteRequest](ev)
		if err != nil {
			return nil, err
		}
		left, err := recipes.Delete(w.Recipes, v.ID)
		if err != nil {
			return nil, err
		}
		w.Recipes = left
		return []render.Block{render.Success("Recipe deleted!")}, nil

	case "search_recipes":
		v, err := decode[recipes.Filter](ev)
		if err != nil {
			return nil, err
		}
		cuisine, ok := canonicalOrAll(v.Cuisine, recipes.Cuisines)
		if !ok {
			return nil, appErrors.InvalidInput("unknown cuisine: %q", v.Cuisine)
		}
		v.Cuisine = cuisine
		if difficulty := strings.TrimSpace(v.Difficulty); difficulty == "" || strings.EqualFold(difficulty, recipes.All) {
			v.Difficulty = recipes.All
		} else {
			d, err := recipes.ParseDifficulty(difficulty)
			if err != nil {
				return nil, err
			}
			v.Difficulty = string(d)
		}
		w.RecipeFilter = v

	default:
		return nil, unknownEvent(RealProjects, ev)
	}
	return nil, nil
}

// canonicalOrAll maps v onto the spelling used in options, ignoring case and
// surrounding space. Empty and "All" select everything.
func canonicalOrAll(v string, options []string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, recipes.All) {
		return recipes.All, true
	}
	i := slices.IndexFunc(options, func(o string) bool { return strings.EqualFold(o, v) })
	if i < 0 {
		return "", false
	}
	return options[i], true
}

