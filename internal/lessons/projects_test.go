package lessons

import (
	"testing"

	appErrors "github.com/fatali-fataliyev/lesson_board/customErrors"
	"github.com/fatali-fataliyev/lesson_board/internal/auth"
	"github.com/fatali-fataliyev/lesson_board/internal/dashboard"
	"github.com/fatali-fataliyev/lesson_board/internal/dataset"
	"github.com/fatali-fataliyev/lesson_board/internal/finance"
	"github.com/fatali-fataliyev/lesson_board/internal/imagefx"
	"github.com/fatali-fataliyev/lesson_board/internal/recipes"
	"github.com/fatali-fataliyev/lesson_board/internal/render"
	"github.com/fatali-fataliyev/lesson_board/internal/session"
	"github.com/fatali-fataliyev/lesson_board/internal/survey"
	"github.com/fatali-fataliyev/lesson_board/internal/upload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterAndProfile(t *testing.T) {
	env := testEnv()
	st := testState(t)

	for range 2 {
		_, err := Handle(env, &st, InteractiveFeatures, Event{Name: "increment"})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, st.Interactive.Counter)
	_, err := Handle(env, &st, InteractiveFeatures, Event{Name: "reset"})
	require.NoError(t, err)
	assert.Zero(t, st.Interactive.Counter)

	_, err = Handle(env, &st, InteractiveFeatures, event(t, "save_user_data", auth.ProfileRequest{Name: "Ada", Age: 36}))
	require.NoError(t, err)
	require.NotNil(t, st.Interactive.Profile)
	assert.Equal(t, "Ada", st.Interactive.Profile.Name)
	assert.Equal(t, testNow, st.Interactive.Profile.SavedAt)

	_, err = Handle(env, &st, InteractiveFeatures, event(t, "save_user_data", auth.ProfileRequest{Name: "Ada", Age: 121}))
	assert.Equal(t, appErrors.ErrInvalidInput, appErrors.CodeOf(err))
}

func TestRegister(t *testing.T) {
	valid := auth.Registration{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "ada@example.com",
		Password:        "engine1",
		ConfirmPassword: "engine1",
		Country:         "UK",
		Interests:       []string{"Technology"},
		AgreeTerms:      true,
	}
	tests := []struct {
		name    string
		modify  func(r *auth.Registration)
		wantMsg string
	}{
		{name: "Success", modify: func(r *auth.Registration) {}},
		{name: "Fail - mismatch wins over short password", modify: func(r *auth.Registration) {
			r.Password, r.ConfirmPassword, r.AgreeTerms = "abc", "abd", false
		}, wantMsg: "Passwords do not match!"},
		{name: "Fail - short password wins over terms", modify: func(r *auth.Registration) {
			r.Password, r.ConfirmPassword, r.AgreeTerms = "abc", "abc", false
		}, wantMsg: "Password must be at least 6 characters long!"},
		{name: "Fail - terms", modify: func(r *auth.Registration) { r.AgreeTerms = false }, wantMsg: "You must agree to the terms and conditions!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := testState(t)
			r := valid
			tt.modify(&r)
			feedback, err := Handle(testEnv(), &st, InteractiveFeatures, event(t, "register", r))
			if tt.wantMsg != "" {
				var appErr appErrors.ErrorResponse
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantMsg, appErr.Message)
				assert.Nil(t, st.Interactive.Profile)
				return
			}
			require.NoError(t, err)
			_, ok := find(feedback, render.KindBalloons)
			assert.True(t, ok)
			require.NotNil(t, st.Interactive.Profile)
			assert.Equal(t, "ada@example.com", st.Interactive.Profile.Email)
			assert.True(t, auth.ComparePasswords(st.Interactive.Profile.PasswordHashed, "engine1"))
		})
	}
}

func TestCachedCalculation(t *testing.T) {
	env := testEnv()
	st := testState(t)

	feedback, err := Handle(env, &st, InteractiveFeatures, event(t, "calculate", 10))
	require.NoError(t, err)
	assert.Equal(t, "Result: 285", feedback[0].Text)
	assert.Equal(t, "This result was calculated.", feedback[1].Text)

	feedback, err = Handle(env, &st, InteractiveFeatures, event(t, "calculate", 10))
	require.NoError(t, err)
	assert.Equal(t, "This result was cached.", feedback[1].Text)
	assert.Equal(t, 10, st.Interactive.CalcInput)

	for _, n := range []int{0, 1001} {
		_, err = Handle(env, &st, InteractiveFeatures, event(t, "calculate", n))
		assert.Equal(t, appErrors.ErrInvalidInput, appErrors.CodeOf(err))
	}
	assert.Equal(t, int64(0), sumOfSquares(1))
	assert.Equal(t, int64(332833500), sumOfSquares(1000))
}

func TestProgress(t *testing.T) {
	env := testEnv()
	st := testState(t)
	_, err := Handle(env, &st, InteractiveFeatures, event(t, "set_progress", 80))
	require.NoError(t, err)
	assert.Equal(t, 80, st.Interactive.Progress)
	_, err = Handle(env, &st, InteractiveFeatures, event(t, "set_progress", 101))
	assert.Equal(t, appErrors.ErrInvalidInput, appErrors.CodeOf(err))

	feedback, err := Handle(env, &st, InteractiveFeatures, Event{Name: "start_progress"})
	require.NoError(t, err)
	assert.Contains(t, texts(feedback), "Task completed successfully!")
}

func peopleTable() *dataset.Table {
	t := dataset.New("name", "age", "city")
	t.Append("Ann", "31", "Oslo")
	t.Append("Ben", "25", "Rome")
	t.Append("Cid", "40", "Oslo")
	t.Append("Dee", "19", "Rome")
	return t
}

func ptr[T any](v T) *T { return &v }

func TestProcess(t *testing.T) {
	tests := []struct {
		name     string
		request  processRequest
		wantRows [][]string
		wantCols []string
		wantAgg  *float64
		wantErr  bool
	}{
		{
			name:     "Success - equals filter then sort then select",
			request:  processRequest{Columns: []string{"name"}, FilterColumn: "city", FilterValue: ptr("Oslo"), SortBy: "age", Ascending: ptr(false)},
			wantCols: []string{"name"},
			wantRows: [][]string{{"Cid"}, {"Ann"}},
		},
		{
			name:     "Success - range filter with aggregate on hidden column",
			request:  processRequest{Columns: []string{"name"}, FilterColumn: "age", FilterMin: ptr(20.0), AggColumn: "age", AggFunc: "mean"},
			wantCols: []string{"name"},
			wantRows: [][]string{{"Ann"}, {"Ben"}, {"Cid"}},
			wantAgg:  ptr(32.0),
		},
		{
			name:     "Success - default ascending sort",
			request:  processRequest{SortBy: "age"},
			wantCols: []string{"name", "age", "city"},
			wantRows: [][]string{{"Dee", "19", "Rome"}, {"Ben", "25", "Rome"}, {"Ann", "31", "Oslo"}, {"Cid", "40", "Oslo"}},
		},
		{name: "Fail - unknown column", request: processRequest{Columns: []string{"salary"}}, wantErr: true},
		{name: "Fail - filter without value", request: processRequest{FilterColumn: "city"}, wantErr: true},
		{name: "Fail - range on text", request: processRequest{FilterColumn: "city", FilterMin: ptr(1.0)}, wantErr: true},
		{name: "Fail - bad aggregate", request: processRequest{AggColumn: "age", AggFunc: "median"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, agg, err := process(peopleTable(), tt.request)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCols, got.Columns)
			assert.Equal(t, tt.wantRows, got.Rows)
			assert.Equal(t, tt.wantAgg, agg)
		})
	}
}

func TestProcessEventNeedsUpload(t *testing.T) {
	env := testEnv()
	st := testState(t)
	_, err := Handle(env, &st, InteractiveFeatures, event(t, "process", processRequest{}))
	assert.Equal(t, appErrors.ErrInvalidInput, appErrors.CodeOf(err))

	_, err = Upload(&st, InteractiveFeatures, upload.SlotProcessing, upload.Result{Name: "p.csv", Kind: upload.KindCSV, Table: peopleTable()})
	require.NoError(t, err)
	_, err = Handle(env, &st, InteractiveFeatures, event(t, "process", processRequest{Columns: []string{"city"}}))
	require.NoError(t, err)
	require.NotNil(t, st.Interactive.Processed)
	assert.Equal(t, []string{"city"}, st.Interactive.Processed.Columns)
	assert.Len(t, st.Interactive.Processing.Columns, 3)
}

func TestAnalysisChart(t *testing.T) {
	chart, err := analysisChart(peopleTable(), chartRequest{ChartType: "Bar", X: "name", Y: "age", Color: "city"})
	require.NoError(t, err)
	assert.Equal(t, render.ChartBar, chart.Type)
	require.Len(t, chart.Series, 2)
	assert.Equal(t, "Oslo", chart.Series[0].Name)
	assert.Equal(t, []string{"Ann", "Cid"}, chart.Series[0].X)
	assert.Equal(t, []float64{31, 40}, chart.Series[0].Y)

	chart, err = analysisChart(peopleTable(), chartRequest{ChartType: "Histogram", X: "age"})
	require.NoError(t, err)
	assert.Equal(t, []float64{31, 25, 40, 19}, chart.Series[0].Y)

	_, err = analysisChart(peopleTable(), chartRequest{ChartType: "Pie", X: "name", Y: "age"})
	assert.Error(t, err)
	_, err = analysisChart(peopleTable(), chartRequest{ChartType: "Line", X: "name", Y: "city"})
	assert.Error(t, err)
}

func TestDashboardRing(t *testing.T) {
	env := testEnv()
	st := testState(t)
	for range dashboard.Limit + 5 {
		_, err := Handle(env, &st, InteractiveFeatures, Event{Name: "add_data_point"})
		require.NoError(t, err)
	}
	require.Len(t, st.Interactive.Dashboard, dashboard.Limit)
	for _, p := range st.Interactive.Dashboard {
		assert.GreaterOrEqual(t, p.Value, 50)
		assert.Less(t, p.Value, 150)
		assert.Contains(t, dashboard.Categories, p.Category)
	}
}

func TestSelectProject(t *testing.T) {
	env := testEnv()
	st := testState(t)
	_, err := Handle(env, &st, RealProjects, event(t, "select_project", "Recipes"))
	require.NoError(t, err)
	assert.Equal(t, session.ProjectRecipes, st.Projects.Project)

	_, err = Handle(env, &st, RealProjects, event(t, "select_project", "chess"))
	assert.Equal(t, appErrors.ErrInvalidInput, appErrors.CodeOf(err))
}

func TestFinanceProject(t *testing.T) {
	env := testEnv()
	st := testState(t)

	_, err := Handle(env, &st, RealProjects, event(t, "add_transaction", finance.TransactionRequest{Type: "Income", Amount: "1500.00", Category: "Salary"}))
	require.NoError(t, err)
	_, err = Handle(env, &st, RealProjects, event(t, "add_transaction", finance.TransactionRequest{Type: "Expense", Amount: "20.50", Category: "Food", Date: "2024-03-01"}))
	require.NoError(t, err)
	_, err = Handle(env, &st, RealProjects, event(t, "add_transaction", finance.TransactionRequest{Type: "Expense", Amount: "10", Category: "Salary"}))
	assert.Equal(t, appErrors.ErrInvalidInput, appErrors.CodeOf(err))
	require.Len(t, st.Projects.Transactions, 2)

	blocks := financeBlocks(st.Projects.Transactions)
	values := texts(blocks)
	assert.Contains(t, values, "$1,500.00")
	assert.Contains(t, values, "$20.50")
	assert.Contains(t, values, "$1,479.50")
}

func TestWeatherProject(t *testing.T) {
	env := testEnv()
	st := testState(t)
	_, err := Handle(env, &st, RealProjects, event(t, "get_weather", cityRequest{City: " Paris "}))
	require.NoError(t, err)
	require.NotNil(t, st.Projects.Weather)
	assert.Equal(t, "Paris", st.Projects.City)
	assert.Len(t, st.Projects.Weather.Forecast, 7)

	_, err = Handle(env, &st, RealProjects, event(t, "get_weather", cityRequest{}))
	assert.Equal(t, appErrors.ErrInvalidInput, appErrors.CodeOf(err))
}

func TestSurveyProject(t *testing.T) {
	env := testEnv()
	st := testState(t)

	_, err := Handle(env, &st, RealProjects, event(t, "filter_survey", survey.Filter{AgeMin: 30, AgeMax: 40, Genders: []string{"Female"}, Education: survey.Educations}))
	require.NoError(t, err)
	require.NotNil(t, st.Projects.SurveyFilter)
	for _, r := range st.Projects.SurveyFilter.Apply(surveyData(env, st.Projects)) {
		assert.Equal(t, "Female", r.Gender)
		assert.True(t, r.Age >= 30 && r.Age <= 40)
	}

	_, err = Handle(env, &st, RealProjects, event(t, "filter_survey", survey.Filter{AgeMin: 50, AgeMax: 20}))
	assert.Equal(t, appErrors.ErrInvalidInput, appErrors.CodeOf(err))

	uploaded := survey.Table(survey.Generate(7, 3))
	feedback, err := Upload(&st, RealProjects, upload.SlotSurvey, upload.Result{Name: "s.csv", Kind: upload.KindCSV, Table: uploaded})
	require.NoError(t, err)
	assert.Contains(t, texts(feedback), "Loaded 3 responses.")
	assert.Len(t, st.Projects.Survey, 3)
	assert.Nil(t, st.Projects.SurveyFilter)

	bad := dataset.New("age", "gender")
	bad.Append("20", "Male")
	_, err = Upload(&st, RealProjects, upload.SlotSurvey, upload.Result{Name: "bad.csv", Kind: upload.KindCSV, Table: bad})
	assert.Equal(t, appErrors.ErrInvalidInput, appErrors.CodeOf(err))
}

func TestRecipesProject(t *testing.T) {
	env := testEnv()
	st := testState(t)
	require.Len(t, st.Projects.Recipes, 2)

	_, err := Handle(env, &st, RealProjects, event(t, "add_recipe", recipes.RecipeRequest{
		Name: "Tacos", Ingredients: "tortilla\nbeef", CookingTime: 20, Difficulty: "Easy", Cuisine: "Mexican", Tags: "quick, dinner",
	}))
	require.NoError(t, err)
	require.Len(t, st.Projects.Recipes, 3)

	_, err = Handle(env, &st, RealProjects, event(t, "search_recipes", recipes.Filter{Search: "BEEF", Cuisine: recipes.All, Difficulty: recipes.All}))
	require.NoError(t, err)
	found := st.Projects.RecipeFilter.Apply(st.Projects.Recipes)
	require.Len(t, found, 1)
	assert.Equal(t, "Tacos", found[0].Name)

	_, err = Handle(env, &st, RealProjects, event(t, "search_recipes", recipes.Filter{Cuisine: "Martian"}))
	assert.Equal(t, appErrors.ErrInvalidInput, appErrors.CodeOf(err))
	_, err = Handle(env, &st, RealProjects, event(t, "search_recipes", recipes.Filter{Difficulty: "Extreme"}))
	assert.Equal(t, appErrors.ErrInvalidInput, appErrors.CodeOf(err))

	_, err = Handle(env, &st, RealProjects, event(t, "search_recipes", recipes.Filter{Cuisine: "all", Difficulty: " easy "}))
	require.NoError(t, err)
	assert.Equal(t, recipes.Filter{Cuisine: recipes.All, Difficulty: "Easy"}, st.Projects.RecipeFilter)
	assert.Len(t, st.Projects.RecipeFilter.Apply(st.Projects.Recipes), 2)

	_, err = Handle(env, &st, RealProjects, event(t, "search_recipes", recipes.Filter{Cuisine: " mexican", Difficulty: "easy"}))
	require.NoError(t, err)
	found = st.Projects.RecipeFilter.Apply(st.Projects.Recipes)
	require.Len(t, found, 1)
	assert.Equal(t, "Tacos", found[0].Name)

	_, err = Handle(env, &st, RealProjects, event(t, "delete_recipe", deleteRequest{ID: found[0].ID}))
	require.NoError(t, err)
	assert.Len(t, st.Projects.Recipes, 2)

	_, err = Handle(env, &st, RealProjects, event(t, "delete_recipe", deleteRequest{ID: "missing"}))
	assert.Equal(t, appErrors.ErrNotFound, appErrors.CodeOf(err))
}

func TestExportTable(t *testing.T) {
	env := testEnv()
	st := testState(t)

	tests := []struct {
		name     string
		export   Export
		wantBase string
		wantCode string
	}{
		{name: "sample", export: ExportSample, wantBase: "sample_data"},
		{name: "sales", export: ExportSales, wantBase: "sales_data"},
		{name: "recipes", export: ExportRecipes, wantBase: "recipes"},
		{name: "survey", export: ExportSurvey, wantBase: "survey_analysis_report"},
		{name: "finance without data", export: ExportFinance, wantCode: appErrors.ErrNotFound},
		{name: "processed without data", export: ExportProcessed, wantCode: appErrors.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, base, err := ExportTable(env, st, tt.export)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, appErrors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBase, base)
			assert.NotZero(t, table.Len())
		})
	}

	sample, _, err := ExportTable(env, st, ExportSample)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Age", "City", "Salary"}, sample.Columns)
	assert.Equal(t, 5, sample.Len())

	_, err = ParseExport("passwords")
	assert.Equal(t, appErrors.ErrNotFound, appErrors.CodeOf(err))
}

func TestUploadSlots(t *testing.T) {
	csv := upload.Result{Name: "a.csv", Kind: upload.KindCSV, Table: peopleTable()}
	img := upload.Result{Name: "a.png", Kind: upload.KindImage, Image: &imagefx.Info{Width: 2, Height: 2, Palette: []string{"#000000", "#ffffff"}}}

	tests := []struct {
		name    string
		lesson  ID
		slot    upload.Slot
		res     upload.Result
		wantErr bool
	}{
		{name: "Success - preview csv", lesson: InteractiveFeatures, slot: upload.SlotPreview, res: csv},
		{name: "Success - preview image", lesson: InteractiveFeatures, slot: upload.SlotPreview, res: img},
		{name: "Success - analysis csv", lesson: InteractiveFeatures, slot: upload.SlotAnalysis, res: csv},
		{name: "Success - project image", lesson: RealProjects, slot: upload.SlotImage, res: img},
		{name: "Fail - image into processing", lesson: InteractiveFeatures, slot: upload.SlotProcessing, res: img, wantErr: true},
		{name: "Fail - slot of another lesson", lesson: InteractiveFeatures, slot: upload.SlotSurvey, res: csv, wantErr: true},
		{name: "Fail - lesson without uploads", lesson: BasicWidgets, slot: upload.SlotPreview, res: csv, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := testState(t)
			feedback, err := Upload(&st, tt.lesson, tt.slot, tt.res)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, appErrors.ErrInvalidInput, appErrors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, feedback)
			assert.Equal(t, render.LevelSuccess, feedback[0].Level)
		})
	}

	st := testState(t)
	feedback, err := Upload(&st, RealProjects, upload.SlotImage, img)
	require.NoError(t, err)
	swatch, ok := find(feedback, render.KindSwatch)
	require.True(t, ok)
	assert.Equal(t, "#000000", swatch.Label)
	require.NotNil(t, st.Projects.Image)
}
