package lessons

import (
	"testing"
	"time"

	appErrors "github.com/fatali-fataliyev/lesson_board/customErrors"
	"github.com/fatali-fataliyev/lesson_board/internal/render"
	"github.com/fatali-fataliyev/lesson_board/internal/sales"
	"github.com/fatali-fataliyev/lesson_board/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicWidgetsEvents(t *testing.T) {
	tests := []struct {
		name    string
		event   string
		value   any
		check   func(t *testing.T, w session.Widgets)
		wantErr bool
	}{
		{name: "Success - name trimmed", event: "set_name", value: "  Ada ", check: func(t *testing.T, w session.Widgets) { assert.Equal(t, "Ada", w.Name) }},
		{name: "Success - password only flagged", event: "set_password", value: "secret", check: func(t *testing.T, w session.Widgets) { assert.True(t, w.PasswordEntered) }},
		{name: "Success - age upper bound", event: "set_age", value: 120, check: func(t *testing.T, w session.Widgets) { assert.Equal(t, 120, w.Age) }},
		{name: "Fail - age too high", event: "set_age", value: 121, wantErr: true},
		{name: "Fail - age negative", event: "set_age", value: -1, wantErr: true},
		{name: "Success - height", event: "set_height", value: 2.5, check: func(t *testing.T, w session.Widgets) { assert.Equal(t, 2.5, w.Height) }},
		{name: "Fail - height too low", event: "set_height", value: 0.4, wantErr: true},
		{name: "Success - temperature", event: "set_temperature", value: -20, check: func(t *testing.T, w session.Widgets) { assert.Equal(t, -20, w.Temperature) }},
		{name: "Fail - temperature", event: "set_temperature", value: 51, wantErr: true},
		{name: "Success - volume step", event: "set_volume", value: 0.3, check: func(t *testing.T, w session.Widgets) { assert.Equal(t, 0.3, w.Volume) }},
		{name: "Fail - volume off step", event: "set_volume", value: 0.35, wantErr: true},
		{name: "Fail - volume above one", event: "set_volume", value: 1.1, wantErr: true},
		{name: "Success - color", event: "set_color", value: "Blue", check: func(t *testing.T, w session.Widgets) { assert.Equal(t, "Blue", w.Color) }},
		{name: "Fail - color not offered", event: "set_color", value: "Pink", wantErr: true},
		{name: "Success - fruit", event: "set_fruit", value: "Cherry", check: func(t *testing.T, w session.Widgets) { assert.Equal(t, "Cherry", w.Fruit) }},
		{name: "Success - meal", event: "set_meal", value: "Sushi", check: func(t *testing.T, w session.Widgets) { assert.Equal(t, "Sushi", w.Meal) }},
		{name: "Fail - experience", event: "set_experience", value: "Expert", wantErr: true},
		{name: "Fail - interest not offered", event: "set_interest", value: interestToggle{Name: "Knitting", Checked: true}, wantErr: true},
		{name: "Fail - wrong value type", event: "set_age", value: "ten", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := testState(t)
			_, err := Handle(testEnv(), &st, BasicWidgets, event(t, tt.event, tt.value))
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, appErrors.ErrInvalidInput, appErrors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			tt.check(t, st.Widgets)
		})
	}
}

func TestInterestsKeepDeclarationOrder(t *testing.T) {
	env := testEnv()
	st := testState(t)
	for _, name := range []string{"Coding", "Reading", "Music"} {
		_, err := Handle(env, &st, BasicWidgets, event(t, "set_interest", interestToggle{Name: name, Checked: true}))
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"Reading", "Music", "Coding"}, st.Widgets.Interests)

	_, err := Handle(env, &st, BasicWidgets, event(t, "set_interest", interestToggle{Name: "Reading"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Music", "Coding"}, st.Widgets.Interests)
}

func TestCalculator(t *testing.T) {
	tests := []struct {
		name  string
		input session.Calculator
		want  render.Level
		text  string
	}{
		{name: "add", input: session.Calculator{Num1: 2, Op: "+", Num2: 3}, want: render.LevelSuccess, text: "**Result:** 2 + 3 = 5"},
		{name: "divide", input: session.Calculator{Num1: 7, Op: "/", Num2: 2}, want: render.LevelSuccess, text: "**Result:** 7 / 2 = 3.5"},
		{name: "divide by zero", input: session.Calculator{Num1: 1, Op: "/", Num2: 0}, want: render.LevelError, text: "Cannot divide by zero!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := testState(t)
			feedback, err := Handle(testEnv(), &st, BasicWidgets, event(t, "calculate", tt.input))
			require.NoError(t, err)
			require.Len(t, feedback, 1)
			assert.Equal(t, tt.want, feedback[0].Level)
			assert.Equal(t, tt.text, feedback[0].Text)
			assert.Equal(t, tt.input, st.Widgets.Calculator)
		})
	}

	st := testState(t)
	_, err := Handle(testEnv(), &st, BasicWidgets, event(t, "calculate", session.Calculator{Num1: 1, Op: "%", Num2: 2}))
	assert.Equal(t, appErrors.ErrInvalidInput, appErrors.CodeOf(err))
}

func TestClickCounterAndDice(t *testing.T) {
	env := testEnv()
	st := testState(t)
	for range 3 {
		_, err := Handle(env, &st, BasicWidgets, Event{Name: "count_click"})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, st.Widgets.ClickCount)
	_, err := Handle(env, &st, BasicWidgets, Event{Name: "reset_counter"})
	require.NoError(t, err)
	assert.Zero(t, st.Widgets.ClickCount)

	for range 20 {
		feedback, err := Handle(env, &st, BasicWidgets, Event{Name: "roll_dice"})
		require.NoError(t, err)
		require.Len(t, feedback, 1)
		assert.Regexp(t, `^You rolled a \*\*[1-6]\*\*!$`, feedback[0].Text)
	}
}

func TestTemperatureMessage(t *testing.T) {
	assert.Equal(t, render.LevelInfo, temperatureMessage(-1).Level)
	assert.Equal(t, render.LevelSuccess, temperatureMessage(0).Level)
	assert.Equal(t, render.LevelSuccess, temperatureMessage(30).Level)
	assert.Equal(t, render.LevelWarning, temperatureMessage(31).Level)
}

func TestDataDisplayEvents(t *testing.T) {
	tests := []struct {
		name    string
		event   string
		value   any
		check   func(t *testing.T, ex session.Explorer)
		wantErr bool
	}{
		{name: "Success - regions kept in declaration order", event: "set_regions", value: []string{"West", "North"},
			check: func(t *testing.T, ex session.Explorer) { assert.Equal(t, []string{"North", "West"}, ex.Regions) }},
		{name: "Success - no regions", event: "set_regions", value: []string{},
			check: func(t *testing.T, ex session.Explorer) { assert.Empty(t, ex.Regions) }},
		{name: "Fail - unknown region", event: "set_regions", value: []string{"North", "Moon"}, wantErr: true},
		{name: "Success - date range", event: "set_date_range", value: dateRange{From: "2023-02-01", To: "2023-02-10"},
			check: func(t *testing.T, ex session.Explorer) {
				assert.Equal(t, time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), ex.From)
				assert.Equal(t, time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC), ex.To)
			}},
		{name: "Fail - reversed range", event: "set_date_range", value: dateRange{From: "2023-02-10", To: "2023-02-01"}, wantErr: true},
		{name: "Fail - outside data", event: "set_date_range", value: dateRange{From: "2022-12-31", To: "2023-02-01"}, wantErr: true},
		{name: "Fail - bad date", event: "set_date_range", value: dateRange{From: "01/02/2023", To: "2023-02-01"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := testState(t)
			_, err := Handle(testEnv(), &st, DataDisplay, event(t, tt.event, tt.value))
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, appErrors.ErrInvalidInput, appErrors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			tt.check(t, st.Explorer)
		})
	}
}

func TestExplorerReportsFilteredRecords(t *testing.T) {
	env := testEnv()
	st := testState(t)
	st.Explorer.Regions = []string{}

	blocks := explorerBlocks(salesData(env), st.Explorer)
	assert.Contains(t, texts(blocks), "Showing 0 records")
	assert.Contains(t, texts(blocks), "0.0%")

	st.Explorer.Regions = sales.Regions
	blocks = explorerBlocks(salesData(env), st.Explorer)
	assert.Contains(t, texts(blocks), "Showing 100 records")
}

func TestSalesSunburstParents(t *testing.T) {
	chart := salesSunburst(salesData(testEnv()))
	require.Len(t, chart.Series, 1)
	s := chart.Series[0]
	require.Equal(t, len(s.X), len(s.Parents))
	for i, parent := range s.Parents {
		if parent == "" {
			assert.Contains(t, sales.Regions, s.X[i])
			continue
		}
		assert.Contains(t, s.X, parent)
	}
}

func TestLayoutStylingEvents(t *testing.T) {
	env := testEnv()
	st := testState(t)

	_, err := Handle(env, &st, LayoutStyling, event(t, "set_theme", "Dark"))
	require.NoError(t, err)
	assert.Equal(t, "Dark", st.Layout.Theme)

	_, err = Handle(env, &st, LayoutStyling, event(t, "set_language", "German"))
	assert.Equal(t, appErrors.ErrInvalidInput, appErrors.CodeOf(err))

	feedback, err := Handle(env, &st, LayoutStyling, Event{Name: "refresh_data"})
	require.NoError(t, err)
	assert.Equal(t, "Data refreshed!", feedback[0].Text)

	feedback, err = Handle(env, &st, LayoutStyling, event(t, "save_settings", settings{AppName: "Board", ShowSidebar: false, ShowFooter: false, RefreshInterval: 10}))
	require.NoError(t, err)
	assert.Equal(t, "Settings saved successfully!", feedback[0].Text)
	assert.Equal(t, "Board", st.Layout.AppName)
	assert.Equal(t, 10, st.Layout.RefreshInterval)

	page, err := Render(env, st, LayoutStyling)
	require.NoError(t, err)
	assert.Equal(t, render.SidebarCollapsed, page.Config.SidebarState)
	assert.NotContains(t, texts(page.Main), "**Next lesson:** Interactive Features - Learn about forms, file uploads, and caching!")

	for _, interval := range []int{0, 61} {
		_, err = Handle(env, &st, LayoutStyling, event(t, "save_settings", settings{AppName: "Board", RefreshInterval: interval}))
		assert.Equal(t, appErrors.ErrInvalidInput, appErrors.CodeOf(err))
	}
	_, err = Handle(env, &st, LayoutStyling, event(t, "save_settings", settings{AppName: "  ", RefreshInterval: 5}))
	assert.Equal(t, appErrors.ErrInvalidInput, appErrors.CodeOf(err))
}
