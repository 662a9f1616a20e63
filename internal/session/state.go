package session

import (
	"slices"
	"time"

	"github.com/fatali-fataliyev/lesson_board/internal/auth"
	"github.com/fatali-fataliyev/lesson_board/internal/dashboard"
	"github.com/fatali-fataliyev/lesson_board/internal/dataset"
	"github.com/fatali-fataliyev/lesson_board/internal/finance"
	"github.com/fatali-fataliyev/lesson_board/internal/imagefx"
	"github.com/fatali-fataliyev/lesson_board/internal/recipes"
	"github.com/fatali-fataliyev/lesson_board/internal/sales"
	"github.com/fatali-fataliyev/lesson_board/internal/survey"
	"github.com/fatali-fataliyev/lesson_board/internal/upload"
	"github.com/fatali-fataliyev/lesson_board/internal/weather"
)

// Project is the real-world app shown by the last lesson.
type Project string

const (
	ProjectFinance Project = "finance"
	ProjectWeather Project = "weather"
	ProjectImage   Project = "image"
	ProjectSurvey  Project = "survey"
	ProjectRecipes Project = "recipes"
)

var Projects = []Project{ProjectFinance, ProjectWeather, ProjectImage, ProjectSurvey, ProjectRecipes}

// State is everything a session remembers between interactions.
type State struct {
	Widgets     Widgets     `json:"widgets"`
	Explorer    Explorer    `json:"explorer"`
	Layout      Layout      `json:"layout"`
	Interactive Interactive `json:"interactive"`
	Projects    Workshop    `json:"projects"`
}

type Calculator struct {
	Num1 float64 `json:"num1"`
	Op   string  `json:"op"`
	Num2 float64 `json:"num2"`
}

type Widgets struct {
	Name            string     `json:"name"`
	Bio             string     `json:"bio"`
	PasswordEntered bool       `json:"password_entered"`
	Age             int        `json:"age"`
	Height          float64    `json:"height"`
	Temperature     int        `json:"temperature"`
	Volume          float64    `json:"volume"`
	Color           string     `json:"color"`
	Fruit           string     `json:"fruit"`
	Interests       []string   `json:"interests"`
	Meal            string     `json:"meal"`
	Experience      string     `json:"experience"`
	Calculator      Calculator `json:"calculator"`
	ClickCount      int        `json:"click_count"`
}

type Explorer struct {
	Regions []string  `json:"regions"`
	From    time.Time `json:"from"`
	To      time.Time `json:"to"`
}

type Layout struct {
	Theme           string    `json:"theme"`
	Language        string    `json:"language"`
	From            time.Time `json:"from"`
	To              time.Time `json:"to"`
	AppName         string    `json:"app_name"`
	Description     string    `json:"description"`
	ShowSidebar     bool      `json:"show_sidebar"`
	ShowFooter      bool      `json:"show_footer"`
	RefreshInterval int       `json:"refresh_interval"`
}

type Interactive struct {
	Counter    int               `json:"counter"`
	Profile    *auth.Profile     `json:"profile,omitempty"`
	Preview    *upload.Result    `json:"preview,omitempty"`
	Processing *dataset.Table    `json:"processing,omitempty"`
	Processed  *dataset.Table    `json:"processed,omitempty"`
	Analysis   *dataset.Table    `json:"analysis,omitempty"`
	Progress   int               `json:"progress"`
	CalcInput  int               `json:"calc_input"`
	Dashboard  []dashboard.Point `json:"dashboard"`
}

// Workshop holds the data of the real-world projects.
type Workshop struct {
	Project      Project               `json:"project"`
	Transactions []finance.Transaction `json:"transactions"`
	City         string                `json:"city"`
	Weather      *weather.Report       `json:"weather,omitempty"`
	Image        *imagefx.Info         `json:"image,omitempty"`
	// Survey is nil until a CSV is uploaded; the seeded responses are used
	// until then.
	Survey       []survey.Response `json:"survey,omitempty"`
	SurveyFilter *survey.Filter    `json:"survey_filter,omitempty"`
	Recipes      []recipes.Recipe  `json:"recipes"`
	RecipeFilter recipes.Filter    `json:"recipe_filter"`
}

// NewState returns the widget defaults of every lesson. Date ranges are
// relative to now.
func NewState(now time.Time) (State, error) {
	seed, err := recipes.Defaults()
	if err != nil {
		return State{}, err
	}
	today := now.Truncate(24 * time.Hour)
	return State{
		Widgets: Widgets{
			Age:         18,
			Height:      1.7,
			Temperature: 20,
			Volume:      0.5,
			Color:       "Red",
			Fruit:       "Banana",
			Meal:        "Pizza",
			Experience:  "Beginner",
			Calculator:  Calculator{Op: "+"},
		},
		Explorer: Explorer{
			Regions: slices.Clone(sales.Regions),
			From:    sales.Start,
			To:      sales.Start.AddDate(0, 0, sales.DAYS-1),
		},
		Layout: Layout{
			Theme:           "Light",
			Language:        "English",
			From:            today.AddDate(0, 0, -30),
			To:              today,
			AppName:         "My Streamlit App",
			Description:     "A beautiful Streamlit application",
			ShowSidebar:     true,
			ShowFooter:      true,
			RefreshInterval: 5,
		},
		Interactive: Interactive{
			Progress:  50,
			CalcInput: 100,
		},
		Projects: Workshop{
			Project: ProjectFinance,
			City:    weather.DEFAULT_CITY,
			Recipes: seed,
			RecipeFilter: recipes.Filter{
				Cuisine:    recipes.All,
				Difficulty: recipes.All,
			},
		},
	}, nil
}

// Clone returns a copy that shares no mutable memory with s.
func (s State) Clone() State {
	c := s
	c.Widgets.Interests = slices.Clone(s.Widgets.Interests)
	c.Explorer.Regions = slices.Clone(s.Explorer.Regions)

	c.Interactive.Profile = s.Interactive.Profile.Clone()
	if s.Interactive.Preview != nil {
		p := *s.Interactive.Preview
		p.Table = p.Table.Clone()
		p.JSON = cloneJSON(p.JSON)
		if p.Image != nil {
			info := *p.Image
			info.Palette = slices.Clone(info.Palette)
			p.Image = &info
		}
		c.Interactive.Preview = &p
	}
	c.Interactive.Processing = s.Interactive.Processing.Clone()
	c.Interactive.Processed = s.Interactive.Processed.Clone()
	c.Interactive.Analysis = s.Interactive.Analysis.Clone()
	c.Interactive.Dashboard = slices.Clone(s.Interactive.Dashboard)

	c.Projects.Transactions = slices.Clone(s.Projects.Transactions)
	if s.Projects.Weather != nil {
		w := *s.Projects.Weather
		w.Forecast = slices.Clone(w.Forecast)
		c.Projects.Weather = &w
	}
	if s.Projects.Image != nil {
		info := *s.Projects.Image
		info.Palette = slices.Clone(info.Palette)
		c.Projects.Image = &info
	}
	c.Projects.Survey = slices.Clone(s.Projects.Survey)
	if s.Projects.SurveyFilter != nil {
		f := *s.Projects.SurveyFilter
		f.Genders = slices.Clone(f.Genders)
		f.Education = slices.Clone(f.Education)
		c.Projects.SurveyFilter = &f
	}
	if s.Projects.Recipes != nil {
		c.Projects.Recipes = make([]recipes.Recipe, len(s.Projects.Recipes))
		for i, r := range s.Projects.Recipes {
			r.Ingredients = slices.Clone(r.Ingredients)
			r.Tags = slices.Clone(r.Tags)
			c.Projects.Recipes[i] = r
		}
	}
	return c
}

// cloneJSON deep-copies a value decoded by encoding/json into any.
func cloneJSON(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = cloneJSON(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cloneJSON(e)
		}
		return out
	}
	return v
}
