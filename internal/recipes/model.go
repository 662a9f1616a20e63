package recipes

type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

var Difficulties = []Difficulty{Easy, Medium, Hard}

var Cuisines = []string{"Italian", "Asian", "Mexican", "American", "Other"}

// All disables a filter dimension, as does the empty string.
const All = "All"

type Recipe struct {
	ID           string     `json:"id" yaml:"-"`
	Name         string     `json:"name" yaml:"name"`
	Ingredients  []string   `json:"ingredients" yaml:"ingredients"`
	Instructions string     `json:"instructions" yaml:"instructions"`
	CookingTime  int        `json:"cooking_time" yaml:"cooking_time"`
	Difficulty   Difficulty `json:"difficulty" yaml:"difficulty"`
	Cuisine      string     `json:"cuisine" yaml:"cuisine"`
	Tags         []string   `json:"tags" yaml:"tags"`
}

type RecipeRequest struct {
	Name         string `json:"name"`
	Ingredients  string `json:"ingredients"` // one per line
	Instructions string `json:"instructions"`
	CookingTime  int    `json:"cooking_time"`
	Difficulty   string `json:"difficulty"`
	Cuisine      string `json:"cuisine"`
	Tags         string `json:"tags"` // comma separated
}

type Filter struct {
	Search     string `json:"term"`
	Cuisine    string `json:"cuisine"`
	Difficulty string `json:"difficulty"`
}

type Stats struct {
	Total                int
	AverageCookingTime   float64
	CuisineTypes         int
	MostCommonDifficulty Difficulty
}

type Count struct {
	Name  string
	Count int
}
