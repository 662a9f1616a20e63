package recipes

import (
	_ "embed"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	appErrors "github.com/fatali-fataliyev/lesson_board/customErrors"
	"github.com/fatali-fataliyev/lesson_board/internal/dataset"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const (
	MAX_RECIPE_NAME_LENGTH = 255
	MAX_COOKING_TIME       = 24 * 60
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Defaults returns the seed recipes with fresh IDs.
func Defaults() ([]Recipe, error) {
	var seed []Recipe
	if err := yaml.Unmarshal(defaultsYAML, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse default recipes: %w", err)
	}
	for i := range seed {
		seed[i].ID = uuid.New().String()
	}
	return seed, nil
}

func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if strings.EqualFold(string(d), strings.TrimSpace(s)) {
			return d, nil
		}
	}
	return "", appErrors.InvalidInput("invalid difficulty: '%s', allowed: Easy, Medium, Hard", s)
}

func NewRecipe(req RecipeRequest) (Recipe, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Recipe{}, appErrors.InvalidInput("recipe name is required")
	}
	if len(name) > MAX_RECIPE_NAME_LENGTH {
		return Recipe{}, appErrors.InvalidInput("recipe name is too long, the limit is: %d", MAX_RECIPE_NAME_LENGTH)
	}
	if req.CookingTime < 1 || req.CookingTime > MAX_COOKING_TIME {
		return Recipe{}, appErrors.InvalidInput("cooking time must be between 1 and %d minutes", MAX_COOKING_TIME)
	}
	difficulty, err := ParseDifficulty(req.Difficulty)
	if err != nil {
		return Recipe{}, err
	}
	if !slices.Contains(Cuisines, req.Cuisine) {
		return Recipe{}, appErrors.InvalidInput("invalid cuisine: '%s', allowed: %s", req.Cuisine, strings.Join(Cuisines, ", "))
	}

	return Recipe{
		ID:           uuid.New().String(),
		Name:         name,
		Ingredients:  splitNonEmpty(req.Ingredients, "\n"),
		Instructions: req.Instructions,
		CookingTime:  req.CookingTime,
		Difficulty:   difficulty,
		Cuisine:      req.Cuisine,
		Tags:         splitNonEmpty(req.Tags, ","),
	}, nil
}

func splitNonEmpty(s, sep string) []string {
	out := []string{}
	for _, part := range strings.Split(s, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isAll(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == All
}

// Apply returns the recipes matching every active predicate, in input order.
func (f Filter) Apply(recipes []Recipe) []Recipe {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]Recipe, 0, len(recipes))
	for _, r := range recipes {
		if term != "" && !matchesTerm(r, term) {
			continue
		}
		if !isAll(f.Cuisine) && r.Cuisine != f.Cuisine {
			continue
		}
		if !isAll(f.Difficulty) && string(r.Difficulty) != f.Difficulty {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesTerm(r Recipe, term string) bool {
	if strings.Contains(strings.ToLower(r.Name), term) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing), term) {
			return true
		}
	}
	return false
}

// Delete removes the recipe with the given id.
func Delete(recipes []Recipe, id string) ([]Recipe, error) {
	idx := slices.IndexFunc(recipes, func(r Recipe) bool { return r.ID == id })
	if idx < 0 {
		return recipes, appErrors.NotFound("recipe '%s' does not exist", id)
	}
	return slices.Delete(slices.Clone(recipes), idx, idx+1), nil
}

// Cuisines in use, sorted.
func CuisinesOf(recipes []Recipe) []string {
	var out []string
	for _, r := range recipes {
		if !slices.Contains(out, r.Cuisine) {
			out = append(out, r.Cuisine)
		}
	}
	sort.Strings(out)
	return out
}

func Summarize(recipes []Recipe) Stats {
	s := Stats{Total: len(recipes)}
	if len(recipes) == 0 {
		return s
	}
	total := 0
	for _, r := range recipes {
		total += r.CookingTime
	}
	s.AverageCookingTime = float64(total) / float64(len(recipes))
	s.CuisineTypes = len(CuisinesOf(recipes))

	// ties resolve to the easier difficulty
	best := 0
	for _, d := range Difficulties {
		n := 0
		for _, r := range recipes {
			if r.Difficulty == d {
				n++
			}
		}
		if n > best {
			best = n
			s.MostCommonDifficulty = d
		}
	}
	return s
}

// CuisineCounts and TagCounts are ordered by count descending, then name.
func CuisineCounts(recipes []Recipe) []Count {
	counts := map[string]int{}
	for _, r := range recipes {
		counts[r.Cuisine]++
	}
	return sortedCounts(counts)
}

func TagCounts(recipes []Recipe) []Count {
	counts := map[string]int{}
	for _, r := range recipes {
		for _, tag := range r.Tags {
			counts[tag]++
		}
	}
	return sortedCounts(counts)
}

func sortedCounts(counts map[string]int) []Count {
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

func Table(recipes []Recipe) *dataset.Table {
	t := dataset.New("name", "ingredients", "instructions", "cooking_time", "difficulty", "cuisine", "tags")
	for _, r := range recipes {
		t.Append(
			r.Name,
			strings.Join(r.Ingredients, "; "),
			r.Instructions,
			strconv.Itoa(r.CookingTime),
			string(r.Difficulty),
			r.Cuisine,
			strings.Join(r.Tags, ", "),
		)
	}
	return t
}
