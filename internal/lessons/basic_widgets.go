package lessons

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	appErrors "github.com/fatali-fataliyev/lesson_board/customErrors"
	"github.com/fatali-fataliyev/lesson_board/internal/render"
	"github.com/fatali-fataliyev/lesson_board/internal/session"
)

var (
	Colors      = []string{"Red", "Blue", "Green", "Yellow", "Purple", "Orange"}
	Fruits      = []string{"Apple", "Banana", "Cherry", "Dragon Fruit", "Elderberry"}
	Hobbies     = []string{"Reading", "Gaming", "Sports", "Music", "Coding"}
	Meals       = []string{"Pizza", "Burger", "Salad", "Sushi"}
	Experiences = []string{"Beginner", "Intermediate", "Advanced"}
	Operations  = []string{"+", "-", "*", "/"}
)

type interestToggle struct {
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func renderBasicWidgets(w session.Widgets) []render.Block {
	main := []render.Block{
		render.Title("🎛️ Streamlit Widgets Tutorial"),
		render.Markdown("### Making Your Apps Interactive"),
		render.Text("Widgets are interactive elements that allow users to input data and control your app."),

		render.Header("🔘 Buttons"),
		render.Columns(
			render.Column(render.Info("Button hasn't been clicked yet.")),
			render.Column(render.Text("Roll the dice to get a number from 1 to 6.")),
			render.Column(render.Text("Celebrate to release the balloons.")),
		),

		render.Header("📝 Text Inputs"),
	}
	if w.Name != "" {
		main = append(main, render.Markdown(fmt.Sprintf("Hello, **%s**! 👋", w.Name)))
	}
	if w.Bio != "" {
		main = append(main, render.Markdown("**Your bio:** "+w.Bio))
	}
	if w.PasswordEntered {
		main = append(main, render.Text("Password entered (hidden for security)"))
	}

	main = append(main,
		render.Header("🔢 Number Inputs"),
		render.Columns(
			render.Column(render.Markdown(fmt.Sprintf("You are **%d** years old.", w.Age))),
			render.Column(render.Markdown(fmt.Sprintf("Your height is **%s** meters.", num(w.Height)))),
		),

		render.Header("🎚️ Sliders"),
		render.Columns(
			render.Column(
				render.Markdown(fmt.Sprintf("Temperature: **%d°C**", w.Temperature)),
				temperatureMessage(w.Temperature),
			),
			render.Column(
				render.Markdown(fmt.Sprintf("Volume: **%s**", num(w.Volume))),
				render.Text("%s", strings.Repeat("🔊", int(math.Round(w.Volume*10)))),
			),
		),

		render.Header("📋 Select Boxes"),
		render.Markdown(fmt.Sprintf("Your favorite color is **%s**!", w.Color)),
		render.Markdown(fmt.Sprintf("You chose **%s**!", w.Fruit)),

		render.Header("☑️ Checkboxes"),
	)
	if len(w.Interests) > 0 {
		main = append(main, render.Markdown("**Your interests:** "+strings.Join(w.Interests, ", ")))
	} else {
		main = append(main, render.Text("No interests selected yet."))
	}

	main = append(main,
		render.Header("🔘 Radio Buttons"),
		render.Markdown(fmt.Sprintf("You chose **%s** for lunch!", w.Meal)),
		render.Markdown(fmt.Sprintf("Experience level: **%s**", w.Experience)),

		render.Header("🎯 Interactive Calculator"),
		render.Text("%s %s %s", num(w.Calculator.Num1), w.Calculator.Op, num(w.Calculator.Num2)),

		render.Header("💾 Session State"),
		render.Markdown(fmt.Sprintf("Button clicked **%d** times!", w.ClickCount)),

		render.Divider(),
		footer("Data Display - Learn to show tables, charts, and visualizations!"),
		render.Expander("🎯 Challenge: Create Your Own Widget App",
			render.Markdown("**Your challenge:** Create a simple app that uses at least 3 different widgets.\n\nIdeas:\n- A personality quiz\n- A simple game\n- A survey form\n- A unit converter"),
		),
	)
	return main
}

func temperatureMessage(t int) render.Block {
	switch {
	case t < 0:
		return render.Info("❄️ It's cold!")
	case t > 30:
		return render.Warning("🔥 It's hot!")
	default:
		return render.Success("😊 Nice temperature!")
	}
}

func handleBasicWidgets(env Env, w *session.Widgets, ev Event) ([]render.Block, error) {
	switch ev.Name {
	case "click_me":
		return []render.Block{render.Success("Button was clicked! 🎉")}, nil
	case "roll_dice":
		return []render.Block{render.Markdown(fmt.Sprintf("You rolled a **%d**!", 1+env.Rand.IntN(6)))}, nil
	case "celebrate":
		return []render.Block{render.Balloons(), render.Text("Party time! 🎊")}, nil

	case "set_name":
		v, err := decode[string](ev)
		if err != nil {
			return nil, err
		}
		w.Name = strings.TrimSpace(v)
	case "set_bio":
		v, err := decode[string](ev)
		if err != nil {
			return nil, err
		}
		w.Bio = v
	case "set_password":
		v, err := decode[string](ev)
		if err != nil {
			return nil, err
		}
		w.PasswordEntered = v != ""

	case "set_age":
		v, err := decode[int](ev)
		if err != nil {
			return nil, err
		}
		if v < 0 || v > 120 {
			return nil, appErrors.InvalidInput("age must be between 0 and 120")
		}
		w.Age = v
	case "set_height":
		v, err := decode[float64](ev)
		if err != nil {
			return nil, err
		}
		if v < 0.5 || v > 2.5 {
			return nil, appErrors.InvalidInput("height must be between 0.5 and 2.5 meters")
		}
		w.Height = v
	case "set_temperature":
		v, err := decode[int](ev)
		if err != nil {
			return nil, err
		}
		if v < -20 || v > 50 {
			return nil, appErrors.InvalidInput("temperature must be between -20 and 50")
		}
		w.Temperature = v
	case "set_volume":
		v, err := decode[float64](ev)
		if err != nil {
			return nil, err
		}
		steps := math.Round(v * 10)
		if v < 0 || v > 1 || math.Abs(v*10-steps) > 1e-9 {
			return nil, appErrors.InvalidInput("volume must be between 0.0 and 1.0 in steps of 0.1")
		}
		w.Volume = steps / 10

	case "set_color":
		return nil, chooseInto(&w.Color, Colors, ev)
	case "set_fruit":
		return nil, chooseInto(&w.Fruit, Fruits, ev)
	case "set_meal":
		return nil, chooseInto(&w.Meal, Meals, ev)
	case "set_experience":
		return nil, chooseInto(&w.Experience, Experiences, ev)

	case "set_interest":
		v, err := decode[interestToggle](ev)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(Hobbies, v.Name) {
			return nil, appErrors.InvalidInput("unknown interest: %q", v.Name)
		}
		w.Interests = toggle(Hobbies, w.Interests, v.Name, v.Checked)

	case "calculate":
		v, err := decode[session.Calculator](ev)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(Operations, v.Op) {
			return nil, appErrors.InvalidInput("unknown operation: %q", v.Op)
		}
		w.Calculator = v
		result, ok := calculate(v)
		if !ok {
			return []render.Block{render.Error("Cannot divide by zero!")}, nil
		}
		return []render.Block{render.Success(fmt.Sprintf("**Result:** %s %s %s = %s", num(v.Num1), v.Op, num(v.Num2), num(result)))}, nil

	case "count_click":
		w.ClickCount++
	case "reset_counter":
		w.ClickCount = 0

	default:
		return nil, unknownEvent(BasicWidgets, ev)
	}
	return nil, nil
}

// calculate reports false for a division by zero.
func calculate(c session.Calculator) (float64, bool) {
	switch c.Op {
	case "+":
		return c.Num1 + c.Num2, true
	case "-":
		return c.Num1 - c.Num2, true
	case "*":
		return c.Num1 * c.Num2, true
	case "/":
		if c.Num2 == 0 {
			return 0, false
		}
		return c.Num1 / c.Num2, true
	}
	return 0, false
}

func chooseInto(dst *string, options []string, ev Event) error {
	v, err := decode[string](ev)
	if err != nil {
		return err
	}
	if !slices.Contains(options, v) {
		return appErrors.InvalidInput("%q is not one of %s", v, strings.Join(options, ", "))
	}
	*dst = v
	return nil
}

// toggle sets or clears name in selected and keeps the result in the order of
// options.
func toggle(options, selected []string, name string, on bool) []string {
	out := []string{}
	for _, o := range options {
		checked := slices.Contains(selected, o)
		if o == name {
			checked = on
		}
		if checked {
			out = append(out, o)
		}
	}
	return out
}
