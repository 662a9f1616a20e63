package lessons

import (
	"fmt"
	"math/rand/v2"
	"strings"

	appErrors "github.com/fatali-fataliyev/lesson_board/customErrors"
	"github.com/fatali-fataliyev/lesson_board/internal/auth"
	"github.com/fatali-fataliyev/lesson_board/internal/render"
	"github.com/fatali-fataliyev/lesson_board/internal/sales"
	"github.com/fatali-fataliyev/lesson_board/internal/session"
)

const (
	MIN_REFRESH_INTERVAL = 1
	MAX_REFRESH_INTERVAL = 60
)

var (
	Themes    = []string{"Light", "Dark", "Auto"}
	Languages = []string{"English", "Spanish", "French"}
)

type settings struct {
	AppName         string `json:"app_name"`
	Description     string `json:"description"`
	ShowSidebar     bool   `json:"show_sidebar"`
	ShowFooter      bool   `json:"show_footer"`
	RefreshInterval int    `json:"refresh_interval"`
}

// hourlySeries draws one reading per hour in [lo, hi).
func hourlySeries(r *rand.Rand, lo, hi int) ([]string, []float64) {
	hours := make([]string, 24)
	values := make([]float64, 24)
	for h := range hours {
		hours[h] = fmt.Sprintf("%02d:00", h)
		values[h] = float64(lo + r.IntN(hi-lo))
	}
	return hours, values
}

func renderLayoutStyling(env Env, l session.Layout) (sidebar, main []render.Block) {
	sidebar = []render.Block{
		render.Title("🎛️ Control Panel"),
		render.Subheader("Settings"),
		render.Markdown(fmt.Sprintf("**Theme:** %s", l.Theme)),
		render.Markdown(fmt.Sprintf("**Language:** %s", l.Language)),
		render.Text("Date range: %s to %s", l.From.Format(sales.DATE_LAYOUT), l.To.Format(sales.DATE_LAYOUT)),
		render.Subheader("Actions"),
		render.Text("Refresh the data or export a report."),
	}

	hours, temperature := hourlySeries(env.Rand, 15, 30)
	_, humidity := hourlySeries(env.Rand, 40, 80)
	days := int(l.To.Sub(l.From).Hours()/24) + 1

	main = []render.Block{
		render.Title("🎨 Layout & Styling Tutorial"),
		render.Markdown("### Making Your Apps Beautiful and Organized"),

		render.Header("📐 Columns Layout"),
		render.Columns(
			render.Column(render.Subheader("Column 1"), render.Text("This is the first column."), render.Metric("Temperature", "25°C")),
			render.Column(render.Subheader("Column 2"), render.Text("This is the second column."), render.Metric("Humidity", "60%")),
			render.Column(render.Subheader("Column 3"), render.Text("This is the third column."), render.Metric("Wind Speed", "10 km/h")),
		),
		render.Subheader("Columns with Different Widths"),
		render.Columns(
			render.Column(render.Info("This is a wide column (2/3 of the width).")),
			render.Column(render.Success("Narrow column (1/3).")),
		),

		render.Header("📦 Containers"),
		render.ChartBlock(render.Chart{Type: render.ChartLine, Title: "Temperature Over 24 Hours", XLabel: "Hour", YLabel: "°C",
			Series: []render.Series{{Name: "Temperature", X: hours, Y: temperature}}}),
		render.ChartBlock(render.Chart{Type: render.ChartBar, Title: "Humidity Over 24 Hours", XLabel: "Hour", YLabel: "%",
			Series: []render.Series{{Name: "Humidity", X: hours, Y: humidity}}}),

		render.Header("📑 Tabs"),
		render.Tabs(
			render.Tab("📊 Dashboard",
				render.Subheader("Dashboard Overview"),
				render.Columns(
					render.Column(render.MetricDelta("Users", "1,234", "12%")),
					render.Column(render.MetricDelta("Revenue", "$12,345", "8%")),
					render.Column(render.MetricDelta("Orders", "456", "-3%")),
					render.Column(render.MetricDelta("Conversion", "3.2%", "0.5%")),
				),
				render.Metric("Selected Days", fmt.Sprintf("%d", days)),
			),
			render.Tab("📈 Analytics",
				render.Subheader("Analytics"),
				render.ChartBlock(render.Chart{Type: render.ChartArea, Title: "Temperature Trend", XLabel: "Hour",
					Series: []render.Series{{Name: "Temperature", X: hours, Y: temperature}}}),
			),
			render.Tab("⚙️ Settings",
				render.Subheader("App Settings"),
				render.JSON("Current Settings", settings{
					AppName:         l.AppName,
					Description:     l.Description,
					ShowSidebar:     l.ShowSidebar,
					ShowFooter:      l.ShowFooter,
					RefreshInterval: l.RefreshInterval,
				}),
			),
			render.Tab("📚 Documentation",
				render.Subheader("Documentation"),
				render.Markdown("Use **columns** for side by side content, **tabs** for separate views, **expanders** for optional detail and the **sidebar** for controls."),
			),
		),

		render.Header("📂 Expanders"),
		render.Expander("Click to see more details",
			render.Text("Expanders keep optional content out of the way until it is needed."),
		),

		render.Header("🎨 Custom Styling"),
		render.Markdown(fmt.Sprintf("## %s\n%s", l.AppName, l.Description)),
	}

	if l.ShowFooter {
		main = append(main,
			render.Divider(),
			footer("Interactive Features - Learn about forms, file uploads, and caching!"),
		)
	}
	main = append(main, render.Expander("🎯 Challenge: Design Your Dream Dashboard",
		render.Markdown("**Your challenge:** Build a dashboard with a sidebar, at least two columns and a set of tabs."),
	))
	return sidebar, main
}

func handleLayoutStyling(l *session.Layout, ev Event) ([]render.Block, error) {
	switch ev.Name {
	case "set_theme":
		return nil, chooseInto(&l.Theme, Themes, ev)
	case "set_language":
		return nil, chooseInto(&l.Language, Languages, ev)
	case "set_date_range":
		v, err := decode[dateRange](ev)
		if err != nil {
			return nil, err
		}
		from, to, err := v.parse()
		if err != nil {
			return nil, err
		}
		l.From, l.To = from, to
	case "refresh_data":
		return []render.Block{render.Success("Data refreshed!")}, nil
	case "export_report":
		return []render.Block{render.Success("Report exported!")}, nil
	case "save_settings":
		v, err := decode[settings](ev)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSpace(v.AppName)
		if name == "" {
			return nil, appErrors.InvalidInput("App name cannot be empty!")
		}
		if len(name) > auth.MAX_LENGTH_NAME {
			return nil, appErrors.InvalidInput("App name is too long, max %d characters", auth.MAX_LENGTH_NAME)
		}
		if v.RefreshInterval < MIN_REFRESH_INTERVAL || v.RefreshInterval > MAX_REFRESH_INTERVAL {
			return nil, appErrors.InvalidInput("refresh interval must be between %d and %d seconds", MIN_REFRESH_INTERVAL, MAX_REFRESH_INTERVAL)
		}
		l.AppName = name
		l.Description = v.Description
		l.ShowSidebar = v.ShowSidebar
		l.ShowFooter = v.ShowFooter
		l.RefreshInterval = v.RefreshInterval
		return []render.Block{render.Success("Settings saved successfully!")}, nil
	default:
		return nil, unknownEvent(LayoutStyling, ev)
	}
	return nil, nil
}
