package lessons

import (
	"fmt"
	"math"
	"slices"
	"strings"

	appErrors "github.com/fatali-fataliyev/lesson_board/customErrors"
	"github.com/fatali-fataliyev/lesson_board/internal/auth"
	"github.com/fatali-fataliyev/lesson_board/internal/dashboard"
	"github.com/fatali-fataliyev/lesson_board/internal/dataset"
	"github.com/fatali-fataliyev/lesson_board/internal/render"
	"github.com/fatali-fataliyev/lesson_board/internal/session"
	"github.com/fatali-fataliyev/lesson_board/internal/upload"
)

const (
	MIN_CALC_INPUT = 1
	MAX_CALC_INPUT = 1000
	PREVIEW_ROWS   = 5
)

var ChartTypes = []string{"Line", "Bar", "Scatter", "Histogram"}

type processRequest struct {
	Columns      []string `json:"columns"`
	FilterColumn string   `json:"filter_column"`
	FilterValue  *string  `json:"filter_value"`
	FilterMin    *float64 `json:"filter_min"`
	FilterMax    *float64 `json:"filter_max"`
	SortBy       string   `json:"sort_by"`
	Ascending    *bool    `json:"ascending"`
	AggColumn    string   `json:"agg_column"`
	AggFunc      string   `json:"agg_func"`
}

type chartRequest struct {
	ChartType string `json:"chart_type"`
	X         string `json:"x"`
	Y         string `json:"y"`
	Color     string `json:"color"`
}

// SampleTable is the five-person data set offered for download.
func SampleTable() *dataset.Table {
	t := dataset.New("Name", "Age", "City", "Salary")
	t.Append("Alice", "25", "New York", "50000")
	t.Append("Bob", "30", "London", "60000")
	t.Append("Charlie", "35", "Paris", "70000")
	t.Append("Diana", "28", "Tokyo", "55000")
	t.Append("Eve", "32", "Sydney", "65000")
	return t
}

// sumOfSquares adds i² for i in [0, n).
func sumOfSquares(n int) int64 {
	var total int64
	for i := range int64(n) {
		total += i * i
	}
	return total
}

func renderInteractive(env Env, in session.Interactive) []render.Block {
	main := []render.Block{
		render.Title("⚡ Interactive Features Tutorial"),
		render.Markdown("### Making Your Apps Smart and Responsive"),

		render.Header("💾 Session State"),
		render.Columns(
			render.Column(render.Metric("Counter", fmt.Sprintf("%d", in.Counter))),
			render.Column(render.Text("Increment or reset the counter.")),
		),
		render.Subheader("User Profile"),
	}
	if in.Profile != nil && in.Profile.Name != "" {
		main = append(main, render.Markdown(fmt.Sprintf("**Saved:** %s, %d years old (at %s)",
			in.Profile.Name, in.Profile.Age, in.Profile.SavedAt.Format("2006-01-02 15:04:05"))))
	} else {
		main = append(main, render.Info("No user data saved yet."))
	}

	main = append(main, render.Header("📁 File Uploads"))
	main = append(main, previewBlocks(in.Preview)...)
	main = append(main,
		render.Subheader("Download Sample Data"),
		render.Table(SampleTable()),
		render.Columns(
			render.Column(sampleDownload(dataset.FormatCSV, "Download CSV")),
			render.Column(sampleDownload(dataset.FormatJSON, "Download JSON")),
			render.Column(sampleDownload(dataset.FormatXLSX, "Download Excel")),
		),

		render.Header("📝 Forms"),
		render.Subheader("User Registration Form"),
	)
	if p := in.Profile; p != nil && p.Email != "" {
		main = append(main, render.JSON("Registration Data", p))
	} else {
		main = append(main, render.Text("Fill in the form and submit it to register."))
	}

	main = append(main,
		render.Header("📊 Progress Bars and Spinners"),
		render.Progress(in.Progress, fmt.Sprintf("Progress: %d%%", in.Progress)),

		render.Header("🚀 Caching for Performance"),
		render.Text("Pick a number between %d and %d and calculate the sum of squares below it.", MIN_CALC_INPUT, MAX_CALC_INPUT),
		render.Metric("Input", fmt.Sprintf("%d", in.CalcInput)),

		render.Header("⏰ Real-time Updates"),
		render.Markdown("**Current time:** "+env.Now.Format("15:04:05")),

		render.Header("🔄 Data Processing Pipeline"),
	)
	main = append(main, processingBlocks(in)...)

	main = append(main, render.Header("📈 Interactive Data Analysis"))
	if in.Analysis != nil {
		main = append(main,
			render.Text("Data shape: %s", in.Analysis.Shape()),
			render.Table(in.Analysis.Head(PREVIEW_ROWS)),
			render.JSON("Chart Types", ChartTypes),
		)
	} else {
		main = append(main, render.Info("Upload a CSV file to start analyzing."))
	}

	main = append(main, render.Header("📊 Real-time Dashboard"))
	main = append(main, dashboardBlocks(in.Dashboard)...)

	main = append(main,
		render.Divider(),
		footer("Real Projects - Build complete applications!"),
		render.Expander("🎯 Challenge: Build an Interactive App",
			render.Markdown("**Your challenge:** Combine session state, a form and caching into one small app."),
		),
	)
	return main
}

func sampleDownload(f dataset.Format, label string) render.Block {
	return render.DownloadLink(render.Download{
		Label:    label,
		FileName: f.FileName("sample_data"),
		MIME:     f.MIME(),
		Href:     exportHref(ExportSample, string(f)),
	})
}

func previewBlocks(res *upload.Result) []render.Block {
	if res == nil {
		return []render.Block{render.Info("Upload a CSV, TXT, JSON or image file to preview it.")}
	}
	out := []render.Block{render.Success(fmt.Sprintf("File %s uploaded successfully!", res.Name))}
	switch res.Kind {
	case upload.KindCSV:
		out = append(out,
			render.Text("Data shape: %s", res.Table.Shape()),
			render.Table(res.Table),
		)
	case upload.KindText:
		out = append(out, render.Code("text", res.Text))
	case upload.KindJSON:
		out = append(out, render.JSON(res.Name, res.JSON))
	case upload.KindImage:
		out = append(out, render.ImageInfo(res.Image))
	}
	return out
}

func processingBlocks(in session.Interactive) []render.Block {
	if in.Processing == nil {
		return []render.Block{render.Info("Upload a CSV file to start processing.")}
	}
	out := []render.Block{
		render.Subheader("Original Data"),
		render.Text("Shape: %s", in.Processing.Shape()),
		render.Table(in.Processing.Head(PREVIEW_ROWS)),
	}
	if in.Processed != nil {
		out = append(out,
			render.Subheader("Processed Data"),
			render.Text("Shape: %s", in.Processed.Shape()),
			render.Table(in.Processed),
			render.DownloadLink(render.Download{
				Label:    "Download Processed Data",
				FileName: dataset.FormatCSV.FileName("processed_data"),
				MIME:     dataset.FormatCSV.MIME(),
				Href:     exportHref(ExportProcessed, "csv"),
			}),
		)
	}
	return out
}

func dashboardBlocks(points []dashboard.Point) []render.Block {
	if len(points) == 0 {
		return []render.Block{render.Info("Add data points to see the live dashboard.")}
	}
	stats := dashboard.Summarize(points)
	series := make([]render.Series, 0, len(dashboard.Categories))
	for _, c := range dashboard.Categories {
		s := render.Series{Name: c}
		for _, p := range points {
			if p.Category == c {
				s.X = append(s.X, p.Timestamp.Format("15:04:05"))
				s.Y = append(s.Y, float64(p.Value))
			}
		}
		if len(s.X) > 0 {
			series = append(series, s)
		}
	}
	return []render.Block{
		render.ChartBlock(render.Chart{Type: render.ChartLine, Title: "Real-time Data", XLabel: "Time", YLabel: "Value", Series: series}),
		render.Columns(
			render.Column(render.Metric("Total Points", fmt.Sprintf("%d", stats.Count))),
			render.Column(render.Metric("Average Value", fmt.Sprintf("%.1f", stats.Average))),
			render.Column(render.Metric("Latest Value", fmt.Sprintf("%d", stats.Latest))),
		),
	}
}

func handleInteractive(env Env, in *session.Interactive, ev Event) ([]render.Block, error) {
	switch ev.Name {
	case "increment":
		in.Counter++
	case "reset":
		in.Counter = 0

	case "save_user_data":
		v, err := decode[auth.ProfileRequest](ev)
		if err != nil {
			return nil, err
		}
		p, err := auth.SaveProfile(v, env.Now)
		if err != nil {
			return nil, err
		}
		in.Profile = &p
		return []render.Block{render.Success("Data saved!")}, nil

	case "register":
		v, err := decode[auth.Registration](ev)
		if err != nil {
			return nil, err
		}
		p, err := auth.Register(v, env.Now)
		if err != nil {
			return nil, err
		}
		in.Profile = &p
		return []render.Block{
			render.Success("Registration successful! 🎉"),
			render.Balloons(),
		}, nil

	case "set_progress":
		v, err := decode[int](ev)
		if err != nil {
			return nil, err
		}
		if v < 0 || v > 100 {
			return nil, appErrors.InvalidInput("progress must be between 0 and 100")
		}
		in.Progress = v
	case "start_progress":
		return []render.Block{render.Progress(100, "Progress: 100%"), render.Success("Task completed successfully!")}, nil
	case "show_spinner":
		return []render.Block{render.Success("Done!")}, nil

	case "calculate":
		n, err := decode[int](ev)
		if err != nil {
			return nil, err
		}
		if n < MIN_CALC_INPUT || n > MAX_CALC_INPUT {
			return nil, appErrors.InvalidInput("number must be between %d and %d", MIN_CALC_INPUT, MAX_CALC_INPUT)
		}
		in.CalcInput = n
		result, hit := env.Cache.Squares.Get(n, sumOfSquares)
		source := "calculated"
		if hit {
			source = "cached"
		}
		return []render.Block{
			render.Success(fmt.Sprintf("Result: %d", result)),
			render.Info("This result was " + source + "."),
		}, nil

	case "update_time":
		return []render.Block{render.Markdown("**Current time:** " + env.Now.Format("15:04:05"))}, nil

	case "process":
		v, err := decode[processRequest](ev)
		if err != nil {
			return nil, err
		}
		if in.Processing == nil {
			return nil, appErrors.InvalidInput("upload a CSV file for processing first")
		}
		processed, agg, err := process(in.Processing, v)
		if err != nil {
			return nil, err
		}
		in.Processed = processed
		feedback := []render.Block{render.Success(fmt.Sprintf("Processed data: %s", processed.Shape()))}
		if agg != nil {
			feedback = append(feedback, render.Metric(fmt.Sprintf("%s of %s", v.AggFunc, v.AggColumn), formatAggregate(*agg)))
		}
		return feedback, nil

	case "generate_chart":
		v, err := decode[chartRequest](ev)
		if err != nil {
			return nil, err
		}
		if in.Analysis == nil {
			return nil, appErrors.InvalidInput("upload a CSV file for analysis first")
		}
		chart, err := analysisChart(in.Analysis, v)
		if err != nil {
			return nil, err
		}
		return []render.Block{render.ChartBlock(chart)}, nil

	case "add_data_point":
		in.Dashboard = dashboard.Append(in.Dashboard, dashboard.RandomPoint(env.Rand, env.Now), dashboard.Limit)

	default:
		return nil, unknownEvent(InteractiveFeatures, ev)
	}
	return nil, nil
}

func formatAggregate(f float64) string {
	if math.IsNaN(f) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", f)
}

// process filters, sorts and aggregates t before selecting columns, so the
// chosen columns never hide the ones the other steps refer to.
func process(t *dataset.Table, req processRequest) (*dataset.Table, *float64, error) {
	out := t.Clone()
	var err error

	if req.FilterColumn != "" {
		switch {
		case req.FilterValue != nil:
			out, err = out.FilterEquals(req.FilterColumn, *req.FilterValue)
		case req.FilterMin != nil || req.FilterMax != nil:
			if !out.IsNumeric(req.FilterColumn) {
				return nil, nil, appErrors.InvalidInput("column %q is not numeric", req.FilterColumn)
			}
			values, ferr := out.Floats(req.FilterColumn)
			if ferr != nil {
				return nil, nil, ferr
			}
			lo, hi := slices.Min(values), slices.Max(values)
			if req.FilterMin != nil {
				lo = *req.FilterMin
			}
			if req.FilterMax != nil {
				hi = *req.FilterMax
			}
			out, err = out.FilterRange(req.FilterColumn, lo, hi)
		default:
			return nil, nil, appErrors.InvalidInput("filter on %q needs a value or a range", req.FilterColumn)
		}
		if err != nil {
			return nil, nil, err
		}
	}

	if req.SortBy != "" {
		ascending := req.Ascending == nil || *req.Ascending
		if out, err = out.Sort(req.SortBy, ascending); err != nil {
			return nil, nil, err
		}
	}

	var agg *float64
	if req.AggColumn != "" {
		fn, err := dataset.ParseAggFunc(req.AggFunc)
		if err != nil {
			return nil, nil, err
		}
		v, err := out.Aggregate(req.AggColumn, fn)
		if err != nil {
			return nil, nil, err
		}
		agg = &v
	}

	if out, err = out.Select(req.Columns...); err != nil {
		return nil, nil, err
	}
	return out, agg, nil
}

func analysisChart(t *dataset.Table, req chartRequest) (render.Chart, error) {
	if !slices.Contains(ChartTypes, req.ChartType) {
		return render.Chart{}, appErrors.InvalidInput("chart type must be one of %s", strings.Join(ChartTypes, ", "))
	}
	xs, err := t.Column(req.X)
	if err != nil {
		return render.Chart{}, err
	}

	if req.ChartType == "Histogram" {
		values, err := t.Floats(req.X)
		if err != nil {
			return render.Chart{}, err
		}
		return render.Chart{Type: render.ChartHistogram, Title: "Histogram of " + req.X, XLabel: req.X,
			Series: []render.Series{{Name: req.X, Y: values}}}, nil
	}

	ys, err := t.Column(req.Y)
	if err != nil {
		return render.Chart{}, err
	}
	if !t.IsNumeric(req.Y) {
		return render.Chart{}, appErrors.InvalidInput("column %q is not numeric", req.Y)
	}

	var groups []string
	if req.Color != "" {
		if groups, err = t.Column(req.Color); err != nil {
			return render.Chart{}, err
		}
	}

	var series []render.Series
	index := map[string]int{}
	for i := range xs {
		y, ok := parseCell(ys[i])
		if !ok {
			continue
		}
		name := req.Y
		if groups != nil {
			name = groups[i]
		}
		j, seen := index[name]
		if !seen {
			j = len(series)
			index[name] = j
			series = append(series, render.Series{Name: name})
		}
		series[j].X = append(series[j].X, xs[i])
		series[j].Y = append(series[j].Y, y)
	}

	types := map[string]render.ChartType{"Line": render.ChartLine, "Bar": render.ChartBar, "Scatter": render.ChartScatter}
	return render.Chart{
		Type:   types[req.ChartType],
		Title:  fmt.Sprintf("%s vs %s", req.Y, req.X),
		XLabel: req.X,
		YLabel: req.Y,
		Series: series,
	}, nil
}

func parseCell(s string) (float64, bool) {
	return dataset.ParseNumber(s)
}
