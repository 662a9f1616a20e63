package lessons

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	appErrors "github.com/fatali-fataliyev/lesson_board/customErrors"
	"github.com/fatali-fataliyev/lesson_board/internal/dataset"
	"github.com/fatali-fataliyev/lesson_board/internal/render"
	"github.com/fatali-fataliyev/lesson_board/internal/sales"
	"github.com/fatali-fataliyev/lesson_board/internal/session"
)

const MOVING_AVERAGE_WINDOW = 7

type dateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (d dateRange) parse() (time.Time, time.Time, error) {
	from, err := time.Parse(sales.DATE_LAYOUT, d.From)
	if err != nil {
		return time.Time{}, time.Time{}, appErrors.InvalidInput("invalid start date %q, expected YYYY-MM-DD", d.From)
	}
	to, err := time.Parse(sales.DATE_LAYOUT, d.To)
	if err != nil {
		return time.Time{}, time.Time{}, appErrors.InvalidInput("invalid end date %q, expected YYYY-MM-DD", d.To)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, appErrors.InvalidInput("end date %s is before start date %s", d.To, d.From)
	}
	return from, to, nil
}

// commas formats n with thousands separators.
func commas(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func gradesTable(students []sales.Student) *dataset.Table {
	t := sales.StudentTable(students)
	t.Columns = append(t.Columns, "Average")
	for i, s := range students {
		total := 0
		for _, subject := range sales.Subjects {
			total += s.Grades[subject]
		}
		t.Rows[i] = append(t.Rows[i], fmt.Sprintf("%.2f", float64(total)/float64(len(sales.Subjects))))
	}
	return t
}

func salesByRegionSeries(records []sales.Record) []render.Series {
	var out []render.Series
	for _, region := range sales.Regions {
		subset := sales.Filter(records, []string{region}, sales.Start, sales.Start.AddDate(0, 0, sales.DAYS))
		if len(subset) == 0 {
			continue
		}
		out = append(out, render.Series{
			Name: region,
			X:    sales.Dates(subset),
			Y:    sales.Column(subset, func(r sales.Record) int { return r.Sales }),
		})
	}
	return out
}

func totalsSeries(name string, totals []sales.Total, value func(sales.Total) float64) render.Series {
	s := render.Series{Name: name}
	for _, t := range totals {
		s.X = append(s.X, t.Name)
		s.Y = append(s.Y, value(t))
	}
	return s
}

func renderDataDisplay(env Env, ex session.Explorer) (sidebar, main []render.Block) {
	data := salesData(env)
	students := studentData(env)
	table := sales.Table(data)
	grades := gradesTable(students)

	sidebar = []render.Block{
		render.Header("Filters"),
		render.JSON("Selected Regions", ex.Regions),
		render.Text("Date range: %s to %s", ex.From.Format(sales.DATE_LAYOUT), ex.To.Format(sales.DATE_LAYOUT)),
	}

	names := make([]string, len(students))
	for i, s := range students {
		names[i] = s.Name
	}
	subjectSeries := make([]render.Series, 0, len(sales.Subjects))
	for _, subject := range sales.Subjects {
		ys := make([]float64, len(students))
		for i, s := range students {
			ys[i] = float64(s.Grades[subject])
		}
		subjectSeries = append(subjectSeries, render.Series{Name: subject, X: names, Y: ys})
	}

	first30 := data[:min(30, len(data))]
	regionTotals := sales.ByRegion(data)

	main = []render.Block{
		render.Title("📊 Data Display Tutorial"),
		render.Markdown("### Showing Data Beautifully"),

		render.Header("📋 Tables and DataFrames"),
		render.Markdown("**Sales Data (first 10 rows):**"),
		render.Table(table.Head(10)),
		render.Markdown("**Student Grades (interactive):**"),
		render.Table(grades),

		render.Header("📊 Built-in Charts"),
		render.ChartBlock(render.Chart{Type: render.ChartLine, Title: "Sales (first 30 days)", XLabel: "Date", YLabel: "Sales",
			Series: []render.Series{{Name: "Sales", X: sales.Dates(first30), Y: sales.Column(first30, func(r sales.Record) int { return r.Sales })}}}),
		render.ChartBlock(render.Chart{Type: render.ChartBar, Title: "Grades by Student", XLabel: "Student", YLabel: "Score", Series: subjectSeries}),
		render.ChartBlock(render.Chart{Type: render.ChartArea, Title: "Sales and Profit", XLabel: "Date", Series: []render.Series{
			{Name: "Sales", X: sales.Dates(data), Y: sales.Column(data, func(r sales.Record) int { return r.Sales })},
			{Name: "Profit", X: sales.Dates(data), Y: sales.Column(data, func(r sales.Record) int { return r.Profit })},
		}}),

		render.Header("🎯 Interactive Charts"),
		render.ChartBlock(render.Chart{Type: render.ChartLine, Title: "Sales Over Time", XLabel: "Date", YLabel: "Sales", Series: salesByRegionSeries(data)}),
		render.ChartBlock(render.Chart{Type: render.ChartScatter, Title: "Math vs Science Scores", XLabel: "Math", YLabel: "Science", Series: []render.Series{
			{Name: "Students", X: gradeLabels(students, "Math"), Y: gradeValues(students, "Science")},
		}}),
		render.ChartBlock(render.Chart{Type: render.ChartBar, Title: "Total Sales by Region", XLabel: "Region", YLabel: "Sales",
			Series: []render.Series{totalsSeries("Sales", regionTotals, func(t sales.Total) float64 { return float64(t.Sales) })}}),

		render.Header("🎨 Statistical Charts"),
		render.ChartBlock(render.Chart{Type: render.ChartHistogram, Title: "Math Scores Distribution", XLabel: "Score", YLabel: "Frequency",
			Series: []render.Series{{Name: "Math", Y: gradeValues(students, "Math")}}}),
		subjectCorrelation(students),
		render.ChartBlock(regionCountPie(data)),
	}

	main = append(main, explorerBlocks(data, ex)...)

	main = append(main,
		render.Header("🚀 Advanced Visualizations"),
		render.ChartBlock(salesSunburst(data)),

		render.Header("💾 Data Export"),
		render.DownloadLink(render.Download{
			Label:    "Download Sales Data as CSV",
			FileName: dataset.FormatCSV.FileName("sales_data"),
			MIME:     dataset.FormatCSV.MIME(),
			Href:     exportHref(ExportSales, "csv"),
		}),

		render.Header("🎯 Interactive Dashboard"),
		dashboardTabs(data),

		render.Divider(),
		footer("Layout and Styling - Learn to organize your app beautifully!"),
		render.Expander("🎯 Challenge: Create Your Own Data Dashboard",
			render.Markdown("**Your challenge:** Create a dashboard that displays data in multiple formats. Use at least 3 different chart types and add interactive filters!"),
		),
	)
	return sidebar, main
}

func gradeValues(students []sales.Student, subject string) []float64 {
	out := make([]float64, len(students))
	for i, s := range students {
		out[i] = float64(s.Grades[subject])
	}
	return out
}

func gradeLabels(students []sales.Student, subject string) []string {
	out := make([]string, len(students))
	for i, s := range students {
		out[i] = strconv.Itoa(s.Grades[subject])
	}
	return out
}

func subjectCorrelation(students []sales.Student) render.Block {
	matrix := make([][]float64, len(sales.Subjects))
	for i, a := range sales.Subjects {
		matrix[i] = make([]float64, len(sales.Subjects))
		for j, b := range sales.Subjects {
			c := sales.Correlation(gradeValues(students, a), gradeValues(students, b))
			if math.IsNaN(c) {
				// JSON has no NaN; an undefined coefficient shows as no correlation.
				c = 0
			}
			matrix[i][j] = c
		}
	}
	return render.ChartBlock(render.Chart{
		Type:   render.ChartHeatmap,
		Title:  "Correlation Matrix",
		Series: []render.Series{{Name: "rows", X: sales.Subjects}, {Name: "columns", X: sales.Subjects}},
		Matrix: matrix,
	})
}

func regionCountPie(data []sales.Record) render.Chart {
	s := render.Series{Name: "Records"}
	for _, region := range sales.Regions {
		n := 0
		for _, r := range data {
			if r.Region == region {
				n++
			}
		}
		s.X = append(s.X, region)
		s.Y = append(s.Y, float64(n))
	}
	return render.Chart{Type: render.ChartPie, Title: "Sales by Region", Series: []render.Series{s}}
}

// salesSunburst has one ring of regions and one of region/product pairs.
func salesSunburst(data []sales.Record) render.Chart {
	s := render.Series{Name: "Sales"}
	for _, t := range sales.ByRegion(data) {
		s.X = append(s.X, t.Name)
		s.Y = append(s.Y, float64(t.Sales))
		s.Parents = append(s.Parents, "")
	}
	for _, t := range sales.ByRegionProduct(data) {
		region, _, _ := strings.Cut(t.Name, "/")
		s.X = append(s.X, t.Name)
		s.Y = append(s.Y, float64(t.Sales))
		s.Parents = append(s.Parents, region)
	}
	return render.Chart{Type: render.ChartSunburst, Title: "Sales by Region and Product", Series: []render.Series{s}}
}

func explorerBlocks(data []sales.Record, ex session.Explorer) []render.Block {
	filtered := sales.Filter(data, ex.Regions, ex.From, ex.To)
	sum := sales.Summarize(filtered)
	return []render.Block{
		render.Header("🔍 Interactive Data Exploration"),
		render.Subheader("Filtered Data"),
		render.Text("Showing %d records", sum.Records),
		render.Columns(
			render.Column(render.Metric("Total Sales", "$"+commas(sum.TotalSales))),
			render.Column(render.Metric("Average Sales", fmt.Sprintf("$%.0f", sum.AverageSales))),
			render.Column(render.Metric("Total Profit", "$"+commas(sum.TotalProfit))),
			render.Column(render.Metric("Profit Margin", fmt.Sprintf("%.1f%%", sum.ProfitMargin))),
		),
		render.ChartBlock(render.Chart{Type: render.ChartLine, Title: "Filtered Sales Data", XLabel: "Date", YLabel: "Sales", Series: salesByRegionSeries(filtered)}),
	}
}

func dashboardTabs(data []sales.Record) render.Block {
	sum := sales.Summarize(data)
	dates := sales.Dates(data)
	values := sales.Column(data, func(r sales.Record) int { return r.Sales })
	profits := sales.Column(data, func(r sales.Record) int { return r.Profit })

	var maDates []string
	if len(dates) >= MOVING_AVERAGE_WINDOW {
		maDates = dates[MOVING_AVERAGE_WINDOW-1:]
	}

	return render.Tabs(
		render.Tab("📊 Overview",
			render.Subheader("Sales Overview"),
			render.Columns(
				render.Column(render.Metric("Total Sales", "$"+commas(sum.TotalSales))),
				render.Column(render.Metric("Average Daily Sales", fmt.Sprintf("$%.0f", sum.AverageSales))),
				render.Column(render.Metric("Best Day", "$"+commas(sum.BestDay))),
			),
			render.ChartBlock(render.Chart{Type: render.ChartPie, Title: "Sales Distribution by Region",
				Series: []render.Series{totalsSeries("Sales", sales.ByRegion(data), func(t sales.Total) float64 { return float64(t.Sales) })}}),
		),
		render.Tab("📈 Trends",
			render.Subheader("Sales Trends"),
			render.ChartBlock(render.Chart{Type: render.ChartLine, Title: "Sales Trends with Moving Average", XLabel: "Date", Series: []render.Series{
				{Name: "Daily Sales", X: dates, Y: values},
				{Name: "7-Day Moving Average", X: maDates, Y: sales.MovingAverage(values, MOVING_AVERAGE_WINDOW)},
			}}),
		),
		render.Tab("🎯 Analysis",
			render.Subheader("Performance Analysis"),
			render.Markdown(fmt.Sprintf("Correlation coefficient: **%.3f**", sales.Correlation(values, profits))),
			render.ChartBlock(render.Chart{Type: render.ChartBar, Title: "Profit Margin by Product", XLabel: "Product", YLabel: "Profit Margin (%)",
				Series: []render.Series{totalsSeries("Profit_Margin", sales.ByProduct(data), sales.Total.Margin)}}),
		),
	)
}

func handleDataDisplay(ex *session.Explorer, ev Event) ([]render.Block, error) {
	switch ev.Name {
	case "set_regions":
		regions, err := decode[[]string](ev)
		if err != nil {
			return nil, err
		}
		selected := []string{}
		for _, region := range sales.Regions {
			if slices.Contains(regions, region) {
				selected = append(selected, region)
			}
		}
		if len(selected) != len(slices.Compact(slices.Sorted(slices.Values(regions)))) {
			return nil, appErrors.InvalidInput("regions must be among %s", strings.Join(sales.Regions, ", "))
		}
		ex.Regions = selected
	case "set_date_range":
		v, err := decode[dateRange](ev)
		if err != nil {
			return nil, err
		}
		from, to, err := v.parse()
		if err != nil {
			return nil, err
		}
		first, last := sales.Start, sales.Start.AddDate(0, 0, sales.DAYS-1)
		if from.Before(first) || to.After(last) {
			return nil, appErrors.InvalidInput("date range must lie within %s and %s", first.Format(sales.DATE_LAYOUT), last.Format(sales.DATE_LAYOUT))
		}
		ex.From, ex.To = from, to
	default:
		return nil, unknownEvent(DataDisplay, ev)
	}
	return nil, nil
}
