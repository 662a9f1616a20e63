package render

import "github.com/fatali-fataliyev/lesson_board/internal/dataset"

type Layout string

const (
	LayoutWide     Layout = "wide"
	LayoutCentered Layout = "centered"
)

type SidebarState string

const (
	SidebarAuto      SidebarState = "auto"
	SidebarExpanded  SidebarState = "expanded"
	SidebarCollapsed SidebarState = "collapsed"
)

type PageConfig struct {
	Title        string       `json:"title"`
	Icon         string       `json:"icon"`
	Layout       Layout       `json:"layout"`
	SidebarState SidebarState `json:"sidebar_state"`
}

// Page is what a lesson returns instead of drawing: the client renders it.
type Page struct {
	Config   PageConfig `json:"config"`
	Sidebar  []Block    `json:"sidebar,omitempty"`
	Main     []Block    `json:"main"`
	Feedback []Block    `json:"feedback,omitempty"`
}

type Kind string

const (
	KindTitle     Kind = "title"
	KindHeader    Kind = "header"
	KindSubheader Kind = "subheader"
	KindMarkdown  Kind = "markdown"
	KindText      Kind = "text"
	KindCode      Kind = "code"
	KindMessage   Kind = "message"
	KindMetric    Kind = "metric"
	KindTable     Kind = "table"
	KindChart     Kind = "chart"
	KindJSON      Kind = "json"
	KindProgress  Kind = "progress"
	KindImageInfo Kind = "image_info"
	KindSwatch    Kind = "swatch"
	KindDownload  Kind = "download"
	KindBalloons  Kind = "balloons"
	KindDivider   Kind = "divider"
	KindColumns   Kind = "columns"
	KindColumn    Kind = "column"
	KindTab       Kind = "tab"
	KindTabs      Kind = "tabs"
	KindExpander  Kind = "expander"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Block struct {
	Kind     Kind           `json:"kind"`
	Text     string         `json:"text,omitempty"`
	Level    Level          `json:"level,omitempty"`
	Label    string         `json:"label,omitempty"`
	Value    string         `json:"value,omitempty"`
	Delta    string         `json:"delta,omitempty"`
	Language string         `json:"language,omitempty"`
	Percent  *int           `json:"percent,omitempty"`
	Table    *dataset.Table `json:"table,omitempty"`
	Chart    *Chart         `json:"chart,omitempty"`
	Data     any            `json:"data,omitempty"`
	Download *Download      `json:"download,omitempty"`
	Children []Block        `json:"children,omitempty"`
}

type ChartType string

const (
	ChartLine      ChartType = "line"
	ChartBar       ChartType = "bar"
	ChartArea      ChartType = "area"
	ChartPie       ChartType = "pie"
	ChartScatter   ChartType = "scatter"
	ChartHistogram ChartType = "histogram"
	ChartHeatmap   ChartType = "heatmap"
	ChartSunburst  ChartType = "sunburst"
)

type Series struct {
	Name    string    `json:"name,omitempty"`
	X       []string  `json:"x"`
	Y       []float64 `json:"y,omitempty"`
	Parents []string  `json:"parents,omitempty"`
}

type Chart struct {
	Type   ChartType `json:"type"`
	Title  string    `json:"title,omitempty"`
	XLabel string    `json:"x_label,omitempty"`
	YLabel string    `json:"y_label,omitempty"`
	Series []Series  `json:"series"`
	// Matrix holds heatmap cells as Matrix[row][col], rows labelled by
	// Series[0].X and columns by Series[1].X.
	Matrix [][]float64 `json:"matrix,omitempty"`
}

type Download struct {
	Label    string `json:"label"`
	FileName string `json:"file_name"`
	MIME     string `json:"mime"`
	Href     string `json:"href"`
}
