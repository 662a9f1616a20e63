package lessons

import (
	"bytes"
	"encoding/json"
	"math/rand/v2"
	"strings"
	"time"

	appErrors "github.com/fatali-fataliyev/lesson_board/customErrors"
	"github.com/fatali-fataliyev/lesson_board/internal/cache"
	"github.com/fatali-fataliyev/lesson_board/internal/render"
	"github.com/fatali-fataliyev/lesson_board/internal/sales"
	"github.com/fatali-fataliyev/lesson_board/internal/session"
	"github.com/fatali-fataliyev/lesson_board/internal/survey"
)

// ID names one lesson.
type ID string

const (
	GettingStarted      ID = "getting_started"
	BasicWidgets        ID = "basic_widgets"
	DataDisplay         ID = "data_display"
	LayoutStyling       ID = "layout_styling"
	InteractiveFeatures ID = "interactive_features"
	RealProjects        ID = "real_projects"
)

var All = []ID{GettingStarted, BasicWidgets, DataDisplay, LayoutStyling, InteractiveFeatures, RealProjects}

func Parse(s string) (ID, error) {
	switch id := ID(strings.ToLower(strings.TrimSpace(s))); id {
	case GettingStarted, BasicWidgets, DataDisplay, LayoutStyling, InteractiveFeatures, RealProjects:
		return id, nil
	}
	return "", appErrors.NotFound("lesson %q does not exist", s)
}

// Event is one user interaction: a widget name and its new value.
type Event struct {
	Name  string          `json:"event"`
	Value json.RawMessage `json:"value,omitempty"`
}

// Cache memoises the deterministic data sets and the expensive calculation
// across sessions.
type Cache struct {
	Squares  *cache.Memo[int, int64]
	Sales    *cache.Memo[uint64, []sales.Record]
	Students *cache.Memo[uint64, []sales.Student]
	Survey   *cache.Memo[uint64, []survey.Response]
}

func NewCache() *Cache {
	return &Cache{
		Squares:  cache.NewMemo[int, int64](),
		Sales:    cache.NewMemo[uint64, []sales.Record](),
		Students: cache.NewMemo[uint64, []sales.Student](),
		Survey:   cache.NewMemo[uint64, []survey.Response](),
	}
}

// Env carries what a handler may not take from globals.
type Env struct {
	Now   time.Time
	Rand  *rand.Rand
	Cache *Cache
}

type Summary struct {
	ID     ID                `json:"id"`
	Number int               `json:"number"`
	Config render.PageConfig `json:"config"`
}

func List() []Summary {
	out := make([]Summary, len(All))
	for i, id := range All {
		out[i] = Summary{ID: id, Number: i + 1, Config: Config(id)}
	}
	return out
}

func Config(id ID) render.PageConfig {
	switch id {
	case GettingStarted:
		return render.PageConfig{Title: "My First Streamlit App", Icon: "🚀", Layout: render.LayoutWide, SidebarState: render.SidebarAuto}
	case BasicWidgets:
		return render.PageConfig{Title: "Streamlit Widgets Tutorial", Icon: "🎛️", Layout: render.LayoutWide, SidebarState: render.SidebarAuto}
	case DataDisplay:
		return render.PageConfig{Title: "Data Display Tutorial", Icon: "📊", Layout: render.LayoutWide, SidebarState: render.SidebarAuto}
	case LayoutStyling:
		return render.PageConfig{Title: "Layout & Styling Tutorial", Icon: "🎨", Layout: render.LayoutWide, SidebarState: render.SidebarExpanded}
	case InteractiveFeatures:
		return render.PageConfig{Title: "Interactive Features Tutorial", Icon: "⚡", Layout: render.LayoutWide, SidebarState: render.SidebarAuto}
	case RealProjects:
		return render.PageConfig{Title: "Real Projects Tutorial", Icon: "🚀", Layout: render.LayoutWide, SidebarState: render.SidebarAuto}
	}
	return render.PageConfig{}
}

// Render describes the page of lesson id for the given state.
func Render(env Env, st session.State, id ID) (render.Page, error) {
	page := render.Page{Config: Config(id)}
	var err error
	switch id {
	case GettingStarted:
		page.Sidebar, page.Main = renderGettingStarted(env)
	case BasicWidgets:
		page.Main = renderBasicWidgets(st.Widgets)
	case DataDisplay:
		page.Sidebar, page.Main = renderDataDisplay(env, st.Explorer)
	case LayoutStyling:
		page.Sidebar, page.Main = renderLayoutStyling(env, st.Layout)
		if !st.Layout.ShowSidebar {
			page.Config.SidebarState = render.SidebarCollapsed
		}
	case InteractiveFeatures:
		page.Main = renderInteractive(env, st.Interactive)
	case RealProjects:
		page.Sidebar, page.Main, err = renderRealProjects(env, st.Projects)
	default:
		return render.Page{}, appErrors.NotFound("lesson %q does not exist", id)
	}
	if err != nil {
		return render.Page{}, err
	}
	return page, nil
}

// Handle applies ev to st and returns the one-shot feedback it produced. On
// error st may be partly modified; callers run it on a copy.
func Handle(env Env, st *session.State, id ID, ev Event) ([]render.Block, error) {
	switch id {
	case GettingStarted:
		return handleGettingStarted(ev)
	case BasicWidgets:
		return handleBasicWidgets(env, &st.Widgets, ev)
	case DataDisplay:
		return handleDataDisplay(&st.Explorer, ev)
	case LayoutStyling:
		return handleLayoutStyling(&st.Layout, ev)
	case InteractiveFeatures:
		return handleInteractive(env, &st.Interactive, ev)
	case RealProjects:
		return handleRealProjects(env, &st.Projects, ev)
	}
	return nil, appErrors.NotFound("lesson %q does not exist", id)
}

func unknownEvent(id ID, ev Event) error {
	return appErrors.InvalidInput("lesson %s has no event %q", id, ev.Name)
}

// decode reads the event value into T. A missing value decodes to T's zero
// value; unknown fields are rejected.
func decode[T any](ev Event) (T, error) {
	var v T
	if len(bytes.TrimSpace(ev.Value)) == 0 {
		return v, nil
	}
	dec := json.NewDecoder(bytes.NewReader(ev.Value))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, appErrors.InvalidInput("invalid value for event %q: %v", ev.Name, err)
	}
	return v, nil
}

func salesData(env Env) []sales.Record {
	data, _ := env.Cache.Sales.Get(42, sales.Generate)
	return data
}

func studentData(env Env) []sales.Student {
	data, _ := env.Cache.Students.Get(42, sales.Students)
	return data
}

func footer(next string) render.Block {
	return render.Markdown("**Next lesson:** " + next)
}

func exportHref(name Export, format string) string {
	return "/api/export/" + string(name) + "?format=" + format
}
