package render

import (
	"fmt"

	"github.com/fatali-fataliyev/lesson_board/internal/dataset"
)

func Title(text string) Block     { return Block{Kind: KindTitle, Text: text} }
func Header(text string) Block    { return Block{Kind: KindHeader, Text: text} }
func Subheader(text string) Block { return Block{Kind: KindSubheader, Text: text} }
func Markdown(text string) Block  { return Block{Kind: KindMarkdown, Text: text} }
func Divider() Block              { return Block{Kind: KindDivider} }
func Balloons() Block             { return Block{Kind: KindBalloons} }

func Text(format string, args ...any) Block {
	if len(args) == 0 {
		return Block{Kind: KindText, Text: format}
	}
	return Block{Kind: KindText, Text: fmt.Sprintf(format, args...)}
}

func Code(language, source string) Block {
	return Block{Kind: KindCode, Language: language, Text: source}
}

func Message(level Level, text string) Block {
	return Block{Kind: KindMessage, Level: level, Text: text}
}

func Success(text string) Block { return Message(LevelSuccess, text) }
func Info(text string) Block    { return Message(LevelInfo, text) }
func Warning(text string) Block { return Message(LevelWarning, text) }
func Error(text string) Block   { return Message(LevelError, text) }

func Metric(label, value string) Block {
	return Block{Kind: KindMetric, Label: label, Value: value}
}

func MetricDelta(label, value, delta string) Block {
	return Block{Kind: KindMetric, Label: label, Value: value, Delta: delta}
}

func Table(t *dataset.Table) Block {
	return Block{Kind: KindTable, Table: t}
}

func ChartBlock(c Chart) Block {
	return Block{Kind: KindChart, Chart: &c}
}

func JSON(label string, v any) Block {
	return Block{Kind: KindJSON, Label: label, Data: v}
}

// Progress clamps percent to 0..100.
func Progress(percent int, text string) Block {
	percent = max(0, min(100, percent))
	return Block{Kind: KindProgress, Percent: &percent, Text: text}
}

func ImageInfo(v any) Block {
	return Block{Kind: KindImageInfo, Data: v}
}

func Swatch(label, hex string) Block {
	return Block{Kind: KindSwatch, Label: label, Value: hex}
}

func DownloadLink(d Download) Block {
	return Block{Kind: KindDownload, Label: d.Label, Download: &d}
}

func Columns(children ...Block) Block {
	return Block{Kind: KindColumns, Children: children}
}

// Tab is a labelled container; only meaningful inside Tabs.
func Tab(label string, children ...Block) Block {
	return Block{Kind: KindTab, Label: label, Children: children}
}

func Tabs(tabs ...Block) Block {
	return Block{Kind: KindTabs, Children: tabs}
}

func Expander(label string, children ...Block) Block {
	return Block{Kind: KindExpander, Label: label, Children: children}
}

// Column groups blocks that share one column of a Columns container.
func Column(children ...Block) Block {
	return Block{Kind: KindColumn, Children: children}
}
