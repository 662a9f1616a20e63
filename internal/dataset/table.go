package dataset

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"

	appErrors "github.com/fatali-fataliyev/lesson_board/customErrors"
)

// Table is a small in-memory data frame. Cells are kept as text; a column is
// numeric when every non-empty cell parses as a float.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

type AggFunc string

const (
	AggMean  AggFunc = "mean"
	AggSum   AggFunc = "sum"
	AggCount AggFunc = "count"
	AggMin   AggFunc = "min"
	AggMax   AggFunc = "max"
)

func ParseAggFunc(s string) (AggFunc, error) {
	switch f := AggFunc(strings.ToLower(strings.TrimSpace(s))); f {
	case AggMean, AggSum, AggCount, AggMin, AggMax:
		return f, nil
	}
	return "", appErrors.InvalidInput("unknown aggregation function: %q", s)
}

func New(columns ...string) *Table {
	return &Table{Columns: columns}
}

func (t *Table) Append(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	c := &Table{Columns: slices.Clone(t.Columns), Rows: make([][]string, len(t.Rows))}
	for i, row := range t.Rows {
		c.Rows[i] = slices.Clone(row)
	}
	return c
}

func (t *Table) ColumnIndex(name string) (int, error) {
	idx := slices.Index(t.Columns, name)
	if idx < 0 {
		return -1, appErrors.InvalidInput("unknown column: %q", name)
	}
	return idx, nil
}

func (t *Table) Column(name string) ([]string, error) {
	idx, err := t.ColumnIndex(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, nil
}

func (t *Table) IsNumeric(name string) bool {
	values, err := t.Column(name)
	if err != nil {
		return false
	}
	seen := false
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		if _, ok := ParseNumber(v); !ok {
			return false
		}
		seen = true
	}
	return seen
}

// Floats returns the parsed non-empty cells of a numeric column.
func (t *Table) Floats(name string) ([]float64, error) {
	values, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		f, ok := ParseNumber(v)
		if !ok {
			return nil, appErrors.InvalidInput("column %q is not numeric: %q", name, v)
		}
		out = append(out, f)
	}
	return out, nil
}

// Unique returns distinct values of a column in first-seen order.
func (t *Table) Unique(name string) ([]string, error) {
	values, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out, nil
}

func (t *Table) Head(n int) *Table {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	if n < 0 {
		n = 0
	}
	return &Table{Columns: slices.Clone(t.Columns), Rows: cloneRows(t.Rows[:n])}
}

func (t *Table) Tail(n int) *Table {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	if n < 0 {
		n = 0
	}
	return &Table{Columns: slices.Clone(t.Columns), Rows: cloneRows(t.Rows[len(t.Rows)-n:])}
}

// Select keeps the named columns in the requested order. An empty list keeps
// every column.
func (t *Table) Select(columns ...string) (*Table, error) {
	if len(columns) == 0 {
		return t.Clone(), nil
	}
	idx := make([]int, len(columns))
	for i, name := range columns {
		j, err := t.ColumnIndex(name)
		if err != nil {
			return nil, err
		}
		idx[i] = j
	}
	out := &Table{Columns: slices.Clone(columns), Rows: make([][]string, len(t.Rows))}
	for r, row := range t.Rows {
		cells := make([]string, len(idx))
		for i, j := range idx {
			cells[i] = row[j]
		}
		out.Rows[r] = cells
	}
	return out, nil
}

func (t *Table) FilterEquals(column, value string) (*Table, error) {
	idx, err := t.ColumnIndex(column)
	if err != nil {
		return nil, err
	}
	out := &Table{Columns: slices.Clone(t.Columns)}
	for _, row := range t.Rows {
		if row[idx] == value {
			out.Rows = append(out.Rows, slices.Clone(row))
		}
	}
	return out, nil
}

// FilterRange keeps rows whose numeric cell lies in [lo, hi]. Empty and
// non-numeric cells are dropped.
func (t *Table) FilterRange(column string, lo, hi float64) (*Table, error) {
	idx, err := t.ColumnIndex(column)
	if err != nil {
		return nil, err
	}
	if lo > hi {
		return nil, appErrors.InvalidInput("filter range is empty: %v > %v", lo, hi)
	}
	out := &Table{Columns: slices.Clone(t.Columns)}
	for _, row := range t.Rows {
		f, ok := ParseNumber(row[idx])
		if !ok {
			continue
		}
		if f >= lo && f <= hi {
			out.Rows = append(out.Rows, slices.Clone(row))
		}
	}
	return out, nil
}

// Sort is stable. Numeric columns compare as numbers, others lexically.
func (t *Table) Sort(column string, ascending bool) (*Table, error) {
	idx, err := t.ColumnIndex(column)
	if err != nil {
		return nil, err
	}
	out := t.Clone()
	numeric := t.IsNumeric(column)
	less := func(a, b string) bool {
		if numeric {
			fa, okA := ParseNumber(a)
			fb, okB := ParseNumber(b)
			// empty cells sort last either way
			switch {
			case !okA:
				return false
			case !okB:
				return true
			}
			if ascending {
				return fa < fb
			}
			return fa > fb
		}
		if ascending {
			return a < b
		}
		return a > b
	}
	sort.SliceStable(out.Rows, func(i, j int) bool {
		return less(out.Rows[i][idx], out.Rows[j][idx])
	})
	return out, nil
}

// Aggregate applies fn to a column. count works on any column and counts
// non-empty cells; the others need a numeric column.
func (t *Table) Aggregate(column string, fn AggFunc) (float64, error) {
	if fn == AggCount {
		values, err := t.Column(column)
		if err != nil {
			return 0, err
		}
		n := 0
		for _, v := range values {
			if strings.TrimSpace(v) != "" {
				n++
			}
		}
		return float64(n), nil
	}
	values, err := t.Floats(column)
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return math.NaN(), nil
	}
	switch fn {
	case AggSum:
		return sum(values), nil
	case AggMean:
		return sum(values) / float64(len(values)), nil
	case AggMin:
		return slices.Min(values), nil
	case AggMax:
		return slices.Max(values), nil
	}
	return 0, appErrors.InvalidInput("unknown aggregation function: %q", fn)
}

func (t *Table) Shape() string {
	return fmt.Sprintf("%d rows × %d columns", len(t.Rows), len(t.Columns))
}

func sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}

func cloneRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = slices.Clone(row)
	}
	return out
}

// ParseNumber accepts finite numbers only, so NaN and Inf cells count as text.
func ParseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
