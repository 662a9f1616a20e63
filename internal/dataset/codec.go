package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	appErrors "github.com/fatali-fataliyev/lesson_board/customErrors"
	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatJSON, FormatXLSX:
		return f, nil
	}
	return "", appErrors.InvalidInput("unsupported export format: %q, allowed: csv, json, xlsx", s)
}

func (f Format) MIME() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv"
	}
}

func (f Format) FileName(base string) string {
	return base + "." + string(f)
}

// ReadCSV parses a header row followed by records. Every record must have as
// many fields as the header.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, appErrors.InvalidInput("CSV file is empty")
	}
	if err != nil {
		return nil, appErrors.InvalidInput("invalid CSV header: %v", err)
	}
	for i, name := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF"))
	}

	t := New(header...)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, appErrors.InvalidInput("invalid CSV structure: %v", err)
		}
		t.Append(record...)
	}
	return t, nil
}

func (t *Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writer.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return nil
}

// WriteJSON writes the table as an indented array of records; numeric columns
// are emitted as numbers.
func (t *Table) WriteJSON(w io.Writer) error {
	records := t.Records()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode JSON records: %w", err)
	}
	return nil
}

// Records returns one ordered map per row. Key order follows Columns.
func (t *Table) Records() []Record {
	numeric := make([]bool, len(t.Columns))
	for i, name := range t.Columns {
		numeric[i] = t.IsNumeric(name)
	}
	records := make([]Record, len(t.Rows))
	for r, row := range t.Rows {
		rec := Record{keys: t.Columns, values: make([]any, len(t.Columns))}
		for i, cell := range row {
			rec.values[i] = cellValue(cell, numeric[i])
		}
		records[r] = rec
	}
	return records
}

func (t *Table) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Data"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(t.Columns))
	numeric := make([]bool, len(t.Columns))
	for i, name := range t.Columns {
		header[i] = name
		numeric[i] = t.IsNumeric(name)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write sheet header: %w", err)
	}

	for r, row := range t.Rows {
		cells := make([]any, len(row))
		for i, cell := range row {
			cells[i] = cellValue(cell, numeric[i])
		}
		axis, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", r+2, err)
		}
		if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
			return fmt.Errorf("failed to write sheet row %d: %w", r+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return nil
}

func (t *Table) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		return t.WriteJSON(w)
	case FormatXLSX:
		return t.WriteXLSX(w)
	default:
		return t.WriteCSV(w)
	}
}

func (t *Table) Bytes(format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Encode(&buf, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cellValue(cell string, numeric bool) any {
	if !numeric {
		return cell
	}
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return nil
	}
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return i
	}
	f, ok := ParseNumber(trimmed)
	if !ok {
		return cell
	}
	return f
}

// Record marshals as a JSON object with keys in column order.
type Record struct {
	keys   []string
	values []any
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
