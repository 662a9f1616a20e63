package upload

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"unicode/utf8"

	appErrors "github.com/fatali-fataliyev/lesson_board/customErrors"
	"github.com/fatali-fataliyev/lesson_board/internal/dataset"
	"github.com/fatali-fataliyev/lesson_board/internal/imagefx"
)

type Kind string

const (
	KindCSV   Kind = "csv"
	KindText  Kind = "text"
	KindJSON  Kind = "json"
	KindImage Kind = "image"
)

// Slot names the widget an upload belongs to.
type Slot string

const (
	SlotPreview    Slot = "preview"
	SlotProcessing Slot = "processing"
	SlotAnalysis   Slot = "analysis"
	SlotSurvey     Slot = "survey"
	SlotImage      Slot = "image"
)

var Slots = []Slot{SlotPreview, SlotProcessing, SlotAnalysis, SlotSurvey, SlotImage}

func ParseSlot(s string) (Slot, error) {
	switch slot := Slot(strings.ToLower(strings.TrimSpace(s))); slot {
	case SlotPreview, SlotProcessing, SlotAnalysis, SlotSurvey, SlotImage:
		return slot, nil
	}
	return "", appErrors.InvalidInput("unknown upload slot: %q", s)
}

// Accepts reports whether a file kind may be uploaded into the slot.
func (s Slot) Accepts(k Kind) bool {
	switch s {
	case SlotPreview:
		return true
	case SlotProcessing, SlotAnalysis, SlotSurvey:
		return k == KindCSV
	case SlotImage:
		return k == KindImage
	}
	return false
}

type Result struct {
	Name  string         `json:"name"`
	Kind  Kind           `json:"kind"`
	Size  int            `json:"size"`
	Table *dataset.Table `json:"table,omitempty"`
	Text  string         `json:"text,omitempty"`
	JSON  any            `json:"json,omitempty"`
	Image *imagefx.Info  `json:"image,omitempty"`
}

// Parse interprets an uploaded file by its extension. Nothing is returned
// alongside an error, so a failed upload never leaves partial content.
func Parse(name string, data []byte, maxBytes int64) (Result, error) {
	if len(data) == 0 {
		return Result{}, appErrors.InvalidInput("file %q is empty", name)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return Result{}, appErrors.InvalidInput("file %q is larger than %d MB", name, maxBytes>>20)
	}

	res := Result{Name: name, Size: len(data)}
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), ".")); ext {
	case "csv":
		table, err := dataset.ReadCSV(bytes.NewReader(data))
		if err != nil {
			return Result{}, err
		}
		res.Kind, res.Table = KindCSV, table
	case "txt":
		if !utf8.Valid(data) {
			return Result{}, appErrors.InvalidInput("file %q is not UTF-8 text", name)
		}
		res.Kind, res.Text = KindText, string(data)
	case "json":
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return Result{}, appErrors.InvalidInput("file %q is not valid JSON: %v", name, err)
		}
		res.Kind, res.JSON = KindJSON, v
	case "png", "jpg", "jpeg":
		img, format, err := imagefx.Decode(data)
		if err != nil {
			return Result{}, err
		}
		info := imagefx.Describe(img, format, len(data))
		res.Kind, res.Image = KindImage, &info
	default:
		return Result{}, appErrors.InvalidInput("unsupported file type %q, allowed: csv, txt, json, png, jpg, jpeg", ext)
	}
	return res, nil
}
