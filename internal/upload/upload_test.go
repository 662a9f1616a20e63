package upload

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	appErrors "github.com/fatali-fataliyev/lesson_board/customErrors"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		data     []byte
		wantKind Kind
		wantErr  bool
	}{
		{name: "Success - csv", file: "data.csv", data: []byte("a,b\n1,2\n"), wantKind: KindCSV},
		{name: "Success - txt", file: "notes.TXT", data: []byte("hello wörld"), wantKind: KindText},
		{name: "Success - json", file: "x.json", data: []byte(`{"a":[1,2]}`), wantKind: KindJSON},
		{name: "Success - png", file: "pic.png", data: pngBytes(t, 3, 2), wantKind: KindImage},
		{name: "Fail - ragged csv", file: "bad.csv", data: []byte("a,b\n1\n"), wantErr: true},
		{name: "Fail - txt not utf8", file: "bad.txt", data: []byte{0xff, 0xfe, 0x00}, wantErr: true},
		{name: "Fail - invalid json", file: "bad.json", data: []byte(`{"a":`), wantErr: true},
		{name: "Fail - corrupt image", file: "bad.jpg", data: []byte("nope"), wantErr: true},
		{name: "Fail - too many pixels", file: "huge.png", data: pngBytes(t, 8000, 2500), wantErr: true},
		{name: "Fail - extension", file: "run.exe", data: []byte("MZ"), wantErr: true},
		{name: "Fail - empty", file: "empty.csv", data: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Parse(tt.file, tt.data, 1<<20)
			if tt.wantErr {
				require.Error(t, err)
				require.Equal(t, appErrors.ErrInvalidInput, appErrors.CodeOf(err))
				require.Equal(t, Result{}, res)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantKind, res.Kind)
			require.Equal(t, len(tt.data), res.Size)
		})
	}
}

func TestParseContent(t *testing.T) {
	res, err := Parse("data.csv", []byte("a,b\n1,2\n3,4\n"), 0)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, res.Table.Columns)
	require.Equal(t, 2, res.Table.Len())

	res, err = Parse("x.json", []byte(`{"a":1}`), 0)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"a": float64(1)}, res.JSON)

	res, err = Parse("pic.png", pngBytes(t, 3, 2), 0)
	require.NoError(t, err)
	require.Equal(t, 3, res.Image.Width)
	require.Equal(t, 2, res.Image.Height)
	require.Equal(t, "L", res.Image.Mode)
	require.Equal(t, "PNG", res.Image.Format)
}

func TestParseTooLarge(t *testing.T) {
	_, err := Parse("big.txt", bytes.Repeat([]byte("a"), 11), 10)
	require.Error(t, err)
	require.Equal(t, appErrors.ErrInvalidInput, appErrors.CodeOf(err))
}

func TestSlots(t *testing.T) {
	slot, err := ParseSlot(" Processing ")
	require.NoError(t, err)
	require.Equal(t, SlotProcessing, slot)

	_, err = ParseSlot("attic")
	require.Error(t, err)

	require.True(t, SlotPreview.Accepts(KindJSON))
	require.True(t, SlotSurvey.Accepts(KindCSV))
	require.False(t, SlotAnalysis.Accepts(KindText))
	require.True(t, SlotImage.Accepts(KindImage))
	require.False(t, SlotImage.Accepts(KindCSV))
}
