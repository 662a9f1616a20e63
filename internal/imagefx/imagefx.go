package imagefx

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	appErrors "github.com/fatali-fataliyev/lesson_board/customErrors"
	"github.com/nfnt/resize"
)

const (
	MIN_SIDE       = 100
	MAX_SIDE       = 1000
	MIN_FACTOR     = 0.1
	MAX_FACTOR     = 2.0
	PALETTE_LENGTH = 10
	MAX_PIXELS     = 16 * MAX_SIDE * MAX_SIDE
)

type Options struct {
	Resize     bool    `json:"resize"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Rotation   int     `json:"rotation"`
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
}

type Info struct {
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Mode        string   `json:"mode"`
	Format      string   `json:"format"`
	SizeKB      float64  `json:"size_kb"`
	TotalPixels int      `json:"total_pixels"`
	Palette     []string `json:"palette,omitempty"`
}

// DefaultOptions leaves an image untouched.
func DefaultOptions() Options {
	return Options{Brightness: 1, Contrast: 1}
}

func (o Options) Validate() error {
	if o.Resize {
		if o.Width < MIN_SIDE || o.Width > MAX_SIDE || o.Height < MIN_SIDE || o.Height > MAX_SIDE {
			return appErrors.InvalidInput("width and height must be between %d and %d", MIN_SIDE, MAX_SIDE)
		}
	}
	if o.Rotation < 0 || o.Rotation > 360 {
		return appErrors.InvalidInput("rotation must be between 0 and 360 degrees")
	}
	if o.Brightness < MIN_FACTOR || o.Brightness > MAX_FACTOR {
		return appErrors.InvalidInput("brightness must be between %.1f and %.1f", MIN_FACTOR, MAX_FACTOR)
	}
	if o.Contrast < MIN_FACTOR || o.Contrast > MAX_FACTOR {
		return appErrors.InvalidInput("contrast must be between %.1f and %.1f", MIN_FACTOR, MAX_FACTOR)
	}
	return nil
}

// Decode reads a PNG or JPEG and reports the detected format. The header is
// checked first so images above MAX_PIXELS are never decoded.
func Decode(data []byte) (image.Image, string, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", appErrors.InvalidInput("failed to decode image: %v", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MAX_PIXELS {
		return nil, "", appErrors.InvalidInput("image is %dx%d, at most %d megapixels are allowed", cfg.Width, cfg.Height, MAX_PIXELS/1_000_000)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", appErrors.InvalidInput("failed to decode image: %v", err)
	}
	return img, format, nil
}

// Process applies resize, rotation, brightness and contrast in that order.
func Process(src image.Image, opts Options) (*image.NRGBA, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var img image.Image = src
	if opts.Resize {
		img = resize.Resize(uint(opts.Width), uint(opts.Height), img, resize.Bicubic)
	}

	out := imaging.Clone(img)
	if opts.Rotation%360 != 0 {
		out = rotate(out, float64(opts.Rotation))
	}
	if opts.Brightness != 1 {
		out = brighten(out, opts.Brightness)
	}
	if opts.Contrast != 1 {
		out = imaging.AdjustContrast(out, (opts.Contrast-1)*100)
	}
	return out, nil
}

// rotate turns img counter-clockwise around its centre and keeps the original
// canvas; uncovered corners are black.
func rotate(img *image.NRGBA, degrees float64) *image.NRGBA {
	b := img.Bounds()
	rotated := imaging.Rotate(img, degrees, color.Black)
	canvas := imaging.New(b.Dx(), b.Dy(), color.Black)
	return imaging.PasteCenter(canvas, rotated)
}

// brighten multiplies every colour channel by factor and clips to 0..255.
func brighten(img *image.NRGBA, factor float64) *image.NRGBA {
	scale := func(v uint8) uint8 {
		return uint8(math.Min(255, math.Max(0, math.Floor(float64(v)*factor))))
	}
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
	})
}

func EncodePNG(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

func PNGBytes(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Describe reports dimensions, colour mode and palette of a decoded image;
// size is the encoded byte count.
func Describe(img image.Image, format string, size int) Info {
	b := img.Bounds()
	return Info{
		Width:       b.Dx(),
		Height:      b.Dy(),
		Mode:        Mode(img),
		Format:      strings.ToUpper(format),
		SizeKB:      math.Round(float64(size)/1024*10) / 10,
		TotalPixels: b.Dx() * b.Dy(),
		Palette:     Palette(img),
	}
}

// Mode names the colour model the way image tools usually do.
func Mode(img image.Image) string {
	switch img.(type) {
	case *image.NRGBA, *image.RGBA, *image.NRGBA64, *image.RGBA64:
		return "RGBA"
	case *image.YCbCr:
		return "RGB"
	case *image.Gray, *image.Gray16:
		return "L"
	case *image.Paletted:
		return "P"
	case *image.CMYK:
		return "CMYK"
	default:
		return "unknown"
	}
}

// Palette lists up to PALETTE_LENGTH distinct colours of img as hex strings.
// Distinct colours are ordered by channel value and sampled evenly.
func Palette(img image.Image) []string {
	src := imaging.Clone(img)
	seen := map[color.NRGBA]struct{}{}
	var colors []color.NRGBA
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := src.NRGBAAt(x, y)
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			colors = append(colors, c)
		}
	}
	sort.Slice(colors, func(i, j int) bool {
		a, c := colors[i], colors[j]
		if a.R != c.R {
			return a.R < c.R
		}
		if a.G != c.G {
			return a.G < c.G
		}
		if a.B != c.B {
			return a.B < c.B
		}
		return a.A < c.A
	})

	if len(colors) > PALETTE_LENGTH {
		step := len(colors) / PALETTE_LENGTH
		sampled := make([]color.NRGBA, 0, PALETTE_LENGTH)
		for i := 0; i < len(colors) && len(sampled) < PALETTE_LENGTH; i += step {
			sampled = append(sampled, colors[i])
		}
		colors = sampled
	}

	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return out
}
