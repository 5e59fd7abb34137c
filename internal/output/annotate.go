package output

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/hopngo/a11y-audit/internal/model"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Mark is one outlined region on a screenshot. Bounds are viewport CSS
// pixels [x, y, w, h].
type Mark struct {
	Bounds [4]int
	Label  string
	Color  color.RGBA
}

var (
	contrastColor = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	imageColor    = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	textColor     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor  = color.RGBA{R: 0, G: 0, B: 0, A: 200}
)

// MarksForReport outlines the contrast violations and problem images of a
// report. Elements with empty bounds (not rendered) are skipped.
func MarksForReport(snap *model.Snapshot, r model.AccessibilityReport) []Mark {
	var marks []Mark
	add := func(el *model.Element, label string, c color.RGBA) {
		if el == nil || el.Bounds[2] <= 0 || el.Bounds[3] <= 0 {
			return
		}
		marks = append(marks, Mark{Bounds: el.Bounds, Label: label, Color: c})
	}

	for _, v := range r.Contrast.Violations {
		add(snap.Get(v.Index), fmt.Sprintf("contrast %.2f", v.Contrast), contrastColor)
	}

	flagged := map[string]string{}
	for _, name := range r.Images.MissingAlt {
		flagged[name] = "missing alt"
	}
	for _, name := range r.Images.EmptyAlt {
		flagged[name] = "empty alt"
	}
	for i, img := range snap.ByTag("img") {
		name := img.Attrs["src"]
		if name == "" {
			name = fmt.Sprintf("image-%d", i)
		}
		if label, ok := flagged[name]; ok {
			img := img
			add(&img, label, imageColor)
		}
	}
	return marks
}

// Annotate draws marks on a PNG. scale converts CSS pixels to image pixels
// (the device pixel ratio); values <= 0 mean 1.
func Annotate(pngData []byte, marks []Mark, scale float64) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	if scale <= 0 {
		scale = 1
	}
	rgba := ImageToRGBA(img)
	for _, m := range marks {
		x := int(float64(m.Bounds[0]) * scale)
		y := int(float64(m.Bounds[1]) * scale)
		w := int(float64(m.Bounds[2]) * scale)
		h := int(float64(m.Bounds[3]) * scale)
		// Outline is two pixels wide.
		drawRectangle(rgba, x, y, x+w, y+h, m.Color)
		drawRectangle(rgba, x+1, y+1, x+w-1, y+h-1, m.Color)
		if m.Label != "" {
			drawTextWithOutline(rgba, m.Label, x+2, y-2, textColor, outlineColor)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, fmt.Errorf("encode screenshot: %w", err)
	}
	return buf.Bytes(), nil
}

// ImageToRGBA converts any image to RGBA
func ImageToRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

// drawRectangle draws a rectangle outline on the image, clamped to its bounds.
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	bounds := img.Bounds()
	if x1 < bounds.Min.X {
		x1 = bounds.Min.X
	}
	if y1 < bounds.Min.Y {
		y1 = bounds.Min.Y
	}
	if x2 > bounds.Max.X {
		x2 = bounds.Max.X
	}
	if y2 > bounds.Max.Y {
		y2 = bounds.Max.Y
	}
	if x2 <= x1 || y2 <= y1 {
		return
	}

	for x := x1; x < x2; x++ {
		img.Set(x, y1, c)
		img.Set(x, y2-1, c)
	}
	for y := y1; y < y2; y++ {
		img.Set(x1, y, c)
		img.Set(x2-1, y, c)
	}
}

// drawTextWithOutline draws text with its baseline-left corner at (x, y),
// with a one-pixel outline for contrast against any background.
func drawTextWithOutline(img *image.RGBA, text string, x, y int, fg, outline color.Color) {
	if y < 13 {
		y = 13
	}
	drawAt := func(dx, dy int, c color.Color) {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(c),
			Face: basicfont.Face7x13,
			Dot:  fixed.Point26_6{X: fixed.Int26_6((x + dx) * 64), Y: fixed.Int26_6((y + dy) * 64)},
		}
		d.DrawString(text)
	}
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx != 0 || dy != 0 {
				drawAt(dx, dy, outline)
			}
		}
	}
	drawAt(0, 0, fg)
}
