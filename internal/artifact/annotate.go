// Package artifact renders failure screenshots with the elements the probe
// was looking at outlined and captioned.
package artifact

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Highlight is a screen rectangle to outline, with an optional caption.
type Highlight struct {
	Bounds  [4]int // [x, y, width, height] in screen points
	Caption string
}

var (
	boxColor     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	textColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor = color.RGBA{R: 0, G: 0, B: 0, A: 200}
)

// Annotate draws highlights onto img. windowBounds is the captured window in
// screen points; highlight bounds are converted to image pixels using the
// ratio of image size to window size, which absorbs Retina scaling.
func Annotate(img image.Image, windowBounds [4]int, highlights []Highlight) *image.RGBA {
	rgba := toRGBA(img)

	scaleX, scaleY := 1.0, 1.0
	if windowBounds[2] > 0 {
		scaleX = float64(img.Bounds().Dx()) / float64(windowBounds[2])
	}
	if windowBounds[3] > 0 {
		scaleY = float64(img.Bounds().Dy()) / float64(windowBounds[3])
	}

	for _, h := range highlights {
		x := int(float64(h.Bounds[0]-windowBounds[0]) * scaleX)
		y := int(float64(h.Bounds[1]-windowBounds[1]) * scaleY)
		w := int(float64(h.Bounds[2]) * scaleX)
		ht := int(float64(h.Bounds[3]) * scaleY)

		drawRectangle(rgba, x, y, x+w, y+ht, boxColor)
		if h.Caption != "" {
			drawTextWithOutline(rgba, h.Caption, x+2, y-3)
		}
	}
	return rgba
}

// SaveFailure decodes a PNG capture, annotates it and writes it to
// dir/name.png. It returns the written path.
func SaveFailure(dir, name string, capture []byte, windowBounds [4]int, highlights []Highlight) (string, error) {
	img, err := png.Decode(bytes.NewReader(capture))
	if err != nil {
		return "", fmt.Errorf("decoding capture: %w", err)
	}
	annotated := Annotate(img, windowBounds, highlights)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating artifact directory: %w", err)
	}
	path := filepath.Join(dir, name+".png")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating artifact: %w", err)
	}
	if err := png.Encode(f, annotated); err != nil {
		f.Close()
		return "", fmt.Errorf("encoding artifact: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing artifact: %w", err)
	}
	return path, nil
}

func toRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

// drawRectangle draws a rectangle outline clamped to the image.
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	bounds := img.Bounds()
	x1 = max(x1, bounds.Min.X)
	y1 = max(y1, bounds.Min.Y)
	x2 = min(x2, bounds.Max.X)
	y2 = min(y2, bounds.Max.Y)
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

// drawTextWithOutline draws text with its baseline at (x, y) and a one-pixel
// dark outline so it stays legible on any background.
func drawTextWithOutline(img *image.RGBA, text string, x, y int) {
	// basicfont.Face7x13 glyphs are 13px tall; keep the caption on-image.
	if y < 13 {
		y = 13
	}
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawString(img, text, x+dx, y+dy, outlineColor)
		}
	}
	drawString(img, text, x, y, textColor)
}

func drawString(img *image.RGBA, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}
