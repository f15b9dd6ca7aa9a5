package output

import (
	"fmt"
	"image"
	"image/color"

	"github.com/mj1618/windows-mcp/internal/model"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	interactiveColor = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	informativeColor = color.RGBA{R: 0, G: 120, B: 255, A: 255}
	scrollableColor  = color.RGBA{R: 0, G: 200, B: 0, A: 255}
	labelColor       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor     = color.RGBA{R: 0, G: 0, B: 0, A: 200}
)

// Annotate draws a box and an "[id]" label for every record on a copy of a
// screenshot of screen. Records are in virtual-screen coordinates; the
// image may have been scaled.
func Annotate(img image.Image, snap model.TreeSnapshot) *image.RGBA {
	rgba := toRGBA(img)
	screen := snap.VirtualScreen
	if screen.Empty() {
		return rgba
	}
	ib := rgba.Bounds()
	scaleX := float64(ib.Dx()) / float64(screen.Width)
	scaleY := float64(ib.Dy()) / float64(screen.Height)

	for _, el := range snap.All() {
		c := informativeColor
		switch el.Partition() {
		case model.PartitionInteractive:
			c = interactiveColor
		case model.PartitionScrollable:
			c = scrollableColor
		}
		x := ib.Min.X + int(float64(el.Bounds.X-screen.X)*scaleX)
		y := ib.Min.Y + int(float64(el.Bounds.Y-screen.Y)*scaleY)
		w := int(float64(el.Bounds.Width) * scaleX)
		h := int(float64(el.Bounds.Height) * scaleY)
		drawRectangle(rgba, image.Rect(x, y, x+w, y+h), c)
		drawLabel(rgba, fmt.Sprintf("[%d]", el.ID), x+2, y+13)
	}
	return rgba
}

func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	return rgba
}

// drawRectangle outlines r. RGBA.Set ignores points outside the image.
func drawRectangle(img *image.RGBA, r image.Rectangle, c color.Color) {
	if r.Intersect(img.Bounds()).Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

// drawLabel writes text with a one-pixel outline, baseline at (x, y).
func drawLabel(img *image.RGBA, text string, x, y int) {
	stroke := func(dx, dy int, c color.Color) {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(c),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(x+dx, y+dy),
		}
		d.DrawString(text)
	}
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx != 0 || dy != 0 {
				stroke(dx, dy, outlineColor)
			}
		}
	}
	stroke(0, 0, labelColor)
}
