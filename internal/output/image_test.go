package output

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/mj1618/windows-mcp/internal/model"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestEncodeImage_PNGScaled(t *testing.T) {
	data, mime, err := EncodeImage(solid(200, 100, color.White), ImageOptions{Format: "png", Quality: 80, Scale: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	if mime != "image/png" {
		t.Errorf("mime = %q", mime)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("scaled size = %dx%d, want 100x50", b.Dx(), b.Dy())
	}
}

func TestEncodeImage_JPEG(t *testing.T) {
	data, mime, err := EncodeImage(solid(10, 10, color.Black), ImageOptions{Format: "jpeg", Quality: 50, Scale: 1})
	if err != nil {
		t.Fatal(err)
	}
	if mime != "image/jpeg" || len(data) == 0 {
		t.Errorf("mime = %q, %d bytes", mime, len(data))
	}
}

func TestImageOptions_Validate(t *testing.T) {
	bad := []ImageOptions{
		{Format: "gif", Quality: 80, Scale: 1},
		{Format: "png", Quality: 0, Scale: 1},
		{Format: "png", Quality: 80, Scale: 1.5},
	}
	for _, o := range bad {
		if err := o.Validate(); err == nil {
			t.Errorf("%+v: expected error", o)
		}
	}
	if err := DefaultImageOptions().Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestAnnotate(t *testing.T) {
	snap := model.TreeSnapshot{
		VirtualScreen: model.Rect{Width: 100, Height: 100},
		Interactive: []model.ElementRecord{{
			ID: 1, ControlType: model.ControlButton, Interactable: true,
			Bounds: model.Rect{X: 10, Y: 10, Width: 40, Height: 30},
		}},
	}
	base := solid(100, 100, color.Black)
	out := Annotate(base, snap)

	if got := out.RGBAAt(10, 20); got != interactiveColor {
		t.Errorf("left edge pixel = %v, want %v", got, interactiveColor)
	}
	if got := out.RGBAAt(90, 90); got != (color.RGBA{A: 255}) {
		t.Errorf("untouched pixel = %v", got)
	}
	if base.RGBAAt(10, 20) != (color.RGBA{A: 255}) {
		t.Error("Annotate modified its input")
	}
}

func TestAnnotate_ScaledImage(t *testing.T) {
	snap := model.TreeSnapshot{
		VirtualScreen: model.Rect{X: -100, Width: 200, Height: 100},
		Scrollable: []model.ElementRecord{{
			ID: 1, ControlType: model.ControlPane, Scrollable: true,
			Bounds: model.Rect{X: 0, Y: 40, Width: 100, Height: 60},
		}},
	}
	out := Annotate(solid(100, 50, color.Black), snap)
	// x 0 in screen space is x 50 in the half-size image
	if got := out.RGBAAt(50, 35); got != scrollableColor {
		t.Errorf("pixel = %v, want %v", got, scrollableColor)
	}
}
