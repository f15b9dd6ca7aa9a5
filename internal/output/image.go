package output

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"

	"golang.org/x/image/draw"
)

// ImageOptions controls screenshot encoding.
type ImageOptions struct {
	Format  string  // "png" or "jpeg"
	Quality int     // jpeg quality 1-100
	Scale   float64 // 0 < scale <= 1; 0 means 1
}

// DefaultImageOptions matches what MCP clients render comfortably.
func DefaultImageOptions() ImageOptions {
	return ImageOptions{Format: "png", Quality: 80, Scale: 1}
}

// Validate checks the options.
func (o ImageOptions) Validate() error {
	switch strings.ToLower(o.Format) {
	case "png", "jpeg", "jpg":
	default:
		return fmt.Errorf("unsupported image format %q (want png or jpeg)", o.Format)
	}
	if o.Quality < 1 || o.Quality > 100 {
		return fmt.Errorf("image quality %d out of range 1-100", o.Quality)
	}
	if o.Scale < 0 || o.Scale > 1 {
		return fmt.Errorf("image scale %g out of range (0,1]", o.Scale)
	}
	return nil
}

// EncodeImage scales and encodes img. It returns the bytes and their MIME type.
func EncodeImage(img image.Image, opts ImageOptions) ([]byte, string, error) {
	if err := opts.Validate(); err != nil {
		return nil, "", err
	}
	img = ScaleImage(img, opts.Scale)

	var buf bytes.Buffer
	switch strings.ToLower(opts.Format) {
	case "jpeg", "jpg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: opts.Quality}); err != nil {
			return nil, "", fmt.Errorf("encode jpeg: %w", err)
		}
		return buf.Bytes(), "image/jpeg", nil
	default:
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", fmt.Errorf("encode png: %w", err)
		}
		return buf.Bytes(), "image/png", nil
	}
}

// ScaleImage resizes img by factor. Factors outside (0,1) return img as is.
func ScaleImage(img image.Image, factor float64) image.Image {
	if factor <= 0 || factor >= 1 {
		return img
	}
	b := img.Bounds()
	w := max(1, int(float64(b.Dx())*factor))
	h := max(1, int(float64(b.Dy())*factor))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
