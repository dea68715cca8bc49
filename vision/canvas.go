package vision

import (
	"bytes"
	"fmt"
	"image"

	// image codecs registered for Decode
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Canvas is the canonical image representation every accepted input variant
// is converted into before inference.
type Canvas struct {
	rgba *image.RGBA
}

// NewCanvas converts img into a canvas. An *image.RGBA whose bounds start at
// the origin is wrapped without copying; everything else is redrawn.
func NewCanvas(img image.Image) *Canvas {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == image.Pt(0, 0) {
		return &Canvas{rgba: rgba}
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Copy(rgba, image.Pt(0, 0), img, bounds, xdraw.Src, nil)

	return &Canvas{rgba: rgba}
}

// Decode decodes encoded image bytes into a canvas. PNG, JPEG, GIF, BMP and
// WebP payloads are recognized.
func Decode(data []byte) (*Canvas, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return NewCanvas(img), nil
}

// Image returns the canvas pixels.
func (c *Canvas) Image() *image.RGBA {
	return c.rgba
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.rgba.Bounds().Dx()
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.rgba.Bounds().Dy()
}

// Renderer produces a raster image from a declarative description, rendered
// off screen.
type Renderer interface {
	Render() (image.Image, error)
}
