package renderer

import (
	"fmt"
	"image"
)

// Pixmap is a CPU-side RGBA image produced by reading back a framebuffer.
// Rows are stored top-down, 4 bytes per pixel.
type Pixmap struct {
	width  int
	height int
	data   []uint8
}

// NewPixmap wraps raw top-down RGBA bytes in a Pixmap.
//
// Parameters:
//   - width: the image width in pixels
//   - height: the image height in pixels
//   - data: width*height*4 bytes of RGBA data, top row first
//
// Returns:
//   - *Pixmap: the wrapped pixmap
//   - error: an error if the byte length does not match the dimensions
func NewPixmap(width, height int, data []uint8) (*Pixmap, error) {
	if len(data) != width*height*4 {
		return nil, fmt.Errorf("pixmap data length %d does not match %dx%d RGBA", len(data), width, height)
	}
	return &Pixmap{width: width, height: height, data: data}, nil
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format, top row first).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// Image wraps the pixmap in an image.RGBA without copying. Mutating the
// returned image mutates the pixmap.
//
// Returns:
//   - *image.RGBA: the pixmap viewed as a standard library image
func (p *Pixmap) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    p.data,
		Stride: p.width * 4,
		Rect:   image.Rect(0, 0, p.width, p.height),
	}
}
