package renderer

import (
	"image/color"
	"testing"
)

func TestNewPixmapValidatesLength(t *testing.T) {
	if _, err := NewPixmap(2, 2, make([]uint8, 15)); err == nil {
		t.Fatalf("expected error for short data")
	}
	if _, err := NewPixmap(2, 2, make([]uint8, 16)); err != nil {
		t.Fatalf("NewPixmap: %v", err)
	}
}

func TestPixmapImageSharesStorage(t *testing.T) {
	data := []uint8{
		255, 0, 0, 255, 0, 255, 0, 255,
		0, 0, 255, 255, 255, 255, 255, 255,
	}
	p, err := NewPixmap(2, 2, data)
	if err != nil {
		t.Fatalf("NewPixmap: %v", err)
	}
	if p.Width() != 2 || p.Height() != 2 {
		t.Fatalf("size = %dx%d", p.Width(), p.Height())
	}

	img := p.Image()
	if got := img.RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("(0,0) = %v", got)
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("(1,1) = %v", got)
	}

	// The image is a view, not a copy.
	img.SetRGBA(0, 0, color.RGBA{1, 2, 3, 4})
	if p.Data()[0] != 1 || p.Data()[3] != 4 {
		t.Fatalf("mutation through the image did not reach the pixmap")
	}
}
