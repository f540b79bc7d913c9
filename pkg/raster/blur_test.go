package raster

import (
	"image/color"
	"testing"
)

func TestGaussianBlurFlatImageUnchanged(t *testing.T) {
	src := NewSolidNRGBA(9, 9, color.NRGBA{R: 77, G: 150, B: 33, A: 255})
	out := GaussianBlur(src, 1.5)
	// kernel normalization leaves sub-integer float residue, so allow one count
	for i := range out.Pix {
		d := int(out.Pix[i]) - int(src.Pix[i])
		if d < -1 || d > 1 {
			t.Fatalf("flat image changed at byte %d: %d -> %d", i, src.Pix[i], out.Pix[i])
		}
	}
}

func TestGaussianBlurSmoothsEdge(t *testing.T) {
	src := NewSolidNRGBA(10, 3, color.NRGBA{A: 255})
	// right half white
	for y := 0; y < 3; y++ {
		for x := 5; x < 10; x++ {
			i := src.PixOffset(x, y)
			src.Pix[i+0] = 255
			src.Pix[i+1] = 255
			src.Pix[i+2] = 255
		}
	}
	out := GaussianBlur(src, 1.0)
	mid := out.Pix[out.PixOffset(5, 1)]
	if mid == 0 || mid == 255 {
		t.Fatalf("edge pixel not smoothed: %d", mid)
	}
}

func TestGaussianBlurRGBPreservesAlpha(t *testing.T) {
	src := NewSolidNRGBA(6, 6, color.NRGBA{R: 200, A: 255})
	src.Pix[src.PixOffset(3, 3)+3] = 10
	out := GaussianBlurRGB(src, 2.0)
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			i := out.PixOffset(x, y)
			if out.Pix[i+3] != src.Pix[i+3] {
				t.Fatalf("alpha changed at (%d,%d)", x, y)
			}
		}
	}
}
