package raster

import (
	"image/color"
	"testing"
)

func TestUnsharpMaskFlatImageUnchanged(t *testing.T) {
	src := NewSolidNRGBA(8, 8, color.NRGBA{R: 90, G: 90, B: 90, A: 255})
	out := UnsharpMask(src, 0.8, 0.6, 2)
	for i := range out.Pix {
		if out.Pix[i] != src.Pix[i] {
			t.Fatalf("flat image changed at byte %d", i)
		}
	}
}

func TestUnsharpMaskIncreasesEdgeContrast(t *testing.T) {
	src := NewSolidNRGBA(12, 3, color.NRGBA{R: 50, G: 50, B: 50, A: 255})
	for y := 0; y < 3; y++ {
		for x := 6; x < 12; x++ {
			i := src.PixOffset(x, y)
			src.Pix[i+0] = 200
			src.Pix[i+1] = 200
			src.Pix[i+2] = 200
		}
	}
	out := UnsharpMask(src, 0.8, 0.6, 2)
	// dark side of the edge darkens, bright side brightens
	if out.Pix[out.PixOffset(5, 1)] >= 50 {
		t.Errorf("dark edge side = %d, want < 50", out.Pix[out.PixOffset(5, 1)])
	}
	if out.Pix[out.PixOffset(6, 1)] <= 200 {
		t.Errorf("bright edge side = %d, want > 200", out.Pix[out.PixOffset(6, 1)])
	}
}

func TestUnsharpMaskPreservesAlpha(t *testing.T) {
	src := NewSolidNRGBA(10, 10, color.NRGBA{R: 30, G: 30, B: 30, A: 255})
	// feathered alpha ramp next to a contrast edge
	for y := 0; y < 10; y++ {
		src.Pix[src.PixOffset(4, y)+3] = 128
		src.Pix[src.PixOffset(5, y)+3] = 0
		for x := 6; x < 10; x++ {
			i := src.PixOffset(x, y)
			src.Pix[i+0] = 220
			src.Pix[i+1] = 220
			src.Pix[i+2] = 220
		}
	}
	out := UnsharpMask(src, 0.8, 0.6, 0)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			i := out.PixOffset(x, y)
			if out.Pix[i+3] != src.Pix[i+3] {
				t.Fatalf("alpha changed at (%d,%d): %d -> %d", x, y, src.Pix[i+3], out.Pix[i+3])
			}
		}
	}
}
