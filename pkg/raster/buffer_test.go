package raster

import (
	"image"
	"image/color"
	"testing"
)

func TestToNRGBASynthesizesOpaqueAlpha(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 3, 2))
	for i := range gray.Pix {
		gray.Pix[i] = uint8(40 * i)
	}
	out := ToNRGBA(gray)
	if out.Bounds().Dx() != 3 || out.Bounds().Dy() != 2 {
		t.Fatalf("bounds changed: %v", out.Bounds())
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			i := out.PixOffset(x, y)
			if out.Pix[i+3] != 255 {
				t.Fatalf("pixel (%d,%d) alpha = %d, want 255", x, y, out.Pix[i+3])
			}
		}
	}
}

func TestToNRGBACopies(t *testing.T) {
	src := NewSolidNRGBA(2, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	out := ToNRGBA(src)
	out.Pix[0] = 99
	if src.Pix[0] != 10 {
		t.Fatal("ToNRGBA aliased the source buffer")
	}
}

func TestCloneNRGBAIndependent(t *testing.T) {
	src := NewSolidNRGBA(2, 2, color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	dup := CloneNRGBA(src)
	dup.Pix[5] = 200
	if src.Pix[5] == 200 {
		t.Fatal("clone shares pixel storage with source")
	}
}

func TestClampFloatToUint8(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{-1, 0},
		{0, 0},
		{127.6, 127.6},
		{255, 255},
		{300, 255},
	}
	for _, c := range cases {
		if got := ClampFloatToUint8(c.in); got != c.want {
			t.Errorf("ClampFloatToUint8(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
