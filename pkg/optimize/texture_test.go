package optimize

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/inkforge/dtfopt/pkg/raster"
)

func TestHalftoneTextureDimensionsAndPeriod(t *testing.T) {
	p := DefaultTextureParams()
	tex := halftoneTexture(37, 23, p)
	if tex.Bounds().Dx() != 37 || tex.Bounds().Dy() != 23 {
		t.Fatalf("texture bounds = %v, want 37x23", tex.Bounds())
	}
	// the pattern repeats with the tile spacing
	for y := 0; y < 23-p.HalftoneSpacing; y++ {
		for x := 0; x < 37-p.HalftoneSpacing; x++ {
			a := tex.PixOffset(x, y)
			b := tex.PixOffset(x+p.HalftoneSpacing, y+p.HalftoneSpacing)
			for c := 0; c < 4; c++ {
				if tex.Pix[a+c] != tex.Pix[b+c] {
					t.Fatalf("pattern not periodic at (%d,%d)", x, y)
				}
			}
		}
	}
}

func TestHalftoneDotShape(t *testing.T) {
	p := DefaultTextureParams()
	tex := halftoneTexture(p.HalftoneSpacing, p.HalftoneSpacing, p)
	// dot center is covered at roughly the configured opacity
	center := tex.PixOffset(p.HalftoneSpacing/2, p.HalftoneSpacing/2)
	wantA := 255 * p.HalftoneOpacity
	if d := float64(tex.Pix[center+3]) - wantA; d < -8 || d > 8 {
		t.Errorf("dot center alpha = %d, want ~%.0f", tex.Pix[center+3], wantA)
	}
	// tile corner lies outside the dot radius and stays transparent
	if a := tex.Pix[tex.PixOffset(0, 0)+3]; a != 0 {
		t.Errorf("tile corner alpha = %d, want 0", a)
	}
	// dots are black
	if tex.Pix[center+0] != 0 || tex.Pix[center+1] != 0 || tex.Pix[center+2] != 0 {
		t.Error("dot color is not black")
	}
}

func TestGrungeTextureDeterministicAndOpaque(t *testing.T) {
	p := DefaultTextureParams()
	a := grungeTexture(31, 17, p)
	b := grungeTexture(31, 17, p)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("grunge texture is not deterministic for a fixed seed")
	}
	if a.Bounds().Dx() != 31 || a.Bounds().Dy() != 17 {
		t.Fatalf("texture bounds = %v, want 31x17", a.Bounds())
	}
	for i := 3; i < len(a.Pix); i += 4 {
		if a.Pix[i] != 255 {
			t.Fatalf("grunge texture not fully opaque at byte %d", i)
		}
	}
	// blurred speckle must be grayscale with both dark and light regions
	var lo, hi uint8 = 255, 0
	for i := 0; i < len(a.Pix); i += 4 {
		if a.Pix[i] != a.Pix[i+1] || a.Pix[i] != a.Pix[i+2] {
			t.Fatal("grunge texture is not neutral gray")
		}
		if a.Pix[i] < lo {
			lo = a.Pix[i]
		}
		if a.Pix[i] > hi {
			hi = a.Pix[i]
		}
	}
	if hi-lo < 20 {
		t.Errorf("speckle contrast too flat: lo=%d hi=%d", lo, hi)
	}
}

func TestGrungeSeedChangesPattern(t *testing.T) {
	p := DefaultTextureParams()
	a := grungeTexture(31, 17, p)
	p.GrungeSeed = 7
	b := grungeTexture(31, 17, p)
	if bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("different seeds produced identical textures")
	}
}

func TestApplyTextureGrungeNeverLightens(t *testing.T) {
	e := New()
	buf := raster.NewSolidNRGBA(40, 40, color.NRGBA{R: 180, G: 140, B: 100, A: 255})
	out, err := e.applyTexture(buf, StyleGrunge)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < len(out.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			if out.Pix[i+c] > buf.Pix[i+c] {
				t.Fatalf("grunge lightened byte %d: %d -> %d", i+c, buf.Pix[i+c], out.Pix[i+c])
			}
		}
	}
}

func TestApplyTextureRejectsClean(t *testing.T) {
	e := New()
	buf := raster.NewSolidNRGBA(8, 8, color.NRGBA{A: 255})
	if _, err := e.applyTexture(buf, StyleClean); err == nil {
		t.Fatal("applyTexture must refuse StyleClean")
	}
}
