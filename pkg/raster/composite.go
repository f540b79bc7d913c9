package raster

import (
	"fmt"
	"image"
)

// BlendMode selects how source color channels combine with the destination
// before the source alpha composites the result over the destination.
type BlendMode int

const (
	BlendOver BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
)

func (m BlendMode) String() string {
	switch m {
	case BlendOver:
		return "over"
	case BlendMultiply:
		return "multiply"
	case BlendScreen:
		return "screen"
	case BlendOverlay:
		return "overlay"
	}
	return fmt.Sprintf("BlendMode(%d)", int(m))
}

func blendChannel(m BlendMode, sr, dr float64) float64 {
	switch m {
	case BlendMultiply:
		return sr * dr
	case BlendScreen:
		return 1 - (1-sr)*(1-dr)
	case BlendOverlay:
		if dr < 0.5 {
			return 2 * sr * dr
		}
		return 1 - 2*(1-sr)*(1-dr)
	default:
		return sr
	}
}

// Composite blends src over dst using mode and returns a new buffer. Both
// images must have identical dimensions. Source alpha weights the blended
// color against the destination; destination alpha is preserved, so an
// opaque texture layered over a knocked-out region never re-opaques it.
// Fully transparent destination pixels are left untouched.
func Composite(dst, src *image.NRGBA, mode BlendMode) (*image.NRGBA, error) {
	if dst == nil || src == nil {
		return nil, fmt.Errorf("composite: nil image")
	}
	dw, dh := dst.Bounds().Dx(), dst.Bounds().Dy()
	sw, sh := src.Bounds().Dx(), src.Bounds().Dy()
	if dw != sw || dh != sh {
		return nil, fmt.Errorf("composite: dimension mismatch %dx%d vs %dx%d", dw, dh, sw, sh)
	}

	out := CloneNRGBA(dst)
	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			si := src.PixOffset(x, y)
			di := out.PixOffset(x, y)

			sa := float64(src.Pix[si+3]) / 255.0
			if sa == 0 || out.Pix[di+3] == 0 {
				continue
			}
			sr := float64(src.Pix[si+0]) / 255.0
			sg := float64(src.Pix[si+1]) / 255.0
			sb := float64(src.Pix[si+2]) / 255.0

			dr := float64(out.Pix[di+0]) / 255.0
			dg := float64(out.Pix[di+1]) / 255.0
			db := float64(out.Pix[di+2]) / 255.0

			br := blendChannel(mode, sr, dr)
			bg := blendChannel(mode, sg, dg)
			bb := blendChannel(mode, sb, db)

			outR := (1-sa)*dr + sa*br
			outG := (1-sa)*dg + sa*bg
			outB := (1-sa)*db + sa*bb

			out.Pix[di+0] = uint8(ClampFloatToUint8(outR * 255.0))
			out.Pix[di+1] = uint8(ClampFloatToUint8(outG * 255.0))
			out.Pix[di+2] = uint8(ClampFloatToUint8(outB * 255.0))
		}
	}
	return out, nil
}
