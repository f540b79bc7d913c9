package raster

import (
	"image"
	"math"
)

// UnsharpMask sharpens the color channels of src: result = src + amount *
// (src - blurred), with sigma controlling the blur and threshold (0..255)
// gating how large the blurred difference must be before a pixel is touched.
// Alpha is copied from src verbatim; a print file's transparency mask must
// survive sharpening or knocked-out regions grow halos.
func UnsharpMask(src *image.NRGBA, sigma, amount, threshold float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	blurred := GaussianBlurRGB(src, sigma)
	b := src.Bounds()
	w := b.Dx()
	h := b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(x, y)
			sr := float64(src.Pix[i+0])
			sg := float64(src.Pix[i+1])
			sb := float64(src.Pix[i+2])

			br := float64(blurred.Pix[i+0])
			bg := float64(blurred.Pix[i+1])
			bb := float64(blurred.Pix[i+2])

			// mask = src - blurred
			mr := sr - br
			mg := sg - bg
			mb := sb - bb

			if threshold > 0 &&
				math.Abs(mr) < threshold && math.Abs(mg) < threshold && math.Abs(mb) < threshold {
				out.Pix[i+0] = src.Pix[i+0]
				out.Pix[i+1] = src.Pix[i+1]
				out.Pix[i+2] = src.Pix[i+2]
				out.Pix[i+3] = src.Pix[i+3]
				continue
			}

			out.Pix[i+0] = uint8(ClampFloatToUint8(sr + amount*mr))
			out.Pix[i+1] = uint8(ClampFloatToUint8(sg + amount*mg))
			out.Pix[i+2] = uint8(ClampFloatToUint8(sb + amount*mb))
			out.Pix[i+3] = src.Pix[i+3]
		}
	}
	return out
}
