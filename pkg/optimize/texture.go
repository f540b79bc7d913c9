package optimize

import (
	"image"
	"math/rand"

	"golang.org/x/image/vector"

	"github.com/inkforge/dtfopt/pkg/raster"
)

// halftoneTexture synthesizes a tiled dot pattern: one filled circle of the
// configured diameter per spacing^2 tile, rendered once as a vector path and
// stamped across a w x h buffer. The dots are black at the configured
// opacity; everything between dots is fully transparent, so compositing only
// touches the dots themselves.
func halftoneTexture(w, h int, p TextureParams) *image.NRGBA {
	spacing := p.HalftoneSpacing
	if spacing < 1 {
		spacing = 1
	}
	tile := renderDotTile(spacing, p.HalftoneDiameter/2, p.HalftoneOpacity)

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		ty := y % spacing
		for x := 0; x < w; x++ {
			tx := x % spacing
			si := tile.PixOffset(tx, ty)
			di := out.PixOffset(x, y)
			copy(out.Pix[di:di+4], tile.Pix[si:si+4])
		}
	}
	return out
}

// renderDotTile rasterizes a single spacing x spacing tile holding one
// anti-aliased filled circle centered in the tile.
func renderDotTile(spacing int, radius, opacity float64) *image.NRGBA {
	z := vector.NewRasterizer(spacing, spacing)
	c := float32(spacing) / 2
	r := float32(radius)
	// circle from four cubic Beziers, control distance kappa*r
	const kappa = 0.5522847498307933
	k := r * kappa
	z.MoveTo(c+r, c)
	z.CubeTo(c+r, c+k, c+k, c+r, c, c+r)
	z.CubeTo(c-k, c+r, c-r, c+k, c-r, c)
	z.CubeTo(c-r, c-k, c-k, c-r, c, c-r)
	z.CubeTo(c+k, c-r, c+r, c-k, c+r, c)
	z.ClosePath()

	cov := image.NewAlpha(image.Rect(0, 0, spacing, spacing))
	z.Draw(cov, cov.Bounds(), image.Opaque, image.Point{})

	tile := image.NewNRGBA(image.Rect(0, 0, spacing, spacing))
	for y := 0; y < spacing; y++ {
		for x := 0; x < spacing; x++ {
			a := float64(cov.AlphaAt(x, y).A) * opacity
			i := tile.PixOffset(x, y)
			// black dot; RGB stays zero
			tile.Pix[i+3] = uint8(raster.ClampFloatToUint8(a))
		}
	}
	return tile
}

// grungeTexture synthesizes a fully opaque binary speckle (each pixel black
// with probability density, white otherwise) softened by a gaussian blur
// into organic blotches. seed == 0 selects a fixed seed so output is
// deterministic for tests.
func grungeTexture(w, h int, p TextureParams) *image.NRGBA {
	seed := p.GrungeSeed
	if seed == 0 {
		seed = 1
	}
	rng := rand.New(rand.NewSource(seed))

	speckle := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(255)
			if rng.Float64() < p.GrungeDensity {
				v = 0
			}
			i := speckle.PixOffset(x, y)
			speckle.Pix[i+0] = v
			speckle.Pix[i+1] = v
			speckle.Pix[i+2] = v
			speckle.Pix[i+3] = 255
		}
	}
	return raster.GaussianBlurRGB(speckle, p.GrungeSigma)
}
