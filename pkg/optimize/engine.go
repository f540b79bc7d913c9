// Package optimize implements the DTF print optimization pipeline: it turns
// an arbitrary raster image into a print-ready PNG for direct-to-film
// transfer. Five ordered stages operate on one NRGBA buffer — acquisition,
// conditional black-region knockout, print boost, sharpening, conditional
// texture overlay — followed by a lossless re-encode. Each stage consumes the
// previous stage's buffer and returns a new one of identical dimensions; the
// engine keeps no state between invocations, so concurrent Optimize calls
// are safe.
package optimize

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/inkforge/dtfopt/pkg/raster"
)

// Engine runs the pipeline. The zero value is not usable; construct with New
// and override parameter sets as needed before first use.
type Engine struct {
	Client   *http.Client
	Knockout KnockoutParams
	Boost    BoostParams
	Sharpen  SharpenParams
	Texture  TextureParams
}

// New returns an Engine with the calibrated default parameters and a 30s
// fetch timeout. A stalled acquisition fetch fails the invocation like any
// other AcquisitionError.
func New() *Engine {
	return &Engine{
		Client:   &http.Client{Timeout: 30 * time.Second},
		Knockout: DefaultKnockoutParams(),
		Boost:    DefaultBoostParams(),
		Sharpen:  DefaultSharpenParams(),
		Texture:  DefaultTextureParams(),
	}
}

// Optimize fetches ref, runs the pipeline and returns the encoded PNG bytes.
// Output dimensions always equal source dimensions. Any stage failure aborts
// the whole invocation; a half-processed print file is worse than none.
func (e *Engine) Optimize(ctx context.Context, ref string, opts Options) ([]byte, error) {
	src, err := e.acquire(ctx, ref)
	if err != nil {
		return nil, err
	}
	return e.OptimizeImage(src, opts)
}

// OptimizeImage runs the pipeline on an already decoded image. Useful when
// the caller holds the source bytes itself (tests, queue workers that fetch
// out of band).
func (e *Engine) OptimizeImage(img image.Image, opts Options) ([]byte, error) {
	src := raster.ToNRGBA(img)
	if src == nil {
		return nil, &AcquisitionError{Ref: "(in-memory)", Err: fmt.Errorf("nil source image")}
	}

	buf := src
	if opts.Substrate == SubstrateBlack {
		buf = knockout(buf, e.Knockout)
	}

	buf = boost(buf, e.Boost)

	buf = raster.UnsharpMask(buf, e.Sharpen.Sigma, e.Sharpen.Amount, e.Sharpen.Threshold)

	if opts.Style != StyleClean {
		textured, err := e.applyTexture(buf, opts.Style)
		if err != nil {
			return nil, err
		}
		buf = textured
	}

	return encodePNG(buf)
}

// applyTexture synthesizes the style's texture at the buffer's dimensions
// and composites it. Halftone uses an overlay blend; grunge multiplies, so
// it darkens and never lightens.
func (e *Engine) applyTexture(buf *image.NRGBA, style Style) (*image.NRGBA, error) {
	w, h := buf.Bounds().Dx(), buf.Bounds().Dy()
	var tex *image.NRGBA
	var mode raster.BlendMode
	switch style {
	case StyleHalftone:
		tex = halftoneTexture(w, h, e.Texture)
		mode = raster.BlendOverlay
	case StyleGrunge:
		tex = grungeTexture(w, h, e.Texture)
		mode = raster.BlendMultiply
	default:
		return nil, &ProcessingError{Stage: "texture", Err: fmt.Errorf("no texture for style %s", style)}
	}
	out, err := raster.Composite(buf, tex, mode)
	if err != nil {
		return nil, &ProcessingError{Stage: "texture", Err: err}
	}
	return out, nil
}
