package optimize

import (
	"fmt"
	"math"
)

// Substrate is the fabric color the transfer will be pressed onto. It drives
// the black-knockout stage: large flat black fills are invisible on a black
// garment and only waste ink, so they get knocked out.
type Substrate int

const (
	SubstrateBlack Substrate = iota
	SubstrateWhite
	SubstrateGrey
	SubstrateColor
)

func (s Substrate) String() string {
	switch s {
	case SubstrateBlack:
		return "black"
	case SubstrateWhite:
		return "white"
	case SubstrateGrey:
		return "grey"
	case SubstrateColor:
		return "color"
	}
	return fmt.Sprintf("Substrate(%d)", int(s))
}

// ParseSubstrate accepts the lower-case substrate names.
func ParseSubstrate(s string) (Substrate, error) {
	switch s {
	case "black":
		return SubstrateBlack, nil
	case "white":
		return SubstrateWhite, nil
	case "grey", "gray":
		return SubstrateGrey, nil
	case "color":
		return SubstrateColor, nil
	}
	return 0, fmt.Errorf("unknown substrate %q (want black, white, grey or color)", s)
}

// Style selects the optional texture overlay applied after grading.
type Style int

const (
	StyleClean Style = iota
	StyleHalftone
	StyleGrunge
)

func (s Style) String() string {
	switch s {
	case StyleClean:
		return "clean"
	case StyleHalftone:
		return "halftone"
	case StyleGrunge:
		return "grunge"
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// ParseStyle accepts the lower-case style names.
func ParseStyle(s string) (Style, error) {
	switch s {
	case "clean":
		return StyleClean, nil
	case "halftone":
		return StyleHalftone, nil
	case "grunge":
		return StyleGrunge, nil
	}
	return 0, fmt.Errorf("unknown style %q (want clean, halftone or grunge)", s)
}

// Options is the per-invocation configuration. Created once per request and
// never mutated by the pipeline.
type Options struct {
	Substrate Substrate
	Style     Style
}

// KnockoutParams holds the tuned constants of the black-region knockout.
// The defaults are empirical print-shop values, not derived quantities; keep
// them unless you recalibrate against physical test presses.
type KnockoutParams struct {
	// BlackThreshold: a pixel is near-black only if R, G and B all fall
	// below this value.
	BlackThreshold uint8
	// NeutralTolerance: maximum pairwise channel difference for a pixel to
	// still count as neutral black rather than a very dark color.
	NeutralTolerance uint8
	// ClusterRadius: half-width of the square neighborhood used for the
	// cluster-density test.
	ClusterRadius int
	// ClusterFill: a near-black pixel is removed when its window count
	// exceeds pi * ClusterRadius^2 * ClusterFill. Thin linework sits well
	// below this density; flat fills sit well above it.
	ClusterFill float64
	// FeatherRadius: half-width of the window scanned for the nearest kept
	// near-black pixel when feathering a removed pixel.
	FeatherRadius int
	// FeatherScale: feather = clamp(minDist/FeatherScale, 0, 1).
	FeatherScale float64
}

// DefaultKnockoutParams returns the calibrated defaults (threshold 45,
// tolerance 12, radius 6, fill 0.5, 5x5 feather window, scale 2).
func DefaultKnockoutParams() KnockoutParams {
	return KnockoutParams{
		BlackThreshold:   45,
		NeutralTolerance: 12,
		ClusterRadius:    6,
		ClusterFill:      0.5,
		FeatherRadius:    2,
		FeatherScale:     2,
	}
}

// removalThreshold is the cluster count above which a near-black pixel is
// slated for removal.
func (p KnockoutParams) removalThreshold() float64 {
	r := float64(p.ClusterRadius)
	return math.Pi * r * r * p.ClusterFill
}

// BoostParams tunes the print-boost grading stage.
type BoostParams struct {
	SaturationFactor float64 // multiplicative, clamped to 1.0
	CurveBlend       float64 // weight of the s-curve in the lightness mix
}

func DefaultBoostParams() BoostParams {
	return BoostParams{SaturationFactor: 1.12, CurveBlend: 0.3}
}

// SharpenParams parameterizes the unsharp mask.
type SharpenParams struct {
	Sigma     float64
	Amount    float64
	Threshold float64
}

func DefaultSharpenParams() SharpenParams {
	return SharpenParams{Sigma: 0.8, Amount: 0.6, Threshold: 2}
}

// TextureParams tunes the halftone and grunge generators.
type TextureParams struct {
	HalftoneSpacing  int     // tile period in pixels
	HalftoneDiameter float64 // dot diameter in pixels
	HalftoneOpacity  float64 // dot alpha, 0..1
	GrungeDensity    float64 // probability a speckle pixel starts black
	GrungeSigma      float64 // blur softening the speckle into blotches
	GrungeSeed       int64   // 0 selects a fixed seed for reproducibility
}

func DefaultTextureParams() TextureParams {
	return TextureParams{
		HalftoneSpacing:  8,
		HalftoneDiameter: 6,
		HalftoneOpacity:  0.3,
		GrungeDensity:    0.3,
		GrungeSigma:      1.5,
		GrungeSeed:       0,
	}
}
