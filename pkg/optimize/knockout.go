package optimize

import (
	"image"
	"math"
	"runtime"
	"sync"

	"github.com/inkforge/dtfopt/pkg/raster"
)

// knockout fades out large flat near-black fills while preserving thin dark
// linework. On a black substrate a flat black fill prints invisible ink; a
// thin black outline still reads as linework and must survive.
//
// Three passes over the stage input:
//  1. classify every pixel as near-black or not (the removal mask candidates);
//  2. keep only near-black pixels whose neighborhood density exceeds the
//     cluster threshold (drops thin lines, catches fills);
//  3. feather removed pixels by distance to the nearest kept near-black
//     pixel, so removal boundaries ramp to transparent instead of cutting.
//
// Pixels outside the removal set are bit-identical in the output, and no
// pixel's alpha ever increases.
func knockout(src *image.NRGBA, p KnockoutParams) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	// pass 1: near-black classification
	near := make([]uint8, w*h)
	thr := p.BlackThreshold
	tol := int(p.NeutralTolerance)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(x, y)
			r := src.Pix[i+0]
			g := src.Pix[i+1]
			bl := src.Pix[i+2]
			if r < thr && g < thr && bl < thr &&
				absDiff(r, g) < tol && absDiff(r, bl) < tol && absDiff(g, bl) < tol {
				near[y*w+x] = 1
			}
		}
	}

	// pass 2: cluster-density test via an integral image over the mask
	integral := raster.NewMaskIntegral(near, w, h)
	threshold := p.removalThreshold()
	removed := make([]uint8, w*h)
	forEachRow(h, func(y int) {
		for x := 0; x < w; x++ {
			if near[y*w+x] == 0 {
				continue
			}
			if float64(integral.CountWindow(x, y, p.ClusterRadius)) > threshold {
				removed[y*w+x] = 1
			}
		}
	})

	// pass 3: feathered removal. A removed pixel with no kept near-black
	// neighbor inside the feather window is deep inside a fill and goes
	// fully transparent (distance is +Inf, feather clamps to 1).
	out := raster.CloneNRGBA(src)
	kept := func(x, y int) bool {
		return near[y*w+x] == 1 && removed[y*w+x] == 0
	}
	forEachRow(h, func(y int) {
		for x := 0; x < w; x++ {
			if removed[y*w+x] == 0 {
				continue
			}
			minDist := raster.MinDistWindow(x, y, p.FeatherRadius, w, h, kept)
			feather := minDist / p.FeatherScale
			if math.IsInf(minDist, 1) || feather > 1 {
				feather = 1
			}
			i := out.PixOffset(x, y)
			a := float64(out.Pix[i+3]) * (1 - feather)
			out.Pix[i+3] = uint8(raster.ClampFloatToUint8(a))
		}
	})
	return out
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// forEachRow runs fn for every row index, fanned out over a worker pool.
// Rows only read the immutable inputs of their pass and write disjoint
// output rows, so results match the sequential order exactly.
func forEachRow(h int, fn func(y int)) {
	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	if workers > h {
		workers = h
	}
	jobs := make(chan int, h)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for y := range jobs {
				fn(y)
			}
		}()
	}
	for y := 0; y < h; y++ {
		jobs <- y
	}
	close(jobs)
	wg.Wait()
}
