package raster

import "math"

// Windowed reductions over a per-pixel byte mask. Both the cluster-density
// pass and the feather pass of the knockout stage run on these, so the border
// truncation rules live in exactly one place.

// MaskIntegral is a summed-area table over a w x h byte mask, sized
// (w+1) x (h+1) so window sums need no special casing at row/column zero.
type MaskIntegral struct {
	w, h int
	sum  []int
}

// NewMaskIntegral builds the table. mask must hold one byte per pixel in
// row-major order; any non-zero byte counts as set.
func NewMaskIntegral(mask []uint8, w, h int) *MaskIntegral {
	mi := &MaskIntegral{w: w, h: h, sum: make([]int, (w+1)*(h+1))}
	for y := 0; y < h; y++ {
		rowSum := 0
		for x := 0; x < w; x++ {
			if mask[y*w+x] != 0 {
				rowSum++
			}
			idx := (y+1)*(w+1) + (x + 1)
			mi.sum[idx] = mi.sum[idx-(w+1)] + rowSum
		}
	}
	return mi
}

// CountWindow returns how many set pixels lie within the square window of
// half-width r centered at (x,y). The window truncates at the mask borders,
// so corner and edge counts come from smaller effective windows.
func (mi *MaskIntegral) CountWindow(x, y, r int) int {
	x0 := x - r
	y0 := y - r
	x1 := x + r
	y1 := y + r
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 >= mi.w {
		x1 = mi.w - 1
	}
	if y1 >= mi.h {
		y1 = mi.h - 1
	}
	w1 := mi.w + 1
	a := y0*w1 + x0
	b := y0*w1 + (x1 + 1)
	c := (y1+1)*w1 + x0
	d := (y1+1)*w1 + (x1 + 1)
	return mi.sum[d] - mi.sum[b] - mi.sum[c] + mi.sum[a]
}

// MinDistWindow scans the square window of half-width r centered at (x,y),
// truncated to the w x h grid, and returns the minimum Euclidean distance to
// a pixel for which keep returns true. Returns +Inf when the window holds no
// such pixel.
func MinDistWindow(x, y, r, w, h int, keep func(x, y int) bool) float64 {
	minSq := math.MaxInt
	for wy := y - r; wy <= y+r; wy++ {
		if wy < 0 || wy >= h {
			continue
		}
		for wx := x - r; wx <= x+r; wx++ {
			if wx < 0 || wx >= w {
				continue
			}
			if !keep(wx, wy) {
				continue
			}
			dx := wx - x
			dy := wy - y
			if d := dx*dx + dy*dy; d < minSq {
				minSq = d
			}
		}
	}
	if minSq == math.MaxInt {
		return math.Inf(1)
	}
	return math.Sqrt(float64(minSq))
}
