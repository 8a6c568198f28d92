package anpr

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Library-level fallback crop defaults, applied when a caller passes
// non-positive ratios. The service config uses wider defaults (0.95/0.55).
const (
	defaultCenterWidthRatio  = 0.85
	defaultCenterHeightRatio = 0.45
)

// clampRect clamps each coordinate independently into [0,W-1] horizontally and
// [0,H-1] vertically. Clamping an already in-bounds rectangle is a no-op.
func clampRect(x1, y1, x2, y2, w, h int) (int, int, int, int) {
	clamp := func(v, max int) int {
		if v < 0 {
			return 0
		}
		if v > max {
			return max
		}
		return v
	}
	return clamp(x1, w-1), clamp(y1, h-1), clamp(x2, w-1), clamp(y2, h-1)
}

// CenterRegion returns the deterministic fallback crop: a rectangle of
// round(W*widthRatio) x round(H*heightRatio) centered in the image, clipped to
// the image bounds. Plates sit around the frame center often enough for this
// to recover text when detection misses.
func CenterRegion(img image.Image, widthRatio, heightRatio float64) image.Image {
	if widthRatio <= 0 {
		widthRatio = defaultCenterWidthRatio
	}
	if heightRatio <= 0 {
		heightRatio = defaultCenterHeightRatio
	}
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	cw := int(math.Round(float64(w) * widthRatio))
	ch := int(math.Round(float64(h) * heightRatio))
	if cw < 1 {
		cw = 1
	}
	if ch < 1 {
		ch = 1
	}
	x1 := (w - cw) / 2
	if x1 < 0 {
		x1 = 0
	}
	y1 := (h - ch) / 2
	if y1 < 0 {
		y1 = 0
	}
	x2 := x1 + cw
	if x2 > w {
		x2 = w
	}
	y2 := y1 + ch
	if y2 > h {
		y2 = h
	}
	return imaging.Crop(img, image.Rect(x1, y1, x2, y2))
}

// SelectRegion produces the sub-image to analyze: the clamped detection
// rectangle when a detection is present, otherwise the centered fallback crop.
// A rectangle that degenerates to zero area after clamping takes the fallback
// path instead of failing. For inputs of at least 1x1 the output is always a
// non-empty sub-image.
func SelectRegion(img image.Image, det *Detection, widthRatio, heightRatio float64) image.Image {
	if det != nil {
		w := img.Bounds().Dx()
		h := img.Bounds().Dy()
		x1, y1, x2, y2 := clampRect(det.X1, det.Y1, det.X2, det.Y2, w, h)
		if x2 > x1 && y2 > y1 {
			return imaging.Crop(img, image.Rect(x1, y1, x2, y2))
		}
	}
	return CenterRegion(img, widthRatio, heightRatio)
}
