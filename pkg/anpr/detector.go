package anpr

import (
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
)

// gradientHalfScore is the mean horizontal gradient at which a window scores
// 0.5. Scores approach 1 asymptotically for sharper windows.
const gradientHalfScore = 24.0

// defaultMinDetectionScore discards windows whose gradient density is in the
// range produced by plain vehicle bodywork.
const defaultMinDetectionScore = 0.35

// bestDetection picks the strictly highest-confidence candidate. Ties keep the
// first-encountered one, so a rerun over the same slice is stable.
func bestDetection(cands []Detection) (Detection, bool) {
	if len(cands) == 0 {
		return Detection{}, false
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if c.Confidence > best.Confidence {
			best = c
		}
	}
	return best, true
}

// GradientDetector is the built-in plate locator. It scores sliding windows of
// plate-like aspect ratio by their horizontal gradient density: plate
// characters produce dense vertical edges against otherwise smooth bodywork.
// The detector holds no mutable state after construction, so concurrent calls
// are safe.
type GradientDetector struct {
	minScore float64
}

// NewGradientDetector builds the detector. weightsPath is the slot for a
// model-backed drop-in replacement; when non-empty the file must exist so a
// misconfigured deployment fails at startup instead of on the first request.
func NewGradientDetector(weightsPath string, minScore float64) (*GradientDetector, error) {
	if weightsPath != "" {
		if _, err := os.Stat(weightsPath); err != nil {
			return nil, fmt.Errorf("%w: weights %s: %v", ErrModelUnavailable, weightsPath, err)
		}
	}
	if minScore <= 0 || minScore >= 1 {
		minScore = defaultMinDetectionScore
	}
	return &GradientDetector{minScore: minScore}, nil
}

// DetectBest scans candidate windows and returns the single best-scoring one.
// ok is false when no window clears the threshold; very small frames skip the
// scan entirely and report no detection.
func (d *GradientDetector) DetectBest(img image.Image) (Detection, bool, error) {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if w < 16 || h < 16 {
		return Detection{}, false, nil
	}
	gray := imaging.Grayscale(img)
	grad := make([]int, w*h)
	for y := 0; y < h; y++ {
		for x := 1; x < w; x++ {
			dv := int(gray.Pix[y*gray.Stride+x*4]) - int(gray.Pix[y*gray.Stride+(x-1)*4])
			if dv < 0 {
				dv = -dv
			}
			grad[y*w+x] = dv
		}
	}
	sat := summedArea(grad, w, h)

	var cands []Detection
	for _, div := range []int{3, 2} {
		ww := w / div
		wh := ww / 4 // typical plate aspect
		if wh < 8 {
			wh = 8
		}
		if wh > h {
			wh = h
		}
		stepX := ww / 4
		stepY := wh / 2
		if stepX < 1 {
			stepX = 1
		}
		if stepY < 1 {
			stepY = 1
		}
		for y := 0; y+wh <= h; y += stepY {
			for x := 0; x+ww <= w; x += stepX {
				mean := float64(rectSum(sat, w, x, y, x+ww-1, y+wh-1)) / float64(ww*wh)
				score := mean / (mean + gradientHalfScore)
				if score < d.minScore {
					continue
				}
				cands = append(cands, Detection{X1: x, Y1: y, X2: x + ww, Y2: y + wh, Confidence: score})
			}
		}
	}
	det, ok := bestDetection(cands)
	return det, ok, nil
}
