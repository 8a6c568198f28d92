package anpr

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// blurSigma approximates a 3x3 Gaussian kernel: enough to knock down sensor
// noise without eroding character strokes.
const blurSigma = 0.7

// RemoveLeftStrip discards the leftmost stripRatio fraction of the image. On
// many plates that band holds a country badge or logo which OCR misreads as
// text. Applied to the still-colored region, before grayscale conversion.
func RemoveLeftStrip(img image.Image, stripRatio float64) image.Image {
	if stripRatio <= 0 {
		return img
	}
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	x1 := int(float64(w) * stripRatio)
	if x1 >= w {
		x1 = w - 1
	}
	return imaging.Crop(img, image.Rect(x1, 0, w, h))
}

// Normalize runs the fixed OCR preparation sequence, order-sensitive:
// strip removal, grayscale, cubic upscale, light blur, mean adaptive
// threshold. The output is a strictly two-valued NRGBA image (channels
// replicated for downstream compatibility) whose dimensions are upscaleFactor
// times the post-strip region.
func Normalize(region image.Image, stripRatio, upscaleFactor float64, window, bias int) *image.NRGBA {
	img := RemoveLeftStrip(region, stripRatio)
	gray := imaging.Grayscale(img)
	if upscaleFactor <= 0 {
		upscaleFactor = 2.0
	}
	w := int(float64(gray.Bounds().Dx()) * upscaleFactor)
	h := int(float64(gray.Bounds().Dy()) * upscaleFactor)
	up := imaging.Resize(gray, w, h, imaging.CatmullRom)
	up = imaging.Blur(up, blurSigma)
	return adaptiveThreshold(up, window, bias)
}

// adaptiveThreshold binarizes using the mean of a window x window neighborhood
// minus bias as the local cutoff. Plates photographed under uneven lighting
// still binarize correctly where a single global threshold fails. A
// summed-area table keeps the pass O(w*h) for any window size.
func adaptiveThreshold(img image.Image, window, bias int) *image.NRGBA {
	if window < 3 {
		window = 3
	}
	if window%2 == 0 {
		window++
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	lum := make([]int, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			lum[y*w+x] = int((r + g + bl) / 3 >> 8)
		}
	}
	sat := summedArea(lum, w, h)
	half := window / 2
	out := imaging.New(w, h, color.NRGBA{255, 255, 255, 255})
	for y := 0; y < h; y++ {
		ya, yb := y-half, y+half
		if ya < 0 {
			ya = 0
		}
		if yb > h-1 {
			yb = h - 1
		}
		for x := 0; x < w; x++ {
			xa, xb := x-half, x+half
			if xa < 0 {
				xa = 0
			}
			if xb > w-1 {
				xb = w - 1
			}
			mean := rectSum(sat, w, xa, ya, xb, yb) / ((xb - xa + 1) * (yb - ya + 1))
			if lum[y*w+x] < mean-bias {
				out.SetNRGBA(x, y, color.NRGBA{0, 0, 0, 255})
			}
		}
	}
	return out
}
