package anpr

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

const plateWhitelist = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 -"

// TesseractRecognizer reads plate text with Tesseract via gosseract. A fresh
// client is created per call: Tesseract handles are not safe for concurrent
// use, and per-call clients keep the pipeline reentrant without a lock.
type TesseractRecognizer struct {
	language string
}

// NewTesseractRecognizer probes the native Tesseract runtime once so a missing
// library or language pack is caught at startup. language defaults to "eng".
func NewTesseractRecognizer(language string) (*TesseractRecognizer, error) {
	if language == "" {
		language = "eng"
	}
	probe := gosseract.NewClient()
	defer probe.Close()
	if err := probe.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("%w: language %s: %v", ErrModelUnavailable, language, err)
	}
	return &TesseractRecognizer{language: language}, nil
}

// Recognize returns every text line found in the image with its confidence
// scaled into [0,1]. Zero results is a normal outcome, not an error.
func (r *TesseractRecognizer) Recognize(img image.Image) ([]TextCandidate, error) {
	tmp, err := os.CreateTemp("", "plate-*.png")
	if err != nil {
		return nil, fmt.Errorf("temp image: %w", err)
	}
	path := tmp.Name()
	_ = tmp.Close()
	defer os.Remove(path)
	if err := imaging.Save(img, path); err != nil {
		return nil, fmt.Errorf("save region: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()
	_ = client.SetLanguage(r.language)
	_ = client.SetWhitelist(plateWhitelist)
	_ = client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK)
	if err := client.SetImage(path); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("recognize: %w", err)
	}
	var out []TextCandidate
	for _, bb := range boxes {
		if strings.TrimSpace(bb.Word) == "" {
			continue
		}
		conf := bb.Confidence / 100
		if conf < 0 {
			conf = 0
		}
		if conf > 1 {
			conf = 1
		}
		out = append(out, TextCandidate{Text: bb.Word, Confidence: conf})
	}
	return out, nil
}
