package anpr

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

type stubDetector struct {
	det Detection
	ok  bool
	err error
}

func (s stubDetector) DetectBest(image.Image) (Detection, bool, error) {
	return s.det, s.ok, s.err
}

type stubRecognizer struct {
	cands []TextCandidate
	err   error
	lastW int
	lastH int
}

func (s *stubRecognizer) Recognize(img image.Image) ([]TextCandidate, error) {
	s.lastW = img.Bounds().Dx()
	s.lastH = img.Bounds().Dy()
	return s.cands, s.err
}

func testImage(w, h int) image.Image {
	return imaging.New(w, h, color.NRGBA{140, 140, 140, 255})
}

func TestProcessNoTextIsNotAnError(t *testing.T) {
	rec := &stubRecognizer{}
	p := NewWithModels(DefaultConfig(), stubDetector{}, rec)
	reading, err := p.Process(testImage(200, 100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reading.Text != "" || reading.Confidence != nil {
		t.Fatalf("expected empty reading got %+v", reading)
	}
}

func TestProcessSelectsMaxConfidence(t *testing.T) {
	rec := &stubRecognizer{cands: []TextCandidate{
		{Text: "IND", Confidence: 0.41},
		{Text: " 22 bh-6517 a ", Confidence: 0.88},
		{Text: "garbage", Confidence: 0.12},
	}}
	p := NewWithModels(DefaultConfig(), stubDetector{}, rec)
	reading, err := p.Process(testImage(200, 100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reading.Text != "22BH6517A" {
		t.Fatalf("expected 22BH6517A got %q", reading.Text)
	}
	if reading.Confidence == nil || *reading.Confidence != 0.88 {
		t.Fatalf("confidence must pass through unchanged, got %v", reading.Confidence)
	}
}

func TestProcessTieKeepsFirstCandidate(t *testing.T) {
	rec := &stubRecognizer{cands: []TextCandidate{
		{Text: "KA01AB1234", Confidence: 0.5},
		{Text: "KA01AB9999", Confidence: 0.5},
	}}
	p := NewWithModels(DefaultConfig(), stubDetector{}, rec)
	reading, err := p.Process(testImage(200, 100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reading.Text != "KA01AB1234" {
		t.Fatalf("tie must keep the first-seen candidate, got %q", reading.Text)
	}
}

func TestProcessEmptyImage(t *testing.T) {
	p := NewWithModels(DefaultConfig(), stubDetector{}, &stubRecognizer{})
	if _, err := p.Process(image.NewNRGBA(image.Rect(0, 0, 0, 0))); !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("expected ErrEmptyImage got %v", err)
	}
	if _, err := p.Process(nil); !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("expected ErrEmptyImage for nil image got %v", err)
	}
}

func TestProcessDegenerateDetectionFallsBack(t *testing.T) {
	rec := &stubRecognizer{}
	det := stubDetector{det: Detection{X1: 500, Y1: 80, X2: 400, Y2: 20, Confidence: 0.7}, ok: true}
	p := NewWithModels(DefaultConfig(), det, rec)
	if _, err := p.Process(testImage(200, 100)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// fallback crop 190x55, strip removes int(190*0.18)=34, then 2x upscale
	if rec.lastW != 312 || rec.lastH != 110 {
		t.Fatalf("expected recognizer input 312x110 got %dx%d", rec.lastW, rec.lastH)
	}
}

func TestProcessDetectionRegionDimensions(t *testing.T) {
	rec := &stubRecognizer{}
	det := stubDetector{det: Detection{X1: 10, Y1: 10, X2: 110, Y2: 60, Confidence: 0.9}, ok: true}
	p := NewWithModels(DefaultConfig(), det, rec)
	if _, err := p.Process(testImage(200, 100)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// detection crop 100x50, strip removes 18, then 2x upscale
	if rec.lastW != 164 || rec.lastH != 100 {
		t.Fatalf("expected recognizer input 164x100 got %dx%d", rec.lastW, rec.lastH)
	}
}

func TestProcessSurfacesRecognizerError(t *testing.T) {
	rec := &stubRecognizer{err: errors.New("engine crashed")}
	p := NewWithModels(DefaultConfig(), stubDetector{}, rec)
	if _, err := p.Process(testImage(200, 100)); err == nil {
		t.Fatalf("recognizer error must surface")
	}
}

func TestConfigValidateDefaults(t *testing.T) {
	var cfg Config
	cfg.Validate()
	if cfg.FallbackWidthRatio != 0.95 || cfg.FallbackHeightRatio != 0.55 {
		t.Fatalf("service-level fallback defaults wrong: %+v", cfg)
	}
	if cfg.StripRatio != 0.18 || cfg.UpscaleFactor != 2.0 {
		t.Fatalf("preprocess defaults wrong: %+v", cfg)
	}
	if cfg.ThresholdWindow != 31 || cfg.ThresholdBias != 10 {
		t.Fatalf("threshold defaults wrong: %+v", cfg)
	}
	if cfg.Fines == nil || cfg.Fines["Signal Jump"] != 1000 {
		t.Fatalf("fine table default missing: %+v", cfg.Fines)
	}
	// explicit zero strip ratio survives validation
	cfg2 := DefaultConfig()
	cfg2.StripRatio = 0
	cfg2.Validate()
	if cfg2.StripRatio != 0 {
		t.Fatalf("zero strip ratio must be respected, got %v", cfg2.StripRatio)
	}
}
