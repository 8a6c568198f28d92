package anpr

import (
	"fmt"
	"image"
)

// Config carries every pipeline knob. Validated once at construction; a zero
// field takes its documented default.
type Config struct {
	WeightsPath         string  // detector weights; optional for the built-in detector
	MinDetectionScore   float64 // detections below this score are treated as absent
	FallbackWidthRatio  float64 // center-crop width fraction when detection is absent
	FallbackHeightRatio float64 // center-crop height fraction when detection is absent
	StripRatio          float64 // left badge-strip fraction removed before OCR
	UpscaleFactor       float64 // enlargement applied before thresholding
	ThresholdWindow     int     // adaptive threshold neighborhood (odd)
	ThresholdBias       int     // constant subtracted from the neighborhood mean
	Language            string  // tesseract language pack
	Fines               FineTable
}

// DefaultConfig returns the service-level defaults. The fallback crop is wider
// here than the CenterRegion library default on purpose: API callers get
// 0.95/0.55 while direct library use keeps 0.85/0.45. Both stay overridable.
func DefaultConfig() Config {
	return Config{
		MinDetectionScore:   defaultMinDetectionScore,
		FallbackWidthRatio:  0.95,
		FallbackHeightRatio: 0.55,
		StripRatio:          0.18,
		UpscaleFactor:       2.0,
		ThresholdWindow:     31,
		ThresholdBias:       10,
		Language:            "eng",
		Fines:               DefaultFineRules(),
	}
}

// Validate replaces out-of-range values with their defaults.
func (c *Config) Validate() {
	d := DefaultConfig()
	if c.MinDetectionScore <= 0 || c.MinDetectionScore >= 1 {
		c.MinDetectionScore = d.MinDetectionScore
	}
	if c.FallbackWidthRatio <= 0 || c.FallbackWidthRatio > 1 {
		c.FallbackWidthRatio = d.FallbackWidthRatio
	}
	if c.FallbackHeightRatio <= 0 || c.FallbackHeightRatio > 1 {
		c.FallbackHeightRatio = d.FallbackHeightRatio
	}
	if c.StripRatio < 0 || c.StripRatio >= 1 {
		c.StripRatio = d.StripRatio
	}
	if c.UpscaleFactor < 1 {
		c.UpscaleFactor = d.UpscaleFactor
	}
	if c.ThresholdWindow < 3 {
		c.ThresholdWindow = d.ThresholdWindow
	}
	if c.ThresholdBias < 0 {
		c.ThresholdBias = d.ThresholdBias
	}
	if c.Language == "" {
		c.Language = d.Language
	}
	if c.Fines == nil {
		c.Fines = DefaultFineRules()
	}
}

// Pipeline ties the detector and recognizer to the configured knobs. Models
// are constructed once at process start and shared read-only across requests;
// Process keeps no mutable state, so concurrent calls are safe.
type Pipeline struct {
	cfg Config
	det Detector
	rec Recognizer
}

// New builds a pipeline with the built-in gradient detector and the Tesseract
// recognizer. A failed model initialization is fatal for the caller.
func New(cfg Config) (*Pipeline, error) {
	cfg.Validate()
	det, err := NewGradientDetector(cfg.WeightsPath, cfg.MinDetectionScore)
	if err != nil {
		return nil, err
	}
	rec, err := NewTesseractRecognizer(cfg.Language)
	if err != nil {
		return nil, err
	}
	return NewWithModels(cfg, det, rec), nil
}

// NewWithModels builds a pipeline around injected model implementations.
func NewWithModels(cfg Config, det Detector, rec Recognizer) *Pipeline {
	cfg.Validate()
	return &Pipeline{cfg: cfg, det: det, rec: rec}
}

// Config returns the validated configuration in use.
func (p *Pipeline) Config() Config { return p.cfg }

// ResolveFine maps a violation category onto the configured fine table. An
// empty category means no violation was selected.
func (p *Pipeline) ResolveFine(category string) FineDecision {
	if category == "" {
		category = DefaultViolation
	}
	return p.cfg.Fines.Resolve(category)
}

// Process runs detection, region selection, normalization and recognition on
// one image and returns the canonical plate reading. No plate region and no
// legible text are both ordinary outcomes yielding an empty reading; inference
// errors are surfaced once and never retried here.
func (p *Pipeline) Process(img image.Image) (PlateReading, error) {
	if img == nil || img.Bounds().Dx() < 1 || img.Bounds().Dy() < 1 {
		return PlateReading{}, ErrEmptyImage
	}
	det, ok, err := p.det.DetectBest(img)
	if err != nil {
		return PlateReading{}, fmt.Errorf("detect: %w", err)
	}
	var detPtr *Detection
	if ok {
		detPtr = &det
	}
	region := SelectRegion(img, detPtr, p.cfg.FallbackWidthRatio, p.cfg.FallbackHeightRatio)
	normalized := Normalize(region, p.cfg.StripRatio, p.cfg.UpscaleFactor, p.cfg.ThresholdWindow, p.cfg.ThresholdBias)

	cands, err := p.rec.Recognize(normalized)
	if err != nil {
		return PlateReading{}, fmt.Errorf("recognize: %w", err)
	}
	if len(cands) == 0 {
		return PlateReading{}, nil
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if c.Confidence > best.Confidence {
			best = c
		}
	}
	conf := best.Confidence
	return PlateReading{Text: CanonicalizePlate(best.Text), Confidence: &conf}, nil
}
