package anpr

import "image"

// Detection is a candidate plate region in source pixel coordinates (xyxy).
// Coordinates are not clamped to the image bounds; clamping is the region
// selector's job so the detector stays a thin wrapper over model output.
type Detection struct {
	X1, Y1, X2, Y2 int
	Confidence     float64 // 0..1
}

// TextCandidate is a single recognized text region with its confidence.
type TextCandidate struct {
	Text       string
	Confidence float64 // 0..1
}

// PlateReading is the pipeline output: the canonical plate text (A-Z and 0-9
// only, possibly empty) and the recognizer confidence of the chosen candidate.
// Confidence is nil when no text was found.
type PlateReading struct {
	Text       string   `json:"text"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// FineDecision is the resolved outcome for a violation category.
type FineDecision struct {
	IsFined bool `json:"is_fined"`
	Amount  int  `json:"amount"`
}

// Detector locates the most confident plate region in an image.
type Detector interface {
	// DetectBest returns the single highest-confidence detection. ok is false
	// when no region clears the detector's threshold; that is a normal
	// outcome, not an error.
	DetectBest(img image.Image) (det Detection, ok bool, err error)
}

// Recognizer extracts text candidates from a normalized plate image. An empty
// result means the image holds no legible text.
type Recognizer interface {
	Recognize(img image.Image) ([]TextCandidate, error)
}
