package anpr

import "errors"

// ErrEmptyImage is returned when an input image has zero width or height.
var ErrEmptyImage = errors.New("image has zero width or height")

// ErrModelUnavailable wraps model initialization failures. Callers must treat
// it as fatal at startup: the service must not serve without working models.
var ErrModelUnavailable = errors.New("model unavailable")
