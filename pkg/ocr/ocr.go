// Package ocr extracts text from cropped plate regions.
// Recognition is pluggable: the pipeline depends only on the Recognizer
// interface and takes the first (highest-priority) result as the
// candidate plate text.
package ocr

import "gocv.io/x/gocv"

// Result is one recognized text span with its confidence (0.0-1.0).
type Result struct {
	Text       string
	Confidence float64
}

// Recognizer reads text spans from a cropped grayscale region.
// An empty slice means no text was detected; that is an expected
// outcome, not an error.
type Recognizer interface {
	Read(region gocv.Mat) ([]Result, error)
	Close() error
}
