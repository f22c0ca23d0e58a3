package ocr

import (
	"fmt"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"
)

// TesseractConfig holds recognizer configuration.
type TesseractConfig struct {
	// Language is the trained data language code.
	Language string

	// Whitelist restricts recognition to these characters.
	Whitelist string
}

// DefaultTesseractConfig returns settings tuned for license plates:
// a single text line of uppercase alphanumerics.
func DefaultTesseractConfig() TesseractConfig {
	return TesseractConfig{
		Language:  "eng",
		Whitelist: "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 -",
	}
}

// Tesseract recognizes plate text using a local Tesseract engine.
type Tesseract struct {
	client *gosseract.Client
	mu     sync.Mutex // Protects the client; Tesseract is not thread-safe
}

// NewTesseract creates a Tesseract-backed recognizer.
func NewTesseract(cfg TesseractConfig) (*Tesseract, error) {
	client := gosseract.NewClient()

	if cfg.Language != "" {
		if err := client.SetLanguage(cfg.Language); err != nil {
			client.Close()
			return nil, fmt.Errorf("set language: %w", err)
		}
	}
	if cfg.Whitelist != "" {
		if err := client.SetWhitelist(cfg.Whitelist); err != nil {
			client.Close()
			return nil, fmt.Errorf("set whitelist: %w", err)
		}
	}
	// Plates are a single line of text.
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_LINE); err != nil {
		client.Close()
		return nil, fmt.Errorf("set page segmentation mode: %w", err)
	}

	return &Tesseract{client: client}, nil
}

// Read recognizes text spans in the cropped region, ordered by the
// engine's own priority. Returns an empty slice when nothing legible
// is found.
func (t *Tesseract) Read(region gocv.Mat) ([]Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if region.Empty() {
		return nil, nil
	}

	buf, err := gocv.IMEncode(gocv.PNGFileExt, region)
	if err != nil {
		return nil, fmt.Errorf("encode region: %w", err)
	}
	defer buf.Close()

	if err := t.client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	boxes, err := t.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("recognize: %w", err)
	}

	results := make([]Result, 0, len(boxes))
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}
		results = append(results, Result{
			Text:       text,
			Confidence: box.Confidence / 100.0,
		})
	}
	return results, nil
}

// Close releases the Tesseract engine.
func (t *Tesseract) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.client.Close()
}
