// Package plate finds license-plate regions in camera frames and
// canonicalizes the text read from them.
package plate

import (
	"image"
	"sort"

	"gocv.io/x/gocv"
)

// Config holds the localizer's geometry parameters.
type Config struct {
	// Bilateral filter: smooths noise while keeping plate edges sharp.
	BilateralDiameter int
	SigmaColor        float64
	SigmaSpace        float64

	// Canny edge detection thresholds.
	CannyLow  float32
	CannyHigh float32

	// MaxCandidates is how many of the largest contours to examine.
	MaxCandidates int

	// ApproxEpsilon is the polygon approximation tolerance as a
	// fraction of the contour perimeter.
	ApproxEpsilon float64
}

// DefaultConfig returns the tuned parameters for plate localization.
func DefaultConfig() Config {
	return Config{
		BilateralDiameter: 11,
		SigmaColor:        17,
		SigmaSpace:        17,
		CannyLow:          30,
		CannyHigh:         200,
		MaxCandidates:     10,
		ApproxEpsilon:     0.02,
	}
}

// Localizer finds a quadrilateral plate-shaped region in a frame using
// edge and contour geometry.
type Localizer struct {
	config Config
}

// NewLocalizer creates a localizer with the given configuration.
func NewLocalizer(cfg Config) *Localizer {
	return &Localizer{config: cfg}
}

// Locate finds the most likely plate region in the frame.
// It returns false when no contour among the largest candidates
// approximates to exactly four vertices. A miss is an expected
// per-frame outcome, not an error.
//
// On success the returned Region owns a grayscale copy of the frame;
// the caller must Close it.
func (l *Localizer) Locate(frame gocv.Mat) (Region, bool) {
	if frame.Empty() {
		return Region{}, false
	}

	var gray gocv.Mat
	if frame.Channels() == 1 {
		gray = frame.Clone()
	} else {
		gray = gocv.NewMat()
		gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)
	}

	smoothed := gocv.NewMat()
	defer smoothed.Close()
	gocv.BilateralFilter(gray, &smoothed, l.config.BilateralDiameter,
		l.config.SigmaColor, l.config.SigmaSpace)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(smoothed, &edges, l.config.CannyLow, l.config.CannyHigh)

	contours := gocv.FindContours(edges, gocv.RetrievalTree, gocv.ChainApproxSimple)
	defer contours.Close()

	// Rank contours by enclosed area. Plates are large rigid rectangles
	// relative to background clutter, so area is the discriminator.
	type candidate struct {
		index int
		area  float64
	}
	candidates := make([]candidate, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		candidates = append(candidates, candidate{
			index: i,
			area:  gocv.ContourArea(contours.At(i)),
		})
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].area > candidates[j].area
	})
	if len(candidates) > l.config.MaxCandidates {
		candidates = candidates[:l.config.MaxCandidates]
	}

	// First quadrilateral in area-descending order wins.
	for _, c := range candidates {
		contour := contours.At(c.index)
		peri := gocv.ArcLength(contour, true)
		approx := gocv.ApproxPolyDP(contour, l.config.ApproxEpsilon*peri, true)
		if approx.Size() == 4 {
			quad := approx.ToPoints()
			approx.Close()
			return Region{Quad: quad, Gray: gray}, true
		}
		approx.Close()
	}

	gray.Close()
	return Region{}, false
}

// boundingBox returns the axis-aligned bounding box of the points,
// clamped to the given image bounds.
func boundingBox(points []image.Point, bounds image.Rectangle) image.Rectangle {
	if len(points) == 0 {
		return image.Rectangle{}
	}
	box := image.Rectangle{Min: points[0], Max: points[0].Add(image.Pt(1, 1))}
	for _, p := range points[1:] {
		box = box.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
	}
	return box.Intersect(bounds)
}
