package plate

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Region is a localized plate candidate: the accepted quadrilateral and
// the grayscale frame it was found in. Consumed once by the recognizer.
type Region struct {
	Quad []image.Point
	Gray gocv.Mat
}

// Crop returns the grayscale frame cropped to the bounding box of the
// quadrilateral's filled mask. It returns false when the polygon is
// degenerate (zero foreground pixels). The caller must Close the
// returned Mat.
func (r Region) Crop() (gocv.Mat, bool) {
	if r.Gray.Empty() || len(r.Quad) < 3 {
		return gocv.Mat{}, false
	}

	mask := gocv.Zeros(r.Gray.Rows(), r.Gray.Cols(), gocv.MatTypeCV8UC1)
	defer mask.Close()

	pts := gocv.NewPointsVectorFromPoints([][]image.Point{r.Quad})
	gocv.FillPoly(&mask, pts, color.RGBA{R: 255, G: 255, B: 255, A: 0})
	pts.Close()

	if gocv.CountNonZero(mask) == 0 {
		return gocv.Mat{}, false
	}

	bounds := image.Rect(0, 0, r.Gray.Cols(), r.Gray.Rows())
	box := boundingBox(r.Quad, bounds)
	if box.Empty() {
		return gocv.Mat{}, false
	}

	view := r.Gray.Region(box)
	defer view.Close()
	return view.Clone(), true
}

// Close releases the region's grayscale buffer.
func (r *Region) Close() {
	if !r.Gray.Empty() {
		r.Gray.Close()
	}
}
