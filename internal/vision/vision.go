// Package vision locates the content-bearing region of a scanned page.
//
// Scanned batches frequently place a small document (an ID card, a receipt)
// anywhere on an otherwise blank sheet. Matching embeddings against the full
// sheet dilutes the signal, so pages are cropped to their detected content
// region before embedding. Detection runs in two stages: an edge-based pass
// that favors compact high-contrast objects, then an adaptive-threshold pass
// that captures scattered text blocks, falling back to the full page when
// neither finds anything.
package vision

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Region is an axis-aligned bounding box in page pixel space.
type Region struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// FullPage returns the region covering an entire page of the given size.
func FullPage(width, height int) Region {
	return Region{X: 0, Y: 0, W: width, H: height}
}

// Area returns the region's pixel area.
func (r Region) Area() int {
	return r.W * r.H
}

// Empty reports whether the region has no area.
func (r Region) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Pad expands the region symmetrically by the given fraction of its width
// and height on each side, clamped to the page bounds.
func (r Region) Pad(fraction float64, pageWidth, pageHeight int) Region {
	px := int(float64(r.W) * fraction)
	py := int(float64(r.H) * fraction)

	x := max(0, r.X-px)
	y := max(0, r.Y-py)
	w := min(pageWidth-x, r.W+2*px)
	h := min(pageHeight-y, r.H+2*py)

	return Region{X: x, Y: y, W: w, H: h}
}

// Crop returns a copy of the region's pixels as a new image.
func Crop(img image.Image, r Region) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, r.W, r.H))
	src := image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H).Add(img.Bounds().Min)
	xdraw.Copy(dst, image.Point{}, img, src, xdraw.Src, nil)
	return dst
}
