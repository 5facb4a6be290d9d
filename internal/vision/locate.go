package vision

import "image"

// DefaultMinAreaRatio is the minimum component area, relative to the page,
// for a detected region to count as content.
const DefaultMinAreaRatio = 0.01

// padFraction is the symmetric expansion applied to the detected box so
// content at the detected edge is not clipped by the crop.
const padFraction = 0.10

const (
	edgeThreshold    = 150 // gradient magnitude for a pixel to count as an edge
	dilateIterations = 2

	adaptiveWindow = 11 // local window for the text-detection threshold
	adaptiveBias   = 2  // subtracted from the local mean before comparison
)

// Locate returns the bounding region of the page's content.
//
// Stage one detects edges, thickens them to bridge gaps, and takes the
// largest connected component whose bounding box covers at least
// minAreaRatio of the page. Stage two, used when no component survives,
// binarizes text-dense areas with a local adaptive threshold and takes the
// union box of all surviving components, which better captures scattered
// text forming one logical document. If both stages come up empty the full
// page is returned. The chosen box is padded by 10% per side, clamped to
// page bounds. The result always lies within the page and is never empty
// for a non-empty page.
func Locate(img image.Image, minAreaRatio float64) Region {
	if minAreaRatio <= 0 {
		minAreaRatio = DefaultMinAreaRatio
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return Region{}
	}

	gray := grayscale(img)
	minArea := int(float64(width*height) * minAreaRatio)

	box, ok := locateByEdges(gray, minArea)
	if !ok {
		box, ok = locateByText(gray, minArea)
	}
	if !ok {
		return FullPage(width, height)
	}

	return box.Pad(padFraction, width, height)
}

// locateByEdges finds the largest edge-connected object on the page.
// Works best for compact high-contrast content such as a card on a blank sheet.
func locateByEdges(gray *image.Gray, minArea int) (Region, bool) {
	edges := edgeMask(gray, edgeThreshold)
	for range dilateIterations {
		edges = dilate(edges)
	}

	best := Region{}
	for _, c := range components(edges) {
		if c.Area() >= minArea && c.Area() > best.Area() {
			best = c
		}
	}
	return best, !best.Empty()
}

// locateByText binarizes text-dense areas and unions every surviving
// component into one box.
func locateByText(gray *image.Gray, minArea int) (Region, bool) {
	mask := adaptiveThreshold(gray, adaptiveWindow, adaptiveBias)

	var union Region
	found := false
	for _, c := range components(mask) {
		if c.Area() < minArea {
			continue
		}
		if !found {
			union = c
			found = true
			continue
		}
		union = merge(union, c)
	}
	return union, found
}

func merge(a, b Region) Region {
	x := min(a.X, b.X)
	y := min(a.Y, b.Y)
	return Region{
		X: x,
		Y: y,
		W: max(a.X+a.W, b.X+b.W) - x,
		H: max(a.Y+a.H, b.Y+b.H) - y,
	}
}
