package vision

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

// mask is a binary image stored row-major; nonzero bytes are foreground.
type mask struct {
	pix    []uint8
	width  int
	height int
}

func newMask(width, height int) *mask {
	return &mask{pix: make([]uint8, width*height), width: width, height: height}
}

func (m *mask) at(x, y int) bool {
	return m.pix[y*m.width+x] != 0
}

func (m *mask) set(x, y int) {
	m.pix[y*m.width+x] = 1
}

// grayscale converts any image to 8-bit grayscale with a zero-origin bounds.
func grayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Draw(gray, gray.Bounds(), img, bounds.Min, xdraw.Src)
	return gray
}

// edgeMask marks pixels whose Sobel gradient magnitude meets the threshold.
func edgeMask(gray *image.Gray, threshold float64) *mask {
	width, height := gray.Rect.Dx(), gray.Rect.Dy()
	out := newMask(width, height)

	if width < 3 || height < 3 {
		return out
	}

	at := func(x, y int) int {
		return int(gray.Pix[y*gray.Stride+x])
	}

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			gx := -at(x-1, y-1) + at(x+1, y-1) +
				-2*at(x-1, y) + 2*at(x+1, y) +
				-at(x-1, y+1) + at(x+1, y+1)
			gy := -at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1) +
				at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)

			if math.Sqrt(float64(gx*gx+gy*gy)) >= threshold {
				out.set(x, y)
			}
		}
	}

	return out
}

// dilate grows foreground regions by one pixel in every direction (3x3 kernel).
func dilate(m *mask) *mask {
	out := newMask(m.width, m.height)

	for y := range m.height {
		for x := range m.width {
			if !m.at(x, y) {
				continue
			}
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx >= 0 && nx < m.width && ny >= 0 && ny < m.height {
						out.set(nx, ny)
					}
				}
			}
		}
	}

	return out
}

// adaptiveThreshold marks pixels darker than their local neighborhood mean
// minus bias. Dark-on-light text binarizes to foreground regardless of
// uneven scan illumination.
func adaptiveThreshold(gray *image.Gray, window, bias int) *mask {
	width, height := gray.Rect.Dx(), gray.Rect.Dy()
	out := newMask(width, height)
	if width == 0 || height == 0 {
		return out
	}

	// Summed-area table, one extra row/column of zeros.
	integral := make([]int64, (width+1)*(height+1))
	stride := width + 1
	for y := range height {
		var rowSum int64
		for x := range width {
			rowSum += int64(gray.Pix[y*gray.Stride+x])
			integral[(y+1)*stride+x+1] = integral[y*stride+x+1] + rowSum
		}
	}

	radius := window / 2
	for y := range height {
		y0 := max(0, y-radius)
		y1 := min(height-1, y+radius)
		for x := range width {
			x0 := max(0, x-radius)
			x1 := min(width-1, x+radius)

			count := int64((x1 - x0 + 1) * (y1 - y0 + 1))
			sum := integral[(y1+1)*stride+x1+1] -
				integral[y0*stride+x1+1] -
				integral[(y1+1)*stride+x0] +
				integral[y0*stride+x0]

			mean := sum / count
			if int64(gray.Pix[y*gray.Stride+x]) < mean-int64(bias) {
				out.set(x, y)
			}
		}
	}

	return out
}
