package vision_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/cleavehq/cleave/internal/vision"
)

func TestFullPage(t *testing.T) {
	r := vision.FullPage(640, 480)
	if r.X != 0 || r.Y != 0 || r.W != 640 || r.H != 480 {
		t.Errorf("got %+v, want full 640x480 region", r)
	}
}

func TestRegionEmpty(t *testing.T) {
	tests := []struct {
		name     string
		region   vision.Region
		expected bool
	}{
		{"zero region", vision.Region{}, true},
		{"zero width", vision.Region{X: 1, Y: 1, W: 0, H: 5}, true},
		{"negative height", vision.Region{W: 5, H: -1}, true},
		{"valid", vision.Region{X: 2, Y: 3, W: 4, H: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.region.Empty(); got != tt.expected {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		name     string
		region   vision.Region
		expected vision.Region
	}{
		{
			"interior region expands both sides",
			vision.Region{X: 100, Y: 100, W: 100, H: 100},
			vision.Region{X: 90, Y: 90, W: 120, H: 120},
		},
		{
			"clamped at origin",
			vision.Region{X: 5, Y: 5, W: 100, H: 100},
			vision.Region{X: 0, Y: 0, W: 115, H: 115},
		},
		{
			"clamped at far edge",
			vision.Region{X: 290, Y: 290, W: 100, H: 100},
			vision.Region{X: 280, Y: 280, W: 120, H: 120},
		},
		{
			"full page stays full page",
			vision.Region{X: 0, Y: 0, W: 400, H: 400},
			vision.Region{X: 0, Y: 0, W: 400, H: 400},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.region.Pad(0.10, 400, 400)
			if got != tt.expected {
				t.Errorf("got %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestPadNeverEscapesPage(t *testing.T) {
	got := vision.Region{X: 350, Y: 350, W: 100, H: 100}.Pad(0.10, 400, 400)
	if got.X < 0 || got.Y < 0 || got.X+got.W > 400 || got.Y+got.H > 400 {
		t.Errorf("padded region %+v escapes 400x400 page", got)
	}
}

func TestCrop(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	img.Set(4, 5, color.RGBA{R: 200, A: 255})

	cropped := vision.Crop(img, vision.Region{X: 3, Y: 4, W: 4, H: 4})

	bounds := cropped.Bounds()
	if bounds.Dx() != 4 || bounds.Dy() != 4 {
		t.Fatalf("cropped size: got %dx%d, want 4x4", bounds.Dx(), bounds.Dy())
	}

	r, _, _, _ := cropped.At(1, 1).RGBA()
	if uint8(r>>8) != 200 {
		t.Errorf("pixel (4,5) not at cropped (1,1): got red %d, want 200", uint8(r>>8))
	}
}
