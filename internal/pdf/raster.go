package pdf

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
)

// Rasterize renders every page of the PDF at path to an image, in page order.
// Rendering shells out to poppler's pdftoppm; there is no pure-Go PDF
// rasterizer, and poppler is the same renderer the rest of the scanning
// toolchain uses.
func (p *Processor) Rasterize(ctx context.Context, path string) ([]image.Image, error) {
	dir, err := os.MkdirTemp("", "cleave-raster-*")
	if err != nil {
		return nil, fmt.Errorf("raster temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	prefix := filepath.Join(dir, "page")
	cmd := exec.CommandContext(
		ctx,
		p.popplerBinary("pdftoppm"),
		"-png",
		"-r", strconv.Itoa(p.cfg.DPI),
		path,
		prefix,
	)

	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%w: pdftoppm: %v: %s", ErrUnreadable, err, out)
	}

	entries, err := filepath.Glob(prefix + "*.png")
	if err != nil {
		return nil, fmt.Errorf("collect rendered pages: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrNoPages
	}

	// pdftoppm zero-pads page numbers, so lexical order is page order.
	sort.Strings(entries)

	images := make([]image.Image, 0, len(entries))
	for _, entry := range entries {
		img, err := decodePNG(entry)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}

	return images, nil
}

func (p *Processor) popplerBinary(name string) string {
	if p.cfg.PopplerPath != "" {
		return filepath.Join(p.cfg.PopplerPath, name)
	}
	return name
}

func decodePNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rendered page %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode rendered page %s: %w", path, err)
	}
	return img, nil
}
