package splitter_test

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/cleavehq/cleave/internal/embeddings"
	"github.com/cleavehq/cleave/internal/templates"
	"github.com/cleavehq/cleave/pkg/lifecycle"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeEngine serves synthetic pages: each page is a uniform gray image whose
// intensity is taken from the grays slice, so downstream fakes can key off
// pixel values. CopyPageRange writes a payload that PageCountBytes decodes,
// letting assembly verification run without real PDFs.
type fakeEngine struct {
	grays    []uint8
	texts    []string
	miscount bool
}

func (e *fakeEngine) PageCount(path string) (int, error) {
	return len(e.grays), nil
}

func (e *fakeEngine) PageCountBytes(data []byte) (int, error) {
	var start, end int
	if _, err := fmt.Sscanf(string(data), "pdf:%d:%d", &start, &end); err != nil {
		return 0, err
	}
	if e.miscount {
		return end - start + 1, nil
	}
	return end - start, nil
}

func (e *fakeEngine) Rasterize(ctx context.Context, path string) ([]image.Image, error) {
	pages := make([]image.Image, len(e.grays))
	for i, gray := range e.grays {
		img := image.NewGray(image.Rect(0, 0, 64, 64))
		for p := range img.Pix {
			img.Pix[p] = gray
		}
		pages[i] = img
	}
	return pages, nil
}

func (e *fakeEngine) ExtractText(ctx context.Context, path string) ([]string, error) {
	return append([]string(nil), e.texts...), nil
}

func (e *fakeEngine) CopyPageRange(path string, start, end int, w io.Writer) error {
	_, err := fmt.Fprintf(w, "pdf:%d:%d", start, end)
	return err
}

func (e *fakeEngine) Recognize(img image.Image) (string, error) {
	return "", fmt.Errorf("no ocr in tests")
}

// memorySink is an in-memory storage.System.
type memorySink struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemorySink() *memorySink {
	return &memorySink{blobs: make(map[string][]byte)}
}

func (s *memorySink) Start(lc *lifecycle.Coordinator) error { return nil }

func (s *memorySink) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = data
	return nil
}

func (s *memorySink) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("blob %q not found", key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memorySink) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

func (s *memorySink) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blobs[key]
	return ok, nil
}

// grayImages derives a unit vector from the page's top-left pixel intensity,
// so a white page scores 1.0 against the unit template vector and a black
// page scores 0.0.
type grayImages struct{}

func (grayImages) EmbedImage(ctx context.Context, img image.Image) (embeddings.Vector, error) {
	r, _, _, _ := img.At(img.Bounds().Min.X, img.Bounds().Min.Y).RGBA()
	v := float64(color.Gray{Y: uint8(r >> 8)}.Y) / 255
	return embeddings.Vector{float32(v), float32(math.Sqrt(1 - v*v))}, nil
}

// unitTexts embeds every text as the unit template vector.
type unitTexts struct{}

func (unitTexts) EmbedText(ctx context.Context, text string) (embeddings.Vector, error) {
	return embeddings.Vector{1, 0}, nil
}

// fixedTemplates is an immutable in-memory templates.System.
type fixedTemplates struct {
	all []templates.Template
}

func (f *fixedTemplates) All() ([]templates.Template, error) {
	return append([]templates.Template(nil), f.all...), nil
}

func (f *fixedTemplates) Get(name string) (*templates.Template, error) {
	for i := range f.all {
		if f.all[i].Name == name {
			return &f.all[i], nil
		}
	}
	return nil, templates.ErrNotFound
}

func (f *fixedTemplates) Contains(name string) (bool, error) {
	_, err := f.Get(name)
	return err == nil, nil
}

func (f *fixedTemplates) Upsert(t templates.Template) error {
	return fmt.Errorf("read-only")
}
