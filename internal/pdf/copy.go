package pdf

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PageCount returns the number of pages in the PDF at path.
func (p *Processor) PageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	count, err := api.PageCount(f, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return count, nil
}

// PageCountBytes returns the number of pages in an in-memory PDF.
func (p *Processor) PageCountBytes(data []byte) (int, error) {
	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return count, nil
}

// CopyPageRange writes pages [start, end) of the source PDF to w. pdfcpu's
// trim operation carries pages over with their resources intact, so output
// pages render identically to the source.
func (p *Processor) CopyPageRange(path string, start, end int, w io.Writer) error {
	if start < 0 || end <= start {
		return fmt.Errorf("invalid page range [%d, %d)", start, end)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	// pdfcpu page selections are 1-based and inclusive.
	selection := []string{fmt.Sprintf("%d-%d", start+1, end)}
	if err := api.Trim(f, w, selection, nil); err != nil {
		return fmt.Errorf("copy pages [%d, %d): %w", start, end, err)
	}

	return nil
}
