//go:build !ocr

package pdf

import "image"

type ocrClient struct{}

func newOCRClient(language string) (*ocrClient, error) {
	return nil, ErrOCRNotEnabled
}

// Recognize returns ErrOCRNotEnabled in builds without the ocr tag.
func (p *Processor) Recognize(img image.Image) (string, error) {
	return "", ErrOCRNotEnabled
}
