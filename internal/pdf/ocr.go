//go:build ocr

package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

type ocrClient struct {
	client *gosseract.Client
}

func newOCRClient(language string) (*ocrClient, error) {
	client := gosseract.NewClient()
	if language != "" {
		if err := client.SetLanguage(language); err != nil {
			client.Close()
			return nil, fmt.Errorf("set ocr language %q: %w", language, err)
		}
	}
	return &ocrClient{client: client}, nil
}

// Recognize runs OCR on a page image. Used as a text source for scanned
// pages whose PDF text layer is empty.
func (p *Processor) Recognize(img image.Image) (string, error) {
	if p.ocr == nil {
		return "", ErrOCRNotEnabled
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode page for ocr: %w", err)
	}

	if err := p.ocr.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("set ocr image: %w", err)
	}

	text, err := p.ocr.client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}
