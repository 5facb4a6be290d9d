package pdf

import (
	"context"
	"fmt"

	ledongthuc "github.com/ledongthuc/pdf"
)

// ExtractText returns the text layer of every page, in page order. Pages
// without extractable text yield empty strings; extraction errors on a
// single page are logged and degrade to an empty string, since scanned
// pages routinely have no usable text layer.
func (p *Processor) ExtractText(ctx context.Context, path string) ([]string, error) {
	f, reader, err := ledongthuc.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	total := reader.NumPage()
	texts := make([]string, 0, total)

	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			texts = append(texts, "")
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			p.logger.Warn("text extraction failed", "page", i-1, "error", err)
			text = ""
		}
		texts = append(texts, text)
	}

	return texts, nil
}
