package pdf

import "errors"

var (
	// ErrUnreadable indicates the source PDF could not be opened or parsed.
	ErrUnreadable = errors.New("unreadable pdf")
	// ErrNoPages indicates the source PDF contains no pages.
	ErrNoPages = errors.New("pdf has no pages")
	// ErrOCRNotEnabled is returned when OCR is requested but unavailable,
	// either disabled by config or compiled out. Rebuild with -tags ocr
	// (requires tesseract) to enable it.
	ErrOCRNotEnabled = errors.New("ocr support not enabled")
)
