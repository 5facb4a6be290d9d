package splitter

import (
	"errors"
	"net/http"

	"github.com/cleavehq/cleave/internal/pdf"
	"github.com/cleavehq/cleave/internal/templates"
)

// Domain errors for split and train operations.
var (
	// ErrNoTemplates means inference was attempted against an empty template
	// store; at least one trained template is required.
	ErrNoTemplates = errors.New("no templates trained")
	// ErrNoFirstPages means no page in the composite matched any template;
	// a document with no recognized first page cannot be split.
	ErrNoFirstPages = errors.New("no first pages identified")
	// ErrPageCountMismatch means a written output's page count differs from
	// its boundary. This signals corruption in page copying, never a
	// recoverable condition.
	ErrPageCountMismatch = errors.New("output page count mismatch")
	// ErrInvalidFile marks a rejected upload.
	ErrInvalidFile = errors.New("invalid file")
	// ErrFileTooLarge marks an upload over the configured size limit.
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
)

// MapHTTPStatus maps split domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNoTemplates), errors.Is(err, ErrNoFirstPages):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidFile),
		errors.Is(err, templates.ErrInvalidName),
		errors.Is(err, pdf.ErrUnreadable),
		errors.Is(err, pdf.ErrNoPages):
		return http.StatusBadRequest
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
