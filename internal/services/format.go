package services

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// DocumentFormat is the declared format of an uploaded document. It is decided
// once from the filename and carried with the bytes from then on.
type DocumentFormat string

const (
	FormatPDF  DocumentFormat = "pdf"
	FormatDOCX DocumentFormat = "docx"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrMalformedDocument = errors.New("malformed document")
)

// DetectFormat maps a filename suffix to a format. Only the suffix is
// inspected; the content is never sniffed.
func DetectFormat(filename string) (DocumentFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// ParseFormat validates a stored format tag.
func ParseFormat(tag string) (DocumentFormat, error) {
	switch format := DocumentFormat(strings.ToLower(tag)); format {
	case FormatPDF, FormatDOCX:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, tag)
	}
}

// Extension returns the filename suffix for the format, including the dot.
func (f DocumentFormat) Extension() string {
	return "." + string(f)
}
