package services

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizedText is extracted document text after lowercasing. Lowercasing is
// the only normalization applied.
type NormalizedText string

// Document is an uploaded file held in memory with its declared format.
type Document struct {
	Data   []byte
	Format DocumentFormat
}

type TextExtractor interface {
	ExtractText(doc Document) (NormalizedText, error)
	ExtractFile(filePath string) (NormalizedText, DocumentFormat, error)
}

type textExtractor struct{}

func NewTextExtractor() TextExtractor {
	return &textExtractor{}
}

// ExtractText implements TextExtractor.
func (e *textExtractor) ExtractText(doc Document) (NormalizedText, error) {
	switch doc.Format {
	case FormatPDF:
		pages, err := extractPDFPages(doc.Data)
		if err != nil {
			return "", err
		}
		return normalize(joinPages(pages)), nil
	case FormatDOCX:
		paragraphs, err := extractDOCXParagraphs(doc.Data)
		if err != nil {
			return "", err
		}
		return normalize(joinParagraphs(paragraphs)), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, doc.Format)
	}
}

// ExtractFile implements TextExtractor.
func (e *textExtractor) ExtractFile(filePath string) (NormalizedText, DocumentFormat, error) {
	format, err := DetectFormat(filePath)
	if err != nil {
		return "", "", err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", format, fmt.Errorf("failed to read document: %w", err)
	}

	text, err := e.ExtractText(Document{Data: data, Format: format})
	return text, format, err
}

// joinPages terminates every page with a newline, the last one included.
func joinPages(pages []string) string {
	var textBuilder strings.Builder
	for _, page := range pages {
		textBuilder.WriteString(page)
		textBuilder.WriteString("\n")
	}
	return textBuilder.String()
}

// joinParagraphs separates paragraphs with a newline, without a trailing one.
func joinParagraphs(paragraphs []string) string {
	return strings.Join(paragraphs, "\n")
}

// normalize applies full Unicode lowercasing. A Caser keeps state, so one is
// built per call.
func normalize(text string) NormalizedText {
	return NormalizedText(cases.Lower(language.Und).String(text))
}
