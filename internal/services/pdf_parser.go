package services

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
)

// extractPDFPages returns the plain text of every page in page order. A page
// without extractable text yields an empty string so page positions hold.
func extractPDFPages(data []byte) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("%w: pdf parser panic: %v", ErrMalformedDocument, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open PDF: %w", ErrMalformedDocument, err)
	}

	totalPage := r.NumPage()
	pages = make([]string, 0, totalPage)

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		text, pageErr := pageText(r, pageIndex)
		if pageErr != nil {
			log.Warn().Err(pageErr).Int("page", pageIndex).Msg("⚠️  Skipping page without extractable text")
			text = ""
		}
		pages = append(pages, text)
	}

	return pages, nil
}

// pageText isolates per-page failures, including parser panics on broken
// content streams, from the rest of the document.
func pageText(r *pdf.Reader, pageIndex int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("page %d: parser panic: %v", pageIndex, rec)
		}
	}()

	page := r.Page(pageIndex)
	if page.V.IsNull() {
		return "", nil
	}

	text, err = page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("page %d: %w", pageIndex, err)
	}
	return text, nil
}
