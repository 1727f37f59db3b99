package services

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// extractDOCXParagraphs returns the text of every top-level body paragraph in
// document order. Paragraphs nested in tables or text boxes are not listed on
// their own.
func extractDOCXParagraphs(data []byte) ([]string, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open DOCX: %w", ErrMalformedDocument, err)
	}
	defer r.Close()

	paragraphs, err := parseDocumentXML(r.Editable().GetContent())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse document.xml: %w", ErrMalformedDocument, err)
	}

	return paragraphs, nil
}

// parseDocumentXML walks word/document.xml. Paragraph text is the content of
// runs placed directly in the paragraph or in one of its hyperlinks: <w:t>
// text, <w:tab/> and <w:ptab/> as a tab, <w:br/> and <w:cr/> as a newline and
// <w:noBreakHyphen/> as a hyphen. Anything nested deeper inside a run, such
// as text boxes in drawings or their mc:Fallback copies, is not paragraph
// text. Tab stops declared in paragraph properties are ignored.
func parseDocumentXML(content string) ([]string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var (
		paragraphs []string
		current    strings.Builder
		stack      []string
		paraDepth  int // stack depth of the open body paragraph, 0 when none
		inText     bool
	)

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			parent := ""
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}
			stack = append(stack, t.Name.Local)

			if paraDepth == 0 {
				if t.Name.Local == "p" && parent == "body" {
					paraDepth = len(stack)
					current.Reset()
				}
				continue
			}

			if !isRunContent(stack[paraDepth:]) {
				continue
			}

			switch t.Name.Local {
			case "t":
				inText = true
			case "tab", "ptab":
				current.WriteByte('\t')
			case "br", "cr":
				current.WriteByte('\n')
			case "noBreakHyphen":
				current.WriteByte('-')
			}

		case xml.EndElement:
			if paraDepth > 0 {
				switch {
				case len(stack) == paraDepth:
					paragraphs = append(paragraphs, current.String())
					paraDepth = 0
					inText = false
				case t.Name.Local == "t":
					inText = false
				}
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case xml.CharData:
			if paraDepth > 0 && inText {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}

// isRunContent reports whether path, the element names below a paragraph,
// names a direct child of a run that belongs to that paragraph.
func isRunContent(path []string) bool {
	switch len(path) {
	case 2:
		return path[0] == "r"
	case 3:
		return path[0] == "hyperlink" && path[1] == "r"
	default:
		return false
	}
}
