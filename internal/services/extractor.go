package services

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Media types accepted for uploaded resumes.
const (
	MediaTypePDF  = "application/pdf"
	MediaTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

type TextExtractorService interface {
	ExtractText(data []byte, mediaType string) (string, error)
}

type textExtractorService struct{}

func NewTextExtractorService() TextExtractorService {
	return &textExtractorService{}
}

// ExtractText implements TextExtractorService.
func (t *textExtractorService) ExtractText(data []byte, mediaType string) (string, error) {
	switch mediaType {
	case MediaTypePDF:
		return t.extractPDF(data)
	case MediaTypeDOCX:
		return t.extractDOCX(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mediaType)
	}
}

func (t *textExtractorService) extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: unreadable PDF: %v", ErrUnsupportedFormat, err)
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Image-only or broken pages contribute nothing
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	text := CleanText(textBuilder.String())
	if text == "" {
		return "", fmt.Errorf("%w: no text on any page", ErrExtractionEmpty)
	}

	return text, nil
}

func (t *textExtractorService) extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: unreadable DOCX: %v", ErrUnsupportedFormat, err)
	}
	defer doc.Close()

	text := CleanText(docxPlainText(doc.Editable().GetContent()))
	if text == "" {
		return "", fmt.Errorf("%w: document body is empty", ErrExtractionEmpty)
	}

	return text, nil
}

var (
	docxParagraphPattern = regexp.MustCompile(`</w:p>`)
	docxTextRunPattern   = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)
)

// docxPlainText pulls the visible text runs out of the document XML,
// one line per paragraph.
func docxPlainText(content string) string {
	var lines []string
	for _, para := range docxParagraphPattern.Split(content, -1) {
		var runs []string
		for _, m := range docxTextRunPattern.FindAllStringSubmatch(para, -1) {
			runs = append(runs, html.UnescapeString(m[1]))
		}
		if len(runs) > 0 {
			lines = append(lines, strings.Join(runs, ""))
		}
	}
	return strings.Join(lines, "\n")
}

// CleanText trims per-line whitespace and drops blank lines.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
