package services

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDocx assembles a minimal DOCX archive in memory, one text run per
// paragraph.
func buildDocx(t *testing.T, paragraphs []string) []byte {
	t.Helper()

	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString(fmt.Sprintf(`<w:p><w:r><w:t>%s</w:t></w:r></w:p>`, p))
	}

	parts := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`,
		"_rels/.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml": fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>%s</w:body></w:document>`, body.String()),
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

// buildEmptyPDF assembles a minimal single-page PDF with no content
// stream, computing the xref offsets at runtime.
func buildEmptyPDF(t *testing.T) []byte {
	t.Helper()

	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>\nendobj\n",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		buf.WriteString(obj)
	}

	xrefStart := buf.Len()
	buf.WriteString(fmt.Sprintf("xref\n0 %d\n", len(objects)+1))
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		buf.WriteString(fmt.Sprintf("%010d 00000 n \n", off))
	}
	buf.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefStart))

	return buf.Bytes()
}

func TestExtractTextDOCX(t *testing.T) {
	extractor := NewTextExtractorService()
	data := buildDocx(t, []string{"Jane Doe", "5 years Python, AWS, Docker"})

	text, err := extractor.ExtractText(data, MediaTypeDOCX)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n5 years Python, AWS, Docker", text)
}

func TestExtractTextDOCXUnescapesEntities(t *testing.T) {
	extractor := NewTextExtractorService()
	data := buildDocx(t, []string{"Search &amp; Rescue"})

	text, err := extractor.ExtractText(data, MediaTypeDOCX)
	require.NoError(t, err)
	assert.Equal(t, "Search & Rescue", text)
}

func TestExtractTextDOCXEmptyBody(t *testing.T) {
	extractor := NewTextExtractorService()
	data := buildDocx(t, nil)

	_, err := extractor.ExtractText(data, MediaTypeDOCX)
	assert.ErrorIs(t, err, ErrExtractionEmpty)
}

func TestExtractTextEmptyPDF(t *testing.T) {
	extractor := NewTextExtractorService()

	_, err := extractor.ExtractText(buildEmptyPDF(t), MediaTypePDF)
	assert.ErrorIs(t, err, ErrExtractionEmpty)
}

func TestExtractTextUnreadablePDF(t *testing.T) {
	extractor := NewTextExtractorService()

	_, err := extractor.ExtractText([]byte("%PDF-1.4 not really a pdf"), MediaTypePDF)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtractTextUnsupportedMediaType(t *testing.T) {
	extractor := NewTextExtractorService()

	for _, mediaType := range []string{"text/plain", "application/msword", "image/png", ""} {
		_, err := extractor.ExtractText([]byte("plain text resume"), mediaType)
		assert.ErrorIs(t, err, ErrUnsupportedFormat, "media type %q", mediaType)
	}
}

func TestDocxPlainTextJoinsRunsWithinParagraph(t *testing.T) {
	content := `<w:p><w:r><w:t>Hello </w:t></w:r><w:r><w:t xml:space="preserve">World</w:t></w:r></w:p><w:p><w:r><w:t>Bye</w:t></w:r></w:p>`
	assert.Equal(t, "Hello World\nBye", docxPlainText(content))
}

func TestCleanText(t *testing.T) {
	in := "  line one \n\n\n   \n line two\t\n"
	assert.Equal(t, "line one\nline two", CleanText(in))
}
