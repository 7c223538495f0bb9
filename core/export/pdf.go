package export

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfMargin     = 15.0
	pdfLineHeight = 7.0
	pdfFontSize   = 11.0
)

// encodePDF lays the plan out on A4 pages with wrapped lines, breaking to a
// new page when the cursor passes the bottom margin.
func encodePDF(content string) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	doc.SetAutoPageBreak(true, pdfMargin)
	doc.AddPage()
	doc.SetFont("Helvetica", "", pdfFontSize)

	pageW, _ := doc.GetPageSize()
	usable := pageW - 2*pdfMargin

	tr := doc.UnicodeTranslatorFromDescriptor("")
	for _, line := range splitLines(content) {
		if line == "" {
			doc.Ln(pdfLineHeight)
			continue
		}
		for _, wrapped := range doc.SplitText(tr(line), usable) {
			doc.CellFormat(usable, pdfLineHeight, wrapped, "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
