package export

import (
	"fmt"
	"strings"
)

// Format selects the download encoding for an improved plan.
type Format string

const (
	FormatTxt  Format = "txt"
	FormatPDF  Format = "pdf"
	FormatDocx Format = "docx"
)

// ContentType returns the MIME type served with the download.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatDocx:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Valid reports whether f is a supported encoding.
func (f Format) Valid() bool {
	switch f {
	case FormatTxt, FormatPDF, FormatDocx:
		return true
	}
	return false
}

// FileName builds the download name from the report title, a marker that the
// plan is the improved revision, and the format extension.
func FileName(title string, f Format) string {
	base := strings.TrimSpace(title)
	if base == "" {
		base = "improved-plan"
	}
	base = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, base)
	return fmt.Sprintf("%s (Improved).%s", base, f)
}

func splitLines(content string) []string {
	return strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
}

// Encode renders content in the requested format.
func Encode(content string, f Format) ([]byte, error) {
	switch f {
	case FormatTxt:
		return []byte(content), nil
	case FormatPDF:
		return encodePDF(content)
	case FormatDocx:
		return encodeDocx(content)
	}
	return nil, fmt.Errorf("unsupported export format %q", f)
}
