package export

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestEncodeTxtIsVerbatim(t *testing.T) {
	content := "Revised Plan\n\nEncrypt data at rest.\n"
	out, err := Encode(content, FormatTxt)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != content {
		t.Fatalf("txt export mutated the content: %q", out)
	}
}

func TestEncodePDFProducesDocument(t *testing.T) {
	long := strings.Repeat("Define specific Recovery Time Objectives for every critical system. ", 200)
	out, err := Encode("Revised Plan\n\n"+long, FormatPDF)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output does not start with a PDF header: %q", out[:8])
	}
	// Enough content to force at least a second page.
	if n := bytes.Count(out, []byte("/Type /Page")); n < 2 {
		t.Fatalf("page objects = %d, want >= 2", n)
	}
}

func TestEncodeDocxParagraphPerLine(t *testing.T) {
	out, err := Encode("Title & Scope\nSecond <line>\n\nFourth", FormatDocx)
	if err != nil {
		t.Fatal(err)
	}
	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	if err != nil {
		t.Fatal(err)
	}
	var doc string
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		doc = string(raw)
	}
	if doc == "" {
		t.Fatal("archive is missing word/document.xml")
	}
	if !strings.Contains(doc, "Title &amp; Scope") {
		t.Fatalf("ampersand not escaped: %s", doc)
	}
	if !strings.Contains(doc, "Second &lt;line&gt;") {
		t.Fatalf("angle brackets not escaped: %s", doc)
	}
	// One paragraph per line, empty lines included.
	if n := strings.Count(doc, "<w:p>") + strings.Count(doc, "<w:p/>"); n != 4 {
		t.Fatalf("paragraphs = %d, want 4", n)
	}
}

func TestFileName(t *testing.T) {
	got := FileName("Q3: Mobile/Banking App", FormatPDF)
	want := "Q3- Mobile-Banking App (Improved).pdf"
	if got != want {
		t.Fatalf("FileName = %q, want %q", got, want)
	}
	if got := FileName("  ", FormatTxt); got != "improved-plan (Improved).txt" {
		t.Fatalf("FileName fallback = %q", got)
	}
}

func TestContentTypes(t *testing.T) {
	if got := FormatPDF.ContentType(); got != "application/pdf" {
		t.Fatalf("pdf content type = %q", got)
	}
	if !strings.Contains(FormatDocx.ContentType(), "wordprocessingml") {
		t.Fatalf("docx content type = %q", FormatDocx.ContentType())
	}
	if f := Format("csv"); f.Valid() {
		t.Fatal("csv should not be a valid format")
	}
}

func TestEncodeRejectsUnknownFormat(t *testing.T) {
	if _, err := Encode("x", Format("csv")); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
