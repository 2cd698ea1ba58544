package format

import (
	"archive/zip"
	"bytes"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{DOCX, "DOCX"},
		{XLSX, "XLSX"},
		{PPTX, "PPTX"},
		{ODT, "ODT"},
		{PDF, "PDF"},
		{ZIP, "ZIP"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{DOCX, ".docx"},
		{XLSX, ".xlsx"},
		{PPTX, ".pptx"},
		{ODT, ".odt"},
		{PDF, ".pdf"},
		{ZIP, ".zip"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"document.docx", DOCX},
		{"document.DOCX", DOCX},
		{"document.Docx", DOCX},
		{"macros.docm", DOCX},
		{"template.dotx", DOCX},
		{"template.DOTM", DOCX},
		{"book.xlsx", XLSX},
		{"deck.pptx", PPTX},
		{"document.odt", ODT},
		{"document.pdf", PDF},
		{"archive.zip", ZIP},
		{"document.doc", Unknown},
		{"document.txt", Unknown},
		{"document", Unknown},
		{"", Unknown},
		{"/path/to/file.docx", DOCX},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"PDF magic bytes", []byte("%PDF-1.4"), PDF},
		{"ZIP magic bytes", []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00}, ZIP},
		{"empty data", []byte{}, Unknown},
		{"short data", []byte{0x50, 0x4B}, Unknown},
		{"legacy word binary", []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1}, Unknown},
		{"text file", []byte("Hello, World!"), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

// buildZip creates an in-memory zip archive from name/content pairs.
func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}

func contentTypes(partName, contentType string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="` + partName + `" ContentType="` + contentType + `"/>
</Types>`
}

func TestDetectFromReader_Packages(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  Format
	}{
		{
			name: "docx by content type",
			files: map[string]string{
				"[Content_Types].xml": contentTypes("/word/document.xml",
					"application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"),
				"word/document.xml": "<w:document/>",
			},
			want: DOCX,
		},
		{
			name: "macro-enabled docm",
			files: map[string]string{
				"[Content_Types].xml": contentTypes("/word/document.xml",
					"application/vnd.ms-word.document.macroEnabled.main+xml"),
			},
			want: DOCX,
		},
		{
			name: "main part under a custom name",
			files: map[string]string{
				"[Content_Types].xml": contentTypes("/content/main.xml",
					"application/vnd.openxmlformats-officedocument.wordprocessingml.template.main+xml"),
				"content/main.xml": "<w:document/>",
			},
			want: DOCX,
		},
		{
			name:  "docx by part prefix",
			files: map[string]string{"word/document.xml": "<w:document/>"},
			want:  DOCX,
		},
		{
			name: "xlsx",
			files: map[string]string{
				"[Content_Types].xml": contentTypes("/xl/workbook.xml",
					"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"),
			},
			want: XLSX,
		},
		{
			name:  "pptx by part prefix",
			files: map[string]string{"ppt/presentation.xml": "<p:presentation/>"},
			want:  PPTX,
		},
		{
			name:  "odt",
			files: map[string]string{"mimetype": "application/vnd.oasis.opendocument.text"},
			want:  ODT,
		},
		{
			name:  "plain zip",
			files: map[string]string{"readme.txt": "hello"},
			want:  ZIP,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := buildZip(t, tt.files)
			got, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
			if err != nil {
				t.Fatalf("DetectFromReader() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectFromReader() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFromReader_PDF(t *testing.T) {
	data := []byte("%PDF-1.4\n%%EOF")

	format, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != PDF {
		t.Errorf("DetectFromReader() = %v, want PDF", format)
	}
}

func TestDetectFromReader_CorruptZip(t *testing.T) {
	data := []byte("PK\x03\x04 not really a zip archive")

	if _, err := DetectFromReader(bytes.NewReader(data), int64(len(data))); err == nil {
		t.Error("expected an error for a truncated archive")
	}
}

func TestDetectFromReader_Unknown(t *testing.T) {
	data := []byte("Hello, World! This is plain text.")

	format, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != Unknown {
		t.Errorf("DetectFromReader() = %v, want Unknown", format)
	}
}
