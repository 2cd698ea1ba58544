// Package format identifies the container format of an input before it is
// handed to the WordprocessingML parser.
package format

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"path/filepath"
	"strings"
)

// Format is a recognized input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOCX is a WordprocessingML package (documents, templates and their
	// macro-enabled variants).
	DOCX
	// XLSX is a SpreadsheetML package.
	XLSX
	// PPTX is a PresentationML package.
	PPTX
	// ODT is an OpenDocument text package.
	ODT
	// PDF is a PDF file.
	PDF
	// ZIP is a zip archive with no recognized package markers.
	ZIP
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOCX:
		return "DOCX"
	case XLSX:
		return "XLSX"
	case PPTX:
		return "PPTX"
	case ODT:
		return "ODT"
	case PDF:
		return "PDF"
	case ZIP:
		return "ZIP"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case DOCX:
		return ".docx"
	case XLSX:
		return ".xlsx"
	case PPTX:
		return ".pptx"
	case ODT:
		return ".odt"
	case PDF:
		return ".pdf"
	case ZIP:
		return ".zip"
	default:
		return ""
	}
}

// Detect determines the format from a filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx", ".docm", ".dotx", ".dotm":
		return DOCX
	case ".xlsx", ".xlsm":
		return XLSX
	case ".pptx", ".pptm":
		return PPTX
	case ".odt":
		return ODT
	case ".pdf":
		return PDF
	case ".zip":
		return ZIP
	default:
		return Unknown
	}
}

var (
	magicZIP = []byte("PK\x03\x04")
	magicPDF = []byte("%PDF")
)

// DetectFromMagic checks leading bytes. Zip-based formats report ZIP; use
// DetectFromReader to tell packages apart.
func DetectFromMagic(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, magicPDF):
		return PDF
	case bytes.HasPrefix(data, magicZIP):
		return ZIP
	default:
		return Unknown
	}
}

// DetectFromReader inspects the content to determine the format. For zip
// archives the package manifest is consulted.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 4)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}

	f := DetectFromMagic(magic[:n])
	if f != ZIP {
		return f, nil
	}
	return detectZIPFormat(r, size)
}

// Main part content types of the OOXML packages.
const (
	wordMainPrefix  = "application/vnd.openxmlformats-officedocument.wordprocessingml."
	wordMacroPrefix = "application/vnd.ms-word."
	sheetMainPrefix = "application/vnd.openxmlformats-officedocument.spreadsheetml."
	slideMainPrefix = "application/vnd.openxmlformats-officedocument.presentationml."
	odtMimeType     = "application/vnd.oasis.opendocument.text"
)

type contentTypesXML struct {
	Overrides []struct {
		PartName    string `xml:"PartName,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Override"`
}

// detectZIPFormat inspects a zip archive. The [Content_Types].xml override
// for the main part is authoritative; part name prefixes are the fallback.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		switch {
		case f.Name == "mimetype":
			if strings.HasPrefix(readSmall(f, 256), odtMimeType) {
				return ODT, nil
			}
		case strings.EqualFold(f.Name, "[Content_Types].xml"):
			if ft := fromContentTypes(readSmall(f, 1<<20)); ft != Unknown {
				return ft, nil
			}
		}
	}

	for _, f := range zr.File {
		switch {
		case strings.HasPrefix(f.Name, "word/"):
			return DOCX, nil
		case strings.HasPrefix(f.Name, "xl/"):
			return XLSX, nil
		case strings.HasPrefix(f.Name, "ppt/"):
			return PPTX, nil
		}
	}
	return ZIP, nil
}

func fromContentTypes(data string) Format {
	var ct contentTypesXML
	if err := xml.Unmarshal([]byte(data), &ct); err != nil {
		return Unknown
	}
	for _, o := range ct.Overrides {
		t := strings.ToLower(o.ContentType)
		if !strings.HasSuffix(t, ".main+xml") {
			continue
		}
		switch {
		case strings.HasPrefix(t, wordMainPrefix), strings.HasPrefix(t, wordMacroPrefix):
			return DOCX
		case strings.HasPrefix(t, sheetMainPrefix):
			return XLSX
		case strings.HasPrefix(t, slideMainPrefix):
			return PPTX
		}
	}
	return Unknown
}

func readSmall(f *zip.File, limit int64) string {
	rc, err := f.Open()
	if err != nil {
		return ""
	}
	defer rc.Close()
	data, _ := io.ReadAll(io.LimitReader(rc, limit))
	return string(data)
}
