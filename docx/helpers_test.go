package docx

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/tsawler/wordml/internal/xmlutil"
	"github.com/tsawler/wordml/opc"
)

const (
	nsW   = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`
	nsR   = `xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`
	nsAll = nsW + ` ` + nsR +
		` xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"` +
		` xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
		` xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture"` +
		` xmlns:wps="http://schemas.microsoft.com/office/word/2010/wordprocessingShape"` +
		` xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006"` +
		` xmlns:v="urn:schemas-microsoft-com:vml"`

	relImage  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	relHeader = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/header"
	relFooter = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
	relLink   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
)

// documentPart wraps body content in a w:document root.
func documentPart(body string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document ` + nsAll + `><w:body>` + body + `</w:body></w:document>`
}

func stylesPart(content string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles ` + nsW + `>` + content + `</w:styles>`
}

func numberingPart(content string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:numbering ` + nsW + `>` + content + `</w:numbering>`
}

func headerPart(root, content string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:` + root + ` ` + nsAll + `>` + content + `</w:` + root + `>`
}

// relsPart builds a relationships part from id, type, target triples.
func relsPart(rels ...[3]string) string {
	var sb bytes.Buffer
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for _, r := range rels {
		mode := ""
		if r[1] == relLink {
			mode = ` TargetMode="External"`
		}
		sb.WriteString(`<Relationship Id="` + r[0] + `" Type="` + r[1] + `" Target="` + r[2] + `"` + mode + `/>`)
	}
	sb.WriteString(`</Relationships>`)
	return sb.String()
}

// createTestDOCX builds an in-memory package from part contents.
func createTestDOCX(t *testing.T, parts map[string]string) *opc.ZipPackage {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}

	zp, err := opc.NewZipPackage(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("NewZipPackage: %v", err)
	}
	return zp
}

func createTestPNG(t *testing.T, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.Black)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	return buf.String()
}

// decodeBody decodes body content for parser-level tests.
func decodeBody(t *testing.T, body string) *blockListXML {
	t.Helper()
	var doc documentXML
	if err := xmlutil.Unmarshal([]byte(documentPart(body)), &doc); err != nil {
		t.Fatalf("decoding document: %v", err)
	}
	if doc.Body == nil {
		t.Fatal("document has no body")
	}
	return doc.Body
}

func decodeStyles(t *testing.T, content string) *StyleResolver {
	t.Helper()
	var sx stylesXML
	if err := xmlutil.Unmarshal([]byte(stylesPart(content)), &sx); err != nil {
		t.Fatalf("decoding styles: %v", err)
	}
	return NewStyleResolver(&sx)
}

func decodeNumbering(t *testing.T, content string) *NumberingResolver {
	t.Helper()
	var nx numberingXML
	if err := xmlutil.Unmarshal([]byte(numberingPart(content)), &nx); err != nil {
		t.Fatalf("decoding numbering: %v", err)
	}
	return NewNumberingResolver(&nx)
}

// emptyScope resolves nothing.
type emptyScope struct{}

func (emptyScope) Relationship(string) (opc.Relationship, bool) { return opc.Relationship{}, false }
func (emptyScope) ImageHandle(string) (*opc.ImageHandle, bool) { return nil, false }
