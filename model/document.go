package model

import (
	"strings"
	"time"
)

// Document is a parsed WordprocessingML document.
type Document struct {
	Sections []*Section
}

// Metadata contains document-level information from docProps/core.xml and
// docProps/app.xml.
type Metadata struct {
	Title          string
	Subject        string
	Creator        string
	Keywords       []string
	Description    string
	LastModifiedBy string
	Category       string
	Revision       int
	Created        time.Time
	Modified       time.Time

	Application string
	Company     string
	Pages       int
	Words       int
	Characters  int
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Sections: make([]*Section, 0),
	}
}

// AddSection appends a section to the document
func (d *Document) AddSection(s *Section) {
	d.Sections = append(d.Sections, s)
}

// Blocks returns the body blocks of every section in order.
func (d *Document) Blocks() []Block {
	var out []Block
	for _, s := range d.Sections {
		out = append(out, s.Blocks...)
	}
	return out
}

// Paragraphs returns the top-level body paragraphs in order. Paragraphs
// inside tables are not included.
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, b := range d.Blocks() {
		if p, ok := b.(*Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

// Tables returns the top-level body tables in order.
func (d *Document) Tables() []*Table {
	var out []*Table
	for _, b := range d.Blocks() {
		if t, ok := b.(*Table); ok {
			out = append(out, t)
		}
	}
	return out
}

// Text returns the body text, one paragraph per line. Table cells are
// separated by tabs and rows by newlines.
func (d *Document) Text() string {
	var sb strings.Builder
	for _, b := range d.Blocks() {
		writeBlockText(&sb, b)
	}
	return sb.String()
}

func writeBlockText(sb *strings.Builder, b Block) {
	switch b := b.(type) {
	case *Paragraph:
		if b.Props.Numbering != nil && b.Props.Numbering.Label != "" {
			sb.WriteString(b.Props.Numbering.Label)
			sb.WriteByte(' ')
		}
		sb.WriteString(b.Text())
		sb.WriteByte('\n')
	case *Table:
		for _, r := range b.Rows {
			for j, c := range r.Cells {
				if j > 0 {
					sb.WriteByte('\t')
				}
				if !c.Merged {
					sb.WriteString(strings.ReplaceAll(c.Text(), "\n", " "))
				}
			}
			sb.WriteByte('\n')
		}
	}
}

// PageSize is the page size in dxa.
type PageSize struct {
	Width       int
	Height      int
	Orientation string
}

// PageMargins holds page margins in dxa.
type PageMargins struct {
	Top    int
	Right  int
	Bottom int
	Left   int
	Header int
	Footer int
	Gutter int
}

// Columns describes the section's text columns.
type Columns struct {
	Count int
	Space int // dxa
}

// SectionProps holds page setup for a section.
type SectionProps struct {
	PageSize  *PageSize
	Margins   *PageMargins
	Columns   *Columns
	TitlePage bool
}

// HeaderFooterKind says which pages a header or footer applies to.
type HeaderFooterKind string

const (
	HeaderFooterDefault HeaderFooterKind = "default"
	HeaderFooterFirst   HeaderFooterKind = "first"
	HeaderFooterEven    HeaderFooterKind = "even"
)

// HeaderFooter is a parsed header or footer part.
type HeaderFooter struct {
	RelID  string
	Kind   HeaderFooterKind
	Blocks []Block
}

// Section is a run of body content sharing page setup.
type Section struct {
	Props   SectionProps
	Headers []*HeaderFooter
	Footers []*HeaderFooter
	Blocks  []Block
}

// Header returns the header of the given kind, or nil.
func (s *Section) Header(kind HeaderFooterKind) *HeaderFooter {
	return findHeaderFooter(s.Headers, kind)
}

// Footer returns the footer of the given kind, or nil.
func (s *Section) Footer(kind HeaderFooterKind) *HeaderFooter {
	return findHeaderFooter(s.Footers, kind)
}

func findHeaderFooter(list []*HeaderFooter, kind HeaderFooterKind) *HeaderFooter {
	for _, hf := range list {
		if hf.Kind == kind {
			return hf
		}
	}
	return nil
}
