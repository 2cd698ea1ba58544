package model

import "strings"

// Block is a body-level element: a *Paragraph or a *Table.
type Block interface {
	isBlock()
}

// Paragraph is a run of inline content with resolved paragraph formatting.
type Paragraph struct {
	Props ParagraphProps
	Runs  []*Run
}

func (*Paragraph) isBlock() {}

// Text returns the paragraph's visible text. Tabs become '\t' and breaks
// become '\n'.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		r.writeText(&sb)
	}
	return sb.String()
}

// Hyperlink is the link target of a run inside w:hyperlink.
type Hyperlink struct {
	RelID  string
	URL    string
	Anchor string
}

// Run is a span of inline content sharing one set of run properties.
type Run struct {
	Props     RunProps
	Hyperlink *Hyperlink
	Children  []RunChild
}

// Text returns the run's visible text.
func (r *Run) Text() string {
	var sb strings.Builder
	r.writeText(&sb)
	return sb.String()
}

func (r *Run) writeText(sb *strings.Builder) {
	for _, c := range r.Children {
		switch c := c.(type) {
		case Text:
			sb.WriteString(c.Value)
		case Tab:
			sb.WriteByte('\t')
		case Break:
			sb.WriteByte('\n')
		case Symbol:
			sb.WriteString(c.Char)
		case *Drawing:
			if c.Shape != nil {
				for _, b := range c.Shape.Content {
					if p, ok := b.(*Paragraph); ok {
						sb.WriteString(p.Text())
					}
				}
			}
		}
	}
}

// RunChild is one inline item of a run: Text, *Field, Break, Tab, Symbol or
// *Drawing.
type RunChild interface {
	isRunChild()
}

// Text is literal text.
type Text struct {
	Value string
}

// Field is a field code. Result holds the cached result text of a complex
// field; that text also appears as ordinary Text children of the runs that
// follow the field's separator.
type Field struct {
	Instruction string
	Result      string
}

// BreakKind distinguishes the w:br types.
type BreakKind string

const (
	BreakTextWrapping BreakKind = "textWrapping"
	BreakPage         BreakKind = "page"
	BreakColumn       BreakKind = "column"
)

// Break is a line, page or column break.
type Break struct {
	Kind BreakKind
}

// Tab is a tab character.
type Tab struct{}

// Symbol is a character drawn from a symbol font. Char holds the decoded
// rune when the code is valid hex.
type Symbol struct {
	Font string
	Code string
	Char string
}

func (Text) isRunChild()     {}
func (*Field) isRunChild()   {}
func (Break) isRunChild()    {}
func (Tab) isRunChild()      {}
func (Symbol) isRunChild()   {}
func (*Drawing) isRunChild() {}
