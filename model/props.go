package model

// Alignment is a paragraph or table justification value.
type Alignment string

// Justification values. The logical "start" and "end" values found in newer
// documents are normalized to left and right.
const (
	AlignLeft       Alignment = "left"
	AlignCenter     Alignment = "center"
	AlignRight      Alignment = "right"
	AlignJustify    Alignment = "both"
	AlignDistribute Alignment = "distribute"
)

// VerticalAlign positions a run relative to the baseline.
type VerticalAlign string

const (
	VerticalBaseline    VerticalAlign = "baseline"
	VerticalSuperscript VerticalAlign = "superscript"
	VerticalSubscript   VerticalAlign = "subscript"
)

// UnderlineNone is the underline value that explicitly removes an
// inherited underline.
const UnderlineNone = "none"

// RunProps holds character formatting. A nil pointer or empty string means
// the property is not set at this level of the cascade.
type RunProps struct {
	StyleID string

	Bold      *bool
	Italic    *bool
	Strike    *bool
	Caps      *bool
	SmallCaps *bool
	Vanish    *bool

	// Underline is the OOXML underline kind ("single", "double", ...).
	Underline string

	Color     string
	Highlight string
	Shading   string

	// Size is the font size in half-points.
	Size *int

	Font          string
	FontEastAsia  string
	VerticalAlign VerticalAlign
}

// Merge overlays every property set in o onto p.
func (p *RunProps) Merge(o RunProps) {
	setString(&p.StyleID, o.StyleID)
	setPtr(&p.Bold, o.Bold)
	setPtr(&p.Italic, o.Italic)
	setPtr(&p.Strike, o.Strike)
	setPtr(&p.Caps, o.Caps)
	setPtr(&p.SmallCaps, o.SmallCaps)
	setPtr(&p.Vanish, o.Vanish)
	setString(&p.Underline, o.Underline)
	setString(&p.Color, o.Color)
	setString(&p.Highlight, o.Highlight)
	setString(&p.Shading, o.Shading)
	setPtr(&p.Size, o.Size)
	setString(&p.Font, o.Font)
	setString(&p.FontEastAsia, o.FontEastAsia)
	if o.VerticalAlign != "" {
		p.VerticalAlign = o.VerticalAlign
	}
}

// IsBold reports whether bold is in effect.
func (p RunProps) IsBold() bool { return isTrue(p.Bold) }

// IsItalic reports whether italic is in effect.
func (p RunProps) IsItalic() bool { return isTrue(p.Italic) }

// IsStrike reports whether single or double strikethrough is in effect.
func (p RunProps) IsStrike() bool { return isTrue(p.Strike) }

// IsHidden reports whether the run is marked hidden.
func (p RunProps) IsHidden() bool { return isTrue(p.Vanish) }

// HasUnderline reports whether an underline other than "none" is in effect.
func (p RunProps) HasUnderline() bool {
	return p.Underline != "" && p.Underline != UnderlineNone
}

// Indent holds paragraph indentation in dxa.
type Indent struct {
	Left      *int
	Right     *int
	FirstLine *int
	Hanging   *int
}

func (i *Indent) merge(o Indent) {
	setPtr(&i.Left, o.Left)
	setPtr(&i.Right, o.Right)
	setPtr(&i.FirstLine, o.FirstLine)
	setPtr(&i.Hanging, o.Hanging)
}

// Spacing holds paragraph spacing. Before and After are in dxa, the *Lines
// variants in hundredths of a line. Line is interpreted according to
// LineRule ("auto" is 240ths of a line, "exact" and "atLeast" are dxa).
type Spacing struct {
	Before      *int
	After       *int
	BeforeLines *int
	AfterLines  *int
	Line        *int
	LineRule    string
}

func (s *Spacing) merge(o Spacing) {
	setPtr(&s.Before, o.Before)
	setPtr(&s.After, o.After)
	setPtr(&s.BeforeLines, o.BeforeLines)
	setPtr(&s.AfterLines, o.AfterLines)
	setPtr(&s.Line, o.Line)
	setString(&s.LineRule, o.LineRule)
}

// Border is a single border edge. Size is in eighths of a point and Space in
// points, as in the source markup.
type Border struct {
	Style string
	Size  int
	Space int
	Color string
}

// ParagraphBorders holds the edges of a paragraph border box.
type ParagraphBorders struct {
	Top     *Border
	Left    *Border
	Bottom  *Border
	Right   *Border
	Between *Border
}

func (b *ParagraphBorders) merge(o ParagraphBorders) {
	setPtr(&b.Top, o.Top)
	setPtr(&b.Left, o.Left)
	setPtr(&b.Bottom, o.Bottom)
	setPtr(&b.Right, o.Right)
	setPtr(&b.Between, o.Between)
}

// ParagraphProps holds paragraph formatting plus the run-property bag that
// paragraph-level and style-level run formatting accumulates into.
type ParagraphProps struct {
	StyleID   string
	Alignment Alignment
	Indent    Indent
	Spacing   Spacing
	Shading   string
	Borders   ParagraphBorders

	// OutlineLevel is zero-based; nil means body text.
	OutlineLevel *int

	KeepNext        *bool
	KeepLines       *bool
	PageBreakBefore *bool

	Numbering *NumberingRef

	// RunProps is the paragraph mark's run formatting.
	RunProps RunProps
}

// Merge overlays every property set in o onto p.
func (p *ParagraphProps) Merge(o ParagraphProps) {
	setString(&p.StyleID, o.StyleID)
	if o.Alignment != "" {
		p.Alignment = o.Alignment
	}
	p.Indent.merge(o.Indent)
	p.Spacing.merge(o.Spacing)
	setString(&p.Shading, o.Shading)
	p.Borders.merge(o.Borders)
	setPtr(&p.OutlineLevel, o.OutlineLevel)
	setPtr(&p.KeepNext, o.KeepNext)
	setPtr(&p.KeepLines, o.KeepLines)
	setPtr(&p.PageBreakBefore, o.PageBreakBefore)
	setPtr(&p.Numbering, o.Numbering)
	p.RunProps.Merge(o.RunProps)
}

// Bool returns a pointer to v, for building property values.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v, for building property values.
func Int(v int) *int { return &v }

// setPtr copies the value behind src into a fresh pointer so merged values
// never alias their source.
func setPtr[T any](dst **T, src *T) {
	if src == nil {
		return
	}
	v := *src
	*dst = &v
}

func setString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func isTrue(b *bool) bool {
	return b != nil && *b
}
