package docx

import (
	"strings"

	"github.com/tsawler/wordml/internal/xmlutil"
	"github.com/tsawler/wordml/model"
)

// onOff converts a toggle element to an optional bool.
func onOff(x *onOffXML) *bool {
	if x == nil {
		return nil
	}
	return model.Bool(xmlutil.OnOff(x.Val))
}

func val(x *valXML) string {
	if x == nil {
		return ""
	}
	return x.Val
}

// shadingFill returns the fill color of a shading element. "auto" and clear
// patterns without a fill are treated as unset.
func shadingFill(x *shadingXML) string {
	if x == nil || x.Fill == "" || strings.EqualFold(x.Fill, "auto") {
		return ""
	}
	return x.Fill
}

func border(x *borderXML) *model.Border {
	if x == nil {
		return nil
	}
	b := &model.Border{Style: x.Val, Color: x.Color}
	b.Size, _ = xmlutil.ParseInt(x.Size)
	b.Space, _ = xmlutil.ParseInt(x.Space)
	return b
}

func alignment(v string) model.Alignment {
	switch v {
	case "":
		return ""
	case "start":
		return model.AlignLeft
	case "end":
		return model.AlignRight
	case "justify", "both":
		return model.AlignJustify
	}
	return model.Alignment(v)
}

// runPropsFromXML extracts the properties set directly in an rPr element.
func runPropsFromXML(x *rPrXML) model.RunProps {
	var p model.RunProps
	if x == nil {
		return p
	}

	p.StyleID = val(x.Style)
	p.Bold = onOff(x.Bold)
	p.Italic = onOff(x.Italic)
	p.Caps = onOff(x.Caps)
	p.SmallCaps = onOff(x.SmallCaps)
	p.Vanish = onOff(x.Vanish)

	// Double strikethrough renders as strikethrough.
	p.Strike = onOff(x.Strike)
	if ds := onOff(x.DStrike); ds != nil && (*ds || p.Strike == nil) {
		p.Strike = ds
	}

	if x.Underline != nil {
		p.Underline = x.Underline.Val
		if p.Underline == "" {
			p.Underline = "single"
		}
	}

	p.Color = val(x.Color)
	p.Highlight = val(x.Highlight)
	p.Shading = shadingFill(x.Shading)
	if x.Size != nil {
		p.Size = xmlutil.IntPtr(x.Size.Val)
	}

	if x.Fonts != nil {
		p.Font = x.Fonts.ASCII
		if p.Font == "" {
			p.Font = x.Fonts.HAnsi
		}
		p.FontEastAsia = x.Fonts.EastAsia
	}

	switch val(x.VertAlign) {
	case "superscript":
		p.VerticalAlign = model.VerticalSuperscript
	case "subscript":
		p.VerticalAlign = model.VerticalSubscript
	case "baseline":
		p.VerticalAlign = model.VerticalBaseline
	}
	return p
}

// paragraphPropsFromXML extracts the properties set directly in a pPr
// element. Numbering is carried as a bare reference; the parser resolves it.
func paragraphPropsFromXML(x *pPrXML) model.ParagraphProps {
	var p model.ParagraphProps
	if x == nil {
		return p
	}

	p.StyleID = val(x.Style)
	p.Alignment = alignment(val(x.Justification))
	p.Shading = shadingFill(x.Shading)
	p.KeepNext = onOff(x.KeepNext)
	p.KeepLines = onOff(x.KeepLines)
	p.PageBreakBefore = onOff(x.PageBreakBefore)
	if x.OutlineLvl != nil {
		p.OutlineLevel = xmlutil.IntPtr(x.OutlineLvl.Val)
	}

	if ind := x.Indent; ind != nil {
		p.Indent.Left = xmlutil.IntPtr(firstNonEmpty(ind.Left, ind.Start))
		p.Indent.Right = xmlutil.IntPtr(firstNonEmpty(ind.Right, ind.End))
		p.Indent.FirstLine = xmlutil.IntPtr(ind.FirstLine)
		p.Indent.Hanging = xmlutil.IntPtr(ind.Hanging)
	}

	if sp := x.Spacing; sp != nil {
		p.Spacing = model.Spacing{
			Before:      xmlutil.IntPtr(sp.Before),
			After:       xmlutil.IntPtr(sp.After),
			BeforeLines: xmlutil.IntPtr(sp.BeforeLines),
			AfterLines:  xmlutil.IntPtr(sp.AfterLines),
			Line:        xmlutil.IntPtr(sp.Line),
			LineRule:    sp.LineRule,
		}
	}

	if b := x.Borders; b != nil {
		p.Borders = model.ParagraphBorders{
			Top:     border(b.Top),
			Left:    border(b.Left),
			Bottom:  border(b.Bottom),
			Right:   border(b.Right),
			Between: border(b.Between),
		}
	}

	if n := x.NumPr; n != nil && n.NumID != nil {
		ref := &model.NumberingRef{NumID: n.NumID.Val}
		if n.ILvl != nil {
			ref.Level, _ = xmlutil.ParseInt(n.ILvl.Val)
		}
		p.Numbering = ref
	}

	p.RunProps = runPropsFromXML(x.RPr)
	return p
}

// sectionPropsFromXML converts page setup. Header and footer references are
// returned unresolved.
func sectionPropsFromXML(x *sectPrXML) (model.SectionProps, []*model.HeaderFooter, []*model.HeaderFooter) {
	var p model.SectionProps
	if x == nil {
		return p, nil, nil
	}

	if sz := x.PageSize; sz != nil {
		p.PageSize = &model.PageSize{Orientation: sz.Orient}
		p.PageSize.Width, _ = xmlutil.ParseInt(sz.W)
		p.PageSize.Height, _ = xmlutil.ParseInt(sz.H)
	}
	if m := x.PageMargin; m != nil {
		p.Margins = &model.PageMargins{}
		p.Margins.Top, _ = xmlutil.ParseInt(m.Top)
		p.Margins.Right, _ = xmlutil.ParseInt(m.Right)
		p.Margins.Bottom, _ = xmlutil.ParseInt(m.Bottom)
		p.Margins.Left, _ = xmlutil.ParseInt(m.Left)
		p.Margins.Header, _ = xmlutil.ParseInt(m.Header)
		p.Margins.Footer, _ = xmlutil.ParseInt(m.Footer)
		p.Margins.Gutter, _ = xmlutil.ParseInt(m.Gutter)
	}
	if c := x.Cols; c != nil {
		p.Columns = &model.Columns{Count: 1}
		if n, ok := xmlutil.ParseInt(c.Num); ok && n > 0 {
			p.Columns.Count = n
		}
		p.Columns.Space, _ = xmlutil.ParseInt(c.Space)
	}
	if t := onOff(x.TitlePg); t != nil {
		p.TitlePage = *t
	}

	return p, headerFooterRefs(x.HeaderRefs), headerFooterRefs(x.FooterRefs)
}

func headerFooterRefs(refs []headerFooterRefXML) []*model.HeaderFooter {
	var out []*model.HeaderFooter
	for _, r := range refs {
		if r.ID == "" {
			continue
		}
		kind := model.HeaderFooterKind(r.Type)
		if kind == "" {
			kind = model.HeaderFooterDefault
		}
		out = append(out, &model.HeaderFooter{RelID: r.ID, Kind: kind})
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
