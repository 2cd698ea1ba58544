package docx

import (
	"encoding/xml"

	"github.com/tsawler/wordml/internal/xmlutil"
)

// documentXML represents the structure of word/document.xml
type documentXML struct {
	XMLName xml.Name      `xml:"document"`
	Body    *blockListXML `xml:"body"`
}

// blockXML is one block-level element in source order.
type blockXML struct {
	Paragraph *paragraphXML
	Table     *tableXML
	SectPr    *sectPrXML
}

// blockListXML holds block-level content in source order. It is used for the
// body, header and footer roots, table cells and text boxes.
type blockListXML struct {
	Blocks []blockXML
	// CellProps is only populated when the list is a table cell.
	CellProps *tcPrXML
}

// UnmarshalXML keeps paragraphs, tables and section breaks in document
// order. Structured document tags are unwrapped in place.
func (l *blockListXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return eachChild(d, l.decodeChild)
}

func (l *blockListXML) decodeChild(d *xml.Decoder, t xml.StartElement) error {
	switch t.Name.Local {
	case "p":
		var p paragraphXML
		if err := d.DecodeElement(&p, &t); err != nil {
			return err
		}
		l.Blocks = append(l.Blocks, blockXML{Paragraph: &p})
	case "tbl":
		var tbl tableXML
		if err := d.DecodeElement(&tbl, &t); err != nil {
			return err
		}
		l.Blocks = append(l.Blocks, blockXML{Table: &tbl})
	case "sectPr":
		var s sectPrXML
		if err := d.DecodeElement(&s, &t); err != nil {
			return err
		}
		l.Blocks = append(l.Blocks, blockXML{SectPr: &s})
	case "tcPr":
		var pr tcPrXML
		if err := d.DecodeElement(&pr, &t); err != nil {
			return err
		}
		l.CellProps = &pr
	case "sdt", "customXml":
		return eachWrapped(d, l.decodeChild)
	default:
		return d.Skip()
	}
	return nil
}

// eachChild calls fn for every child element until the enclosing element
// ends.
func eachChild(d *xml.Decoder, fn func(*xml.Decoder, xml.StartElement) error) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := fn(d, t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// eachWrapped unwraps a structured document tag (<w:sdt>) or custom XML
// element, calling fn for the content it wraps. For w:sdt that is the
// w:sdtContent children; for w:customXml the direct children.
func eachWrapped(d *xml.Decoder, fn func(*xml.Decoder, xml.StartElement) error) error {
	return eachChild(d, func(d *xml.Decoder, t xml.StartElement) error {
		switch t.Name.Local {
		case "sdtContent":
			return eachChild(d, fn)
		case "sdtPr", "sdtEndPr", "customXmlPr":
			return d.Skip()
		}
		return fn(d, t)
	})
}

// paragraphXML represents a paragraph element (<w:p>).
type paragraphXML struct {
	Properties *pPrXML
	Content    []inlineXML
}

// inlineXML is one inline child of a paragraph or hyperlink.
type inlineXML struct {
	Run         *runXML
	Hyperlink   *hyperlinkXML
	SimpleField *simpleFieldXML
}

// UnmarshalXML keeps runs, hyperlinks and simple fields in document order.
// Inline wrappers (sdt, ins, smartTag, customXml) are flattened; deleted
// text is dropped.
func (p *paragraphXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "pPr" {
				var pr pPrXML
				if err := d.DecodeElement(&pr, &t); err != nil {
					return err
				}
				p.Properties = &pr
				continue
			}
			items, err := decodeInline(d, t)
			if err != nil {
				return err
			}
			p.Content = append(p.Content, items...)
		case xml.EndElement:
			return nil
		}
	}
}

// inlineListXML collects inline content of wrapper elements.
type inlineListXML struct {
	Content []inlineXML
}

// UnmarshalXML gathers inline children, descending into sdtContent.
func (l *inlineListXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "sdtPr", "sdtEndPr", "smartTagPr", "customXmlPr", "rPr":
				if err := d.Skip(); err != nil {
					return err
				}
			case "sdtContent":
				var inner inlineListXML
				if err := d.DecodeElement(&inner, &t); err != nil {
					return err
				}
				l.Content = append(l.Content, inner.Content...)
			default:
				items, err := decodeInline(d, t)
				if err != nil {
					return err
				}
				l.Content = append(l.Content, items...)
			}
		case xml.EndElement:
			return nil
		}
	}
}

// decodeInline decodes one inline element, returning the items it yields.
func decodeInline(d *xml.Decoder, t xml.StartElement) ([]inlineXML, error) {
	switch t.Name.Local {
	case "r":
		var r runXML
		if err := d.DecodeElement(&r, &t); err != nil {
			return nil, err
		}
		return []inlineXML{{Run: &r}}, nil
	case "hyperlink":
		var h hyperlinkXML
		if err := d.DecodeElement(&h, &t); err != nil {
			return nil, err
		}
		return []inlineXML{{Hyperlink: &h}}, nil
	case "fldSimple":
		var f simpleFieldXML
		if err := d.DecodeElement(&f, &t); err != nil {
			return nil, err
		}
		return []inlineXML{{SimpleField: &f}}, nil
	case "sdt", "ins", "smartTag", "customXml", "moveTo":
		var inner inlineListXML
		if err := d.DecodeElement(&inner, &t); err != nil {
			return nil, err
		}
		return inner.Content, nil
	default:
		return nil, d.Skip()
	}
}

// hyperlinkXML represents a hyperlink (<w:hyperlink>).
type hyperlinkXML struct {
	ID      string
	Anchor  string
	Content []inlineXML
}

// UnmarshalXML reads the link attributes and the runs it wraps.
func (h *hyperlinkXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	h.ID, _ = xmlutil.Attr(start, "id")
	h.Anchor, _ = xmlutil.Attr(start, "anchor")
	var inner inlineListXML
	if err := inner.UnmarshalXML(d, start); err != nil {
		return err
	}
	h.Content = inner.Content
	return nil
}

// simpleFieldXML represents a simple field (<w:fldSimple>).
type simpleFieldXML struct {
	Instruction string
	Content     []inlineXML
}

// UnmarshalXML reads the field instruction and its cached result runs.
func (f *simpleFieldXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	f.Instruction, _ = xmlutil.Attr(start, "instr")
	var inner inlineListXML
	if err := inner.UnmarshalXML(d, start); err != nil {
		return err
	}
	f.Content = inner.Content
	return nil
}

// runContentKind identifies a run child.
type runContentKind int

const (
	runText runContentKind = iota
	runInstrText
	runBreak
	runCarriageReturn
	runTab
	runSymbol
	runNoBreakHyphen
	runSoftHyphen
	runDrawing
	runAlternateContent
	runPicture
	runFieldChar
)

// runContentXML is one child of a run in document order.
type runContentXML struct {
	Kind      runContentKind
	Text      string
	Type      string // br type or fldChar type
	Symbol    *symXML
	Drawing   *drawingXML
	Alternate *alternateContentXML
	Picture   *pictXML
}

// runXML represents a text run (<w:r>).
type runXML struct {
	Properties *rPrXML
	Content    []runContentXML
}

// textXML represents text content (<w:t>, <w:instrText>).
type textXML struct {
	Value string `xml:",chardata"`
}

// breakXML represents a break (<w:br>).
type breakXML struct {
	Type string `xml:"type,attr"`
}

// symXML represents a symbol character (<w:sym>).
type symXML struct {
	Font string `xml:"font,attr"` // Font name (e.g., "Wingdings")
	Char string `xml:"char,attr"` // Hex character code
}

// fldCharXML represents a complex field marker (<w:fldChar>).
type fldCharXML struct {
	Type string `xml:"fldCharType,attr"`
}

// UnmarshalXML keeps run children in document order.
func (r *runXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		t, ok := tok.(xml.StartElement)
		if !ok {
			if _, end := tok.(xml.EndElement); end {
				return nil
			}
			continue
		}

		var c runContentXML
		switch t.Name.Local {
		case "rPr":
			var pr rPrXML
			if err := d.DecodeElement(&pr, &t); err != nil {
				return err
			}
			r.Properties = &pr
			continue
		case "t", "instrText":
			var tx textXML
			if err := d.DecodeElement(&tx, &t); err != nil {
				return err
			}
			c = runContentXML{Kind: runText, Text: tx.Value}
			if t.Name.Local == "instrText" {
				c.Kind = runInstrText
			}
		case "br":
			var br breakXML
			if err := d.DecodeElement(&br, &t); err != nil {
				return err
			}
			c = runContentXML{Kind: runBreak, Type: br.Type}
		case "cr":
			c = runContentXML{Kind: runCarriageReturn}
			if err := d.Skip(); err != nil {
				return err
			}
		case "tab", "ptab":
			c = runContentXML{Kind: runTab}
			if err := d.Skip(); err != nil {
				return err
			}
		case "space":
			c = runContentXML{Kind: runText, Text: " "}
			if err := d.Skip(); err != nil {
				return err
			}
		case "noBreakHyphen":
			c = runContentXML{Kind: runNoBreakHyphen}
			if err := d.Skip(); err != nil {
				return err
			}
		case "softHyphen":
			c = runContentXML{Kind: runSoftHyphen}
			if err := d.Skip(); err != nil {
				return err
			}
		case "sym":
			var s symXML
			if err := d.DecodeElement(&s, &t); err != nil {
				return err
			}
			c = runContentXML{Kind: runSymbol, Symbol: &s}
		case "drawing":
			var dr drawingXML
			if err := d.DecodeElement(&dr, &t); err != nil {
				return err
			}
			c = runContentXML{Kind: runDrawing, Drawing: &dr}
		case "AlternateContent":
			var ac alternateContentXML
			if err := d.DecodeElement(&ac, &t); err != nil {
				return err
			}
			c = runContentXML{Kind: runAlternateContent, Alternate: &ac}
		case "pict":
			var pic pictXML
			if err := d.DecodeElement(&pic, &t); err != nil {
				return err
			}
			c = runContentXML{Kind: runPicture, Picture: &pic}
		case "fldChar":
			var fc fldCharXML
			if err := d.DecodeElement(&fc, &t); err != nil {
				return err
			}
			c = runContentXML{Kind: runFieldChar, Type: fc.Type}
		default:
			if err := d.Skip(); err != nil {
				return err
			}
			continue
		}
		r.Content = append(r.Content, c)
	}
}

// valXML is the common single-attribute element (<w:xxx w:val="..."/>).
type valXML struct {
	Val string `xml:"val,attr"`
}

// onOffXML is a toggle property; an absent val means on.
type onOffXML struct {
	Val string `xml:"val,attr"`
}

// pPrXML represents paragraph properties (<w:pPr>).
type pPrXML struct {
	Style           *valXML              `xml:"pStyle"`
	KeepNext        *onOffXML            `xml:"keepNext"`
	KeepLines       *onOffXML            `xml:"keepLines"`
	PageBreakBefore *onOffXML            `xml:"pageBreakBefore"`
	NumPr           *numPrXML            `xml:"numPr"`
	Borders         *paragraphBordersXML `xml:"pBdr"`
	Shading         *shadingXML          `xml:"shd"`
	Spacing         *spacingXML          `xml:"spacing"`
	Indent          *indentXML           `xml:"ind"`
	Justification   *valXML              `xml:"jc"`
	OutlineLvl      *valXML              `xml:"outlineLvl"`
	RPr             *rPrXML              `xml:"rPr"`
	SectPr          *sectPrXML           `xml:"sectPr"`
}

// numPrXML represents numbering properties for lists.
type numPrXML struct {
	ILvl  *valXML `xml:"ilvl"`
	NumID *valXML `xml:"numId"`
}

// spacingXML represents paragraph spacing.
type spacingXML struct {
	Before      string `xml:"before,attr"` // twips
	After       string `xml:"after,attr"`  // twips
	BeforeLines string `xml:"beforeLines,attr"`
	AfterLines  string `xml:"afterLines,attr"`
	Line        string `xml:"line,attr"`
	LineRule    string `xml:"lineRule,attr"`
}

// indentXML represents paragraph indentation.
type indentXML struct {
	Left      string `xml:"left,attr"`
	Start     string `xml:"start,attr"`
	Right     string `xml:"right,attr"`
	End       string `xml:"end,attr"`
	FirstLine string `xml:"firstLine,attr"`
	Hanging   string `xml:"hanging,attr"`
}

// shadingXML represents shading (<w:shd>).
type shadingXML struct {
	Val   string `xml:"val,attr"`
	Color string `xml:"color,attr"`
	Fill  string `xml:"fill,attr"`
}

// borderXML represents one border edge.
type borderXML struct {
	Val   string `xml:"val,attr"`
	Size  string `xml:"sz,attr"`
	Space string `xml:"space,attr"`
	Color string `xml:"color,attr"`
}

// paragraphBordersXML represents paragraph borders (<w:pBdr>).
type paragraphBordersXML struct {
	Top     *borderXML `xml:"top"`
	Left    *borderXML `xml:"left"`
	Bottom  *borderXML `xml:"bottom"`
	Right   *borderXML `xml:"right"`
	Between *borderXML `xml:"between"`
}

// rPrXML represents run properties (<w:rPr>).
type rPrXML struct {
	Style     *valXML     `xml:"rStyle"`
	Fonts     *fontsXML   `xml:"rFonts"`
	Bold      *onOffXML   `xml:"b"`
	Italic    *onOffXML   `xml:"i"`
	Caps      *onOffXML   `xml:"caps"`
	SmallCaps *onOffXML   `xml:"smallCaps"`
	Strike    *onOffXML   `xml:"strike"`
	DStrike   *onOffXML   `xml:"dstrike"`
	Vanish    *onOffXML   `xml:"vanish"`
	Color     *valXML     `xml:"color"`
	Size      *valXML     `xml:"sz"`
	Highlight *valXML     `xml:"highlight"`
	Underline *valXML     `xml:"u"`
	Shading   *shadingXML `xml:"shd"`
	VertAlign *valXML     `xml:"vertAlign"`
}

// fontsXML represents font settings (<w:rFonts>).
type fontsXML struct {
	ASCII    string `xml:"ascii,attr"`
	HAnsi    string `xml:"hAnsi,attr"`
	EastAsia string `xml:"eastAsia,attr"`
	CS       string `xml:"cs,attr"`
}

// sectPrXML represents section properties (<w:sectPr>).
type sectPrXML struct {
	HeaderRefs []headerFooterRefXML `xml:"headerReference"`
	FooterRefs []headerFooterRefXML `xml:"footerReference"`
	PageSize   *pageSizeXML         `xml:"pgSz"`
	PageMargin *pageMarginXML       `xml:"pgMar"`
	Cols       *colsXML             `xml:"cols"`
	TitlePg    *onOffXML            `xml:"titlePg"`
}

// headerFooterRefXML references a header or footer part.
type headerFooterRefXML struct {
	Type string `xml:"type,attr"`
	ID   string `xml:"id,attr"`
}

// pageSizeXML represents page dimensions (<w:pgSz>).
type pageSizeXML struct {
	W      string `xml:"w,attr"`
	H      string `xml:"h,attr"`
	Orient string `xml:"orient,attr"`
}

// pageMarginXML represents page margins (<w:pgMar>).
type pageMarginXML struct {
	Top    string `xml:"top,attr"`
	Right  string `xml:"right,attr"`
	Bottom string `xml:"bottom,attr"`
	Left   string `xml:"left,attr"`
	Header string `xml:"header,attr"`
	Footer string `xml:"footer,attr"`
	Gutter string `xml:"gutter,attr"`
}

// colsXML represents text columns (<w:cols>).
type colsXML struct {
	Num   string `xml:"num,attr"`
	Space string `xml:"space,attr"`
}
