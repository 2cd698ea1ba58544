package docx

import (
	"encoding/xml"

	"github.com/tsawler/wordml/internal/xmlutil"
	"github.com/tsawler/wordml/model"
)

// tableXML represents a table (<w:tbl>). Rows wrapped in content controls
// or custom XML are unwrapped in place.
type tableXML struct {
	Properties *tblPrXML
	Grid       []gridColXML
	Rows       []rowXML
}

func (t *tableXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return eachChild(d, t.decodeChild)
}

func (t *tableXML) decodeChild(d *xml.Decoder, el xml.StartElement) error {
	switch el.Name.Local {
	case "tblPr":
		var pr tblPrXML
		if err := d.DecodeElement(&pr, &el); err != nil {
			return err
		}
		t.Properties = &pr
	case "tblGrid":
		var g struct {
			Cols []gridColXML `xml:"gridCol"`
		}
		if err := d.DecodeElement(&g, &el); err != nil {
			return err
		}
		t.Grid = append(t.Grid, g.Cols...)
	case "tr":
		var r rowXML
		if err := d.DecodeElement(&r, &el); err != nil {
			return err
		}
		t.Rows = append(t.Rows, r)
	case "sdt", "customXml":
		return eachWrapped(d, t.decodeChild)
	default:
		return d.Skip()
	}
	return nil
}

type gridColXML struct {
	W string `xml:"w,attr"`
}

// widthXML is a measurement with a unit type (tblW, tcW, tcMar edges).
type widthXML struct {
	W    string `xml:"w,attr"`
	Type string `xml:"type,attr"`
}

// tblPrXML represents table properties (<w:tblPr>).
type tblPrXML struct {
	Style         *valXML          `xml:"tblStyle"`
	Width         *widthXML        `xml:"tblW"`
	Borders       *tableBordersXML `xml:"tblBorders"`
	Layout        *layoutXML       `xml:"tblLayout"`
	Justification *valXML          `xml:"jc"`
}

type layoutXML struct {
	Type string `xml:"type,attr"`
}

type tableBordersXML struct {
	Top     *borderXML `xml:"top"`
	Left    *borderXML `xml:"left"`
	Start   *borderXML `xml:"start"`
	Bottom  *borderXML `xml:"bottom"`
	Right   *borderXML `xml:"right"`
	End     *borderXML `xml:"end"`
	InsideH *borderXML `xml:"insideH"`
	InsideV *borderXML `xml:"insideV"`
}

// rowXML represents a table row (<w:tr>). Cells are block lists so nested
// tables and content controls decode the same way as the body; cells
// wrapped in content controls or custom XML are unwrapped.
type rowXML struct {
	Properties *trPrXML
	Cells      []blockListXML
}

func (r *rowXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return eachChild(d, r.decodeChild)
}

func (r *rowXML) decodeChild(d *xml.Decoder, el xml.StartElement) error {
	switch el.Name.Local {
	case "trPr":
		var pr trPrXML
		if err := d.DecodeElement(&pr, &el); err != nil {
			return err
		}
		r.Properties = &pr
	case "tc":
		var c blockListXML
		if err := d.DecodeElement(&c, &el); err != nil {
			return err
		}
		r.Cells = append(r.Cells, c)
	case "sdt", "customXml":
		return eachWrapped(d, r.decodeChild)
	default:
		return d.Skip()
	}
	return nil
}

type trPrXML struct {
	Header *onOffXML     `xml:"tblHeader"`
	Height *rowHeightXML `xml:"trHeight"`
}

type rowHeightXML struct {
	Val   string `xml:"val,attr"`
	HRule string `xml:"hRule,attr"`
}

// tcPrXML represents cell properties (<w:tcPr>).
type tcPrXML struct {
	Width    *widthXML       `xml:"tcW"`
	GridSpan *valXML         `xml:"gridSpan"`
	VMerge   *valXML         `xml:"vMerge"`
	Borders  *cellBordersXML `xml:"tcBorders"`
	Shading  *shadingXML     `xml:"shd"`
	Margins  *cellMarginXML  `xml:"tcMar"`
	VAlign   *valXML         `xml:"vAlign"`
}

type cellBordersXML struct {
	Top    *borderXML `xml:"top"`
	Left   *borderXML `xml:"left"`
	Start  *borderXML `xml:"start"`
	Bottom *borderXML `xml:"bottom"`
	Right  *borderXML `xml:"right"`
	End    *borderXML `xml:"end"`
	TL2BR  *borderXML `xml:"tl2br"`
	TR2BL  *borderXML `xml:"tr2bl"`
}

type cellMarginXML struct {
	Top    *widthXML `xml:"top"`
	Left   *widthXML `xml:"left"`
	Start  *widthXML `xml:"start"`
	Bottom *widthXML `xml:"bottom"`
	Right  *widthXML `xml:"right"`
	End    *widthXML `xml:"end"`
}

func width(x *widthXML) *model.Width {
	if x == nil {
		return nil
	}
	w := &model.Width{Type: x.Type}
	w.Value, _ = xmlutil.ParseInt(x.W)
	return w
}

func marginValue(edges ...*widthXML) *int {
	for _, e := range edges {
		if e != nil {
			return xmlutil.IntPtr(e.W)
		}
	}
	return nil
}

func firstBorder(edges ...*borderXML) *model.Border {
	for _, e := range edges {
		if e != nil {
			return border(e)
		}
	}
	return nil
}

// parseTable converts a table, its rows and cells, then resolves vertical
// merges.
func (p *Parser) parseTable(x *tableXML, scope partScope) *model.Table {
	t := &model.Table{}

	if pr := x.Properties; pr != nil {
		t.Props.StyleID = val(pr.Style)
		t.Props.Width = width(pr.Width)
		t.Props.Alignment = alignment(val(pr.Justification))
		if pr.Layout != nil {
			t.Props.Layout = pr.Layout.Type
		}
		if b := pr.Borders; b != nil {
			t.Props.Borders = model.TableBorders{
				Top:     border(b.Top),
				Left:    firstBorder(b.Left, b.Start),
				Bottom:  border(b.Bottom),
				Right:   firstBorder(b.Right, b.End),
				InsideH: border(b.InsideH),
				InsideV: border(b.InsideV),
			}
		}
	}

	for _, col := range x.Grid {
		w, _ := xmlutil.ParseInt(col.W)
		t.Grid = append(t.Grid, w)
	}

	for i := range x.Rows {
		t.Rows = append(t.Rows, p.parseRow(&x.Rows[i], scope))
	}

	MergeVertical(t)
	return t
}

func (p *Parser) parseRow(x *rowXML, scope partScope) *model.Row {
	row := &model.Row{}
	if pr := x.Properties; pr != nil {
		if h := onOff(pr.Header); h != nil {
			row.Header = *h
		}
		if pr.Height != nil {
			row.Height = xmlutil.IntPtr(pr.Height.Val)
			row.HeightRule = pr.Height.HRule
		}
	}
	for i := range x.Cells {
		row.Cells = append(row.Cells, p.parseCell(&x.Cells[i], scope))
	}
	return row
}

func (p *Parser) parseCell(x *blockListXML, scope partScope) *model.Cell {
	cell := &model.Cell{ColSpan: 1, RowSpan: 1}

	if pr := x.CellProps; pr != nil {
		if n, ok := xmlutil.ParseInt(val(pr.GridSpan)); ok && n > 0 {
			cell.ColSpan = n
		}
		if pr.VMerge != nil {
			// A vMerge without a value continues the merge above.
			if pr.VMerge.Val == string(model.VMergeRestart) {
				cell.VMerge = model.VMergeRestart
			} else {
				cell.VMerge = model.VMergeContinue
			}
		}
		cell.Width = width(pr.Width)
		cell.Shading = shadingFill(pr.Shading)
		cell.VerticalAlign = val(pr.VAlign)
		if b := pr.Borders; b != nil {
			cell.Borders = model.CellBorders{
				Top:                  border(b.Top),
				Left:                 firstBorder(b.Left, b.Start),
				Bottom:               border(b.Bottom),
				Right:                firstBorder(b.Right, b.End),
				TopLeftToBottomRight: border(b.TL2BR),
				TopRightToBottomLeft: border(b.TR2BL),
			}
		}
		if m := pr.Margins; m != nil {
			cell.Margins = model.CellMargins{
				Top:    marginValue(m.Top),
				Left:   marginValue(m.Left, m.Start),
				Bottom: marginValue(m.Bottom),
				Right:  marginValue(m.Right, m.End),
			}
		}
	}

	cell.Blocks = p.parseBlocks(x.Blocks, scope)
	return cell
}

// MergeVertical resolves vertical merges by cell position within the row.
// A restart cell opens a merge in its slot; each following continue cell in
// that slot extends the opening cell's RowSpan and is marked Merged. A cell
// without a marker closes the slot. A continue with no open merge above is
// left as an ordinary cell.
func MergeVertical(t *model.Table) {
	if t == nil || len(t.Rows) == 0 {
		return
	}

	open := make([]*model.Cell, len(t.Rows[0].Cells))
	for _, row := range t.Rows {
		for len(open) < len(row.Cells) {
			open = append(open, nil)
		}
		for i, cell := range row.Cells {
			switch cell.VMerge {
			case model.VMergeRestart:
				cell.RowSpan = 1
				open[i] = cell
			case model.VMergeContinue:
				if start := open[i]; start != nil {
					start.RowSpan++
					cell.Merged = true
				}
			default:
				open[i] = nil
			}
		}
	}
}
