package docx

import (
	"strconv"
	"strings"

	"github.com/tsawler/wordml/internal/xmlutil"
	"github.com/tsawler/wordml/model"
)

// Shape defaults used when the markup does not say otherwise.
const (
	defaultShapeFill   = "4F81BD"
	defaultShapeStroke = "333333"
	defaultStrokeWidth = 12700 // 1pt in EMU
	defaultVMLSize     = 100   // px
	emuPerPoint        = 12700
	emuPerInch         = 914400
	emuPerPixel        = 9525
)

// themeColors is the default Office theme palette used for schemeClr.
var themeColors = map[string]string{
	"accent1": "4F81BD",
	"accent2": "C0504D",
	"accent3": "9BBB59",
	"accent4": "8064A2",
	"accent5": "4BACC6",
	"accent6": "F79646",
	"tx1":     "000000",
	"dk1":     "000000",
	"tx2":     "1F497D",
	"dk2":     "1F497D",
	"bg1":     "FFFFFF",
	"lt1":     "FFFFFF",
	"bg2":     "EEECE1",
	"lt2":     "EEECE1",
}

// drawingXML represents a DrawingML container (<w:drawing>).
type drawingXML struct {
	Inline *drawingFrameXML `xml:"inline"`
	Anchor *drawingFrameXML `xml:"anchor"`
}

// drawingFrameXML represents wp:inline or wp:anchor.
type drawingFrameXML struct {
	DistT      string       `xml:"distT,attr"`
	DistB      string       `xml:"distB,attr"`
	DistL      string       `xml:"distL,attr"`
	DistR      string       `xml:"distR,attr"`
	BehindDoc  string       `xml:"behindDoc,attr"`
	Extent     *extentXML   `xml:"extent"`
	PositionH  *positionXML `xml:"positionH"`
	PositionV  *positionXML `xml:"positionV"`
	WrapNone   *struct{}    `xml:"wrapNone"`
	WrapSquare *struct{}    `xml:"wrapSquare"`
	WrapTight  *struct{}    `xml:"wrapTight"`
	WrapThru   *struct{}    `xml:"wrapThrough"`
	WrapTopBot *struct{}    `xml:"wrapTopAndBottom"`
	DocPr      *docPrXML    `xml:"docPr"`
	Graphic    graphicXML   `xml:"graphic>graphicData"`
}

// extentXML represents a size in EMU (wp:extent, a:ext).
type extentXML struct {
	CX string `xml:"cx,attr"`
	CY string `xml:"cy,attr"`
}

// positionXML represents wp:positionH / wp:positionV.
type positionXML struct {
	RelativeFrom string `xml:"relativeFrom,attr"`
	PosOffset    string `xml:"posOffset"`
	Align        string `xml:"align"`
}

// docPrXML represents the drawing's non-visual properties.
type docPrXML struct {
	Name  string `xml:"name,attr"`
	Descr string `xml:"descr,attr"`
}

// graphicXML represents a:graphicData.
type graphicXML struct {
	Picture *pictureXML `xml:"pic"`
	Shapes  []wspXML    `xml:"wsp"`
	Groups  []struct {
		Shapes []wspXML `xml:"wsp"`
	} `xml:"wgp"`
}

// pictureXML represents pic:pic.
type pictureXML struct {
	Blip *blipXML `xml:"blipFill>blip"`
}

// blipXML references image data by relationship id.
type blipXML struct {
	Embed string `xml:"embed,attr"`
	Link  string `xml:"link,attr"`
}

// wspXML represents a WordprocessingML shape (wps:wsp).
type wspXML struct {
	SpPr    *spPrXML       `xml:"spPr"`
	Style   *shapeStyleXML `xml:"style"`
	TextBox *struct {
		Content *blockListXML `xml:"txbxContent"`
	} `xml:"txbx"`
}

// spPrXML represents shape properties.
type spPrXML struct {
	Xfrm      *xfrmXML     `xml:"xfrm"`
	PrstGeom  *prstGeomXML `xml:"prstGeom"`
	SolidFill *colorXML    `xml:"solidFill"`
	NoFill    *struct{}    `xml:"noFill"`
	Line      *lineXML     `xml:"ln"`
}

// xfrmXML represents a 2D transform.
type xfrmXML struct {
	Rot   string     `xml:"rot,attr"`
	FlipH string     `xml:"flipH,attr"`
	FlipV string     `xml:"flipV,attr"`
	Ext   *extentXML `xml:"ext"`
}

// prstGeomXML represents preset geometry.
type prstGeomXML struct {
	Prst string `xml:"prst,attr"`
}

// colorXML is a color choice (srgbClr or schemeClr).
type colorXML struct {
	SRGB   *valXML `xml:"srgbClr"`
	Scheme *valXML `xml:"schemeClr"`
}

// lineXML represents a:ln.
type lineXML struct {
	W         string    `xml:"w,attr"`
	SolidFill *colorXML `xml:"solidFill"`
	NoFill    *struct{} `xml:"noFill"`
	PrstDash  *valXML   `xml:"prstDash"`
}

// shapeStyleXML represents wps:style.
type shapeStyleXML struct {
	FillRef *colorXML `xml:"fillRef"`
	LnRef   *colorXML `xml:"lnRef"`
}

// alternateContentXML represents mc:AlternateContent.
type alternateContentXML struct {
	Choices []struct {
		Requires string       `xml:"Requires,attr"`
		Drawings []drawingXML `xml:"drawing"`
	} `xml:"Choice"`
	Fallback *struct {
		Drawings []drawingXML `xml:"drawing"`
		Pictures []pictXML    `xml:"pict"`
	} `xml:"Fallback"`
}

// pictXML represents a legacy VML picture (<w:pict>).
type pictXML struct {
	Rects  []vmlShapeXML `xml:"rect"`
	Shapes []vmlShapeXML `xml:"shape"`
}

// vmlShapeXML represents v:rect or v:shape.
type vmlShapeXML struct {
	Style       string `xml:"style,attr"`
	FillColor   string `xml:"fillcolor,attr"`
	StrokeColor string `xml:"strokecolor,attr"`
	ImageData   *struct {
		ID string `xml:"id,attr"`
	} `xml:"imagedata"`
}

// resolveColor returns the hex value of a color choice.
func resolveColor(c *colorXML) (string, bool) {
	if c == nil {
		return "", false
	}
	if c.SRGB != nil && c.SRGB.Val != "" {
		return strings.ToUpper(c.SRGB.Val), true
	}
	if c.Scheme != nil {
		if hex, ok := themeColors[c.Scheme.Val]; ok {
			return hex, true
		}
	}
	return "", false
}

// parseDrawing converts a w:drawing into zero or more drawings: one image,
// or one drawing per shape.
func (p *Parser) parseDrawing(x *drawingXML, scope partScope) []*model.Drawing {
	frame, mode := x.Inline, model.PositionInline
	if frame == nil {
		frame, mode = x.Anchor, model.PositionAnchor
	}
	if frame == nil {
		return nil
	}

	base := model.Drawing{Position: positioning(frame, mode)}
	if frame.Extent != nil {
		base.Extent = extent(frame.Extent)
	}
	if frame.DocPr != nil {
		base.Name = frame.DocPr.Name
		base.Description = frame.DocPr.Descr
	}

	if pic := frame.Graphic.Picture; pic != nil {
		img := p.imageRef(pic.Blip, scope)
		if img == nil {
			return nil
		}
		d := base
		d.Kind = model.DrawingImage
		d.Image = img
		return []*model.Drawing{&d}
	}

	shapes := frame.Graphic.Shapes
	for _, g := range frame.Graphic.Groups {
		shapes = append(shapes, g.Shapes...)
	}

	var out []*model.Drawing
	for i := range shapes {
		d := base
		d.Kind = model.DrawingShape
		d.Shape = p.shape(&shapes[i], &d, scope)
		out = append(out, &d)
	}
	return out
}

// imageRef resolves a blip to a loaded image. It returns nil when the
// relationship or the image data is unavailable.
func (p *Parser) imageRef(blip *blipXML, scope partScope) *model.ImageRef {
	if blip == nil {
		return nil
	}
	id := blip.Embed
	if id == "" {
		id = blip.Link
	}
	if id == "" {
		return nil
	}
	if _, ok := scope.Relationship(id); !ok {
		p.logger.Debug("image relationship not found", "rel", id)
		return nil
	}
	h, ok := scope.ImageHandle(id)
	if !ok {
		p.logger.Debug("image not loaded", "rel", id)
		return nil
	}
	return &model.ImageRef{
		RelID:          id,
		Path:           h.Path,
		ContentType:    h.ContentType,
		Format:         h.Format,
		Width:          h.Width,
		Height:         h.Height,
		Data:           h.Data,
		RecognizedText: h.Text,
	}
}

func (p *Parser) shape(x *wspXML, d *model.Drawing, scope partScope) *model.Shape {
	s := &model.Shape{
		Preset:      "rect",
		Fill:        defaultShapeFill,
		Stroke:      defaultShapeStroke,
		StrokeWidth: defaultStrokeWidth,
		StrokeDash:  "solid",
	}

	fillSet, strokeSet := false, false
	if sp := x.SpPr; sp != nil {
		if sp.Xfrm != nil {
			if sp.Xfrm.Ext != nil {
				d.Extent = extent(sp.Xfrm.Ext)
			}
			s.Rotation, _ = xmlutil.ParseInt(sp.Xfrm.Rot)
			s.FlipH = sp.Xfrm.FlipH == "1" || sp.Xfrm.FlipH == "true"
			s.FlipV = sp.Xfrm.FlipV == "1" || sp.Xfrm.FlipV == "true"
		}
		if sp.PrstGeom != nil && sp.PrstGeom.Prst != "" {
			s.Preset = sp.PrstGeom.Prst
		}
		switch {
		case sp.NoFill != nil:
			s.Fill, fillSet = model.NoFill, true
		case sp.SolidFill != nil:
			if hex, ok := resolveColor(sp.SolidFill); ok {
				s.Fill, fillSet = hex, true
			}
		}
		if ln := sp.Line; ln != nil {
			if w, ok := xmlutil.ParseInt64(ln.W); ok {
				s.StrokeWidth = w
			}
			if ln.NoFill != nil {
				s.Stroke, strokeSet = model.NoFill, true
			} else if hex, ok := resolveColor(ln.SolidFill); ok {
				s.Stroke, strokeSet = hex, true
			}
			if ln.PrstDash != nil && ln.PrstDash.Val != "" {
				s.StrokeDash = ln.PrstDash.Val
			}
		}
	}

	if x.Style != nil {
		if hex, ok := resolveColor(x.Style.FillRef); ok && !fillSet {
			s.Fill = hex
		}
		if hex, ok := resolveColor(x.Style.LnRef); ok && !strokeSet {
			s.Stroke = hex
		}
	}

	if x.TextBox != nil && x.TextBox.Content != nil {
		s.Content = p.parseBlocks(x.TextBox.Content.Blocks, scope)
	}
	return s
}

func positioning(f *drawingFrameXML, mode model.PositionMode) model.Positioning {
	pos := model.Positioning{Mode: mode}
	pos.DistTop, _ = xmlutil.ParseInt64(f.DistT)
	pos.DistBottom, _ = xmlutil.ParseInt64(f.DistB)
	pos.DistLeft, _ = xmlutil.ParseInt64(f.DistL)
	pos.DistRight, _ = xmlutil.ParseInt64(f.DistR)

	if mode != model.PositionAnchor {
		return pos
	}

	pos.BehindText = f.BehindDoc == "1" || f.BehindDoc == "true"
	pos.Horizontal = anchorOffset(f.PositionH)
	pos.Vertical = anchorOffset(f.PositionV)

	switch {
	case f.WrapNone != nil:
		pos.Wrap = "none"
	case f.WrapSquare != nil:
		pos.Wrap = "square"
	case f.WrapTight != nil:
		pos.Wrap = "tight"
	case f.WrapThru != nil:
		pos.Wrap = "through"
	case f.WrapTopBot != nil:
		pos.Wrap = "topAndBottom"
	}
	return pos
}

func anchorOffset(x *positionXML) *model.AnchorOffset {
	if x == nil {
		return nil
	}
	a := &model.AnchorOffset{
		RelativeFrom: x.RelativeFrom,
		Align:        strings.TrimSpace(x.Align),
	}
	a.Offset, _ = xmlutil.ParseInt64(x.PosOffset)
	return a
}

func extent(x *extentXML) model.Extent {
	var e model.Extent
	e.CX, _ = xmlutil.ParseInt64(x.CX)
	e.CY, _ = xmlutil.ParseInt64(x.CY)
	return e
}

// parseAlternateContent prefers the drawings of a Choice branch and falls
// back to the legacy content.
func (p *Parser) parseAlternateContent(x *alternateContentXML, scope partScope) []*model.Drawing {
	for _, c := range x.Choices {
		var out []*model.Drawing
		for i := range c.Drawings {
			out = append(out, p.parseDrawing(&c.Drawings[i], scope)...)
		}
		if len(out) > 0 {
			return out
		}
	}

	if x.Fallback == nil {
		return nil
	}
	var out []*model.Drawing
	for i := range x.Fallback.Drawings {
		out = append(out, p.parseDrawing(&x.Fallback.Drawings[i], scope)...)
	}
	for i := range x.Fallback.Pictures {
		if d := p.parsePicture(&x.Fallback.Pictures[i], scope); d != nil {
			out = append(out, d)
		}
	}
	return out
}

// parsePicture rebuilds a VML picture. An embedded v:imagedata becomes an
// image; otherwise the first rect or shape becomes a rectangle sized from
// its inline style.
func (p *Parser) parsePicture(x *pictXML, scope partScope) *model.Drawing {
	var v *vmlShapeXML
	switch {
	case len(x.Rects) > 0:
		v = &x.Rects[0]
	case len(x.Shapes) > 0:
		v = &x.Shapes[0]
	default:
		return nil
	}

	style := parseVMLStyle(v.Style)
	d := &model.Drawing{
		Position: model.Positioning{Mode: model.PositionInline},
		Extent: model.Extent{
			CX: vmlLength(style["width"]),
			CY: vmlLength(style["height"]),
		},
	}

	if v.ImageData != nil && v.ImageData.ID != "" {
		img := p.imageRef(&blipXML{Embed: v.ImageData.ID}, scope)
		if img == nil {
			return nil
		}
		d.Kind = model.DrawingImage
		d.Image = img
		return d
	}

	d.Kind = model.DrawingShape
	d.Shape = &model.Shape{
		Preset:      "rect",
		Fill:        vmlColor(v.FillColor, defaultShapeFill),
		Stroke:      vmlColor(v.StrokeColor, defaultShapeStroke),
		StrokeWidth: defaultStrokeWidth,
		StrokeDash:  "solid",
		Legacy:      true,
	}
	return d
}

// parseVMLStyle splits a CSS-like "width:100pt;height:50pt" declaration.
func parseVMLStyle(style string) map[string]string {
	out := make(map[string]string)
	for _, decl := range strings.Split(style, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		out[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	return out
}

// vmlLength converts a VML length (pt, in, px or unitless px) to EMU.
func vmlLength(s string) int64 {
	unit := emuPerPixel
	num := s
	switch {
	case strings.HasSuffix(s, "pt"):
		unit, num = emuPerPoint, strings.TrimSuffix(s, "pt")
	case strings.HasSuffix(s, "in"):
		unit, num = emuPerInch, strings.TrimSuffix(s, "in")
	case strings.HasSuffix(s, "px"):
		num = strings.TrimSuffix(s, "px")
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil || f <= 0 {
		return defaultVMLSize * emuPerPixel
	}
	return int64(f * float64(unit))
}

// vmlColor normalizes "#RRGGBB" and "RRGGBB [idx]" VML colors.
func vmlColor(s, fallback string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimPrefix(s, "#")
	if s == "" {
		return fallback
	}
	return strings.ToUpper(s)
}
