package docx

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tsawler/wordml/model"
	"github.com/tsawler/wordml/opc"
)

// partScope resolves relationship ids of the part being parsed.
type partScope interface {
	Relationship(id string) (opc.Relationship, bool)
	ImageHandle(id string) (*opc.ImageHandle, bool)
}

// Parser turns decoded part XML into model blocks with resolved formatting.
// It carries the numbering counters of one parse, so parts must be fed in
// document order and a Parser must not be shared between parses.
type Parser struct {
	styles    *StyleResolver
	numbering *NumberingResolver
	counters  *Counters
	logger    *log.Logger
}

// NewParser creates a parser. Nil resolvers are replaced by empty ones.
func NewParser(styles *StyleResolver, numbering *NumberingResolver, logger *log.Logger) *Parser {
	if styles == nil {
		styles = NewStyleResolver(nil)
	}
	if numbering == nil {
		numbering = NewNumberingResolver(nil)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Parser{
		styles:    styles,
		numbering: numbering,
		counters:  NewCounters(numbering),
		logger:    logger,
	}
}

// ParseBody splits the body into sections. A paragraph carrying sectPr ends
// a section after itself; a body-level sectPr ends the current section.
// Content after the last break forms a final section, and a body without
// breaks is a single section.
func (p *Parser) ParseBody(body *blockListXML, scope partScope) []*model.Section {
	var sections []*model.Section
	current := &model.Section{}

	closeSection := func(x *sectPrXML) {
		current.Props, current.Headers, current.Footers = sectionPropsFromXML(x)
		sections = append(sections, current)
		current = &model.Section{}
	}

	for _, b := range body.Blocks {
		switch {
		case b.Paragraph != nil:
			current.Blocks = append(current.Blocks, p.parseParagraph(b.Paragraph, scope))
			if pr := b.Paragraph.Properties; pr != nil && pr.SectPr != nil {
				closeSection(pr.SectPr)
			}
		case b.Table != nil:
			current.Blocks = append(current.Blocks, p.parseTable(b.Table, scope))
		case b.SectPr != nil:
			closeSection(b.SectPr)
		}
	}

	if len(current.Blocks) > 0 || len(sections) == 0 {
		sections = append(sections, current)
	}
	return sections
}

// parseBlocks converts block content outside the body (cells, headers,
// text boxes). Section breaks are ignored there.
func (p *Parser) parseBlocks(blocks []blockXML, scope partScope) []model.Block {
	out := make([]model.Block, 0, len(blocks))
	for _, b := range blocks {
		switch {
		case b.Paragraph != nil:
			out = append(out, p.parseParagraph(b.Paragraph, scope))
		case b.Table != nil:
			out = append(out, p.parseTable(b.Table, scope))
		}
	}
	return out
}

// parseParagraph resolves paragraph formatting, assigns the list label and
// converts the inline content.
func (p *Parser) parseParagraph(x *paragraphXML, scope partScope) *model.Paragraph {
	local := paragraphPropsFromXML(x.Properties)
	props := p.styles.ResolveParagraphProperties(local, local.StyleID)
	p.applyNumbering(&props)

	para := &model.Paragraph{Props: props}
	fields := &fieldState{}
	for _, item := range x.Content {
		p.appendInline(para, item, local.StyleID, scope, nil, fields)
	}
	return para
}

// applyNumbering completes or removes the numbering reference.
func (p *Parser) applyNumbering(props *model.ParagraphProps) {
	ref := props.Numbering
	if ref == nil {
		return
	}
	if !p.numbering.IsListParagraph(ref.NumID) {
		props.Numbering = nil
		return
	}

	lvl, ok := p.numbering.Level(ref.NumID, ref.Level)
	if !ok {
		p.logger.Debug("numbering level not defined", "numId", ref.NumID, "ilvl", ref.Level)
		props.Numbering = nil
		return
	}
	label, _, _ := p.counters.Next(ref.NumID, ref.Level)
	ref.Definition = lvl
	ref.Label = label
}

// appendInline converts one inline item and appends the runs it yields.
func (p *Parser) appendInline(para *model.Paragraph, item inlineXML, styleID string, scope partScope, link *model.Hyperlink, fields *fieldState) {
	switch {
	case item.Run != nil:
		para.Runs = append(para.Runs, p.parseRun(item.Run, styleID, scope, link, fields))

	case item.Hyperlink != nil:
		h := &model.Hyperlink{RelID: item.Hyperlink.ID, Anchor: item.Hyperlink.Anchor}
		if h.RelID != "" {
			if rel, ok := scope.Relationship(h.RelID); ok {
				h.URL = rel.Target
			} else {
				p.logger.Debug("hyperlink relationship not found", "rel", h.RelID)
			}
		}
		for _, inner := range item.Hyperlink.Content {
			p.appendInline(para, inner, styleID, scope, h, fields)
		}

	case item.SimpleField != nil:
		sf := item.SimpleField
		field := &model.Field{Instruction: strings.TrimSpace(sf.Instruction)}
		start := len(para.Runs)
		for _, inner := range sf.Content {
			p.appendInline(para, inner, styleID, scope, link, fields)
		}
		var result strings.Builder
		for _, r := range para.Runs[start:] {
			result.WriteString(r.Text())
		}
		field.Result = result.String()

		// The field marker goes at the front of the first result run, or in
		// a run of its own when the field has no cached result.
		if start < len(para.Runs) {
			first := para.Runs[start]
			first.Children = append([]model.RunChild{field}, first.Children...)
		} else {
			para.Runs = append(para.Runs, &model.Run{
				Props:     p.styles.ResolveRunProperties(model.RunProps{}, "", styleID),
				Hyperlink: link,
				Children:  []model.RunChild{field},
			})
		}
	}
}

// openField is a complex field between its begin and end markers.
type openField struct {
	field    *model.Field
	inResult bool
}

// fieldState follows fldChar begin/separate/end through a paragraph.
// Fields nest; the innermost open field is last.
type fieldState struct {
	open []openField
}

func (f *fieldState) top() *openField {
	if len(f.open) == 0 {
		return nil
	}
	return &f.open[len(f.open)-1]
}

// addResult appends displayed text to every open field showing its result.
func (f *fieldState) addResult(text string) {
	for i := range f.open {
		if f.open[i].inResult {
			f.open[i].field.Result += text
		}
	}
}

// parseRun resolves run formatting and converts the run children.
func (p *Parser) parseRun(x *runXML, paragraphStyleID string, scope partScope, link *model.Hyperlink, fields *fieldState) *model.Run {
	local := runPropsFromXML(x.Properties)
	run := &model.Run{
		Props:     p.styles.ResolveRunProperties(local, local.StyleID, paragraphStyleID),
		Hyperlink: link,
	}

	for _, c := range x.Content {
		switch c.Kind {
		case runText:
			run.Children = append(run.Children, model.Text{Value: c.Text})
			fields.addResult(c.Text)
		case runInstrText:
			if top := fields.top(); top != nil && !top.inResult {
				top.field.Instruction += c.Text
			} else {
				run.Children = append(run.Children, &model.Field{Instruction: strings.TrimSpace(c.Text)})
			}
		case runFieldChar:
			switch c.Type {
			case "begin":
				f := &model.Field{}
				fields.open = append(fields.open, openField{field: f})
				run.Children = append(run.Children, f)
			case "separate":
				if top := fields.top(); top != nil {
					top.field.Instruction = strings.TrimSpace(top.field.Instruction)
					top.inResult = true
				}
			case "end":
				if top := fields.top(); top != nil {
					top.field.Instruction = strings.TrimSpace(top.field.Instruction)
					fields.open = fields.open[:len(fields.open)-1]
				}
			}
		case runBreak:
			run.Children = append(run.Children, model.Break{Kind: breakKind(c.Type)})
		case runCarriageReturn:
			run.Children = append(run.Children, model.Break{Kind: model.BreakTextWrapping})
		case runTab:
			run.Children = append(run.Children, model.Tab{})
		case runNoBreakHyphen:
			run.Children = append(run.Children, model.Text{Value: "\u2011"})
		case runSoftHyphen:
			run.Children = append(run.Children, model.Text{Value: "\u00ad"})
		case runSymbol:
			run.Children = append(run.Children, symbol(c.Symbol))
		case runDrawing:
			for _, d := range p.parseDrawing(c.Drawing, scope) {
				run.Children = append(run.Children, d)
			}
		case runAlternateContent:
			for _, d := range p.parseAlternateContent(c.Alternate, scope) {
				run.Children = append(run.Children, d)
			}
		case runPicture:
			if d := p.parsePicture(c.Picture, scope); d != nil {
				run.Children = append(run.Children, d)
			}
		}
	}
	return run
}

func breakKind(t string) model.BreakKind {
	switch t {
	case "page":
		return model.BreakPage
	case "column":
		return model.BreakColumn
	}
	return model.BreakTextWrapping
}

// symbol decodes a w:sym character code. The character is only meaningful
// together with its font.
func symbol(x *symXML) model.Symbol {
	s := model.Symbol{Font: x.Font, Code: x.Char}
	if code, err := strconv.ParseUint(x.Char, 16, 32); err == nil {
		s.Char = string(rune(code))
	}
	return s
}
