package docx

import (
	"github.com/tsawler/wordml/model"
)

// StyleKind is the type attribute of a style definition.
type StyleKind string

const (
	StyleParagraph StyleKind = "paragraph"
	StyleCharacter StyleKind = "character"
	StyleTable     StyleKind = "table"
	StyleNumbering StyleKind = "numbering"
)

// StyleDefinition is one entry of the style catalog.
type StyleDefinition struct {
	ID      string
	Kind    StyleKind
	Name    string
	BasedOn string
	Next    string
	Default bool

	// RunProps holds the style's rPr, nil when absent.
	RunProps *model.RunProps

	// ParagraphProps holds the style's pPr (including pPr>rPr), nil when
	// absent.
	ParagraphProps *model.ParagraphProps
}

// StyleResolver resolves effective formatting through the style catalog.
// It is immutable after construction.
type StyleResolver struct {
	styles           map[string]*StyleDefinition
	chains           map[string][]*StyleDefinition
	defaults         map[StyleKind]string
	defaultRun       model.RunProps
	defaultParagraph model.ParagraphProps
}

// NewStyleResolver creates a new style resolver from parsed styles.
// A nil catalog yields a resolver that only applies local formatting.
func NewStyleResolver(styles *stylesXML) *StyleResolver {
	sr := &StyleResolver{
		styles:   make(map[string]*StyleDefinition),
		chains:   make(map[string][]*StyleDefinition),
		defaults: make(map[StyleKind]string),
	}

	if styles == nil {
		return sr
	}

	sr.defaultRun = runPropsFromXML(styles.DocDefaults.RPr)
	sr.defaultParagraph = paragraphPropsFromXML(styles.DocDefaults.PPr)

	// Build style map
	for i := range styles.Styles {
		x := &styles.Styles[i]
		if x.StyleID == "" {
			continue
		}
		def := &StyleDefinition{
			ID:      x.StyleID,
			Kind:    StyleKind(x.Type),
			Name:    val(x.Name),
			BasedOn: val(x.BasedOn),
			Next:    val(x.Next),
			Default: x.Default == "1" || x.Default == "true",
		}
		if def.Kind == "" {
			def.Kind = StyleParagraph
		}
		if x.RPr != nil {
			rp := runPropsFromXML(x.RPr)
			def.RunProps = &rp
		}
		if x.PPr != nil {
			pp := paragraphPropsFromXML(x.PPr)
			// A style's own id is not a property to inherit.
			pp.StyleID = ""
			def.ParagraphProps = &pp
		}
		if _, dup := sr.styles[def.ID]; dup {
			continue
		}
		sr.styles[def.ID] = def
		if def.Default {
			if _, ok := sr.defaults[def.Kind]; !ok {
				sr.defaults[def.Kind] = def.ID
			}
		}
	}

	for id := range sr.styles {
		sr.chains[id] = sr.buildChain(id)
	}

	return sr
}

// Style returns the definition of a style.
func (sr *StyleResolver) Style(id string) (*StyleDefinition, bool) {
	def, ok := sr.styles[id]
	return def, ok
}

// DefaultStyle returns the id of the default style of a kind, if any.
func (sr *StyleResolver) DefaultStyle(kind StyleKind) string {
	return sr.defaults[kind]
}

// Chain returns the style and its ancestors, derived first. A cycle in
// basedOn stops the walk at the first repeated style. Unknown ids yield an
// empty chain.
func (sr *StyleResolver) Chain(styleID string) []*StyleDefinition {
	if chain, ok := sr.chains[styleID]; ok {
		return chain
	}
	return nil
}

// buildChain walks basedOn from styleID, derived to base.
func (sr *StyleResolver) buildChain(styleID string) []*StyleDefinition {
	var chain []*StyleDefinition
	visited := make(map[string]bool)

	current := styleID
	for current != "" && !visited[current] {
		visited[current] = true
		def, ok := sr.styles[current]
		if !ok {
			break
		}
		chain = append(chain, def)
		current = def.BasedOn
	}

	return chain
}

// ResolveParagraphProperties returns the effective paragraph properties:
// document defaults, then the style chain from base to derived, then local.
// An empty styleID uses the default paragraph style.
func (sr *StyleResolver) ResolveParagraphProperties(local model.ParagraphProps, styleID string) model.ParagraphProps {
	var eff model.ParagraphProps
	eff.RunProps.Merge(sr.defaultRun)
	eff.Merge(sr.defaultParagraph)

	chain := sr.Chain(sr.paragraphStyle(styleID))
	for i := len(chain) - 1; i >= 0; i-- {
		def := chain[i]
		if def.RunProps != nil {
			eff.RunProps.Merge(*def.RunProps)
		}
		if def.ParagraphProps != nil {
			eff.Merge(*def.ParagraphProps)
		}
	}

	eff.Merge(local)
	return eff
}

// ResolveRunProperties returns the effective run properties: document
// defaults, the paragraph style chain, the character style chain, then
// local formatting.
func (sr *StyleResolver) ResolveRunProperties(local model.RunProps, runStyleID, paragraphStyleID string) model.RunProps {
	var eff model.RunProps
	eff.Merge(sr.defaultRun)

	chain := sr.Chain(sr.paragraphStyle(paragraphStyleID))
	for i := len(chain) - 1; i >= 0; i-- {
		def := chain[i]
		if def.RunProps != nil {
			eff.Merge(*def.RunProps)
		}
		if def.ParagraphProps != nil {
			eff.Merge(def.ParagraphProps.RunProps)
		}
	}

	chain = sr.Chain(runStyleID)
	for i := len(chain) - 1; i >= 0; i-- {
		if rp := chain[i].RunProps; rp != nil {
			eff.Merge(*rp)
		}
	}

	// Style ids are not inherited into the run.
	eff.StyleID = ""
	eff.Merge(local)
	return eff
}

func (sr *StyleResolver) paragraphStyle(id string) string {
	if id == "" {
		return sr.defaults[StyleParagraph]
	}
	return id
}
