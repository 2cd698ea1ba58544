package opc

import (
	"cmp"
	"context"
	"encoding/xml"
	"net/url"
	"path"
	"slices"
	"strings"

	"github.com/tsawler/wordml/internal/xmlutil"
)

// Relationship type suffixes. Transitional and strict documents use
// different namespace prefixes, so types are matched on the last segment.
const (
	RelTypeImage     = "image"
	RelTypeHeader    = "header"
	RelTypeFooter    = "footer"
	RelTypeHyperlink = "hyperlink"
)

// TargetModeExternal marks a relationship pointing outside the package.
const TargetModeExternal = "External"

// relationshipsXML represents a .rels part
type relationshipsXML struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Relationships []relationshipXML `xml:"Relationship"`
}

// relationshipXML represents a single relationship
type relationshipXML struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

// Relationship links a source part to a target part or external resource.
type Relationship struct {
	ID         string
	Type       string
	Target     string
	TargetMode string
}

// Kind returns the last path segment of the relationship type, e.g.
// "image" or "header".
func (r Relationship) Kind() string {
	return path.Base(r.Type)
}

// IsExternal reports whether the target lies outside the package.
func (r Relationship) IsExternal() bool {
	return strings.EqualFold(r.TargetMode, TargetModeExternal)
}

// Relationships is the relationship table of one source part.
type Relationships struct {
	Source string
	byID   map[string]Relationship
}

func newRelationships(source string) *Relationships {
	return &Relationships{Source: source, byID: make(map[string]Relationship)}
}

// Get returns the relationship with the given id.
func (rs *Relationships) Get(id string) (Relationship, bool) {
	if rs == nil {
		return Relationship{}, false
	}
	r, ok := rs.byID[id]
	return r, ok
}

// Len returns the number of relationships.
func (rs *Relationships) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.byID)
}

// All returns the relationships ordered by id ("rId2" before "rId10").
func (rs *Relationships) All() []Relationship {
	if rs == nil {
		return nil
	}
	out := make([]Relationship, 0, len(rs.byID))
	for _, r := range rs.byID {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b Relationship) int {
		if c := cmp.Compare(len(a.ID), len(b.ID)); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// parseRelationships decodes a .rels part. The first occurrence of a
// duplicated id wins.
func parseRelationships(source string, data []byte) (*Relationships, error) {
	var x relationshipsXML
	if err := xmlutil.Unmarshal(data, &x); err != nil {
		return nil, err
	}
	rs := newRelationships(source)
	for _, r := range x.Relationships {
		if r.ID == "" {
			continue
		}
		if _, dup := rs.byID[r.ID]; dup {
			continue
		}
		rs.byID[r.ID] = Relationship{
			ID:         r.ID,
			Type:       r.Type,
			Target:     r.Target,
			TargetMode: r.TargetMode,
		}
	}
	return rs, nil
}

// RelationshipsPart returns the .rels part name for a source part, e.g.
// "word/_rels/document.xml.rels".
func RelationshipsPart(source string) string {
	dir, file := path.Split(source)
	return dir + "_rels/" + file + ".rels"
}

// ResolveTarget resolves a relationship target against the directory of its
// source part. A leading '/' makes the target package-absolute.
func ResolveTarget(source, target string) string {
	if unescaped, err := url.PathUnescape(target); err == nil {
		target = unescaped
	}
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return strings.TrimPrefix(path.Join(path.Dir(source), target), "/")
}

// LoadRelationships loads the main document's relationship table.
func (p *Package) LoadRelationships(ctx context.Context) error {
	_, err := p.PartRelationships(ctx, DocumentPart)
	return err
}

// PartRelationships loads and caches the relationship table of a part. A
// missing table is empty; a malformed one is logged and treated as empty.
func (p *Package) PartRelationships(ctx context.Context, part string) (*Relationships, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	p.mu.RLock()
	rs, ok := p.rels[part]
	p.mu.RUnlock()
	if ok {
		return rs, nil
	}

	relsPart := RelationshipsPart(part)
	data, found, err := p.LoadPart(relsPart)
	if err != nil {
		return nil, err
	}

	switch {
	case !found:
		p.logger.Debug("no relationships", "part", relsPart)
		rs = newRelationships(part)
	default:
		rs, err = parseRelationships(part, data)
		if err != nil {
			p.logger.Warn("malformed relationships, ignoring", "part", relsPart, "err", err)
			rs = newRelationships(part)
		}
	}

	p.mu.Lock()
	if existing, ok := p.rels[part]; ok {
		rs = existing
	} else {
		p.rels[part] = rs
	}
	p.mu.Unlock()
	return rs, nil
}

// Relationship looks up a relationship of the main document.
func (p *Package) Relationship(id string) (Relationship, bool) {
	return p.Scope(DocumentPart).Relationship(id)
}

// Relationships returns the main document's relationships ordered by id.
func (p *Package) Relationships() []Relationship {
	return p.Scope(DocumentPart).rels().All()
}

// Scope binds relationship and image lookups to one source part, so that
// r:id values in a header resolve against the header's own table.
type Scope struct {
	pkg  *Package
	part string
}

// Scope returns the lookup scope of part. Its relationships must have been
// loaded with PartRelationships; until then the scope is empty.
func (p *Package) Scope(part string) *Scope {
	return &Scope{pkg: p, part: part}
}

// Part returns the source part name.
func (s *Scope) Part() string {
	return s.part
}

func (s *Scope) rels() *Relationships {
	s.pkg.mu.RLock()
	defer s.pkg.mu.RUnlock()
	return s.pkg.rels[s.part]
}

// Relationship returns the relationship with the given id.
func (s *Scope) Relationship(id string) (Relationship, bool) {
	return s.rels().Get(id)
}

// TargetPath returns the package path a relationship points to.
func (s *Scope) TargetPath(r Relationship) string {
	return ResolveTarget(s.part, r.Target)
}

// ImageHandle returns the loaded image a relationship id refers to.
func (s *Scope) ImageHandle(id string) (*ImageHandle, bool) {
	r, ok := s.Relationship(id)
	if !ok || r.IsExternal() {
		return nil, false
	}
	return s.pkg.image(s.TargetPath(r))
}
