package docx

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tsawler/wordml/model"
	"github.com/tsawler/wordml/opc"
	"golang.org/x/sync/errgroup"
)

// loadedPart is a header or footer part decoded ahead of parsing.
type loadedPart struct {
	target string
	body   blockListXML
}

// Assembler attaches header and footer content to parsed sections and
// builds the final document.
type Assembler struct {
	pkg        *opc.Package
	parser     *Parser
	logger     *log.Logger
	skipImages bool
}

// NewAssembler creates an assembler that parses header and footer parts of
// pkg with parser. With skipImages set, media referenced from headers and
// footers is not loaded.
func NewAssembler(pkg *opc.Package, parser *Parser, skipImages bool) *Assembler {
	return &Assembler{
		pkg:        pkg,
		parser:     parser,
		logger:     pkg.Logger(),
		skipImages: skipImages,
	}
}

// Assemble resolves every header and footer reference of sections and
// returns the document. Referenced parts are loaded concurrently; parsing is
// sequential in section order, headers before footers, because list counters
// are shared with the body. A part referenced by several sections is parsed
// once and its blocks are shared. Unresolved references are dropped.
func (a *Assembler) Assemble(ctx context.Context, sections []*model.Section) (*model.Document, error) {
	loaded, err := a.load(ctx, sections)
	if err != nil {
		return nil, err
	}

	parsed := make(map[string][]model.Block)
	resolve := func(refs []*model.HeaderFooter) []*model.HeaderFooter {
		out := refs[:0]
		for _, ref := range refs {
			part, ok := loaded[ref.RelID]
			if !ok {
				continue
			}
			blocks, done := parsed[ref.RelID]
			if !done {
				blocks = a.parser.parseBlocks(part.body.Blocks, a.pkg.Scope(part.target))
				parsed[ref.RelID] = blocks
			}
			ref.Blocks = blocks
			out = append(out, ref)
		}
		return out
	}

	doc := model.NewDocument()
	for _, s := range sections {
		s.Headers = resolve(s.Headers)
		s.Footers = resolve(s.Footers)
		doc.AddSection(s)
	}
	return doc, nil
}

// load reads, decodes and resolves the relationships of every distinct
// referenced part. A reference whose relationship, part or XML is unusable
// is absent from the result.
func (a *Assembler) load(ctx context.Context, sections []*model.Section) (map[string]*loadedPart, error) {
	var ids []string
	seen := make(map[string]bool)
	for _, s := range sections {
		for _, refs := range [][]*model.HeaderFooter{s.Headers, s.Footers} {
			for _, ref := range refs {
				if !seen[ref.RelID] {
					seen[ref.RelID] = true
					ids = append(ids, ref.RelID)
				}
			}
		}
	}

	var mu sync.Mutex
	loaded := make(map[string]*loadedPart, len(ids))
	docScope := a.pkg.Scope(opc.DocumentPart)

	g, gctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		rel, ok := docScope.Relationship(id)
		if !ok || rel.IsExternal() {
			a.logger.Debug("header/footer relationship not found", "rel", id)
			continue
		}
		target := docScope.TargetPath(rel)

		g.Go(func() error {
			part, err := a.loadPart(gctx, id, target)
			if err != nil || part == nil {
				return err
			}
			mu.Lock()
			loaded[id] = part
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return loaded, nil
}

func (a *Assembler) loadPart(ctx context.Context, relID, target string) (*loadedPart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, ok, err := a.pkg.LoadPart(target)
	if err != nil {
		return nil, &PartError{Part: target, Err: err}
	}
	if !ok {
		a.logger.Debug("header/footer part missing", "rel", relID, "part", target)
		return nil, nil
	}

	part := &loadedPart{target: target}
	if err := unmarshalPart(data, &part.body); err != nil {
		a.logger.Warn("malformed header/footer, ignoring", "part", target, "err", err)
		return nil, nil
	}

	if _, err := a.pkg.PartRelationships(ctx, target); err != nil {
		return nil, err
	}
	if !a.skipImages {
		if err := a.pkg.ResolveImagesFor(ctx, target); err != nil {
			return nil, err
		}
	}
	return part, nil
}
