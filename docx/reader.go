// Package docx parses the WordprocessingML parts of a DOCX package into the
// resolved document model.
package docx

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/tsawler/wordml/internal/xmlutil"
	"github.com/tsawler/wordml/model"
	"github.com/tsawler/wordml/opc"
)

// Options controls a parse session.
type Options struct {
	// Logger receives diagnostics. Nil discards them.
	Logger *log.Logger

	// ImageConcurrency bounds concurrent media loads; zero uses the default.
	ImageConcurrency int

	// SkipImages leaves media unloaded. Image drawings are then omitted.
	SkipImages bool

	// SkipHeadersFooters drops header and footer references.
	SkipHeadersFooters bool

	// SkipMetadata leaves Metadata empty.
	SkipMetadata bool

	// Recognizer, if set, extracts text from every loaded image.
	Recognizer opc.ImageRecognizer
}

// Parse reads a whole document from parts. The result is all-or-nothing:
// any fatal error returns no document.
//
// The session loads styles and numbering, loads the document relationships
// and resolves images, parses the body in source order, then assembles
// headers and footers. Cancellation is checked between the phases.
func Parse(ctx context.Context, parts opc.PartReader, opts Options) (*model.Document, model.Metadata, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	pkg := opc.New(parts,
		opc.WithLogger(logger),
		opc.WithImageConcurrency(opts.ImageConcurrency),
		opc.WithImageRecognizer(opts.Recognizer),
	)

	var styles *StyleResolver
	var sx stylesXML
	if loadOptional(pkg, opc.StylesPart, &sx) {
		styles = NewStyleResolver(&sx)
	}

	var numbering *NumberingResolver
	var nx numberingXML
	if loadOptional(pkg, opc.NumberingPart, &nx) {
		numbering = NewNumberingResolver(&nx)
	}

	if err := pkg.LoadRelationships(ctx); err != nil {
		return nil, model.Metadata{}, fmt.Errorf("loading relationships: %w", err)
	}
	if !opts.SkipImages {
		if err := pkg.ResolveImages(ctx); err != nil {
			return nil, model.Metadata{}, fmt.Errorf("resolving images: %w", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, model.Metadata{}, err
	}

	body, err := loadDocument(pkg)
	if err != nil {
		return nil, model.Metadata{}, err
	}

	parser := NewParser(styles, numbering, logger)
	sections := parser.ParseBody(body, pkg.Scope(opc.DocumentPart))

	if err := ctx.Err(); err != nil {
		return nil, model.Metadata{}, err
	}

	if opts.SkipHeadersFooters {
		for _, s := range sections {
			s.Headers, s.Footers = nil, nil
		}
	}

	doc, err := NewAssembler(pkg, parser, opts.SkipImages).Assemble(ctx, sections)
	if err != nil {
		return nil, model.Metadata{}, fmt.Errorf("assembling headers and footers: %w", err)
	}

	var meta model.Metadata
	if !opts.SkipMetadata {
		meta = readMetadata(pkg)
	}

	if err := ctx.Err(); err != nil {
		return nil, model.Metadata{}, err
	}
	return doc, meta, nil
}

// loadDocument decodes the main document part. A missing part or body and
// malformed XML are fatal.
func loadDocument(pkg *opc.Package) (*blockListXML, error) {
	data, ok, err := pkg.LoadPart(opc.DocumentPart)
	if err != nil {
		return nil, &PartError{Part: opc.DocumentPart, Err: err}
	}
	if !ok {
		return nil, &PartError{Part: opc.DocumentPart, Err: ErrMissingRequiredPart}
	}

	var doc documentXML
	if err := unmarshalPart(data, &doc); err != nil {
		return nil, &PartError{Part: opc.DocumentPart, Err: err}
	}
	if doc.Body == nil {
		return nil, &PartError{Part: opc.DocumentPart, Err: fmt.Errorf("%w: no body", ErrMissingRequiredPart)}
	}
	return doc.Body, nil
}

// unmarshalPart decodes part XML, tagging decode failures as ErrMalformedXML.
func unmarshalPart(data []byte, v any) error {
	if err := xmlutil.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedXML, err)
	}
	return nil
}

// loadOptional decodes an optional part into v. It reports false when the
// part is missing, unreadable or malformed; only the last two are warned.
func loadOptional(pkg *opc.Package, part string, v any) bool {
	logger := pkg.Logger()

	data, ok, err := pkg.LoadPart(part)
	if err != nil {
		logger.Warn("optional part unreadable", "part", part, "err", err)
		return false
	}
	if !ok {
		logger.Debug("optional part missing", "part", part)
		return false
	}
	if err := unmarshalPart(data, v); err != nil {
		logger.Warn("optional part malformed, using defaults", "part", part, "err", err)
		return false
	}
	return true
}
