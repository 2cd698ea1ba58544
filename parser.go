package wordml

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/tsawler/wordml/docx"
	"github.com/tsawler/wordml/format"
	"github.com/tsawler/wordml/model"
	"github.com/tsawler/wordml/ocr"
	"github.com/tsawler/wordml/opc"
)

// Result is a parsed document together with its package metadata.
type Result struct {
	Document *model.Document
	Metadata model.Metadata
}

// Parser provides a fluent interface for parsing DOCX packages.
// Each configuration method returns a new Parser instance, making it
// safe for concurrent use and allowing method chaining.
type Parser struct {
	// Source; either a filename or a reader.
	filename string
	src      io.ReaderAt
	size     int64

	// Configuration
	options ParseOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Parser with a copy of options.
func (p *Parser) clone() *Parser {
	return &Parser{
		filename: p.filename,
		src:      p.src,
		size:     p.size,
		options:  p.options.clone(),
		err:      p.err,
	}
}

// WithLogger routes diagnostics to l. Nil restores the default, which
// discards them.
func (p *Parser) WithLogger(l *log.Logger) *Parser {
	newP := p.clone()
	if l == nil {
		l = defaultOptions().logger
	}
	newP.options.logger = l
	return newP
}

// ImageConcurrency bounds the number of media parts loaded at once.
// n must be positive.
func (p *Parser) ImageConcurrency(n int) *Parser {
	newP := p.clone()
	if n < 1 {
		newP.err = fmt.Errorf("image concurrency must be positive, got %d", n)
		return newP
	}
	newP.options.imageConcurrency = n
	return newP
}

// SkipImages leaves embedded media unloaded. Image drawings are omitted from
// the result; shapes and text boxes are kept.
func (p *Parser) SkipImages() *Parser {
	newP := p.clone()
	newP.options.skipImages = true
	return newP
}

// SkipHeadersFooters leaves every section without headers and footers.
func (p *Parser) SkipHeadersFooters() *Parser {
	newP := p.clone()
	newP.options.skipHeadersFooters = true
	return newP
}

// SkipMetadata leaves Result.Metadata empty.
func (p *Parser) SkipMetadata() *Parser {
	newP := p.clone()
	newP.options.skipMetadata = true
	return newP
}

// ImageRecognizer runs r over every loaded image; the text is stored on the
// image reference. It takes precedence over RecognizeImageText.
func (p *Parser) ImageRecognizer(r opc.ImageRecognizer) *Parser {
	newP := p.clone()
	newP.options.recognizer = r
	return newP
}

// RecognizeImageText runs Tesseract over every loaded image. lang selects
// the languages ("eng", "eng+fra"); empty means English. Parse fails unless
// the program was built with the "ocr" tag.
func (p *Parser) RecognizeImageText(lang string) *Parser {
	newP := p.clone()
	newP.options.recognizeText = true
	newP.options.ocrLanguage = lang
	return newP
}

// Parse reads the package and returns the resolved document. The result is
// all-or-nothing. Input that is not a WordprocessingML package fails with
// ErrNotDOCX; cancellation returns ctx.Err().
func (p *Parser) Parse(ctx context.Context) (*Result, error) {
	if p.err != nil {
		return nil, p.err
	}

	src, size, closeSrc, err := p.open()
	if err != nil {
		return nil, err
	}
	defer closeSrc()

	if err := checkFormat(src, size); err != nil {
		return nil, err
	}

	parts, err := opc.NewZipPackage(src, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDOCX, err)
	}

	opts := p.options.docxOptions()
	if p.options.recognizeText && opts.Recognizer == nil {
		client, err := newRecognizer(p.options.ocrLanguage)
		if err != nil {
			return nil, err
		}
		defer client.Close()
		opts.Recognizer = client
	}

	doc, meta, err := docx.Parse(ctx, parts, opts)
	if err != nil {
		return nil, err
	}
	return &Result{Document: doc, Metadata: meta}, nil
}

// Text parses the document and returns the plain text of its body.
func (p *Parser) Text(ctx context.Context) (string, error) {
	res, err := p.Parse(ctx)
	if err != nil {
		return "", err
	}
	return res.Document.Text(), nil
}

// open returns the package bytes and a function releasing them.
func (p *Parser) open() (io.ReaderAt, int64, func(), error) {
	if p.src != nil {
		return p.src, p.size, func() {}, nil
	}
	if p.filename == "" {
		return nil, 0, nil, fmt.Errorf("no filename specified")
	}

	f, err := os.Open(p.filename)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("failed to open DOCX: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, nil, fmt.Errorf("failed to stat DOCX: %w", err)
	}
	if ext := format.Detect(p.filename); ext != format.DOCX {
		p.options.logger.Debug("unexpected file extension", "file", p.filename, "format", ext)
	}
	return f, info.Size(), func() { f.Close() }, nil
}

// checkFormat rejects input that is not a zip archive, or is a zip archive
// holding another kind of package. A zip without package markers is passed
// through; the missing main part is reported by the parser.
func checkFormat(src io.ReaderAt, size int64) error {
	f, err := format.DetectFromReader(src, size)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotDOCX, err)
	}
	switch f {
	case format.DOCX, format.ZIP:
		return nil
	default:
		return fmt.Errorf("%w: detected %s", ErrNotDOCX, f)
	}
}

func newRecognizer(lang string) (*ocr.Client, error) {
	client, err := ocr.New()
	if err != nil {
		return nil, fmt.Errorf("starting OCR: %w", err)
	}
	if lang != "" {
		if err := client.SetLanguage(lang); err != nil {
			client.Close()
			return nil, fmt.Errorf("setting OCR language: %w", err)
		}
	}
	return client, nil
}
