// Package opc reads the Open Packaging Conventions container around a
// WordprocessingML document: zip parts, content types, relationships and
// embedded media.
package opc

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Well-known part names.
const (
	DocumentPart     = "word/document.xml"
	StylesPart       = "word/styles.xml"
	NumberingPart    = "word/numbering.xml"
	CorePropsPart    = "docProps/core.xml"
	AppPropsPart     = "docProps/app.xml"
	ContentTypesPart = "[Content_Types].xml"
)

// ErrPartNotFound is returned (wrapped) by a PartReader when the archive has
// no part with the requested name.
var ErrPartNotFound = errors.New("part not found")

// PartReader gives access to the raw bytes of package parts.
type PartReader interface {
	ReadPart(name string) ([]byte, error)
}

// ZipPackage is a PartReader over a zip archive.
type ZipPackage struct {
	files map[string]*zip.File
	names []string
}

// NewZipPackage reads the zip central directory from r. The caller keeps
// ownership of r, which must stay readable while parts are read.
func NewZipPackage(r io.ReaderAt, size int64) (*ZipPackage, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return newZipPackage(zr.File), nil
}

func newZipPackage(files []*zip.File) *ZipPackage {
	z := &ZipPackage{
		files: make(map[string]*zip.File, len(files)),
	}
	for _, f := range files {
		// Part names are case-insensitive.
		key := strings.ToLower(f.Name)
		if _, dup := z.files[key]; dup {
			continue
		}
		z.files[key] = f
		z.names = append(z.names, f.Name)
	}
	return z
}

// ReadPart returns the content of the named part. A leading '/' is ignored.
func (z *ZipPackage) ReadPart(name string) ([]byte, error) {
	f, ok := z.files[strings.ToLower(strings.TrimPrefix(name, "/"))]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrPartNotFound)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Parts returns the part names in archive order.
func (z *ZipPackage) Parts() []string {
	return append([]string(nil), z.names...)
}

// Option configures a Package.
type Option func(*Package)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(p *Package) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithImageConcurrency bounds the number of media parts loaded at once.
func WithImageConcurrency(n int) Option {
	return func(p *Package) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithImageRecognizer runs r over every loaded image.
func WithImageRecognizer(r ImageRecognizer) Option {
	return func(p *Package) {
		p.recognizer = r
	}
}

// Package is the per-parse view of a document package. It caches
// relationships and loaded media; it is safe for concurrent use.
type Package struct {
	parts       PartReader
	logger      *log.Logger
	concurrency int
	recognizer  ImageRecognizer

	mu           sync.RWMutex
	rels         map[string]*Relationships
	images       map[string]*ImageHandle
	contentTypes *ContentTypes
}

// New wraps parts in a Package.
func New(parts PartReader, opts ...Option) *Package {
	p := &Package{
		parts:       parts,
		logger:      log.New(io.Discard),
		concurrency: 8,
		rels:        make(map[string]*Relationships),
		images:      make(map[string]*ImageHandle),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Logger returns the package's logger.
func (p *Package) Logger() *log.Logger {
	return p.logger
}

// LoadPart returns the bytes of a part. A missing part reports ok=false with
// a nil error.
func (p *Package) LoadPart(name string) (data []byte, ok bool, err error) {
	data, err = p.parts.ReadPart(name)
	if errors.Is(err, ErrPartNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// checkContext returns ctx.Err() if the context is done.
func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
