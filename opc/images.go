package opc

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// ImageRecognizer extracts text from image bytes.
type ImageRecognizer interface {
	RecognizeImage(data []byte) (string, error)
}

// ImageHandle is a media part loaded into memory.
type ImageHandle struct {
	// RelID is the id of the first relationship that loaded the image.
	RelID       string
	Path        string
	ContentType string
	Data        []byte

	// Format, Width and Height come from the image header; they stay empty
	// for formats without a registered decoder (emf, wmf, svg).
	Format string
	Width  int
	Height int

	// Text is the recognized text when a recognizer is configured.
	Text string
}

// ResolveImages loads every internal image target of the main document.
func (p *Package) ResolveImages(ctx context.Context) error {
	return p.ResolveImagesFor(ctx, DocumentPart)
}

// ResolveImagesFor loads the internal image targets referenced by part's
// relationships concurrently and returns once all loads have finished. A
// missing media part is skipped.
func (p *Package) ResolveImagesFor(ctx context.Context, part string) error {
	rels, err := p.PartRelationships(ctx, part)
	if err != nil {
		return err
	}

	ct := p.ContentTypes()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	seen := make(map[string]bool)
	for _, rel := range rels.All() {
		if rel.Kind() != RelTypeImage || rel.IsExternal() {
			continue
		}
		target := ResolveTarget(part, rel.Target)
		if seen[target] {
			continue
		}
		seen[target] = true
		if _, ok := p.image(target); ok {
			continue
		}

		g.Go(func() error {
			if err := checkContext(gctx); err != nil {
				return err
			}
			h, err := p.loadImage(rel.ID, target, ct.Lookup(target))
			if err != nil {
				return err
			}
			if h != nil {
				p.storeImage(h)
			}
			return nil
		})
	}
	return g.Wait()
}

func (p *Package) loadImage(relID, target, contentType string) (*ImageHandle, error) {
	data, ok, err := p.LoadPart(target)
	if err != nil {
		return nil, err
	}
	if !ok {
		p.logger.Debug("image part missing", "rel", relID, "part", target)
		return nil, nil
	}

	h := &ImageHandle{
		RelID:       relID,
		Path:        target,
		ContentType: contentType,
		Data:        data,
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err == nil {
		h.Format = format
		h.Width = cfg.Width
		h.Height = cfg.Height
	} else {
		p.logger.Debug("image header not decodable", "part", target, "err", err)
	}

	if p.recognizer != nil && h.Format != "" {
		text, err := p.recognizer.RecognizeImage(data)
		if err != nil {
			p.logger.Warn("image text recognition failed", "part", target, "err", err)
		} else {
			h.Text = text
		}
	}
	return h, nil
}

func (p *Package) storeImage(h *ImageHandle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.images[h.Path]; !ok {
		p.images[h.Path] = h
	}
}

func (p *Package) image(path string) (*ImageHandle, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	h, ok := p.images[path]
	return h, ok
}

// ImageHandle returns the loaded image for a relationship id of the main
// document.
func (p *Package) ImageHandle(relID string) (*ImageHandle, bool) {
	return p.Scope(DocumentPart).ImageHandle(relID)
}
