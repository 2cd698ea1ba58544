package opc

import (
	"path"
	"strings"

	"github.com/tsawler/wordml/internal/xmlutil"
)

// contentTypesXML represents [Content_Types].xml
type contentTypesXML struct {
	Defaults []struct {
		Extension   string `xml:"Extension,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Default"`
	Overrides []struct {
		PartName    string `xml:"PartName,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Override"`
}

// ContentTypes maps part names to MIME types.
type ContentTypes struct {
	defaults  map[string]string
	overrides map[string]string
}

// fallbackTypes covers media commonly found in documents whose content
// types part is missing or incomplete.
var fallbackTypes = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
	"webp": "image/webp",
	"emf":  "image/x-emf",
	"wmf":  "image/x-wmf",
	"svg":  "image/svg+xml",
	"xml":  "application/xml",
	"rels": "application/vnd.openxmlformats-package.relationships+xml",
}

func parseContentTypes(data []byte) (*ContentTypes, error) {
	var x contentTypesXML
	if err := xmlutil.Unmarshal(data, &x); err != nil {
		return nil, err
	}
	ct := &ContentTypes{
		defaults:  make(map[string]string, len(x.Defaults)),
		overrides: make(map[string]string, len(x.Overrides)),
	}
	for _, d := range x.Defaults {
		ct.defaults[strings.ToLower(d.Extension)] = d.ContentType
	}
	for _, o := range x.Overrides {
		ct.overrides[strings.ToLower(strings.TrimPrefix(o.PartName, "/"))] = o.ContentType
	}
	return ct, nil
}

// Lookup returns the content type of a part: an override, then the default
// for its extension, then a built-in guess.
func (ct *ContentTypes) Lookup(part string) string {
	part = strings.ToLower(strings.TrimPrefix(part, "/"))
	ext := strings.TrimPrefix(path.Ext(part), ".")
	if ct != nil {
		if v, ok := ct.overrides[part]; ok {
			return v
		}
		if v, ok := ct.defaults[ext]; ok {
			return v
		}
	}
	return fallbackTypes[ext]
}

// ContentTypes loads [Content_Types].xml once. A missing or malformed part
// yields an empty table that still answers with built-in guesses.
func (p *Package) ContentTypes() *ContentTypes {
	p.mu.RLock()
	ct := p.contentTypes
	p.mu.RUnlock()
	if ct != nil {
		return ct
	}

	ct = &ContentTypes{}
	data, ok, err := p.LoadPart(ContentTypesPart)
	switch {
	case err != nil:
		p.logger.Warn("reading content types", "err", err)
	case !ok:
		p.logger.Debug("no content types part")
	default:
		parsed, perr := parseContentTypes(data)
		if perr != nil {
			p.logger.Warn("malformed content types, ignoring", "err", perr)
		} else {
			ct = parsed
		}
	}

	p.mu.Lock()
	if p.contentTypes == nil {
		p.contentTypes = ct
	}
	ct = p.contentTypes
	p.mu.Unlock()
	return ct
}
