package docx

import (
	"strings"
	"time"

	"github.com/tsawler/wordml/internal/xmlutil"
	"github.com/tsawler/wordml/model"
	"github.com/tsawler/wordml/opc"
)

// corePropertiesXML represents docProps/core.xml.
type corePropertiesXML struct {
	Title          string `xml:"title"`
	Subject        string `xml:"subject"`
	Creator        string `xml:"creator"`
	Keywords       string `xml:"keywords"`
	Description    string `xml:"description"`
	LastModifiedBy string `xml:"lastModifiedBy"`
	Revision       string `xml:"revision"`
	Category       string `xml:"category"`
	Created        string `xml:"created"`
	Modified       string `xml:"modified"`
}

// appPropertiesXML represents docProps/app.xml.
type appPropertiesXML struct {
	Application string `xml:"Application"`
	Company     string `xml:"Company"`
	Pages       string `xml:"Pages"`
	Words       string `xml:"Words"`
	Characters  string `xml:"Characters"`
}

// readMetadata collects document properties. Both parts are optional and a
// malformed one is logged and skipped.
func readMetadata(pkg *opc.Package) model.Metadata {
	var meta model.Metadata

	var core corePropertiesXML
	if loadOptional(pkg, opc.CorePropsPart, &core) {
		meta.Title = strings.TrimSpace(core.Title)
		meta.Subject = strings.TrimSpace(core.Subject)
		meta.Creator = strings.TrimSpace(core.Creator)
		meta.Description = strings.TrimSpace(core.Description)
		meta.LastModifiedBy = strings.TrimSpace(core.LastModifiedBy)
		meta.Category = strings.TrimSpace(core.Category)
		meta.Revision, _ = xmlutil.ParseInt(core.Revision)
		meta.Created = parseW3CDate(core.Created)
		meta.Modified = parseW3CDate(core.Modified)
		meta.Keywords = splitKeywords(core.Keywords)
	}

	var app appPropertiesXML
	if loadOptional(pkg, opc.AppPropsPart, &app) {
		meta.Application = strings.TrimSpace(app.Application)
		meta.Company = strings.TrimSpace(app.Company)
		meta.Pages, _ = xmlutil.ParseInt(app.Pages)
		meta.Words, _ = xmlutil.ParseInt(app.Words)
		meta.Characters, _ = xmlutil.ParseInt(app.Characters)
	}

	return meta
}

// splitKeywords splits on commas and semicolons, dropping empty entries.
func splitKeywords(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	var out []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// parseW3CDate parses dcterms dates. Unparseable values yield the zero time.
func parseW3CDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
