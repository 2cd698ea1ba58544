package docx

import (
	"reflect"
	"testing"

	"github.com/tsawler/wordml/model"
)

const testStyles = `
<w:docDefaults>
  <w:rPrDefault><w:rPr><w:rFonts w:ascii="Calibri"/><w:sz w:val="22"/></w:rPr></w:rPrDefault>
  <w:pPrDefault><w:pPr><w:spacing w:after="160"/></w:pPr></w:pPrDefault>
</w:docDefaults>
<w:style w:type="paragraph" w:default="1" w:styleId="Normal">
  <w:name w:val="Normal"/>
  <w:pPr><w:jc w:val="left"/></w:pPr>
</w:style>
<w:style w:type="paragraph" w:styleId="Heading1">
  <w:name w:val="heading 1"/>
  <w:basedOn w:val="Normal"/>
  <w:pPr><w:keepNext/><w:outlineLvl w:val="0"/><w:rPr><w:color w:val="2F5496"/></w:rPr></w:pPr>
  <w:rPr><w:b/><w:sz w:val="32"/></w:rPr>
</w:style>
<w:style w:type="paragraph" w:styleId="Heading2">
  <w:basedOn w:val="Heading1"/>
  <w:pPr><w:jc w:val="center"/><w:outlineLvl w:val="1"/></w:pPr>
  <w:rPr><w:sz w:val="26"/></w:rPr>
</w:style>
<w:style w:type="character" w:styleId="Emphasis">
  <w:rPr><w:i/><w:b w:val="0"/></w:rPr>
</w:style>
<w:style w:type="paragraph" w:styleId="LoopA"><w:basedOn w:val="LoopB"/><w:rPr><w:i/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="LoopB"><w:basedOn w:val="LoopA"/><w:rPr><w:b/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Normal"><w:pPr><w:jc w:val="right"/></w:pPr></w:style>
`

func TestNewStyleResolver_Nil(t *testing.T) {
	sr := NewStyleResolver(nil)

	local := model.RunProps{Bold: model.Bool(true)}
	got := sr.ResolveRunProperties(local, "", "")
	if !got.IsBold() {
		t.Error("expected local bold to survive with no catalog")
	}
	if got.Size != nil {
		t.Errorf("expected no size, got %d", *got.Size)
	}
	if len(sr.Chain("Heading1")) != 0 {
		t.Error("expected empty chain")
	}
}

func TestStyleResolver_DefaultStyle(t *testing.T) {
	sr := decodeStyles(t, testStyles)
	if got := sr.DefaultStyle(StyleParagraph); got != "Normal" {
		t.Errorf("DefaultStyle(paragraph) = %q, want Normal", got)
	}
	if got := sr.DefaultStyle(StyleCharacter); got != "" {
		t.Errorf("DefaultStyle(character) = %q, want empty", got)
	}
}

func TestStyleResolver_DuplicateFirstWins(t *testing.T) {
	sr := decodeStyles(t, testStyles)
	p := sr.ResolveParagraphProperties(model.ParagraphProps{}, "Normal")
	if p.Alignment != model.AlignLeft {
		t.Errorf("alignment = %q, want left from the first Normal", p.Alignment)
	}
}

func TestStyleResolver_Chain(t *testing.T) {
	sr := decodeStyles(t, testStyles)

	tests := []struct {
		id   string
		want []string
	}{
		{"Heading2", []string{"Heading2", "Heading1", "Normal"}},
		{"Normal", []string{"Normal"}},
		{"LoopA", []string{"LoopA", "LoopB"}},
		{"Missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			var got []string
			for _, def := range sr.Chain(tt.id) {
				got = append(got, def.ID)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Chain(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestStyleResolver_ResolveParagraph(t *testing.T) {
	sr := decodeStyles(t, testStyles)

	p := sr.ResolveParagraphProperties(model.ParagraphProps{}, "Heading2")
	if p.Alignment != model.AlignCenter {
		t.Errorf("alignment = %q, want center", p.Alignment)
	}
	if p.OutlineLevel == nil || *p.OutlineLevel != 1 {
		t.Errorf("outline level = %v, want 1", p.OutlineLevel)
	}
	if p.KeepNext == nil || !*p.KeepNext {
		t.Error("expected keepNext inherited from Heading1")
	}
	if p.Spacing.After == nil || *p.Spacing.After != 160 {
		t.Errorf("spacing after = %v, want 160 from docDefaults", p.Spacing.After)
	}
	if p.RunProps.Color != "2F5496" {
		t.Errorf("paragraph mark color = %q, want 2F5496", p.RunProps.Color)
	}
	if p.StyleID != "" {
		t.Errorf("style id leaked into resolved props: %q", p.StyleID)
	}
}

func TestStyleResolver_LocalWins(t *testing.T) {
	sr := decodeStyles(t, testStyles)

	local := model.ParagraphProps{StyleID: "Heading2", Alignment: model.AlignRight}
	p := sr.ResolveParagraphProperties(local, "Heading2")
	if p.Alignment != model.AlignRight {
		t.Errorf("alignment = %q, want local right", p.Alignment)
	}
	if p.StyleID != "Heading2" {
		t.Errorf("style id = %q, want Heading2", p.StyleID)
	}
}

func TestStyleResolver_EmptyStyleUsesDefault(t *testing.T) {
	sr := decodeStyles(t, testStyles)
	p := sr.ResolveParagraphProperties(model.ParagraphProps{}, "")
	if p.Alignment != model.AlignLeft {
		t.Errorf("alignment = %q, want left from Normal", p.Alignment)
	}
}

func TestStyleResolver_ResolveRun(t *testing.T) {
	sr := decodeStyles(t, testStyles)

	tests := []struct {
		name       string
		local      model.RunProps
		runStyle   string
		paraStyle  string
		wantBold   bool
		wantItalic bool
		wantSize   int
		wantFont   string
		wantColor  string
	}{
		{
			name:     "defaults only",
			wantSize: 22,
			wantFont: "Calibri",
		},
		{
			name:      "paragraph style chain",
			paraStyle: "Heading2",
			wantBold:  true,
			wantSize:  26,
			wantFont:  "Calibri",
			wantColor: "2F5496",
		},
		{
			name:       "character style over paragraph style",
			runStyle:   "Emphasis",
			paraStyle:  "Heading1",
			wantBold:   false,
			wantItalic: true,
			wantSize:   32,
			wantFont:   "Calibri",
			wantColor:  "2F5496",
		},
		{
			name:       "local over everything",
			local:      model.RunProps{Bold: model.Bool(true), Size: model.Int(40), Font: "Arial"},
			runStyle:   "Emphasis",
			paraStyle:  "Heading1",
			wantBold:   true,
			wantItalic: true,
			wantSize:   40,
			wantFont:   "Arial",
			wantColor:  "2F5496",
		},
		{
			name:       "cycle terminates",
			paraStyle:  "LoopA",
			wantBold:   true,
			wantItalic: true,
			wantSize:   22,
			wantFont:   "Calibri",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sr.ResolveRunProperties(tt.local, tt.runStyle, tt.paraStyle)
			if got.IsBold() != tt.wantBold {
				t.Errorf("bold = %v, want %v", got.IsBold(), tt.wantBold)
			}
			if got.IsItalic() != tt.wantItalic {
				t.Errorf("italic = %v, want %v", got.IsItalic(), tt.wantItalic)
			}
			if got.Size == nil || *got.Size != tt.wantSize {
				t.Errorf("size = %v, want %d", got.Size, tt.wantSize)
			}
			if got.Font != tt.wantFont {
				t.Errorf("font = %q, want %q", got.Font, tt.wantFont)
			}
			if got.Color != tt.wantColor {
				t.Errorf("color = %q, want %q", got.Color, tt.wantColor)
			}
		})
	}
}

func TestStyleResolver_Idempotent(t *testing.T) {
	sr := decodeStyles(t, testStyles)
	local := model.RunProps{Underline: "double"}

	first := sr.ResolveRunProperties(local, "Emphasis", "Heading2")
	second := sr.ResolveRunProperties(local, "Emphasis", "Heading2")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ:\n%+v\n%+v", first, second)
	}

	// Results must not alias the catalog.
	*first.Size = 99
	third := sr.ResolveRunProperties(local, "Emphasis", "Heading2")
	if *third.Size == 99 {
		t.Error("resolved size aliases the style catalog")
	}
}

func TestRunPropsFromXML_Toggles(t *testing.T) {
	tests := []struct {
		val  string
		want bool
	}{
		{"", true},
		{"1", true},
		{"true", true},
		{"on", true},
		{"0", false},
		{"false", false},
		{"off", false},
	}

	for _, tt := range tests {
		t.Run("val="+tt.val, func(t *testing.T) {
			p := runPropsFromXML(&rPrXML{Bold: &onOffXML{Val: tt.val}})
			if p.Bold == nil || *p.Bold != tt.want {
				t.Errorf("bold = %v, want %v", p.Bold, tt.want)
			}
		})
	}
}

func TestRunPropsFromXML_UnderlineAndStrike(t *testing.T) {
	p := runPropsFromXML(&rPrXML{Underline: &valXML{}, DStrike: &onOffXML{}})
	if p.Underline != "single" {
		t.Errorf("underline = %q, want single", p.Underline)
	}
	if !p.IsStrike() {
		t.Error("expected dstrike to render as strike")
	}

	p = runPropsFromXML(&rPrXML{Underline: &valXML{Val: "none"}})
	if p.HasUnderline() {
		t.Error("underline none should not count as underlined")
	}
}
