package docx

import (
	"strconv"
	"strings"

	"github.com/tsawler/wordml/internal/xmlutil"
	"github.com/tsawler/wordml/model"
)

// MaxListLevel is the deepest list level (ilvl) WordprocessingML defines.
// Levels outside 0..MaxListLevel are undefined.
const MaxListLevel = 8

// AbstractNumbering is a list definition shared by numbering instances.
type AbstractNumbering struct {
	ID     string
	Levels map[int]*model.NumberingLevel
}

// NumberingInstance binds a numId to an abstract definition.
type NumberingInstance struct {
	NumID         string
	AbstractNumID string

	// StartOverrides replaces the start value of individual levels.
	StartOverrides map[int]int
}

// NumberingResolver resolves numbering definitions from numbering.xml.
type NumberingResolver struct {
	abstracts map[string]*AbstractNumbering
	instances map[string]*NumberingInstance
}

// NewNumberingResolver creates a resolver from parsed numbering.xml.
func NewNumberingResolver(numbering *numberingXML) *NumberingResolver {
	nr := &NumberingResolver{
		abstracts: make(map[string]*AbstractNumbering),
		instances: make(map[string]*NumberingInstance),
	}

	if numbering == nil {
		return nr
	}

	// Build abstract numbering map
	for _, an := range numbering.AbstractNums {
		def := &AbstractNumbering{
			ID:     an.AbstractNumID,
			Levels: make(map[int]*model.NumberingLevel),
		}
		for _, lvl := range an.Levels {
			level := levelFromXML(lvl)
			if level.Index < 0 || level.Index > MaxListLevel {
				continue
			}
			if _, dup := def.Levels[level.Index]; !dup {
				def.Levels[level.Index] = level
			}
		}
		nr.abstracts[def.ID] = def
	}

	// Build num -> abstractNum mapping
	for _, num := range numbering.Nums {
		inst := &NumberingInstance{
			NumID:         num.NumID,
			AbstractNumID: val(num.AbstractNumID),
		}
		for _, o := range num.Overrides {
			if o.StartOverride == nil {
				continue
			}
			ilvl, ok := xmlutil.ParseInt(o.ILvl)
			start, ok2 := xmlutil.ParseInt(o.StartOverride.Val)
			if !ok || !ok2 {
				continue
			}
			if inst.StartOverrides == nil {
				inst.StartOverrides = make(map[int]int)
			}
			inst.StartOverrides[ilvl] = start
		}
		nr.instances[inst.NumID] = inst
	}

	return nr
}

func levelFromXML(x levelDefXML) *model.NumberingLevel {
	level := &model.NumberingLevel{Start: 1, Format: "decimal"}
	level.Index, _ = xmlutil.ParseInt(x.ILvl)
	if x.Start != nil {
		if s, ok := xmlutil.ParseInt(x.Start.Val); ok {
			level.Start = s
		}
	}
	if x.NumFmt != nil && x.NumFmt.Val != "" {
		level.Format = x.NumFmt.Val
	}
	if x.LvlText != nil && x.LvlText.Val != "" {
		level.LabelTemplate = x.LvlText.Val
	} else {
		level.LabelTemplate = "%" + strconv.Itoa(level.Index+1) + "."
	}
	level.Alignment = alignment(val(x.LvlJc))
	if x.PPr != nil && x.PPr.Indent != nil {
		level.Indent, _ = xmlutil.ParseInt(firstNonEmpty(x.PPr.Indent.Left, x.PPr.Indent.Start))
		level.Hanging, _ = xmlutil.ParseInt(x.PPr.Indent.Hanging)
	}
	if x.RPr != nil && x.RPr.Fonts != nil {
		level.Font = firstNonEmpty(x.RPr.Fonts.ASCII, x.RPr.Fonts.HAnsi)
	}
	return level
}

// Definition returns the abstract definition behind a numId.
func (nr *NumberingResolver) Definition(numID string) (*AbstractNumbering, bool) {
	inst, ok := nr.instances[numID]
	if !ok {
		return nil, false
	}
	def, ok := nr.abstracts[inst.AbstractNumID]
	return def, ok
}

// Level returns a copy of the level definition for numId and ilvl with any
// instance start override applied.
func (nr *NumberingResolver) Level(numID string, ilvl int) (*model.NumberingLevel, bool) {
	if ilvl < 0 || ilvl > MaxListLevel {
		return nil, false
	}
	def, ok := nr.Definition(numID)
	if !ok {
		return nil, false
	}
	lvl, ok := def.Levels[ilvl]
	if !ok {
		return nil, false
	}
	out := *lvl
	if start, ok := nr.instances[numID].StartOverrides[ilvl]; ok {
		out.Start = start
	}
	return &out, true
}

// IsListParagraph reports whether a numId refers to a list. The value "0"
// explicitly removes numbering.
func (nr *NumberingResolver) IsListParagraph(numID string) bool {
	return numID != "" && numID != "0"
}

// counterSlot is the last issued value of one level.
type counterSlot struct {
	set   bool
	value int
}

// Counters tracks list numbering across one parse. Paragraphs must be fed
// in document order.
type Counters struct {
	resolver *NumberingResolver
	lists    map[string][]counterSlot
}

// NewCounters creates counters for one parse session.
func NewCounters(nr *NumberingResolver) *Counters {
	return &Counters{
		resolver: nr,
		lists:    make(map[string][]counterSlot),
	}
}

// Next issues the label for a paragraph at numId/ilvl. The level starts at
// its start value on first use or after a shallower level advanced, then
// increments. All deeper levels are reset. ok is false when the level is
// undefined.
func (c *Counters) Next(numID string, ilvl int) (label string, value int, ok bool) {
	lvl, ok := c.resolver.Level(numID, ilvl)
	if !ok || ilvl < 0 {
		return "", 0, false
	}

	slots := c.lists[numID]
	for len(slots) <= ilvl {
		slots = append(slots, counterSlot{})
	}

	s := &slots[ilvl]
	if s.set {
		s.value++
	} else {
		s.value = lvl.Start
		s.set = true
	}
	value = s.value

	for k := ilvl + 1; k < len(slots); k++ {
		slots[k] = counterSlot{}
	}
	c.lists[numID] = slots

	values := make(map[int]int, ilvl+1)
	for k := 0; k <= ilvl; k++ {
		if slots[k].set {
			values[k] = slots[k].value
		}
	}

	label = FormatLabel(lvl.LabelTemplate, values, func(k int) string {
		if l, ok := c.resolver.Level(numID, k); ok {
			return l.Format
		}
		return "decimal"
	})
	if lvl.Format == "bullet" {
		label = bulletLabel(label, ilvl)
	}
	return label, value, true
}

// FormatLabel substitutes %1..%9 in template with the formatted value of
// the corresponding level (placeholder N is level N-1). A level without a
// value renders as 1.
func FormatLabel(template string, values map[int]int, formatOf func(level int) string) string {
	var sb strings.Builder
	for i := 0; i < len(template); i++ {
		ch := template[i]
		if ch != '%' || i+1 >= len(template) || template[i+1] < '1' || template[i+1] > '9' {
			sb.WriteByte(ch)
			continue
		}
		level := int(template[i+1]-'0') - 1
		i++

		v, ok := values[level]
		if !ok {
			v = 1
		}
		format := "decimal"
		if formatOf != nil {
			format = formatOf(level)
		}
		sb.WriteString(FormatNumber(v, format))
	}
	return sb.String()
}

// FormatNumber renders n in an OOXML number format.
func FormatNumber(n int, format string) string {
	switch format {
	case "decimal", "":
		return strconv.Itoa(n)
	case "decimalZero":
		if n >= 0 && n < 10 {
			return "0" + strconv.Itoa(n)
		}
		return strconv.Itoa(n)
	case "lowerLetter":
		return toLetters(n, 'a')
	case "upperLetter":
		return toLetters(n, 'A')
	case "lowerRoman":
		return strings.ToLower(toRoman(n))
	case "upperRoman":
		return toRoman(n)
	case "bullet":
		return "•"
	case "decimalEnclosedCircle":
		if n >= 1 && n <= 20 {
			return string(rune(0x245F + n))
		}
		return strconv.Itoa(n)
	case "decimalEnclosedCircleChinese":
		if n >= 1 && n <= 10 {
			return string(rune(0x321F + n))
		}
		return strconv.Itoa(n)
	case "ideographEnclosedCircle":
		if n >= 1 && n <= 10 {
			return string(rune(0x327F + n))
		}
		return strconv.Itoa(n)
	case "decimalEnclosedParen":
		return "(" + strconv.Itoa(n) + ")"
	case "decimalEnclosedFullstop", "decimalFullstop":
		return strconv.Itoa(n) + "."
	case "none":
		return ""
	}
	return strconv.Itoa(n)
}

// toLetters renders 1..26 as a..z, then repeats the letter: 27 is aa, 28 bb.
func toLetters(n int, base byte) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	letter := base + byte((n-1)%26)
	return strings.Repeat(string(letter), (n-1)/26+1)
}

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func toRoman(n int) string {
	if n <= 0 || n >= 4000 {
		return strconv.Itoa(n)
	}
	var sb strings.Builder
	for _, r := range romanTable {
		for n >= r.value {
			sb.WriteString(r.symbol)
			n -= r.value
		}
	}
	return sb.String()
}

// bulletLabel replaces bullet glyphs that need a symbol font with a plain
// Unicode bullet for the level.
func bulletLabel(text string, level int) string {
	// Common Word bullet characters (standard Unicode)
	bullets := []string{"•", "○", "■", "□", "▪", "▫", "►", "◦"}

	if isRenderableBullet(text) {
		return text
	}
	if level >= 0 && level < len(bullets) {
		return bullets[level]
	}
	return "•"
}

// isRenderableBullet checks if a bullet character will render properly.
// Returns false for Private Use Area characters that require special fonts.
func isRenderableBullet(s string) bool {
	for _, r := range s {
		// Word commonly uses U+F0xx for Symbol/Wingdings characters
		if r >= 0xE000 && r <= 0xF8FF {
			return false
		}
		if r < 0x20 {
			return false
		}
	}
	return len(s) > 0
}
