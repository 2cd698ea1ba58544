package docx

import "encoding/xml"

// stylesXML represents the structure of word/styles.xml
type stylesXML struct {
	XMLName     xml.Name       `xml:"styles"`
	DocDefaults docDefaultsXML `xml:"docDefaults"`
	Styles      []styleDefXML  `xml:"style"`
}

// docDefaultsXML represents document default styles.
type docDefaultsXML struct {
	RPr *rPrXML `xml:"rPrDefault>rPr"`
	PPr *pPrXML `xml:"pPrDefault>pPr"`
}

// styleDefXML represents a style definition.
type styleDefXML struct {
	Type    string  `xml:"type,attr"` // paragraph, character, table, numbering
	StyleID string  `xml:"styleId,attr"`
	Default string  `xml:"default,attr"` // "1" if default style
	Name    *valXML `xml:"name"`
	BasedOn *valXML `xml:"basedOn"`
	Next    *valXML `xml:"next"`
	PPr     *pPrXML `xml:"pPr"`
	RPr     *rPrXML `xml:"rPr"`
}

// numberingXML represents the structure of word/numbering.xml
type numberingXML struct {
	XMLName      xml.Name         `xml:"numbering"`
	AbstractNums []abstractNumXML `xml:"abstractNum"`
	Nums         []numXML         `xml:"num"`
}

// abstractNumXML represents an abstract numbering definition.
type abstractNumXML struct {
	AbstractNumID string        `xml:"abstractNumId,attr"`
	Levels        []levelDefXML `xml:"lvl"`
}

// levelDefXML represents a numbering level definition.
type levelDefXML struct {
	ILvl    string  `xml:"ilvl,attr"`
	Start   *valXML `xml:"start"`
	NumFmt  *valXML `xml:"numFmt"`
	LvlText *valXML `xml:"lvlText"`
	LvlJc   *valXML `xml:"lvlJc"`
	PPr     *pPrXML `xml:"pPr"`
	RPr     *rPrXML `xml:"rPr"`
}

// numXML represents a numbering instance.
type numXML struct {
	NumID         string           `xml:"numId,attr"`
	AbstractNumID *valXML          `xml:"abstractNumId"`
	Overrides     []lvlOverrideXML `xml:"lvlOverride"`
}

// lvlOverrideXML overrides one level of the abstract definition.
type lvlOverrideXML struct {
	ILvl          string  `xml:"ilvl,attr"`
	StartOverride *valXML `xml:"startOverride"`
}
