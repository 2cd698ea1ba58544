package model

// NumberingLevel is one level of a list definition.
type NumberingLevel struct {
	// Index is the zero-based level (ilvl).
	Index int

	Start         int
	Format        string // decimal, lowerLetter, upperRoman, bullet, ...
	LabelTemplate string // lvlText, e.g. "%1.%2."
	Alignment     Alignment

	// Indent and Hanging are in dxa.
	Indent  int
	Hanging int

	Font string
}

// NumberingRef attaches a paragraph to a list.
type NumberingRef struct {
	NumID string
	Level int

	// Definition is the resolved level, nil when the numbering instance or
	// level is undefined.
	Definition *NumberingLevel

	// Label is the rendered list label for this paragraph, e.g. "2.1" or "•".
	Label string
}
