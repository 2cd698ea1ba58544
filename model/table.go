package model

import (
	"strings"
)

// Width is a measurement with its unit type ("dxa", "pct", "auto", "nil").
type Width struct {
	Value int
	Type  string
}

// TableBorders holds the outer and inside borders of a table.
type TableBorders struct {
	Top     *Border
	Left    *Border
	Bottom  *Border
	Right   *Border
	InsideH *Border
	InsideV *Border
}

// TableProps holds table-level formatting.
type TableProps struct {
	StyleID   string
	Width     *Width
	Borders   TableBorders
	Layout    string // fixed or autofit
	Alignment Alignment
}

// Table is a grid of rows. Cells may contain nested tables.
type Table struct {
	Props TableProps

	// Grid holds the column widths from w:tblGrid, in dxa.
	Grid []int

	Rows []*Row
}

func (*Table) isBlock() {}

// Row is a table row.
type Row struct {
	Header     bool
	Height     *int // dxa
	HeightRule string
	Cells      []*Cell
}

// VMerge is a cell's vertical merge marker.
type VMerge string

const (
	VMergeNone     VMerge = ""
	VMergeRestart  VMerge = "restart"
	VMergeContinue VMerge = "continue"
)

// CellBorders holds the edges and diagonals of a cell.
type CellBorders struct {
	Top                  *Border
	Left                 *Border
	Bottom               *Border
	Right                *Border
	TopLeftToBottomRight *Border
	TopRightToBottomLeft *Border
}

// CellMargins holds cell padding in dxa.
type CellMargins struct {
	Top    *int
	Left   *int
	Bottom *int
	Right  *int
}

// Cell is a table cell.
type Cell struct {
	// ColSpan is the number of grid columns spanned (gridSpan), at least 1.
	ColSpan int

	// RowSpan is the number of rows a vertical merge starting here covers,
	// at least 1.
	RowSpan int

	VMerge VMerge

	// Merged is set on continuation cells absorbed by a merge above.
	Merged bool

	Width         *Width
	Shading       string
	Borders       CellBorders
	Margins       CellMargins
	VerticalAlign string

	Blocks []Block
}

// Text returns the text of the cell's paragraphs joined by newlines.
// Nested tables are skipped.
func (c *Cell) Text() string {
	var parts []string
	for _, b := range c.Blocks {
		if p, ok := b.(*Paragraph); ok {
			parts = append(parts, p.Text())
		}
	}
	return strings.Join(parts, "\n")
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of cells in the first row
func (t *Table) ColCount() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0].Cells)
}

// GetCell returns the cell at the given row and cell index (0-indexed)
func (t *Table) GetCell(row, col int) *Cell {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	if col < 0 || col >= len(t.Rows[row].Cells) {
		return nil
	}
	return t.Rows[row].Cells[col]
}

// ToMarkdown converts the table to markdown format. Merged continuation
// cells render empty.
func (t *Table) ToMarkdown() string {
	if len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder
	writeRow := func(r *Row) {
		for _, cell := range r.Cells {
			sb.WriteString("| ")
			if !cell.Merged {
				sb.WriteString(strings.ReplaceAll(cell.Text(), "\n", " "))
			}
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}

	// Header row
	writeRow(t.Rows[0])

	// Separator
	for range t.Rows[0].Cells {
		sb.WriteString("|---")
	}
	sb.WriteString("|\n")

	// Data rows
	for _, r := range t.Rows[1:] {
		writeRow(r)
	}

	return sb.String()
}

// ToCSV converts the table to CSV format
func (t *Table) ToCSV() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		for j, cell := range row.Cells {
			// Escape quotes and wrap in quotes if necessary
			text := cell.Text()
			if strings.ContainsAny(text, ",\"\n") {
				text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
			}
			sb.WriteString(text)
			if j < len(row.Cells)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
