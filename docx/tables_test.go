package docx

import (
	"testing"

	"github.com/tsawler/wordml/model"
)

// mergeRow builds a row from vMerge markers.
func mergeRow(markers ...model.VMerge) *model.Row {
	row := &model.Row{}
	for _, m := range markers {
		row.Cells = append(row.Cells, &model.Cell{ColSpan: 1, RowSpan: 1, VMerge: m})
	}
	return row
}

func TestMergeVertical(t *testing.T) {
	const (
		none    = model.VMergeNone
		restart = model.VMergeRestart
		cont    = model.VMergeContinue
	)

	tests := []struct {
		name       string
		rows       [][]model.VMerge
		wantSpans  [][]int
		wantMerged [][]bool
	}{
		{
			name: "restart then continue",
			rows: [][]model.VMerge{
				{restart, none},
				{cont, none},
				{cont, none},
			},
			wantSpans:  [][]int{{3, 1}, {1, 1}, {1, 1}},
			wantMerged: [][]bool{{false, false}, {true, false}, {true, false}},
		},
		{
			name: "no marker closes the merge",
			rows: [][]model.VMerge{
				{restart},
				{cont},
				{none},
				{cont},
			},
			wantSpans:  [][]int{{2}, {1}, {1}, {1}},
			wantMerged: [][]bool{{false}, {true}, {false}, {false}},
		},
		{
			name: "orphan continue stays unmerged",
			rows: [][]model.VMerge{
				{cont, none},
				{cont, none},
			},
			wantSpans:  [][]int{{1, 1}, {1, 1}},
			wantMerged: [][]bool{{false, false}, {false, false}},
		},
		{
			name: "second restart starts a new merge",
			rows: [][]model.VMerge{
				{restart},
				{cont},
				{restart},
				{cont},
			},
			wantSpans:  [][]int{{2}, {1}, {2}, {1}},
			wantMerged: [][]bool{{false}, {true}, {false}, {true}},
		},
		{
			name: "longer later row grows the slots",
			rows: [][]model.VMerge{
				{none},
				{none, restart},
				{none, cont},
			},
			wantSpans:  [][]int{{1}, {1, 2}, {1, 1}},
			wantMerged: [][]bool{{false}, {false, false}, {false, true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := &model.Table{}
			for _, markers := range tt.rows {
				table.Rows = append(table.Rows, mergeRow(markers...))
			}

			MergeVertical(table)

			for r, row := range table.Rows {
				for c, cell := range row.Cells {
					if cell.RowSpan != tt.wantSpans[r][c] {
						t.Errorf("cell[%d][%d].RowSpan = %d, want %d", r, c, cell.RowSpan, tt.wantSpans[r][c])
					}
					if cell.Merged != tt.wantMerged[r][c] {
						t.Errorf("cell[%d][%d].Merged = %v, want %v", r, c, cell.Merged, tt.wantMerged[r][c])
					}
				}
			}
		})
	}
}

func TestMergeVertical_Empty(t *testing.T) {
	MergeVertical(nil)
	MergeVertical(&model.Table{})
}

func TestParseTable(t *testing.T) {
	body := decodeBody(t, `
<w:tbl>
  <w:tblPr>
    <w:tblStyle w:val="TableGrid"/>
    <w:tblW w:w="5000" w:type="pct"/>
    <w:jc w:val="center"/>
    <w:tblLayout w:type="fixed"/>
    <w:tblBorders><w:top w:val="single" w:sz="4" w:color="000000"/><w:insideH w:val="dashed" w:sz="2"/></w:tblBorders>
  </w:tblPr>
  <w:tblGrid><w:gridCol w:w="2000"/><w:gridCol w:w="3000"/></w:tblGrid>
  <w:tr>
    <w:trPr><w:tblHeader/><w:trHeight w:val="400" w:hRule="exact"/></w:trPr>
    <w:tc>
      <w:tcPr><w:tcW w:w="2000" w:type="dxa"/><w:vMerge w:val="restart"/><w:shd w:fill="D9D9D9"/><w:vAlign w:val="center"/>
        <w:tcMar><w:start w:w="108" w:type="dxa"/></w:tcMar>
        <w:tcBorders><w:tl2br w:val="single"/></w:tcBorders></w:tcPr>
      <w:p><w:r><w:t>Merged</w:t></w:r></w:p>
    </w:tc>
    <w:tc><w:p><w:r><w:t>B1</w:t></w:r></w:p></w:tc>
  </w:tr>
  <w:tr>
    <w:tc><w:tcPr><w:vMerge/></w:tcPr><w:p/></w:tc>
    <w:tc>
      <w:tbl><w:tr><w:tc><w:p><w:r><w:t>nested</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
      <w:p><w:r><w:t>B2</w:t></w:r></w:p>
    </w:tc>
  </w:tr>
  <w:tr>
    <w:tc><w:tcPr><w:gridSpan w:val="2"/></w:tcPr><w:p><w:r><w:t>wide</w:t></w:r></w:p></w:tc>
  </w:tr>
</w:tbl>`)

	p := NewParser(nil, nil, nil)
	sections := p.ParseBody(body, emptyScope{})
	if len(sections) != 1 || len(sections[0].Blocks) != 1 {
		t.Fatalf("expected one section with one block, got %d sections", len(sections))
	}
	table, ok := sections[0].Blocks[0].(*model.Table)
	if !ok {
		t.Fatalf("expected table, got %T", sections[0].Blocks[0])
	}

	if table.Props.StyleID != "TableGrid" || table.Props.Layout != "fixed" || table.Props.Alignment != model.AlignCenter {
		t.Errorf("unexpected table props: %+v", table.Props)
	}
	if table.Props.Width == nil || table.Props.Width.Value != 5000 || table.Props.Width.Type != "pct" {
		t.Errorf("table width = %+v", table.Props.Width)
	}
	if table.Props.Borders.Top == nil || table.Props.Borders.Top.Size != 4 {
		t.Errorf("top border = %+v", table.Props.Borders.Top)
	}
	if table.Props.Borders.InsideH == nil || table.Props.Borders.InsideH.Style != "dashed" {
		t.Errorf("insideH border = %+v", table.Props.Borders.InsideH)
	}
	if len(table.Grid) != 2 || table.Grid[1] != 3000 {
		t.Errorf("grid = %v", table.Grid)
	}

	if len(table.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(table.Rows))
	}
	head := table.Rows[0]
	if !head.Header || head.Height == nil || *head.Height != 400 || head.HeightRule != "exact" {
		t.Errorf("unexpected header row: %+v", head)
	}

	first := head.Cells[0]
	if first.RowSpan != 2 || first.VMerge != model.VMergeRestart {
		t.Errorf("first cell span = %d, vmerge = %q", first.RowSpan, first.VMerge)
	}
	if first.Shading != "D9D9D9" || first.VerticalAlign != "center" {
		t.Errorf("first cell shading/valign = %q/%q", first.Shading, first.VerticalAlign)
	}
	if first.Margins.Left == nil || *first.Margins.Left != 108 {
		t.Errorf("first cell left margin = %v", first.Margins.Left)
	}
	if first.Borders.TopLeftToBottomRight == nil {
		t.Error("expected diagonal border")
	}
	if first.Text() != "Merged" {
		t.Errorf("first cell text = %q", first.Text())
	}

	cont := table.Rows[1].Cells[0]
	if !cont.Merged || cont.VMerge != model.VMergeContinue {
		t.Errorf("continuation cell merged = %v, vmerge = %q", cont.Merged, cont.VMerge)
	}

	nestedCell := table.Rows[1].Cells[1]
	if len(nestedCell.Blocks) != 2 {
		t.Fatalf("nested cell blocks = %d, want 2", len(nestedCell.Blocks))
	}
	nested, ok := nestedCell.Blocks[0].(*model.Table)
	if !ok || nested.Rows[0].Cells[0].Text() != "nested" {
		t.Errorf("nested table not parsed: %#v", nestedCell.Blocks[0])
	}

	wide := table.Rows[2].Cells[0]
	if wide.ColSpan != 2 {
		t.Errorf("gridSpan = %d, want 2", wide.ColSpan)
	}
}

func TestParseTable_WrappedRowsAndCells(t *testing.T) {
	body := decodeBody(t, `
<w:tbl>
  <w:tblGrid><w:gridCol w:w="1000"/><w:gridCol w:w="1000"/></w:tblGrid>
  <w:tr><w:tc><w:p><w:r><w:t>A1</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>B1</w:t></w:r></w:p></w:tc></w:tr>
  <w:sdt>
    <w:sdtPr><w:alias w:val="Repeating"/></w:sdtPr>
    <w:sdtContent>
      <w:tr>
        <w:tc><w:p><w:r><w:t>A2</w:t></w:r></w:p></w:tc>
        <w:sdt><w:sdtContent><w:tc><w:p><w:r><w:t>B2</w:t></w:r></w:p></w:tc></w:sdtContent></w:sdt>
      </w:tr>
    </w:sdtContent>
  </w:sdt>
  <w:customXml w:element="line">
    <w:tr>
      <w:customXml w:element="cell"><w:tc><w:p><w:r><w:t>A3</w:t></w:r></w:p></w:tc></w:customXml>
      <w:tc><w:p><w:r><w:t>B3</w:t></w:r></w:p></w:tc>
    </w:tr>
  </w:customXml>
</w:tbl>`)

	sections := NewParser(nil, nil, nil).ParseBody(body, emptyScope{})
	table, ok := sections[0].Blocks[0].(*model.Table)
	if !ok {
		t.Fatalf("expected table, got %T", sections[0].Blocks[0])
	}
	if len(table.Grid) != 2 {
		t.Errorf("grid = %v", table.Grid)
	}

	want := [][]string{{"A1", "B1"}, {"A2", "B2"}, {"A3", "B3"}}
	if len(table.Rows) != len(want) {
		t.Fatalf("rows = %d, want %d", len(table.Rows), len(want))
	}
	for r, row := range table.Rows {
		if len(row.Cells) != len(want[r]) {
			t.Fatalf("row %d cells = %d, want %d", r, len(row.Cells), len(want[r]))
		}
		for c, cell := range row.Cells {
			if cell.Text() != want[r][c] {
				t.Errorf("cell[%d][%d] = %q, want %q", r, c, cell.Text(), want[r][c])
			}
		}
	}
}
